package logic

// Estimator derives a BPM figure from a SampleHistory.
//
// The figure is a deliberately simple proxy, not peak detection: when the
// short rolling average rises more than the beat threshold above the long
// one, the rise divided by a fixed divisor is reported as BPM. The result is
// usually far below a physiological heart rate, which is why the controller's
// fallback band exists.
type Estimator struct {
	ShortWindow     int
	LongWindow      int
	BeatThreshold   float64
	FingerThreshold int
	Divisor         float64
}

// NewEstimator returns an Estimator with the standard sensor parameters.
func NewEstimator() Estimator {
	return Estimator{
		ShortWindow:     ShortAverageWindow,
		LongWindow:      LongAverageWindow,
		BeatThreshold:   BeatThreshold,
		FingerThreshold: FingerThreshold,
		Divisor:         bpmDivisor,
	}
}

// Ready reports whether h holds enough samples to be evaluated.
func (e Estimator) Ready(h *SampleHistory) bool {
	return h.Len() >= e.LongWindow
}

// FingerPresent reports whether the history looks like a finger resting on
// the sensor. Low variance means contact; a wide swing is open-air noise.
// Always false until the history is Ready.
func (e Estimator) FingerPresent(h *SampleHistory) bool {
	if !e.Ready(h) {
		return false
	}
	return h.Span() < e.FingerThreshold
}

// Averages returns the short and long rolling averages over h.
func (e Estimator) Averages(h *SampleHistory) (short, long float64) {
	return h.Mean(e.ShortWindow), h.Mean(e.LongWindow)
}

// Estimate returns a BPM figure and true when a finger is present and the
// short average exceeds the long one by more than the beat threshold.
// Otherwise it returns false and the caller must not act on this sample.
func (e Estimator) Estimate(h *SampleHistory) (int, bool) {
	if !e.FingerPresent(h) {
		return 0, false
	}
	short, long := e.Averages(h)
	return e.FromAverages(short, long)
}

// FromAverages applies the BPM heuristic to a pair of rolling averages.
func (e Estimator) FromAverages(short, long float64) (int, bool) {
	rise := short - long
	if rise <= e.BeatThreshold {
		return 0, false
	}
	return int(rise / e.Divisor), true
}
