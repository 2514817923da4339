package logic

import "testing"

// fill returns a history of `old` samples of value a followed by `recent`
// samples of value b.
func fill(old int, a uint16, recent int, b uint16) *SampleHistory {
	h := NewSampleHistory(MaxSamples)
	for i := 0; i < old; i++ {
		h.Push(a)
	}
	for i := 0; i < recent; i++ {
		h.Push(b)
	}
	return h
}

func TestFingerPresent(t *testing.T) {
	e := NewEstimator()

	tests := []struct {
		name string
		h    *SampleHistory
		want bool
	}{
		{"flat signal", fill(100, 30000, 0, 0), true},
		{"span 1999", fill(50, 30000, 50, 31999), true},
		{"span 2000", fill(50, 30000, 50, 32000), false},
		{"open-air swing", fill(50, 1000, 50, 60000), false},
		{"too short", fill(99, 30000, 0, 0), false},
		{"empty", NewSampleHistory(MaxSamples), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.FingerPresent(tt.h); got != tt.want {
				t.Errorf("FingerPresent: got %v, want %v (span %d, len %d)", got, tt.want, tt.h.Span(), tt.h.Len())
			}
		})
	}
}

func TestEstimateFormula(t *testing.T) {
	e := NewEstimator()

	// 80 samples of 125 then 20 of 500: short=500, long=200, rise=300.
	h := fill(80, 125, 20, 500)
	short, long := e.Averages(h)
	if short != 500 || long != 200 {
		t.Fatalf("averages: got short=%v long=%v, want 500/200", short, long)
	}

	bpm, ok := e.Estimate(h)
	if !ok {
		t.Fatal("expected an estimate")
	}
	// floor(300 / (100-60))
	if bpm != 7 {
		t.Errorf("expected BPM 7, got %d", bpm)
	}
}

func TestEstimateUsesNewestSamplesOnly(t *testing.T) {
	e := NewEstimator()

	// 900 samples of 1000 that fall outside both windows, then the same
	// 125/500 pattern: only the newest 100 matter.
	h := fill(900, 1000, 0, 0)
	for i := 0; i < 80; i++ {
		h.Push(125)
	}
	for i := 0; i < 20; i++ {
		h.Push(500)
	}
	bpm, ok := e.Estimate(h)
	if !ok || bpm != 7 {
		t.Errorf("expected (7, true), got (%d, %v)", bpm, ok)
	}
}

func TestEstimateFromAverages(t *testing.T) {
	e := NewEstimator()

	tests := []struct {
		short, long float64
		bpm         int
		ok          bool
	}{
		{500, 200, 7, true},
		{450, 250, 0, false}, // rise exactly at threshold
		{450.5, 250, 5, true},
		{2600, 200, 60, true},
		{200, 500, 0, false},
	}
	for _, tt := range tests {
		bpm, ok := e.FromAverages(tt.short, tt.long)
		if bpm != tt.bpm || ok != tt.ok {
			t.Errorf("FromAverages(%v, %v) = (%d, %v), want (%d, %v)", tt.short, tt.long, bpm, ok, tt.bpm, tt.ok)
		}
	}
}

func TestEstimateNoBeat(t *testing.T) {
	e := NewEstimator()
	if _, ok := e.Estimate(fill(100, 30000, 0, 0)); ok {
		t.Error("flat signal should not produce an estimate")
	}
}

func TestEstimateNoFinger(t *testing.T) {
	e := NewEstimator()
	// Rise of 3000 would qualify, but the span says no finger.
	h := fill(80, 0, 20, 3750)
	if _, ok := e.Estimate(h); ok {
		t.Error("wide-swing signal should not produce an estimate")
	}
}

func TestEstimateShortHistory(t *testing.T) {
	e := NewEstimator()
	h := fill(60, 125, 20, 500)
	if e.Ready(h) {
		t.Error("80 samples should not be ready")
	}
	if _, ok := e.Estimate(h); ok {
		t.Error("short history should not produce an estimate")
	}
}
