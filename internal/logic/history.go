package logic

// SampleHistory is a fixed-capacity sliding window of raw pulse readings.
// Once full, each Push evicts the oldest sample.
// Not safe for concurrent use — caller must synchronize.
type SampleHistory struct {
	buf      []uint16
	capacity int
	head     int // next write position
	count    int
}

// NewSampleHistory creates a history holding at most capacity samples.
// A capacity <= 0 selects MaxSamples.
func NewSampleHistory(capacity int) *SampleHistory {
	if capacity <= 0 {
		capacity = MaxSamples
	}
	return &SampleHistory{
		buf:      make([]uint16, capacity),
		capacity: capacity,
	}
}

// Push appends a sample, overwriting the oldest one when full.
func (h *SampleHistory) Push(v uint16) {
	h.buf[h.head] = v
	h.head = (h.head + 1) % h.capacity
	if h.count < h.capacity {
		h.count++
	}
}

// Len returns the number of samples held.
func (h *SampleHistory) Len() int {
	return h.count
}

// Cap returns the history capacity.
func (h *SampleHistory) Cap() int {
	return h.capacity
}

// Reset discards all samples.
func (h *SampleHistory) Reset() {
	h.head = 0
	h.count = 0
}

// at returns the i-th oldest sample held (0 = oldest).
func (h *SampleHistory) at(i int) uint16 {
	start := (h.head - h.count + h.capacity) % h.capacity
	return h.buf[(start+i)%h.capacity]
}

// Values returns the samples held, oldest first.
func (h *SampleHistory) Values() []uint16 {
	if h.count == 0 {
		return nil
	}
	out := make([]uint16, h.count)
	for i := range out {
		out[i] = h.at(i)
	}
	return out
}

// Mean returns the average of the newest n samples, divided by n.
// Returns 0 if n <= 0 or fewer than n samples are held.
func (h *SampleHistory) Mean(n int) float64 {
	if n <= 0 || n > h.count {
		return 0
	}
	var sum uint64
	for i := h.count - n; i < h.count; i++ {
		sum += uint64(h.at(i))
	}
	return float64(sum) / float64(n)
}

// Span returns max-min over every sample held, or 0 when empty.
func (h *SampleHistory) Span() int {
	if h.count == 0 {
		return 0
	}
	lo, hi := h.at(0), h.at(0)
	for i := 1; i < h.count; i++ {
		v := h.at(i)
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return int(hi) - int(lo)
}
