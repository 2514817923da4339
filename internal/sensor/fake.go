package sensor

import "errors"

// FakePulse is a test double that returns scripted readings.
type FakePulse struct {
	// Samples contains the readings to return.
	// Each call to ReadRaw() consumes the next sample.
	Samples []uint16

	// index tracks current position in Samples
	index int

	// Reads counts calls to ReadRaw.
	Reads int

	// ReadError, if set, will be returned by ReadRaw()
	ReadError error
}

// NewFakePulse creates a FakePulse with the given samples.
func NewFakePulse(samples []uint16) *FakePulse {
	return &FakePulse{Samples: samples}
}

// ReadRaw returns the next scripted sample.
// If samples are exhausted, returns the last sample repeatedly.
func (f *FakePulse) ReadRaw() (uint16, error) {
	f.Reads++
	if f.ReadError != nil {
		return 0, f.ReadError
	}
	if len(f.Samples) == 0 {
		return 0, errors.New("no samples configured")
	}

	v := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}
	return v, nil
}

// Reset rewinds to the first sample.
func (f *FakePulse) Reset() {
	f.index = 0
	f.Reads = 0
}
