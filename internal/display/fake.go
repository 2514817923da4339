package display

import "strconv"

// FakeDisplay records everything shown, for test assertions.
type FakeDisplay struct {
	// Shown contains each write in order. Digits are recorded as their
	// decimal string, text verbatim.
	Shown []string
}

// NewFakeDisplay creates an empty FakeDisplay.
func NewFakeDisplay() *FakeDisplay {
	return &FakeDisplay{}
}

// ShowDigits records n.
func (f *FakeDisplay) ShowDigits(n int) {
	f.Shown = append(f.Shown, strconv.Itoa(n))
}

// ShowText records s.
func (f *FakeDisplay) ShowText(s string) {
	f.Shown = append(f.Shown, s)
}

// Last returns the most recent write, or "" if nothing was shown.
func (f *FakeDisplay) Last() string {
	if len(f.Shown) == 0 {
		return ""
	}
	return f.Shown[len(f.Shown)-1]
}

// Reset clears recorded writes.
func (f *FakeDisplay) Reset() {
	f.Shown = nil
}
