package gpio

import (
	"errors"
	"time"

	"github.com/sweeney/rhythmia/internal/logic"
)

// FakeButtons is a test double that delivers scripted edges to a handler.
type FakeButtons struct {
	handler EdgeHandler

	// Level holds the raw levels returned by Levels, indexed by ButtonID.
	Level [3]bool

	// Closed tracks if Close was called
	Closed bool

	// LevelError, if set, will be returned by Levels()
	LevelError error
}

// NewFakeButtons creates FakeButtons routing edges to h.
func NewFakeButtons(h EdgeHandler) *FakeButtons {
	return &FakeButtons{handler: h}
}

// Edge delivers one rising edge of id at monotonic time now.
// Returns whether the handler accepted it.
func (f *FakeButtons) Edge(id logic.ButtonID, now time.Duration) bool {
	if f.Closed {
		return false
	}
	return f.handler.OnEdge(id, now)
}

// Bounce delivers n edges of id spaced gap apart starting at now, the way a
// mechanical contact chatters. Returns how many were accepted.
func (f *FakeButtons) Bounce(id logic.ButtonID, now time.Duration, n int, gap time.Duration) int {
	accepted := 0
	for i := 0; i < n; i++ {
		if f.Edge(id, now+time.Duration(i)*gap) {
			accepted++
		}
	}
	return accepted
}

// Levels returns the scripted levels.
func (f *FakeButtons) Levels() (bool, bool, bool, error) {
	if f.LevelError != nil {
		return false, false, false, f.LevelError
	}
	if f.Closed {
		return false, false, false, errors.New("buttons closed")
	}
	return f.Level[logic.ButtonLeft], f.Level[logic.ButtonMiddle], f.Level[logic.ButtonRight], nil
}

// Close marks the buttons as closed; further edges are dropped.
func (f *FakeButtons) Close() error {
	f.Closed = true
	return nil
}
