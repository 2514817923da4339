package audio

import "errors"

// Call records one method invocation on a FakeEngine.
type Call struct {
	Method string // "Play", "Pause", "Resume", "Stop"
	Track  string // Play only
	Loop   bool   // Play only
}

// FakeEngine is a test double that records calls. A played track keeps
// "playing" until Finish is called.
type FakeEngine struct {
	// Calls contains every method call in order.
	Calls []Call

	// Track is the loaded track, empty after Stop.
	Track string

	// Playing is the value IsPlaying returns.
	Playing bool

	// Paused is true between Pause and Resume.
	Paused bool

	// PlayError, if set, will be returned by Play.
	PlayError error
}

// NewFakeEngine creates a FakeEngine with nothing loaded.
func NewFakeEngine() *FakeEngine {
	return &FakeEngine{}
}

// Play records the call and marks track as playing.
func (f *FakeEngine) Play(track string, loop bool) error {
	f.Calls = append(f.Calls, Call{Method: "Play", Track: track, Loop: loop})
	if f.PlayError != nil {
		return f.PlayError
	}
	if track == "" {
		return errors.New("empty track")
	}
	f.Track = track
	f.Playing = true
	f.Paused = false
	return nil
}

// Pause records the call.
func (f *FakeEngine) Pause() {
	f.Calls = append(f.Calls, Call{Method: "Pause"})
	if f.Track != "" {
		f.Playing = false
		f.Paused = true
	}
}

// Resume records the call.
func (f *FakeEngine) Resume() {
	f.Calls = append(f.Calls, Call{Method: "Resume"})
	if f.Track != "" && f.Paused {
		f.Playing = true
		f.Paused = false
	}
}

// Stop records the call and unloads the track.
func (f *FakeEngine) Stop() {
	f.Calls = append(f.Calls, Call{Method: "Stop"})
	f.Track = ""
	f.Playing = false
	f.Paused = false
}

// IsPlaying returns Playing.
func (f *FakeEngine) IsPlaying() bool {
	return f.Playing
}

// Finish simulates the current track reaching its end.
func (f *FakeEngine) Finish() {
	f.Playing = false
}

// Played returns the tracks passed to Play, in order.
func (f *FakeEngine) Played() []string {
	var out []string
	for _, c := range f.Calls {
		if c.Method == "Play" {
			out = append(out, c.Track)
		}
	}
	return out
}

// Count returns how many times method was called.
func (f *FakeEngine) Count(method string) int {
	n := 0
	for _, c := range f.Calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

// Reset clears recorded calls and state.
func (f *FakeEngine) Reset() {
	*f = FakeEngine{}
}
