package logic

import "time"

// ButtonEvent is the debounce record for one button.
type ButtonEvent struct {
	ID ButtonID
	// LastFire is the monotonic timestamp of the last accepted press.
	LastFire time.Duration
	// Fired is false until the first press is accepted.
	Fired bool
}

// Debouncer turns raw rising edges into pending presses in an EventFlags store.
//
// OnEdge for a given button must only ever be called from that button's edge
// handler; it touches nothing but that button's ButtonEvent and flag, and does
// not allocate.
type Debouncer struct {
	window  time.Duration
	flags   *EventFlags
	buttons [numButtons]ButtonEvent
}

// NewDebouncer creates a debouncer that writes accepted presses to flags.
// A window <= 0 selects DefaultDebounce.
func NewDebouncer(window time.Duration, flags *EventFlags) *Debouncer {
	if window <= 0 {
		window = DefaultDebounce
	}
	d := &Debouncer{window: window, flags: flags}
	for _, id := range Buttons {
		d.buttons[id].ID = id
	}
	return d
}

// OnEdge handles a rising edge of id observed at monotonic time now.
// The edge is accepted if the button has never fired or if more than the
// debounce window has passed since the last accepted edge. Returns true if
// the edge was accepted.
func (d *Debouncer) OnEdge(id ButtonID, now time.Duration) bool {
	if !id.Valid() {
		return false
	}
	b := &d.buttons[id]
	if b.Fired && now-b.LastFire <= d.window {
		return false
	}
	d.flags.Set(id)
	b.LastFire = now
	b.Fired = true
	return true
}

// Button returns a copy of the debounce record for id.
// Only safe to call from the goroutine that drives OnEdge for id, or in tests.
func (d *Debouncer) Button(id ButtonID) ButtonEvent {
	return d.buttons[id]
}

// Window returns the configured debounce window.
func (d *Debouncer) Window() time.Duration {
	return d.window
}
