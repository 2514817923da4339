package logic

import "sync/atomic"

// EventFlags holds one pending-press flag per button. It is the only state
// shared between the edge handlers and the main loop: handlers set a flag,
// the main loop consumes it. Each flag is a single atomic word, so no lock
// is needed.
type EventFlags struct {
	pending [numButtons]atomic.Bool
}

// Set marks a press of id as pending. Only the Debouncer calls this.
func (f *EventFlags) Set(id ButtonID) {
	f.pending[id].Store(true)
}

// Peek reports whether a press of id is pending without taking it.
func (f *EventFlags) Peek(id ButtonID) bool {
	return f.pending[id].Load()
}

// Consume takes a pending press of id, clearing the flag.
// Returns true if a press was pending.
func (f *EventFlags) Consume(id ButtonID) bool {
	return f.pending[id].Swap(false)
}
