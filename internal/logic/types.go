// Package logic contains the pure core of the player: button debouncing, the
// pending-press flag store, the pulse sample history and the BPM heuristic.
// This package has NO external dependencies (no GPIO, audio, display, or time.Sleep).
// Time is always injectable via time.Time or monotonic time.Duration parameters.
package logic

import "time"

// ButtonID identifies one of the three physical push buttons.
type ButtonID int

const (
	ButtonLeft ButtonID = iota
	ButtonMiddle
	ButtonRight

	numButtons = 3
)

// Buttons lists every button in dispatch-independent order.
var Buttons = [numButtons]ButtonID{ButtonLeft, ButtonMiddle, ButtonRight}

func (b ButtonID) String() string {
	switch b {
	case ButtonLeft:
		return "LEFT"
	case ButtonMiddle:
		return "MIDDLE"
	case ButtonRight:
		return "RIGHT"
	}
	return "UNKNOWN"
}

// Valid reports whether b names a physical button.
func (b ButtonID) Valid() bool {
	return b >= ButtonLeft && b <= ButtonRight
}

// Mode is the playback controller's top-level state.
type Mode string

const (
	ModeIdle            Mode = "IDLE"
	ModeDirectPlay      Mode = "DIRECT_PLAY"
	ModeRhythmiaArmed   Mode = "RHYTHMIA_ARMED"
	ModeRhythmiaPlaying Mode = "RHYTHMIA_PLAYING"
)

// Rhythmia reports whether the mode has pulse sampling active.
func (m Mode) Rhythmia() bool {
	return m == ModeRhythmiaArmed || m == ModeRhythmiaPlaying
}

// Pulse sensor and estimator parameters.
const (
	MaxSamples         = 1000 // history capacity
	ShortAverageWindow = 20
	LongAverageWindow  = 100
	BeatThreshold      = 200  // short-long rise that counts as a beat
	FingerThreshold    = 2000 // max-min span below which a finger is resting on the sensor

	// bpmDivisor is the fixed divisor of the BPM heuristic.
	bpmDivisor = LongAverageWindow - 60
)

// DefaultDebounce is the minimum gap between two accepted presses of one button.
const DefaultDebounce = 100 * time.Millisecond

// EventType represents something the controller did that is worth publishing.
type EventType string

const (
	EventRhythmiaOn    EventType = "RHYTHMIA_ON"
	EventRhythmiaOff   EventType = "RHYTHMIA_OFF"
	EventTrackStarted  EventType = "TRACK_STARTED"
	EventTrackFinished EventType = "TRACK_FINISHED"
	EventPaused        EventType = "PAUSED"
	EventResumed       EventType = "RESUMED"
	EventBPMEstimated  EventType = "BPM_ESTIMATED"
	EventInterrupted   EventType = "INTERRUPTED"
)

// Event represents a controller transition to be published and logged.
type Event struct {
	Timestamp time.Time
	Type      EventType
	Mode      Mode
	Button    string // button that caused the event, if any
	Track     string
	BPM       int    // measured estimate for BPM_ESTIMATED, displayed value otherwise
	Band      string
	Session   string // Rhythmia session ID, empty outside Rhythmia
}

// EventCounts tracks controller activity since startup.
type EventCounts struct {
	LeftPresses   int
	MiddlePresses int
	RightPresses  int
	TracksPlayed  int
	Estimates     int
	Interruptions int
}

// HeartbeatData contains information for a heartbeat event.
type HeartbeatData struct {
	Timestamp time.Time
	Uptime    time.Duration
	Counts    EventCounts
}
