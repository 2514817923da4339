// Package mqtt publishes player and lifecycle events to an MQTT broker.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/sweeney/rhythmia/internal/logic"
)

// Topics. Player events are fire-and-forget; system events carry a status
// snapshot and the lifecycle ones are retained.
const (
	Topic       = "rhythmia/player/events"
	TopicSystem = "rhythmia/player/system"
)

// Publisher sends events to the broker. Errors are reported, never fatal:
// the caller logs them and carries on.
type Publisher interface {
	Publish(event logic.Event) error
	PublishSystem(event SystemEvent) error
	Close() error
}

// ConnectionStatus reports whether the broker connection is up.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent is a daemon lifecycle message: STARTUP, SHUTDOWN, HEARTBEAT.
type SystemEvent struct {
	Timestamp time.Time
	Event     string
	Reason    string // shutdown signal name
	// RawPayload, when set, is sent as-is (a status snapshot).
	RawPayload []byte
	Retained   bool
}

// Payload is the JSON envelope of a player event.
type Payload struct {
	Player PlayerPayload `json:"player"`
}

// PlayerPayload contains the player event details. Fields that do not apply
// to an event are omitted.
type PlayerPayload struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Mode      string `json:"mode"`
	Button    string `json:"button,omitempty"`
	Track     string `json:"track,omitempty"`
	BPM       int    `json:"bpm,omitempty"`
	Band      string `json:"band,omitempty"`
	Session   string `json:"session,omitempty"`
}

// NewPlayerPayload converts a player event to its wire form.
func NewPlayerPayload(event logic.Event) PlayerPayload {
	return PlayerPayload{
		Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
		Event:     string(event.Type),
		Mode:      string(event.Mode),
		Button:    event.Button,
		Track:     event.Track,
		BPM:       event.BPM,
		Band:      event.Band,
		Session:   event.Session,
	}
}

// FormatPayload creates the JSON payload for a player event.
func FormatPayload(event logic.Event) ([]byte, error) {
	return json.Marshal(Payload{Player: NewPlayerPayload(event)})
}

// SystemPayload is the JSON envelope of a system event without a snapshot,
// such as the last will.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner is the body of a SystemPayload.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload returns event.RawPayload if set, else a minimal
// SystemPayload.
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}
