package web

import (
	"encoding/json"

	"github.com/sweeney/rhythmia/internal/logic"
	"github.com/sweeney/rhythmia/internal/mqtt"
	"github.com/sweeney/rhythmia/internal/status"
)

// Frame types sent on the live feed.
const (
	FrameStatus = "status"
	FrameEvent  = "event"
)

// Frame is one websocket message. Data carries the same JSON documents the
// daemon publishes elsewhere: the status snapshot served at /index.json, or
// the player event payload published to MQTT.
type Frame struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func statusFrame(snap status.Snapshot) []byte {
	return marshalFrame(FrameStatus, status.FormatStatusEvent(snap, "", ""))
}

func eventFrame(event logic.Event) ([]byte, error) {
	payload, err := mqtt.FormatPayload(event)
	if err != nil {
		return nil, err
	}
	return marshalFrame(FrameEvent, payload), nil
}

func marshalFrame(typ string, data []byte) []byte {
	out, _ := json.Marshal(Frame{Type: typ, Data: data})
	return out
}
