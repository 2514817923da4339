package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string       `json:"event,omitempty"`
	Reason        string       `json:"reason,omitempty"`
	Player        PlayerJSON   `json:"player"`
	UptimeSeconds int64        `json:"uptime_seconds"`
	StartTime     string       `json:"start_time"`
	Timestamp     string       `json:"timestamp"`
	MQTT          MQTTStatus   `json:"mqtt"`
	Counts        CountsJSON   `json:"event_counts"`
	Network       *NetworkJSON `json:"network,omitempty"`
	Config        ConfigJSON   `json:"config"`
	Recent        []RecentJSON `json:"recent,omitempty"`
}

// PlayerJSON is the JSON representation of the controller state.
type PlayerJSON struct {
	Mode     string `json:"mode"`
	Paused   bool   `json:"paused"`
	Track    string `json:"track,omitempty"`
	Next     int    `json:"next_index"`
	Band     string `json:"band,omitempty"`
	BPM      int    `json:"bpm,omitempty"`
	Estimate int    `json:"estimate,omitempty"`
	Session  string `json:"session,omitempty"`
	Samples  int    `json:"samples"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of event counts.
type CountsJSON struct {
	Left          int `json:"left_presses"`
	Middle        int `json:"middle_presses"`
	Right         int `json:"right_presses"`
	TracksPlayed  int `json:"tracks_played"`
	Estimates     int `json:"estimates"`
	Interruptions int `json:"interruptions"`
}

// NetworkJSON is the JSON representation of network info.
type NetworkJSON struct {
	Type       string `json:"type"`
	IP         string `json:"ip"`
	Status     string `json:"status"`
	Gateway    string `json:"gateway"`
	WifiStatus string `json:"wifi_status"`
	SSID       string `json:"ssid"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	PollMs      int64  `json:"poll_ms"`
	DebounceMs  int64  `json:"debounce_ms"`
	HeartbeatMs int64  `json:"heartbeat_ms"`
	Broker      string `json:"broker"`
	HTTPAddr    string `json:"http_addr"`
	MusicDir    string `json:"music_dir"`
	SampleRate  int    `json:"sample_rate"`
	Pins        [3]int `json:"pins"`
	History     bool   `json:"history"`
	MDNS        bool   `json:"mdns"`
}

// RecentJSON is one remembered player event, as listed by the web endpoint.
type RecentJSON struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Track     string `json:"track,omitempty"`
	BPM       int    `json:"bpm,omitempty"`
}

func newStatusInner(snap Snapshot) StatusInner {
	p := snap.Player
	mode := string(p.Mode)
	if mode == "" {
		mode = "UNKNOWN"
	}
	c := snap.Counts
	cfg := snap.Config

	inner := StatusInner{
		Player: PlayerJSON{
			Mode:     mode,
			Paused:   p.Paused,
			Track:    p.Track,
			Next:     p.Index,
			Band:     p.Band,
			BPM:      p.BPM,
			Estimate: p.Estimate,
			Session:  p.Session,
			Samples:  p.Samples,
		},
		UptimeSeconds: int64(snap.Uptime() / time.Second),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: cfg.Broker},
		Counts: CountsJSON{
			Left:          c.LeftPresses,
			Middle:        c.MiddlePresses,
			Right:         c.RightPresses,
			TracksPlayed:  c.TracksPlayed,
			Estimates:     c.Estimates,
			Interruptions: c.Interruptions,
		},
		Config: ConfigJSON{
			PollMs:      cfg.PollMs,
			DebounceMs:  cfg.DebounceMs,
			HeartbeatMs: cfg.HeartbeatMs,
			Broker:      cfg.Broker,
			HTTPAddr:    cfg.HTTPAddr,
			MusicDir:    cfg.MusicDir,
			SampleRate:  cfg.SampleRate,
			Pins:        cfg.Pins,
			History:     cfg.DBPath != "",
			MDNS:        cfg.MDNS,
		},
	}
	if n := snap.Network; n != nil {
		nj := NetworkJSON(*n)
		inner.Network = &nj
	}
	return inner
}

// FormatJSON renders the status for the web endpoint, newest event first.
// It carries no event/reason.
func FormatJSON(snap Snapshot) []byte {
	inner := newStatusInner(snap)
	for i := len(snap.Recent) - 1; i >= 0; i-- {
		e := snap.Recent[i]
		inner.Recent = append(inner.Recent, RecentJSON{
			Timestamp: e.Timestamp.UTC().Format(time.RFC3339),
			Event:     string(e.Type),
			Track:     e.Track,
			BPM:       e.BPM,
		})
	}
	data, _ := json.MarshalIndent(StatusJSON{Status: inner}, "", "  ")
	return data
}

// FormatStatusEvent renders the status as the payload of an MQTT system
// event. Recent events are left out to keep retained messages small.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := newStatusInner(snap)
	inner.Event, inner.Reason = event, reason
	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
