// Package status holds the rhythmia daemon's shared view of itself. The main
// loop writes it every tick; HTTP and websocket handlers read it.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/rhythmia/internal/logic"
	"github.com/sweeney/rhythmia/internal/player"
)

// RecentEvents is how many player events a Tracker remembers.
const RecentEvents = 20

// NetworkInfo mirrors the pi-helper network environment.
type NetworkInfo struct {
	Type       string
	IP         string
	Status     string
	Gateway    string
	WifiStatus string
	SSID       string
}

// Config is the daemon configuration as reported to clients.
type Config struct {
	PollMs      int64
	DebounceMs  int64
	HeartbeatMs int64
	Broker      string
	HTTPAddr    string
	MusicDir    string
	SampleRate  int
	Pins        [3]int // Left, Middle, Right
	DBPath      string // empty = history disabled
	MDNS        bool
}

// Snapshot is a copy of the daemon state at one instant.
type Snapshot struct {
	Player        player.State
	Counts        logic.EventCounts
	Recent        []logic.Event // oldest first
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Network       *NetworkInfo
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker guards a Snapshot for concurrent readers.
type Tracker struct {
	now func() time.Time

	mu     sync.RWMutex
	snap   Snapshot
	recent [RecentEvents]logic.Event
	head   int // next write position in recent
	filled int
}

// NewTracker creates an idle Tracker.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	t := &Tracker{now: time.Now}
	t.snap.StartTime = startTime
	t.snap.Config = cfg
	t.snap.Player.Mode = logic.ModeIdle
	return t
}

// Update replaces the controller state and counts. Called every tick.
func (t *Tracker) Update(state player.State, counts logic.EventCounts) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.snap.Player, t.snap.Counts = state, counts
}

// Record remembers a player event, evicting the oldest past RecentEvents.
// It never fails; the error return lets the main loop treat it as a sink.
func (t *Tracker) Record(event logic.Event) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.recent[t.head] = event
	t.head = (t.head + 1) % RecentEvents
	if t.filled < RecentEvents {
		t.filled++
	}
	return nil
}

// SetMQTTConnected records whether the broker connection is up.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.snap.MQTTConnected = connected
}

// SetNetwork records the latest network info; nil clears it.
func (t *Tracker) SetNetwork(info *NetworkInfo) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.snap.Network = info
}

// Snapshot returns a copy of the current state stamped with the current time.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	if t.filled > 0 {
		s.Recent = make([]logic.Event, t.filled)
		start := (t.head - t.filled + RecentEvents) % RecentEvents
		for i := range s.Recent {
			s.Recent[i] = t.recent[(start+i)%RecentEvents]
		}
	}
	t.mu.RUnlock()
	s.Now = t.now()
	return s
}
