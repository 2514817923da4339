// Package player runs the playback state machine: it consumes debounced button
// presses and pulse samples, and issues commands to the audio engine and the
// display. It never sleeps; timed behavior is expressed as deadlines compared
// against the time carried by each Input.
package player

import (
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/sweeney/rhythmia/internal/audio"
	"github.com/sweeney/rhythmia/internal/display"
	"github.com/sweeney/rhythmia/internal/logic"
)

// Default timings.
const (
	DefaultAckHold = 2 * time.Second // "on"/"off" acknowledgement stays up this long
	DefaultCadence = 4 * time.Second // displayed BPM refresh while a mood track plays
)

// Config holds controller parameters. Zero fields take defaults.
type Config struct {
	AckHold     time.Duration
	Cadence     time.Duration
	Library     Library
	Estimator   logic.Estimator
	HistorySize int
	// NewSessionID names each Rhythmia session. Defaults to uuid.NewString.
	NewSessionID func() string
}

func (c Config) withDefaults() Config {
	if c.AckHold <= 0 {
		c.AckHold = DefaultAckHold
	}
	if c.Cadence <= 0 {
		c.Cadence = DefaultCadence
	}
	if len(c.Library.Playlist) == 0 && len(c.Library.Chill) == 0 && len(c.Library.Hype) == 0 {
		c.Library = DefaultLibrary()
	}
	if c.Estimator == (logic.Estimator{}) {
		c.Estimator = logic.NewEstimator()
	}
	if c.HistorySize <= 0 {
		c.HistorySize = logic.MaxSamples
	}
	if c.NewSessionID == nil {
		c.NewSessionID = uuid.NewString
	}
	return c
}

// Input is one main-loop tick.
type Input struct {
	Time time.Time
	// Sample is a pulse reading, valid when Sampled is set.
	Sample  uint16
	Sampled bool
}

// State is a point-in-time view of the controller.
type State struct {
	Mode     logic.Mode
	Paused   bool
	Track    string
	Index    int // playlist position the next Right press plays
	Band     string
	BPM      int // last displayed BPM
	Estimate int // last measured estimate
	Session  string
	Samples  int
}

// Controller is the playback state machine. Not safe for concurrent use:
// Step and the accessors must be called from the main loop only.
type Controller struct {
	cfg     Config
	flags   *logic.EventFlags
	engine  audio.Engine
	display display.Display
	rand    logic.Rand
	history *logic.SampleHistory

	mode      logic.Mode
	paused    bool
	track     string
	index     int
	session   string
	selection logic.Selection
	shown     int
	estimate  int

	acking      bool
	ackUntil    time.Time
	nextRefresh time.Time

	now    time.Time
	events []logic.Event

	startTime     time.Time
	lastHeartbeat time.Time
	counts        logic.EventCounts
}

// NewController creates an idle controller. flags is the store the
// debouncer writes to; startTime is used for heartbeat uptime.
func NewController(cfg Config, flags *logic.EventFlags, engine audio.Engine, disp display.Display, rnd logic.Rand, startTime time.Time) *Controller {
	cfg = cfg.withDefaults()
	return &Controller{
		cfg:           cfg,
		flags:         flags,
		engine:        engine,
		display:       disp,
		rand:          rnd,
		history:       logic.NewSampleHistory(cfg.HistorySize),
		mode:          logic.ModeIdle,
		startTime:     startTime,
		lastHeartbeat: startTime,
	}
}

// Sampling reports whether the next Step wants a pulse sample.
func (c *Controller) Sampling() bool {
	return c.mode.Rhythmia() && !c.acking
}

// Step runs one main-loop iteration and returns the events it produced.
func (c *Controller) Step(in Input) []logic.Event {
	c.now = in.Time
	c.events = nil

	if c.acking {
		if c.now.Before(c.ackUntil) {
			return nil
		}
		c.acking = false
		c.display.ShowText(display.TextBlank)
	}

	// Left and Right cut a mood track short. The press stays pending so the
	// dispatch below acts on it in this same step.
	if c.mode == logic.ModeRhythmiaPlaying &&
		(c.flags.Peek(logic.ButtonLeft) || c.flags.Peek(logic.ButtonRight)) {
		c.interrupt()
	}

	if c.flags.Consume(logic.ButtonRight) {
		c.onRight()
	}
	if c.flags.Consume(logic.ButtonMiddle) {
		c.onMiddle()
	}
	if c.flags.Consume(logic.ButtonLeft) {
		c.onLeft()
	}
	if c.acking {
		return c.events
	}

	if c.mode.Rhythmia() && in.Sampled {
		c.history.Push(in.Sample)
	}

	switch c.mode {
	case logic.ModeRhythmiaArmed:
		// A playlist track started with Right while armed.
		if c.track != "" && !c.paused && !c.engine.IsPlaying() {
			c.emit(logic.EventTrackFinished, "")
			c.track = ""
		}
		c.tryEstimate()
	case logic.ModeRhythmiaPlaying:
		c.monitor()
	case logic.ModeDirectPlay:
		if !c.paused && !c.engine.IsPlaying() {
			c.emit(logic.EventTrackFinished, "")
			c.track = ""
			c.mode = logic.ModeIdle
		}
	}
	return c.events
}

// onRight plays the next playlist track from the start.
func (c *Controller) onRight() {
	c.counts.RightPresses++
	list := c.cfg.Library.Playlist
	if len(list) == 0 {
		return
	}
	if c.index >= len(list) {
		c.index = 0
	}
	track := list[c.index]
	c.index = (c.index + 1) % len(list)

	if !c.play(track) {
		if c.mode == logic.ModeDirectPlay {
			c.mode = logic.ModeIdle
		}
		return
	}
	if !c.mode.Rhythmia() {
		c.mode = logic.ModeDirectPlay
	}
	c.emit(logic.EventTrackStarted, logic.ButtonRight.String())
}

// onMiddle toggles pause on whatever is loaded.
func (c *Controller) onMiddle() {
	c.counts.MiddlePresses++
	if c.track == "" {
		return
	}
	if c.paused {
		c.engine.Resume()
		c.paused = false
		c.emit(logic.EventResumed, logic.ButtonMiddle.String())
		return
	}
	c.engine.Pause()
	c.paused = true
	c.emit(logic.EventPaused, logic.ButtonMiddle.String())
}

// onLeft toggles Rhythmia mode and starts the acknowledgement hold.
func (c *Controller) onLeft() {
	c.counts.LeftPresses++
	c.stop()

	if c.mode.Rhythmia() {
		c.mode = logic.ModeIdle
		c.emit(logic.EventRhythmiaOff, logic.ButtonLeft.String())
		c.session = ""
		c.selection = logic.Selection{}
		c.display.ShowText(display.TextOff)
	} else {
		c.mode = logic.ModeRhythmiaArmed
		c.history.Reset()
		c.session = c.cfg.NewSessionID()
		c.selection = logic.Selection{}
		c.emit(logic.EventRhythmiaOn, logic.ButtonLeft.String())
		c.display.ShowText(display.TextOn)
	}

	c.acking = true
	c.ackUntil = c.now.Add(c.cfg.AckHold)
}

// interrupt leaves the monitoring loop with the engine stopped. The next
// mood track needs a fresh measurement.
func (c *Controller) interrupt() {
	c.counts.Interruptions++
	c.emit(logic.EventInterrupted, "")
	c.stop()
	c.mode = logic.ModeRhythmiaArmed
	c.history.Reset()
}

// tryEstimate starts a mood track when the history yields a qualifying BPM.
func (c *Controller) tryEstimate() {
	bpm, ok := c.cfg.Estimator.Estimate(c.history)
	if !ok {
		return
	}
	c.counts.Estimates++
	c.estimate = bpm
	sel := logic.Select(bpm, c.rand)
	c.selection = sel
	c.emit(logic.EventBPMEstimated, "")

	pool := c.cfg.Library.Pool(sel.Pool)
	if len(pool) == 0 {
		c.history.Reset()
		return
	}
	track := pool[c.rand.IntN(len(pool))]
	if !c.play(track) {
		// Start over rather than retrying the same history every tick.
		c.history.Reset()
		return
	}

	c.mode = logic.ModeRhythmiaPlaying
	c.shown = sel.Display
	c.display.ShowDigits(sel.Display)
	c.nextRefresh = c.now.Add(c.cfg.Cadence)
	c.emit(logic.EventTrackStarted, "")
}

// monitor supervises a playing mood track.
func (c *Controller) monitor() {
	if !c.paused && !c.engine.IsPlaying() {
		c.emit(logic.EventTrackFinished, "")
		c.track = ""
		c.mode = logic.ModeRhythmiaArmed
		return
	}
	if c.now.Before(c.nextRefresh) {
		return
	}
	c.shown = c.selection.NextDisplay(c.rand)
	c.display.ShowDigits(c.shown)
	c.nextRefresh = c.nextRefresh.Add(c.cfg.Cadence)
	if c.nextRefresh.Before(c.now) {
		c.nextRefresh = c.now.Add(c.cfg.Cadence)
	}
}

// play stops the engine and starts track. Returns false if the engine refused it.
func (c *Controller) play(track string) bool {
	c.stop()
	if err := c.engine.Play(track, false); err != nil {
		log.Printf("player: play %s: %v", track, err)
		return false
	}
	c.track = track
	c.counts.TracksPlayed++
	return true
}

// stop leaves the engine stopped with no pause pending.
func (c *Controller) stop() {
	c.engine.Stop()
	c.paused = false
	c.track = ""
}

func (c *Controller) emit(t logic.EventType, button string) {
	e := logic.Event{
		Timestamp: c.now,
		Type:      t,
		Mode:      c.mode,
		Button:    button,
		Track:     c.track,
		BPM:       c.shown,
		Session:   c.session,
	}
	if c.mode.Rhythmia() || t == logic.EventRhythmiaOff {
		e.Band = c.selection.Band.Name
	}
	if t == logic.EventBPMEstimated {
		e.BPM = c.estimate
	}
	c.events = append(c.events, e)
}

// State returns the current controller state.
func (c *Controller) State() State {
	return State{
		Mode:     c.mode,
		Paused:   c.paused,
		Track:    c.track,
		Index:    c.index,
		Band:     c.selection.Band.Name,
		BPM:      c.shown,
		Estimate: c.estimate,
		Session:  c.session,
		Samples:  c.history.Len(),
	}
}

// Counts returns activity counters since startup.
func (c *Controller) Counts() logic.EventCounts {
	return c.counts
}

// CheckHeartbeat returns heartbeat data if the interval has elapsed since the
// last heartbeat (or startup). Returns nil if the interval has not elapsed,
// or if interval is <= 0 (disabled).
func (c *Controller) CheckHeartbeat(now time.Time, interval time.Duration) *logic.HeartbeatData {
	if interval <= 0 {
		return nil
	}
	if now.Sub(c.lastHeartbeat) < interval {
		return nil
	}

	c.lastHeartbeat = now
	return &logic.HeartbeatData{
		Timestamp: now,
		Uptime:    now.Sub(c.startTime),
		Counts:    c.counts,
	}
}
