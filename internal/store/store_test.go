package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/sweeney/rhythmia/internal/logic"
)

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "history.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestRecordAndRecent(t *testing.T) {
	s, _ := openTemp(t)
	t0 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	events := []logic.Event{
		{Timestamp: t0, Type: logic.EventRhythmiaOn, Mode: logic.ModeRhythmiaArmed, Button: "LEFT", Session: "s1"},
		{Timestamp: t0.Add(time.Second), Type: logic.EventBPMEstimated, Mode: logic.ModeRhythmiaArmed, BPM: 7, Band: "OUT_OF_RANGE", Session: "s1"},
		{Timestamp: t0.Add(time.Second), Type: logic.EventTrackStarted, Mode: logic.ModeRhythmiaPlaying, Track: "Flowers.wav", BPM: 85, Band: "OUT_OF_RANGE", Session: "s1"},
	}
	for _, e := range events {
		if err := s.Record(e); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	got, err := s.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d events, want 3", len(got))
	}
	// Newest first; same-timestamp rows in reverse insertion order.
	for i, want := range []logic.Event{events[2], events[1], events[0]} {
		g := got[i]
		if !g.Timestamp.Equal(want.Timestamp) {
			t.Errorf("event %d: timestamp %v, want %v", i, g.Timestamp, want.Timestamp)
		}
		g.Timestamp = want.Timestamp
		if g != want {
			t.Errorf("event %d:\ngot  %+v\nwant %+v", i, g, want)
		}
	}

	got, _ = s.Recent(1)
	if len(got) != 1 || got[0].Type != logic.EventTrackStarted {
		t.Errorf("Recent(1): got %+v", got)
	}
}

func TestTrackPlays(t *testing.T) {
	s, _ := openTemp(t)
	now := time.Now()

	for _, track := range []string{"AllMe.wav", "Flowers.wav", "AllMe.wav"} {
		s.Record(logic.Event{Timestamp: now, Type: logic.EventTrackStarted, Mode: logic.ModeDirectPlay, Track: track})
	}
	s.Record(logic.Event{Timestamp: now, Type: logic.EventTrackFinished, Mode: logic.ModeDirectPlay, Track: "AllMe.wav"})

	plays, err := s.TrackPlays()
	if err != nil {
		t.Fatalf("TrackPlays: %v", err)
	}
	if plays["AllMe.wav"] != 2 || plays["Flowers.wav"] != 1 || len(plays) != 2 {
		t.Errorf("plays: got %v", plays)
	}
}

func TestReopenKeepsHistory(t *testing.T) {
	s, path := openTemp(t)
	s.Record(logic.Event{Timestamp: time.Now(), Type: logic.EventPaused, Mode: logic.ModeDirectPlay})
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	got, err := s2.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 1 || got[0].Type != logic.EventPaused {
		t.Errorf("got %+v, want one PAUSED event", got)
	}
}
