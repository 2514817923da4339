package logic

import (
	"testing"
	"time"
)

func TestNewDebouncer(t *testing.T) {
	var flags EventFlags
	d := NewDebouncer(0, &flags)
	if d.Window() != DefaultDebounce {
		t.Errorf("expected default window %v, got %v", DefaultDebounce, d.Window())
	}
	for _, id := range Buttons {
		b := d.Button(id)
		if b.ID != id {
			t.Errorf("button %s: expected ID %s, got %s", id, id, b.ID)
		}
		if b.Fired {
			t.Errorf("button %s: should not have fired", id)
		}
		if flags.Peek(id) {
			t.Errorf("button %s: flag should start clear", id)
		}
	}
}

func TestDebounceFirstEdgeAccepted(t *testing.T) {
	var flags EventFlags
	d := NewDebouncer(100*time.Millisecond, &flags)

	// Right after boot the monotonic clock may be below the window.
	if !d.OnEdge(ButtonLeft, 5*time.Millisecond) {
		t.Fatal("first edge should be accepted")
	}
	if !flags.Peek(ButtonLeft) {
		t.Error("expected left flag set")
	}
	if got := d.Button(ButtonLeft).LastFire; got != 5*time.Millisecond {
		t.Errorf("expected LastFire 5ms, got %v", got)
	}
}

func TestDebounceGaps(t *testing.T) {
	tests := []struct {
		name   string
		gap    time.Duration
		second bool
	}{
		{"bounce 1ms", 1 * time.Millisecond, false},
		{"bounce 50ms", 50 * time.Millisecond, false},
		{"exactly window", 100 * time.Millisecond, false},
		{"just past window", 101 * time.Millisecond, true},
		{"slow double press", 400 * time.Millisecond, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var flags EventFlags
			d := NewDebouncer(100*time.Millisecond, &flags)
			start := 10 * time.Second

			if !d.OnEdge(ButtonRight, start) {
				t.Fatal("first edge should be accepted")
			}
			if !flags.Consume(ButtonRight) {
				t.Fatal("expected pending right press")
			}

			got := d.OnEdge(ButtonRight, start+tt.gap)
			if got != tt.second {
				t.Errorf("second edge after %v: accepted=%v, want %v", tt.gap, got, tt.second)
			}
			if flags.Peek(ButtonRight) != tt.second {
				t.Errorf("second edge after %v: flag=%v, want %v", tt.gap, flags.Peek(ButtonRight), tt.second)
			}

			wantLast := start
			if tt.second {
				wantLast = start + tt.gap
			}
			if got := d.Button(ButtonRight).LastFire; got != wantLast {
				t.Errorf("LastFire: got %v, want %v", got, wantLast)
			}
		})
	}
}

func TestDebounceBounceTrain(t *testing.T) {
	var flags EventFlags
	d := NewDebouncer(100*time.Millisecond, &flags)

	// A burst of contact bounce every 10ms for 90ms counts once.
	accepted := 0
	for i := 0; i < 10; i++ {
		if d.OnEdge(ButtonMiddle, time.Second+time.Duration(i)*10*time.Millisecond) {
			accepted++
		}
	}
	if accepted != 1 {
		t.Errorf("expected 1 accepted edge, got %d", accepted)
	}
}

func TestDebounceSuppressedEdgeDoesNotExtendWindow(t *testing.T) {
	var flags EventFlags
	d := NewDebouncer(100*time.Millisecond, &flags)

	d.OnEdge(ButtonLeft, time.Second)
	d.OnEdge(ButtonLeft, time.Second+80*time.Millisecond) // suppressed
	flags.Consume(ButtonLeft)

	// 120ms after the accepted edge, 40ms after the suppressed one.
	if !d.OnEdge(ButtonLeft, time.Second+120*time.Millisecond) {
		t.Error("window should be measured from the last accepted edge")
	}
}

func TestDebounceFlagIsolation(t *testing.T) {
	var flags EventFlags
	d := NewDebouncer(100*time.Millisecond, &flags)

	d.OnEdge(ButtonRight, 3*time.Second)
	d.OnEdge(ButtonLeft, 3*time.Second+10*time.Millisecond)

	// Left firing must not touch Right's record, and vice versa.
	if got := d.Button(ButtonRight).LastFire; got != 3*time.Second {
		t.Errorf("right LastFire changed: %v", got)
	}
	if d.Button(ButtonMiddle).Fired {
		t.Error("middle should not have fired")
	}
	if flags.Peek(ButtonMiddle) {
		t.Error("middle flag should be clear")
	}
	if !flags.Peek(ButtonLeft) || !flags.Peek(ButtonRight) {
		t.Error("left and right flags should both be set")
	}

	flags.Consume(ButtonLeft)
	if !flags.Peek(ButtonRight) {
		t.Error("consuming left cleared right")
	}
}

func TestDebounceInvalidButton(t *testing.T) {
	var flags EventFlags
	d := NewDebouncer(100*time.Millisecond, &flags)
	if d.OnEdge(ButtonID(7), time.Second) {
		t.Error("invalid button should be ignored")
	}
}

func TestDebounceAllocationFree(t *testing.T) {
	var flags EventFlags
	d := NewDebouncer(100*time.Millisecond, &flags)
	now := time.Second
	allocs := testing.AllocsPerRun(100, func() {
		now += 150 * time.Millisecond
		d.OnEdge(ButtonLeft, now)
		flags.Consume(ButtonLeft)
	})
	if allocs != 0 {
		t.Errorf("OnEdge allocated %v times per run", allocs)
	}
}

func TestEventFlagsConsume(t *testing.T) {
	var flags EventFlags

	if flags.Consume(ButtonMiddle) {
		t.Error("consume of clear flag should return false")
	}

	flags.Set(ButtonMiddle)
	if !flags.Peek(ButtonMiddle) {
		t.Error("peek should see the set flag")
	}
	if !flags.Peek(ButtonMiddle) {
		t.Error("peek must not clear the flag")
	}
	if !flags.Consume(ButtonMiddle) {
		t.Error("consume should return true for a pending press")
	}
	if flags.Peek(ButtonMiddle) {
		t.Error("flag should be clear after consume")
	}
}

func TestButtonIDString(t *testing.T) {
	want := map[ButtonID]string{
		ButtonLeft:   "LEFT",
		ButtonMiddle: "MIDDLE",
		ButtonRight:  "RIGHT",
		ButtonID(9):  "UNKNOWN",
	}
	for id, s := range want {
		if id.String() != s {
			t.Errorf("ButtonID(%d).String() = %q, want %q", id, id.String(), s)
		}
	}
}
