//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
	"github.com/sweeney/rhythmia/internal/logic"
)

// RealButtons binds buttons on actual hardware using the Linux GPIO character device.
type RealButtons struct {
	chip  *gpiocdev.Chip
	lines [3]*gpiocdev.Line
}

// NewRealButtons requests the three button lines as pulled-down inputs and
// routes each line's rising edges to h.
func NewRealButtons(chipName string, pins Pins, h EdgeHandler) (*RealButtons, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	b := &RealButtons{chip: chip}
	for _, id := range logic.Buttons {
		line, err := chip.RequestLine(pins[id],
			gpiocdev.AsInput,
			gpiocdev.WithPullDown,
			gpiocdev.WithRisingEdge,
			gpiocdev.WithEventHandler(edgeHandler(id, h)))
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("request %s pin %d: %w", id, pins[id], err)
		}
		b.lines[id] = line
	}
	return b, nil
}

// edgeHandler returns the per-line event callback. Each line's callback runs
// on that line's watcher goroutine. Event timestamps are CLOCK_MONOTONIC.
func edgeHandler(id logic.ButtonID, h EdgeHandler) func(gpiocdev.LineEvent) {
	return func(evt gpiocdev.LineEvent) {
		if evt.Type != gpiocdev.LineEventRisingEdge {
			return
		}
		h.OnEdge(id, evt.Timestamp)
	}
}

// Levels returns the current raw button levels.
func (b *RealButtons) Levels() (bool, bool, bool, error) {
	var lv [3]bool
	for _, id := range logic.Buttons {
		v, err := b.lines[id].Value()
		if err != nil {
			return false, false, false, fmt.Errorf("read %s pin: %w", id, err)
		}
		lv[id] = v == 1
	}
	return lv[logic.ButtonLeft], lv[logic.ButtonMiddle], lv[logic.ButtonRight], nil
}

// Close releases GPIO resources.
// Reconfigures pins to input with pull-down (matching Pi boot defaults) before
// closing, which also drops edge detection.
func (b *RealButtons) Close() error {
	var errs []error

	for _, id := range logic.Buttons {
		line := b.lines[id]
		if line == nil {
			continue
		}
		if err := line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure %s pin: %w", id, err))
		}
		if err := line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s pin: %w", id, err))
		}
	}
	if b.chip != nil {
		if err := b.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
