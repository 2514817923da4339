// Package gpio binds the push buttons to their rising-edge handlers with
// hardware abstraction. The real implementation uses the Linux GPIO character
// device. The fake implementation allows testing without hardware.
package gpio

import (
	"time"

	"github.com/sweeney/rhythmia/internal/logic"
)

// EdgeHandler receives rising edges. now is a monotonic timestamp.
// Implementations are called from the line's event goroutine and must not block.
type EdgeHandler interface {
	OnEdge(id logic.ButtonID, now time.Duration) bool
}

// Buttons is a bound set of button lines.
type Buttons interface {
	// Levels returns the current raw levels (true = pressed) of the
	// Left, Middle and Right buttons.
	Levels() (left, middle, right bool, err error)

	// Close unbinds the handlers and releases GPIO resources.
	Close() error
}

// Pins holds the BCM offsets of the three buttons.
type Pins [3]int

// Default pin definitions (BCM numbering)
const (
	DefaultChip      = "gpiochip0"
	DefaultPinLeft   = 15
	DefaultPinMiddle = 14
	DefaultPinRight  = 13
)

// DefaultPins returns the default Left, Middle, Right offsets.
func DefaultPins() Pins {
	return Pins{DefaultPinLeft, DefaultPinMiddle, DefaultPinRight}
}
