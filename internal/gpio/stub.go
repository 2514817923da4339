//go:build !linux

package gpio

import "errors"

// RealButtons is not available on non-Linux platforms.
type RealButtons struct{}

// NewRealButtons returns an error on non-Linux platforms.
func NewRealButtons(chipName string, pins Pins, h EdgeHandler) (*RealButtons, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}

// Levels is not implemented on non-Linux platforms.
func (b *RealButtons) Levels() (bool, bool, bool, error) {
	return false, false, false, errors.New("gpio: not supported")
}

// Close is not implemented on non-Linux platforms.
func (b *RealButtons) Close() error {
	return nil
}
