//go:build !linux

package codec

import "errors"

// I2CWriter is not available on non-Linux platforms.
type I2CWriter struct{}

// OpenI2C returns an error on non-Linux platforms.
func OpenI2C(bus int, addr byte) (*I2CWriter, error) {
	return nil, errors.New("codec: not supported on this platform (requires Linux)")
}

// WriteRegister is not implemented on non-Linux platforms.
func (w *I2CWriter) WriteRegister(addr, value byte) error {
	return errors.New("codec: not supported")
}

// Close is not implemented on non-Linux platforms.
func (w *I2CWriter) Close() error {
	return nil
}

// ResetLine is a no-op line on non-Linux platforms.
type ResetLine struct{}

// SetValue is not implemented on non-Linux platforms.
func (ResetLine) SetValue(int) error {
	return errors.New("codec: not supported")
}

// Close is not implemented on non-Linux platforms.
func (ResetLine) Close() error {
	return nil
}

// OpenResetLine returns an error on non-Linux platforms.
func OpenResetLine(chip string, pin int) (*ResetLine, error) {
	return nil, errors.New("codec: not supported on this platform (requires Linux)")
}
