//go:build !linux

package display

import "errors"

// RealTM1637 is not available on non-Linux platforms.
type RealTM1637 struct {
	*TM1637
}

// OpenTM1637 returns an error on non-Linux platforms.
func OpenTM1637(chip string, pinCLK, pinDIO, brightness int) (*RealTM1637, error) {
	return nil, errors.New("display: not supported on this platform (requires Linux)")
}

// Close is not implemented on non-Linux platforms.
func (d *RealTM1637) Close() error {
	return nil
}
