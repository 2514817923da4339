package sensor

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// IIOReader reads an ADC channel exposed by the Linux IIO subsystem.
type IIOReader struct {
	path string
	bits int
}

// NewIIOReader creates a reader for the sysfs raw value file at path.
// bits is the ADC resolution; readings are left-shifted to 16 bits.
func NewIIOReader(path string, bits int) (*IIOReader, error) {
	if bits < 1 || bits > 16 {
		return nil, fmt.Errorf("adc resolution %d bits out of range 1..16", bits)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open adc channel: %w", err)
	}
	return &IIOReader{path: path, bits: bits}, nil
}

// ReadRaw returns the current reading scaled to 16 bits.
func (r *IIOReader) ReadRaw() (uint16, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return 0, fmt.Errorf("read adc: %w", err)
	}
	return scale(strings.TrimSpace(string(data)), r.bits)
}

// scale parses a raw ADC value and widens it to 16 bits.
func scale(raw string, bits int) (uint16, error) {
	v, err := strconv.ParseUint(raw, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("parse adc value %q: %w", raw, err)
	}
	limit := uint64(1)<<bits - 1
	if v > limit {
		v = limit
	}
	return uint16(v << (16 - bits)), nil
}
