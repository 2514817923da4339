// Package sensor reads the analog pulse sensor.
// The real implementation reads a Linux IIO ADC channel through sysfs.
// The fake implementation allows testing without hardware.
package sensor

// PulseReader reads one raw pulse sample.
type PulseReader interface {
	// ReadRaw returns the current reading scaled to 16 bits.
	ReadRaw() (uint16, error)
}

// DefaultIIOPath is the first voltage channel of the first IIO device.
const DefaultIIOPath = "/sys/bus/iio/devices/iio:device0/in_voltage0_raw"

// DefaultADCBits is the resolution of common SBC ADC hats.
const DefaultADCBits = 12
