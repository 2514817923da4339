//go:build linux

package codec

import (
	"fmt"
	"os"

	"github.com/warthog618/go-gpiocdev"
	"golang.org/x/sys/unix"
)

// i2cSlave is the I2C_SLAVE ioctl from <linux/i2c-dev.h>.
const i2cSlave = 0x0703

// I2CWriter writes codec registers through /dev/i2c-N.
type I2CWriter struct {
	f *os.File
}

// OpenI2C opens bus and selects the codec at addr.
func OpenI2C(bus int, addr byte) (*I2CWriter, error) {
	f, err := os.OpenFile(fmt.Sprintf("/dev/i2c-%d", bus), os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %d: %w", bus, err)
	}
	if err := unix.IoctlSetInt(int(f.Fd()), i2cSlave, int(addr)); err != nil {
		f.Close()
		return nil, fmt.Errorf("select i2c address %#x: %w", addr, err)
	}
	return &I2CWriter{f: f}, nil
}

// WriteRegister writes value to register addr.
func (w *I2CWriter) WriteRegister(addr, value byte) error {
	n, err := w.f.Write([]byte{addr, value})
	if err != nil {
		return err
	}
	if n != 2 {
		return fmt.Errorf("short i2c write: %d bytes", n)
	}
	return nil
}

// Close releases the bus.
func (w *I2CWriter) Close() error {
	return w.f.Close()
}

// OpenResetLine requests the codec reset pin as an output, idling released.
func OpenResetLine(chip string, pin int) (*gpiocdev.Line, error) {
	l, err := gpiocdev.RequestLine(chip, pin, gpiocdev.AsOutput(1))
	if err != nil {
		return nil, fmt.Errorf("request reset pin %d: %w", pin, err)
	}
	return l, nil
}
