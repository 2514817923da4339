//go:build linux

package display

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealTM1637 is a TM1637 driver owning its GPIO lines.
type RealTM1637 struct {
	*TM1637
	clk *gpiocdev.Line
	dio *gpiocdev.Line
}

// OpenTM1637 requests the CLK and DIO lines as open-drain outputs, idling high.
func OpenTM1637(chip string, pinCLK, pinDIO, brightness int) (*RealTM1637, error) {
	clk, err := gpiocdev.RequestLine(chip, pinCLK, gpiocdev.AsOutput(1), gpiocdev.AsOpenDrain)
	if err != nil {
		return nil, fmt.Errorf("request CLK pin %d: %w", pinCLK, err)
	}
	dio, err := gpiocdev.RequestLine(chip, pinDIO, gpiocdev.AsOutput(1), gpiocdev.AsOpenDrain)
	if err != nil {
		clk.Close()
		return nil, fmt.Errorf("request DIO pin %d: %w", pinDIO, err)
	}
	return &RealTM1637{
		TM1637: NewTM1637(clk, dio, brightness),
		clk:    clk,
		dio:    dio,
	}, nil
}

// Close blanks the display and releases the lines.
func (d *RealTM1637) Close() error {
	var errs []error
	if err := d.Write(EncodeText(TextBlank)); err != nil {
		errs = append(errs, fmt.Errorf("blank: %w", err))
	}
	if err := d.clk.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close CLK pin: %w", err))
	}
	if err := d.dio.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close DIO pin: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
