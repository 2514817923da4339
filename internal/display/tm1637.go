package display

import (
	"fmt"
	"log"
	"time"
)

// TM1637 command bytes.
const (
	cmdDataAutoIncrement = 0x40
	cmdAddress           = 0xc0
	cmdDisplayOn         = 0x88 // | brightness 0..7
)

// DefaultBitDelay is the half-period of the bit-banged clock.
const DefaultBitDelay = 5 * time.Microsecond

// Line is one open-drain GPIO output. Writing 1 releases the line.
type Line interface {
	SetValue(v int) error
}

// TM1637 drives a TM1637 4-digit LED module.
type TM1637 struct {
	clk        Line
	dio        Line
	brightness byte
	delay      time.Duration
	sleep      func(time.Duration)
}

// NewTM1637 creates a driver on the given lines. Brightness is 0..7.
func NewTM1637(clk, dio Line, brightness int) *TM1637 {
	if brightness < 0 {
		brightness = 0
	}
	if brightness > 7 {
		brightness = 7
	}
	return &TM1637{
		clk:        clk,
		dio:        dio,
		brightness: byte(brightness),
		delay:      DefaultBitDelay,
		sleep:      time.Sleep,
	}
}

// ShowDigits shows n right-aligned.
func (d *TM1637) ShowDigits(n int) {
	if err := d.Write(EncodeDigits(n)); err != nil {
		log.Printf("display: show %d: %v", n, err)
	}
}

// ShowText shows s left-aligned.
func (d *TM1637) ShowText(s string) {
	if err := d.Write(EncodeText(s)); err != nil {
		log.Printf("display: show %q: %v", s, err)
	}
}

// Write sends four raw segment patterns to the module.
func (d *TM1637) Write(segs [Width]byte) error {
	if err := d.command(cmdDataAutoIncrement); err != nil {
		return fmt.Errorf("data command: %w", err)
	}

	if err := d.start(); err != nil {
		return err
	}
	if err := d.writeByte(cmdAddress); err != nil {
		return fmt.Errorf("address: %w", err)
	}
	for i, b := range segs {
		if err := d.writeByte(b); err != nil {
			return fmt.Errorf("digit %d: %w", i, err)
		}
	}
	if err := d.stop(); err != nil {
		return err
	}

	if err := d.command(cmdDisplayOn | d.brightness); err != nil {
		return fmt.Errorf("display control: %w", err)
	}
	return nil
}

func (d *TM1637) command(b byte) error {
	if err := d.start(); err != nil {
		return err
	}
	if err := d.writeByte(b); err != nil {
		return err
	}
	return d.stop()
}

// set drives one line and waits half a clock period.
func (d *TM1637) set(l Line, v int) error {
	if err := l.SetValue(v); err != nil {
		return err
	}
	d.sleep(d.delay)
	return nil
}

// start: DIO falls while CLK is high.
func (d *TM1637) start() error {
	if err := d.set(d.dio, 1); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	if err := d.set(d.clk, 1); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	if err := d.set(d.dio, 0); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	return nil
}

// stop: DIO rises while CLK is high.
func (d *TM1637) stop() error {
	for _, s := range []struct {
		l Line
		v int
	}{{d.clk, 0}, {d.dio, 0}, {d.clk, 1}, {d.dio, 1}} {
		if err := d.set(s.l, s.v); err != nil {
			return fmt.Errorf("stop: %w", err)
		}
	}
	return nil
}

// writeByte clocks b out LSB first, then clocks the ACK bit with DIO released.
// The ACK level is not read back.
func (d *TM1637) writeByte(b byte) error {
	for i := 0; i < 8; i++ {
		if err := d.set(d.clk, 0); err != nil {
			return err
		}
		if err := d.set(d.dio, int(b>>i)&1); err != nil {
			return err
		}
		if err := d.set(d.clk, 1); err != nil {
			return err
		}
	}
	if err := d.set(d.clk, 0); err != nil {
		return err
	}
	if err := d.set(d.dio, 1); err != nil {
		return err
	}
	if err := d.set(d.clk, 1); err != nil {
		return err
	}
	return d.set(d.clk, 0)
}
