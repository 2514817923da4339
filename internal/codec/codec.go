// Package codec brings up the audio codec once at boot: pulse its reset line,
// then write a fixed register table over I2C.
package codec

import (
	"fmt"
	"time"
)

// Register is one configuration write.
type Register struct {
	Addr  byte
	Value byte
	Note  string
}

// Table is an ordered list of register writes.
type Table []Register

// RegisterWriter writes a single codec register.
type RegisterWriter interface {
	WriteRegister(addr, value byte) error
}

// Line is the codec's active-low reset output.
type Line interface {
	SetValue(v int) error
}

// Defaults for the codec board.
const (
	DefaultAddr     = 0x18 // 0b0011000
	DefaultBus      = 1
	DefaultPinReset = 10

	ResetHold = 500 * time.Millisecond
)

// DefaultTable configures a TLV320AIC3x-family codec for 48 kHz playback with
// the PLL clocked from the I2S bit clock (BCLK = 48k * 16 bit * 2 ch = 1.536 MHz,
// J=32 R=2 P=1), both DACs routed to the headphone and common-mode outputs.
var DefaultTable = Table{
	// General setup
	{3, 0x81, "PLL on, P=1"},
	{4, 0x10, "J=32"},
	{11, 0x02, "R=2"},
	{12, 0x0f, "DAC filters on"},
	{102, 0xa2, "PLL and CLKDIV from BCLK"},
	{40, 0x81, "soft stepping, output common-mode 1.65V"},

	// Left outputs
	{47, 0xa7, "DAC_L1 to HPLOUT, lower volume"},
	{51, 0x0d, "HPLOUT power up"},
	{54, 0x80, "DAC_L1 to HPLCOM"},
	{58, 0x9d, "HPLCOM power up +9dB"},

	// Right outputs
	{64, 0xa7, "DAC_R1 to HPROUT, lower volume"},
	{65, 0x0d, "HPROUT power up"},
	{71, 0x80, "DAC_R1 to HPRCOM"},
	{72, 0x9d, "HPRCOM power up +9dB"},

	// DAC routing
	{7, 0x0a, "left and right DAC on, dual rate"},
	{37, 0xe0, "DACs on, HPLCOM single ended"},
	{38, 0x10, "HPRCOM single ended"},

	// Digital volume
	{43, 0x00, "unmute left DAC"},
	{44, 0x00, "unmute right DAC"},
}

// Configure applies table in order, stopping at the first failed write.
func Configure(w RegisterWriter, table Table) error {
	for i, r := range table {
		if err := w.WriteRegister(r.Addr, r.Value); err != nil {
			return fmt.Errorf("register %d (#%d, %s): %w", r.Addr, i, r.Note, err)
		}
	}
	return nil
}

// Reset holds the reset line low for hold, then releases it.
func Reset(l Line, hold time.Duration, sleep func(time.Duration)) error {
	if err := l.SetValue(0); err != nil {
		return fmt.Errorf("assert reset: %w", err)
	}
	sleep(hold)
	if err := l.SetValue(1); err != nil {
		return fmt.Errorf("release reset: %w", err)
	}
	return nil
}
