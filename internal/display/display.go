// Package display drives the 4-digit status display.
// The real implementation bit-bangs a TM1637 module over two GPIO lines.
// The fake implementation records what was shown.
package display

// Display shows short status on a 4-character panel. Writes are best-effort.
type Display interface {
	// ShowDigits shows n right-aligned.
	ShowDigits(n int)

	// ShowText shows up to four characters, left-aligned.
	ShowText(s string)
}

// Width is the number of character cells.
const Width = 4

// Messages shown by the player.
const (
	TextOn    = "  on"
	TextOff   = " off"
	TextReset = " rst"
	TextBlank = "    "
)

// Default BCM pins for the TM1637 module.
const (
	DefaultPinCLK = 3
	DefaultPinDIO = 2
)
