package display

import "strconv"

// Segment bits: a=0x01 b=0x02 c=0x04 d=0x08 e=0x10 f=0x20 g=0x40.
var digitSegments = [10]byte{0x3f, 0x06, 0x5b, 0x4f, 0x66, 0x6d, 0x7d, 0x07, 0x7f, 0x6f}

var letterSegments = map[rune]byte{
	' ': 0x00,
	'-': 0x40,
	'_': 0x08,
	'a': 0x77,
	'b': 0x7c,
	'c': 0x58,
	'd': 0x5e,
	'e': 0x79,
	'f': 0x71,
	'g': 0x3d,
	'h': 0x74,
	'i': 0x10,
	'j': 0x1e,
	'l': 0x38,
	'n': 0x54,
	'o': 0x5c,
	'p': 0x73,
	'r': 0x50,
	's': 0x6d,
	't': 0x78,
	'u': 0x1c,
	'y': 0x6e,
}

// encodeRune returns the segment pattern for r; unknown runes are blank.
func encodeRune(r rune) byte {
	if r >= '0' && r <= '9' {
		return digitSegments[r-'0']
	}
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	return letterSegments[r]
}

// EncodeText returns segment patterns for s, left-aligned and truncated to Width.
func EncodeText(s string) [Width]byte {
	var out [Width]byte
	i := 0
	for _, r := range s {
		if i == Width {
			break
		}
		out[i] = encodeRune(r)
		i++
	}
	return out
}

// EncodeDigits returns segment patterns for n, right-aligned. Values that do
// not fit are clamped to 9999 or -999.
func EncodeDigits(n int) [Width]byte {
	if n > 9999 {
		n = 9999
	}
	if n < -999 {
		n = -999
	}
	s := strconv.Itoa(n)
	for len(s) < Width {
		s = " " + s
	}
	return EncodeText(s)
}
