package logic

// Pool names a song pool.
type Pool string

const (
	PoolChill Pool = "CHILL"
	PoolHype  Pool = "HYPE"
)

// Band is one row of the BPM classification table.
type Band struct {
	Name     string
	Low      int // inclusive
	High     int // inclusive
	Pool     Pool
	Fallback bool
}

// Contains reports whether bpm falls inside the band's range.
func (b Band) Contains(bpm int) bool {
	return bpm >= b.Low && bpm <= b.High
}

// Band table parameters.
const (
	// displayJitter narrows a band's range for the simulated BPM shown while a
	// mood track plays, and bounds the fallback band's drift around its seed.
	displayJitter = 2

	fallbackSeedLow  = 65
	fallbackSeedHigh = 85
	// fallbackHypeFrom is the seed value at which the fallback band picks the hype pool.
	fallbackHypeFrom = 80
)

// Bands is the closed classification table, lowest first.
var Bands = []Band{
	{Name: "60-69", Low: 60, High: 69, Pool: PoolChill},
	{Name: "70-79", Low: 70, High: 79, Pool: PoolChill},
	{Name: "80-89", Low: 80, High: 89, Pool: PoolHype},
	{Name: "90-99", Low: 90, High: 99, Pool: PoolHype},
}

// FallbackBand catches every estimate outside the table.
var FallbackBand = Band{Name: "OUT_OF_RANGE", Low: fallbackSeedLow, High: fallbackSeedHigh, Fallback: true}

// Classify maps an estimate to exactly one band.
func Classify(bpm int) Band {
	for _, b := range Bands {
		if b.Contains(bpm) {
			return b
		}
	}
	return FallbackBand
}

// Rand is the source of randomness for pool picks and the displayed BPM.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// RandRange returns a uniform integer in [lo, hi].
func RandRange(r Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.IntN(hi-lo+1)
}

// Selection is the playback decision for one qualifying estimate.
type Selection struct {
	Band    Band
	Pool    Pool
	Display int // first BPM figure shown
	// DisplayLow and DisplayHigh bound the simulated BPM refreshed while the track plays.
	DisplayLow  int
	DisplayHigh int
}

// Select classifies bpm and decides the pool and the displayed BPM range.
// Table bands show the estimate and then jitter inside the band; the
// fallback band draws a seed from its range, picks the pool by comparing the
// seed to the hype threshold and drifts around that seed.
func Select(bpm int, r Rand) Selection {
	b := Classify(bpm)
	if !b.Fallback {
		return Selection{
			Band:        b,
			Pool:        b.Pool,
			Display:     bpm,
			DisplayLow:  b.Low + displayJitter,
			DisplayHigh: b.High - displayJitter,
		}
	}
	seed := RandRange(r, b.Low, b.High)
	return Selection{
		Band:        b,
		Pool:        FallbackPool(seed),
		Display:     seed,
		DisplayLow:  seed - displayJitter,
		DisplayHigh: seed + displayJitter,
	}
}

// FallbackPool is the fallback band's secondary threshold.
func FallbackPool(seed int) Pool {
	if seed < fallbackHypeFrom {
		return PoolChill
	}
	return PoolHype
}

// NextDisplay draws a fresh simulated BPM for the monitoring display.
func (s Selection) NextDisplay(r Rand) int {
	return RandRange(r, s.DisplayLow, s.DisplayHigh)
}
