package player

import (
	"errors"

	"github.com/sweeney/rhythmia/internal/logic"
)

// Library lists the tracks the player knows about.
type Library struct {
	// Playlist is cycled by the Right button.
	Playlist []string
	// Chill and Hype are the mood pools picked from in Rhythmia mode.
	Chill []string
	Hype  []string
}

// DefaultLibrary returns the tracks shipped on the SD card.
func DefaultLibrary() Library {
	return Library{
		Playlist: []string{
			"AllMe.wav", "BeforeYouGo.wav", "Exhausted.wav", "Flowers.wav", "FoundLove.wav",
			"HeatWaves.wav", "LoveYou.wav", "OnlyOne.wav", "RightNow.wav", "thanku.wav",
			"TheScientist.wav", "ThinkingLoud.wav", "TourLlif3.wav", "TreatYouBetter.wav", "YourEyes.wav",
		},
		Chill: []string{"AllMe.wav", "Exhausted.wav", "OnlyOne.wav", "TheScientist.wav", "ThinkingLoud.wav"},
		Hype: []string{
			"BeforeYouGo.wav", "Flowers.wav", "FoundLove.wav", "HeatWaves.wav", "LoveYou.wav",
			"RightNow.wav", "thanku.wav", "TourLlif3.wav", "TreatYouBetter.wav", "YourEyes.wav",
		},
	}
}

// Pool returns the tracks of pool p.
func (l Library) Pool(p logic.Pool) []string {
	if p == logic.PoolHype {
		return l.Hype
	}
	return l.Chill
}

// Validate checks that every list has at least one track.
func (l Library) Validate() error {
	var errs []error
	if len(l.Playlist) == 0 {
		errs = append(errs, errors.New("playlist is empty"))
	}
	if len(l.Chill) == 0 {
		errs = append(errs, errors.New("chill pool is empty"))
	}
	if len(l.Hype) == 0 {
		errs = append(errs, errors.New("hype pool is empty"))
	}
	return errors.Join(errs...)
}

// Tracks returns every distinct track name, playlist order first.
func (l Library) Tracks() []string {
	seen := make(map[string]bool)
	var out []string
	for _, list := range [][]string{l.Playlist, l.Chill, l.Hype} {
		for _, t := range list {
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	return out
}
