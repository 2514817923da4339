//go:build !headless

package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
)

// resampleQuality is beep's interpolation quality for rate conversion.
const resampleQuality = 4

// OtoEngine plays WAV tracks from a directory through the system audio device.
type OtoEngine struct {
	dir  string
	ctx  *oto.Context
	rate beep.SampleRate

	mu     sync.Mutex
	player *oto.Player
	stream beep.StreamSeekCloser
	track  string
}

// NewOtoEngine opens the audio device at the given sample rate.
// Track names passed to Play are resolved relative to dir.
func NewOtoEngine(dir string, sampleRate int) (*OtoEngine, error) {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channelCount,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, fmt.Errorf("open audio context: %w", err)
	}
	<-ready

	return &OtoEngine{
		dir:  dir,
		ctx:  ctx,
		rate: beep.SampleRate(sampleRate),
	}, nil
}

// Play stops the current track and starts track from the beginning.
func (e *OtoEngine) Play(track string, loop bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopLocked()

	f, err := os.Open(filepath.Join(e.dir, track))
	if err != nil {
		return fmt.Errorf("open track %s: %w", track, err)
	}
	stream, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("decode track %s: %w", track, err)
	}

	var wrap func(beep.Streamer) beep.Streamer
	if format.SampleRate != e.rate {
		from, to := format.SampleRate, e.rate
		wrap = func(s beep.Streamer) beep.Streamer {
			return beep.Resample(resampleQuality, from, to, s)
		}
	}

	e.stream = stream
	e.track = track
	e.player = e.ctx.NewPlayer(newPCMReader(stream, e.rate, loop, wrap))
	e.player.Play()
	return nil
}

// Pause suspends the current track.
func (e *OtoEngine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.player != nil {
		e.player.Pause()
	}
}

// Resume continues a paused track.
func (e *OtoEngine) Resume() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.player != nil {
		e.player.Play()
	}
}

// Stop ends playback and closes the current track.
func (e *OtoEngine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopLocked()
}

func (e *OtoEngine) stopLocked() {
	if e.player != nil {
		e.player.Pause()
		e.player.Close()
		e.player = nil
	}
	if e.stream != nil {
		e.stream.Close()
		e.stream = nil
	}
	e.track = ""
}

// IsPlaying reports whether the current track is producing audio.
func (e *OtoEngine) IsPlaying() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.player != nil && e.player.IsPlaying()
}

// Track returns the name of the loaded track, or "" if none.
func (e *OtoEngine) Track() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.track
}

// Close stops playback.
func (e *OtoEngine) Close() error {
	e.Stop()
	return nil
}
