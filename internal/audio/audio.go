// Package audio provides track playback with abstraction for testing.
// The real engine decodes WAV files and plays them through the system audio device.
// The fake engine records calls and lets tests decide when a track ends.
package audio

// Engine plays one track at a time. Play starts playback and returns
// without waiting for the track to finish; IsPlaying is polled to detect
// completion.
type Engine interface {
	// Play stops whatever is playing and starts track from the beginning.
	Play(track string, loop bool) error

	// Pause suspends the current track. No-op when nothing is loaded.
	Pause()

	// Resume continues a paused track. No-op when nothing is loaded.
	Resume()

	// Stop ends playback and releases the current track.
	Stop()

	// IsPlaying reports whether audio is being produced. A paused or
	// finished track is not playing.
	IsPlaying() bool
}

// Output format shared by the engine and its PCM adapter.
const (
	DefaultSampleRate = 48000
	channelCount      = 2
	bytesPerSample    = 2 // signed 16-bit little endian
)
