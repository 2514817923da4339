//go:build headless

package audio

import "errors"

// OtoEngine is not available in headless builds.
type OtoEngine struct{}

// NewOtoEngine returns an error in headless builds.
func NewOtoEngine(dir string, sampleRate int) (*OtoEngine, error) {
	return nil, errors.New("audio: not supported in headless builds")
}

func (e *OtoEngine) Play(track string, loop bool) error {
	return errors.New("audio: not supported")
}

func (e *OtoEngine) Pause() {}
func (e *OtoEngine) Resume() {}
func (e *OtoEngine) Stop() {}
func (e *OtoEngine) IsPlaying() bool { return false }
func (e *OtoEngine) Track() string { return "" }
func (e *OtoEngine) Close() error { return nil }
