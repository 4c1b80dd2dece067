// Package voice turns a narration script into the tutorial's voice track.
package voice

import (
	"context"
	"errors"
)

// ErrUnauthorized means the TTS provider rejected the configured API key.
// Callers treat it as a cue to fall back to the mock provider.
var ErrUnauthorized = errors.New("tts provider rejected api key")

// Provider synthesizes speech for a text passage and returns encoded audio
// bytes ready to write to disk.
type Provider interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}
