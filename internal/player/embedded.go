package player

import "github.com/desertthunder/tunebox/internal/models"

// EmbeddedPlayer is the capability interface for the wrapped media player.
//
// The player is asynchronous: commands may not take effect immediately and
// state transitions arrive later through [Engine.HandleStateChange]. The
// engine is the only caller; it serializes all commands and never issues a
// load while the player reports [models.StateBuffering].
type EmbeddedPlayer interface {
	// Initialize performs the one-time player setup, loading and playing
	// the given video. Called at most once per session.
	Initialize(videoID string) error

	// Load replaces the current media and starts playback.
	Load(videoID string) error

	Play() error
	Pause() error

	// State returns the player's last reported state.
	State() models.PlayerState

	SetVolume(v int) error
	Volume() int
	Muted() bool
	Unmute() error

	// SetQuality requests a playback quality tier (e.g. "hd720").
	SetQuality(quality string) error
}
