package player

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunebox/internal/models"
	"github.com/desertthunder/tunebox/internal/shared"
)

const (
	defaultQuality  = "hd720"
	defaultDebounce = 200 * time.Millisecond
)

// Engine wraps a single [EmbeddedPlayer] handle for the whole session.
//
// It absorbs the player's asynchronous loading phase with a one-slot pending
// queue: a load requested while the player is buffering is parked (newest
// wins) and issued once the player reports it is playing again. Interrupting
// an in-flight load is the wrapped player's documented failure mode, so no
// command ever reaches it while buffering except through that slot.
type Engine struct {
	mu     sync.Mutex
	player EmbeddedPlayer
	logger *log.Logger

	quality  string
	debounce time.Duration
	now      func() time.Time

	initialized bool
	pending     string // pending-load slot, at most one video id
	volume      int
	haveVolume  bool
	lastFinish  time.Time
	onFinish    func()
}

// NewEngine creates an engine around the given player handle.
func NewEngine(p EmbeddedPlayer, cfg shared.PlayerConfig, logger *log.Logger) *Engine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	quality := cfg.Quality
	if quality == "" {
		quality = defaultQuality
	}
	debounce := cfg.Debounce()
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	return &Engine{
		player:   p,
		logger:   logger,
		quality:  quality,
		debounce: debounce,
		now:      time.Now,
	}
}

// SetTrackFinishedHandler registers the callback fired once per logical
// track finish. Must be set before playback starts.
func (e *Engine) SetTrackFinishedHandler(fn func()) {
	e.mu.Lock()
	e.onFinish = fn
	e.mu.Unlock()
}

// LoadAndPlay requests playback of the given video id.
//
// The first call initializes the player. While the player is buffering the
// id is stored in the pending-load slot, overwriting any previous pending
// id; the load is issued when the player next reports playing.
func (e *Engine) LoadAndPlay(videoID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loadAndPlay(videoID)
}

func (e *Engine) loadAndPlay(videoID string) error {
	if !e.initialized {
		e.initialized = true
		return e.player.Initialize(videoID)
	}

	if e.player.State() == models.StateBuffering {
		e.pending = videoID
		return nil
	}

	return e.player.Load(videoID)
}

// HandleReady adopts the player's reported volume once, defaulting to 100
// when the player starts muted.
func (e *Engine) HandleReady() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.haveVolume {
		return
	}
	v := e.player.Volume()
	if v == 0 {
		v = 100
	}
	e.volume = v
	e.haveVolume = true
	if err := e.player.SetVolume(v); err != nil {
		e.logger.Warn("failed to set initial volume", "err", err)
	}
}

// HandleStateChange processes a state transition reported by the player.
//
// Ended transitions within the debounce window of the previous one are
// dropped; the wrapped player fires duplicate finish events for a single
// logical finish. A Playing transition forces the quality tier (the first
// play otherwise starts at a low tier) and flushes the pending-load slot.
func (e *Engine) HandleStateChange(state models.PlayerState) {
	e.mu.Lock()

	switch state {
	case models.StateEnded:
		if e.now().Sub(e.lastFinish) < e.debounce {
			e.mu.Unlock()
			return
		}
		e.lastFinish = e.now()
		fn := e.onFinish
		e.mu.Unlock()
		if fn != nil {
			fn()
		}
		return

	case models.StatePlaying:
		if err := e.player.SetQuality(e.quality); err != nil {
			e.logger.Warn("failed to set quality", "quality", e.quality, "err", err)
		}
		if e.pending != "" {
			id := e.pending
			e.pending = ""
			if err := e.loadAndPlay(id); err != nil {
				e.logger.Error("failed to load pending video", "id", id, "err", err)
			}
		}
	}

	e.mu.Unlock()
}

// Play starts playback. No-op before the first load.
func (e *Engine) Play() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.initialized {
		return
	}
	if err := e.player.Play(); err != nil {
		e.logger.Warn("play command failed", "err", err)
	}
}

// Pause pauses playback. No-op before the first load.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.initialized {
		return
	}
	if err := e.player.Pause(); err != nil {
		e.logger.Warn("pause command failed", "err", err)
	}
}

// PlayPause issues the command complementary to the current state. It never
// assumes the command took effect; the player reports the transition later.
func (e *Engine) PlayPause() {
	if e.State() == models.StatePlaying {
		e.Pause()
	} else {
		e.Play()
	}
}

// State returns the player's current state, or [models.StateUnstarted]
// before initialization.
func (e *Engine) State() models.PlayerState {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.initialized {
		return models.StateUnstarted
	}
	return e.player.State()
}

// IsPlaying reports whether the player says it is currently playing.
func (e *Engine) IsPlaying() bool {
	return e.State() == models.StatePlaying
}

// IsPaused reports whether the player says it is currently paused.
func (e *Engine) IsPaused() bool {
	return e.State() == models.StatePaused
}

// Initialized reports whether the one-time player setup has run.
func (e *Engine) Initialized() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.initialized
}

// AdjustVolume shifts the volume by delta, clamped to [0, 100], unmuting
// before an increase. Returns the resulting volume, which persists across
// song loads. No-op before the first load.
func (e *Engine) AdjustVolume(delta int) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return e.volume
	}

	if delta > 0 && e.player.Muted() {
		if err := e.player.Unmute(); err != nil {
			e.logger.Warn("unmute failed", "err", err)
		}
	}

	e.volume += delta
	if e.volume > 100 {
		e.volume = 100
	}
	if e.volume < 0 {
		e.volume = 0
	}

	if err := e.player.SetVolume(e.volume); err != nil {
		e.logger.Warn("set volume failed", "volume", e.volume, "err", err)
	}

	return e.volume
}

// CurrentVolume returns the engine's tracked volume level.
func (e *Engine) CurrentVolume() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.volume
}
