package player

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunebox/internal/models"
	"github.com/desertthunder/tunebox/internal/shared"
)

const watchURLPrefix = "https://www.youtube.com/watch?v="

// BrowserPlayer is a best-effort [EmbeddedPlayer] binding for terminal
// sessions: loads hand the watch URL to the system browser, which then owns
// actual playback. State, volume, and quality are tracked locally so the
// engine and controller behave consistently, but they do not reach into the
// browser tab.
type BrowserPlayer struct {
	mu      sync.Mutex
	open    func(url string) error
	logger  *log.Logger
	state   models.PlayerState
	volume  int
	muted   bool
	quality string
}

// NewBrowserPlayer creates a browser-backed player.
func NewBrowserPlayer(logger *log.Logger) *BrowserPlayer {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &BrowserPlayer{
		open:   shared.OpenBrowser,
		logger: logger,
		state:  models.StateUnstarted,
		volume: 100,
	}
}

func (b *BrowserPlayer) Initialize(videoID string) error {
	return b.Load(videoID)
}

func (b *BrowserPlayer) Load(videoID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.open(watchURLPrefix + videoID); err != nil {
		return err
	}
	b.state = models.StatePlaying
	b.logger.Info("opened video in browser", "id", videoID)
	return nil
}

func (b *BrowserPlayer) Play() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == models.StatePaused {
		b.state = models.StatePlaying
	}
	return nil
}

func (b *BrowserPlayer) Pause() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == models.StatePlaying {
		b.state = models.StatePaused
	}
	return nil
}

func (b *BrowserPlayer) State() models.PlayerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *BrowserPlayer) SetVolume(v int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.volume = v
	return nil
}

func (b *BrowserPlayer) Volume() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.volume
}

func (b *BrowserPlayer) Muted() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.muted
}

func (b *BrowserPlayer) Unmute() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.muted = false
	return nil
}

func (b *BrowserPlayer) SetQuality(quality string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.quality = quality
	return nil
}
