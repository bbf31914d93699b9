package player

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunebox/internal/models"
	"github.com/desertthunder/tunebox/internal/services"
	"github.com/desertthunder/tunebox/internal/shared"
)

const (
	defaultAdvanceDelay = 2 * time.Second
	defaultVolumeStep   = 15
	similarTrackLimit   = 10
)

// PlaylistFetcher loads persisted playlists by their URL path.
type PlaylistFetcher interface {
	GetByURL(url string) (*models.Playlist, error)
}

// Controller orchestrates the playlist store, the playback engine, and the
// resolution pipeline in response to user actions and engine callbacks.
//
// It owns the current position and the shuffle/repeat flags. All its methods
// are safe for concurrent use; timers and engine callbacks funnel through
// the same mutex.
type Controller struct {
	store    *Store
	engine   *Engine
	resolver services.Resolver
	metadata services.MetadataProvider
	fetcher  PlaylistFetcher
	logger   *log.Logger
	emit     func(Event)

	baseCtx      context.Context
	advanceDelay time.Duration
	volumeStep   int
	intn         func(n int) int
	after        func(d time.Duration, fn func())

	// mu guards position, playlist, and mode flags.
	mu       sync.Mutex
	playlist models.Playlist
	position int // -1 when nothing has played yet
	shuffle  bool
	repeat   bool
}

// ControllerOpts contains the collaborators and tuning for a Controller.
type ControllerOpts struct {
	Store    *Store
	Engine   *Engine
	Resolver services.Resolver
	Metadata services.MetadataProvider // optional; derived playlist loads fail without it
	Fetcher  PlaylistFetcher           // optional; URL loads fail without it
	Logger   *log.Logger
	Config   shared.PlayerConfig
	Emit     func(Event) // optional event sink; must not block
}

// NewController wires a controller and registers its track-finished handler
// on the engine.
func NewController(ctx context.Context, opts ControllerOpts) *Controller {
	if opts.Store == nil {
		opts.Store = NewStore()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	delay := opts.Config.AutoAdvance()
	if delay <= 0 {
		delay = defaultAdvanceDelay
	}
	step := opts.Config.VolumeStep
	if step <= 0 {
		step = defaultVolumeStep
	}

	c := &Controller{
		store:        opts.Store,
		engine:       opts.Engine,
		resolver:     opts.Resolver,
		metadata:     opts.Metadata,
		fetcher:      opts.Fetcher,
		logger:       opts.Logger,
		emit:         opts.Emit,
		baseCtx:      ctx,
		advanceDelay: delay,
		volumeStep:   step,
		intn:         rand.Intn,
		after: func(d time.Duration, fn func()) {
			time.AfterFunc(d, fn)
		},
		position: -1,
	}

	if c.engine != nil {
		c.engine.SetTrackFinishedHandler(c.HandleTrackFinished)
	}

	return c
}

func (c *Controller) send(ev Event) {
	if c.emit != nil {
		c.emit(ev)
	}
}

// PlayAt makes index the current position and starts the resolve-then-play
// sequence for the song there. No-op when the index is out of range.
//
// The position captured at call time is re-checked after the network
// round-trip: a resolution that comes back for a position the user has
// already navigated away from is discarded.
func (c *Controller) PlayAt(ctx context.Context, index int, userInitiated bool) error {
	c.mu.Lock()
	song, ok := c.store.At(index)
	if !ok {
		c.mu.Unlock()
		return nil
	}
	c.position = index
	playlistTitle := c.playlist.Title
	c.mu.Unlock()

	c.send(positionEvent(index))
	if userInitiated {
		// Permission prompts are deferred until the user interacts.
		c.send(permissionEvent())
	} else {
		c.send(notificationEvent(song))
	}

	videoID, err := c.resolver.Resolve(ctx, song.Title, song.Artist)
	if err != nil {
		if errors.Is(err, shared.ErrTrackNotFound) {
			c.markMissing(index)
			return nil
		}
		c.logger.Error("resolution failed", "title", song.Title, "artist", song.Artist, "err", err)
		return err
	}

	c.mu.Lock()
	if c.position != index {
		c.mu.Unlock()
		c.logger.Debug("discarding stale resolution", "index", index, "video", videoID)
		return nil
	}
	c.mu.Unlock()

	if err := c.engine.LoadAndPlay(videoID); err != nil {
		return fmt.Errorf("failed to start playback: %w", err)
	}

	title := fmt.Sprintf("%s by %s", song.Title, song.Artist)
	if playlistTitle != "" {
		title = fmt.Sprintf("%s - %s", title, playlistTitle)
	}
	c.send(nowPlayingEvent(index, song, videoID, title))
	return nil
}

// markMissing flags the song and schedules an automatic advance, giving the
// user a moment to navigate past the gap themselves. The advance is dropped
// if the position has changed by the time the timer fires.
func (c *Controller) markMissing(index int) {
	c.store.MarkMissing(index)
	c.send(missingEvent(index))

	c.after(c.advanceDelay, func() {
		c.mu.Lock()
		stale := c.position != index
		c.mu.Unlock()
		if stale {
			return
		}
		if err := c.PlayNext(c.baseCtx, false); err != nil {
			c.logger.Warn("auto-advance failed", "err", err)
		}
	})
}

// PlayNext plays the next song: a uniformly random index in shuffle mode
// (the current song may repeat), otherwise the following index. Forward
// navigation stops at the end of the list; wrap-around is the finish-event
// path's business, not this one's.
func (c *Controller) PlayNext(ctx context.Context, userInitiated bool) error {
	c.mu.Lock()
	n := c.store.Len()
	if n == 0 {
		c.mu.Unlock()
		return nil
	}

	var next int
	if c.shuffle {
		next = c.intn(n)
	} else {
		if c.position >= n-1 {
			c.mu.Unlock()
			return nil
		}
		next = c.position + 1
	}
	c.mu.Unlock()

	return c.PlayAt(ctx, next, userInitiated)
}

// PlayPrev plays the previous song. No-op at position 0.
func (c *Controller) PlayPrev(ctx context.Context) error {
	c.mu.Lock()
	if c.position <= 0 {
		c.mu.Unlock()
		return nil
	}
	prev := c.position - 1
	c.mu.Unlock()

	return c.PlayAt(ctx, prev, true)
}

// HandleTrackFinished reacts to the engine's debounced finish signal:
// replay the current position in repeat mode, otherwise advance.
func (c *Controller) HandleTrackFinished() {
	c.mu.Lock()
	repeat := c.repeat
	pos := c.position
	c.mu.Unlock()

	if repeat && pos >= 0 {
		if err := c.PlayAt(c.baseCtx, pos, false); err != nil {
			c.logger.Warn("repeat replay failed", "err", err)
		}
		return
	}

	if err := c.PlayNext(c.baseCtx, false); err != nil {
		c.logger.Warn("advance on finish failed", "err", err)
	}
}

// ToggleShuffle flips shuffle mode, or sets it when force is given.
// Returns the new value.
func (c *Controller) ToggleShuffle(force ...bool) bool {
	c.mu.Lock()
	if len(force) > 0 {
		c.shuffle = force[0]
	} else {
		c.shuffle = !c.shuffle
	}
	s, r := c.shuffle, c.repeat
	c.mu.Unlock()

	c.send(modeEvent(s, r))
	return s
}

// ToggleRepeat flips repeat mode, or sets it when force is given.
// Returns the new value.
func (c *Controller) ToggleRepeat(force ...bool) bool {
	c.mu.Lock()
	if len(force) > 0 {
		c.repeat = force[0]
	} else {
		c.repeat = !c.repeat
	}
	s, r := c.shuffle, c.repeat
	c.mu.Unlock()

	c.send(modeEvent(s, r))
	return r
}

// LoadPlaylist replaces the active playlist wholesale, resets the position,
// and starts playback from the top. Empty playlists are fine; they simply
// produce no playback. When pushView is set a view event is emitted for the
// history layer.
func (c *Controller) LoadPlaylist(ctx context.Context, pl models.Playlist, pushView bool) error {
	c.mu.Lock()
	c.playlist = pl
	c.store.Replace(pl.Songs)
	c.position = -1
	c.mu.Unlock()

	c.send(playlistEvent(pl))
	if pushView {
		c.send(viewEvent(pl))
	}

	return c.PlayAt(ctx, 0, true)
}

// LoadPlaylistByURL fetches a persisted playlist by its URL path and loads it.
func (c *Controller) LoadPlaylistByURL(ctx context.Context, url string) error {
	if c.fetcher == nil {
		return fmt.Errorf("no playlist store configured: %w", shared.ErrPlaylistNotFound)
	}

	pl, err := c.fetcher.GetByURL(url)
	if err != nil {
		return fmt.Errorf("failed to load playlist %s: %w", url, err)
	}

	return c.LoadPlaylist(ctx, *pl, true)
}

// LoadPlaylistForArtist builds and loads a playlist of the artist's top
// tracks.
func (c *Controller) LoadPlaylistForArtist(ctx context.Context, artist string) error {
	if c.metadata == nil {
		return shared.ErrNotImplemented
	}

	tl, err := c.metadata.TopTracks(ctx, artist)
	if err != nil {
		return fmt.Errorf("failed to fetch top tracks for %s: %w", artist, err)
	}

	return c.LoadPlaylist(ctx, services.PlaylistFromArtistTracks(tl), true)
}

// LoadPlaylistForAlbum builds and loads a playlist from an album listing.
func (c *Controller) LoadPlaylistForAlbum(ctx context.Context, artist, album string) error {
	if c.metadata == nil {
		return shared.ErrNotImplemented
	}

	info, err := c.metadata.AlbumInfo(ctx, artist, album)
	if err != nil {
		return fmt.Errorf("failed to fetch album %s: %w", album, err)
	}

	return c.LoadPlaylist(ctx, services.PlaylistFromAlbum(info), true)
}

// LoadPlaylistForSong builds and loads a playlist of tracks similar to the
// given song, with the song itself first. When the provider does not know
// the artist the playlist degrades to just the requested song, which can
// still resolve through search.
func (c *Controller) LoadPlaylistForSong(ctx context.Context, artist, title string) error {
	if c.metadata == nil {
		return shared.ErrNotImplemented
	}

	tl, err := c.metadata.SimilarTracks(ctx, artist, title, similarTrackLimit)
	if err != nil {
		if !errors.Is(err, shared.ErrArtistNotFound) {
			return fmt.Errorf("failed to fetch similar tracks: %w", err)
		}
		c.logger.Info("artist unknown to provider, playing song alone", "artist", artist, "title", title)
		tl = nil
	}

	return c.LoadPlaylist(ctx, services.PlaylistFromSimilarTracks(title, artist, tl), true)
}

// AddSong appends a song to the playlist. Playback starts when the playlist
// was empty with nothing playing, and also when the player sits in the
// ended state; both triggers are checked.
func (c *Controller) AddSong(ctx context.Context, song models.Song) error {
	c.mu.Lock()
	wasEmpty := c.store.Len() == 0
	length := c.store.Insert(song)
	c.mu.Unlock()

	c.send(addedEvent(length-1, length))

	var err error
	if wasEmpty && !c.engine.IsPlaying() {
		err = c.PlayAt(ctx, 0, true)
	}
	if c.engine.State() == models.StateEnded {
		err = c.PlayAt(ctx, length-1, true)
	}
	return err
}

// RemoveSong deletes the song at index. Removing the currently-playing
// entry decrements the position so the next-song computation lands on the
// entry that followed the removed one; it does not start new playback.
func (c *Controller) RemoveSong(index int) error {
	c.mu.Lock()
	if err := c.store.Remove(index); err != nil {
		c.mu.Unlock()
		return err
	}
	if c.position == index {
		c.position--
	}
	length := c.store.Len()
	c.mu.Unlock()

	c.send(removedEvent(index, length))
	return nil
}

// ReorderSong relocates a song. The current position follows the logical
// song: moving the playing entry moves the position with it, and moving
// another entry across the playing one shifts the position by one.
func (c *Controller) ReorderSong(oldIndex, newIndex int) error {
	c.mu.Lock()
	if oldIndex == newIndex {
		c.mu.Unlock()
		return nil
	}
	if err := c.store.Move(oldIndex, newIndex); err != nil {
		c.mu.Unlock()
		return err
	}

	switch {
	case c.position == oldIndex:
		c.position = newIndex
	case oldIndex < c.position && newIndex >= c.position:
		c.position--
	case oldIndex > c.position && newIndex <= c.position:
		c.position++
	}
	length := c.store.Len()
	c.mu.Unlock()

	c.send(movedEvent(oldIndex, newIndex, length))
	return nil
}

// MoveCurrentSongUp moves the playing song one slot earlier.
func (c *Controller) MoveCurrentSongUp() error {
	c.mu.Lock()
	pos := c.position
	c.mu.Unlock()
	if pos <= 0 {
		return nil
	}
	return c.ReorderSong(pos, pos-1)
}

// MoveCurrentSongDown moves the playing song one slot later.
func (c *Controller) MoveCurrentSongDown() error {
	c.mu.Lock()
	pos := c.position
	last := c.store.Len() - 1
	c.mu.Unlock()
	if pos < 0 || pos >= last {
		return nil
	}
	return c.ReorderSong(pos, pos+1)
}

// MoveSongToTop moves the song at index to the front of the playlist.
func (c *Controller) MoveSongToTop(index int) error {
	return c.ReorderSong(index, 0)
}

// Play resumes playback.
func (c *Controller) Play() { c.engine.Play() }

// Pause pauses playback.
func (c *Controller) Pause() { c.engine.Pause() }

// PlayPause toggles between playing and paused.
func (c *Controller) PlayPause() { c.engine.PlayPause() }

// IncreaseVolume raises the volume by one step.
func (c *Controller) IncreaseVolume() {
	c.send(volumeEvent(c.engine.AdjustVolume(c.volumeStep)))
}

// DecreaseVolume lowers the volume by one step.
func (c *Controller) DecreaseVolume() {
	c.send(volumeEvent(c.engine.AdjustVolume(-c.volumeStep)))
}

// Position returns the current position, or -1 when nothing has played.
func (c *Controller) Position() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

// Shuffle reports whether shuffle mode is on.
func (c *Controller) Shuffle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.shuffle
}

// Repeat reports whether repeat mode is on.
func (c *Controller) Repeat() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.repeat
}

// Playlist returns the active playlist metadata with the store's current
// song ordering.
func (c *Controller) Playlist() models.Playlist {
	c.mu.Lock()
	pl := c.playlist
	c.mu.Unlock()
	pl.Songs = c.store.Songs()
	return pl
}
