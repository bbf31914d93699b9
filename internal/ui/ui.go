package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tunebox/internal/models"
	"github.com/desertthunder/tunebox/internal/player"
)

// Model represents the TUI application state.
type Model struct {
	ctx    context.Context
	ctrl   *player.Controller
	events <-chan player.Event

	width  int
	height int

	songs      list.Model
	haveList   bool
	playingIdx int
	nowPlaying string
	shuffle    bool
	repeat     bool
	volume     int
	notice     string
	err        error

	help help.Model
	keys keyMap
}

// NewModel creates a new TUI model around a controller and its event stream.
// The channel must be the sink the controller was constructed with.
func NewModel(ctx context.Context, ctrl *player.Controller, events <-chan player.Event) *Model {
	return &Model{
		ctx:        ctx,
		ctrl:       ctrl,
		events:     events,
		playingIdx: -1,
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

// Init starts the event pump and renders the playlist the controller
// already holds.
func (m *Model) Init() tea.Cmd {
	m.setPlaylist(m.ctrl.Playlist())
	return m.waitForEvent()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.haveList {
			m.songs.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateList(msg)
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case matches(msg, k.quit):
		return m, tea.Quit

	case matches(msg, k.play):
		index := m.songs.Index()
		return m, m.command(func() error {
			return m.ctrl.PlayAt(m.ctx, index, true)
		})

	case matches(msg, k.toggle):
		m.ctrl.PlayPause()
		return m, nil

	case matches(msg, k.next):
		return m, m.command(func() error {
			return m.ctrl.PlayNext(m.ctx, true)
		})

	case matches(msg, k.prev):
		return m, m.command(func() error {
			return m.ctrl.PlayPrev(m.ctx)
		})

	case matches(msg, k.shuffle):
		m.ctrl.ToggleShuffle()
		return m, nil

	case matches(msg, k.repeat):
		m.ctrl.ToggleRepeat()
		return m, nil

	case matches(msg, k.volUp):
		m.ctrl.IncreaseVolume()
		return m, nil

	case matches(msg, k.volDown):
		m.ctrl.DecreaseVolume()
		return m, nil

	case matches(msg, k.moveUp):
		index := m.songs.Index()
		return m, m.command(func() error {
			if index <= 0 {
				return nil
			}
			return m.ctrl.ReorderSong(index, index-1)
		})

	case matches(msg, k.moveDown):
		index := m.songs.Index()
		last := len(m.songs.Items()) - 1
		return m, m.command(func() error {
			if index < 0 || index >= last {
				return nil
			}
			return m.ctrl.ReorderSong(index, index+1)
		})

	case matches(msg, k.remove):
		index := m.songs.Index()
		return m, m.command(func() error {
			return m.ctrl.RemoveSong(index)
		})
	}

	return m.updateList(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgPlayerEvent:
		m.applyEvent(msg.data.(player.Event))
		return m, m.waitForEvent()

	case MsgEventsClosed:
		return m, tea.Quit

	case MsgCommandFailed:
		m.err = msg.data.(error)
		return m, nil
	}

	return m, nil
}

// applyEvent folds one controller event into the view state.
func (m *Model) applyEvent(ev player.Event) {
	switch ev.Kind {
	case player.EventPlaylistLoaded:
		m.setPlaylist(ev.Data.(player.PlaylistData).Playlist)

	case player.EventPositionChanged:
		m.playingIdx = ev.Data.(player.PositionData).Index
		m.refreshItems()

	case player.EventNowPlaying:
		data := ev.Data.(player.NowPlayingData)
		m.nowPlaying = data.WindowTitle
		m.err = nil
		m.notice = ""

	case player.EventSongMissing:
		m.notice = "song unavailable, skipping ahead"
		m.refreshItems()

	case player.EventModeChanged:
		data := ev.Data.(player.ModeData)
		m.shuffle = data.Shuffle
		m.repeat = data.Repeat

	case player.EventVolumeChanged:
		m.volume = ev.Data.(player.VolumeData).Volume

	case player.EventNotification:
		song := ev.Data.(player.NotificationData).Song
		m.notice = fmt.Sprintf("now playing: %s", song.Title)

	case player.EventSongAdded, player.EventSongRemoved, player.EventSongMoved:
		m.playingIdx = m.ctrl.Position()
		m.refreshItems()
	}
}

// View renders the playlist with a status line underneath.
func (m *Model) View() string {
	if !m.haveList {
		return styles.help.Render("loading playlist...")
	}

	var b strings.Builder
	b.WriteString(m.songs.View())
	b.WriteString("\n\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	return b.String()
}

func (m *Model) statusLine() string {
	var parts []string

	if m.nowPlaying != "" {
		parts = append(parts, styles.ok.Render(m.nowPlaying))
	}

	var modes []string
	if m.shuffle {
		modes = append(modes, "shuffle")
	}
	if m.repeat {
		modes = append(modes, "repeat")
	}
	if len(modes) > 0 {
		parts = append(parts, styles.warn.Render(strings.Join(modes, " ")))
	}

	if m.volume > 0 {
		parts = append(parts, fmt.Sprintf("vol %d%%", m.volume))
	}

	if m.err != nil {
		parts = append(parts, styles.err.Render(m.err.Error()))
	} else if m.notice != "" {
		parts = append(parts, styles.warn.Render(m.notice))
	}

	if len(parts) == 0 {
		return styles.help.Render("nothing playing")
	}
	return strings.Join(parts, "  ")
}

// setPlaylist rebuilds the song list for a freshly loaded playlist.
func (m *Model) setPlaylist(pl models.Playlist) {
	m.playingIdx = -1
	m.songs = list.New(m.buildItems(pl.Songs), list.NewDefaultDelegate(), 0, 0)
	m.songs.Title = pl.Title
	if pl.Title == "" {
		m.songs.Title = "Queue"
	}
	m.songs.SetShowHelp(false)
	if m.width > 0 {
		m.songs.SetSize(m.width-4, m.height-8)
	}
	m.haveList = true
}

// refreshItems re-reads the controller's song ordering, keeping the cursor.
func (m *Model) refreshItems() {
	if !m.haveList {
		return
	}
	cursor := m.songs.Index()
	m.songs.SetItems(m.buildItems(m.ctrl.Playlist().Songs))
	if cursor < len(m.songs.Items()) {
		m.songs.Select(cursor)
	}
}

func (m *Model) buildItems(songs []models.Song) []list.Item {
	items := make([]list.Item, len(songs))
	for i, song := range songs {
		items[i] = songItem{song: song, playing: i == m.playingIdx}
	}
	return items
}

func (m *Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !m.haveList {
		return m, nil
	}
	var cmd tea.Cmd
	m.songs, cmd = m.songs.Update(msg)
	return m, cmd
}

// command runs a controller call off the update loop, reporting failures
// back as messages.
func (m *Model) command(fn func() error) tea.Cmd {
	return func() tea.Msg {
		if err := fn(); err != nil {
			return commandFailedMsg(err)
		}
		return nil
	}
}

// waitForEvent blocks on the controller's event channel.
func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return eventsClosedMsg()
		}
		return playerEventMsg(ev)
	}
}

func matches(msg tea.KeyMsg, b key.Binding) bool {
	return key.Matches(msg, b)
}
