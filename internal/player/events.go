package player

import "github.com/desertthunder/tunebox/internal/models"

// EventKind enumerates the observable controller state changes.
type EventKind int

const (
	EventPositionChanged EventKind = iota
	EventNowPlaying
	EventSongMissing
	EventPlaylistLoaded
	EventViewPushed
	EventModeChanged
	EventVolumeChanged
	EventNotification
	EventPermissionRequested
	EventSongAdded
	EventSongRemoved
	EventSongMoved
)

// Event is the controller's observable state union. UI layers receive these
// through the sink registered at construction; the Data field holds the
// kind-specific payload struct.
type Event struct {
	Kind EventKind
	Data any
}

// PositionData accompanies [EventPositionChanged].
type PositionData struct {
	Index int
}

// NowPlayingData accompanies [EventNowPlaying] once a song has resolved and
// the load command was issued.
type NowPlayingData struct {
	Index       int
	Song        models.Song
	VideoID     string
	WindowTitle string
}

// MissingData accompanies [EventSongMissing] when resolution found nothing.
type MissingData struct {
	Index int
}

// PlaylistData accompanies [EventPlaylistLoaded].
type PlaylistData struct {
	Playlist models.Playlist
}

// ViewData accompanies [EventViewPushed]; the history layer consumes it.
type ViewData struct {
	Path     string
	Title    string
	Playlist models.Playlist
}

// ModeData accompanies [EventModeChanged].
type ModeData struct {
	Shuffle bool
	Repeat  bool
}

// VolumeData accompanies [EventVolumeChanged].
type VolumeData struct {
	Volume int
}

// NotificationData accompanies [EventNotification] for songs that started
// without user interaction.
type NotificationData struct {
	Song models.Song
}

// ListChangeData accompanies [EventSongAdded], [EventSongRemoved], and
// [EventSongMoved].
type ListChangeData struct {
	Index    int
	NewIndex int
	Length   int
}

func positionEvent(index int) Event {
	return Event{Kind: EventPositionChanged, Data: PositionData{Index: index}}
}

func nowPlayingEvent(index int, song models.Song, videoID, windowTitle string) Event {
	return Event{Kind: EventNowPlaying, Data: NowPlayingData{Index: index, Song: song, VideoID: videoID, WindowTitle: windowTitle}}
}

func missingEvent(index int) Event {
	return Event{Kind: EventSongMissing, Data: MissingData{Index: index}}
}

func playlistEvent(pl models.Playlist) Event {
	return Event{Kind: EventPlaylistLoaded, Data: PlaylistData{Playlist: pl}}
}

func viewEvent(pl models.Playlist) Event {
	return Event{Kind: EventViewPushed, Data: ViewData{Path: pl.URL, Title: pl.Title, Playlist: pl}}
}

func modeEvent(shuffle, repeat bool) Event {
	return Event{Kind: EventModeChanged, Data: ModeData{Shuffle: shuffle, Repeat: repeat}}
}

func volumeEvent(volume int) Event {
	return Event{Kind: EventVolumeChanged, Data: VolumeData{Volume: volume}}
}

func notificationEvent(song models.Song) Event {
	return Event{Kind: EventNotification, Data: NotificationData{Song: song}}
}

func permissionEvent() Event {
	return Event{Kind: EventPermissionRequested}
}

func addedEvent(index, length int) Event {
	return Event{Kind: EventSongAdded, Data: ListChangeData{Index: index, Length: length}}
}

func removedEvent(index, length int) Event {
	return Event{Kind: EventSongRemoved, Data: ListChangeData{Index: index, Length: length}}
}

func movedEvent(oldIndex, newIndex, length int) Event {
	return Event{Kind: EventSongMoved, Data: ListChangeData{Index: oldIndex, NewIndex: newIndex, Length: length}}
}
