// package models defines the data model for the playlist player
package models

// Song is a playlist entry: a (title, artist) descriptor plus an optional
// album image. A song has no identity of its own; it is addressed by its
// current index in the playlist.
type Song struct {
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	ImageURL string `json:"image_url,omitempty"`

	// Missing is set once resolution has failed for this entry so the UI
	// can flag it. It travels with the song across reorders.
	Missing bool `json:"-"`
}

// Playlist is the ordered set of songs the controller plays through.
// Loading a new playlist replaces the previous one wholesale.
type Playlist struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Artist      string `json:"artist,omitempty"`
	Description string `json:"description,omitempty"`
	Songs       []Song `json:"songs"`
}

// PlayerState mirrors the embedded player's reported state codes.
type PlayerState int

const (
	StateUnstarted PlayerState = -1
	StateEnded     PlayerState = 0
	StatePlaying   PlayerState = 1
	StatePaused    PlayerState = 2
	StateBuffering PlayerState = 3
)

func (s PlayerState) String() string {
	switch s {
	case StateUnstarted:
		return "unstarted"
	case StateEnded:
		return "ended"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateBuffering:
		return "buffering"
	default:
		return "unknown"
	}
}
