package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/tunebox/internal/models"
)

var _ list.Item = songItem{}

// songItem wraps [models.Song] to implement [list.Item].
type songItem struct {
	song    models.Song
	playing bool
}

func (i songItem) FilterValue() string { return i.song.Title }

func (i songItem) Title() string {
	switch {
	case i.song.Missing:
		return fmt.Sprintf("%s (unavailable)", i.song.Title)
	case i.playing:
		return fmt.Sprintf("▶ %s", i.song.Title)
	}
	return i.song.Title
}

func (i songItem) Description() string {
	if i.song.Artist == "" {
		return "unknown artist"
	}
	return i.song.Artist
}
