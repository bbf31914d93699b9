// Package ui implements an interactive terminal player using bubbletea's Elm architecture.
//
// The TUI shows the active playlist as a scrollable list with a status line
// for the playing song, the shuffle/repeat modes, and the volume. The (view)
// [Model] implements bubbletea/Elm's standard Init/Update/View pattern,
// receiving messages via the Msg union type. Controller events flow through
// a channel into the update loop, so playback state changes render without
// polling.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, space, n/b, s/r,
// +/-, J/K, d, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
