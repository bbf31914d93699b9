// Package models defines the domain entities shared across the player core,
// the provider clients, and the persistence layer.
//
// [Song] and [Playlist] are plain data carriers: the playlist store owns the
// active ordering, the repositories package persists them, and the services
// package produces them from provider responses.
//
// [PlayerState] enumerates the embedded player's state codes. The core never
// assumes a command took effect synchronously; it only observes these states
// through the engine's state-change handler.
package models
