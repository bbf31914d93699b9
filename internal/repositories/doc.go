// Package repositories implements SQLite persistence for playlists and the
// view history.
//
// [PlaylistRepository] stores playlists keyed by URL path with their full
// song orderings; Save is a wholesale upsert matching the controller's
// replace-on-load semantics, and deletes are soft via deleted_at.
// It satisfies the player package's PlaylistFetcher, backing
// Controller.LoadPlaylistByURL.
//
// [ViewRepository] appends navigation history records produced from the
// controller's view-pushed events.
//
// Schema lives in internal/shared/sql and is applied by
// shared.RunMigrations.
package repositories
