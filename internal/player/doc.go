// Package player implements the playback core: the ordered playlist store,
// the engine wrapping the embedded media player, and the controller that
// coordinates both with the resolution pipeline.
//
// # Store
//
// [Store] holds the active playlist's songs with positional identity: a
// song is addressed by its index, and every insert, remove, and move keeps
// the indices contiguous.
//
// # Engine
//
// [Engine] owns the single [EmbeddedPlayer] handle for the session. The
// wrapped player is asynchronous and must not be interrupted mid-load, so
// the engine parks load requests issued during buffering in a one-slot
// pending queue (newest request wins) and flushes it on the next Playing
// transition. Duplicate Ended events within a 200ms window collapse into a
// single track-finished signal.
//
// # Controller
//
// [Controller] tracks the current position and the shuffle/repeat flags,
// resolves songs through [services.Resolver], and reacts to finish events.
// In-flight resolutions and the missing-song auto-advance timer both carry
// the position captured at request time and are discarded when the user has
// navigated elsewhere in the meantime. State changes surface as [Event]
// values through the sink registered at construction; the TUI in
// internal/ui is one consumer.
//
// [BrowserPlayer] is a development binding that opens watch URLs in the
// system browser; tests use the fake player from internal/testing.
package player
