// package repositories implements the sqlite playlist store.
//
// Playlists are keyed by their URL path, the identity the controller uses
// when loading by navigation. Songs are stored per playlist ordered by
// position; loading a playlist reconstructs the exact sequence.
package repositories

import (
	"database/sql"
	"time"
)

// nullable wraps a string for columns that may be NULL.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func fromNullable(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func now() time.Time {
	return time.Now().UTC()
}
