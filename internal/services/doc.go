// Package services implements clients for the two external providers the
// player core consumes.
//
// # Video search
//
// [SearchClient] implements [Resolver]: it maps a (title, artist) pair to
// the top-ranked embeddable video id. When the combined query returns no
// results and the artist was non-empty, exactly one broader title-only retry
// is issued; a second miss surfaces as shared.ErrTrackNotFound carrying the
// original query. A [rate.Limiter] paces outgoing queries.
//
// # Track metadata
//
// [MetadataClient] implements [MetadataProvider] against the
// audioscrobbler-style JSON API: artist top tracks, album listings, and
// similar-track lookups. Response quirks are normalized here so the rest of
// the system only sees [models.Song] values:
//   - artist fields may be objects or bare strings
//   - single-track responses arrive as an object instead of an array
//   - images come as size-variant arrays (variant index 2 is used, absent
//     variants leave the song without artwork)
//
// Provider error payloads decode into [ProviderError]; code 6 matches
// shared.ErrArtistNotFound via errors.Is, which the similar-tracks loading
// path uses to degrade to a one-song playlist instead of failing.
//
// Authentication is either an api key query parameter or, when a client
// id/secret pair is configured, an OAuth2 client-credentials transport.
//
// # Derived playlists
//
// PlaylistFromArtistTracks, PlaylistFromAlbum, and PlaylistFromSimilarTracks
// turn normalized listings into [models.Playlist] values with slugged URLs.
package services
