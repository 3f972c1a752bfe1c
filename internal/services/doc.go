// Package services defines the [Backend] interface for the movie-rating API and the [PosterFinder] interface for poster enrichment, and implements both.
//
// # Backend
//
// [FlickService] wraps every backend endpoint in a typed method. One
// doRequest helper attaches the bearer token (via [oauth2] static token
// transport), tags requests with a correlation ID, and translates status
// codes into the shared sentinels:
//
//   - network or parse failure → [shared.ErrTransport]
//   - 401/403 → [shared.ErrUnauthorized]
//   - 404 → [shared.ErrNotFound]
//   - 409 on review creation → [shared.ErrDuplicateReview]
//   - other non-2xx → [shared.ErrAPIRequest], carrying the server message
//
// Authenticated calls without a stored token fail with
// [shared.ErrNotAuthenticated] before any network I/O.
//
// # Poster enrichment
//
// [TMDbService] searches TMDb by title and composes the first result's
// poster_path with the configured image host. Its [PosterFinder] method
// never returns an error: absence covers both "no result" and any lookup
// failure, so catalogs render with placeholders instead of stalling.
package services
