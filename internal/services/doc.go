// Package services defines the [Catalog] interface for music catalog
// providers and implements it for Spotify.
//
// # Catalog Interface
//
// A Catalog wraps one provider account and one managed playlist. Resolution
// only needs the search and fetch half of the interface; reconciliation uses
// the playlist half.
//
// # Spotify Implementation
//
// [SpotifyCatalog] authenticates with a long-lived refresh token through
// [oauth2.Config.TokenSource], which caches the short-lived access token and
// refreshes it transparently when it expires. All requests share a
// [rate.Limiter] so playlist scans stay under the provider's rate window.
//
// Pagination cursors are the absolute next-page URLs the API returns, passed
// back verbatim to PlaylistPage.
//
// # Error Handling
//
// Transport failures wrap [shared.ErrAPIRequest] and token refresh failures
// wrap [shared.ErrRefreshFailed]. Non-success HTTP statuses surface as
// [*StatusError] carrying the code, except 404 on track or playlist lookups
// which map to [shared.ErrTrackNotFound] and [shared.ErrPlaylistNotFound].
package services
