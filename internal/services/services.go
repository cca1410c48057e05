// package services defines interface Catalog for interacting with music
// streaming HTTP APIs
package services

import (
	"context"
	"fmt"

	"github.com/castilloh/bandolera/internal/models"
)

// Catalog defines the interface for a music catalog provider backing one
// managed playlist.
type Catalog interface {
	// SearchTracks issues a ranked track search and returns up to limit
	// candidates in provider order.
	SearchTracks(ctx context.Context, query string, limit int) ([]models.Track, error)

	// GetTrack fetches a single track by its stable identifier.
	GetTrack(ctx context.Context, id string) (*models.Track, error)

	// PlaylistPage fetches one page of the managed playlist. An empty
	// cursor fetches the first page; the returned page carries the cursor
	// for the next one, empty when exhausted.
	PlaylistPage(ctx context.Context, cursor string) (*models.CollectionPage, error)

	// AddTracks appends tracks to the managed playlist by URI.
	AddTracks(ctx context.Context, uris ...string) error

	// RemoveTracks removes all occurrences of the given URIs from the
	// managed playlist.
	RemoveTracks(ctx context.Context, uris ...string) error

	// PlaylistInfo fetches the managed playlist's name and track count.
	PlaylistInfo(ctx context.Context) (*models.PlaylistInfo, error)

	// Name returns the provider name (e.g., "Spotify")
	Name() string
}

// StatusError is returned when the provider answers with a non-success HTTP
// status. Callers can pull the code out with errors.As to distinguish rate
// limits and auth failures from transport errors.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog API error: status %d", e.Code)
}
