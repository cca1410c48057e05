// package models defines the data model for the playlist reconciliation service
package models

import (
	"strings"
	"time"
)

// Model defines the base interface for all persistent models.
// Implementations include HistoryEntry.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Create(model T) error     // Create inserts a new model into the database
	Get(id string) (T, error) // Get retrieves a model by its ID
	Delete(id string) error   // Delete soft-deletes a model by its ID
}

// Track is a single catalog track. Immutable once fetched; the catalog is
// the source of truth and only the identifier is persisted across calls.
type Track struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Artists []string `json:"artists"`
	URL     string   `json:"url"`
}

// URI returns the catalog URI form used by mutation endpoints.
func (t Track) URI() string {
	return "spotify:track:" + t.ID
}

// Label formats the track for display and fuzzy comparison, e.g.
// "La Playera — Zion, Lennox".
func (t Track) Label() string {
	if len(t.Artists) == 0 {
		return t.Title
	}
	return t.Title + " — " + strings.Join(t.Artists, ", ")
}

// CollectionPage is one page of the target playlist.
//
// Next is an opaque continuation cursor; empty means this was the last page.
// Pages are owned by the scan that fetched them and never persisted.
type CollectionPage struct {
	Items []Track
	Next  string
}

// PlaylistInfo is summary metadata for the target playlist.
type PlaylistInfo struct {
	Name  string `json:"name"`
	Total int    `json:"total"`
}
