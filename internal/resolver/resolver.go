package resolver

import (
	"context"
	"fmt"
	"strings"

	"github.com/castilloh/bandolera/internal/models"
	"github.com/castilloh/bandolera/internal/shared"
)

// searchLimit caps the candidate set per retrieval round.
const searchLimit = 5

// Searcher is the subset of catalog operations resolution needs.
// Implemented by services.SpotifyCatalog.
type Searcher interface {
	// SearchTracks issues one ranked search against the catalog.
	SearchTracks(ctx context.Context, query string, limit int) ([]models.Track, error)

	// GetTrack fetches a single track by its stable identifier.
	GetTrack(ctx context.Context, id string) (*models.Track, error)
}

// Resolver resolves raw user input to at most one accepted catalog track.
type Resolver struct {
	catalog Searcher
	limit   int
}

// New creates a Resolver backed by the given catalog.
func New(catalog Searcher) *Resolver {
	return &Resolver{catalog: catalog, limit: searchLimit}
}

// Resolve turns raw input into a single track plus its confidence score.
//
// Direct links and URIs bypass search entirely and fetch by identifier. Free
// text is decomposed, retrieved through the widening search ladder, and
// scored; the best candidate must reach [AcceptThreshold].
//
// Returns [shared.ErrTrackNotFound] for the no-match outcome. Catalog I/O
// errors propagate unchanged.
func (r *Resolver) Resolve(ctx context.Context, raw string) (*models.Track, float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, 0, fmt.Errorf("%w: empty query", shared.ErrInvalidInput)
	}

	if id, ok := ExtractTrackID(raw); ok {
		track, err := r.catalog.GetTrack(ctx, id)
		if err != nil {
			return nil, 0, err
		}
		return track, 1, nil
	}

	q := ParseQuery(raw)

	candidates, err := r.retrieve(ctx, q)
	if err != nil {
		return nil, 0, err
	}

	best, score, ok := Best(q, candidates)
	if !ok {
		return nil, 0, fmt.Errorf("%w: no candidates for %q", shared.ErrTrackNotFound, raw)
	}
	if score < AcceptThreshold {
		return nil, score, fmt.Errorf("%w: best candidate scored %.2f", shared.ErrTrackNotFound, score)
	}

	return &best, score, nil
}

// retrieve walks the widening query ladder, stopping at the first search that
// yields candidates. An empty result after all steps is not an error.
func (r *Resolver) retrieve(ctx context.Context, q Query) ([]models.Track, error) {
	for _, sq := range searchQueries(q) {
		tracks, err := r.catalog.SearchTracks(ctx, sq, r.limit)
		if err != nil {
			return nil, err
		}
		if len(tracks) > 0 {
			return tracks, nil
		}
	}
	return nil, nil
}

// searchQueries builds the ladder: structured title+artists, exact-phrase
// title, then the raw text.
func searchQueries(q Query) []string {
	var queries []string

	if len(q.Artists) > 0 && q.Title != "" {
		var b strings.Builder
		fmt.Fprintf(&b, "track:%q", q.Title)
		for _, a := range q.Artists {
			fmt.Fprintf(&b, " artist:%q", a)
		}
		queries = append(queries, b.String())
	}

	if q.Title != "" {
		queries = append(queries, fmt.Sprintf("track:%q", q.Title))
	}

	queries = append(queries, q.Raw)
	return queries
}
