package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/castilloh/bandolera/internal/models"
	"github.com/castilloh/bandolera/internal/shared"
)

// fakeSearcher records every call so tests can assert on the retrieval
// ladder and on search avoidance for direct references.
type fakeSearcher struct {
	searches  []string
	gets      []string
	results   map[string][]models.Track
	track     *models.Track
	searchErr error
	getErr    error
}

func (f *fakeSearcher) SearchTracks(_ context.Context, query string, _ int) ([]models.Track, error) {
	f.searches = append(f.searches, query)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.results[query], nil
}

func (f *fakeSearcher) GetTrack(_ context.Context, id string) (*models.Track, error) {
	f.gets = append(f.gets, id)
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.track, nil
}

func TestResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("empty input", func(t *testing.T) {
		fake := &fakeSearcher{}
		_, _, err := New(fake).Resolve(ctx, "   ")
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("err = %v, want ErrInvalidInput", err)
		}
	})

	t.Run("direct link skips search", func(t *testing.T) {
		fake := &fakeSearcher{track: &models.Track{ID: "abc123", Title: "Bandolera"}}

		track, score, err := New(fake).Resolve(ctx, "https://open.spotify.com/track/abc123")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if track.ID != "abc123" {
			t.Errorf("track ID = %q, want abc123", track.ID)
		}
		if score != 1 {
			t.Errorf("score = %.2f, want 1", score)
		}
		if len(fake.searches) != 0 {
			t.Errorf("issued %d searches for a direct link, want 0", len(fake.searches))
		}
		if len(fake.gets) != 1 || fake.gets[0] != "abc123" {
			t.Errorf("gets = %v, want single fetch of abc123", fake.gets)
		}
	})

	t.Run("direct link fetch error propagates", func(t *testing.T) {
		fake := &fakeSearcher{getErr: shared.ErrTrackNotFound}
		_, _, err := New(fake).Resolve(ctx, "spotify:track:missing1")
		if !errors.Is(err, shared.ErrTrackNotFound) {
			t.Errorf("err = %v, want ErrTrackNotFound", err)
		}
	})

	t.Run("ladder stops at first hit", func(t *testing.T) {
		structured := `track:"Bandolera" artist:"Don Omar"`
		fake := &fakeSearcher{
			results: map[string][]models.Track{
				structured: {{ID: "t1", Title: "Bandolera", Artists: []string{"Don Omar"}}},
			},
		}

		track, _, err := New(fake).Resolve(ctx, "Bandolera - Don Omar")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if track.ID != "t1" {
			t.Errorf("track ID = %q, want t1", track.ID)
		}
		if len(fake.searches) != 1 || fake.searches[0] != structured {
			t.Errorf("searches = %v, want single structured query", fake.searches)
		}
	})

	t.Run("ladder widens on empty results", func(t *testing.T) {
		raw := "Bandolera - Don Omar"
		fake := &fakeSearcher{
			results: map[string][]models.Track{
				raw: {{ID: "t2", Title: "Bandolera", Artists: []string{"Don Omar"}}},
			},
		}

		track, _, err := New(fake).Resolve(ctx, raw)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if track.ID != "t2" {
			t.Errorf("track ID = %q, want t2", track.ID)
		}

		want := []string{
			`track:"Bandolera" artist:"Don Omar"`,
			`track:"Bandolera"`,
			raw,
		}
		if len(fake.searches) != len(want) {
			t.Fatalf("searches = %v, want %v", fake.searches, want)
		}
		for i := range want {
			if fake.searches[i] != want[i] {
				t.Errorf("search[%d] = %q, want %q", i, fake.searches[i], want[i])
			}
		}
	})

	t.Run("no candidates", func(t *testing.T) {
		fake := &fakeSearcher{}
		_, _, err := New(fake).Resolve(ctx, "nothing matches this")
		if !errors.Is(err, shared.ErrTrackNotFound) {
			t.Errorf("err = %v, want ErrTrackNotFound", err)
		}
	})

	t.Run("best candidate below threshold", func(t *testing.T) {
		raw := "Bandolera - Don Omar"
		fake := &fakeSearcher{
			results: map[string][]models.Track{
				`track:"Bandolera" artist:"Don Omar"`: {
					{ID: "weak", Title: "Completely Different", Artists: []string{"Nobody"}},
				},
			},
		}

		_, score, err := New(fake).Resolve(ctx, raw)
		if !errors.Is(err, shared.ErrTrackNotFound) {
			t.Fatalf("err = %v, want ErrTrackNotFound", err)
		}
		if score >= AcceptThreshold {
			t.Errorf("score = %.2f, want below threshold", score)
		}
	})

	t.Run("search error propagates", func(t *testing.T) {
		wantErr := errors.New("rate limited")
		fake := &fakeSearcher{searchErr: wantErr}

		_, _, err := New(fake).Resolve(ctx, "Bandolera - Don Omar")
		if !errors.Is(err, wantErr) {
			t.Errorf("err = %v, want the catalog error", err)
		}
	})
}
