package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/castilloh/bandolera/internal/models"
	"github.com/castilloh/bandolera/internal/shared"
)

// fakeCatalog implements services.Catalog against an in-memory track list.
type fakeCatalog struct {
	searchResults []models.Track
	playlist      []models.Track
	added         []string
	removed       []string
	infoErr       error
}

func (f *fakeCatalog) SearchTracks(_ context.Context, _ string, _ int) ([]models.Track, error) {
	return f.searchResults, nil
}

func (f *fakeCatalog) GetTrack(_ context.Context, id string) (*models.Track, error) {
	for _, t := range f.searchResults {
		if t.ID == id {
			return &t, nil
		}
	}
	return nil, shared.ErrTrackNotFound
}

func (f *fakeCatalog) PlaylistPage(_ context.Context, _ string) (*models.CollectionPage, error) {
	return &models.CollectionPage{Items: f.playlist}, nil
}

func (f *fakeCatalog) AddTracks(_ context.Context, uris ...string) error {
	f.added = append(f.added, uris...)
	return nil
}

func (f *fakeCatalog) RemoveTracks(_ context.Context, uris ...string) error {
	f.removed = append(f.removed, uris...)
	return nil
}

func (f *fakeCatalog) PlaylistInfo(_ context.Context) (*models.PlaylistInfo, error) {
	if f.infoErr != nil {
		return nil, f.infoErr
	}
	return &models.PlaylistInfo{Name: "Fiesta", Total: len(f.playlist)}, nil
}

func (f *fakeCatalog) Name() string { return "Spotify" }

func newTestApp(t *testing.T, catalog *fakeCatalog) (*cli.Command, *bytes.Buffer) {
	t.Helper()

	config := shared.DefaultConfig()
	config.Database.Path = filepath.Join(t.TempDir(), "test.db")

	out := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Config:  config,
		Catalog: catalog,
		Logger:  log.New(io.Discard),
		Output:  out,
	})

	app := &cli.Command{
		Name:     "bandolera",
		Commands: runner.register(),
	}
	return app, out
}

func TestStatusCommand(t *testing.T) {
	t.Run("reports playlist info", func(t *testing.T) {
		catalog := &fakeCatalog{playlist: []models.Track{{ID: "t1", Title: "Song"}}}
		app, out := newTestApp(t, catalog)

		if err := app.Run(context.Background(), []string{"bandolera", "status"}); err != nil {
			t.Fatalf("status failed: %v", err)
		}

		got := out.String()
		if !strings.Contains(got, "Connected to Spotify") || !strings.Contains(got, "Fiesta") {
			t.Errorf("output = %q", got)
		}
	})

	t.Run("surfaces connectivity failure", func(t *testing.T) {
		catalog := &fakeCatalog{infoErr: errors.New("dial tcp: refused")}
		app, _ := newTestApp(t, catalog)

		err := app.Run(context.Background(), []string{"bandolera", "status"})
		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("err = %v, want ErrServiceUnavailable", err)
		}
	})

	t.Run("missing catalog", func(t *testing.T) {
		config := shared.DefaultConfig()
		runner := NewRunner(RunnerOpts{Config: config, Logger: log.New(io.Discard), Output: io.Discard})
		app := &cli.Command{Name: "bandolera", Commands: runner.register()}

		err := app.Run(context.Background(), []string{"bandolera", "status"})
		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("err = %v, want ErrServiceUnavailable", err)
		}
	})
}

func TestResolveCommand(t *testing.T) {
	bandolera := models.Track{ID: "t1", Title: "Bandolera", Artists: []string{"Don Omar"}}

	t.Run("prints accepted match", func(t *testing.T) {
		catalog := &fakeCatalog{searchResults: []models.Track{bandolera}}
		app, out := newTestApp(t, catalog)

		err := app.Run(context.Background(), []string{"bandolera", "resolve", "Bandolera - Don Omar"})
		if err != nil {
			t.Fatalf("resolve failed: %v", err)
		}

		got := out.String()
		if !strings.Contains(got, "✓ Bandolera") || !strings.Contains(got, "id: t1") {
			t.Errorf("output = %q", got)
		}
		if len(catalog.added)+len(catalog.removed) != 0 {
			t.Error("resolve must not mutate the playlist")
		}
	})

	t.Run("reports no match without failing", func(t *testing.T) {
		catalog := &fakeCatalog{}
		app, out := newTestApp(t, catalog)

		err := app.Run(context.Background(), []string{"bandolera", "resolve", "garbled nonsense xyz"})
		if err != nil {
			t.Fatalf("resolve errored: %v", err)
		}
		if !strings.Contains(out.String(), "✗ No accepted match") {
			t.Errorf("output = %q", out.String())
		}
	})

	t.Run("missing query", func(t *testing.T) {
		app, _ := newTestApp(t, &fakeCatalog{})

		err := app.Run(context.Background(), []string{"bandolera", "resolve"})
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("err = %v, want ErrMissingArgument", err)
		}
	})
}

func TestPlaylistCommands(t *testing.T) {
	bandolera := models.Track{ID: "t1", Title: "Bandolera", Artists: []string{"Don Omar"}}

	t.Run("add appends and records history", func(t *testing.T) {
		catalog := &fakeCatalog{searchResults: []models.Track{bandolera}}
		app, out := newTestApp(t, catalog)

		err := app.Run(context.Background(), []string{"bandolera", "playlist", "add", "Bandolera - Don Omar"})
		if err != nil {
			t.Fatalf("add failed: %v", err)
		}

		if len(catalog.added) != 1 || catalog.added[0] != "spotify:track:t1" {
			t.Errorf("added = %v", catalog.added)
		}
		if !strings.Contains(out.String(), "✅ Agregada") {
			t.Errorf("output = %q", out.String())
		}

		out.Reset()
		if err := app.Run(context.Background(), []string{"bandolera", "history"}); err != nil {
			t.Fatalf("history failed: %v", err)
		}
		if !strings.Contains(out.String(), "added") || !strings.Contains(out.String(), "Bandolera") {
			t.Errorf("history output = %q", out.String())
		}
	})

	t.Run("add is idempotent", func(t *testing.T) {
		catalog := &fakeCatalog{
			searchResults: []models.Track{bandolera},
			playlist:      []models.Track{bandolera},
		}
		app, out := newTestApp(t, catalog)

		err := app.Run(context.Background(), []string{"bandolera", "playlist", "add", "Bandolera - Don Omar"})
		if err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if len(catalog.added) != 0 {
			t.Errorf("added = %v, want no writes", catalog.added)
		}
		if !strings.Contains(out.String(), "🔁 Ya estaba") {
			t.Errorf("output = %q", out.String())
		}
	})

	t.Run("remove takes the member out", func(t *testing.T) {
		catalog := &fakeCatalog{
			searchResults: []models.Track{bandolera},
			playlist:      []models.Track{bandolera},
		}
		app, out := newTestApp(t, catalog)

		err := app.Run(context.Background(), []string{"bandolera", "playlist", "remove", "Bandolera - Don Omar"})
		if err != nil {
			t.Fatalf("remove failed: %v", err)
		}
		if len(catalog.removed) != 1 || catalog.removed[0] != "spotify:track:t1" {
			t.Errorf("removed = %v", catalog.removed)
		}
		if !strings.Contains(out.String(), "🗑️ Eliminada") {
			t.Errorf("output = %q", out.String())
		}
	})

	t.Run("contains", func(t *testing.T) {
		catalog := &fakeCatalog{
			searchResults: []models.Track{bandolera},
			playlist:      []models.Track{bandolera},
		}
		app, out := newTestApp(t, catalog)

		err := app.Run(context.Background(), []string{"bandolera", "playlist", "contains", "Bandolera - Don Omar"})
		if err != nil {
			t.Fatalf("contains failed: %v", err)
		}
		if !strings.Contains(out.String(), "✓ In playlist") {
			t.Errorf("output = %q", out.String())
		}
	})

	t.Run("show lists tracks", func(t *testing.T) {
		catalog := &fakeCatalog{playlist: []models.Track{bandolera}}
		app, out := newTestApp(t, catalog)

		err := app.Run(context.Background(), []string{"bandolera", "playlist", "show"})
		if err != nil {
			t.Fatalf("show failed: %v", err)
		}

		got := out.String()
		if !strings.Contains(got, "Fiesta (1 tracks)") || !strings.Contains(got, "1. Bandolera — Don Omar") {
			t.Errorf("output = %q", got)
		}
	})
}

func TestSetupConfigCommand(t *testing.T) {
	app, out := newTestApp(t, &fakeCatalog{})
	configPath := filepath.Join(t.TempDir(), "config.toml")

	err := app.Run(context.Background(), []string{"bandolera", "setup", "config", "--config", configPath})
	if err != nil {
		t.Fatalf("setup config failed: %v", err)
	}
	if !strings.Contains(out.String(), "✓ Created") {
		t.Errorf("output = %q", out.String())
	}

	// second run must refuse to overwrite
	err = app.Run(context.Background(), []string{"bandolera", "setup", "config", "--config", configPath})
	if !errors.Is(err, shared.ErrInvalidArgument) {
		t.Errorf("err = %v, want ErrInvalidArgument", err)
	}
}

func TestSetupDatabaseCommand(t *testing.T) {
	app, out := newTestApp(t, &fakeCatalog{})

	err := app.Run(context.Background(), []string{"bandolera", "setup", "database"})
	if err != nil {
		t.Fatalf("setup database failed: %v", err)
	}
	if !strings.Contains(out.String(), "✓ Database ready") {
		t.Errorf("output = %q", out.String())
	}
}
