package repositories

import (
	"database/sql"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/castilloh/bandolera/internal/models"
	"github.com/castilloh/bandolera/internal/shared"
	"github.com/castilloh/bandolera/internal/tasks"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return db
}

func TestHistoryRepository(t *testing.T) {
	t.Run("create assigns id and sequence", func(t *testing.T) {
		repo := NewHistoryRepository(newTestDB(t))

		entry := models.NewHistoryEntry(99, "add", "added", "t1", "Bandolera — Don Omar", "bandolera")
		if err := repo.Create(entry); err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		if entry.ID() == "" {
			t.Error("expected generated ID")
		}
		if entry.Sequence() != 1 {
			t.Errorf("sequence = %d, want 1", entry.Sequence())
		}

		second := models.NewHistoryEntry(99, "remove", "removed", "t2", "Otra — Alguien", "otra")
		if err := repo.Create(second); err != nil {
			t.Fatalf("second Create failed: %v", err)
		}
		if second.Sequence() != 2 {
			t.Errorf("sequence = %d, want 2", second.Sequence())
		}
	})

	t.Run("get round-trips fields", func(t *testing.T) {
		repo := NewHistoryRepository(newTestDB(t))

		entry := models.NewHistoryEntry(99, "add", "added", "t1", "Bandolera — Don Omar", "bandolera")
		if err := repo.Create(entry); err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		got, err := repo.Get(entry.ID())
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.ChatID() != 99 || got.Action() != "add" || got.Outcome() != "added" {
			t.Errorf("entry = %+v", got)
		}
		if got.TrackID() != "t1" || got.Label() != "Bandolera — Don Omar" || got.Query() != "bandolera" {
			t.Errorf("entry fields did not round-trip: %+v", got)
		}
	})

	t.Run("get missing entry", func(t *testing.T) {
		repo := NewHistoryRepository(newTestDB(t))
		if _, err := repo.Get("nope"); err == nil {
			t.Error("expected error for missing entry")
		}
	})

	t.Run("recent orders newest first and limits", func(t *testing.T) {
		repo := NewHistoryRepository(newTestDB(t))

		for _, trackID := range []string{"t1", "t2", "t3"} {
			entry := models.NewHistoryEntry(99, "add", "added", trackID, "Label", "query")
			if err := repo.Create(entry); err != nil {
				t.Fatalf("Create failed: %v", err)
			}
		}

		entries, err := repo.Recent(2)
		if err != nil {
			t.Fatalf("Recent failed: %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("got %d entries, want 2", len(entries))
		}
		if entries[0].TrackID() != "t3" || entries[1].TrackID() != "t2" {
			t.Errorf("order = %s, %s, want t3, t2", entries[0].TrackID(), entries[1].TrackID())
		}
	})

	t.Run("delete is soft", func(t *testing.T) {
		repo := NewHistoryRepository(newTestDB(t))

		entry := models.NewHistoryEntry(99, "add", "added", "t1", "Label", "query")
		if err := repo.Create(entry); err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		if err := repo.Delete(entry.ID()); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, err := repo.Get(entry.ID()); err == nil {
			t.Error("deleted entry should not be retrievable")
		}
		if err := repo.Delete(entry.ID()); err == nil {
			t.Error("second delete should fail")
		}
		if entries, _ := repo.Recent(10); len(entries) != 0 {
			t.Errorf("Recent returned %d entries after delete, want 0", len(entries))
		}
	})

	t.Run("validation failure", func(t *testing.T) {
		repo := NewHistoryRepository(newTestDB(t))

		entry := models.NewHistoryEntry(99, "", "added", "t1", "Label", "query")
		err := repo.Create(entry)
		if err == nil || !strings.Contains(err.Error(), "validation") {
			t.Errorf("err = %v, want validation failure", err)
		}
	})
}

func TestHistoryAdapter(t *testing.T) {
	track := &models.Track{ID: "t1", Title: "Bandolera", Artists: []string{"Don Omar"}}

	t.Run("records mutating outcomes", func(t *testing.T) {
		repo := NewHistoryRepository(newTestDB(t))
		adapter := NewHistoryAdapter(repo)

		res := tasks.Result{Outcome: tasks.OutcomeAdded, Track: track, Score: 2.25}
		if err := adapter.Record(99, "add", "bandolera", res); err != nil {
			t.Fatalf("Record failed: %v", err)
		}

		entries, err := repo.Recent(10)
		if err != nil {
			t.Fatalf("Recent failed: %v", err)
		}
		if len(entries) != 1 {
			t.Fatalf("got %d entries, want 1", len(entries))
		}
		if entries[0].Outcome() != "added" || entries[0].TrackID() != "t1" {
			t.Errorf("entry = %+v", entries[0])
		}
	})

	t.Run("skips non-mutating outcomes", func(t *testing.T) {
		repo := NewHistoryRepository(newTestDB(t))
		adapter := NewHistoryAdapter(repo)

		results := []tasks.Result{
			{Outcome: tasks.OutcomeAlreadyPresent, Track: track},
			{Outcome: tasks.OutcomeUnresolved},
			{Outcome: tasks.OutcomeNotPresent},
			{Outcome: tasks.OutcomeFailed},
		}
		for _, res := range results {
			if err := adapter.Record(99, "add", "q", res); err != nil {
				t.Fatalf("Record failed for %s: %v", res.Outcome, err)
			}
		}

		if entries, _ := repo.Recent(10); len(entries) != 0 {
			t.Errorf("got %d entries, want 0", len(entries))
		}
	})
}
