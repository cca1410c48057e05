package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/castilloh/bandolera/internal/models"
	"github.com/castilloh/bandolera/internal/shared"
)

// HistoryRepository implements models.Repository[*models.HistoryEntry] for
// the reconciliation audit trail.
//
// Entries are append-mostly; Delete soft-deletes for manual cleanup.
type HistoryRepository struct {
	db *sql.DB
}

var _ models.Repository[*models.HistoryEntry] = (*HistoryRepository)(nil)

// NewHistoryRepository creates a new HistoryRepository with the given database connection
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Create inserts a new [models.HistoryEntry] with generated ID and sequence
func (r *HistoryRepository) Create(entry *models.HistoryEntry) error {
	sequence, err := NextSequence(r.db, "history")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	entry.SetID(shared.GenerateID())
	entry.SetSequence(sequence)

	if err := entry.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO history (id, sequence, chat_id, action, outcome, track_id, label, query, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		entry.ID(),
		entry.Sequence(),
		entry.ChatID(),
		entry.Action(),
		entry.Outcome(),
		entry.TrackID(),
		entry.Label(),
		entry.Query(),
		entry.CreatedAt(),
		entry.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert history entry: %w", err)
	}

	return nil
}

// Get retrieves an entry by ID, excluding soft-deleted entries
func (r *HistoryRepository) Get(id string) (*models.HistoryEntry, error) {
	query := `
		SELECT id, sequence, chat_id, action, outcome, track_id, label, query, created_at, updated_at
		FROM history
		WHERE id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// Recent retrieves the newest entries first, up to limit.
func (r *HistoryRepository) Recent(limit int) ([]*models.HistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, sequence, chat_id, action, outcome, track_id, label, query, created_at, updated_at
		FROM history
		WHERE deleted_at IS NULL
		ORDER BY sequence DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []*models.HistoryEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history: %w", err)
	}

	return entries, nil
}

// Delete soft-deletes an entry by ID
func (r *HistoryRepository) Delete(id string) error {
	result, err := r.db.Exec(
		"UPDATE history SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL",
		time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete history entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("history entry not found or already deleted: %s", id)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *HistoryRepository) scanOne(row *sql.Row) (*models.HistoryEntry, error) {
	entry, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("history entry not found")
	}
	return entry, err
}

func scanEntry(row rowScanner) (*models.HistoryEntry, error) {
	var (
		id, action, outcome, trackID, label, query string
		sequence                                   int
		chatID                                     int64
		createdAt, updatedAt                       time.Time
	)

	err := row.Scan(&id, &sequence, &chatID, &action, &outcome, &trackID, &label, &query, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	return models.RestoreHistoryEntry(id, sequence, chatID, action, outcome, trackID, label, query, createdAt, updatedAt), nil
}
