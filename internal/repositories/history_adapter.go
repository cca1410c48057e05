package repositories

import (
	"fmt"

	"github.com/castilloh/bandolera/internal/models"
	"github.com/castilloh/bandolera/internal/tasks"
)

// HistoryAdapter implements tasks.HistoryRecorder using HistoryRepository.
//
// Only results that changed the playlist are persisted; everything else is a
// no-op so the trail stays an edit log rather than a request log.
type HistoryAdapter struct {
	repo *HistoryRepository
}

// NewHistoryAdapter creates a new HistoryAdapter with the given repository
func NewHistoryAdapter(repo *HistoryRepository) *HistoryAdapter {
	return &HistoryAdapter{repo: repo}
}

// Record persists a reconcile result when it mutated the playlist.
func (a *HistoryAdapter) Record(chatID int64, action, query string, res tasks.Result) error {
	if res.Outcome != tasks.OutcomeAdded && res.Outcome != tasks.OutcomeRemoved {
		return nil
	}

	entry := models.NewHistoryEntry(
		chatID,
		action,
		string(res.Outcome),
		res.Track.ID,
		res.Track.Label(),
		query,
	)

	if err := a.repo.Create(entry); err != nil {
		return fmt.Errorf("failed to record history: %w", err)
	}
	return nil
}
