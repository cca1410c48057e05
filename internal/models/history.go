package models

import (
	"fmt"
	"time"
)

// HistoryEntry records one mutating reconciliation outcome (an add or a
// remove that actually changed the playlist). Only the track identifier
// and its display label are stored, never full catalog payloads.
type HistoryEntry struct {
	id        string
	sequence  int
	chatID    int64
	action    string
	outcome   string
	trackID   string
	label     string
	query     string
	createdAt time.Time
	updatedAt time.Time
}

// NewHistoryEntry creates a HistoryEntry for a completed action.
// The ID is assigned by the repository on Create.
func NewHistoryEntry(chatID int64, action, outcome, trackID, label, query string) *HistoryEntry {
	now := time.Now()
	return &HistoryEntry{
		chatID:    chatID,
		action:    action,
		outcome:   outcome,
		trackID:   trackID,
		label:     label,
		query:     query,
		createdAt: now,
		updatedAt: now,
	}
}

// RestoreHistoryEntry rebuilds an entry from persisted columns.
func RestoreHistoryEntry(id string, sequence int, chatID int64, action, outcome, trackID, label, query string, createdAt, updatedAt time.Time) *HistoryEntry {
	return &HistoryEntry{
		id:        id,
		sequence:  sequence,
		chatID:    chatID,
		action:    action,
		outcome:   outcome,
		trackID:   trackID,
		label:     label,
		query:     query,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (h *HistoryEntry) ID() string           { return h.id }
func (h *HistoryEntry) Sequence() int        { return h.sequence }
func (h *HistoryEntry) ChatID() int64        { return h.chatID }
func (h *HistoryEntry) Action() string       { return h.action }
func (h *HistoryEntry) Outcome() string      { return h.outcome }
func (h *HistoryEntry) TrackID() string      { return h.trackID }
func (h *HistoryEntry) Label() string        { return h.label }
func (h *HistoryEntry) Query() string        { return h.query }
func (h *HistoryEntry) CreatedAt() time.Time { return h.createdAt }
func (h *HistoryEntry) UpdatedAt() time.Time { return h.updatedAt }

func (h *HistoryEntry) SetID(id string)          { h.id = id }
func (h *HistoryEntry) SetSequence(seq int)      { h.sequence = seq }
func (h *HistoryEntry) SetUpdatedAt(t time.Time) { h.updatedAt = t }

// Validate checks required fields before persistence.
func (h *HistoryEntry) Validate() error {
	if h.id == "" {
		return fmt.Errorf("history entry missing id")
	}
	if h.action == "" {
		return fmt.Errorf("history entry missing action")
	}
	if h.outcome == "" {
		return fmt.Errorf("history entry missing outcome")
	}
	if h.trackID == "" {
		return fmt.Errorf("history entry missing track id")
	}
	return nil
}
