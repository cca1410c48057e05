// Package repositories implements SQLite persistence for the reconciliation
// audit trail.
//
// [HistoryRepository] handles CRUD with atomic sequence generation for
// human-readable ordering, soft deletes via deleted_at timestamps, and
// newest-first listing for the history command. [HistoryAdapter] bridges it
// to the tasks layer, filtering results down to the ones that actually
// changed the playlist.
//
// Sequence numbers come from a dedicated history_sequence counter table
// incremented atomically by [NextSequence], giving stable ordering
// independent of UUIDs and wall clocks.
package repositories
