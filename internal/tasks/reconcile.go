package tasks

import (
	"context"
	"errors"

	"github.com/castilloh/bandolera/internal/models"
	"github.com/castilloh/bandolera/internal/shared"
)

// Outcome classifies what a reconcile operation did. Every request maps to
// exactly one outcome.
type Outcome string

const (
	// OutcomeAdded means the track resolved and was appended.
	OutcomeAdded Outcome = "added"
	// OutcomeAlreadyPresent means the track resolved but was a member, so
	// nothing changed.
	OutcomeAlreadyPresent Outcome = "already_present"
	// OutcomeRemoved means a member matched the request and was removed.
	OutcomeRemoved Outcome = "removed"
	// OutcomeNotPresent means no member matched a removal request.
	OutcomeNotPresent Outcome = "not_present"
	// OutcomeUnresolved means the request matched nothing in the catalog.
	OutcomeUnresolved Outcome = "unresolved"
	// OutcomeFailed means an I/O or provider error interrupted the
	// operation before it reached a verdict.
	OutcomeFailed Outcome = "failed"
)

const (
	// RemoveThreshold is the minimum label similarity for a fuzzy removal
	// to act on the best collection match.
	RemoveThreshold = 0.6

	// SuggestThreshold keeps hopeless near-misses out of suggestion lists.
	SuggestThreshold = 0.35

	maxSuggestions = 3
)

// Result is the full account of one reconcile operation, carried to the
// messaging layer for rendering and to history for the audit trail.
type Result struct {
	Outcome     Outcome
	Track       *models.Track // acted-on track, nil when unresolved or failed
	Score       float64       // resolution or fuzzy-match confidence
	Approximate bool          // removal acted on a fuzzy match, not an exact one
	Suggestions []FuzzyMatch  // near-misses offered when removal found nothing
	Err         error         // cause, set only for OutcomeFailed
}

// HistoryRecorder persists reconcile results for the audit trail. Implemented
// by repositories.HistoryAdapter; callers treat recording as best effort.
type HistoryRecorder interface {
	Record(chatID int64, action, query string, res Result) error
}

// TrackResolver resolves raw user text to one accepted catalog track.
// Implemented by resolver.Resolver.
type TrackResolver interface {
	Resolve(ctx context.Context, raw string) (*models.Track, float64, error)
}

// Mutator is the playlist write surface. Implemented by
// services.SpotifyCatalog.
type Mutator interface {
	AddTracks(ctx context.Context, uris ...string) error
	RemoveTracks(ctx context.Context, uris ...string) error
}

// ReconcileEngine converges the managed playlist toward user requests. Add
// and Remove are idempotent: repeating a request never changes the collection
// a second time.
type ReconcileEngine struct {
	resolver   TrackResolver
	membership *Membership
	mutator    Mutator
}

// NewReconcileEngine wires a reconcile engine from its three collaborators.
func NewReconcileEngine(r TrackResolver, m *Membership, mut Mutator) *ReconcileEngine {
	return &ReconcileEngine{resolver: r, membership: m, mutator: mut}
}

// Add resolves raw and appends the track unless it is already a member.
func (e *ReconcileEngine) Add(ctx context.Context, raw string) Result {
	track, score, err := e.resolver.Resolve(ctx, raw)
	if err != nil {
		if errors.Is(err, shared.ErrTrackNotFound) {
			return Result{Outcome: OutcomeUnresolved, Score: score}
		}
		return Result{Outcome: OutcomeFailed, Err: err}
	}

	present, err := e.membership.Contains(ctx, track.ID)
	if err != nil {
		return Result{Outcome: OutcomeFailed, Track: track, Err: err}
	}
	if present {
		return Result{Outcome: OutcomeAlreadyPresent, Track: track, Score: score}
	}

	if err := e.mutator.AddTracks(ctx, track.URI()); err != nil {
		return Result{Outcome: OutcomeFailed, Track: track, Err: err}
	}
	return Result{Outcome: OutcomeAdded, Track: track, Score: score}
}

// Remove takes raw out of the playlist. A resolved member is removed
// directly. When resolution fails, or the resolved track is not a member, the
// collection is scanned for the closest label match; a strong enough match is
// removed as approximate, otherwise the near-misses come back as suggestions.
func (e *ReconcileEngine) Remove(ctx context.Context, raw string) Result {
	query := raw

	track, score, err := e.resolver.Resolve(ctx, raw)
	switch {
	case err == nil:
		present, err := e.membership.Contains(ctx, track.ID)
		if err != nil {
			return Result{Outcome: OutcomeFailed, Track: track, Err: err}
		}
		if present {
			if err := e.mutator.RemoveTracks(ctx, track.URI()); err != nil {
				return Result{Outcome: OutcomeFailed, Track: track, Err: err}
			}
			return Result{Outcome: OutcomeRemoved, Track: track, Score: score}
		}
		// Resolved to a track the playlist does not hold; fall through to
		// the fuzzy scan using the resolved label, which is usually
		// cleaner than the raw request.
		query = track.Label()

	case errors.Is(err, shared.ErrTrackNotFound):
		// keep the raw query for the scan

	default:
		return Result{Outcome: OutcomeFailed, Err: err}
	}

	matches, err := e.membership.FuzzyScan(ctx, query, maxSuggestions)
	if err != nil {
		return Result{Outcome: OutcomeFailed, Err: err}
	}

	if len(matches) > 0 && matches[0].Score >= RemoveThreshold {
		best := matches[0]
		if err := e.mutator.RemoveTracks(ctx, best.Track.URI()); err != nil {
			return Result{Outcome: OutcomeFailed, Track: &best.Track, Err: err}
		}
		return Result{
			Outcome:     OutcomeRemoved,
			Track:       &best.Track,
			Score:       best.Score,
			Approximate: true,
		}
	}

	var suggestions []FuzzyMatch
	for _, m := range matches {
		if m.Score >= SuggestThreshold {
			suggestions = append(suggestions, m)
		}
	}
	return Result{Outcome: OutcomeNotPresent, Suggestions: suggestions}
}
