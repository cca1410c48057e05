package tasks

import (
	"context"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/castilloh/bandolera/internal/models"
	"github.com/castilloh/bandolera/internal/resolver"
	"github.com/castilloh/bandolera/internal/services"
)

// containmentBonus rewards one label containing the other, which covers
// qualifier suffixes like remaster tags without a full edit-distance hit.
const containmentBonus = 0.15

// Collection is the playlist paging surface membership checks need.
// Implemented by services.SpotifyCatalog.
type Collection interface {
	PlaylistPage(ctx context.Context, cursor string) (*models.CollectionPage, error)
}

var _ Collection = (*services.SpotifyCatalog)(nil)

// Membership answers presence questions against the managed playlist by
// scanning it page by page. No snapshot is kept between calls; every check
// reads the live collection.
type Membership struct {
	collection Collection
}

// NewMembership creates a membership scanner over the given collection.
func NewMembership(collection Collection) *Membership {
	return &Membership{collection: collection}
}

// Contains reports whether a track with the given ID is in the collection.
// The scan short-circuits on the first hit.
func (m *Membership) Contains(ctx context.Context, trackID string) (bool, error) {
	cursor := ""
	for {
		page, err := m.collection.PlaylistPage(ctx, cursor)
		if err != nil {
			return false, err
		}
		for _, track := range page.Items {
			if track.ID == trackID {
				return true, nil
			}
		}
		if page.Next == "" {
			return false, nil
		}
		cursor = page.Next
	}
}

// FuzzyMatch pairs a collection track with its similarity to a query label.
type FuzzyMatch struct {
	Track models.Track
	Score float64
}

// FuzzyScan walks the whole collection ranking every track by label
// similarity to query, best first, truncated to limit. Used when a removal
// request does not resolve to an exact member.
func (m *Membership) FuzzyScan(ctx context.Context, query string, limit int) ([]FuzzyMatch, error) {
	var matches []FuzzyMatch

	cursor := ""
	for {
		page, err := m.collection.PlaylistPage(ctx, cursor)
		if err != nil {
			return nil, err
		}
		for _, track := range page.Items {
			matches = append(matches, FuzzyMatch{
				Track: track,
				Score: labelSimilarity(query, track.Label()),
			})
		}
		if page.Next == "" {
			break
		}
		cursor = page.Next
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// labelSimilarity scores two track labels in [0, 1] using normalized edit
// distance, with a containment bonus. 1 is an exact match after
// normalization.
func labelSimilarity(a, b string) float64 {
	na, nb := resolver.Normalize(a), resolver.Normalize(b)
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1
	}

	longest := utf8.RuneCountInString(na)
	if n := utf8.RuneCountInString(nb); n > longest {
		longest = n
	}

	dist := levenshtein.ComputeDistance(na, nb)
	score := 1 - float64(dist)/float64(longest)

	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		score += containmentBonus
	}

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
