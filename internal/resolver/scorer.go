package resolver

import (
	"strings"

	"github.com/castilloh/bandolera/internal/models"
)

// AcceptThreshold is the minimum score for a best candidate to be accepted.
//
// Calibrated to the tiered title mode used by [Score]: an exact title match
// alone reaches it, a substring title match needs at least token-level artist
// agreement on top.
const AcceptThreshold = 1.0

const (
	titleEqualBonus     = 1.0
	titleSubstringBonus = 0.7
	artistTokenWeight   = 0.5
	extraTokenBonus     = 0.25
	firstArtistBonus    = 0.3
	versionFlagPenalty  = 0.75
)

// versionFlags mark alternate recordings. A candidate carrying one of these in
// its title when the query carries none is penalized, so a plain query prefers
// the studio version over a live or remix cut.
var versionFlags = map[string]struct{}{
	"live":     {},
	"remix":    {},
	"karaoke":  {},
	"version":  {},
	"acoustic": {},
}

// Score assigns a confidence score for candidate answering q.
//
// Title matching is tiered: equal normalized titles score full, substring
// containment scores partial, anything else nothing. Artist overlap counts
// shared normalized tokens. Bracket-stripped qualifier tokens and first-artist
// affinity add small bonuses; unrequested version flags subtract.
func Score(q Query, candidate models.Track) float64 {
	qTitle := Normalize(q.Title)
	cTitle := Normalize(candidate.Title)

	var score float64

	switch {
	case qTitle != "" && qTitle == cTitle:
		score += titleEqualBonus
	case qTitle != "" && cTitle != "" && (strings.Contains(cTitle, qTitle) || strings.Contains(qTitle, cTitle)):
		score += titleSubstringBonus
	}

	candArtists := tokenSet(artistTokens(candidate.Artists))
	cTitleTokens := tokenSet(strings.Fields(cTitle))

	qArtistTokens := artistTokens(q.Artists)
	for _, tok := range dedupe(qArtistTokens) {
		if _, ok := candArtists[tok]; ok {
			score += artistTokenWeight
		}
	}

	for _, tok := range dedupe(q.Extras) {
		_, inTitle := cTitleTokens[tok]
		_, inArtists := candArtists[tok]
		if inTitle || inArtists {
			score += extraTokenBonus
		}
	}

	if len(q.Artists) > 0 {
		for _, tok := range Tokenize(q.Artists[0]) {
			if _, ok := candArtists[tok]; ok {
				score += firstArtistBonus
				break
			}
		}
	}

	if !hasVersionFlag(Tokenize(q.Raw)) && hasVersionFlag(strings.Fields(cTitle)) {
		score -= versionFlagPenalty
	}

	return score
}

// Best returns the candidate with the strictly highest score, ties resolved
// by catalog order (first wins). The second return is that score; ok is false
// when candidates is empty. Callers apply [AcceptThreshold].
func Best(q Query, candidates []models.Track) (models.Track, float64, bool) {
	if len(candidates) == 0 {
		return models.Track{}, 0, false
	}

	best := candidates[0]
	bestScore := Score(q, best)

	for _, c := range candidates[1:] {
		if s := Score(q, c); s > bestScore {
			best = c
			bestScore = s
		}
	}

	return best, bestScore, true
}

func artistTokens(artists []string) []string {
	var tokens []string
	for _, a := range artists {
		tokens = append(tokens, Tokenize(a)...)
	}
	return tokens
}

func dedupe(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	var out []string
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func hasVersionFlag(tokens []string) bool {
	for _, t := range tokens {
		if _, ok := versionFlags[t]; ok {
			return true
		}
	}
	return false
}
