// Package resolver turns ambiguous user input into at most one accepted catalog track.
//
// # Pipeline
//
// Raw text flows through four stages:
//
//  1. Classification: [ExtractTrackID] recognizes direct track links and URIs
//     and short-circuits straight to a catalog lookup, no search involved.
//  2. Decomposition: [ParseQuery] splits free text into a title phrase and
//     artist phrases using separator heuristics (dash, comma, conjunction).
//  3. Retrieval: [Resolver.Resolve] issues progressively looser catalog
//     searches (title+artists, title only, raw text) until candidates appear.
//  4. Scoring: [Score] ranks every candidate and [Best] picks the winner,
//     accepted only at or above [AcceptThreshold].
//
// # Normalization
//
// All comparisons run over [Normalize]d text: Unicode-decomposed, stripped of
// combining marks, lower-cased, punctuation collapsed to single spaces. The
// function is total and idempotent, so scoring is a pure function of input.
//
// # Outcomes
//
// A query that produces no acceptable candidate is a defined outcome, not a
// failure: Resolve returns [shared.ErrTrackNotFound] for it, while catalog
// I/O errors propagate unchanged.
package resolver
