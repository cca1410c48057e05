package resolver

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	trackURIRe  = regexp.MustCompile(`^spotify:track:([A-Za-z0-9]+)`)
	dashSepRe   = regexp.MustCompile(`\s+[-–—]\s+`)
	chunkSepRe  = regexp.MustCompile(`(?i)\s*,\s*|\s+y\s+|\s+and\s+`)
	artistSepRe = regexp.MustCompile(`(?i)\s*,\s*|\s*/\s*|\s*&\s*|\s+y\s+|\s+and\s+|\s+x\s+`)
	bracketRe   = regexp.MustCompile(`\(([^)]*)\)|\[([^\]]*)\]`)
)

// ExtractTrackID recognizes direct catalog references and extracts the stable
// track identifier. Accepts canonical links
// (https://open.spotify.com/track/<id>) and URIs (spotify:track:<id>).
// Returns ok=false for anything else; never errors and never touches the
// network.
func ExtractTrackID(text string) (string, bool) {
	text = strings.TrimSpace(text)

	if strings.Contains(text, "open.spotify.com/track/") {
		u, err := url.Parse(text)
		if err != nil {
			return "", false
		}
		_, rest, found := strings.Cut(u.Path, "/track/")
		if !found {
			return "", false
		}
		if id, _, _ := strings.Cut(rest, "/"); id != "" {
			return id, true
		}
		return "", false
	}

	if m := trackURIRe.FindStringSubmatch(text); m != nil {
		return m[1], true
	}

	return "", false
}

// Query is the decomposed form of one free-text request. It never outlives a
// single resolution call.
type Query struct {
	Raw     string   // original input text
	Title   string   // title phrase, bracketed qualifiers stripped
	Artists []string // artist phrases, in input order
	Extras  []string // normalized tokens from bracketed qualifiers, used as bonus terms
}

// ParseQuery splits raw free text into a title phrase and artist phrases.
//
// The split is tried in order: a single dash-like separator surrounded by
// whitespace, then comma/conjunction chunking. When neither fires the whole
// text is the title. Decomposition is a pure function of the input text.
func ParseQuery(raw string) Query {
	raw = strings.TrimSpace(raw)
	q := Query{Raw: raw}

	title, artistBlock := splitTitleArtists(raw)
	q.Title, q.Extras = stripBrackets(title)
	if q.Title == "" {
		// A query that was nothing but a bracketed phrase keeps it as title.
		q.Title = strings.TrimSpace(title)
	}

	if artistBlock != "" {
		for _, phrase := range artistSepRe.Split(artistBlock, -1) {
			phrase = strings.TrimSpace(phrase)
			if phrase != "" {
				q.Artists = append(q.Artists, phrase)
			}
		}
	}

	return q
}

// splitTitleArtists applies the separator heuristics, returning the title
// text and the (possibly empty) artist block.
func splitTitleArtists(raw string) (string, string) {
	if loc := dashSepRe.FindStringIndex(raw); loc != nil {
		return strings.TrimSpace(raw[:loc[0]]), strings.TrimSpace(raw[loc[1]:])
	}

	chunks := chunkSepRe.Split(raw, -1)
	if len(chunks) >= 2 {
		return strings.TrimSpace(chunks[0]), strings.TrimSpace(strings.Join(chunks[1:], ", "))
	}

	return raw, ""
}

// stripBrackets removes (...) and [...] qualifiers from a title, returning the
// cleaned title and the normalized tokens of the stripped content. Qualifiers
// like feature credits or remix tags often appear in both query and candidate,
// so their tokens survive as optional bonus terms.
func stripBrackets(title string) (string, []string) {
	var extras []string

	clean := bracketRe.ReplaceAllStringFunc(title, func(m string) string {
		inner := strings.Trim(m, "()[]")
		extras = append(extras, Tokenize(inner)...)
		return " "
	})

	return strings.Join(strings.Fields(clean), " "), extras
}
