// Package genre canonicalizes raw genre and tag strings into a stable
// vocabulary of genre keys. Normalization is a pure function: no state,
// no I/O, identical inputs always produce identical outputs.
package genre

import (
	"strings"
)

// aliases maps folded variants to their canonical genre key. The table is
// data, not control flow, so it can be audited and tested independently of
// the aggregation logic that consults it.
var aliases = map[string]string{
	"hiphop":         "hip hop",
	"hip hop rap":    "hip hop",
	"rap":            "hip hop",
	"rnb":            "r&b",
	"r b":            "r&b",
	"r and b":        "r&b",
	"r n b":          "r&b",
	"drum n bass":    "drum and bass",
	"drum bass":      "drum and bass",
	"dnb":            "drum and bass",
	"d n b":          "drum and bass",
	"jungle":         "drum and bass",
	"edm":            "electronic",
	"electronica":    "electronic",
	"electro":        "electronic",
	"idm":            "electronic",
	"lofi":           "lo-fi",
	"lo fi":          "lo-fi",
	"lofi hip hop":   "lo-fi",
	"indie rock":     "indie",
	"indie pop":      "indie",
	"alt rock":       "alternative",
	"alternative rock": "alternative",
	"neo soul":       "soul",
	"future bass":    "bass",
	"uk garage":      "garage",
	"deep house":     "house",
	"tech house":     "house",
	"progressive house": "house",
	"melodic techno": "techno",
	"singer songwriter": "singer-songwriter",
	"soundtracks":    "soundtrack",
	"film score":     "soundtrack",
	"reggea":         "reggae",
	"psytrance":      "trance",
}

// Normalize canonicalizes a single raw genre label. Case is folded,
// hyphen/ampersand/underscore variants collapse to single spaces, and the
// alias table maps known variants onto one key. Empty or whitespace-only
// input yields "".
func Normalize(raw string) string {
	key := fold(raw)
	if key == "" {
		return ""
	}
	if canonical, ok := aliases[key]; ok {
		return canonical
	}
	return key
}

// NormalizeAll canonicalizes a track's genre, genre-family and tag-list
// strings into a deduplicated set of genre keys. Tag lists split on commas
// and semicolons with each token normalized independently. Unknown or empty
// input yields an empty set; the track is simply excluded from genre stats.
func NormalizeAll(genre, genreFamily, tags string) []string {
	seen := make(map[string]struct{})
	var keys []string

	add := func(raw string) {
		key := Normalize(raw)
		if key == "" {
			return
		}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}

	add(genre)
	add(genreFamily)
	for _, token := range SplitTags(tags) {
		add(token)
	}

	return keys
}

// SplitTags splits a raw tag-list string on commas and semicolons.
// Tokens are returned untrimmed-of-meaning but whitespace-trimmed;
// empty tokens are dropped.
func SplitTags(tags string) []string {
	if tags == "" {
		return nil
	}
	fields := strings.FieldsFunc(tags, func(r rune) bool {
		return r == ',' || r == ';'
	})
	var out []string
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// fold lower-cases a label and collapses punctuation variants so that
// "Hip-Hop", "hip  hop" and "hip & hop" all fold to "hip hop". The "r&b"
// special case survives because folding happens before alias lookup and
// the alias table maps the folded "r b" forms back onto "r&b".
func fold(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))
	lastSpace := false
	for _, r := range s {
		switch r {
		case '-', '_', '&', '+', '/':
			r = ' '
		}
		if r == ' ' || r == '\t' {
			if lastSpace || b.Len() == 0 {
				continue
			}
			lastSpace = true
			b.WriteRune(' ')
			continue
		}
		lastSpace = false
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
