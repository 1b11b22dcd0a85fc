// Package email discovers a company's email domain and local-part format
// from search evidence and deterministically constructs addresses for
// resolved executives. Construction only ever happens on a detected format;
// an undetermined format yields no address.
package email

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ParsedName is the first/last split of a human name, pre-normalized for
// local-part comparison and construction.
type ParsedName struct {
	First string
	Last  string
}

var generationalSuffixes = map[string]bool{
	"jr": true, "sr": true, "ii": true, "iii": true, "iv": true, "v": true,
}

var asciiFold = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// ParseName splits a display name into first and last parts. Accents are
// folded to ASCII, non-breaking spaces collapsed, generational suffixes and
// middle names dropped, and multi-word surnames joined. Returns false when
// the name does not yield both a first and a last part.
func ParseName(name string) (ParsedName, bool) {
	folded, _, err := transform.String(asciiFold, name)
	if err != nil {
		folded = name
	}
	folded = strings.ReplaceAll(folded, "\u00a0", " ")
	folded = strings.Trim(folded, `"'`)

	var words []string
	for _, w := range strings.Fields(folded) {
		w = strings.Trim(w, ",()")
		bare := strings.ToLower(strings.TrimRight(w, "."))
		if generationalSuffixes[bare] {
			continue
		}
		// Middle initials contribute nothing to any supported pattern.
		if len([]rune(strings.TrimRight(w, "."))) == 1 {
			continue
		}
		if w != "" {
			words = append(words, w)
		}
	}
	if len(words) < 2 {
		return ParsedName{}, false
	}

	first := localToken(words[0])
	last := localToken(strings.Join(words[1:], ""))
	if first == "" || last == "" {
		return ParsedName{}, false
	}
	return ParsedName{First: first, Last: last}, true
}

// localToken lowercases a name word and strips everything an email local
// part would not carry (apostrophes, hyphens, periods).
func localToken(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
