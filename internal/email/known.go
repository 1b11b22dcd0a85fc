package email

import (
	"regexp"
	"sort"
	"strings"

	"github.com/sells-group/screen-cli/internal/model"
)

// Relevance weights for ranking discovered emails. A name-adjacent pair is
// the strongest format evidence; a generic inbox is nearly useless.
const (
	scoreNamedPair  = 0.9
	scoreBareEmail  = 0.6
	scoreGenericBox = 0.2
)

// ExtractKnownEmails scans snippets for addresses on the given domain and
// pairs each with the capitalized name immediately preceding it when one is
// present within the same line. Results are deduplicated by address and
// ranked: named pairs first, then bare non-generic addresses, then generic
// inboxes.
func ExtractKnownEmails(snippets []model.SearchSnippet, domain string) []model.DiscoveredEmail {
	if domain == "" {
		return nil
	}

	domainEmailRe := regexp.MustCompile(`[a-zA-Z0-9_.+-]+@` + regexp.QuoteMeta(domain) + `\b`)
	pairRe := regexp.MustCompile(`([A-Z][a-zA-Z.'\-]+(?: [A-Z][a-zA-Z.'\-]+)+)[^\n]{0,100}?([a-zA-Z0-9_.+-]+@` + regexp.QuoteMeta(domain) + `)\b`)

	seen := make(map[string]int)
	var found []model.DiscoveredEmail

	record := func(name, addr, source string) {
		addr = strings.ToLower(addr)
		score := scoreBareEmail
		if name != "" {
			score = scoreNamedPair
		}
		if IsGenericEmail(addr) {
			score = scoreGenericBox
		}
		if i, ok := seen[addr]; ok {
			// A named sighting upgrades an earlier bare one.
			if name != "" && found[i].Name == "" {
				found[i].Name = name
				found[i].Score = score
			}
			return
		}
		seen[addr] = len(found)
		found = append(found, model.DiscoveredEmail{
			Name:    name,
			Address: addr,
			Score:   score,
			Source:  source,
		})
	}

	for _, s := range snippets {
		text := s.Title + "\n" + s.Text
		for _, m := range pairRe.FindAllStringSubmatch(text, -1) {
			record(strings.TrimSpace(m[1]), m[2], s.Query)
		}
		for _, addr := range domainEmailRe.FindAllString(text, -1) {
			record("", addr, s.Query)
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].Score > found[j].Score
	})
	return found
}

// NonGenericAddresses returns the addresses from the pool that are neither
// generic inboxes nor fake/test placeholders, preserving rank order.
func NonGenericAddresses(pool []model.DiscoveredEmail, actualNames []string) []string {
	var out []string
	for _, d := range pool {
		if IsGenericEmail(d.Address) || IsFakeOrTestEmail(d.Address, actualNames) {
			continue
		}
		out = append(out, d.Address)
	}
	return out
}
