package page

import (
	"net/url"
	"strings"

	"github.com/sells-group/screen-cli/internal/model"
)

// leadershipKeywords mark URLs likely to be a company's leadership or
// executive-team page.
var leadershipKeywords = []string{
	"leadership", "executive", "management", "officers", "team", "board", "directors",
}

// PickLeadershipURL chooses the most promising leadership-page URL from
// ranked search results. Precedence, in order:
//
//  1. a result whose URL contains a leadership keyword AND is hosted on the
//     company's own domain (the host of the first organic result),
//  2. the first result whose URL contains any leadership keyword,
//  3. the first result.
//
// Returns "" when there are no results. The ordering trades recall for
// precision and downstream extraction depends on it staying exactly this.
func PickLeadershipURL(snippets []model.SearchSnippet) string {
	var companyDomain string
	for _, s := range snippets {
		if s.URL == "" {
			continue
		}
		if parsed, err := url.Parse(s.URL); err == nil && parsed.Host != "" {
			companyDomain = parsed.Host
			break
		}
	}

	if companyDomain != "" {
		for _, s := range snippets {
			if s.URL == "" || !containsLeadershipKeyword(s.URL) {
				continue
			}
			if parsed, err := url.Parse(s.URL); err == nil && parsed.Host == companyDomain {
				return s.URL
			}
		}
	}

	for _, s := range snippets {
		if s.URL != "" && containsLeadershipKeyword(s.URL) {
			return s.URL
		}
	}

	for _, s := range snippets {
		if s.URL != "" {
			return s.URL
		}
	}
	return ""
}

func containsLeadershipKeyword(u string) bool {
	lower := strings.ToLower(u)
	for _, kw := range leadershipKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
