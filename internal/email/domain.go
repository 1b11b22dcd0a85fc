package email

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/screen-cli/internal/model"
)

var emailRe = regexp.MustCompile(`[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+`)

// Free-mail providers never count as a company domain.
var freemailDomains = map[string]bool{
	"gmail.com":   true,
	"yahoo.com":   true,
	"hotmail.com": true,
	"outlook.com": true,
	"aol.com":     true,
	"icloud.com":  true,
}

// ExtractDomain returns the first company email domain appearing in the
// snippets, bare (no leading "@"), lowercased. Free-mail providers are
// skipped. Returns "" when no valid domain is present.
func ExtractDomain(snippets []model.SearchSnippet) string {
	for _, s := range snippets {
		for _, addr := range emailRe.FindAllString(s.Title+" "+s.Text, -1) {
			d := domainOf(addr)
			if d == "" || freemailDomains[d] {
				continue
			}
			zap.L().Debug("email: domain discovered",
				zap.String("domain", d),
				zap.String("query", s.Query),
			)
			return d
		}
	}
	return ""
}

// domainOf extracts the bare lowercase domain of an address, or "" when the
// address is malformed.
func domainOf(addr string) string {
	at := strings.LastIndex(addr, "@")
	if at < 1 || at == len(addr)-1 {
		return ""
	}
	d := strings.ToLower(strings.Trim(addr[at+1:], "."))
	if !strings.Contains(d, ".") {
		return ""
	}
	return d
}

// localOf extracts the lowercase local part of an address.
func localOf(addr string) string {
	at := strings.LastIndex(addr, "@")
	if at < 1 {
		return ""
	}
	return strings.ToLower(addr[:at])
}
