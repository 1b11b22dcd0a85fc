package page

import (
	"context"
	"io"
	"net"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// StaticFetcher fetches HTML via net/http and converts it to plaintext.
// Free, no API calls. JS-heavy pages come back thin, which is why the
// render tier goes first.
type StaticFetcher struct {
	client    *http.Client
	userAgent string
}

// StaticOption configures a StaticFetcher.
type StaticOption func(*StaticFetcher)

// WithTimeout overrides the default fetch timeout.
func WithTimeout(d time.Duration) StaticOption {
	return func(s *StaticFetcher) {
		s.client.Timeout = d
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) StaticOption {
	return func(s *StaticFetcher) {
		s.userAgent = ua
	}
}

// NewStaticFetcher creates a StaticFetcher with sensible defaults.
func NewStaticFetcher(opts ...StaticOption) *StaticFetcher {
	s := &StaticFetcher{
		client: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 10 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		userAgent: "Mozilla/5.0 (compatible; ScreenBot/1.0)",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *StaticFetcher) Name() string           { return "static" }
func (s *StaticFetcher) Supports(_ string) bool { return true }

// Fetch gets a URL and strips the HTML to plaintext.
func (s *StaticFetcher) Fetch(ctx context.Context, targetURL string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "static: create request")
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "static: fetch")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 512*1024))
	if err != nil {
		return nil, eris.Wrap(err, "static: read body")
	}

	if resp.StatusCode >= 400 {
		return nil, eris.Errorf("static: status %d", resp.StatusCode)
	}

	if len(body) < 100 {
		return nil, eris.New("static: empty page")
	}

	text := stripHTML(string(body))
	if blocked, blockType := looksBlocked(text); blocked {
		return nil, eris.Errorf("static: blocked (%s)", blockType)
	}

	return &Result{
		URL:    targetURL,
		Title:  extractTitle(body),
		Text:   text,
		Source: "static",
	}, nil
}

var titleRe = regexp.MustCompile(`(?i)<title[^>]*>(.*?)</title>`)

// extractTitle pulls the <title> from HTML.
func extractTitle(body []byte) string {
	m := titleRe.FindSubmatch(body)
	if len(m) > 1 {
		return strings.TrimSpace(string(m[1]))
	}
	return ""
}

// looksBlocked flags bot-challenge pages that return 200 but carry no
// content worth extracting names from.
func looksBlocked(text string) (bool, string) {
	if len(text) > 2000 {
		return false, ""
	}
	lower := strings.ToLower(text)
	signatures := map[string]string{
		"checking your browser": "challenge",
		"verify you are human":  "challenge",
		"access denied":         "denied",
		"just a moment":         "challenge",
		"attention required":    "challenge",
	}
	for sig, kind := range signatures {
		if strings.Contains(lower, sig) {
			return true, kind
		}
	}
	return false, ""
}

// stripHTML removes scripts/styles/nav/footer, strips tags, decodes entities,
// and collapses whitespace. The result is plaintext suitable for name
// extraction.
func stripHTML(html string) string {
	// Remove script, style, nav, footer blocks entirely.
	for _, tag := range []string{"script", "style", "nav", "footer"} {
		re := regexp.MustCompile(`(?is)<` + tag + `[^>]*>.*?</` + tag + `>`)
		html = re.ReplaceAllString(html, "")
	}

	// Strip remaining HTML tags.
	tagRe := regexp.MustCompile(`<[^>]+>`)
	html = tagRe.ReplaceAllString(html, " ")

	// Decode common HTML entities.
	r := strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
		"&nbsp;", " ",
	)
	html = r.Replace(html)

	// Collapse whitespace: multiple spaces → single, multiple newlines → double.
	spaceRe := regexp.MustCompile(`[ \t]+`)
	html = spaceRe.ReplaceAllString(html, " ")

	nlRe := regexp.MustCompile(`\n{3,}`)
	html = nlRe.ReplaceAllString(html, "\n\n")

	return strings.TrimSpace(html)
}
