// Package page discovers a company's leadership page URL from search
// results and extracts its text through a tiered fetch chain: a rendering
// reader first, a plain HTTP fetch second.
package page

import "context"

// Result holds fetched page text with its source tier.
type Result struct {
	URL    string
	Title  string
	Text   string
	Source string // e.g. "render", "static"
}

// Fetcher fetches a single URL and returns its text content.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Result, error)
	Name() string
	Supports(url string) bool
}
