// Package model defines the core data types shared across the screening
// pipeline: search snippets, treasurer candidates, detection results, and
// constructed emails.
package model

// SearchSnippet is a single organic search result: a short text excerpt with
// its source URL. Ordering follows engine relevance rank and snippets are
// immutable once fetched.
type SearchSnippet struct {
	Query string `json:"query"`
	Title string `json:"title"`
	URL   string `json:"url"`
	Text  string `json:"text"`
}
