// Package evidence issues the templated search queries the pipeline relies
// on and normalizes provider results into snippets. It is a leaf component:
// search capability in, ranked snippets out.
package evidence

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/screen-cli/internal/model"
	"github.com/sells-group/screen-cli/pkg/serp"
)

// SourceQuery pairs a candidate source tag with the query that gathers its
// evidence.
type SourceQuery struct {
	Source model.CandidateSource
	Query  string
	Limit  int
}

// Fetcher turns role-specific query templates into ranked snippets.
type Fetcher struct {
	search serp.Client
}

// NewFetcher creates a Fetcher over the given search client.
func NewFetcher(search serp.Client) *Fetcher {
	return &Fetcher{search: search}
}

// Fetch runs a single query and converts results into snippets. Failures
// propagate; the caller decides how to degrade.
func (f *Fetcher) Fetch(ctx context.Context, query string, limit int) ([]model.SearchSnippet, error) {
	results, err := f.search.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	snippets := make([]model.SearchSnippet, 0, len(results))
	for _, r := range results {
		if r.Title == "" && r.Snippet == "" {
			continue
		}
		snippets = append(snippets, model.SearchSnippet{
			Query: query,
			Title: r.Title,
			URL:   r.Link,
			Text:  r.Snippet,
		})
	}

	zap.L().Debug("evidence: fetched",
		zap.String("query", query),
		zap.Int("snippets", len(snippets)),
	)
	return snippets, nil
}

// ExecutiveSearch gathers CEO/CFO evidence snippets.
func (f *Fetcher) ExecutiveSearch(ctx context.Context, company string) ([]model.SearchSnippet, error) {
	return f.Fetch(ctx, fmt.Sprintf("%s CEO CFO executives", company), serp.MaxResults)
}

// LeadershipSearch returns the organic results used to discover the
// company's leadership page URL. The snippet URLs carry the ranking the
// page extractor's precedence rules operate on.
func (f *Fetcher) LeadershipSearch(ctx context.Context, company string) ([]model.SearchSnippet, error) {
	return f.Fetch(ctx, fmt.Sprintf("%s CEO CFO executives", company), 10)
}

// TreasurerQueries returns the per-source treasurer searches in a fixed
// order. The order matters downstream: candidate discovery order is the
// final tie-break in disambiguation.
func (f *Fetcher) TreasurerQueries(company string) []SourceQuery {
	year := time.Now().Year()
	return []SourceQuery{
		{
			Source: model.SourceExecSearch,
			Query:  fmt.Sprintf("%s CEO CFO treasurer executives", company),
			Limit:  10,
		},
		{
			Source: model.SourceTreasurerSearch,
			Query:  fmt.Sprintf("%[1]q \"treasurer\" OR %[1]q \"assistant treasurer\" OR %[1]q \"head of treasury\"", company),
			Limit:  15,
		},
		{
			Source: model.SourceTreasurySearch,
			Query:  fmt.Sprintf("%s treasury department finance", company),
			Limit:  10,
		},
		{
			Source: model.SourceSECFilingSearch,
			Query:  fmt.Sprintf("%[1]q \"treasurer\" \"SEC filing\" OR %[1]q \"treasurer\" \"10-K\" OR %[1]q \"treasurer\" \"10-Q\"", company),
			Limit:  10,
		},
		{
			Source: model.SourceRecentSearch,
			Query: fmt.Sprintf("%[1]q \"treasurer\" %[2]q OR %[1]q \"treasurer\" %[3]q OR %[1]q \"treasurer\" \"appointed\" OR %[1]q \"treasurer\" \"named\"",
				company, strconv.Itoa(year), strconv.Itoa(year-1)),
			Limit: 10,
		},
		{
			Source: model.SourceLinkedInSearch,
			Query:  fmt.Sprintf("%[1]q \"treasurer\" site:linkedin.com OR %[1]q \"head of treasury\" site:linkedin.com", company),
			Limit:  15,
		},
	}
}

// TreasurerSearch runs one of the per-source treasurer queries.
func (f *Fetcher) TreasurerSearch(ctx context.Context, q SourceQuery) ([]model.SearchSnippet, error) {
	return f.Fetch(ctx, q.Query, q.Limit)
}

// EmailFormatSearch gathers snippets likely to reveal the company's email
// domain and address pattern.
func (f *Fetcher) EmailFormatSearch(ctx context.Context, company string) ([]model.SearchSnippet, error) {
	return f.Fetch(ctx, fmt.Sprintf("%s email format", company), 10)
}

// ContactPageSearch is the fallback domain discovery query over investor
// relations and PR contact pages.
func (f *Fetcher) ContactPageSearch(ctx context.Context, company string) ([]model.SearchSnippet, error) {
	return f.Fetch(ctx, fmt.Sprintf("%s investor relations pr email", company), 10)
}

// KnownEmailSearch hunts for real addresses on the already-discovered
// domain, used to infer the address format from (name, email) pairs.
func (f *Fetcher) KnownEmailSearch(ctx context.Context, company, domain string) ([]model.SearchSnippet, error) {
	return f.Fetch(ctx, fmt.Sprintf("%s %q email", company, domain), serp.MaxResults)
}

// PersonEmailSearch hunts for a specific executive's address on the
// discovered domain. A hit here gives the strongest possible format
// evidence: a (name, email) pair for a person we already resolved.
func (f *Fetcher) PersonEmailSearch(ctx context.Context, company, domain, name string) ([]model.SearchSnippet, error) {
	return f.Fetch(ctx, fmt.Sprintf("%s %q %s email", company, domain, name), 10)
}
