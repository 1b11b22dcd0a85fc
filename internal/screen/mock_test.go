package screen

import (
	"context"
	"strings"
	"sync"

	"github.com/sells-group/screen-cli/internal/page"
	"github.com/sells-group/screen-cli/pkg/anthropic"
	"github.com/sells-group/screen-cli/pkg/serp"
)

// scriptedSearch routes queries to canned results by substring match.
// Unmatched queries return zero results, the provider-success-empty case.
type searchRule struct {
	contains string
	results  []serp.OrganicResult
	err      error
}

type scriptedSearch struct {
	mu      sync.Mutex
	rules   []searchRule
	queries []string
}

func (s *scriptedSearch) Search(_ context.Context, query string, _ int) ([]serp.OrganicResult, error) {
	s.mu.Lock()
	s.queries = append(s.queries, query)
	s.mu.Unlock()

	for _, r := range s.rules {
		if strings.Contains(query, r.contains) {
			return r.results, r.err
		}
	}
	return nil, nil
}

func (s *scriptedSearch) sawQuery(substr string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, q := range s.queries {
		if strings.Contains(q, substr) {
			return true
		}
	}
	return false
}

var _ serp.Client = (*scriptedSearch)(nil)

// scriptedLLM answers by prompt content: the resolution prompt gets the
// executive contract reply, the format-inference prompt the format token.
type scriptedLLM struct {
	mu            sync.Mutex
	resolveReply  string
	resolveErr    error
	formatReply   string
	formatErr     error
	resolveCalls  int
	formatCalls   int
	lastResolveIn string
}

func (l *scriptedLLM) CreateMessage(_ context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	prompt := ""
	if len(req.Messages) > 0 {
		prompt = req.Messages[0].Content
	}

	var reply string
	var err error
	if strings.Contains(prompt, "email addresses belong") {
		l.formatCalls++
		reply, err = l.formatReply, l.formatErr
	} else {
		l.resolveCalls++
		l.lastResolveIn = prompt
		reply, err = l.resolveReply, l.resolveErr
	}
	if err != nil {
		return nil, err
	}
	return &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: reply}},
	}, nil
}

var _ anthropic.Client = (*scriptedLLM)(nil)

// stubPage serves one canned page text for every URL.
type stubPage struct {
	text string
	err  error
}

func (p *stubPage) Fetch(_ context.Context, url string) (*page.Result, error) {
	if p.err != nil {
		return nil, p.err
	}
	return &page.Result{URL: url, Text: p.text, Source: "stub"}, nil
}

func (p *stubPage) Name() string           { return "stub" }
func (p *stubPage) Supports(_ string) bool { return true }

var _ page.Fetcher = (*stubPage)(nil)
