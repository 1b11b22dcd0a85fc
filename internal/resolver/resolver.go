// Package resolver performs the LLM-assisted executive resolution: one
// completion over the gathered evidence, answered in a fixed three-line
// contract that is parsed strictly rather than interpreted.
package resolver

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/screen-cli/internal/model"
	"github.com/sells-group/screen-cli/internal/resilience"
	"github.com/sells-group/screen-cli/pkg/anthropic"
)

// Evidence is the raw material for one resolution call.
type Evidence struct {
	ExecutiveSnippets []model.SearchSnippet
	LeadershipText    string
}

// Resolver asks the completion model for the current CEO, CFO, and
// treasurer based on the evidence, nothing else.
type Resolver struct {
	llm       anthropic.Client
	modelName string
}

// NewResolver creates a Resolver against the given completion client.
func NewResolver(llm anthropic.Client, modelName string) *Resolver {
	return &Resolver{llm: llm, modelName: modelName}
}

const systemPrompt = "You extract executive names from provided evidence. " +
	"Only name people clearly mentioned in the evidence; never guess or invent names. " +
	"Prefer the most recent/current holder of each role and ignore former, past, or interim executives unless they are clearly current."

// Resolve runs the single completion and parses the reply. A transport or
// provider failure wraps ErrResolution; the caller falls back to the
// disambiguator's independent result. A malformed reply line degrades to
// an empty field, never to an error.
func (r *Resolver) Resolve(ctx context.Context, company string, ev Evidence) (*model.ExecutiveSet, error) {
	temperature := 0.2
	resp, err := r.llm.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       r.modelName,
		MaxTokens:   1024,
		System:      systemPrompt,
		Temperature: &temperature,
		Messages: []anthropic.Message{
			{Role: "user", Content: buildPrompt(company, ev)},
		},
	})
	if err != nil {
		return nil, eris.Wrap(resilience.ErrResolution, err.Error())
	}

	resp.Usage.LogCost(r.modelName, "resolve")

	execs := ParseExecutiveLines(resp.Text())
	zap.L().Debug("resolver: parsed executives",
		zap.String("company", company),
		zap.String("ceo", execs.CEO),
		zap.String("cfo", execs.CFO),
		zap.String("treasurer", execs.Treasurer),
	)
	return &execs, nil
}

func buildPrompt(company string, ev Evidence) string {
	var sources strings.Builder
	if len(ev.ExecutiveSnippets) > 0 {
		sources.WriteString("General search results:\n")
		for _, s := range ev.ExecutiveSnippets {
			if s.Title != "" {
				sources.WriteString(s.Title)
				sources.WriteString(": ")
			}
			sources.WriteString(s.Text)
			sources.WriteString("\n")
		}
		sources.WriteString("\n")
	}
	if ev.LeadershipText != "" {
		sources.WriteString("Leadership page content:\n")
		sources.WriteString(ev.LeadershipText)
		sources.WriteString("\n")
	}

	return fmt.Sprintf(`I need to do a public screen on %s. Tell me their current CFO, Treasurer, and CEO.

IMPORTANT:
- Only extract names that are clearly mentioned in the provided evidence. Do not make up or guess names.
- For each role, pick the MOST RECENT/current holder if several are mentioned.
- If the company has no separate treasurer, put 'same' for Treasurer.

Format (no extra words):
CFO: [CFO name]
Treasurer (or closest): [Name or 'same']
CEO: [CEO name]

Source evidence:
---
%s---
`, company, sources.String())
}

// Line prefixes of the reply contract, matched case-insensitively.
const (
	cfoPrefix       = "cfo:"
	treasurerPrefix = "treasurer (or closest):"
	ceoPrefix       = "ceo:"
)

// ParseExecutiveLines parses the fixed three-line reply. Lines that do not
// start with a known prefix are ignored; a missing line leaves its field
// empty. A treasurer of "same" is normalized to the TreasurerSameAsCFO
// sentinel.
func ParseExecutiveLines(text string) model.ExecutiveSet {
	var execs model.ExecutiveSet

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "- "))
		lower := strings.ToLower(line)

		switch {
		case strings.HasPrefix(lower, treasurerPrefix):
			execs.Treasurer = cleanName(line[len(treasurerPrefix):])
		case strings.HasPrefix(lower, cfoPrefix):
			execs.CFO = cleanName(line[len(cfoPrefix):])
		case strings.HasPrefix(lower, ceoPrefix):
			execs.CEO = cleanName(line[len(ceoPrefix):])
		}
	}

	if strings.EqualFold(execs.Treasurer, model.TreasurerSameAsCFO) {
		execs.Treasurer = model.TreasurerSameAsCFO
	}
	return execs
}

// cleanName strips whitespace and the bracket placeholders models
// sometimes echo back.
func cleanName(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "[]")
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "none", "none_found", "unknown", "n/a":
		return ""
	}
	return s
}
