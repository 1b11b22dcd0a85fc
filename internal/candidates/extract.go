// Package candidates extracts person names that evidence text associates
// with treasurer or treasury-head roles, validates them against rejection
// vocabularies, and scores each mention's confidence. It prefers missing a
// real treasurer over surfacing a navigation link as one.
package candidates

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/sells-group/screen-cli/internal/model"
)

// minMentionConfidence drops mentions too weak to be worth carrying into
// disambiguation.
const minMentionConfidence = 0.3

// evidenceLimit truncates stored context so candidate records stay small.
const evidenceLimit = 200

// Extract finds treasurer candidates in one source's evidence text.
// Candidates come back in discovery order with confidence attached; the
// disambiguator owns ranking.
func Extract(content, companyName string, source model.CandidateSource) []model.TreasurerCandidate {
	if strings.TrimSpace(content) == "" {
		return nil
	}

	var out []model.TreasurerCandidate
	for _, name := range extractNames(content, companyName) {
		context := contextAround(name, content)
		confidence, issues := AssessConfidence(name, context, source)
		if confidence < minMentionConfidence {
			zap.L().Debug("candidates: mention below confidence floor",
				zap.String("name", name),
				zap.String("source", string(source)),
				zap.Float64("confidence", confidence),
			)
			continue
		}

		evidence := truncateEvidence(context, evidenceLimit)

		out = append(out, model.TreasurerCandidate{
			Name:        name,
			Confidence:  confidence,
			Source:      source,
			Evidence:    evidence,
			Issues:      issues,
			LinkedInURL: linkedInURLNear(name, content),
		})
	}
	return out
}

// extractNames runs the pattern list over the content and returns valid,
// deduplicated names in first-seen order.
func extractNames(content, companyName string) []string {
	seen := make(map[string]struct{})
	var names []string

	for _, pattern := range namePatterns {
		for _, match := range pattern.FindAllStringSubmatch(content, -1) {
			name := nameFromGroups(match[1:])
			if name == "" || !IsValidPersonName(name, companyName) {
				continue
			}
			key := strings.ToLower(name)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			names = append(names, name)
		}
	}
	return names
}

// nameFromGroups assembles a name from capture groups: one group is the
// name itself, two groups are joined first+last (quoted-nickname and
// middle-initial patterns).
func nameFromGroups(groups []string) string {
	switch len(groups) {
	case 1:
		return strings.TrimSpace(groups[0])
	case 2:
		first := strings.TrimSpace(groups[0])
		last := strings.TrimSpace(groups[1])
		if first == "" || last == "" {
			return ""
		}
		return first + " " + last
	default:
		return ""
	}
}

// truncateEvidence shortens s to at most limit bytes, backing up to a rune
// boundary so the cut never leaves invalid UTF-8 behind.
func truncateEvidence(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit] + "..."
}

// contextAround returns ±100 bytes surrounding the first mention of the
// name, widened to rune boundaries.
func contextAround(name, content string) string {
	idx := indexCaseInsensitive(content, name)
	if idx < 0 {
		return ""
	}
	start := idx - 100
	if start < 0 {
		start = 0
	}
	end := idx + len(name) + 100
	if end > len(content) {
		end = len(content)
	}
	for start > 0 && !utf8.RuneStart(content[start]) {
		start--
	}
	for end < len(content) && !utf8.RuneStart(content[end]) {
		end++
	}
	return strings.TrimSpace(content[start:end])
}

// linkedInURLNear looks for a linkedin.com/in/ profile URL within ±250
// characters of the name mention.
func linkedInURLNear(name, content string) string {
	idx := indexCaseInsensitive(content, name)
	if idx < 0 {
		return ""
	}
	start := idx - 250
	if start < 0 {
		start = 0
	}
	end := idx + len(name) + 250
	if end > len(content) {
		end = len(content)
	}
	return linkedInURLPattern.FindString(content[start:end])
}

func indexCaseInsensitive(content, name string) int {
	re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(name))
	if err != nil {
		return -1
	}
	loc := re.FindStringIndex(content)
	if loc == nil {
		return -1
	}
	return loc[0]
}

// Merge folds newly extracted candidates into an accumulating list,
// deduplicating by normalized name. The first-seen candidate keeps its
// slot; a stronger later mention replaces its confidence and source, and
// extra evidence is appended rather than discarded.
func Merge(existing []model.TreasurerCandidate, found ...model.TreasurerCandidate) []model.TreasurerCandidate {
	index := make(map[string]int, len(existing))
	for i, c := range existing {
		index[strings.ToLower(c.Name)] = i
	}

	for _, c := range found {
		key := strings.ToLower(c.Name)
		i, ok := index[key]
		if !ok {
			index[key] = len(existing)
			existing = append(existing, c)
			continue
		}

		merged := existing[i]
		if c.Confidence > merged.Confidence {
			merged.Confidence = c.Confidence
			merged.Source = c.Source
		}
		if extra := c.Evidence; extra != "" && !strings.Contains(merged.Evidence, extra) {
			extra = truncateEvidence(extra, 100)
			merged.Evidence = merged.Evidence + " | " + string(c.Source) + ": " + extra
		}
		if merged.LinkedInURL == "" {
			merged.LinkedInURL = c.LinkedInURL
		}
		for _, issue := range c.Issues {
			if !merged.HasIssue(issue) {
				merged.Issues = append(merged.Issues, issue)
			}
		}
		existing[i] = merged
	}
	return existing
}
