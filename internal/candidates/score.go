package candidates

import (
	"regexp"
	"strings"

	"github.com/sells-group/screen-cli/internal/model"
)

// Confidence scoring weights. Every factor is named so the arithmetic is
// auditable: score = base + source tier + positive cues − negative cues,
// clamped to [0, 1].
const (
	baseConfidence = 0.15

	bonusCurrentRole     = 0.10 // "current" / "serves as"
	bonusAssistantTitle  = 0.08 // "assistant treasurer"
	bonusTenureSince     = 0.15 // "treasurer" + "since"
	bonusAppointed       = 0.12 // "appointed" + "treasurer"
	bonusExecContext     = 0.03 // executive/officer/management nearby
	bonusLeadershipPage  = 0.10 // on top of the leadership_page source tier
	bonusProperContext   = 0.20 // name adjacent to an explicit treasurer title
	bonusHighQualityName = 0.08

	penaltyPotentiallyOutdated = 0.08
	penaltyDefinitelyOutdated  = 0.25
	penaltyLinkedInSnippet     = 0.02
	penaltyPastRole            = 0.12
	penaltyDualRole            = 0.03
	penaltySearchUncertainty   = 0.02
	penaltyLowQualityName      = 0.20
	penaltyBusinessEntity      = 0.15
)

// sourceTiers ranks evidence sources by credibility. Unknown sources get
// the floor weight.
var sourceTiers = map[model.CandidateSource]float64{
	model.SourceLeadershipPage:  0.25,
	model.SourceSECFilingSearch: 0.20,
	model.SourceLinkedInSearch:  0.18,
	model.SourceExecSearch:      0.15,
	model.SourceTreasurerSearch: 0.10,
	model.SourceRecentSearch:    0.10,
	model.SourceTreasurySearch:  0.05,
}

const defaultSourceTier = 0.05

// SourceTier exposes the credibility weight for tie-breaking during
// disambiguation.
func SourceTier(source model.CandidateSource) float64 {
	if tier, ok := sourceTiers[source]; ok {
		return tier
	}
	return defaultSourceTier
}

var outdatedIndicators = []string{
	"former treasurer", "past treasurer", "previously treasurer",
	"until 201", "until 202", "through 201", "through 202",
	"ended in 201", "ended in 202", "left in 201", "left in 202",
}

var definitelyOutdatedIndicators = []string{
	"former treasurer", "past treasurer", "previously treasurer",
	"resigned in 201", "resigned in 202",
	"retired in 201", "retired in 202",
}

var pastRoleWords = []string{"former", "past", "previous", "until"}

var businessEntityIndicators = []string{
	"subsidiary", "guarantors", "fund", "trust", "stock", "borrower",
	"indenture", "operations", "controls", "advisors",
	"electric", "chemicals", "manufacturing", "address",
}

// AssessConfidence scores a treasurer mention from its surrounding context
// and source, returning the confidence and any issue tags raised along the
// way. Pure: same inputs always produce the same score.
func AssessConfidence(name, context string, source model.CandidateSource) (float64, []model.CandidateIssue) {
	confidence := baseConfidence + SourceTier(source)
	var issues []model.CandidateIssue

	ctx := strings.ToLower(context)

	if strings.Contains(ctx, "current") || strings.Contains(ctx, "serves as") {
		confidence += bonusCurrentRole
	}
	if strings.Contains(ctx, "assistant treasurer") {
		confidence += bonusAssistantTitle
	}
	if strings.Contains(ctx, "treasurer") && strings.Contains(ctx, "since") {
		confidence += bonusTenureSince
	}
	if strings.Contains(ctx, "appointed") && strings.Contains(ctx, "treasurer") {
		confidence += bonusAppointed
	}
	if strings.Contains(ctx, "executive") || strings.Contains(ctx, "officer") || strings.Contains(ctx, "management") {
		confidence += bonusExecContext
	}
	if source == model.SourceLeadershipPage {
		confidence += bonusLeadershipPage
	}
	if inProperTreasurerContext(name, ctx) {
		confidence += bonusProperContext
	}

	if containsAny(ctx, outdatedIndicators) {
		confidence -= penaltyPotentiallyOutdated
		issues = append(issues, model.IssuePotentiallyOutdated)
	}
	if containsAny(ctx, definitelyOutdatedIndicators) {
		confidence -= penaltyDefinitelyOutdated
		issues = append(issues, model.IssueDefinitelyOutdated)
	}
	if strings.Contains(ctx, "linkedin") {
		confidence -= penaltyLinkedInSnippet
		issues = append(issues, model.IssueLinkedInSnippet)
	}
	if containsAny(ctx, pastRoleWords) {
		confidence -= penaltyPastRole
		issues = append(issues, model.IssuePastRole)
	}
	if strings.Contains(ctx, "cfo") && strings.Contains(ctx, "treasurer") {
		confidence -= penaltyDualRole
		issues = append(issues, model.IssueDualRoleMention)
	}
	if source == model.SourceTreasurerSearch || source == model.SourceTreasurySearch {
		confidence -= penaltySearchUncertainty
	}

	if isHighQualityMention(name, ctx) {
		confidence += bonusHighQualityName
	}
	if IsLowQualityName(name) {
		confidence -= penaltyLowQualityName
		issues = append(issues, model.IssueNameAmbiguous)
	}
	if containsAny(strings.ToLower(name), businessEntityIndicators) {
		confidence -= penaltyBusinessEntity
		issues = append(issues, model.IssueNameAmbiguous)
	}

	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	return confidence, dedupeIssues(issues)
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

// inProperTreasurerContext checks whether the name and an explicit
// treasurer title co-occur in the context window.
func inProperTreasurerContext(name, ctxLower string) bool {
	nameLower := regexp.QuoteMeta(strings.ToLower(name))
	patterns := []string{
		nameLower + `.*treasurer`,
		`treasurer.*` + nameLower,
		nameLower + `.*serves.*treasurer`,
		`treasurer.*` + nameLower + `.*since`,
		nameLower + `.*appointed.*treasurer`,
		nameLower + `.*assistant.*treasurer`,
		`assistant.*treasurer.*` + nameLower,
		nameLower + `.*vice.*president.*treasurer`,
		`vice.*president.*treasurer.*` + nameLower,
	}
	for _, p := range patterns {
		if matched, _ := regexp.MatchString(p, ctxLower); matched {
			return true
		}
	}
	return false
}

// isHighQualityMention checks for a complete two-word name sitting in one
// of the canonical title phrasings.
func isHighQualityMention(name, ctxLower string) bool {
	words := strings.Fields(name)
	if len(words) != 2 {
		return false
	}
	for _, w := range words {
		if w[0] < 'A' || w[0] > 'Z' {
			return false
		}
	}

	nameLower := strings.ToLower(name)
	indicators := []string{
		nameLower + " treasurer",
		"treasurer " + nameLower,
		nameLower + " serves as treasurer",
		"treasurer: " + nameLower,
		nameLower + " appointed treasurer",
	}
	return containsAny(ctxLower, indicators)
}

func dedupeIssues(issues []model.CandidateIssue) []model.CandidateIssue {
	if len(issues) < 2 {
		return issues
	}
	seen := make(map[model.CandidateIssue]struct{}, len(issues))
	out := issues[:0]
	for _, i := range issues {
		if _, ok := seen[i]; ok {
			continue
		}
		seen[i] = struct{}{}
		out = append(out, i)
	}
	return out
}
