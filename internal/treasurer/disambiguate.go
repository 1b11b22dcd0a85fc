// Package treasurer classifies scored treasurer candidates into a
// detection outcome: a confident single name, a contested field, or an
// honest "unclear". Ambiguity is a first-class result here, not an error.
package treasurer

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/screen-cli/internal/candidates"
	"github.com/sells-group/screen-cli/internal/model"
)

// FormerPolicy decides how candidates tagged with past-role language are
// treated during classification.
type FormerPolicy string

const (
	// FormerPenalize keeps past-role candidates; their score already took
	// the penalty at extraction time.
	FormerPenalize FormerPolicy = "penalize"
	// FormerDisqualify drops past-role candidates before classification.
	FormerDisqualify FormerPolicy = "disqualify"
)

// Default confidence thresholds. High demands near-certain evidence before
// a treasurer email is attempted; Usable is the floor for a candidate to
// count as contested rather than noise.
const (
	DefaultHighThreshold   = 0.75
	DefaultMediumThreshold = 0.55
	DefaultUsableThreshold = 0.45
	DefaultTieMargin       = 0.10
)

// Thresholds hold the disambiguation cutoffs.
type Thresholds struct {
	High   float64
	Medium float64
	Usable float64
	Margin float64
	Former FormerPolicy
}

// DefaultThresholds returns the standard cutoffs with the penalize policy.
func DefaultThresholds() Thresholds {
	return Thresholds{
		High:   DefaultHighThreshold,
		Medium: DefaultMediumThreshold,
		Usable: DefaultUsableThreshold,
		Margin: DefaultTieMargin,
		Former: FormerPenalize,
	}
}

// Disambiguator turns a candidate pool into a TreasurerDetectionResult.
type Disambiguator struct {
	thresholds Thresholds
}

// NewDisambiguator creates a Disambiguator. Zero-valued thresholds fall
// back to the defaults.
func NewDisambiguator(t Thresholds) *Disambiguator {
	if t.High == 0 && t.Medium == 0 && t.Usable == 0 {
		t = DefaultThresholds()
	}
	if t.Former == "" {
		t.Former = FormerPenalize
	}
	return &Disambiguator{thresholds: t}
}

// Rank orders candidates by descending confidence. Ties break by source
// credibility, then by discovery order; the sort is stable so equal
// candidates keep their first-seen positions.
func Rank(pool []model.TreasurerCandidate) []model.TreasurerCandidate {
	ranked := make([]model.TreasurerCandidate, len(pool))
	copy(ranked, pool)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Confidence != ranked[j].Confidence {
			return ranked[i].Confidence > ranked[j].Confidence
		}
		return candidates.SourceTier(ranked[i].Source) > candidates.SourceTier(ranked[j].Source)
	})
	return ranked
}

// Classify produces the terminal detection result for a candidate pool.
func (d *Disambiguator) Classify(pool []model.TreasurerCandidate) model.TreasurerDetectionResult {
	ranked := Rank(pool)

	if d.thresholds.Former == FormerDisqualify {
		kept := ranked[:0:0]
		for _, c := range ranked {
			if c.HasIssue(model.IssuePastRole) || c.HasIssue(model.IssueDefinitelyOutdated) {
				zap.L().Debug("treasurer: disqualified past-role candidate",
					zap.String("name", c.Name),
				)
				continue
			}
			kept = append(kept, c)
		}
		ranked = kept
	}

	if len(ranked) == 0 {
		return model.TreasurerDetectionResult{
			Status:          model.StatusNotFound,
			Candidates:      []model.TreasurerCandidate{},
			ConfidenceLevel: model.ConfidenceLow,
			Recommendation:  "No treasurer candidates found; contact the company directly for treasurer information",
			EmailStrategy:   model.StrategySkip,
		}
	}

	top := ranked[0]
	secondConfidence := 0.0
	if len(ranked) > 1 {
		secondConfidence = ranked[1].Confidence
	}

	// Single high-confidence candidate with a clear field behind it.
	if top.Confidence >= d.thresholds.High &&
		!top.HasIssue(model.IssuePotentiallyOutdated) &&
		!top.HasIssue(model.IssueDefinitelyOutdated) &&
		secondConfidence < d.thresholds.Medium {
		return model.TreasurerDetectionResult{
			Status:           model.StatusSingleConfident,
			PrimaryTreasurer: top.Name,
			Candidates:       ranked,
			ConfidenceLevel:  model.ConfidenceHigh,
			Recommendation:   fmt.Sprintf("High confidence: %s is the treasurer", top.Name),
			EmailStrategy:    model.StrategyUseTreasurer,
		}
	}

	viable := viableCandidates(ranked, d.thresholds.Usable)

	// Contested field: several viable candidates too close to call, or a
	// former treasurer shadowing a current one.
	if len(viable) > 1 {
		contested := viable[0].Confidence-viable[1].Confidence < d.thresholds.Margin
		if contested || formerVersusCurrent(viable) {
			names := make([]string, 0, 3)
			for _, c := range viable {
				names = append(names, c.Name)
				if len(names) == 3 {
					break
				}
			}
			return model.TreasurerDetectionResult{
				Status:          model.StatusMultipleCandidates,
				Candidates:      ranked,
				ConfidenceLevel: model.ConfidenceMedium,
				Recommendation:  fmt.Sprintf("Multiple possible treasurers found: %s; review profiles to verify", strings.Join(names, ", ")),
				EmailStrategy:   model.StrategyUseCFOOnly,
			}
		}
	}

	// Clear medium-confidence winner.
	if top.Confidence >= d.thresholds.Medium &&
		(len(ranked) == 1 || top.Confidence-secondConfidence >= d.thresholds.Margin) &&
		!hasMajorIssues(top) {
		return model.TreasurerDetectionResult{
			Status:           model.StatusSingleConfident,
			PrimaryTreasurer: top.Name,
			Candidates:       ranked,
			ConfidenceLevel:  model.ConfidenceMedium,
			Recommendation:   fmt.Sprintf("Likely treasurer: %s (clear confidence gap)", top.Name),
			EmailStrategy:    model.StrategyUseTreasurer,
		}
	}

	// Medium confidence without a clear field: usable name, cautious email
	// strategy when red flags exist.
	if top.Confidence >= d.thresholds.Medium {
		strategy := model.StrategyUseTreasurer
		if hasMajorIssues(top) {
			strategy = model.StrategyUseCFOOnly
		}
		return model.TreasurerDetectionResult{
			Status:           model.StatusUncertain,
			PrimaryTreasurer: top.Name,
			Candidates:       ranked,
			ConfidenceLevel:  model.ConfidenceMedium,
			Recommendation:   fmt.Sprintf("Likely treasurer: %s (verify before outreach)", top.Name),
			EmailStrategy:    strategy,
		}
	}

	return model.TreasurerDetectionResult{
		Status:          model.StatusUncertain,
		Candidates:      ranked,
		ConfidenceLevel: model.ConfidenceLow,
		Recommendation:  "Treasurer information unclear; contact the company for confirmation",
		EmailStrategy:   model.StrategyUseCFOOnly,
	}
}

func viableCandidates(ranked []model.TreasurerCandidate, usable float64) []model.TreasurerCandidate {
	var viable []model.TreasurerCandidate
	for _, c := range ranked {
		if c.Confidence >= usable {
			viable = append(viable, c)
		}
	}
	return viable
}

// formerVersusCurrent reports whether the viable pool mixes past-role
// candidates with current ones, which makes any single pick unsafe.
func formerVersusCurrent(viable []model.TreasurerCandidate) bool {
	var former, current bool
	for _, c := range viable {
		if c.HasIssue(model.IssuePastRole) || c.HasIssue(model.IssueDefinitelyOutdated) {
			former = true
		} else {
			current = true
		}
	}
	return former && current
}

func hasMajorIssues(c model.TreasurerCandidate) bool {
	return c.HasIssue(model.IssuePastRole) ||
		c.HasIssue(model.IssuePotentiallyOutdated) ||
		c.HasIssue(model.IssueDefinitelyOutdated)
}
