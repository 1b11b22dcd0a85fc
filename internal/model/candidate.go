package model

// CandidateSource identifies where a treasurer candidate was discovered.
// Sources carry different credibility tiers during scoring.
type CandidateSource string

const (
	SourceLeadershipPage  CandidateSource = "leadership_page"
	SourceSECFilingSearch CandidateSource = "sec_filing_search"
	SourceLinkedInSearch  CandidateSource = "linkedin_search"
	SourceExecSearch      CandidateSource = "general_exec_search"
	SourceTreasurerSearch CandidateSource = "treasurer_search"
	SourceRecentSearch    CandidateSource = "recent_treasurer_search"
	SourceTreasurySearch  CandidateSource = "company_treasury_search"
)

// CandidateIssue tags a concern discovered while assessing a candidate.
type CandidateIssue string

const (
	IssuePotentiallyOutdated CandidateIssue = "potentially_outdated"
	IssueDefinitelyOutdated  CandidateIssue = "definitely_outdated"
	IssuePastRole            CandidateIssue = "past_role_indicator"
	IssueDualRoleMention     CandidateIssue = "dual_role_mention"
	IssueLinkedInSnippet     CandidateIssue = "linkedin_snippet"
	IssueNameAmbiguous       CandidateIssue = "name_ambiguous"
)

// TreasurerCandidate is a person name extracted from evidence as a possible
// treasurer, with the confidence assessment attached at extraction time.
// Candidates are never mutated after creation; re-ranking produces a new
// ordering, not new objects.
type TreasurerCandidate struct {
	Name        string           `json:"name"`
	Confidence  float64          `json:"confidence"`
	Source      CandidateSource  `json:"source"`
	Evidence    string           `json:"evidence"`
	Issues      []CandidateIssue `json:"potential_issues,omitempty"`
	LinkedInURL string           `json:"linkedin_url,omitempty"`
}

// HasIssue reports whether the candidate carries the given issue tag.
func (c TreasurerCandidate) HasIssue(issue CandidateIssue) bool {
	for _, i := range c.Issues {
		if i == issue {
			return true
		}
	}
	return false
}

// DetectionStatus classifies the overall treasurer detection outcome.
type DetectionStatus string

const (
	StatusSingleConfident    DetectionStatus = "single_confident"
	StatusMultipleCandidates DetectionStatus = "multiple_candidates"
	StatusUncertain          DetectionStatus = "uncertain"
	StatusNotFound           DetectionStatus = "not_found"
)

// ConfidenceLevel is the coarse trustworthiness classification of a result.
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

// EmailStrategy decides which resolved name, if any, is used when
// constructing a treasurer email address.
type EmailStrategy string

const (
	StrategyUseTreasurer EmailStrategy = "use_treasurer"
	StrategyUseCFOOnly   EmailStrategy = "use_cfo_only"
	StrategySkip         EmailStrategy = "skip"
)

// TreasurerDetectionResult is the terminal outcome of treasurer
// disambiguation for one request. Candidates are always sorted by
// descending confidence.
type TreasurerDetectionResult struct {
	Status           DetectionStatus      `json:"status"`
	PrimaryTreasurer string               `json:"primary_treasurer,omitempty"`
	Candidates       []TreasurerCandidate `json:"candidates"`
	ConfidenceLevel  ConfidenceLevel      `json:"confidence_level"`
	Recommendation   string               `json:"recommendation"`
	EmailStrategy    EmailStrategy        `json:"email_strategy"`
}
