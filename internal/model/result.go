package model

import "time"

// Company identifies the screening target.
type Company struct {
	Name   string `json:"name"`
	Ticker string `json:"ticker,omitempty"`
}

// EmailResult groups everything the email stage produced for one screen.
type EmailResult struct {
	Domain string      `json:"domain,omitempty"`
	Format EmailFormat `json:"format,omitempty"`
	// FormatSource records how the format was determined: "known_pair",
	// "llm_inferred", or empty when undetermined.
	FormatSource   string                      `json:"format_source,omitempty"`
	ByRole         map[string]ConstructedEmail `json:"by_role,omitempty"`
	AllDiscovered  []DiscoveredEmail           `json:"all_discovered,omitempty"`
	TreasurerState string                      `json:"treasurer_status,omitempty"`
}

// ScreenResult is the full structured output of one screening request.
// Every enrichment branch is independently optional; a branch that failed
// records its reason under Errors instead of aborting the others.
type ScreenResult struct {
	Company    Company                  `json:"company"`
	Executives ExecutiveSet             `json:"executives"`
	Treasurer  TreasurerDetectionResult `json:"executives_metadata"`
	Emails     EmailResult              `json:"emails"`
	Errors     map[string]string        `json:"errors,omitempty"`
}

// RunStatus tracks a screening run through the audit store.
type RunStatus string

const (
	RunQueued    RunStatus = "queued"
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
)

// Run is one audited screening request.
type Run struct {
	ID        string        `json:"id"`
	Company   Company       `json:"company"`
	Status    RunStatus     `json:"status"`
	Result    *ScreenResult `json:"result,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
