package model

// EmailFormat is a deterministic name→local-part transformation pattern.
type EmailFormat string

// The eight supported local-part patterns. Construction is only attempted
// for one of these; an undetermined format means no email is built.
const (
	FormatFirstDotLast            EmailFormat = "first.last"
	FormatFirstLast               EmailFormat = "firstlast"
	FormatFirstInitialLast        EmailFormat = "first_initiallast"
	FormatFirstInitialDotLast     EmailFormat = "first_initial.last"
	FormatFirst                   EmailFormat = "first"
	FormatLast                    EmailFormat = "last"
	FormatFirstDotLastInitial     EmailFormat = "first.last_initial"
	FormatFirstInitialLastInitial EmailFormat = "first_initiallast_initial"
)

// KnownFormats lists every supported format in pattern-test order. The more
// specific patterns come first so that ambiguous local parts resolve to the
// most descriptive match.
var KnownFormats = []EmailFormat{
	FormatFirstDotLast,
	FormatFirstLast,
	FormatFirstInitialDotLast,
	FormatFirstInitialLast,
	FormatFirst,
	FormatLast,
	FormatFirstDotLastInitial,
	FormatFirstInitialLastInitial,
}

// IsKnownFormat reports whether f is one of the eight supported patterns.
func IsKnownFormat(f EmailFormat) bool {
	for _, k := range KnownFormats {
		if f == k {
			return true
		}
	}
	return false
}

// DiscoveredEmail is an email observed in search evidence, optionally with
// the person name it appeared next to.
type DiscoveredEmail struct {
	Name    string  `json:"name,omitempty"`
	Address string  `json:"address"`
	Score   float64 `json:"score"`
	Source  string  `json:"source,omitempty"`
}

// How a format determination was made.
const (
	FormatSourceKnownPair = "known_pair"
	FormatSourceLLM       = "llm_inferred"
)

// ConstructedEmail is a deterministically built address for one role.
// Address is always a complete local@domain string; a role that could not be
// constructed is simply absent from the result.
type ConstructedEmail struct {
	Role              string        `json:"role"`
	Address           string        `json:"address"`
	StrategyUsed      EmailStrategy `json:"strategy_used"`
	UncertaintyReason string        `json:"uncertainty_reason,omitempty"`
}
