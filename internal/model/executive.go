package model

// TreasurerSameAsCFO is the literal value the resolver emits when the
// treasurer role is filled by the CFO.
const TreasurerSameAsCFO = "same"

// ExecutiveSet holds the resolved CEO/CFO/Treasurer triple. Any field may be
// empty when the evidence did not support a resolution. A Treasurer value of
// "same" means the treasurer role is filled by the CFO.
type ExecutiveSet struct {
	CEO       string `json:"ceo,omitempty"`
	CFO       string `json:"cfo,omitempty"`
	Treasurer string `json:"treasurer,omitempty"`
}

// TreasurerIsCFO reports whether the treasurer role aliases the CFO.
func (e ExecutiveSet) TreasurerIsCFO() bool {
	return e.Treasurer == TreasurerSameAsCFO
}
