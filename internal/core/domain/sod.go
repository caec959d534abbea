package domain

// SoDAction names a sensitive operation gated by segregation-of-duties rules.
type SoDAction string

const (
	SoDActionPostJournal SoDAction = "journal:post"
	SoDActionClosePeriod SoDAction = "period:close"
	SoDActionOpenPeriod  SoDAction = "period:open"
	SoDActionLockPeriod  SoDAction = "period:lock"
)

// SoDDecision is the three-state outcome of a segregation-of-duties check.
// Allowed=false is always fatal for the current actor. RequiresApproval=true
// with Allowed=true means "proceed but flag for approval", never a block.
// Decisions are transient: recomputed on every sensitive operation, never
// persisted.
type SoDDecision struct {
	Allowed          bool   `json:"allowed"`
	RequiresApproval bool   `json:"requiresApproval"`
	Reason           string `json:"reason,omitempty"`
}
