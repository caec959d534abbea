package services

import (
	"context"

	"github.com/bizbooks/gl_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SoDSvcFacade evaluates segregation-of-duties policy for sensitive
// operations. The decision contract is shared by posting and period
// operations: Allowed=false is always fatal, RequiresApproval=true with
// Allowed=true means proceed but flag for approval.
type SoDSvcFacade interface {
	// Check evaluates the policy for the acting user, the attempted action
	// and, where relevant, the document's aggregate monetary amount (pass
	// decimal.Zero for amount-less actions).
	Check(ctx context.Context, action domain.SoDAction, amount decimal.Decimal, pctx domain.PostingContext) domain.SoDDecision

	// ApproverRoles returns the roles permitted to approve flagged operations.
	ApproverRoles() []domain.Role
}
