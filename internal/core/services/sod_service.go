package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bizbooks/gl_engine/internal/core/domain"
	portssvc "github.com/bizbooks/gl_engine/internal/core/ports/services"
	"github.com/bizbooks/gl_engine/internal/platform/config"
	"github.com/bizbooks/gl_engine/internal/platform/logging"
	"github.com/shopspring/decimal"
)

// sodService evaluates segregation-of-duties policy. Role and threshold rules
// come from configuration; the decision contract is fixed: Allowed=false is
// fatal for the current actor, RequiresApproval=true with Allowed=true means
// proceed but route to an approval workflow.
type sodService struct {
	approvalThreshold decimal.Decimal
	approverRoles     []domain.Role
}

// NewSoDService creates a new SoD authorizer from configuration.
func NewSoDService(cfg *config.Config) portssvc.SoDSvcFacade {
	return &sodService{
		approvalThreshold: cfg.ApprovalThreshold,
		approverRoles:     cfg.ApproverRoles,
	}
}

var _ portssvc.SoDSvcFacade = (*sodService)(nil)

// managerTier roles act without approval and may drive period transitions.
func managerTier(role domain.Role) bool {
	switch role {
	case domain.RoleFinanceManager, domain.RoleController, domain.RoleAdmin:
		return true
	}
	return false
}

// Check evaluates the policy for one action. Decisions are transient and
// recomputed on every sensitive operation.
func (s *sodService) Check(ctx context.Context, action domain.SoDAction, amount decimal.Decimal, pctx domain.PostingContext) domain.SoDDecision {
	logger := logging.GetLoggerFromCtx(ctx)

	decision := s.evaluate(action, amount, pctx.UserRole)
	if !decision.Allowed {
		logger.Warn("SoD check denied",
			slog.String("action", string(action)),
			slog.String("user_id", pctx.UserID),
			slog.String("role", string(pctx.UserRole)),
			slog.String("reason", decision.Reason))
	} else if decision.RequiresApproval {
		logger.Info("SoD check flagged for approval",
			slog.String("action", string(action)),
			slog.String("user_id", pctx.UserID),
			slog.String("role", string(pctx.UserRole)))
	}
	return decision
}

func (s *sodService) evaluate(action domain.SoDAction, amount decimal.Decimal, role domain.Role) domain.SoDDecision {
	switch role {
	case domain.RoleClerk, domain.RoleAccountant, domain.RoleFinanceManager, domain.RoleController, domain.RoleAdmin:
	case domain.RoleViewer:
		return domain.SoDDecision{Allowed: false, Reason: "role VIEWER is read-only"}
	default:
		return domain.SoDDecision{Allowed: false, Reason: fmt.Sprintf("unknown role %q", role)}
	}

	switch action {
	case domain.SoDActionPostJournal:
		if managerTier(role) {
			return domain.SoDDecision{Allowed: true}
		}
		if amount.GreaterThanOrEqual(s.approvalThreshold) {
			return domain.SoDDecision{
				Allowed:          true,
				RequiresApproval: true,
				Reason:           fmt.Sprintf("posting amount %s meets approval threshold %s", amount.String(), s.approvalThreshold.String()),
			}
		}
		return domain.SoDDecision{Allowed: true}

	case domain.SoDActionClosePeriod, domain.SoDActionOpenPeriod, domain.SoDActionLockPeriod:
		if role == domain.RoleClerk {
			return domain.SoDDecision{Allowed: false, Reason: fmt.Sprintf("role CLERK may not perform %s", action)}
		}
		if role == domain.RoleAccountant {
			return domain.SoDDecision{
				Allowed:          true,
				RequiresApproval: true,
				Reason:           fmt.Sprintf("role ACCOUNTANT requires approval for %s", action),
			}
		}
		return domain.SoDDecision{Allowed: true}
	}

	return domain.SoDDecision{Allowed: false, Reason: fmt.Sprintf("unknown action %q", action)}
}

// ApproverRoles returns the configured roles permitted to approve flagged
// operations.
func (s *sodService) ApproverRoles() []domain.Role {
	roles := make([]domain.Role, len(s.approverRoles))
	copy(roles, s.approverRoles)
	return roles
}
