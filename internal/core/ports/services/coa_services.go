package services

import (
	"context"

	"github.com/bizbooks/gl_engine/internal/core/domain"
)

// CoaRegistrySvcFacade loads chart-of-accounts snapshots for validation.
type CoaRegistrySvcFacade interface {
	// LoadChart builds an in-memory snapshot of a company's account hierarchy.
	LoadChart(ctx context.Context, tenantID, companyID string) (*domain.ChartOfAccounts, error)
}
