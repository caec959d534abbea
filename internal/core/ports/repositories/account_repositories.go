package repositories

import (
	"context"

	"github.com/bizbooks/gl_engine/internal/core/domain"
)

// AccountReader defines read operations for chart-of-accounts data. Account
// lookups go through the chart snapshot, so no single-account fetch exists.
type AccountReader interface {
	// ListAccountsByCompany retrieves every account of a company, active or
	// not. Used to build the in-memory chart-of-accounts snapshot.
	ListAccountsByCompany(ctx context.Context, tenantID, companyID string) ([]domain.Account, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
}
