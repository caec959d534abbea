package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bizbooks/gl_engine/internal/core/domain"
	portsrepo "github.com/bizbooks/gl_engine/internal/core/ports/repositories"
	portssvc "github.com/bizbooks/gl_engine/internal/core/ports/services"
	"github.com/bizbooks/gl_engine/internal/platform/logging"
)

// coaRegistryService builds chart-of-accounts snapshots from the account
// repository. Pure lookup once loaded; it owns no caching beyond the snapshot
// the caller holds.
type coaRegistryService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewCoaRegistryService creates a new chart-of-accounts registry service.
func NewCoaRegistryService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.CoaRegistrySvcFacade {
	return &coaRegistryService{accountRepo: accountRepo}
}

var _ portssvc.CoaRegistrySvcFacade = (*coaRegistryService)(nil)

// LoadChart fetches every account of the company and builds the snapshot.
func (s *coaRegistryService) LoadChart(ctx context.Context, tenantID, companyID string) (*domain.ChartOfAccounts, error) {
	logger := logging.GetLoggerFromCtx(ctx)

	accounts, err := s.accountRepo.ListAccountsByCompany(ctx, tenantID, companyID)
	if err != nil {
		logger.Error("Failed to list accounts for chart snapshot", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to load chart of accounts: %w", err)
	}

	chart := domain.NewChartOfAccounts(accounts)
	logger.Debug("Chart of accounts snapshot loaded", slog.String("company_id", companyID), slog.Int("account_count", chart.Size()))
	return chart, nil
}
