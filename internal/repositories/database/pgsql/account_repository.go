package pgsql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bizbooks/gl_engine/internal/core/domain"
	portsrepo "github.com/bizbooks/gl_engine/internal/core/ports/repositories"
	"github.com/bizbooks/gl_engine/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// Helper to convert models.Account from DB to domain.Account
func toDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:       m.AccountID,
		TenantID:        m.TenantID,
		CompanyID:       m.CompanyID,
		Code:            m.Code,
		Name:            m.Name,
		AccountType:     domain.AccountType(m.AccountType),
		CurrencyCode:    m.CurrencyCode,
		ParentAccountID: m.ParentAccountID,
		IsActive:        m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// ListAccountsByCompany retrieves every account of a company, active or not.
func (r *PgxAccountRepository) ListAccountsByCompany(ctx context.Context, tenantID, companyID string) ([]domain.Account, error) {
	query := `
		SELECT account_id, tenant_id, company_id, code, name, account_type, currency_code, parent_account_id, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM accounts
		WHERE tenant_id = $1 AND company_id = $2
		ORDER BY code;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts for company %s: %w", companyID, err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var modelAcc models.Account
		var parentID sql.NullString
		err := rows.Scan(
			&modelAcc.AccountID,
			&modelAcc.TenantID,
			&modelAcc.CompanyID,
			&modelAcc.Code,
			&modelAcc.Name,
			&modelAcc.AccountType,
			&modelAcc.CurrencyCode,
			&parentID,
			&modelAcc.IsActive,
			&modelAcc.CreatedAt,
			&modelAcc.CreatedBy,
			&modelAcc.LastUpdatedAt,
			&modelAcc.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		if parentID.Valid {
			modelAcc.ParentAccountID = parentID.String
		}
		accounts = append(accounts, toDomainAccount(modelAcc))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}
