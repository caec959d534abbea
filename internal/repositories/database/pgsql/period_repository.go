package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bizbooks/gl_engine/internal/apperrors"
	"github.com/bizbooks/gl_engine/internal/core/domain"
	portsrepo "github.com/bizbooks/gl_engine/internal/core/ports/repositories"
	"github.com/bizbooks/gl_engine/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPeriodRepository struct {
	BaseRepository
}

// newPgxPeriodRepository creates a new repository for fiscal period data.
func newPgxPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepositoryFacade {
	return &PgxPeriodRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxPeriodRepository implements portsrepo.PeriodRepositoryFacade
var _ portsrepo.PeriodRepositoryFacade = (*PgxPeriodRepository)(nil)

func toDomainFiscalPeriod(m models.FiscalPeriod) domain.FiscalPeriod {
	return domain.FiscalPeriod{
		FiscalPeriodID: m.FiscalPeriodID,
		TenantID:       m.TenantID,
		CompanyID:      m.CompanyID,
		FiscalYear:     m.FiscalYear,
		PeriodNumber:   m.PeriodNumber,
		StartDate:      m.StartDate,
		EndDate:        m.EndDate,
		Status:         domain.PeriodStatus(m.Status),
		ClosedAt:       m.ClosedAt,
		ClosedBy:       m.ClosedBy,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func toDomainPeriodLock(m models.PeriodLock) domain.PeriodLock {
	return domain.PeriodLock{
		PeriodLockID:   m.PeriodLockID,
		FiscalPeriodID: m.FiscalPeriodID,
		LockType:       domain.PeriodLockType(m.LockType),
		LockedBy:       m.LockedBy,
		Reason:         m.Reason,
		IsActive:       m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const fiscalPeriodColumns = `fiscal_period_id, tenant_id, company_id, fiscal_year, period_number, start_date, end_date, status, closed_at, closed_by, created_at, created_by, last_updated_at, last_updated_by`

func scanFiscalPeriod(row pgx.Row) (*domain.FiscalPeriod, error) {
	var m models.FiscalPeriod
	err := row.Scan(
		&m.FiscalPeriodID,
		&m.TenantID,
		&m.CompanyID,
		&m.FiscalYear,
		&m.PeriodNumber,
		&m.StartDate,
		&m.EndDate,
		&m.Status,
		&m.ClosedAt,
		&m.ClosedBy,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	period := toDomainFiscalPeriod(m)
	return &period, nil
}

// FindFiscalPeriodByID retrieves a fiscal period by its ID.
func (r *PgxPeriodRepository) FindFiscalPeriodByID(ctx context.Context, fiscalPeriodID string) (*domain.FiscalPeriod, error) {
	query := `
		SELECT ` + fiscalPeriodColumns + `
		FROM fiscal_periods
		WHERE fiscal_period_id = $1;
	`
	period, err := scanFiscalPeriod(r.Pool.QueryRow(ctx, query, fiscalPeriodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find fiscal period by ID %s: %w", fiscalPeriodID, err)
	}
	return period, nil
}

// FindFiscalPeriodByNumber retrieves the period with the given fiscal year and
// period number within a company's fiscal calendar.
func (r *PgxPeriodRepository) FindFiscalPeriodByNumber(ctx context.Context, tenantID, companyID string, fiscalYear, periodNumber int) (*domain.FiscalPeriod, error) {
	query := `
		SELECT ` + fiscalPeriodColumns + `
		FROM fiscal_periods
		WHERE tenant_id = $1 AND company_id = $2 AND fiscal_year = $3 AND period_number = $4;
	`
	period, err := scanFiscalPeriod(r.Pool.QueryRow(ctx, query, tenantID, companyID, fiscalYear, periodNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find fiscal period %d-%d: %w", fiscalYear, periodNumber, err)
	}
	return period, nil
}

// UpdateFiscalPeriodStatus transitions a period's status with a
// compare-and-swap on the expected current status. Zero rows affected means
// the stored status no longer matches and the caller lost the race.
func (r *PgxPeriodRepository) UpdateFiscalPeriodStatus(ctx context.Context, fiscalPeriodID string, expected, next domain.PeriodStatus, closedAt *time.Time, closedBy *string, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE fiscal_periods
		SET status = $1, closed_at = $2, closed_by = $3, last_updated_at = $4, last_updated_by = $5
		WHERE fiscal_period_id = $6 AND status = $7;
	`
	tag, err := r.Pool.Exec(ctx, query, next, closedAt, closedBy, updatedAt, updatedBy, fiscalPeriodID, expected)
	if err != nil {
		return fmt.Errorf("failed to update status of fiscal period %s: %w", fiscalPeriodID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: fiscal period %s is no longer %s", apperrors.ErrConflict, fiscalPeriodID, expected)
	}
	return nil
}

// ClosePeriodWithLock transitions an OPEN period to CLOSED and inserts the
// posting lock within a single database transaction. Either both writes land
// or neither does.
func (r *PgxPeriodRepository) ClosePeriodWithLock(ctx context.Context, fiscalPeriodID string, closedAt time.Time, closedBy string, lock domain.PeriodLock) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	// Ignored once the transaction is committed.
	defer r.Rollback(ctx, tx)

	statusQuery := `
		UPDATE fiscal_periods
		SET status = $1, closed_at = $2, closed_by = $3, last_updated_at = $4, last_updated_by = $5
		WHERE fiscal_period_id = $6 AND status = $7;
	`
	tag, err := tx.Exec(ctx, statusQuery, domain.PeriodClosed, closedAt, closedBy, closedAt, closedBy, fiscalPeriodID, domain.PeriodOpen)
	if err != nil {
		return fmt.Errorf("failed to close fiscal period %s: %w", fiscalPeriodID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: fiscal period %s is no longer %s", apperrors.ErrConflict, fiscalPeriodID, domain.PeriodOpen)
	}

	lockQuery := `
		INSERT INTO period_locks (period_lock_id, fiscal_period_id, lock_type, locked_by, reason, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, lockQuery,
		lock.PeriodLockID,
		lock.FiscalPeriodID,
		lock.LockType,
		lock.LockedBy,
		lock.Reason,
		lock.IsActive,
		lock.CreatedAt,
		lock.CreatedBy,
		lock.LastUpdatedAt,
		lock.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save posting lock for fiscal period %s: %w", fiscalPeriodID, err)
	}

	return r.Commit(ctx, tx)
}

// ReopenPeriod transitions a CLOSED or LOCKED period back to OPEN, clears the
// close audit columns and deactivates every active lock within a single
// database transaction.
func (r *PgxPeriodRepository) ReopenPeriod(ctx context.Context, fiscalPeriodID string, expected domain.PeriodStatus, openedBy string, openedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	// Ignored once the transaction is committed.
	defer r.Rollback(ctx, tx)

	statusQuery := `
		UPDATE fiscal_periods
		SET status = $1, closed_at = NULL, closed_by = NULL, last_updated_at = $2, last_updated_by = $3
		WHERE fiscal_period_id = $4 AND status = $5;
	`
	tag, err := tx.Exec(ctx, statusQuery, domain.PeriodOpen, openedAt, openedBy, fiscalPeriodID, expected)
	if err != nil {
		return fmt.Errorf("failed to reopen fiscal period %s: %w", fiscalPeriodID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: fiscal period %s is no longer %s", apperrors.ErrConflict, fiscalPeriodID, expected)
	}

	// Reopening with no active locks is not an error.
	locksQuery := `
		UPDATE period_locks
		SET is_active = FALSE, last_updated_at = $1, last_updated_by = $2
		WHERE fiscal_period_id = $3 AND is_active = TRUE;
	`
	if _, err := tx.Exec(ctx, locksQuery, openedAt, openedBy, fiscalPeriodID); err != nil {
		return fmt.Errorf("failed to deactivate period locks for %s: %w", fiscalPeriodID, err)
	}

	return r.Commit(ctx, tx)
}

// SavePeriodLock inserts a new period lock row.
func (r *PgxPeriodRepository) SavePeriodLock(ctx context.Context, lock domain.PeriodLock) error {
	query := `
		INSERT INTO period_locks (period_lock_id, fiscal_period_id, lock_type, locked_by, reason, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		lock.PeriodLockID,
		lock.FiscalPeriodID,
		lock.LockType,
		lock.LockedBy,
		lock.Reason,
		lock.IsActive,
		lock.CreatedAt,
		lock.CreatedBy,
		lock.LastUpdatedAt,
		lock.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: period lock %s already exists", apperrors.ErrDuplicate, lock.PeriodLockID)
		}
		return fmt.Errorf("failed to save period lock %s: %w", lock.PeriodLockID, err)
	}
	return nil
}

// ListActivePeriodLocks lists the active locks for a fiscal period.
func (r *PgxPeriodRepository) ListActivePeriodLocks(ctx context.Context, fiscalPeriodID string) ([]domain.PeriodLock, error) {
	query := `
		SELECT period_lock_id, fiscal_period_id, lock_type, locked_by, reason, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM period_locks
		WHERE fiscal_period_id = $1 AND is_active = TRUE
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, fiscalPeriodID)
	if err != nil {
		return nil, fmt.Errorf("failed to list period locks for %s: %w", fiscalPeriodID, err)
	}
	defer rows.Close()

	var locks []domain.PeriodLock
	for rows.Next() {
		var m models.PeriodLock
		err := rows.Scan(
			&m.PeriodLockID,
			&m.FiscalPeriodID,
			&m.LockType,
			&m.LockedBy,
			&m.Reason,
			&m.IsActive,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan period lock row: %w", err)
		}
		locks = append(locks, toDomainPeriodLock(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating period lock rows: %w", err)
	}
	return locks, nil
}

// SaveReversingEntry inserts a new reversing entry row.
func (r *PgxPeriodRepository) SaveReversingEntry(ctx context.Context, entry domain.ReversingEntry) error {
	query := `
		INSERT INTO reversing_entries (reversing_entry_id, original_journal_id, reversal_date, reversal_reason, status, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		entry.ReversingEntryID,
		entry.OriginalJournalID,
		entry.ReversalDate,
		entry.ReversalReason,
		entry.Status,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: reversing entry for journal %s already exists", apperrors.ErrDuplicate, entry.OriginalJournalID)
		}
		return fmt.Errorf("failed to save reversing entry %s: %w", entry.ReversingEntryID, err)
	}
	return nil
}

// HasReversingEntry reports whether a reversing entry already exists for the
// given original journal.
func (r *PgxPeriodRepository) HasReversingEntry(ctx context.Context, originalJournalID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM reversing_entries WHERE original_journal_id = $1
		);
	`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, originalJournalID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check reversing entry for journal %s: %w", originalJournalID, err)
	}
	return exists, nil
}
