package repositories

import (
	"context"
	"time"

	"github.com/bizbooks/gl_engine/internal/core/domain"
)

// FiscalPeriodReader defines read operations for fiscal period data.
type FiscalPeriodReader interface {
	// FindFiscalPeriodByID retrieves a fiscal period by its unique identifier.
	FindFiscalPeriodByID(ctx context.Context, fiscalPeriodID string) (*domain.FiscalPeriod, error)

	// FindFiscalPeriodByNumber retrieves the period with the given fiscal year
	// and period number within a company's fiscal calendar.
	FindFiscalPeriodByNumber(ctx context.Context, tenantID, companyID string, fiscalYear, periodNumber int) (*domain.FiscalPeriod, error)
}

// FiscalPeriodWriter defines the status transitions for fiscal periods.
type FiscalPeriodWriter interface {
	// UpdateFiscalPeriodStatus transitions a period's status with a
	// compare-and-swap on the expected current status. Returns
	// apperrors.ErrConflict when the stored status no longer matches expected,
	// so concurrent transitions lose the race instead of double-applying.
	UpdateFiscalPeriodStatus(ctx context.Context, fiscalPeriodID string, expected, next domain.PeriodStatus, closedAt *time.Time, closedBy *string, updatedBy string, updatedAt time.Time) error

	// ClosePeriodWithLock transitions an OPEN period to CLOSED and inserts the
	// posting lock within a single database transaction, so a lock-insert
	// failure never leaves a closed period without its lock. Returns
	// apperrors.ErrConflict when the period is no longer OPEN.
	ClosePeriodWithLock(ctx context.Context, fiscalPeriodID string, closedAt time.Time, closedBy string, lock domain.PeriodLock) error

	// ReopenPeriod transitions a CLOSED or LOCKED period back to OPEN, clears
	// the close audit columns and deactivates every active lock, all within a
	// single database transaction. Returns apperrors.ErrConflict when the
	// stored status no longer matches expected.
	ReopenPeriod(ctx context.Context, fiscalPeriodID string, expected domain.PeriodStatus, openedBy string, openedAt time.Time) error
}

// PeriodLockRepository defines operations on period lock records.
type PeriodLockRepository interface {
	// SavePeriodLock inserts a new period lock row.
	SavePeriodLock(ctx context.Context, lock domain.PeriodLock) error

	// ListActivePeriodLocks lists the active locks for a fiscal period.
	ListActivePeriodLocks(ctx context.Context, fiscalPeriodID string) ([]domain.PeriodLock, error)
}

// ReversingEntryRepository defines operations on scheduled reversing entries.
type ReversingEntryRepository interface {
	// SaveReversingEntry inserts a new reversing entry row.
	SaveReversingEntry(ctx context.Context, entry domain.ReversingEntry) error

	// HasReversingEntry reports whether a reversing entry already exists for
	// the given original journal. Close re-runs consult this before inserting
	// so reversing-entry generation stays idempotent.
	HasReversingEntry(ctx context.Context, originalJournalID string) (bool, error)
}

// PeriodRepositoryFacade combines all period-related repository interfaces
// with transaction capabilities.
type PeriodRepositoryFacade interface {
	FiscalPeriodReader
	FiscalPeriodWriter
	PeriodLockRepository
	ReversingEntryRepository
	TransactionManager
}
