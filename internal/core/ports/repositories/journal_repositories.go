package repositories

import (
	"context"
	"time"

	"github.com/bizbooks/gl_engine/internal/core/domain"
)

// LedgerReader defines the read-only ledger queries the period lifecycle
// manager issues against posted journal data. Journal and journal-line
// persistence itself is owned by the caller of the posting engine.
type LedgerReader interface {
	// CountUnpostedJournals counts draft journals dated within [from, to].
	CountUnpostedJournals(ctx context.Context, tenantID, companyID string, from, to time.Time) (int, error)

	// TrialBalance sums all posted debits and credits through asOf.
	TrialBalance(ctx context.Context, tenantID, companyID string, asOf time.Time) (domain.TrialBalance, error)

	// ListAccrualJournals lists posted journals dated within [from, to] whose
	// reference marks them as accrual-type.
	ListAccrualJournals(ctx context.Context, tenantID, companyID string, from, to time.Time) ([]domain.PostedJournal, error)

	// CountUnreconciledBankTransactions counts bank transactions through asOf
	// that have not been reconciled.
	CountUnreconciledBankTransactions(ctx context.Context, tenantID, companyID string, asOf time.Time) (int, error)
}

// LedgerRepositoryFacade combines all ledger-query repository interfaces.
type LedgerRepositoryFacade interface {
	LedgerReader
}
