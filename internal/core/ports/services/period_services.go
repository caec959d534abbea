package services

import (
	"context"

	"github.com/bizbooks/gl_engine/internal/dto"
)

// PeriodSvcFacade drives the fiscal period lifecycle state machine.
type PeriodSvcFacade interface {
	// CloseFiscalPeriod validates and closes a period: pre-close checks,
	// optional reversing-entry generation, CAS status transition and a
	// POSTING lock. Business failures come back on the result.
	CloseFiscalPeriod(ctx context.Context, input dto.ClosePeriodInput) (*dto.ClosePeriodResult, error)

	// OpenFiscalPeriod reopens a closed period and deactivates its locks.
	OpenFiscalPeriod(ctx context.Context, input dto.OpenPeriodInput) (*dto.OpenPeriodResult, error)

	// CreatePeriodLock places a lock on a period. Also used internally by
	// close; exposed as an independent entry point.
	CreatePeriodLock(ctx context.Context, input dto.CreatePeriodLockInput) (*dto.CreatePeriodLockResult, error)
}
