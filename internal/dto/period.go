package dto

import (
	"time"

	"github.com/bizbooks/gl_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ClosePeriodInput is the request to close a fiscal period.
type ClosePeriodInput struct {
	TenantID                 string      `json:"tenantID" validate:"required"`
	CompanyID                string      `json:"companyID" validate:"required"`
	FiscalPeriodID           string      `json:"fiscalPeriodID" validate:"required"`
	ClosedBy                 string      `json:"closedBy" validate:"required"`
	UserRole                 domain.Role `json:"userRole" validate:"required"`
	CloseDate                time.Time   `json:"closeDate" validate:"required"`
	ForceClose               bool        `json:"forceClose"`
	GenerateReversingEntries bool        `json:"generateReversingEntries"`
}

// OpenPeriodInput is the request to reopen a closed fiscal period.
type OpenPeriodInput struct {
	TenantID       string      `json:"tenantID" validate:"required"`
	CompanyID      string      `json:"companyID" validate:"required"`
	FiscalPeriodID string      `json:"fiscalPeriodID" validate:"required"`
	OpenedBy       string      `json:"openedBy" validate:"required"`
	UserRole       domain.Role `json:"userRole" validate:"required"`
	OpenReason     string      `json:"openReason" validate:"required"`
	// ApprovalRequired marks reopens that must ride an approval workflow;
	// the SoD decision has to flag the action accordingly or the reopen fails.
	ApprovalRequired bool `json:"approvalRequired"`
}

// CreatePeriodLockInput is the request to place a lock on a fiscal period.
type CreatePeriodLockInput struct {
	TenantID       string                `json:"tenantID" validate:"required"`
	CompanyID      string                `json:"companyID" validate:"required"`
	FiscalPeriodID string                `json:"fiscalPeriodID" validate:"required"`
	LockType       domain.PeriodLockType `json:"lockType" validate:"required,oneof=POSTING REPORTING FULL"`
	LockedBy       string                `json:"lockedBy" validate:"required"`
	UserRole       domain.Role           `json:"userRole" validate:"required"`
	Reason         string                `json:"reason" validate:"required"`
}

// CloseChecks itemizes the pre-close validation checks.
type CloseChecks struct {
	AllJournalsPosted         bool `json:"allJournalsPosted"`
	TrialBalanceBalanced      bool `json:"trialBalanceBalanced"`
	BankRecComplete           bool `json:"bankRecComplete"`
	RequiredAdjustmentsPosted bool `json:"requiredAdjustmentsPosted"`
}

// PreCloseValidation is the aggregate pre-close validation report. Errors
// block the close (unless forced); warnings never do.
type PreCloseValidation struct {
	CanClose               bool            `json:"canClose"`
	Errors                 []string        `json:"errors,omitempty"`
	Warnings               []string        `json:"warnings,omitempty"`
	Checks                 CloseChecks     `json:"checks"`
	UnpostedJournalCount   int             `json:"unpostedJournalCount"`
	TrialBalanceDifference decimal.Decimal `json:"trialBalanceDifference"`
}

// ClosePeriodResult is the discriminated outcome of a close attempt. The
// validation report is attached on both success and validation failure so the
// caller can always display it.
type ClosePeriodResult struct {
	Success                 bool                 `json:"success"`
	Code                    string               `json:"code,omitempty"`
	Error                   string               `json:"error,omitempty"`
	Validation              *PreCloseValidation  `json:"validation,omitempty"`
	ReversingEntriesCreated int                  `json:"reversingEntriesCreated"`
	Period                  *domain.FiscalPeriod `json:"period,omitempty"`
}

// OpenPeriodResult is the discriminated outcome of a reopen attempt.
type OpenPeriodResult struct {
	Success bool                 `json:"success"`
	Code    string               `json:"code,omitempty"`
	Error   string               `json:"error,omitempty"`
	Period  *domain.FiscalPeriod `json:"period,omitempty"`
}

// CreatePeriodLockResult is the discriminated outcome of a lock request.
type CreatePeriodLockResult struct {
	Success bool               `json:"success"`
	Code    string             `json:"code,omitempty"`
	Error   string             `json:"error,omitempty"`
	Lock    *domain.PeriodLock `json:"lock,omitempty"`
}
