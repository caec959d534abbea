package domain

import "time"

// PeriodStatus is the lifecycle state of a fiscal period.
type PeriodStatus string

const (
	PeriodOpen   PeriodStatus = "OPEN"
	PeriodClosed PeriodStatus = "CLOSED"
	PeriodLocked PeriodStatus = "LOCKED"
)

// FiscalPeriod represents one period of a company's fiscal calendar.
// Status transitions are driven exclusively by the period lifecycle service;
// status, closedAt and closedBy are the only fields this engine writes.
type FiscalPeriod struct {
	FiscalPeriodID string       `json:"fiscalPeriodID"`
	TenantID       string       `json:"tenantID"`
	CompanyID      string       `json:"companyID"`
	FiscalYear     int          `json:"fiscalYear"`
	PeriodNumber   int          `json:"periodNumber"`
	StartDate      time.Time    `json:"startDate"`
	EndDate        time.Time    `json:"endDate"`
	Status         PeriodStatus `json:"status"`
	ClosedAt       *time.Time   `json:"closedAt"`
	ClosedBy       *string      `json:"closedBy"`
	AuditFields
}

// LockType scopes what a period lock gates.
type PeriodLockType string

const (
	LockPosting   PeriodLockType = "POSTING"
	LockReporting PeriodLockType = "REPORTING"
	LockFull      PeriodLockType = "FULL"
)

// PeriodLock gates new activity against a fiscal period. Multiple locks may
// exist historically; only active locks gate new postings.
type PeriodLock struct {
	PeriodLockID   string         `json:"periodLockID"`
	FiscalPeriodID string         `json:"fiscalPeriodID"`
	LockType       PeriodLockType `json:"lockType"`
	LockedBy       string         `json:"lockedBy"`
	Reason         string         `json:"reason"`
	IsActive       bool           `json:"isActive"`
	AuditFields
}

// ReversingEntryStatus tracks the downstream posting state of a reversing entry.
type ReversingEntryStatus string

const (
	ReversingPending ReversingEntryStatus = "PENDING"
	ReversingPosted  ReversingEntryStatus = "POSTED"
)

// ReversingEntry schedules the counter-entry for an accrual journal, dated at
// the start of the following period. Actual GL posting of the reversal is a
// downstream job; this engine only creates the schedule rows during close.
type ReversingEntry struct {
	ReversingEntryID  string               `json:"reversingEntryID"`
	OriginalJournalID string               `json:"originalJournalID"`
	ReversalDate      time.Time            `json:"reversalDate"`
	ReversalReason    string               `json:"reversalReason"`
	Status            ReversingEntryStatus `json:"status"`
	AuditFields
}
