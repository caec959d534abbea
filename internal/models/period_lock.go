package models

// PeriodLockType scopes what a period lock gates.
type PeriodLockType string

const (
	LockPosting   PeriodLockType = "POSTING"
	LockReporting PeriodLockType = "REPORTING"
	LockFull      PeriodLockType = "FULL"
)

// PeriodLock represents one lock row against a fiscal period. Deactivated
// locks are kept for history; only active locks gate new postings.
type PeriodLock struct {
	PeriodLockID   string         `db:"period_lock_id"`
	FiscalPeriodID string         `db:"fiscal_period_id"`
	LockType       PeriodLockType `db:"lock_type"`
	LockedBy       string         `db:"locked_by"`
	Reason         string         `db:"reason"`
	IsActive       bool           `db:"is_active"`
	AuditFields
}
