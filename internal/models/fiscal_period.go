package models

import "time"

// PeriodStatus is the stored lifecycle state of a fiscal period.
type PeriodStatus string

const (
	PeriodOpen   PeriodStatus = "OPEN"
	PeriodClosed PeriodStatus = "CLOSED"
	PeriodLocked PeriodStatus = "LOCKED"
)

// FiscalPeriod represents one row of a company's fiscal calendar.
type FiscalPeriod struct {
	FiscalPeriodID string       `db:"fiscal_period_id"`
	TenantID       string       `db:"tenant_id"`
	CompanyID      string       `db:"company_id"`
	FiscalYear     int          `db:"fiscal_year"`
	PeriodNumber   int          `db:"period_number"`
	StartDate      time.Time    `db:"start_date"`
	EndDate        time.Time    `db:"end_date"`
	Status         PeriodStatus `db:"status"`
	ClosedAt       *time.Time   `db:"closed_at"` // Nullable
	ClosedBy       *string      `db:"closed_by"` // Nullable
	AuditFields
}
