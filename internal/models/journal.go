package models

import "time"

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Draft    JournalStatus = "DRAFT"
	Posted   JournalStatus = "POSTED"
	Reversed JournalStatus = "REVERSED"
)

// Journal is the slim journal header row read by the ledger queries. Full
// journal and journal-line persistence is owned by the caller of the engine.
type Journal struct {
	JournalID     string        `db:"journal_id"`
	TenantID      string        `db:"tenant_id"`
	CompanyID     string        `db:"company_id"`
	JournalNumber string        `db:"journal_number"`
	Reference     string        `db:"reference"` // Nullable
	JournalDate   time.Time     `db:"journal_date"`
	Status        JournalStatus `db:"status"`
	AuditFields
}
