package models

import "time"

// ReversingEntryStatus tracks the downstream posting state of a reversing entry.
type ReversingEntryStatus string

const (
	ReversingPending ReversingEntryStatus = "PENDING"
	ReversingPosted  ReversingEntryStatus = "POSTED"
)

// ReversingEntry represents one scheduled accrual reversal row.
type ReversingEntry struct {
	ReversingEntryID  string               `db:"reversing_entry_id"`
	OriginalJournalID string               `db:"original_journal_id"`
	ReversalDate      time.Time            `db:"reversal_date"`
	ReversalReason    string               `db:"reversal_reason"`
	Status            ReversingEntryStatus `db:"status"`
	AuditFields
}
