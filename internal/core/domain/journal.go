package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a posted journal entry.
type JournalStatus string

const (
	Draft    JournalStatus = "DRAFT"
	Posted   JournalStatus = "POSTED"
	Reversed JournalStatus = "REVERSED"
)

// PostedJournal is the slim view of a journal that the period lifecycle
// manager reads from the ledger (reference scanning, reversing-entry
// generation). Full journal persistence is owned by the caller.
type PostedJournal struct {
	JournalID     string        `json:"journalID"`
	JournalNumber string        `json:"journalNumber"`
	Reference     string        `json:"reference"`
	JournalDate   time.Time     `json:"journalDate"`
	Status        JournalStatus `json:"status"`
}

// AccrualReferencePrefix marks a posted journal as an accrual whose effect
// should be reversed at the start of the following period.
const AccrualReferencePrefix = "ACCRUAL"

// IsAccrual reports whether the journal's reference marks it as accrual-type.
func (j PostedJournal) IsAccrual() bool {
	return len(j.Reference) >= len(AccrualReferencePrefix) &&
		j.Reference[:len(AccrualReferencePrefix)] == AccrualReferencePrefix
}

// TrialBalance is the aggregate of all posted debits and credits as of a date.
type TrialBalance struct {
	TotalDebits  decimal.Decimal `json:"totalDebits"`
	TotalCredits decimal.Decimal `json:"totalCredits"`
}

// Difference returns total debits minus total credits.
func (t TrialBalance) Difference() decimal.Decimal {
	return t.TotalDebits.Sub(t.TotalCredits)
}
