package dto

import (
	"time"

	"github.com/bizbooks/gl_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLine is one debit/credit leg of a proposed journal entry.
// A line may legitimately carry a zero contra side; the balancing invariant
// is enforced at the document level, not per line.
type JournalLine struct {
	AccountID   string          `json:"accountID" validate:"required"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description,omitempty"`
	Reference   string          `json:"reference,omitempty"`
}

// JournalPostingInput is a proposed, not-yet-persisted journal entry. It is
// constructed transiently by a sub-ledger adapter or by the caller, passed
// once through the validator and never mutated afterward.
//
// BaseCurrencyCode is the company's functional currency; like the posting
// context it is supplied and owned by the caller. ExchangeRate converts
// line amounts into base currency and defaults to 1 when the currencies match.
type JournalPostingInput struct {
	JournalNumber    string                `json:"journalNumber" validate:"required"`
	Description      string                `json:"description,omitempty"`
	JournalDate      time.Time             `json:"journalDate" validate:"required"`
	CurrencyCode     string                `json:"currencyCode" validate:"required,len=3"`
	BaseCurrencyCode string                `json:"baseCurrencyCode" validate:"required,len=3"`
	ExchangeRate     decimal.Decimal       `json:"exchangeRate"`
	Lines            []JournalLine         `json:"lines"`
	Context          domain.PostingContext `json:"context"`
}

// COAWarning is an advisory, non-fatal finding about an unusual posting
// pattern (e.g. crediting an asset account), intended for UI display.
type COAWarning struct {
	AccountID   string             `json:"accountID"`
	Warning     string             `json:"warning"`
	AccountType domain.AccountType `json:"accountType"`
	Amount      decimal.Decimal    `json:"amount"`
	Side        string             `json:"side"` // DEBIT or CREDIT
}

// JournalValidationResult is the discriminated outcome of journal validation.
// Validated=true may still carry RequiresApproval and advisory COAWarnings;
// Validated=false carries a failure Code and a human-readable Error.
type JournalValidationResult struct {
	Validated        bool          `json:"validated"`
	Code             string        `json:"code,omitempty"`
	Error            string        `json:"error,omitempty"`
	RequiresApproval bool          `json:"requiresApproval,omitempty"`
	ApproverRoles    []domain.Role `json:"approverRoles,omitempty"`
	COAWarnings      []COAWarning  `json:"coaWarnings,omitempty"`
}

// PostingIntent is a validated-but-not-yet-persisted posting produced by a
// sub-ledger adapter: the generated journal plus its validation outcome.
// Persistence is the caller's responsibility once Result.Validated is true.
type PostingIntent struct {
	Journal JournalPostingInput     `json:"journal"`
	Result  JournalValidationResult `json:"result"`
}

// ValidationFailure builds a failed result with the given code and message.
func ValidationFailure(code, msg string) *JournalValidationResult {
	return &JournalValidationResult{Validated: false, Code: code, Error: msg}
}
