package dto

// Machine-readable failure codes carried on discriminated results. Every
// business-rule failure surfaces one of these plus a human-readable error
// string; infrastructure failures propagate as Go errors instead.
const (
	// Journal validation
	CodeInvalidAccounts       = "INVALID_ACCOUNTS"
	CodeInvalidAmount         = "INVALID_AMOUNT"
	CodeJournalUnbalanced     = "JOURNAL_UNBALANCED"
	CodeInvalidCurrency       = "INVALID_CURRENCY"
	CodeSoDViolation          = "SOD_VIOLATION"
	CodeBusinessRuleViolation = "BUSINESS_RULE_VIOLATION"

	// Sub-ledger adapters reject non-positive document totals before any
	// FX or validator work. The plural form is historical and preserved.
	CodeInvalidAmounts = "INVALID_AMOUNTS"

	// Period lifecycle
	CodeInvalidInput                = "INVALID_INPUT"
	CodePeriodNotFound              = "PERIOD_NOT_FOUND"
	CodePeriodAlreadyClosed         = "PERIOD_ALREADY_CLOSED"
	CodePeriodAlreadyOpen           = "PERIOD_ALREADY_OPEN"
	CodePeriodCloseValidationFailed = "PERIOD_CLOSE_VALIDATION_FAILED"
	CodeApprovalRequired            = "APPROVAL_REQUIRED"
)
