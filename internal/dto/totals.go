package dto

import "github.com/shopspring/decimal"

// LineAmounts is the currency-agnostic shape the tax module reduces over:
// one net amount plus its tax, regardless of which document the line came from.
type LineAmounts struct {
	LineAmount decimal.Decimal `json:"lineAmount"`
	TaxAmount  decimal.Decimal `json:"taxAmount"`
}

// DocumentTotals is the reduced total of a document's lines. Rounding to two
// decimals is applied to the final sums only, not to intermediate terms, so
// TotalAmount always equals Subtotal plus TaxAmount exactly.
type DocumentTotals struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	TaxAmount   decimal.Decimal `json:"taxAmount"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// LineValidationResult reports per-line arithmetic findings from the pure
// document-line validators exposed by the sub-ledger adapters.
type LineValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}
