package services

import (
	"github.com/bizbooks/gl_engine/internal/dto"
	"github.com/shopspring/decimal"
)

// TaxSvcFacade computes and validates per-line and per-document tax amounts.
type TaxSvcFacade interface {
	// ComputeLineTax returns lineAmount*taxRate rounded to two decimals.
	ComputeLineTax(lineAmount, taxRate decimal.Decimal) decimal.Decimal

	// ValidateLineTax checks a supplied tax amount against the computed one
	// within the balancing tolerance; returns services.ErrTaxMismatch on
	// disagreement.
	ValidateLineTax(lineAmount, taxRate, suppliedTaxAmount decimal.Decimal) error

	// Totals reduces document lines into subtotal, tax and total, rounding
	// the final sums only.
	Totals(lines []dto.LineAmounts) dto.DocumentTotals
}
