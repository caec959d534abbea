package services

import (
	"errors"
	"fmt"

	portssvc "github.com/bizbooks/gl_engine/internal/core/ports/services"
	"github.com/bizbooks/gl_engine/internal/dto"
	"github.com/bizbooks/gl_engine/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

var ErrTaxMismatch = errors.New("supplied tax amount does not match computed tax")

// taxService computes and validates tax arithmetic for document lines.
type taxService struct{}

// NewTaxService creates a new tax calculation service.
func NewTaxService() portssvc.TaxSvcFacade {
	return &taxService{}
}

var _ portssvc.TaxSvcFacade = (*taxService)(nil)

// ComputeLineTax returns lineAmount*taxRate rounded to two decimals, half up.
func (s *taxService) ComputeLineTax(lineAmount, taxRate decimal.Decimal) decimal.Decimal {
	return accounting.Round2(lineAmount.Mul(taxRate))
}

// ValidateLineTax checks a supplied tax amount against the computed one.
func (s *taxService) ValidateLineTax(lineAmount, taxRate, suppliedTaxAmount decimal.Decimal) error {
	expected := lineAmount.Mul(taxRate)
	if !accounting.WithinTolerance(expected, suppliedTaxAmount) {
		return fmt.Errorf("%w: expected %s, got %s", ErrTaxMismatch,
			accounting.Round2(expected).String(), suppliedTaxAmount.String())
	}
	return nil
}

// Totals reduces document lines into subtotal, tax and total. Rounding is
// applied to the final sums only, never to intermediate terms, so the total
// always equals subtotal plus tax exactly.
func (s *taxService) Totals(lines []dto.LineAmounts) dto.DocumentTotals {
	return reduceTotals(lines)
}
