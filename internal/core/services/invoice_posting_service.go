package services

import (
	"context"
	"fmt"
	"log/slog"

	portssvc "github.com/bizbooks/gl_engine/internal/core/ports/services"
	"github.com/bizbooks/gl_engine/internal/dto"
	"github.com/bizbooks/gl_engine/internal/platform/logging"
	"github.com/bizbooks/gl_engine/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// invoicePostingService maps AR invoices into journal posting intents:
// one debit on the receivables account for the grand total, one credit per
// invoice line on its revenue account, one credit per declared tax line.
type invoicePostingService struct {
	fxSvc      portssvc.FxPolicySvcFacade
	taxSvc     portssvc.TaxSvcFacade
	journalSvc portssvc.JournalValidationSvcFacade
}

// NewInvoicePostingService creates a new AR invoice posting adapter.
func NewInvoicePostingService(fxSvc portssvc.FxPolicySvcFacade, taxSvc portssvc.TaxSvcFacade, journalSvc portssvc.JournalValidationSvcFacade) portssvc.InvoicePostingSvcFacade {
	return &invoicePostingService{
		fxSvc:      fxSvc,
		taxSvc:     taxSvc,
		journalSvc: journalSvc,
	}
}

var _ portssvc.InvoicePostingSvcFacade = (*invoicePostingService)(nil)

// PostInvoice builds the journal for an AR invoice and runs it through the
// journal validator. The returned intent is not persisted; the caller posts
// the journal once Result.Validated is true.
func (s *invoicePostingService) PostInvoice(ctx context.Context, input dto.InvoicePostingInput) (*dto.PostingIntent, error) {
	logger := logging.GetLoggerFromCtx(ctx)

	if err := validate.Struct(input); err != nil {
		return failedIntent(dto.CodeBusinessRuleViolation,
			fmt.Sprintf("invoice input is incomplete: %s", err.Error())), nil
	}

	for i, line := range input.Lines {
		if line.TaxRate.IsZero() {
			continue
		}
		if err := s.taxSvc.ValidateLineTax(line.LineAmount, line.TaxRate, line.TaxAmount); err != nil {
			return failedIntent(dto.CodeInvalidAmounts,
				fmt.Sprintf("line %d: %s", i+1, err.Error())), nil
		}
	}

	totalRevenue := decimal.Zero
	for _, line := range input.Lines {
		totalRevenue = totalRevenue.Add(line.LineAmount)
	}
	totalTax := decimal.Zero
	for _, tl := range input.TaxLines {
		totalTax = totalTax.Add(tl.TaxAmount)
	}
	totalRevenue = accounting.Round2(totalRevenue)
	totalTax = accounting.Round2(totalTax)
	totalAmount := totalRevenue.Add(totalTax)

	if !totalRevenue.IsPositive() || !totalAmount.IsPositive() {
		return failedIntent(dto.CodeInvalidAmounts,
			fmt.Sprintf("invoice %s has non-positive totals: revenue %s, total %s",
				input.InvoiceNumber, totalRevenue.String(), totalAmount.String())), nil
	}

	rate, err := s.fxSvc.ResolveRate(input.BaseCurrencyCode, input.CurrencyCode, input.ExchangeRate)
	if err != nil {
		return failedIntent(dto.CodeInvalidCurrency, err.Error()), nil
	}

	lines := make([]dto.JournalLine, 0, 1+len(input.Lines)+len(input.TaxLines))
	lines = append(lines, dto.JournalLine{
		AccountID:   input.ARAccountID,
		Debit:       accounting.ConvertToBase(totalAmount, rate),
		Description: fmt.Sprintf("Invoice %s", input.InvoiceNumber),
		Reference:   input.InvoiceID,
	})
	for _, line := range input.Lines {
		lines = append(lines, dto.JournalLine{
			AccountID:   line.RevenueAccountID,
			Credit:      accounting.ConvertToBase(line.LineAmount, rate),
			Description: line.Description,
			Reference:   input.InvoiceID,
		})
	}
	for _, tl := range input.TaxLines {
		lines = append(lines, dto.JournalLine{
			AccountID:   tl.TaxAccountID,
			Credit:      accounting.ConvertToBase(tl.TaxAmount, rate),
			Description: tl.TaxName,
			Reference:   input.InvoiceID,
		})
	}

	// Lines are already converted, so the journal carries the base currency
	// with a unit rate.
	journal := dto.JournalPostingInput{
		JournalNumber:    input.InvoiceNumber,
		Description:      fmt.Sprintf("Invoice %s", input.InvoiceNumber),
		JournalDate:      input.InvoiceDate,
		CurrencyCode:     input.BaseCurrencyCode,
		BaseCurrencyCode: input.BaseCurrencyCode,
		ExchangeRate:     decimal.NewFromInt(1),
		Lines:            lines,
		Context:          input.Context,
	}

	result, err := s.journalSvc.ValidateJournal(ctx, journal)
	if err != nil {
		logger.Error("Invoice journal validation failed",
			slog.String("error", err.Error()), slog.String("invoice_number", input.InvoiceNumber))
		return nil, fmt.Errorf("failed to validate invoice journal: %w", err)
	}

	logger.Info("Invoice posting intent built",
		slog.String("invoice_number", input.InvoiceNumber),
		slog.Bool("validated", result.Validated),
		slog.String("total_amount", totalAmount.String()))
	return &dto.PostingIntent{Journal: journal, Result: *result}, nil
}

func failedIntent(code, msg string) *dto.PostingIntent {
	return &dto.PostingIntent{Result: *dto.ValidationFailure(code, msg)}
}

// CalculateInvoiceTotals reduces invoice lines into document totals. Pure;
// declared tax lines are not part of per-line totals.
func CalculateInvoiceTotals(lines []dto.InvoiceLine) dto.DocumentTotals {
	amounts := make([]dto.LineAmounts, len(lines))
	for i, line := range lines {
		amounts[i] = dto.LineAmounts{LineAmount: line.LineAmount, TaxAmount: line.TaxAmount}
	}
	return reduceTotals(amounts)
}

// reduceTotals sums line amounts and taxes, rounding the final sums only so
// the total always equals subtotal plus tax exactly.
func reduceTotals(lines []dto.LineAmounts) dto.DocumentTotals {
	subtotal := decimal.Zero
	tax := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.LineAmount)
		tax = tax.Add(line.TaxAmount)
	}
	subtotal = accounting.Round2(subtotal)
	tax = accounting.Round2(tax)
	return dto.DocumentTotals{
		Subtotal:    subtotal,
		TaxAmount:   tax,
		TotalAmount: subtotal.Add(tax),
	}
}

// ValidateInvoiceLines checks per-line arithmetic: lineAmount equals
// quantity*unitPrice within tolerance, taxAmount agrees with taxRate when one
// is present, quantity is positive and unitPrice/lineAmount are non-negative.
func ValidateInvoiceLines(taxSvc portssvc.TaxSvcFacade, lines []dto.InvoiceLine) dto.LineValidationResult {
	var errs []string
	for i, line := range lines {
		errs = append(errs, validateLineArithmetic(taxSvc, i, line.Quantity, line.UnitPrice, line.LineAmount, line.TaxRate, line.TaxAmount)...)
	}
	return dto.LineValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// validateLineArithmetic holds the per-line rules shared by the invoice and
// bill adapters. Tax agreement is the tax service's call.
func validateLineArithmetic(taxSvc portssvc.TaxSvcFacade, idx int, quantity, unitPrice, lineAmount, taxRate, taxAmount decimal.Decimal) []string {
	var errs []string
	if !quantity.IsPositive() {
		errs = append(errs, fmt.Sprintf("line %d: quantity must be positive", idx+1))
	}
	if unitPrice.IsNegative() {
		errs = append(errs, fmt.Sprintf("line %d: unit price must not be negative", idx+1))
	}
	if lineAmount.IsNegative() {
		errs = append(errs, fmt.Sprintf("line %d: line amount must not be negative", idx+1))
	}
	if !accounting.WithinTolerance(quantity.Mul(unitPrice), lineAmount) {
		errs = append(errs, fmt.Sprintf("line %d: line amount %s does not equal quantity * unit price (%s)",
			idx+1, lineAmount.String(), accounting.Round2(quantity.Mul(unitPrice)).String()))
	}
	if !taxRate.IsZero() {
		if err := taxSvc.ValidateLineTax(lineAmount, taxRate, taxAmount); err != nil {
			errs = append(errs, fmt.Sprintf("line %d: %s", idx+1, err.Error()))
		}
	}
	return errs
}
