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

// billJournalPrefix disambiguates bill journal numbers from invoice ones,
// which carry the bare document number.
const billJournalPrefix = "BILL-"

// billPostingService maps AP bills into journal posting intents: one debit
// per bill line on its expense account, one debit per declared input-tax
// line, one aggregate credit on the payables account for the grand total.
type billPostingService struct {
	fxSvc      portssvc.FxPolicySvcFacade
	taxSvc     portssvc.TaxSvcFacade
	journalSvc portssvc.JournalValidationSvcFacade
}

// NewBillPostingService creates a new AP bill posting adapter.
func NewBillPostingService(fxSvc portssvc.FxPolicySvcFacade, taxSvc portssvc.TaxSvcFacade, journalSvc portssvc.JournalValidationSvcFacade) portssvc.BillPostingSvcFacade {
	return &billPostingService{
		fxSvc:      fxSvc,
		taxSvc:     taxSvc,
		journalSvc: journalSvc,
	}
}

var _ portssvc.BillPostingSvcFacade = (*billPostingService)(nil)

// PostBill builds the journal for an AP bill and runs it through the journal
// validator. The returned intent is not persisted.
func (s *billPostingService) PostBill(ctx context.Context, input dto.BillPostingInput) (*dto.PostingIntent, error) {
	logger := logging.GetLoggerFromCtx(ctx)

	if err := validate.Struct(input); err != nil {
		return failedIntent(dto.CodeBusinessRuleViolation,
			fmt.Sprintf("bill input is incomplete: %s", err.Error())), nil
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

	totalExpense := decimal.Zero
	for _, line := range input.Lines {
		totalExpense = totalExpense.Add(line.LineAmount)
	}
	totalTax := decimal.Zero
	for _, tl := range input.TaxLines {
		totalTax = totalTax.Add(tl.TaxAmount)
	}
	totalExpense = accounting.Round2(totalExpense)
	totalTax = accounting.Round2(totalTax)
	totalAmount := totalExpense.Add(totalTax)

	if !totalExpense.IsPositive() || !totalAmount.IsPositive() {
		return failedIntent(dto.CodeInvalidAmounts,
			fmt.Sprintf("bill %s has non-positive totals: expense %s, total %s",
				input.BillNumber, totalExpense.String(), totalAmount.String())), nil
	}

	rate, err := s.fxSvc.ResolveRate(input.BaseCurrencyCode, input.CurrencyCode, input.ExchangeRate)
	if err != nil {
		return failedIntent(dto.CodeInvalidCurrency, err.Error()), nil
	}

	lines := make([]dto.JournalLine, 0, 1+len(input.Lines)+len(input.TaxLines))
	for _, line := range input.Lines {
		lines = append(lines, dto.JournalLine{
			AccountID:   line.ExpenseAccountID,
			Debit:       accounting.ConvertToBase(line.LineAmount, rate),
			Description: line.Description,
			Reference:   input.BillID,
		})
	}
	for _, tl := range input.TaxLines {
		lines = append(lines, dto.JournalLine{
			AccountID:   tl.TaxAccountID,
			Debit:       accounting.ConvertToBase(tl.TaxAmount, rate),
			Description: tl.TaxName,
			Reference:   input.BillID,
		})
	}
	lines = append(lines, dto.JournalLine{
		AccountID:   input.APAccountID,
		Credit:      accounting.ConvertToBase(totalAmount, rate),
		Description: fmt.Sprintf("Bill %s", input.BillNumber),
		Reference:   input.BillID,
	})

	journal := dto.JournalPostingInput{
		JournalNumber:    billJournalPrefix + input.BillNumber,
		Description:      fmt.Sprintf("Bill %s", input.BillNumber),
		JournalDate:      input.BillDate,
		CurrencyCode:     input.BaseCurrencyCode,
		BaseCurrencyCode: input.BaseCurrencyCode,
		ExchangeRate:     decimal.NewFromInt(1),
		Lines:            lines,
		Context:          input.Context,
	}

	result, err := s.journalSvc.ValidateJournal(ctx, journal)
	if err != nil {
		logger.Error("Bill journal validation failed",
			slog.String("error", err.Error()), slog.String("bill_number", input.BillNumber))
		return nil, fmt.Errorf("failed to validate bill journal: %w", err)
	}

	logger.Info("Bill posting intent built",
		slog.String("bill_number", input.BillNumber),
		slog.Bool("validated", result.Validated),
		slog.String("total_amount", totalAmount.String()))
	return &dto.PostingIntent{Journal: journal, Result: *result}, nil
}

// CalculateBillTotals reduces bill lines into document totals. Pure; declared
// tax lines are not part of per-line totals.
func CalculateBillTotals(lines []dto.BillLine) dto.DocumentTotals {
	amounts := make([]dto.LineAmounts, len(lines))
	for i, line := range lines {
		amounts[i] = dto.LineAmounts{LineAmount: line.LineAmount, TaxAmount: line.TaxAmount}
	}
	return reduceTotals(amounts)
}

// ValidateBillLines applies the shared per-line arithmetic rules to bill lines.
func ValidateBillLines(taxSvc portssvc.TaxSvcFacade, lines []dto.BillLine) dto.LineValidationResult {
	var errs []string
	for i, line := range lines {
		errs = append(errs, validateLineArithmetic(taxSvc, i, line.Quantity, line.UnitPrice, line.LineAmount, line.TaxRate, line.TaxAmount)...)
	}
	return dto.LineValidationResult{Valid: len(errs) == 0, Errors: errs}
}
