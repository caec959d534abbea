package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bizbooks/gl_engine/internal/core/domain"
	portssvc "github.com/bizbooks/gl_engine/internal/core/ports/services"
	"github.com/bizbooks/gl_engine/internal/dto"
	"github.com/bizbooks/gl_engine/internal/platform/logging"
	"github.com/bizbooks/gl_engine/internal/utils/accounting"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// validate checks request struct tags. The services invoke it directly since
// there is no transport-layer binding in front of this engine.
var validate = validator.New()

// journalValidationService runs the ordered validation pipeline over proposed
// journal entries. It has no side effects; persistence is the caller's
// responsibility once a validated result is returned.
type journalValidationService struct {
	chartSvc portssvc.CoaRegistrySvcFacade
	fxSvc    portssvc.FxPolicySvcFacade
	sodSvc   portssvc.SoDSvcFacade
}

// NewJournalValidationService creates a new journal validator.
func NewJournalValidationService(chartSvc portssvc.CoaRegistrySvcFacade, fxSvc portssvc.FxPolicySvcFacade, sodSvc portssvc.SoDSvcFacade) portssvc.JournalValidationSvcFacade {
	return &journalValidationService{
		chartSvc: chartSvc,
		fxSvc:    fxSvc,
		sodSvc:   sodSvc,
	}
}

var _ portssvc.JournalValidationSvcFacade = (*journalValidationService)(nil)

// ValidateJournal validates a proposed journal. Checks run in order and
// short-circuit on the first fatal error: input shape, account resolution,
// currency policy, balance, amount sanity, SoD. Chart-of-accounts warnings
// are advisory and never block.
func (s *journalValidationService) ValidateJournal(ctx context.Context, input dto.JournalPostingInput) (*dto.JournalValidationResult, error) {
	logger := logging.GetLoggerFromCtx(ctx)

	if err := validate.Struct(input); err != nil {
		return dto.ValidationFailure(dto.CodeBusinessRuleViolation,
			fmt.Sprintf("journal input is incomplete: %s", err.Error())), nil
	}

	if len(input.Lines) == 0 {
		return dto.ValidationFailure(dto.CodeInvalidAccounts, "journal has no lines"), nil
	}

	chart, err := s.chartSvc.LoadChart(ctx, input.Context.TenantID, input.Context.CompanyID)
	if err != nil {
		logger.Error("Failed to load chart of accounts for validation", slog.String("error", err.Error()), slog.String("journal_number", input.JournalNumber))
		return nil, fmt.Errorf("failed to load chart of accounts: %w", err)
	}

	accountsByLine := make([]domain.Account, len(input.Lines))
	for i, line := range input.Lines {
		acc, ok := chart.Resolve(line.AccountID)
		if !ok {
			return dto.ValidationFailure(dto.CodeInvalidAccounts,
				fmt.Sprintf("account %s does not exist", line.AccountID)), nil
		}
		if !acc.IsActive {
			return dto.ValidationFailure(dto.CodeInvalidAccounts,
				fmt.Sprintf("account %s (%s) is inactive", acc.Code, line.AccountID)), nil
		}
		accountsByLine[i] = acc
	}

	rate, err := s.fxSvc.ResolveRate(input.BaseCurrencyCode, input.CurrencyCode, input.ExchangeRate)
	if err != nil {
		return dto.ValidationFailure(dto.CodeInvalidCurrency, err.Error()), nil
	}

	// Balance is checked in base currency; every line converts at the
	// resolved rate before summation.
	totalDebits := decimal.Zero
	totalCredits := decimal.Zero
	for _, line := range input.Lines {
		totalDebits = totalDebits.Add(accounting.ConvertToBase(line.Debit, rate))
		totalCredits = totalCredits.Add(accounting.ConvertToBase(line.Credit, rate))
	}
	difference := totalDebits.Sub(totalCredits)
	if !accounting.IsZeroWithinTolerance(difference) {
		return dto.ValidationFailure(dto.CodeJournalUnbalanced,
			fmt.Sprintf("journal is unbalanced: debits %s, credits %s, difference %s",
				totalDebits.String(), totalCredits.String(), difference.String())), nil
	}

	for _, line := range input.Lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return dto.ValidationFailure(dto.CodeInvalidAmount,
				fmt.Sprintf("account %s: debit and credit values must not be negative", line.AccountID)), nil
		}
		if !line.Debit.IsZero() && !accounting.InPostingRange(line.Debit) {
			return dto.ValidationFailure(dto.CodeInvalidAmount,
				fmt.Sprintf("account %s: debit %s is outside the accepted posting range", line.AccountID, line.Debit.String())), nil
		}
		if !line.Credit.IsZero() && !accounting.InPostingRange(line.Credit) {
			return dto.ValidationFailure(dto.CodeInvalidAmount,
				fmt.Sprintf("account %s: credit %s is outside the accepted posting range", line.AccountID, line.Credit.String())), nil
		}
	}

	decision := s.sodSvc.Check(ctx, domain.SoDActionPostJournal, totalDebits, input.Context)
	if !decision.Allowed {
		return dto.ValidationFailure(dto.CodeSoDViolation, decision.Reason), nil
	}

	result := &dto.JournalValidationResult{
		Validated:   true,
		COAWarnings: coaWarnings(input.Lines, accountsByLine),
	}
	if decision.RequiresApproval {
		result.RequiresApproval = true
		result.ApproverRoles = s.sodSvc.ApproverRoles()
	}

	logger.Debug("Journal validated",
		slog.String("journal_number", input.JournalNumber),
		slog.Bool("requires_approval", result.RequiresApproval),
		slog.Int("coa_warnings", len(result.COAWarnings)))
	return result, nil
}

// coaWarnings flags postings against an account's normal balance side:
// credits to debit-normal accounts and debits to credit-normal ones.
func coaWarnings(lines []dto.JournalLine, accounts []domain.Account) []dto.COAWarning {
	var warnings []dto.COAWarning
	for i, line := range lines {
		acc := accounts[i]
		if acc.AccountType.IsDebitNormal() && line.Credit.IsPositive() {
			warnings = append(warnings, dto.COAWarning{
				AccountID:   acc.AccountID,
				Warning:     fmt.Sprintf("crediting %s account %s is unusual", acc.AccountType, acc.Code),
				AccountType: acc.AccountType,
				Amount:      line.Credit,
				Side:        "CREDIT",
			})
		}
		if !acc.AccountType.IsDebitNormal() && line.Debit.IsPositive() {
			warnings = append(warnings, dto.COAWarning{
				AccountID:   acc.AccountID,
				Warning:     fmt.Sprintf("debiting %s account %s is unusual", acc.AccountType, acc.Code),
				AccountType: acc.AccountType,
				Amount:      line.Debit,
				Side:        "DEBIT",
			})
		}
	}
	return warnings
}
