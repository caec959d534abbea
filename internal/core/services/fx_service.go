package services

import (
	"errors"
	"fmt"
	"strings"

	portssvc "github.com/bizbooks/gl_engine/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

var (
	ErrFxRateRequired = errors.New("exchange rate is required for foreign currency transactions")
	ErrInvalidFxRate  = errors.New("exchange rate must be positive")
)

// fxPolicyService decides whether a conversion rate is mandatory for a
// currency pair and validates supplied rates.
type fxPolicyService struct{}

// NewFxPolicyService creates a new FX policy resolver.
func NewFxPolicyService() portssvc.FxPolicySvcFacade {
	return &fxPolicyService{}
}

var _ portssvc.FxPolicySvcFacade = (*fxPolicyService)(nil)

// RequiresFxRate reports whether posting in txCurrency against baseCurrency
// requires a conversion rate.
func (s *fxPolicyService) RequiresFxRate(baseCurrency, txCurrency string) bool {
	return !strings.EqualFold(baseCurrency, txCurrency)
}

// ValidateRate checks a supplied rate against the FX policy.
func (s *fxPolicyService) ValidateRate(baseCurrency, txCurrency string, rate decimal.Decimal) error {
	if !s.RequiresFxRate(baseCurrency, txCurrency) {
		return nil
	}
	if rate.IsZero() {
		return fmt.Errorf("%w: posting %s against base %s", ErrFxRateRequired, txCurrency, baseCurrency)
	}
	if rate.IsNegative() {
		return fmt.Errorf("%w: got %s", ErrInvalidFxRate, rate.String())
	}
	return nil
}

// ResolveRate validates and returns the effective conversion rate. Same
// currency resolves to 1 regardless of any supplied rate.
func (s *fxPolicyService) ResolveRate(baseCurrency, txCurrency string, rate decimal.Decimal) (decimal.Decimal, error) {
	if !s.RequiresFxRate(baseCurrency, txCurrency) {
		return decimal.NewFromInt(1), nil
	}
	if err := s.ValidateRate(baseCurrency, txCurrency, rate); err != nil {
		return decimal.Zero, err
	}
	return rate, nil
}
