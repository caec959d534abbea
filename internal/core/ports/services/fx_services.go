package services

import "github.com/shopspring/decimal"

// FxPolicySvcFacade decides when a currency conversion rate is mandatory and
// validates supplied rates. All GL posting happens in base currency;
// transaction-currency amounts are informational only.
type FxPolicySvcFacade interface {
	// RequiresFxRate reports whether posting in txCurrency against
	// baseCurrency requires a conversion rate (true iff the codes differ).
	RequiresFxRate(baseCurrency, txCurrency string) bool

	// ValidateRate checks a supplied rate against the policy. It returns
	// services.ErrFxRateRequired when conversion is required but the rate is
	// absent, and services.ErrInvalidFxRate when the rate is non-positive.
	ValidateRate(baseCurrency, txCurrency string, rate decimal.Decimal) error

	// ResolveRate validates and returns the effective conversion rate,
	// defaulting to 1 when the currencies match.
	ResolveRate(baseCurrency, txCurrency string, rate decimal.Decimal) (decimal.Decimal, error)
}
