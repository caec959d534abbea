package domain_test

import (
	"testing"

	"github.com/bizbooks/gl_engine/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestIsAccrual(t *testing.T) {
	assert.True(t, domain.PostedJournal{Reference: "ACCRUAL-2026-08"}.IsAccrual())
	assert.True(t, domain.PostedJournal{Reference: "ACCRUAL"}.IsAccrual())
	assert.False(t, domain.PostedJournal{Reference: "INV-1001"}.IsAccrual())
	assert.False(t, domain.PostedJournal{Reference: ""}.IsAccrual())
	assert.False(t, domain.PostedJournal{Reference: "ACC"}.IsAccrual())
}

func TestTrialBalanceDifference(t *testing.T) {
	tb := domain.TrialBalance{
		TotalDebits:  decimal.RequireFromString("5000.00"),
		TotalCredits: decimal.RequireFromString("4999.00"),
	}
	assert.Equal(t, "1", tb.Difference().String())

	balanced := domain.TrialBalance{
		TotalDebits:  decimal.RequireFromString("100.00"),
		TotalCredits: decimal.RequireFromString("100.00"),
	}
	assert.True(t, balanced.Difference().IsZero())
}

func TestIsDebitNormal(t *testing.T) {
	assert.True(t, domain.Asset.IsDebitNormal())
	assert.True(t, domain.Expense.IsDebitNormal())
	assert.True(t, domain.CostOfGoodsSold.IsDebitNormal())
	assert.False(t, domain.Liability.IsDebitNormal())
	assert.False(t, domain.Equity.IsDebitNormal())
	assert.False(t, domain.Revenue.IsDebitNormal())
}
