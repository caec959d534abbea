package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset           AccountType = "ASSET"
	Liability       AccountType = "LIABILITY"
	Equity          AccountType = "EQUITY"
	Revenue         AccountType = "REVENUE"
	Expense         AccountType = "EXPENSE"
	CostOfGoodsSold AccountType = "COST_OF_GOODS_SOLD"
)

// IsDebitNormal reports whether the account type carries a debit-normal
// balance. Crediting a debit-normal account (or debiting a credit-normal one)
// is unusual and surfaces as a chart-of-accounts warning during validation.
func (t AccountType) IsDebitNormal() bool {
	switch t {
	case Asset, Expense, CostOfGoodsSold:
		return true
	}
	return false
}

// Account represents a ledger account within the chart of accounts.
// This is the primary representation used by services.
type Account struct {
	AccountID       string      `json:"accountID"` // Primary key (e.g. UUID)
	TenantID        string      `json:"tenantID"`
	CompanyID       string      `json:"companyID"`
	Code            string      `json:"code"` // Human-readable ledger code
	Name            string      `json:"name"`
	AccountType     AccountType `json:"accountType"`
	CurrencyCode    string      `json:"currencyCode"`
	ParentAccountID string      `json:"parentAccountID"` // Nullable, self-referencing; forms the COA tree
	IsActive        bool        `json:"isActive"`
	AuditFields
}
