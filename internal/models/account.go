package models

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

// Account represents a ledger account row.
// Note: ParentAccountID uses string for nullable foreign key; DB handling may vary.
type Account struct {
	AccountID       string      `db:"account_id"`
	TenantID        string      `db:"tenant_id"`
	CompanyID       string      `db:"company_id"`
	Code            string      `db:"code"`
	Name            string      `db:"name"`
	AccountType     AccountType `db:"account_type"`
	CurrencyCode    string      `db:"currency_code"`
	ParentAccountID string      `db:"parent_account_id"` // Nullable
	IsActive        bool        `db:"is_active"`
	AuditFields
}
