package dto

import (
	"time"

	"github.com/bizbooks/gl_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BillLine is one expense line of an AP bill.
type BillLine struct {
	Description      string          `json:"description,omitempty"`
	Quantity         decimal.Decimal `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unitPrice"`
	LineAmount       decimal.Decimal `json:"lineAmount"`
	TaxRate          decimal.Decimal `json:"taxRate"`
	TaxAmount        decimal.Decimal `json:"taxAmount"`
	ExpenseAccountID string          `json:"expenseAccountID" validate:"required"`
}

// BillTaxLine is one declared input-tax total on an AP bill.
type BillTaxLine struct {
	TaxName      string          `json:"taxName,omitempty"`
	TaxAccountID string          `json:"taxAccountID" validate:"required"`
	TaxAmount    decimal.Decimal `json:"taxAmount"`
}

// BillPostingInput is the source document for AP posting. Like the invoice
// input it is transformed into a JournalPostingInput and then discarded.
type BillPostingInput struct {
	TenantID         string                `json:"tenantID" validate:"required"`
	CompanyID        string                `json:"companyID" validate:"required"`
	BillID           string                `json:"billID" validate:"required"`
	BillNumber       string                `json:"billNumber" validate:"required"`
	SupplierID       string                `json:"supplierID"`
	BillDate         time.Time             `json:"billDate" validate:"required"`
	DueDate          *time.Time            `json:"dueDate,omitempty"`
	CurrencyCode     string                `json:"currencyCode" validate:"required,len=3"`
	BaseCurrencyCode string                `json:"baseCurrencyCode" validate:"required,len=3"`
	ExchangeRate     decimal.Decimal       `json:"exchangeRate"`
	APAccountID      string                `json:"apAccountID" validate:"required"`
	Lines            []BillLine            `json:"lines" validate:"min=1"`
	TaxLines         []BillTaxLine         `json:"taxLines,omitempty"`
	Context          domain.PostingContext `json:"context"`
}
