package dto

import (
	"time"

	"github.com/bizbooks/gl_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InvoiceLine is one revenue line of an AR invoice.
type InvoiceLine struct {
	Description      string          `json:"description,omitempty"`
	Quantity         decimal.Decimal `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unitPrice"`
	LineAmount       decimal.Decimal `json:"lineAmount"`
	TaxRate          decimal.Decimal `json:"taxRate"`
	TaxAmount        decimal.Decimal `json:"taxAmount"`
	RevenueAccountID string          `json:"revenueAccountID" validate:"required"`
}

// InvoiceTaxLine is one declared output-tax total on an AR invoice.
type InvoiceTaxLine struct {
	TaxName      string          `json:"taxName,omitempty"`
	TaxAccountID string          `json:"taxAccountID" validate:"required"`
	TaxAmount    decimal.Decimal `json:"taxAmount"`
}

// InvoicePostingInput is the source document for AR posting. It is
// transformed into a JournalPostingInput and discarded; it never persists
// independently of the resulting journal.
type InvoicePostingInput struct {
	TenantID         string                `json:"tenantID" validate:"required"`
	CompanyID        string                `json:"companyID" validate:"required"`
	InvoiceID        string                `json:"invoiceID" validate:"required"`
	InvoiceNumber    string                `json:"invoiceNumber" validate:"required"`
	CustomerID       string                `json:"customerID"`
	InvoiceDate      time.Time             `json:"invoiceDate" validate:"required"`
	DueDate          *time.Time            `json:"dueDate,omitempty"`
	CurrencyCode     string                `json:"currencyCode" validate:"required,len=3"`
	BaseCurrencyCode string                `json:"baseCurrencyCode" validate:"required,len=3"`
	ExchangeRate     decimal.Decimal       `json:"exchangeRate"`
	ARAccountID      string                `json:"arAccountID" validate:"required"`
	Lines            []InvoiceLine         `json:"lines" validate:"min=1"`
	TaxLines         []InvoiceTaxLine      `json:"taxLines,omitempty"`
	Context          domain.PostingContext `json:"context"`
}
