package services

import (
	"context"

	"github.com/bizbooks/gl_engine/internal/dto"
)

// JournalValidationSvcFacade validates proposed journal entries against the
// chart of accounts, FX policy and SoD rules. Pure with respect to persisted
// state: it never writes anything.
type JournalValidationSvcFacade interface {
	// ValidateJournal runs the ordered validation pipeline over a proposed
	// journal. Business-rule failures come back on the result; only
	// infrastructure failures (data store unreachable) return an error.
	ValidateJournal(ctx context.Context, input dto.JournalPostingInput) (*dto.JournalValidationResult, error)
}

// InvoicePostingSvcFacade transforms AR invoices into posting intents.
type InvoicePostingSvcFacade interface {
	// PostInvoice maps an invoice into journal lines, delegates to the
	// journal validator and returns the validated-but-not-persisted intent.
	PostInvoice(ctx context.Context, input dto.InvoicePostingInput) (*dto.PostingIntent, error)
}

// BillPostingSvcFacade transforms AP bills into posting intents.
type BillPostingSvcFacade interface {
	// PostBill maps a bill into journal lines, delegates to the journal
	// validator and returns the validated-but-not-persisted intent.
	PostBill(ctx context.Context, input dto.BillPostingInput) (*dto.PostingIntent, error)
}
