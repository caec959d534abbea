package services

import (
	portsrepo "github.com/bizbooks/gl_engine/internal/core/ports/repositories"
	portssvc "github.com/bizbooks/gl_engine/internal/core/ports/services"
	"github.com/bizbooks/gl_engine/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Policy services first since the validator depends on them
	container.Chart = NewCoaRegistryService(repos.AccountRepo)
	container.Fx = NewFxPolicyService()
	container.Tax = NewTaxService()
	container.SoD = NewSoDService(cfg)

	container.JournalValidator = NewJournalValidationService(container.Chart, container.Fx, container.SoD)

	// Sub-ledger adapters delegate tax arithmetic to the tax service and the
	// final journal to the validator
	container.InvoicePosting = NewInvoicePostingService(container.Fx, container.Tax, container.JournalValidator)
	container.BillPosting = NewBillPostingService(container.Fx, container.Tax, container.JournalValidator)

	container.Period = NewPeriodService(repos.PeriodRepo, repos.LedgerRepo, container.SoD)

	return container
}
