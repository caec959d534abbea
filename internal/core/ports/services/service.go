package services

// ServiceContainer holds all service facades, wired once at startup and
// passed to callers of the engine.
type ServiceContainer struct {
	Chart            CoaRegistrySvcFacade
	Fx               FxPolicySvcFacade
	Tax              TaxSvcFacade
	SoD              SoDSvcFacade
	JournalValidator JournalValidationSvcFacade
	InvoicePosting   InvoicePostingSvcFacade
	BillPosting      BillPostingSvcFacade
	Period           PeriodSvcFacade
}
