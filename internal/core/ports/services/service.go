package services

// ServiceContainer holds instances of all the application services.
// Handlers and the operator CLI reach functionality only through it.
type ServiceContainer struct {
	Account       AccountSvcFacade
	Journal       JournalSvcFacade
	VoucherNumber VoucherNumberSvc
	CashBank      CashBankSvc
	Sales         SalesSvc
	TaxInvoice    TaxInvoiceSvc
	Reporting     ReportingService
}
