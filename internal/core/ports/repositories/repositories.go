package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// A provider is bound either to the connection pool or to one open
// transaction; see TransactionManager.
type RepositoryProvider struct {
	AccountRepo    AccountRepositoryFacade
	JournalRepo    JournalRepositoryFacade
	VoucherRepo    CashVoucherRepository
	SequenceRepo   SequenceRepository
	CustomerRepo   CustomerRepository
	DiscountRepo   DiscountRepository
	InvoiceRepo    InvoiceRepository
	TaxInvoiceRepo TaxInvoiceRepository
}
