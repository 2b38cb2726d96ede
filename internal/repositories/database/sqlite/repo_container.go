package sqlite

import (
	"database/sql"

	portsrepo "github.com/SscSPs/backoffice/internal/core/ports/repositories"
)

// NewRepositoryProvider binds every repository to the database handle.
func NewRepositoryProvider(db *sql.DB) portsrepo.RepositoryProvider {
	return newRepositoryProvider(db)
}

func newRepositoryProvider(q querier) portsrepo.RepositoryProvider {
	salesRepo := newSQLiteSalesRepository(q)
	return portsrepo.RepositoryProvider{
		AccountRepo:    newSQLiteAccountRepository(q),
		JournalRepo:    newSQLiteJournalRepository(q),
		VoucherRepo:    newSQLiteVoucherRepository(q),
		SequenceRepo:   newSQLiteSequenceRepository(q),
		CustomerRepo:   salesRepo,
		DiscountRepo:   salesRepo,
		InvoiceRepo:    salesRepo,
		TaxInvoiceRepo: newSQLiteTaxInvoiceRepository(q),
	}
}
