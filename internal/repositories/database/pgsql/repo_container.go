package pgsql

import (
	portsrepo "github.com/SscSPs/backoffice/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider binds every repository to the connection pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return newRepositoryProvider(dbPool)
}

func newRepositoryProvider(db DBTX) portsrepo.RepositoryProvider {
	salesRepo := newPgxSalesRepository(db)
	return portsrepo.RepositoryProvider{
		AccountRepo:    newPgxAccountRepository(db),
		JournalRepo:    newPgxJournalRepository(db),
		VoucherRepo:    newPgxVoucherRepository(db),
		SequenceRepo:   newPgxSequenceRepository(db),
		CustomerRepo:   salesRepo,
		DiscountRepo:   salesRepo,
		InvoiceRepo:    salesRepo,
		TaxInvoiceRepo: newPgxTaxInvoiceRepository(db),
	}
}
