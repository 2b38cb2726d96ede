package services

import (
	"time"

	portsrepo "github.com/SscSPs/backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/backoffice/internal/core/ports/services"
	"github.com/SscSPs/backoffice/internal/platform/config"
)

type containerOptions struct {
	now func() time.Time
}

// ContainerOption is a functional option for NewServiceContainer.
type ContainerOption func(*containerOptions)

// WithClock makes every service read the current time from now.
func WithClock(now func() time.Time) ContainerOption {
	return func(o *containerOptions) {
		o.now = now
	}
}

// NewServiceContainer creates a new service container with properly initialized dependencies.
// repos is bound to the connection pool; transactional work gets its own
// provider from txManager.
func NewServiceContainer(cfg *config.Config, txManager portsrepo.TransactionManager, repos portsrepo.RepositoryProvider, options ...ContainerOption) *portssvc.ServiceContainer {
	opts := &containerOptions{}
	for _, option := range options {
		option(opts)
	}

	// Ledger and numbering first since the posting engine depends on them
	ledger := NewLedgerService(WithSkipUnknownAccounts(cfg.SkipUnknownAccounts))
	numbers := NewVoucherNumberService(repos)
	journal := NewJournalService(txManager, repos, ledger, numbers)

	account := NewAccountService(repos.AccountRepo)
	cashBank := NewCashBankService(txManager, repos, journal, numbers)
	sales := NewSalesService(txManager, repos, journal, cfg.Accounts)
	taxInvoice := NewTaxInvoiceService(txManager, repos, journal, cfg.Accounts)
	reporting := NewReportingService(repos, journal)

	if opts.now != nil {
		for _, b := range []*BaseService{
			&ledger.BaseService,
			&numbers.BaseService,
			&journal.BaseService,
			&account.BaseService,
			&cashBank.BaseService,
			&sales.BaseService,
			&taxInvoice.BaseService,
			&reporting.(*reportingService).BaseService,
		} {
			b.SetClock(opts.now)
		}
	}

	return &portssvc.ServiceContainer{
		Account:       account,
		Journal:       journal,
		VoucherNumber: numbers,
		CashBank:      cashBank,
		Sales:         sales,
		TaxInvoice:    taxInvoice,
		Reporting:     reporting,
	}
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade = (*AccountService)(nil)
	_ portssvc.JournalSvcFacade = (*JournalService)(nil)
	_ portssvc.ReportingService = (*reportingService)(nil)
)
