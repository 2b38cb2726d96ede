package services

import (
	"context"

	"github.com/SscSPs/backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/backoffice/internal/core/ports/repositories"
)

// JournalReaderSvc defines read operations for journal entries.
type JournalReaderSvc interface {
	GetEntry(ctx context.Context, id string) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context, params domain.ListEntriesParams) ([]domain.JournalEntry, *string, error)
}

// JournalWriterSvc is the posting engine: every write that can move an
// account balance goes through it.
type JournalWriterSvc interface {
	CreateEntry(ctx context.Context, input domain.CreateEntryInput) (*domain.JournalEntry, error)
	UpdateEntry(ctx context.Context, id string, patch domain.EntryPatch) error
	// ReverseEntry marks a posted entry Reversed, undoes its balance impact
	// and returns the id of a new draft entry with debit and credit swapped.
	ReverseEntry(ctx context.Context, id string, cancelReason string, userID string) (string, error)
}

// JournalPosterSvc lets voucher writers create entries inside their own transaction.
type JournalPosterSvc interface {
	CreateEntryInTx(ctx context.Context, repos portsrepo.RepositoryProvider, input domain.CreateEntryInput) (*domain.JournalEntry, error)
}

// BalanceVerifierSvc recomputes balances from line history.
type BalanceVerifierSvc interface {
	VerifyBalances(ctx context.Context) ([]domain.BalanceDrift, error)
}

// JournalSvcFacade combines all journal-related service interfaces.
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
	JournalPosterSvc
	BalanceVerifierSvc
}
