package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for the chart of accounts.
type AccountReader interface {
	// FindAccountByCode returns apperrors.ErrNotFound when the code is unknown.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)
	// FindAccountsByCodes returns the accounts that exist, keyed by code. Missing codes are simply absent.
	FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error)
	// ListAccounts orders by code and fills HasChildren.
	ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error)
	HasActiveChildren(ctx context.Context, code string) (bool, error)
}

// AccountWriter defines the chart-of-accounts writes. None of them touch the balance.
type AccountWriter interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	UpdateAccount(ctx context.Context, account domain.Account) error
	DeactivateAccount(ctx context.Context, code string, userID string, now time.Time) error
}

// AccountBalanceWriter is the storage side of the account ledger.
type AccountBalanceWriter interface {
	// FindAccountsByCodesForUpdate reads and row-locks the given accounts until the transaction ends.
	FindAccountsByCodesForUpdate(ctx context.Context, codes []string) (map[string]domain.Account, error)
	// AddToBalance adds delta to the stored balance of one account.
	AddToBalance(ctx context.Context, code string, delta decimal.Decimal, now time.Time) error
}

// AccountRepositoryFacade combines all account repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountBalanceWriter
}
