package services

import (
	"context"

	"github.com/SscSPs/backoffice/internal/core/domain"
	"github.com/SscSPs/backoffice/internal/dto"
)

// AccountReaderSvc defines read operations on the chart of accounts.
type AccountReaderSvc interface {
	GetAccount(ctx context.Context, code string) (*domain.Account, error)
	ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error)
	// GetAccountType resolves the normal-balance class of an account.
	GetAccountType(ctx context.Context, code string) (domain.AccountType, error)
}

// AccountWriterSvc defines chart-of-accounts maintenance. No method here
// writes a balance.
type AccountWriterSvc interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error)
	UpdateAccount(ctx context.Context, code string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)
	// DeactivateAccount soft-deletes a childless, non-system account.
	DeactivateAccount(ctx context.Context, code string, userID string) error
}

// AccountSvcFacade combines all account-related service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
