package services

import (
	"context"
	"time"

	"github.com/SscSPs/backoffice/internal/core/domain"
)

// ReportingService defines the interface for financial reporting operations
type ReportingService interface {
	// TrialBalance lists current balances on their debit or credit side.
	TrialBalance(ctx context.Context) (*domain.TrialBalance, error)

	// ProfitAndLoss totals posted revenue and expense lines dated within [from, to].
	ProfitAndLoss(ctx context.Context, from, to time.Time) (*domain.PAndLReport, error)

	// BalanceSheet groups current balances of assets, liabilities and equity.
	BalanceSheet(ctx context.Context) (*domain.BalanceSheetReport, error)

	// VerifyBalances reports accounts whose stored balance drifted from line history.
	VerifyBalances(ctx context.Context) ([]domain.BalanceDrift, error)
}
