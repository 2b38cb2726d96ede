package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/backoffice/internal/apperrors"
	"github.com/SscSPs/backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/backoffice/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	repos    portsrepo.RepositoryProvider
	verifier portssvc.BalanceVerifierSvc
}

func NewReportingService(repos portsrepo.RepositoryProvider, verifier portssvc.BalanceVerifierSvc) portssvc.ReportingService {
	return &reportingService{
		BaseService: newBaseService(),
		repos:       repos,
		verifier:    verifier,
	}
}

// reportAccounts lists active accounts plus inactive ones that still carry a
// balance, so report totals always reconcile.
func (s *reportingService) reportAccounts(ctx context.Context) ([]domain.Account, error) {
	all, err := s.repos.AccountRepo.ListAccounts(ctx, true)
	if err != nil {
		return nil, err
	}
	accounts := make([]domain.Account, 0, len(all))
	for _, acc := range all {
		if acc.IsActive() || !acc.Balance.IsZero() {
			accounts = append(accounts, acc)
		}
	}
	return accounts, nil
}

// TrialBalance lists every account's balance on its debit or credit side.
func (s *reportingService) TrialBalance(ctx context.Context) (*domain.TrialBalance, error) {
	accounts, err := s.reportAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve trial balance data")
		return nil, fmt.Errorf("failed to retrieve trial balance data: %w", err)
	}

	tb := &domain.TrialBalance{
		Rows:        make([]domain.TrialBalanceRow, 0, len(accounts)),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, acc := range accounts {
		row := domain.NewTrialBalanceRow(acc)
		tb.Rows = append(tb.Rows, row)
		tb.TotalDebit = tb.TotalDebit.Add(row.Debit)
		tb.TotalCredit = tb.TotalCredit.Add(row.Credit)
	}

	s.LogInfo(ctx, "Trial balance report generated successfully",
		slog.Int("row_count", len(tb.Rows)),
		slog.Bool("balanced", tb.TotalDebit.Equal(tb.TotalCredit)))
	return tb, nil
}

// ProfitAndLoss totals the posted revenue and expense lines dated in [from, to].
func (s *reportingService) ProfitAndLoss(ctx context.Context, from, to time.Time) (*domain.PAndLReport, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: report end date is before its start date", apperrors.ErrValidation)
	}

	accounts, err := s.repos.AccountRepo.ListAccounts(ctx, true)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts for profit and loss")
		return nil, fmt.Errorf("failed to retrieve profit and loss data: %w", err)
	}
	totals, err := s.repos.JournalRepo.SumLinesByAccount(ctx, []domain.EntryStatus{domain.Posted}, &from, &to)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve profit and loss data",
			slog.String("from", domain.FormatDate(from)),
			slog.String("to", domain.FormatDate(to)))
		return nil, fmt.Errorf("failed to retrieve profit and loss data: %w", err)
	}

	report := &domain.PAndLReport{
		From:      from,
		To:        to,
		Revenue:   []domain.AccountAmount{},
		Expenses:  []domain.AccountAmount{},
		NetProfit: decimal.Zero,
	}
	for _, acc := range accounts {
		if acc.Type != domain.Revenue && acc.Type != domain.Expenses {
			continue
		}
		t, ok := totals[acc.Code]
		if !ok {
			continue
		}
		amount := domain.AccountAmount{
			AccountCode: acc.Code,
			Name:        acc.Name,
			NetAmount:   acc.Type.SignedDelta(t.Debit, t.Credit),
		}
		if acc.Type == domain.Revenue {
			report.Revenue = append(report.Revenue, amount)
			report.NetProfit = report.NetProfit.Add(amount.NetAmount)
		} else {
			report.Expenses = append(report.Expenses, amount)
			report.NetProfit = report.NetProfit.Sub(amount.NetAmount)
		}
	}

	s.LogInfo(ctx, "Profit and loss report generated successfully",
		slog.String("from", domain.FormatDate(from)),
		slog.String("to", domain.FormatDate(to)),
		slog.Int("revenue_accounts", len(report.Revenue)),
		slog.Int("expense_accounts", len(report.Expenses)))
	return report, nil
}

// BalanceSheet groups current balances. Revenue less expenses not yet closed
// into equity is reported as retained earnings and included in TotalEquity.
func (s *reportingService) BalanceSheet(ctx context.Context) (*domain.BalanceSheetReport, error) {
	accounts, err := s.reportAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve balance sheet data")
		return nil, fmt.Errorf("failed to retrieve balance sheet data: %w", err)
	}

	report := &domain.BalanceSheetReport{
		Assets:           []domain.AccountAmount{},
		Liabilities:      []domain.AccountAmount{},
		Equity:           []domain.AccountAmount{},
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
		RetainedEarnings: decimal.Zero,
	}
	for _, acc := range accounts {
		amount := domain.AccountAmount{AccountCode: acc.Code, Name: acc.Name, NetAmount: acc.Balance}
		switch acc.Type {
		case domain.Assets:
			report.Assets = append(report.Assets, amount)
			report.TotalAssets = report.TotalAssets.Add(acc.Balance)
		case domain.Liabilities:
			report.Liabilities = append(report.Liabilities, amount)
			report.TotalLiabilities = report.TotalLiabilities.Add(acc.Balance)
		case domain.Equity:
			report.Equity = append(report.Equity, amount)
			report.TotalEquity = report.TotalEquity.Add(acc.Balance)
		case domain.Revenue:
			report.RetainedEarnings = report.RetainedEarnings.Add(acc.Balance)
		case domain.Expenses:
			report.RetainedEarnings = report.RetainedEarnings.Sub(acc.Balance)
		}
	}
	report.TotalEquity = report.TotalEquity.Add(report.RetainedEarnings)

	s.LogInfo(ctx, "Balance sheet report generated successfully",
		slog.Int("asset_accounts", len(report.Assets)),
		slog.Int("liability_accounts", len(report.Liabilities)),
		slog.Int("equity_accounts", len(report.Equity)))
	return report, nil
}

func (s *reportingService) VerifyBalances(ctx context.Context) ([]domain.BalanceDrift, error) {
	return s.verifier.VerifyBalances(ctx)
}
