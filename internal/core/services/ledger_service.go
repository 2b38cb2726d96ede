package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/SscSPs/backoffice/internal/apperrors"
	"github.com/SscSPs/backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/backoffice/internal/metrics"
	"github.com/shopspring/decimal"
)

// Direction applies (+1) or unapplies (-1) the balance impact of lines.
type Direction int

const (
	Apply   Direction = 1
	Unapply Direction = -1
)

func (d Direction) String() string {
	if d == Unapply {
		return "unapply"
	}
	return "apply"
}

// LedgerService is the only writer of account balances. It always runs on
// repositories bound to the caller's transaction.
type LedgerService struct {
	BaseService
	skipUnknownAccounts bool
}

// LedgerOption is a functional option for configuring the ledger.
type LedgerOption func(*LedgerService)

// WithSkipUnknownAccounts makes AdjustBalances ignore lines whose account
// does not exist instead of failing.
func WithSkipUnknownAccounts(skip bool) LedgerOption {
	return func(s *LedgerService) {
		s.skipUnknownAccounts = skip
	}
}

func NewLedgerService(options ...LedgerOption) *LedgerService {
	svc := &LedgerService{BaseService: newBaseService()}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// AdjustBalances adds the signed impact of lines to each account's balance,
// multiplied by direction. Accounts are locked in code order first so
// concurrent postings touching the same accounts cannot deadlock.
func (s *LedgerService) AdjustBalances(ctx context.Context, repos portsrepo.RepositoryProvider, lines []domain.JournalLine, direction Direction) error {
	if direction != Apply && direction != Unapply {
		return fmt.Errorf("%w: direction must be +1 or -1, got %d", apperrors.ErrValidation, direction)
	}
	if len(lines) == 0 {
		return nil
	}

	deltas := map[string]domain.LineTotals{}
	for _, l := range lines {
		t := deltas[l.AccountCode]
		t.Debit = t.Debit.Add(l.Debit)
		t.Credit = t.Credit.Add(l.Credit)
		deltas[l.AccountCode] = t
	}
	codes := make([]string, 0, len(deltas))
	for code := range deltas {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	accounts, err := repos.AccountRepo.FindAccountsByCodesForUpdate(ctx, codes)
	if err != nil {
		s.LogError(ctx, err, "Failed to lock accounts for balance adjustment")
		return fmt.Errorf("failed to lock accounts: %w", err)
	}

	now := s.Now()
	sign := decimal.NewFromInt(int64(direction))
	for _, code := range codes {
		acc, ok := accounts[code]
		if !ok {
			if s.skipUnknownAccounts {
				s.LogWarn(ctx, "Skipping lines of unknown account", slog.String("account_code", code))
				metrics.SkippedLines.Inc()
				continue
			}
			return fmt.Errorf("account %s does not exist: %w", code, apperrors.ErrIntegrity)
		}
		t := deltas[code]
		delta := acc.Type.SignedDelta(t.Debit, t.Credit).Mul(sign)
		if delta.IsZero() {
			continue
		}
		if err := repos.AccountRepo.AddToBalance(ctx, code, delta, now); err != nil {
			s.LogError(ctx, err, "Failed to adjust account balance", slog.String("account_code", code))
			return fmt.Errorf("failed to adjust balance of %s: %w", code, err)
		}
	}

	metrics.BalanceAdjustments.WithLabelValues(direction.String()).Inc()
	s.LogDebug(ctx, "Balances adjusted",
		slog.Int("accounts", len(codes)),
		slog.String("direction", direction.String()))
	return nil
}
