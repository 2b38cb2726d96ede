package services_test

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/SscSPs/backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/backoffice/internal/core/ports/services"
	"github.com/SscSPs/backoffice/internal/core/services"
	"github.com/SscSPs/backoffice/internal/dto"
	"github.com/SscSPs/backoffice/internal/platform/config"
	"github.com/SscSPs/backoffice/internal/repositories/database/sqlite"
	"github.com/SscSPs/backoffice/pkg/database"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// chart is the account plan every integration suite starts from. The codes
// match the default system accounts of the configuration.
var chart = []dto.CreateAccountRequest{
	{Code: "111.000", Name: "Cash", Type: "Assets"},
	{Code: "112.000", Name: "Accounts receivable", Type: "Assets", IsSystem: true},
	{Code: "115.000", Name: "VAT input", Type: "Assets", IsSystem: true},
	{Code: "211.000", Name: "Accounts payable", Type: "Liabilities", IsSystem: true},
	{Code: "212.000", Name: "Customer deposits", Type: "Liabilities", IsSystem: true},
	{Code: "213.000", Name: "VAT output", Type: "Liabilities", IsSystem: true},
	{Code: "311.000", Name: "Capital", Type: "Equity"},
	{Code: "411.000", Name: "Sales", Type: "Revenue", IsSystem: true},
	{Code: "511.000", Name: "Purchases", Type: "Expenses", IsSystem: true},
	{Code: "611.000", Name: "Rent", Type: "Expenses"},
	{Code: "612.000", Name: "Sales discount", Type: "Expenses"},
}

// ledgerSuite runs services against a migrated SQLite file.
type ledgerSuite struct {
	suite.Suite
	ctx context.Context
	now time.Time
	db  *sql.DB
	svc *portssvc.ServiceContainer
}

func (s *ledgerSuite) SetupTest() {
	s.ctx = context.Background()
	s.now = time.Date(2026, 5, 20, 10, 0, 0, 0, time.UTC)

	path := filepath.Join(s.T().TempDir(), "ledger.db")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.Require().NoError(database.RunMigrations(database.DriverSQLite, path, database.Up, 0, logger))

	db, err := database.NewSQLiteDB(s.ctx, path, true)
	s.Require().NoError(err)
	s.db = db

	s.svc = services.NewServiceContainer(config.Default(), sqlite.NewTxManager(db), sqlite.NewRepositoryProvider(db),
		services.WithClock(func() time.Time { return s.now }))

	for _, req := range chart {
		_, err := s.svc.Account.CreateAccount(s.ctx, req, "setup")
		s.Require().NoError(err)
	}
}

func (s *ledgerSuite) TearDownTest() {
	if s.db != nil {
		s.Require().NoError(s.db.Close())
	}
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func debit(code, amount string) domain.LineInput {
	return domain.LineInput{AccountCode: code, Debit: dec(amount), Credit: decimal.Zero}
}

func credit(code, amount string) domain.LineInput {
	return domain.LineInput{AccountCode: code, Debit: decimal.Zero, Credit: dec(amount)}
}

func (s *ledgerSuite) balanceOf(code string) decimal.Decimal {
	acc, err := s.svc.Account.GetAccount(s.ctx, code)
	s.Require().NoError(err)
	return acc.Balance
}

func (s *ledgerSuite) assertBalance(code, want string) {
	got := s.balanceOf(code)
	s.Truef(got.Equal(dec(want)), "balance of %s: want %s, got %s", code, want, got.String())
}

func (s *ledgerSuite) balances() map[string]decimal.Decimal {
	accounts, err := s.svc.Account.ListAccounts(s.ctx, true)
	s.Require().NoError(err)
	out := make(map[string]decimal.Decimal, len(accounts))
	for _, acc := range accounts {
		out[acc.Code] = acc.Balance
	}
	return out
}

func (s *ledgerSuite) assertBalancesUnchanged(before map[string]decimal.Decimal) {
	after := s.balances()
	s.Require().Len(after, len(before))
	for code, b := range before {
		s.Truef(b.Equal(after[code]), "balance of %s moved from %s to %s", code, b.String(), after[code].String())
	}
}

func (s *ledgerSuite) assertNoDrift() {
	drifts, err := s.svc.Journal.VerifyBalances(s.ctx)
	s.Require().NoError(err)
	s.Empty(drifts)
}

func (s *ledgerSuite) post(lines ...domain.LineInput) *domain.JournalEntry {
	entry, err := s.svc.Journal.CreateEntry(s.ctx, domain.CreateEntryInput{
		Description: "test entry",
		Status:      domain.Posted,
		Lines:       lines,
		UserID:      "user-1",
	})
	s.Require().NoError(err)
	return entry
}
