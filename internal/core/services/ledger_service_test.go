package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/backoffice/internal/apperrors"
	"github.com/SscSPs/backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/backoffice/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	now      time.Time
	mockRepo *MockAccountRepository
	repos    portsrepo.RepositoryProvider
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.now = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	suite.mockRepo = new(MockAccountRepository)
	suite.repos = portsrepo.RepositoryProvider{AccountRepo: suite.mockRepo}
}

func (suite *LedgerServiceTestSuite) TearDownTest() {
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) newLedger(opts ...services.LedgerOption) *services.LedgerService {
	ledger := services.NewLedgerService(opts...)
	ledger.SetClock(func() time.Time { return suite.now })
	return ledger
}

func amountOf(v int64) interface{} {
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.NewFromInt(v)) })
}

func line(code string, debit, credit int64) domain.JournalLine {
	return domain.JournalLine{AccountCode: code, Debit: decimal.NewFromInt(debit), Credit: decimal.NewFromInt(credit)}
}

func (suite *LedgerServiceTestSuite) TestApplyFollowsAccountPolarity() {
	lines := []domain.JournalLine{
		line("611.000", 300, 0),
		line("411.000", 200, 0),
		line("111.000", 0, 500),
	}
	suite.mockRepo.On("FindAccountsByCodesForUpdate", suite.ctx, []string{"111.000", "411.000", "611.000"}).Return(map[string]domain.Account{
		"111.000": *activeAccount("111.000", domain.Assets, 1),
		"411.000": *activeAccount("411.000", domain.Revenue, 1),
		"611.000": *activeAccount("611.000", domain.Expenses, 1),
	}, nil).Once()
	suite.mockRepo.On("AddToBalance", suite.ctx, "111.000", amountOf(-500), suite.now).Return(nil).Once()
	suite.mockRepo.On("AddToBalance", suite.ctx, "411.000", amountOf(-200), suite.now).Return(nil).Once()
	suite.mockRepo.On("AddToBalance", suite.ctx, "611.000", amountOf(300), suite.now).Return(nil).Once()

	err := suite.newLedger().AdjustBalances(suite.ctx, suite.repos, lines, services.Apply)

	suite.Require().NoError(err)
}

func (suite *LedgerServiceTestSuite) TestUnapplyNegatesAndAggregatesPerAccount() {
	lines := []domain.JournalLine{
		line("211.000", 0, 100),
		line("211.000", 0, 50),
		line("611.000", 150, 0),
	}
	suite.mockRepo.On("FindAccountsByCodesForUpdate", suite.ctx, []string{"211.000", "611.000"}).Return(map[string]domain.Account{
		"211.000": *activeAccount("211.000", domain.Liabilities, 1),
		"611.000": *activeAccount("611.000", domain.Expenses, 1),
	}, nil).Once()
	suite.mockRepo.On("AddToBalance", suite.ctx, "211.000", amountOf(-150), suite.now).Return(nil).Once()
	suite.mockRepo.On("AddToBalance", suite.ctx, "611.000", amountOf(-150), suite.now).Return(nil).Once()

	err := suite.newLedger().AdjustBalances(suite.ctx, suite.repos, lines, services.Unapply)

	suite.Require().NoError(err)
}

func (suite *LedgerServiceTestSuite) TestZeroNetDeltaIsNotWritten() {
	lines := []domain.JournalLine{
		line("111.000", 100, 0),
		line("111.000", 0, 100),
	}
	suite.mockRepo.On("FindAccountsByCodesForUpdate", suite.ctx, []string{"111.000"}).Return(map[string]domain.Account{
		"111.000": *activeAccount("111.000", domain.Assets, 1),
	}, nil).Once()

	err := suite.newLedger().AdjustBalances(suite.ctx, suite.repos, lines, services.Apply)

	suite.Require().NoError(err)
	suite.mockRepo.AssertNotCalled(suite.T(), "AddToBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestUnknownAccountFails() {
	lines := []domain.JournalLine{line("111.000", 100, 0), line("999.999", 0, 100)}
	suite.mockRepo.On("FindAccountsByCodesForUpdate", suite.ctx, []string{"111.000", "999.999"}).Return(map[string]domain.Account{
		"111.000": *activeAccount("111.000", domain.Assets, 1),
	}, nil).Once()
	suite.mockRepo.On("AddToBalance", suite.ctx, "111.000", amountOf(100), suite.now).Return(nil).Maybe()

	err := suite.newLedger().AdjustBalances(suite.ctx, suite.repos, lines, services.Apply)

	suite.ErrorIs(err, apperrors.ErrIntegrity)
}

func (suite *LedgerServiceTestSuite) TestUnknownAccountSkippedWhenConfigured() {
	lines := []domain.JournalLine{line("111.000", 100, 0), line("999.999", 0, 100)}
	suite.mockRepo.On("FindAccountsByCodesForUpdate", suite.ctx, []string{"111.000", "999.999"}).Return(map[string]domain.Account{
		"111.000": *activeAccount("111.000", domain.Assets, 1),
	}, nil).Once()
	suite.mockRepo.On("AddToBalance", suite.ctx, "111.000", amountOf(100), suite.now).Return(nil).Once()

	err := suite.newLedger(services.WithSkipUnknownAccounts(true)).AdjustBalances(suite.ctx, suite.repos, lines, services.Apply)

	suite.Require().NoError(err)
}

func (suite *LedgerServiceTestSuite) TestInvalidDirection() {
	err := suite.newLedger().AdjustBalances(suite.ctx, suite.repos, []domain.JournalLine{line("111.000", 1, 0)}, services.Direction(2))

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindAccountsByCodesForUpdate", mock.Anything, mock.Anything)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
