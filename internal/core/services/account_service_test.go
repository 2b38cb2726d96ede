package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/backoffice/internal/apperrors"
	"github.com/SscSPs/backoffice/internal/core/domain"
	"github.com/SscSPs/backoffice/internal/core/services"
	"github.com/SscSPs/backoffice/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockAccountRepository is a mock type for the AccountRepositoryFacade interface
type MockAccountRepository struct {
	mock.Mock
}

// --- Implement mock methods for AccountRepositoryFacade ---

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) HasActiveChildren(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, code string, userID string, now time.Time) error {
	args := m.Called(ctx, code, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountsByCodesForUpdate(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) AddToBalance(ctx context.Context, code string, delta decimal.Decimal, now time.Time) error {
	args := m.Called(ctx, code, delta, now)
	return args.Error(0)
}

// --- Test Suite Setup ---

type AccountServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	now      time.Time
	mockRepo *MockAccountRepository
	service  *services.AccountService
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.now = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockRepo)
	suite.service.SetClock(func() time.Time { return suite.now })
}

func (suite *AccountServiceTestSuite) TearDownTest() {
	suite.mockRepo.AssertExpectations(suite.T())
}

func activeAccount(code string, t domain.AccountType, level int) *domain.Account {
	return &domain.Account{
		Code:    code,
		Name:    "Account " + code,
		Type:    t,
		Level:   level,
		Status:  domain.AccountActive,
		Balance: decimal.Zero,
	}
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestCreateAccount_RootAccount() {
	req := dto.CreateAccountRequest{Code: "111.000", Name: "Cash", Type: "Assets"}

	suite.mockRepo.On("SaveAccount", suite.ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Code == "111.000" &&
			a.Level == 1 &&
			a.ParentCode == "" &&
			a.Type == domain.Assets &&
			a.Status == domain.AccountActive &&
			a.Balance.IsZero() &&
			a.CreatedBy == "user-1" &&
			a.CreatedAt.Equal(suite.now)
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(suite.ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.Equal("Cash", account.Name)
	suite.Equal(1, account.Level)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ChildTakesParentLevelPlusOne() {
	req := dto.CreateAccountRequest{Code: "111.001", Name: "Petty cash", Type: "assets", ParentCode: "111.000"}

	suite.mockRepo.On("FindAccountByCode", suite.ctx, "111.000").Return(activeAccount("111.000", domain.Assets, 2), nil).Once()
	suite.mockRepo.On("SaveAccount", suite.ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Level == 3 && a.ParentCode == "111.000"
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(suite.ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.Equal(3, account.Level)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ParentOfOtherType() {
	req := dto.CreateAccountRequest{Code: "211.001", Name: "Loan", Type: "Liabilities", ParentCode: "111.000"}

	suite.mockRepo.On("FindAccountByCode", suite.ctx, "111.000").Return(activeAccount("111.000", domain.Assets, 1), nil).Once()

	account, err := suite.service.CreateAccount(suite.ctx, req, "user-1")

	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_MissingParent() {
	req := dto.CreateAccountRequest{Code: "111.001", Name: "Petty cash", Type: "Assets", ParentCode: "999.000"}

	suite.mockRepo.On("FindAccountByCode", suite.ctx, "999.000").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateAccount(suite.ctx, req, "user-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_UnknownType() {
	req := dto.CreateAccountRequest{Code: "111.000", Name: "Cash", Type: "Gadgets"}

	_, err := suite.service.CreateAccount(suite.ctx, req, "user-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	req := dto.CreateAccountRequest{Code: "111.000", Name: "Cash", Type: "Assets"}

	suite.mockRepo.On("SaveAccount", suite.ctx, mock.AnythingOfType("domain.Account")).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateAccount(suite.ctx, req, "user-1")

	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.ErrorIs(err, apperrors.ErrIntegrity)
}

func (suite *AccountServiceTestSuite) TestGetAccount_NotFound() {
	suite.mockRepo.On("FindAccountByCode", suite.ctx, "404.000").Return(nil, apperrors.ErrNotFound).Once()

	account, err := suite.service.GetAccount(suite.ctx, "404.000")

	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestGetAccountType() {
	suite.mockRepo.On("FindAccountByCode", suite.ctx, "411.000").Return(activeAccount("411.000", domain.Revenue, 1), nil).Once()

	accountType, err := suite.service.GetAccountType(suite.ctx, "411.000")

	suite.Require().NoError(err)
	suite.Equal(domain.Revenue, accountType)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_Rename() {
	name := "Main cash"
	suite.mockRepo.On("FindAccountByCode", suite.ctx, "111.000").Return(activeAccount("111.000", domain.Assets, 1), nil).Once()
	suite.mockRepo.On("UpdateAccount", suite.ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Name == "Main cash" && a.LastUpdatedBy == "user-2" && a.LastUpdatedAt.Equal(suite.now)
	})).Return(nil).Once()

	account, err := suite.service.UpdateAccount(suite.ctx, "111.000", dto.UpdateAccountRequest{Name: &name}, "user-2")

	suite.Require().NoError(err)
	suite.Equal("Main cash", account.Name)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_MoveAccountWithChildren() {
	parent := ""
	acc := activeAccount("111.000", domain.Assets, 2)
	acc.ParentCode = "110.000"
	acc.HasChildren = true
	suite.mockRepo.On("FindAccountByCode", suite.ctx, "111.000").Return(acc, nil).Once()

	_, err := suite.service.UpdateAccount(suite.ctx, "111.000", dto.UpdateAccountRequest{ParentCode: &parent}, "user-2")

	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_SystemAccount() {
	acc := activeAccount("112.000", domain.Assets, 1)
	acc.IsSystem = true
	suite.mockRepo.On("FindAccountByCode", suite.ctx, "112.000").Return(acc, nil).Once()

	err := suite.service.DeactivateAccount(suite.ctx, "112.000", "user-1")

	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_WithActiveChildren() {
	suite.mockRepo.On("FindAccountByCode", suite.ctx, "111.000").Return(activeAccount("111.000", domain.Assets, 1), nil).Once()
	suite.mockRepo.On("HasActiveChildren", suite.ctx, "111.000").Return(true, nil).Once()

	err := suite.service.DeactivateAccount(suite.ctx, "111.000", "user-1")

	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_Success() {
	suite.mockRepo.On("FindAccountByCode", suite.ctx, "111.001").Return(activeAccount("111.001", domain.Assets, 2), nil).Once()
	suite.mockRepo.On("HasActiveChildren", suite.ctx, "111.001").Return(false, nil).Once()
	suite.mockRepo.On("DeactivateAccount", suite.ctx, "111.001", "user-1", suite.now).Return(nil).Once()

	err := suite.service.DeactivateAccount(suite.ctx, "111.001", "user-1")

	assert.NoError(suite.T(), err)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
