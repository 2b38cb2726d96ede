package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SscSPs/backoffice/internal/apperrors"
	"github.com/SscSPs/backoffice/internal/core/domain"
	"github.com/SscSPs/backoffice/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountHandlerTestSuite struct {
	handlerSuite
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	userID := uuid.NewString()
	req := dto.CreateAccountRequest{Code: "111.001", Name: "Petty cash", Type: "Assets", ParentCode: "111"}

	suite.mockAccountService.On("CreateAccount", mock.Anything, req, userID).
		Return(&domain.Account{
			Code:       "111.001",
			Name:       "Petty cash",
			Type:       domain.Assets,
			Level:      2,
			ParentCode: "111",
			Status:     domain.AccountActive,
			Balance:    decimal.Zero,
		}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", userID, req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("111.001", resp.Code)
	suite.Equal(2, resp.Level)
	suite.Equal("Active", resp.Status)
	suite.True(resp.Balance.IsZero())
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_InvalidType() {
	w := suite.do(http.MethodPost, "/api/v1/accounts", uuid.NewString(), map[string]string{
		"code": "999", "name": "Bogus", "type": "Liability",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_Duplicate() {
	userID := uuid.NewString()
	req := dto.CreateAccountRequest{Code: "111", Name: "Cash", Type: "Assets"}
	suite.mockAccountService.On("CreateAccount", mock.Anything, req, userID).
		Return(nil, fmt.Errorf("account 111: %w", apperrors.ErrDuplicate)).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", userID, req)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *AccountHandlerTestSuite) TestRequiresToken() {
	w := suite.do(http.MethodGet, "/api/v1/accounts", "", nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "ListAccounts", mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestListAccounts_IncludeInactive() {
	suite.mockAccountService.On("ListAccounts", mock.Anything, true).
		Return([]domain.Account{
			{Code: "111", Name: "Cash", Type: domain.Assets, Status: domain.AccountActive},
			{Code: "119", Name: "Old bank", Type: domain.Assets, Status: domain.AccountInactive},
		}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts?includeInactive=true", uuid.NewString(), nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListAccountsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Accounts, 2)
	suite.Equal("Inactive", resp.Accounts[1].Status)
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	suite.mockAccountService.On("GetAccount", mock.Anything, "404").
		Return(nil, fmt.Errorf("account 404: %w", apperrors.ErrNotFound)).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/404", uuid.NewString(), nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AccountHandlerTestSuite) TestDeactivateAccount_SystemAccountRejected() {
	userID := uuid.NewString()
	suite.mockAccountService.On("DeactivateAccount", mock.Anything, "112", userID).
		Return(fmt.Errorf("system account 112: %w", apperrors.ErrInvalidState)).Once()

	w := suite.do(http.MethodDelete, "/api/v1/accounts/112", userID, nil)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestHealthz() {
	req, _ := http.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
}

// --- Run Test Suite ---
func TestAccountHandler(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
