package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/SscSPs/backoffice/internal/apperrors"
	"github.com/SscSPs/backoffice/internal/core/domain"
	"github.com/SscSPs/backoffice/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type JournalHandlerTestSuite struct {
	handlerSuite
}

func (suite *JournalHandlerTestSuite) TestCreateJournal_NegativeAmountRejected() {
	w := suite.do(http.MethodPost, "/api/v1/journals", uuid.NewString(), map[string]any{
		"status": "Posted",
		"lines": []map[string]any{
			{"accountCode": "111", "debit": -5},
			{"accountCode": "411", "credit": 5},
		},
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockJournalService.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything)
}

func (suite *JournalHandlerTestSuite) TestCreateJournal_UnbalancedMapsToBadRequest() {
	userID := uuid.NewString()
	suite.mockJournalService.On("CreateEntry", mock.Anything, mock.MatchedBy(func(in domain.CreateEntryInput) bool {
		return in.Status == domain.Posted && in.UserID == userID && len(in.Lines) == 2 &&
			in.Lines[0].Debit.Equal(decimal.NewFromInt(500))
	})).Return(nil, fmt.Errorf("%w: debit 500 credit 400", apperrors.ErrValidation)).Once()

	w := suite.do(http.MethodPost, "/api/v1/journals", userID, map[string]any{
		"status": "Posted",
		"lines": []map[string]any{
			{"accountCode": "111", "debit": "500"},
			{"accountCode": "411", "credit": "400"},
		},
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockJournalService.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestReverseJournal_Success() {
	userID := uuid.NewString()
	suite.mockJournalService.On("ReverseEntry", mock.Anything, "je-1", "wrong customer", userID).
		Return("je-2", nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/journals/je-1/reverse", userID, dto.ReverseJournalRequest{CancelReason: "wrong customer"})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.ReverseJournalResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("je-2", resp.NewEntryID)
}

func (suite *JournalHandlerTestSuite) TestReverseJournal_NotPosted() {
	userID := uuid.NewString()
	suite.mockJournalService.On("ReverseEntry", mock.Anything, "je-1", "again", userID).
		Return("", fmt.Errorf("%w: entry is Draft", apperrors.ErrInvalidState)).Once()

	w := suite.do(http.MethodPost, "/api/v1/journals/je-1/reverse", userID, dto.ReverseJournalRequest{CancelReason: "again"})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *JournalHandlerTestSuite) TestUpdateJournal_Success() {
	userID := uuid.NewString()
	suite.mockJournalService.On("UpdateEntry", mock.Anything, "je-1", mock.MatchedBy(func(p domain.EntryPatch) bool {
		return p.Status != nil && *p.Status == domain.Posted &&
			p.Description != nil && *p.Description == "May rent" && p.UserID == userID
	})).Return(nil).Once()
	suite.mockJournalService.On("GetEntry", mock.Anything, "je-1").Return(&domain.JournalEntry{
		ID:          "je-1",
		Number:      "JU-2026-001",
		Date:        time.Date(2026, time.May, 20, 0, 0, 0, 0, time.UTC),
		Description: "May rent",
		Status:      domain.Posted,
		Lines: []domain.JournalLine{
			{LineNo: 1, AccountCode: "611", Debit: decimal.NewFromInt(300), Credit: decimal.Zero},
			{LineNo: 2, AccountCode: "111", Debit: decimal.Zero, Credit: decimal.NewFromInt(300)},
		},
	}, nil).Once()

	w := suite.do(http.MethodPatch, "/api/v1/journals/je-1", userID, map[string]any{
		"status":      "Posted",
		"description": "May rent",
	})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.JournalResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.Posted, resp.Status)
	suite.Equal("2026-05-20", resp.Date)
	suite.True(resp.TotalDebit.Equal(decimal.NewFromInt(300)))
	suite.mockJournalService.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestUpdateJournal_IllegalTransitionMapsToConflict() {
	userID := uuid.NewString()
	suite.mockJournalService.On("UpdateEntry", mock.Anything, "je-1", mock.Anything).
		Return(fmt.Errorf("%w: Cancelled to Posted", apperrors.ErrInvalidState)).Once()

	w := suite.do(http.MethodPatch, "/api/v1/journals/je-1", userID, map[string]any{"status": "Posted"})

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockJournalService.AssertNotCalled(suite.T(), "GetEntry", mock.Anything, mock.Anything)
}

func (suite *JournalHandlerTestSuite) TestListJournals_InvalidStatus() {
	w := suite.do(http.MethodGet, "/api/v1/journals?status=Approved", uuid.NewString(), nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockJournalService.AssertNotCalled(suite.T(), "ListEntries", mock.Anything, mock.Anything)
}

func (suite *JournalHandlerTestSuite) TestListJournals_LimitOutOfRange() {
	w := suite.do(http.MethodGet, "/api/v1/journals?limit=500", uuid.NewString(), nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *JournalHandlerTestSuite) TestListJournals_PassesFilter() {
	next := "tok-2"
	suite.mockJournalService.On("ListEntries", mock.Anything, domain.ListEntriesParams{
		Status: domain.Draft,
		Limit:  5,
	}).Return([]domain.JournalEntry{{ID: "je-9", Status: domain.Draft}}, &next, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/journals?status=draft&limit=5", uuid.NewString(), nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "je-9")
	suite.Contains(w.Body.String(), "tok-2")
	suite.mockJournalService.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestNextVoucherNumber() {
	suite.mockNumberService.On("NextVoucherNumber", mock.Anything, "KK").Return("KK-26000003", nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/voucher-numbers/KK", uuid.NewString(), nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.VoucherNumberResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("KK-26000003", resp.Number)
}

func TestJournalHandler(t *testing.T) {
	suite.Run(t, new(JournalHandlerTestSuite))
}
