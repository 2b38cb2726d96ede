package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/SscSPs/backoffice/internal/apperrors"
	"github.com/SscSPs/backoffice/internal/core/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TaxInvoiceHandlerTestSuite struct {
	handlerSuite
}

func (suite *TaxInvoiceHandlerTestSuite) TestCreateTaxInvoice_InvalidStatus() {
	w := suite.do(http.MethodPost, "/api/v1/tax-invoices", uuid.NewString(), map[string]any{
		"taxInvoiceNo":   "010.000-26.00000001",
		"customerId":     "c-1",
		"tradeInvoiceId": "inv-1",
		"dpp":            "1000",
		"ppn":            "110",
		"total":          "1110",
		"status":         "Reversed",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTaxInvoiceService.AssertNotCalled(suite.T(), "CreateTaxInvoice", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TaxInvoiceHandlerTestSuite) TestPostTaxInvoice_Success() {
	userID := uuid.NewString()
	suite.mockTaxInvoiceService.On("PostTaxInvoice", mock.Anything, "ti-1", userID).Return(&domain.TaxInvoice{
		ID:        "ti-1",
		DPP:       decimal.NewFromInt(1000),
		PPN:       decimal.NewFromInt(110),
		Total:     decimal.NewFromInt(1110),
		Status:    domain.TaxInvoicePosted,
		JournalID: "je-7",
	}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/tax-invoices/ti-1/post", userID, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp domain.TaxInvoice
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.TaxInvoicePosted, resp.Status)
	suite.Equal("je-7", resp.JournalID)
}

func (suite *TaxInvoiceHandlerTestSuite) TestPostTaxInvoice_AlreadyPosted() {
	userID := uuid.NewString()
	suite.mockTaxInvoiceService.On("PostTaxInvoice", mock.Anything, "ti-1", userID).
		Return(nil, fmt.Errorf("tax invoice ti-1 is Posted: %w", apperrors.ErrInvalidState)).Once()

	w := suite.do(http.MethodPost, "/api/v1/tax-invoices/ti-1/post", userID, nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *TaxInvoiceHandlerTestSuite) TestCreatePurchaseTaxInvoice_RequiresSupplier() {
	w := suite.do(http.MethodPost, "/api/v1/purchase-tax-invoices", uuid.NewString(), map[string]any{
		"taxInvoiceNo": "010.000-26.00000101",
		"dpp":          "500",
		"ppn":          "55",
		"total":        "555",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTaxInvoiceService.AssertNotCalled(suite.T(), "CreatePurchaseTaxInvoice", mock.Anything, mock.Anything, mock.Anything)
}

func TestTaxInvoiceHandler(t *testing.T) {
	suite.Run(t, new(TaxInvoiceHandlerTestSuite))
}
