package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	portssvc "github.com/SscSPs/backoffice/internal/core/ports/services"
	"github.com/SscSPs/backoffice/internal/handlers"
	"github.com/SscSPs/backoffice/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"
)

// handlerSuite routes requests through RegisterRoutes backed by mocked services.
type handlerSuite struct {
	suite.Suite
	router                *gin.Engine
	mockAccountService    *MockAccountService
	mockJournalService    *MockJournalService
	mockNumberService     *MockVoucherNumberService
	mockCashBankService   *MockCashBankService
	mockSalesService      *MockSalesService
	mockTaxInvoiceService *MockTaxInvoiceService
	mockReportingService  *MockReportingService
	jwtSecret             string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *handlerSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "backoffice-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *handlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockAccountService = new(MockAccountService)
	suite.mockJournalService = new(MockJournalService)
	suite.mockNumberService = new(MockVoucherNumberService)
	suite.mockCashBankService = new(MockCashBankService)
	suite.mockSalesService = new(MockSalesService)
	suite.mockTaxInvoiceService = new(MockTaxInvoiceService)
	suite.mockReportingService = new(MockReportingService)

	cfg := config.Default()
	cfg.JWTSecret = suite.jwtSecret
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Account:       suite.mockAccountService,
		Journal:       suite.mockJournalService,
		VoucherNumber: suite.mockNumberService,
		CashBank:      suite.mockCashBankService,
		Sales:         suite.mockSalesService,
		TaxInvoice:    suite.mockTaxInvoiceService,
		Reporting:     suite.mockReportingService,
	})
}

// do serves a request authenticated as userID; an empty userID sends no token.
func (suite *handlerSuite) do(method, url, userID string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}
