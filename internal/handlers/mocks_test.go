package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/backoffice/internal/core/ports/services"
	"github.com/SscSPs/backoffice/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccount(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountService) GetAccountType(ctx context.Context, code string) (domain.AccountType, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(domain.AccountType), args.Error(1)
}
func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) UpdateAccount(ctx context.Context, code string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, code, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) DeactivateAccount(ctx context.Context, code string, userID string) error {
	args := m.Called(ctx, code, userID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) GetEntry(ctx context.Context, id string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) ListEntries(ctx context.Context, params domain.ListEntriesParams) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, params)
	var next *string
	if n, ok := args.Get(1).(*string); ok {
		next = n
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.JournalEntry), next, args.Error(2)
}
func (m *MockJournalService) CreateEntry(ctx context.Context, input domain.CreateEntryInput) (*domain.JournalEntry, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) UpdateEntry(ctx context.Context, id string, patch domain.EntryPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}
func (m *MockJournalService) ReverseEntry(ctx context.Context, id string, cancelReason string, userID string) (string, error) {
	args := m.Called(ctx, id, cancelReason, userID)
	return args.String(0), args.Error(1)
}
func (m *MockJournalService) CreateEntryInTx(ctx context.Context, repos portsrepo.RepositoryProvider, input domain.CreateEntryInput) (*domain.JournalEntry, error) {
	args := m.Called(ctx, repos, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) VerifyBalances(ctx context.Context) ([]domain.BalanceDrift, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BalanceDrift), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

// --- Mock CashBankService ---
type MockCashBankService struct {
	mock.Mock
}

func (m *MockCashBankService) CreateCashReceipt(ctx context.Context, req dto.CreateCashReceiptRequest, userID string) (*domain.CashReceipt, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashReceipt), args.Error(1)
}
func (m *MockCashBankService) GetCashReceipt(ctx context.Context, id string) (*domain.CashReceipt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashReceipt), args.Error(1)
}
func (m *MockCashBankService) ListCashReceipts(ctx context.Context, params dto.ListParams) ([]domain.CashReceipt, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashReceipt), args.Error(1)
}
func (m *MockCashBankService) CreateCashPayment(ctx context.Context, req dto.CreateCashPaymentRequest, userID string) (*domain.CashPayment, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashPayment), args.Error(1)
}
func (m *MockCashBankService) GetCashPayment(ctx context.Context, id string) (*domain.CashPayment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashPayment), args.Error(1)
}
func (m *MockCashBankService) ListCashPayments(ctx context.Context, params dto.ListParams) ([]domain.CashPayment, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashPayment), args.Error(1)
}

var _ portssvc.CashBankSvc = (*MockCashBankService)(nil)

// --- Mock SalesService ---
type MockSalesService struct {
	mock.Mock
}

func (m *MockSalesService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, userID string) (*domain.Customer, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockSalesService) GetCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockSalesService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}
func (m *MockSalesService) CreateDiscount(ctx context.Context, req dto.CreateDiscountRequest) (*domain.Discount, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Discount), args.Error(1)
}
func (m *MockSalesService) ListDiscounts(ctx context.Context) ([]domain.Discount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Discount), args.Error(1)
}
func (m *MockSalesService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
func (m *MockSalesService) ListInvoices(ctx context.Context, params dto.ListInvoicesParams) ([]domain.Invoice, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}
func (m *MockSalesService) RecordPayment(ctx context.Context, req dto.RecordPaymentRequest, userID string) (*domain.CustomerPayment, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomerPayment), args.Error(1)
}

var _ portssvc.SalesSvc = (*MockSalesService)(nil)

// --- Mock TaxInvoiceService ---
type MockTaxInvoiceService struct {
	mock.Mock
}

func (m *MockTaxInvoiceService) CreateTaxInvoice(ctx context.Context, req dto.CreateTaxInvoiceRequest, userID string) (*domain.TaxInvoice, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxInvoice), args.Error(1)
}
func (m *MockTaxInvoiceService) GetTaxInvoice(ctx context.Context, id string) (*domain.TaxInvoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxInvoice), args.Error(1)
}
func (m *MockTaxInvoiceService) ListTaxInvoices(ctx context.Context) ([]domain.TaxInvoice, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaxInvoice), args.Error(1)
}
func (m *MockTaxInvoiceService) PostTaxInvoice(ctx context.Context, id string, userID string) (*domain.TaxInvoice, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxInvoice), args.Error(1)
}
func (m *MockTaxInvoiceService) CreatePurchaseTaxInvoice(ctx context.Context, req dto.CreatePurchaseTaxInvoiceRequest, userID string) (*domain.PurchaseTaxInvoice, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseTaxInvoice), args.Error(1)
}
func (m *MockTaxInvoiceService) GetPurchaseTaxInvoice(ctx context.Context, id string) (*domain.PurchaseTaxInvoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseTaxInvoice), args.Error(1)
}
func (m *MockTaxInvoiceService) ListPurchaseTaxInvoices(ctx context.Context) ([]domain.PurchaseTaxInvoice, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PurchaseTaxInvoice), args.Error(1)
}
func (m *MockTaxInvoiceService) PostPurchaseTaxInvoice(ctx context.Context, id string, userID string) (*domain.PurchaseTaxInvoice, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseTaxInvoice), args.Error(1)
}

var _ portssvc.TaxInvoiceSvc = (*MockTaxInvoiceService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) TrialBalance(ctx context.Context) (*domain.TrialBalance, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalance), args.Error(1)
}
func (m *MockReportingService) ProfitAndLoss(ctx context.Context, from, to time.Time) (*domain.PAndLReport, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PAndLReport), args.Error(1)
}
func (m *MockReportingService) BalanceSheet(ctx context.Context) (*domain.BalanceSheetReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSheetReport), args.Error(1)
}
func (m *MockReportingService) VerifyBalances(ctx context.Context) ([]domain.BalanceDrift, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BalanceDrift), args.Error(1)
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)

// --- Mock VoucherNumberService ---
type MockVoucherNumberService struct {
	mock.Mock
}

func (m *MockVoucherNumberService) NextVoucherNumber(ctx context.Context, prefix string) (string, error) {
	args := m.Called(ctx, prefix)
	return args.String(0), args.Error(1)
}

var _ portssvc.VoucherNumberSvc = (*MockVoucherNumberService)(nil)
