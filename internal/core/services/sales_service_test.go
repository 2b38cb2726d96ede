package services_test

import (
	"testing"

	"github.com/SscSPs/backoffice/internal/apperrors"
	"github.com/SscSPs/backoffice/internal/core/domain"
	"github.com/SscSPs/backoffice/internal/dto"
	"github.com/stretchr/testify/suite"
)

type SalesServiceTestSuite struct {
	ledgerSuite
	customer *domain.Customer
}

func (suite *SalesServiceTestSuite) SetupTest() {
	suite.ledgerSuite.SetupTest()

	customer, err := suite.svc.Sales.CreateCustomer(suite.ctx, dto.CreateCustomerRequest{Name: "PT Sinar Jaya"}, "user-1")
	suite.Require().NoError(err)
	suite.customer = customer
}

func (suite *SalesServiceTestSuite) invoice(no, total string) *domain.Invoice {
	inv, err := suite.svc.Sales.CreateInvoice(suite.ctx, dto.CreateInvoiceRequest{
		InvoiceNo:   no,
		CustomerID:  suite.customer.ID,
		DueDate:     "2026-06-19",
		TotalAmount: dec(total),
	}, "user-1")
	suite.Require().NoError(err)
	return inv
}

func (suite *SalesServiceTestSuite) TestCreateInvoice_PostsReceivable() {
	inv := suite.invoice("INV-001", "1000")

	suite.Equal(domain.InvoiceUnpaid, inv.Status)
	suite.assertBalance("112.000", "1000")
	suite.assertBalance("411.000", "1000")

	entry, err := suite.svc.Journal.GetEntry(suite.ctx, inv.JournalID)
	suite.Require().NoError(err)
	suite.Equal("Sales invoice INV-001 - PT Sinar Jaya", entry.Description)
	suite.Equal(domain.EntryTypeSalesInvoice, entry.Type)
}

func (suite *SalesServiceTestSuite) TestCreateInvoice_Rejections() {
	_, err := suite.svc.Sales.CreateInvoice(suite.ctx, dto.CreateInvoiceRequest{
		InvoiceNo:   "INV-404",
		CustomerID:  "missing",
		TotalAmount: dec("10"),
	}, "user-1")
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.svc.Sales.CreateInvoice(suite.ctx, dto.CreateInvoiceRequest{
		InvoiceNo:   "INV-002",
		CustomerID:  suite.customer.ID,
		Date:        "2026-05-20",
		DueDate:     "2026-05-01",
		TotalAmount: dec("10"),
	}, "user-1")
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.invoice("INV-003", "10")
	_, err = suite.svc.Sales.CreateInvoice(suite.ctx, dto.CreateInvoiceRequest{
		InvoiceNo:   "INV-003",
		CustomerID:  suite.customer.ID,
		TotalAmount: dec("10"),
	}, "user-1")
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.assertBalance("112.000", "10")
}

func (suite *SalesServiceTestSuite) TestSubCentAmountsRejected() {
	before := suite.balances()
	_, err := suite.svc.Sales.CreateInvoice(suite.ctx, dto.CreateInvoiceRequest{
		InvoiceNo:   "INV-010",
		CustomerID:  suite.customer.ID,
		TotalAmount: dec("10.005"),
	}, "user-1")
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.assertBalancesUnchanged(before)

	inv := suite.invoice("INV-011", "10")
	before = suite.balances()
	_, err = suite.svc.Sales.RecordPayment(suite.ctx, dto.RecordPaymentRequest{
		CustomerID:  suite.customer.ID,
		AccountCode: "111.000",
		Allocations: []dto.PaymentAllocationRequest{{InvoiceID: inv.ID, Amount: dec("4.999")}},
	}, "user-1")
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.assertBalancesUnchanged(before)
}

func (suite *SalesServiceTestSuite) TestRecordPayment_WithDiscount() {
	inv := suite.invoice("INV-001", "1000")
	_, err := suite.svc.Sales.CreateDiscount(suite.ctx, dto.CreateDiscountRequest{
		Code:        "D2",
		Name:        "Prompt payment",
		Percentage:  dec("2"),
		AccountCode: "612.000",
	})
	suite.Require().NoError(err)

	payment, err := suite.svc.Sales.RecordPayment(suite.ctx, dto.RecordPaymentRequest{
		CustomerID:   suite.customer.ID,
		AccountCode:  "111.000",
		DiscountCode: "D2",
		Allocations:  []dto.PaymentAllocationRequest{{InvoiceID: inv.ID, Amount: dec("980")}},
	}, "user-1")

	suite.Require().NoError(err)
	suite.True(payment.CashReceived.Equal(dec("980")))
	suite.True(payment.AppliedAmount.Equal(dec("1000")))
	suite.True(payment.DiscountAmount.Equal(dec("20")))
	suite.True(payment.Overpayment.IsZero())
	suite.Require().Len(payment.Invoices, 1)
	suite.Equal(domain.InvoicePaid, payment.Invoices[0].Status)

	suite.assertBalance("111.000", "980")
	suite.assertBalance("612.000", "20")
	suite.assertBalance("112.000", "0")

	entry, err := suite.svc.Journal.GetEntry(suite.ctx, payment.JournalID)
	suite.Require().NoError(err)
	suite.Equal("Payment of invoice INV-001 - PT Sinar Jaya", entry.Description)
	suite.Equal(domain.EntryTypeCustomerPay, entry.Type)
	suite.assertNoDrift()
}

func (suite *SalesServiceTestSuite) TestRecordPayment_OverpaymentAndPartial() {
	first := suite.invoice("INV-001", "500")
	second := suite.invoice("INV-002", "1000")

	payment, err := suite.svc.Sales.RecordPayment(suite.ctx, dto.RecordPaymentRequest{
		CustomerID:  suite.customer.ID,
		AccountCode: "111.000",
		Allocations: []dto.PaymentAllocationRequest{
			{InvoiceID: first.ID, Amount: dec("600")},
			{InvoiceID: second.ID, Amount: dec("400")},
		},
	}, "user-1")

	suite.Require().NoError(err)
	suite.True(payment.Overpayment.Equal(dec("100")))
	suite.True(payment.AppliedAmount.Equal(dec("900")))
	suite.assertBalance("111.000", "1000")
	suite.assertBalance("112.000", "600")
	suite.assertBalance("212.000", "100")

	entry, err := suite.svc.Journal.GetEntry(suite.ctx, payment.JournalID)
	suite.Require().NoError(err)
	suite.Equal("Payment of several invoices - PT Sinar Jaya", entry.Description)

	open, err := suite.svc.Sales.ListInvoices(suite.ctx, dto.ListInvoicesParams{CustomerID: suite.customer.ID, OpenOnly: true})
	suite.Require().NoError(err)
	suite.Require().Len(open, 1)
	suite.Equal("INV-002", open[0].InvoiceNo)
	suite.Equal(domain.InvoicePartiallyPaid, open[0].Status)
	suite.True(open[0].Outstanding().Equal(dec("600")))
	suite.assertNoDrift()
}

func (suite *SalesServiceTestSuite) TestRecordPayment_OtherCustomersInvoice() {
	inv := suite.invoice("INV-001", "500")
	other, err := suite.svc.Sales.CreateCustomer(suite.ctx, dto.CreateCustomerRequest{Name: "CV Lain"}, "user-1")
	suite.Require().NoError(err)
	before := suite.balances()

	_, err = suite.svc.Sales.RecordPayment(suite.ctx, dto.RecordPaymentRequest{
		CustomerID:  other.ID,
		AccountCode: "111.000",
		Allocations: []dto.PaymentAllocationRequest{{InvoiceID: inv.ID, Amount: dec("500")}},
	}, "user-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.assertBalancesUnchanged(before)
}

func (suite *SalesServiceTestSuite) TestRecordPayment_UnknownDiscount() {
	inv := suite.invoice("INV-001", "500")

	_, err := suite.svc.Sales.RecordPayment(suite.ctx, dto.RecordPaymentRequest{
		CustomerID:   suite.customer.ID,
		AccountCode:  "111.000",
		DiscountCode: "NOPE",
		Allocations:  []dto.PaymentAllocationRequest{{InvoiceID: inv.ID, Amount: dec("500")}},
	}, "user-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SalesServiceTestSuite) TestCreateDiscount_Validation() {
	_, err := suite.svc.Sales.CreateDiscount(suite.ctx, dto.CreateDiscountRequest{
		Code: "D100", Name: "All", Percentage: dec("100"), AccountCode: "612.000",
	})
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.svc.Sales.CreateDiscount(suite.ctx, dto.CreateDiscountRequest{
		Code: "DX", Name: "Nowhere", Percentage: dec("5"), AccountCode: "999.999",
	})
	suite.ErrorIs(err, apperrors.ErrValidation)

	discounts, err := suite.svc.Sales.ListDiscounts(suite.ctx)
	suite.Require().NoError(err)
	suite.Empty(discounts)
}

func TestSalesServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SalesServiceTestSuite))
}
