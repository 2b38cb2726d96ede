package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is a party trade invoices are billed to.
type Customer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	TaxID   string `json:"taxId,omitempty"`
	AuditFields
}

// InvoiceStatus tracks settlement of a trade invoice.
type InvoiceStatus string

const (
	InvoiceUnpaid        InvoiceStatus = "Unpaid"
	InvoicePartiallyPaid InvoiceStatus = "Partially Paid"
	InvoicePaid          InvoiceStatus = "Paid"
	InvoiceCancelled     InvoiceStatus = "Cancelled"
)

// paidTolerance absorbs rounding left over from discount gross-up.
var paidTolerance = decimal.NewFromInt(1)

// SettlementStatus derives the invoice status after paid has been applied.
func SettlementStatus(total, paid decimal.Decimal) InvoiceStatus {
	if paid.GreaterThanOrEqual(total.Sub(paidTolerance)) {
		return InvoicePaid
	}
	if paid.IsPositive() {
		return InvoicePartiallyPaid
	}
	return InvoiceUnpaid
}

// Invoice is a trade (sales) invoice.
type Invoice struct {
	ID          string          `json:"id"`
	InvoiceNo   string          `json:"invoiceNo"`
	CustomerID  string          `json:"customerId"`
	Date        time.Time       `json:"date"`
	DueDate     *time.Time      `json:"dueDate,omitempty"`
	Description string          `json:"description,omitempty"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	PaidAmount  decimal.Decimal `json:"paidAmount"`
	Status      InvoiceStatus   `json:"status"`
	JournalID   string          `json:"journalId,omitempty"`
	AuditFields
}

// Outstanding is the unpaid remainder, never negative.
func (i Invoice) Outstanding() decimal.Decimal {
	out := i.TotalAmount.Sub(i.PaidAmount)
	if out.IsNegative() {
		return decimal.Zero
	}
	return out
}

// Discount is a settlement discount granted on customer payments.
type Discount struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Percentage  decimal.Decimal `json:"percentage"`
	AccountCode string          `json:"accountCode"`
}

// PaymentAllocation assigns part of a customer payment to one invoice.
type PaymentAllocation struct {
	InvoiceID string
	Amount    decimal.Decimal
}

// CustomerPayment summarises a recorded payment.
type CustomerPayment struct {
	CustomerID     string          `json:"customerId"`
	JournalID      string          `json:"journalId"`
	JournalNumber  string          `json:"journalNumber"`
	CashReceived   decimal.Decimal `json:"cashReceived"`
	AppliedAmount  decimal.Decimal `json:"appliedAmount"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	Overpayment    decimal.Decimal `json:"overpayment"`
	Invoices       []Invoice       `json:"invoices"`
}

// TaxInvoiceStatus is the lifecycle of a tax invoice.
type TaxInvoiceStatus string

const (
	TaxInvoiceDraft  TaxInvoiceStatus = "Draft"
	TaxInvoicePosted TaxInvoiceStatus = "Posted"
)

// TaxInvoice is a sales tax invoice issued against a trade invoice.
type TaxInvoice struct {
	ID             string           `json:"id"`
	TaxInvoiceNo   string           `json:"taxInvoiceNo"`
	Date           time.Time        `json:"date"`
	TaxPeriod      string           `json:"taxPeriod"`
	CustomerID     string           `json:"customerId"`
	TradeInvoiceID string           `json:"tradeInvoiceId"`
	DPP            decimal.Decimal  `json:"dpp"`
	PPN            decimal.Decimal  `json:"ppn"`
	Total          decimal.Decimal  `json:"total"`
	Status         TaxInvoiceStatus `json:"status"`
	JournalID      string           `json:"journalId,omitempty"`
	AuditFields
}

// PurchaseTaxInvoice is a tax invoice received from a supplier.
type PurchaseTaxInvoice struct {
	ID           string           `json:"id"`
	TaxInvoiceNo string           `json:"taxInvoiceNo"`
	Date         time.Time        `json:"date"`
	ReceivedDate *time.Time       `json:"receivedDate,omitempty"`
	TaxPeriod    string           `json:"taxPeriod"`
	SupplierName string           `json:"supplierName"`
	PONo         string           `json:"poNo,omitempty"`
	DPP          decimal.Decimal  `json:"dpp"`
	PPN          decimal.Decimal  `json:"ppn"`
	Total        decimal.Decimal  `json:"total"`
	Status       TaxInvoiceStatus `json:"status"`
	JournalID    string           `json:"journalId,omitempty"`
	AuditFields
}
