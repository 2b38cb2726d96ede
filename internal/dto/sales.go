package dto

import "github.com/shopspring/decimal"

type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone" binding:"max=50"`
	Address string `json:"address"`
	TaxID   string `json:"taxId" binding:"max=50"`
}

// CreateDiscountRequest defines a settlement discount. AccountCode is the
// expense account the discount is booked to.
type CreateDiscountRequest struct {
	Code        string          `json:"code" binding:"required,max=32"`
	Name        string          `json:"name" binding:"required,max=255"`
	Percentage  decimal.Decimal `json:"percentage" binding:"gte=0,lt=100"`
	AccountCode string          `json:"accountCode" binding:"required"`
}

type CreateInvoiceRequest struct {
	InvoiceNo   string          `json:"invoiceNo" binding:"required,max=50"`
	CustomerID  string          `json:"customerId" binding:"required"`
	Date        string          `json:"date"`
	DueDate     string          `json:"dueDate"`
	Description string          `json:"description"`
	TotalAmount decimal.Decimal `json:"totalAmount" binding:"gt=0"`
}

type PaymentAllocationRequest struct {
	InvoiceID string          `json:"invoiceId" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"gt=0"`
}

// RecordPaymentRequest allocates cash received into AccountCode across invoices of one customer.
type RecordPaymentRequest struct {
	CustomerID   string                     `json:"customerId" binding:"required"`
	PaymentDate  string                     `json:"paymentDate"`
	AccountCode  string                     `json:"accountCode" binding:"required"`
	DiscountCode string                     `json:"discountCode"`
	Allocations  []PaymentAllocationRequest `json:"allocations" binding:"required,min=1,dive"`
}

type ListInvoicesParams struct {
	CustomerID string `form:"customerId"`
	OpenOnly   bool   `form:"openOnly"`
}
