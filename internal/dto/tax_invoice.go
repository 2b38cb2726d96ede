package dto

import "github.com/shopspring/decimal"

// CreateTaxInvoiceRequest issues a sales tax invoice for a trade invoice.
// DPP is the tax base and PPN the VAT; their sum must equal Total.
type CreateTaxInvoiceRequest struct {
	TaxInvoiceNo   string          `json:"taxInvoiceNo" binding:"required,max=50"`
	Date           string          `json:"date"`
	TaxPeriod      string          `json:"taxPeriod" binding:"max=20"`
	CustomerID     string          `json:"customerId" binding:"required"`
	TradeInvoiceID string          `json:"tradeInvoiceId" binding:"required"`
	DPP            decimal.Decimal `json:"dpp" binding:"gte=0"`
	PPN            decimal.Decimal `json:"ppn" binding:"gte=0"`
	Total          decimal.Decimal `json:"total" binding:"gt=0"`
	Status         string          `json:"status" binding:"omitempty,oneof=Draft Posted"`
}

// CreatePurchaseTaxInvoiceRequest records a tax invoice received from a supplier.
type CreatePurchaseTaxInvoiceRequest struct {
	TaxInvoiceNo string          `json:"taxInvoiceNo" binding:"required,max=50"`
	Date         string          `json:"date"`
	ReceivedDate string          `json:"receivedDate"`
	TaxPeriod    string          `json:"taxPeriod" binding:"max=20"`
	SupplierName string          `json:"supplierName" binding:"required,max=255"`
	PONo         string          `json:"poNo" binding:"max=50"`
	DPP          decimal.Decimal `json:"dpp" binding:"gte=0"`
	PPN          decimal.Decimal `json:"ppn" binding:"gte=0"`
	Total        decimal.Decimal `json:"total" binding:"gt=0"`
	Status       string          `json:"status" binding:"omitempty,oneof=Draft Posted"`
}
