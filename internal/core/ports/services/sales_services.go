package services

import (
	"context"

	"github.com/SscSPs/backoffice/internal/core/domain"
	"github.com/SscSPs/backoffice/internal/dto"
)

// SalesSvc covers customers, discounts, trade invoices and customer payments.
type SalesSvc interface {
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, userID string) (*domain.Customer, error)
	GetCustomer(ctx context.Context, id string) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)

	CreateDiscount(ctx context.Context, req dto.CreateDiscountRequest) (*domain.Discount, error)
	ListDiscounts(ctx context.Context) ([]domain.Discount, error)

	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, params dto.ListInvoicesParams) ([]domain.Invoice, error)

	RecordPayment(ctx context.Context, req dto.RecordPaymentRequest, userID string) (*domain.CustomerPayment, error)
}

// TaxInvoiceSvc covers sales and purchase tax invoices.
type TaxInvoiceSvc interface {
	CreateTaxInvoice(ctx context.Context, req dto.CreateTaxInvoiceRequest, userID string) (*domain.TaxInvoice, error)
	GetTaxInvoice(ctx context.Context, id string) (*domain.TaxInvoice, error)
	ListTaxInvoices(ctx context.Context) ([]domain.TaxInvoice, error)
	PostTaxInvoice(ctx context.Context, id string, userID string) (*domain.TaxInvoice, error)

	CreatePurchaseTaxInvoice(ctx context.Context, req dto.CreatePurchaseTaxInvoiceRequest, userID string) (*domain.PurchaseTaxInvoice, error)
	GetPurchaseTaxInvoice(ctx context.Context, id string) (*domain.PurchaseTaxInvoice, error)
	ListPurchaseTaxInvoices(ctx context.Context) ([]domain.PurchaseTaxInvoice, error)
	PostPurchaseTaxInvoice(ctx context.Context, id string, userID string) (*domain.PurchaseTaxInvoice, error)
}
