package repositories

import (
	"context"

	"github.com/SscSPs/backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

type CustomerRepository interface {
	SaveCustomer(ctx context.Context, customer domain.Customer) error
	FindCustomerByID(ctx context.Context, id string) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
}

type DiscountRepository interface {
	SaveDiscount(ctx context.Context, discount domain.Discount) error
	FindDiscountByCode(ctx context.Context, code string) (*domain.Discount, error)
	ListDiscounts(ctx context.Context) ([]domain.Discount, error)
}

type InvoiceRepository interface {
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error
	FindInvoiceByID(ctx context.Context, id string) (*domain.Invoice, error)
	// FindInvoiceByIDForUpdate row-locks the invoice until the transaction ends.
	FindInvoiceByIDForUpdate(ctx context.Context, id string) (*domain.Invoice, error)
	// ListInvoices orders by due date; an empty customerID lists all and openOnly hides paid and cancelled invoices.
	ListInvoices(ctx context.Context, customerID string, openOnly bool) ([]domain.Invoice, error)
	UpdateInvoicePayment(ctx context.Context, id string, paid decimal.Decimal, status domain.InvoiceStatus) error
}

type TaxInvoiceRepository interface {
	SaveTaxInvoice(ctx context.Context, invoice domain.TaxInvoice) error
	FindTaxInvoiceByID(ctx context.Context, id string) (*domain.TaxInvoice, error)
	FindTaxInvoiceByTradeInvoice(ctx context.Context, tradeInvoiceID string) (*domain.TaxInvoice, error)
	ListTaxInvoices(ctx context.Context) ([]domain.TaxInvoice, error)
	MarkTaxInvoicePosted(ctx context.Context, id string, journalID string) error

	SavePurchaseTaxInvoice(ctx context.Context, invoice domain.PurchaseTaxInvoice) error
	FindPurchaseTaxInvoiceByID(ctx context.Context, id string) (*domain.PurchaseTaxInvoice, error)
	ListPurchaseTaxInvoices(ctx context.Context) ([]domain.PurchaseTaxInvoice, error)
	MarkPurchaseTaxInvoicePosted(ctx context.Context, id string, journalID string) error
}
