package services

import (
	"context"

	"github.com/SscSPs/backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/backoffice/internal/dto"
)

// VoucherNumberSvc previews voucher numbers.
type VoucherNumberSvc interface {
	// NextVoucherNumber returns "{prefix}-{YY}" plus the zero-padded count of
	// existing numbers in that series incremented by one. It reserves nothing.
	NextVoucherNumber(ctx context.Context, prefix string) (string, error)
}

// VoucherNumberAllocator reserves numbers inside a transaction.
type VoucherNumberAllocator interface {
	AllocateVoucherNumber(ctx context.Context, repos portsrepo.RepositoryProvider, prefix string) (string, error)
	AllocateJournalNumber(ctx context.Context, repos portsrepo.RepositoryProvider) (string, error)
}

// CashBankSvc records cash/bank receipts and payments together with their journal.
type CashBankSvc interface {
	CreateCashReceipt(ctx context.Context, req dto.CreateCashReceiptRequest, userID string) (*domain.CashReceipt, error)
	GetCashReceipt(ctx context.Context, id string) (*domain.CashReceipt, error)
	ListCashReceipts(ctx context.Context, params dto.ListParams) ([]domain.CashReceipt, error)

	CreateCashPayment(ctx context.Context, req dto.CreateCashPaymentRequest, userID string) (*domain.CashPayment, error)
	GetCashPayment(ctx context.Context, id string) (*domain.CashPayment, error)
	ListCashPayments(ctx context.Context, params dto.ListParams) ([]domain.CashPayment, error)
}
