package repositories

import (
	"context"

	"github.com/SscSPs/backoffice/internal/core/domain"
)

// CashVoucherRepository persists cash/bank receipts and payments with their items.
type CashVoucherRepository interface {
	SaveCashReceipt(ctx context.Context, receipt domain.CashReceipt) error
	FindCashReceiptByID(ctx context.Context, id string) (*domain.CashReceipt, error)
	ListCashReceipts(ctx context.Context, limit, offset int) ([]domain.CashReceipt, error)

	SaveCashPayment(ctx context.Context, payment domain.CashPayment) error
	FindCashPaymentByID(ctx context.Context, id string) (*domain.CashPayment, error)
	ListCashPayments(ctx context.Context, limit, offset int) ([]domain.CashPayment, error)

	// CountVouchersByPrefix counts voucher numbers starting with prefix in the family's table.
	CountVouchersByPrefix(ctx context.Context, family domain.VoucherFamily, prefix string) (int64, error)
}

// SequenceRepository stores per-scope counters used for number allocation.
type SequenceRepository interface {
	// LockSequence returns the last allocated value of scope, creating the
	// counter at zero if needed, and holds a row lock until the transaction ends.
	LockSequence(ctx context.Context, scope string) (int64, error)
	SetSequence(ctx context.Context, scope string, value int64) error
}
