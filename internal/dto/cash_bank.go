package dto

import "github.com/shopspring/decimal"

// CashVoucherItemRequest is a detail row of a receipt or payment.
type CashVoucherItemRequest struct {
	AccountCode string          `json:"accountCode" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"gt=0"`
	Memo        string          `json:"memo"`
	Department  string          `json:"department"`
	Project     string          `json:"project"`
}

// CreateCashReceiptRequest records money deposited into DepositAccount.
// VoucherNo is allocated from the KTMC series when empty.
type CreateCashReceiptRequest struct {
	VoucherNo      string                   `json:"voucherNo" binding:"max=50"`
	Date           string                   `json:"date"`
	TotalAmount    decimal.Decimal          `json:"totalAmount" binding:"gt=0"`
	DepositAccount string                   `json:"depositAccount" binding:"required"`
	Memo           string                   `json:"memo"`
	Items          []CashVoucherItemRequest `json:"items" binding:"required,min=1,dive"`
}

// CreateCashPaymentRequest records money paid out of PaidFromAccount.
// VoucherNo is allocated from the KK series when empty.
type CreateCashPaymentRequest struct {
	VoucherNo       string                   `json:"voucherNo" binding:"max=50"`
	Date            string                   `json:"date"`
	TotalAmount     decimal.Decimal          `json:"totalAmount" binding:"gt=0"`
	PaidFromAccount string                   `json:"paidFromAccount" binding:"required"`
	PayeeName       string                   `json:"payeeName" binding:"max=255"`
	CheckNo         string                   `json:"checkNo" binding:"max=50"`
	IsBlankCheck    bool                     `json:"isBlankCheck"`
	Memo            string                   `json:"memo"`
	Items           []CashVoucherItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ListParams is offset pagination for voucher listings.
type ListParams struct {
	Limit  int `form:"limit,default=50" binding:"min=1,max=500"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}
