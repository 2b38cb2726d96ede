package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// PrefixCashReceipt numbers cash/bank receipts and uses a five digit sequence.
	PrefixCashReceipt = "KTMC"
	// PrefixCashPayment numbers cash/bank payments.
	PrefixCashPayment = "KK"
)

// VoucherFamily identifies which table a voucher prefix is counted against.
type VoucherFamily string

const (
	FamilyJournal     VoucherFamily = "journals"
	FamilyCashReceipt VoucherFamily = "cash_bank_receipts"
	FamilyCashPayment VoucherFamily = "cash_bank_payments"
)

var voucherPrefixPattern = regexp.MustCompile(`^[A-Z0-9]{1,10}$`)

// NormalizeVoucherPrefix uppercases and validates a voucher prefix.
func NormalizeVoucherPrefix(prefix string) (string, error) {
	p := strings.ToUpper(strings.TrimSpace(prefix))
	if !voucherPrefixPattern.MatchString(p) {
		return "", fmt.Errorf("invalid voucher prefix %q: 1-10 letters or digits", prefix)
	}
	return p, nil
}

// FamilyForPrefix maps a prefix onto its counter space.
func FamilyForPrefix(prefix string) VoucherFamily {
	switch prefix {
	case PrefixCashReceipt:
		return FamilyCashReceipt
	case PrefixCashPayment:
		return FamilyCashPayment
	}
	return FamilyJournal
}

// VoucherPadding is 5 digits for cash receipts and 6 for every other prefix.
func VoucherPadding(prefix string) int {
	if prefix == PrefixCashReceipt {
		return 5
	}
	return 6
}

// VoucherSearchPrefix is "{prefix}-{YY}" for the given year.
func VoucherSearchPrefix(prefix string, year int) string {
	return fmt.Sprintf("%s-%02d", prefix, year%100)
}

// FormatVoucherNumber renders "{prefix}-{YY}" followed by the padded sequence.
func FormatVoucherNumber(prefix string, year int, seq int64) string {
	return fmt.Sprintf("%s%0*d", VoucherSearchPrefix(prefix, year), VoucherPadding(prefix), seq)
}

// CashReceipt is a cash/bank receipt voucher: money deposited into one
// account, credited against one or more detail accounts.
type CashReceipt struct {
	ID             string            `json:"id"`
	VoucherNo      string            `json:"voucherNo"`
	Date           time.Time         `json:"date"`
	TotalAmount    decimal.Decimal   `json:"totalAmount"`
	DepositAccount string            `json:"depositAccount"`
	Memo           string            `json:"memo,omitempty"`
	JournalID      string            `json:"journalId"`
	Items          []CashVoucherItem `json:"items"`
	AuditFields
}

// CashPayment is a cash/bank payment voucher: money paid out of one account
// and debited to one or more detail accounts.
type CashPayment struct {
	ID              string            `json:"id"`
	VoucherNo       string            `json:"voucherNo"`
	Date            time.Time         `json:"date"`
	TotalAmount     decimal.Decimal   `json:"totalAmount"`
	PaidFromAccount string            `json:"paidFromAccount"`
	PayeeName       string            `json:"payeeName,omitempty"`
	CheckNo         string            `json:"checkNo,omitempty"`
	IsBlankCheck    bool              `json:"isBlankCheck"`
	Memo            string            `json:"memo,omitempty"`
	JournalID       string            `json:"journalId"`
	Items           []CashVoucherItem `json:"items"`
	AuditFields
}

// CashVoucherItem is one detail row of a receipt or payment.
type CashVoucherItem struct {
	LineNo      int             `json:"lineNo"`
	AccountCode string          `json:"accountCode"`
	Amount      decimal.Decimal `json:"amount"`
	Memo        string          `json:"memo,omitempty"`
	Department  string          `json:"department,omitempty"`
	Project     string          `json:"project,omitempty"`
}

// SumItems totals the item amounts.
func SumItems(items []CashVoucherItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Amount)
	}
	return total
}
