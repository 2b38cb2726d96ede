package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus is the lifecycle state of a journal entry.
type EntryStatus string

const (
	Draft     EntryStatus = "Draft"
	Posted    EntryStatus = "Posted"
	Reversed  EntryStatus = "Reversed"
	Cancelled EntryStatus = "Cancelled"
)

// ParseEntryStatus accepts the canonical names case-insensitively, plus the
// American spelling "Canceled".
func ParseEntryStatus(s string) (EntryStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "draft":
		return Draft, nil
	case "posted":
		return Posted, nil
	case "reversed":
		return Reversed, nil
	case "cancelled", "canceled":
		return Cancelled, nil
	}
	return "", fmt.Errorf("unknown entry status %q", s)
}

// IsImpactful reports whether lines of an entry in this status count toward
// account balances.
func (s EntryStatus) IsImpactful() bool {
	return s == Posted || s == Reversed
}

// IsTerminal reports whether an entry in this status can no longer be edited.
func (s EntryStatus) IsTerminal() bool {
	return s == Reversed || s == Cancelled
}

// CanTransitionTo reports whether an update may move an entry from s to next.
// Reversal has its own operation and is never reachable through an update.
func (s EntryStatus) CanTransitionTo(next EntryStatus) bool {
	switch s {
	case Draft:
		return next == Draft || next == Posted || next == Cancelled
	case Posted:
		return next == Posted || next == Draft || next == Cancelled
	}
	return false
}

// Well-known entry type tags set by the voucher writers.
const (
	EntryTypeGeneral      = "General"
	EntryTypeCashReceipt  = "Cash Receipt"
	EntryTypeCashPayment  = "Cash Payment"
	EntryTypeSalesInvoice = "Sales Invoice"
	EntryTypeCustomerPay  = "Customer Payment"
	EntryTypeSalesTax     = "Sales Tax Invoice"
	EntryTypePurchaseTax  = "Purchase Tax Invoice"
)

// JournalEntry is one double-entry record with its lines.
type JournalEntry struct {
	ID           string        `json:"id"`
	Number       string        `json:"number"`
	Date         time.Time     `json:"date"`
	Description  string        `json:"description"`
	Status       EntryStatus   `json:"status"`
	CancelReason string        `json:"cancelReason,omitempty"`
	Type         string        `json:"type,omitempty"`
	ReversalOf   string        `json:"reversalOf,omitempty"`
	Lines        []JournalLine `json:"lines"`
	AuditFields
}

// JournalLine is a single account movement. Debit and Credit are never negative.
type JournalLine struct {
	ID          string          `json:"id,omitempty"`
	EntryID     string          `json:"entryId,omitempty"`
	LineNo      int             `json:"lineNo"`
	AccountCode string          `json:"accountCode"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Memo        string          `json:"memo,omitempty"`
	Department  string          `json:"department,omitempty"`
	Project     string          `json:"project,omitempty"`
}

// Totals returns the debit and credit sums of lines.
func Totals(lines []JournalLine) (debit, credit decimal.Decimal) {
	for _, l := range lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return debit, credit
}

// AmountScale is the number of decimal places every stored amount carries.
const AmountScale = 2

// IsCentAmount reports whether d fits in AmountScale decimal places.
func IsCentAmount(d decimal.Decimal) bool {
	return d.Equal(d.Round(AmountScale))
}

// ValidateLines checks per-line rules that hold in every status.
func ValidateLines(lines []JournalLine) error {
	for i, l := range lines {
		if strings.TrimSpace(l.AccountCode) == "" {
			return fmt.Errorf("line %d: account code is required", i+1)
		}
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return fmt.Errorf("line %d: debit and credit must not be negative", i+1)
		}
		if !IsCentAmount(l.Debit) || !IsCentAmount(l.Credit) {
			return fmt.Errorf("line %d: amounts allow at most %d decimal places", i+1, AmountScale)
		}
	}
	return nil
}

// ValidateBalanced checks the rules an impactful entry must satisfy: at least
// two lines, equal debit and credit totals, and a non-zero total.
func ValidateBalanced(lines []JournalLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("entry must have at least two lines, got %d", len(lines))
	}
	debit, credit := Totals(lines)
	if !debit.Equal(credit) {
		return fmt.Errorf("entry does not balance: debit %s, credit %s", debit.StringFixed(2), credit.StringFixed(2))
	}
	if debit.IsZero() {
		return fmt.Errorf("entry total must not be zero")
	}
	return nil
}

// MirrorLines swaps debit and credit on every line, keeping order and tags.
func MirrorLines(lines []JournalLine) []JournalLine {
	mirrored := make([]JournalLine, len(lines))
	for i, l := range lines {
		mirrored[i] = JournalLine{
			LineNo:      i + 1,
			AccountCode: l.AccountCode,
			Debit:       l.Credit,
			Credit:      l.Debit,
			Memo:        l.Memo,
			Department:  l.Department,
			Project:     l.Project,
		}
	}
	return mirrored
}

const (
	isoDateLayout     = "2006-01-02"
	displayDateLayout = "2/1/2006"
)

// ParseEntryDate accepts YYYY-MM-DD or D/M/YYYY (leading zeros optional)
// and returns midnight UTC of that day.
func ParseEntryDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	layout := isoDateLayout
	if strings.Contains(s, "/") {
		layout = displayDateLayout
	}
	d, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or DD/MM/YYYY", s)
	}
	return d, nil
}

// FormatDate renders a date in storage form.
func FormatDate(t time.Time) string {
	return t.Format(isoDateLayout)
}

// JournalNumberPrefix is the search prefix of general journal numbers for a year.
func JournalNumberPrefix(year int) string {
	return fmt.Sprintf("JU-%d-", year)
}

// FormatJournalNumber renders JU-{year}-{seq} with a three digit minimum sequence.
func FormatJournalNumber(year int, seq int64) string {
	return fmt.Sprintf("%s%03d", JournalNumberPrefix(year), seq)
}

// LineInput is a line as supplied by a caller of the posting engine.
type LineInput struct {
	AccountCode string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Memo        string
	Department  string
	Project     string
}

// ToJournalLines numbers the inputs in order.
func ToJournalLines(inputs []LineInput) []JournalLine {
	lines := make([]JournalLine, len(inputs))
	for i, in := range inputs {
		lines[i] = JournalLine{
			LineNo:      i + 1,
			AccountCode: strings.TrimSpace(in.AccountCode),
			Debit:       in.Debit,
			Credit:      in.Credit,
			Memo:        in.Memo,
			Department:  in.Department,
			Project:     in.Project,
		}
	}
	return lines
}

// CreateEntryInput carries the arguments of entry creation. Number is
// generated when empty and Date defaults to today when empty.
type CreateEntryInput struct {
	Date        string
	Description string
	Status      EntryStatus
	Lines       []LineInput
	Number      string
	Type        string
	ReversalOf  string
	UserID      string
}

// EntryPatch carries the optional fields of an entry update. A nil Lines
// keeps the current lines; a non-nil empty slice clears them.
type EntryPatch struct {
	Date         *string
	Description  *string
	Status       *EntryStatus
	CancelReason *string
	Lines        []LineInput
	UserID       string
}

// ListEntriesParams filters and pages journal listings.
type ListEntriesParams struct {
	Status    EntryStatus
	Limit     int
	NextToken string
}

// BalanceDrift reports an account whose stored balance differs from the
// balance recomputed from posted lines.
type BalanceDrift struct {
	AccountCode string          `json:"accountCode"`
	Stored      decimal.Decimal `json:"stored"`
	Expected    decimal.Decimal `json:"expected"`
}

// LineTotals is the debit and credit total of one account's lines.
type LineTotals struct {
	Debit  decimal.Decimal
	Credit decimal.Decimal
}
