package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Assets      AccountType = "Assets"
	Liabilities AccountType = "Liabilities"
	Equity      AccountType = "Equity"
	Revenue     AccountType = "Revenue"
	Expenses    AccountType = "Expenses"
)

// AccountTypes lists every account type in chart order.
var AccountTypes = []AccountType{Assets, Liabilities, Equity, Revenue, Expenses}

// ParseAccountType resolves a case-insensitive account type name.
func ParseAccountType(s string) (AccountType, error) {
	for _, t := range AccountTypes {
		if strings.EqualFold(string(t), strings.TrimSpace(s)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown account type %q", s)
}

// IsDebitNormal reports whether debits increase accounts of this type.
func (t AccountType) IsDebitNormal() bool {
	return t == Assets || t == Expenses
}

// SignedDelta is the change a debit/credit pair makes to the balance of an
// account of this type, expressed in the account's natural polarity.
func (t AccountType) SignedDelta(debit, credit decimal.Decimal) decimal.Decimal {
	if t.IsDebitNormal() {
		return debit.Sub(credit)
	}
	return credit.Sub(debit)
}

// AccountStatus is the lifecycle flag of an account.
type AccountStatus string

const (
	AccountActive   AccountStatus = "Active"
	AccountInactive AccountStatus = "Inactive"
)

// Account is a node of the chart of accounts. Code is the natural key
// (a dotted hierarchical string such as 111.001).
type Account struct {
	Code        string        `json:"code"`
	Name        string        `json:"name"`
	Type        AccountType   `json:"type"`
	Level       int           `json:"level"`
	ParentCode  string        `json:"parentCode,omitempty"`
	IsSystem    bool          `json:"isSystem"`
	Status      AccountStatus `json:"status"`
	HasChildren bool          `json:"hasChildren"`
	AuditFields
	// Balance is written only by the account ledger.
	Balance decimal.Decimal `json:"balance"`
}

func (a Account) IsActive() bool {
	return a.Status == AccountActive
}
