package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow is one account of a trial balance. The balance sits in the
// column matching the account's normal side; a contra balance moves across.
type TrialBalanceRow struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// NewTrialBalanceRow places a natural-polarity balance on the debit or credit side.
func NewTrialBalanceRow(acc Account) TrialBalanceRow {
	row := TrialBalanceRow{
		AccountCode: acc.Code,
		AccountName: acc.Name,
		AccountType: acc.Type,
		Debit:       decimal.Zero,
		Credit:      decimal.Zero,
	}
	debitSide := acc.Type.IsDebitNormal() == !acc.Balance.IsNegative()
	if debitSide {
		row.Debit = acc.Balance.Abs()
	} else {
		row.Credit = acc.Balance.Abs()
	}
	return row
}

// TrialBalance is the full report with column totals.
type TrialBalance struct {
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
}

// AccountAmount is an account with its net amount for financial statements.
type AccountAmount struct {
	AccountCode string          `json:"accountCode"`
	Name        string          `json:"name"`
	NetAmount   decimal.Decimal `json:"netAmount"`
}

// PAndLReport is a profit and loss statement for a period.
type PAndLReport struct {
	From      time.Time       `json:"from"`
	To        time.Time       `json:"to"`
	Revenue   []AccountAmount `json:"revenue"`
	Expenses  []AccountAmount `json:"expenses"`
	NetProfit decimal.Decimal `json:"netProfit"`
}

// BalanceSheetReport is a balance sheet at the current balances. Earnings not
// yet closed into equity are shown as RetainedEarnings.
type BalanceSheetReport struct {
	Assets           []AccountAmount `json:"assets"`
	Liabilities      []AccountAmount `json:"liabilities"`
	Equity           []AccountAmount `json:"equity"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
	RetainedEarnings decimal.Decimal `json:"retainedEarnings"`
}
