package accounting

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Settlement is how one cash allocation against an invoice splits up.
// Cash == CashApplied + Excess and Applied == CashApplied + Discount.
type Settlement struct {
	Cash        decimal.Decimal
	Applied     decimal.Decimal
	CashApplied decimal.Decimal
	Discount    decimal.Decimal
	Excess      decimal.Decimal
}

// GrossUp returns the invoice amount that cash settles under a discount of
// pct percent: cash / (1 - pct/100), rounded to cents.
func GrossUp(cash, pct decimal.Decimal) decimal.Decimal {
	if !pct.IsPositive() {
		return cash
	}
	factor := decimal.NewFromInt(1).Sub(pct.Div(hundred))
	return cash.Div(factor).Round(2)
}

// Settle applies cash against an outstanding amount with a settlement
// discount of pct percent. The applied amount is capped at outstanding; cash
// left after that becomes Excess.
func Settle(cash, outstanding, pct decimal.Decimal) Settlement {
	if outstanding.IsNegative() {
		outstanding = decimal.Zero
	}
	applied := decimal.Min(GrossUp(cash, pct), outstanding)

	cashApplied := applied
	if pct.IsPositive() {
		factor := decimal.NewFromInt(1).Sub(pct.Div(hundred))
		cashApplied = decimal.Min(applied.Mul(factor).Round(2), cash)
	}

	return Settlement{
		Cash:        cash,
		Applied:     applied,
		CashApplied: cashApplied,
		Discount:    applied.Sub(cashApplied),
		Excess:      cash.Sub(cashApplied),
	}
}
