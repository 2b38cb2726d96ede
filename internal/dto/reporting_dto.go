package dto

import (
	"time"

	"github.com/SscSPs/backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalanceRowResponse represents a row in the trial balance report response
type TrialBalanceRowResponse struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType string          `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceResponse represents the trial balance report response
type TrialBalanceResponse struct {
	Rows     []TrialBalanceRowResponse `json:"rows"`
	Balanced bool                      `json:"balanced"`
	Totals   struct {
		Debit  decimal.Decimal `json:"debit"`
		Credit decimal.Decimal `json:"credit"`
	} `json:"totals"`
}

// AccountAmountResponse represents an account with its amount in a financial report
type AccountAmountResponse struct {
	AccountCode string          `json:"accountCode"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
}

// ProfitAndLossParams are the query parameters of the P&L report (YYYY-MM-DD).
type ProfitAndLossParams struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
}

// ProfitAndLossResponse represents the profit and loss report response
type ProfitAndLossResponse struct {
	FromDate string                  `json:"fromDate"`
	ToDate   string                  `json:"toDate"`
	Revenue  []AccountAmountResponse `json:"revenue"`
	Expenses []AccountAmountResponse `json:"expenses"`
	Summary  struct {
		TotalRevenue  decimal.Decimal `json:"totalRevenue"`
		TotalExpenses decimal.Decimal `json:"totalExpenses"`
		NetProfit     decimal.Decimal `json:"netProfit"`
	} `json:"summary"`
}

// BalanceSheetResponse represents the balance sheet report response
type BalanceSheetResponse struct {
	Assets      []AccountAmountResponse `json:"assets"`
	Liabilities []AccountAmountResponse `json:"liabilities"`
	Equity      []AccountAmountResponse `json:"equity"`
	Summary     struct {
		TotalAssets      decimal.Decimal `json:"totalAssets"`
		TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
		TotalEquity      decimal.Decimal `json:"totalEquity"`
		RetainedEarnings decimal.Decimal `json:"retainedEarnings"`
	} `json:"summary"`
}

// BalanceVerificationResponse lists accounts whose stored balance drifted
// from the balance recomputed from posted lines.
type BalanceVerificationResponse struct {
	Consistent bool                  `json:"consistent"`
	Drifts     []domain.BalanceDrift `json:"drifts"`
}

func toAccountAmounts(items []domain.AccountAmount) ([]AccountAmountResponse, decimal.Decimal) {
	res := make([]AccountAmountResponse, len(items))
	total := decimal.Zero
	for i, it := range items {
		res[i] = AccountAmountResponse{
			AccountCode: it.AccountCode,
			Name:        it.Name,
			Amount:      it.NetAmount,
		}
		total = total.Add(it.NetAmount)
	}
	return res, total
}

// ToTrialBalanceResponse converts a domain trial balance to a DTO response
func ToTrialBalanceResponse(tb *domain.TrialBalance) TrialBalanceResponse {
	response := TrialBalanceResponse{
		Rows: make([]TrialBalanceRowResponse, len(tb.Rows)),
	}
	for i, row := range tb.Rows {
		response.Rows[i] = TrialBalanceRowResponse{
			AccountCode: row.AccountCode,
			AccountName: row.AccountName,
			AccountType: string(row.AccountType),
			Debit:       row.Debit,
			Credit:      row.Credit,
		}
	}
	response.Totals.Debit = tb.TotalDebit
	response.Totals.Credit = tb.TotalCredit
	response.Balanced = tb.TotalDebit.Equal(tb.TotalCredit)
	return response
}

// ToProfitAndLossResponse converts a domain P&L report to a DTO response
func ToProfitAndLossResponse(report *domain.PAndLReport) ProfitAndLossResponse {
	response := ProfitAndLossResponse{
		FromDate: domain.FormatDate(report.From),
		ToDate:   domain.FormatDate(report.To),
	}
	response.Revenue, response.Summary.TotalRevenue = toAccountAmounts(report.Revenue)
	response.Expenses, response.Summary.TotalExpenses = toAccountAmounts(report.Expenses)
	response.Summary.NetProfit = report.NetProfit
	return response
}

// ToBalanceSheetResponse converts a domain balance sheet report to a DTO response
func ToBalanceSheetResponse(report *domain.BalanceSheetReport) BalanceSheetResponse {
	response := BalanceSheetResponse{}
	response.Assets, _ = toAccountAmounts(report.Assets)
	response.Liabilities, _ = toAccountAmounts(report.Liabilities)
	response.Equity, _ = toAccountAmounts(report.Equity)
	response.Summary.TotalAssets = report.TotalAssets
	response.Summary.TotalLiabilities = report.TotalLiabilities
	response.Summary.TotalEquity = report.TotalEquity
	response.Summary.RetainedEarnings = report.RetainedEarnings
	return response
}

// ParseReportDate parses a YYYY-MM-DD report boundary.
func ParseReportDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
