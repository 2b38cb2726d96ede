package accounting

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestGrossUp(t *testing.T) {
	assert.True(t, dec("100").Equal(GrossUp(dec("80"), dec("20"))))
	assert.True(t, dec("80").Equal(GrossUp(dec("80"), decimal.Zero)))
	assert.True(t, dec("117.65").Equal(GrossUp(dec("100"), dec("15"))))
}

func TestSettle(t *testing.T) {
	tests := []struct {
		name        string
		cash        string
		outstanding string
		pct         string
		applied     string
		discount    string
		excess      string
	}{
		{"plain partial payment", "400", "1000", "0", "400", "0", "0"},
		{"plain overpayment", "1200", "1000", "0", "1000", "0", "200"},
		{"discounted payment within outstanding", "80", "1000", "20", "100", "20", "0"},
		{"discounted payment exceeding outstanding", "80", "50", "20", "50", "10", "40"},
		{"fully paid invoice", "300", "0", "0", "0", "0", "300"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Settle(dec(tt.cash), dec(tt.outstanding), dec(tt.pct))
			assert.True(t, dec(tt.applied).Equal(s.Applied), "applied %s", s.Applied)
			assert.True(t, dec(tt.discount).Equal(s.Discount), "discount %s", s.Discount)
			assert.True(t, dec(tt.excess).Equal(s.Excess), "excess %s", s.Excess)
			assert.True(t, s.Cash.Equal(s.CashApplied.Add(s.Excess)))
			assert.True(t, s.Applied.Equal(s.CashApplied.Add(s.Discount)))
		})
	}
}
