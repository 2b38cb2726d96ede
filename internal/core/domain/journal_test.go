package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(account string, debit, credit int64) domain.JournalLine {
	return domain.JournalLine{
		AccountCode: account,
		Debit:       decimal.NewFromInt(debit),
		Credit:      decimal.NewFromInt(credit),
	}
}

func TestEntryStatus_IsImpactful(t *testing.T) {
	assert.False(t, domain.Draft.IsImpactful())
	assert.True(t, domain.Posted.IsImpactful())
	assert.True(t, domain.Reversed.IsImpactful())
	assert.False(t, domain.Cancelled.IsImpactful())
}

func TestEntryStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, domain.Draft.CanTransitionTo(domain.Posted))
	assert.True(t, domain.Draft.CanTransitionTo(domain.Cancelled))
	assert.True(t, domain.Posted.CanTransitionTo(domain.Cancelled))
	assert.True(t, domain.Posted.CanTransitionTo(domain.Draft))
	assert.False(t, domain.Posted.CanTransitionTo(domain.Reversed))
	assert.False(t, domain.Draft.CanTransitionTo(domain.Reversed))
	assert.False(t, domain.Reversed.CanTransitionTo(domain.Posted))
	assert.False(t, domain.Cancelled.CanTransitionTo(domain.Draft))
}

func TestParseEntryStatus(t *testing.T) {
	s, err := domain.ParseEntryStatus("Canceled")
	require.NoError(t, err)
	assert.Equal(t, domain.Cancelled, s)

	s, err = domain.ParseEntryStatus("posted")
	require.NoError(t, err)
	assert.Equal(t, domain.Posted, s)

	_, err = domain.ParseEntryStatus("Approved")
	assert.Error(t, err)
}

func TestValidateBalanced(t *testing.T) {
	assert.NoError(t, domain.ValidateBalanced([]domain.JournalLine{line("111.001", 100, 0), line("411.000", 0, 100)}))
	assert.Error(t, domain.ValidateBalanced([]domain.JournalLine{line("111.001", 100, 0), line("411.000", 0, 90)}))
	assert.Error(t, domain.ValidateBalanced([]domain.JournalLine{line("111.001", 100, 0)}))
	assert.Error(t, domain.ValidateBalanced([]domain.JournalLine{line("111.001", 0, 0), line("411.000", 0, 0)}))
}

func TestValidateLines(t *testing.T) {
	assert.NoError(t, domain.ValidateLines([]domain.JournalLine{line("111.001", 1, 0)}))
	assert.Error(t, domain.ValidateLines([]domain.JournalLine{line("", 1, 0)}))
	assert.Error(t, domain.ValidateLines([]domain.JournalLine{line("111.001", -1, 0)}))

	subCent := domain.JournalLine{AccountCode: "111.001", Debit: decimal.RequireFromString("0.004")}
	assert.Error(t, domain.ValidateLines([]domain.JournalLine{subCent}))
	cents := domain.JournalLine{AccountCode: "111.001", Debit: decimal.RequireFromString("10.50"), Credit: decimal.Zero}
	assert.NoError(t, domain.ValidateLines([]domain.JournalLine{cents}))
}

func TestIsCentAmount(t *testing.T) {
	assert.True(t, domain.IsCentAmount(decimal.RequireFromString("12.34")))
	assert.True(t, domain.IsCentAmount(decimal.RequireFromString("12.300")))
	assert.True(t, domain.IsCentAmount(decimal.NewFromInt(5)))
	assert.False(t, domain.IsCentAmount(decimal.RequireFromString("0.008")))
	assert.False(t, domain.IsCentAmount(decimal.RequireFromString("-1.005")))
}

func TestMirrorLines(t *testing.T) {
	original := []domain.JournalLine{line("111.001", 250, 0), line("411.000", 0, 250)}
	original[0].Memo = "deposit"
	original[1].Project = "P-7"

	mirrored := domain.MirrorLines(original)

	require.Len(t, mirrored, 2)
	assert.Equal(t, "111.001", mirrored[0].AccountCode)
	assert.True(t, mirrored[0].Debit.IsZero())
	assert.True(t, mirrored[0].Credit.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, "deposit", mirrored[0].Memo)
	assert.True(t, mirrored[1].Debit.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, "P-7", mirrored[1].Project)
	assert.Equal(t, 2, mirrored[1].LineNo)
}

func TestParseEntryDate(t *testing.T) {
	want := time.Date(2025, time.March, 7, 0, 0, 0, 0, time.UTC)

	got, err := domain.ParseEntryDate("2025-03-07")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = domain.ParseEntryDate("07/03/2025")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = domain.ParseEntryDate("7/3/2025")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = domain.ParseEntryDate("2025-13-01")
	assert.Error(t, err)
	_, err = domain.ParseEntryDate("31/02/2025")
	assert.Error(t, err)
}

func TestFormatJournalNumber(t *testing.T) {
	assert.Equal(t, "JU-2025-004", domain.FormatJournalNumber(2025, 4))
	assert.Equal(t, "JU-2025-1234", domain.FormatJournalNumber(2025, 1234))
}
