package dto

import (
	"fmt"
	"time"

	"github.com/SscSPs/backoffice/internal/apperrors"
	"github.com/SscSPs/backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineRequest is one line of a journal entry request.
type JournalLineRequest struct {
	AccountCode string          `json:"accountCode" binding:"required"`
	Debit       decimal.Decimal `json:"debit" binding:"gte=0"`
	Credit      decimal.Decimal `json:"credit" binding:"gte=0"`
	Memo        string          `json:"memo"`
	Department  string          `json:"department"`
	Project     string          `json:"project"`
}

// CreateJournalRequest creates a journal entry. Date accepts YYYY-MM-DD or
// D/M/YYYY and defaults to today; Number is generated when empty.
type CreateJournalRequest struct {
	Date        string               `json:"date"`
	Description string               `json:"description" binding:"max=1000"`
	Status      string               `json:"status" binding:"required"`
	Number      string               `json:"number" binding:"max=50"`
	Type        string               `json:"type" binding:"max=50"`
	Lines       []JournalLineRequest `json:"lines" binding:"dive"`
}

// UpdateJournalRequest patches a journal entry. A nil Lines keeps the
// current lines.
type UpdateJournalRequest struct {
	Date         *string               `json:"date"`
	Description  *string               `json:"description" binding:"omitempty,max=1000"`
	Status       *string               `json:"status"`
	CancelReason *string               `json:"cancelReason"`
	Lines        *[]JournalLineRequest `json:"lines" binding:"omitempty,dive"`
}

// ReverseJournalRequest carries the reason recorded on the reversed entry.
type ReverseJournalRequest struct {
	CancelReason string `json:"cancelReason" binding:"required,max=1000"`
}

// ReverseJournalResponse returns the identifier of the draft mirror entry.
type ReverseJournalResponse struct {
	NewEntryID string `json:"newEntryId"`
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineNo      int             `json:"lineNo"`
	AccountCode string          `json:"accountCode"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Memo        string          `json:"memo,omitempty"`
	Department  string          `json:"department,omitempty"`
	Project     string          `json:"project,omitempty"`
}

// JournalResponse defines the data returned for a journal entry.
type JournalResponse struct {
	ID           string                `json:"id"`
	Number       string                `json:"number"`
	Date         string                `json:"date"`
	Description  string                `json:"description"`
	Status       domain.EntryStatus    `json:"status"`
	CancelReason string                `json:"cancelReason,omitempty"`
	Type         string                `json:"type,omitempty"`
	ReversalOf   string                `json:"reversalOf,omitempty"`
	TotalDebit   decimal.Decimal       `json:"totalDebit"`
	TotalCredit  decimal.Decimal       `json:"totalCredit"`
	Lines        []JournalLineResponse `json:"lines"`
	CreatedAt    time.Time             `json:"createdAt"`
	CreatedBy    string                `json:"createdBy"`
}

// ListJournalsParams defines query parameters for listing journal entries.
type ListJournalsParams struct {
	Status    string `form:"status"`
	Limit     int    `form:"limit,default=20" binding:"min=1,max=200"`
	NextToken string `form:"nextToken"`
}

// ListJournalsResponse wraps a page of journal entries.
type ListJournalsResponse struct {
	Journals  []JournalResponse `json:"journals"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// VoucherNumberResponse is the preview of the next voucher number of a prefix.
type VoucherNumberResponse struct {
	Prefix string `json:"prefix"`
	Number string `json:"number"`
}

func toLineInputs(reqs []JournalLineRequest) []domain.LineInput {
	inputs := make([]domain.LineInput, len(reqs))
	for i, r := range reqs {
		inputs[i] = domain.LineInput{
			AccountCode: r.AccountCode,
			Debit:       r.Debit,
			Credit:      r.Credit,
			Memo:        r.Memo,
			Department:  r.Department,
			Project:     r.Project,
		}
	}
	return inputs
}

func parseStatus(s string) (domain.EntryStatus, error) {
	status, err := domain.ParseEntryStatus(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return status, nil
}

// ToCreateEntryInput converts the request into posting engine input.
func (r CreateJournalRequest) ToCreateEntryInput(userID string) (domain.CreateEntryInput, error) {
	status, err := parseStatus(r.Status)
	if err != nil {
		return domain.CreateEntryInput{}, err
	}
	return domain.CreateEntryInput{
		Date:        r.Date,
		Description: r.Description,
		Status:      status,
		Lines:       toLineInputs(r.Lines),
		Number:      r.Number,
		Type:        r.Type,
		UserID:      userID,
	}, nil
}

// ToEntryPatch converts the request into a posting engine patch.
func (r UpdateJournalRequest) ToEntryPatch(userID string) (domain.EntryPatch, error) {
	patch := domain.EntryPatch{
		Date:         r.Date,
		Description:  r.Description,
		CancelReason: r.CancelReason,
		UserID:       userID,
	}
	if r.Status != nil {
		status, err := parseStatus(*r.Status)
		if err != nil {
			return domain.EntryPatch{}, err
		}
		patch.Status = &status
	}
	if r.Lines != nil {
		patch.Lines = toLineInputs(*r.Lines)
	}
	return patch, nil
}

// ToJournalResponse converts a domain.JournalEntry to JournalResponse DTO.
func ToJournalResponse(e *domain.JournalEntry) JournalResponse {
	debit, credit := domain.Totals(e.Lines)
	lines := make([]JournalLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = JournalLineResponse{
			LineNo:      l.LineNo,
			AccountCode: l.AccountCode,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Memo:        l.Memo,
			Department:  l.Department,
			Project:     l.Project,
		}
	}
	return JournalResponse{
		ID:           e.ID,
		Number:       e.Number,
		Date:         domain.FormatDate(e.Date),
		Description:  e.Description,
		Status:       e.Status,
		CancelReason: e.CancelReason,
		Type:         e.Type,
		ReversalOf:   e.ReversalOf,
		TotalDebit:   debit,
		TotalCredit:  credit,
		Lines:        lines,
		CreatedAt:    e.CreatedAt,
		CreatedBy:    e.CreatedBy,
	}
}

// ToListJournalsResponse converts a page of entries.
func ToListJournalsResponse(entries []domain.JournalEntry, nextToken *string) ListJournalsResponse {
	res := ListJournalsResponse{Journals: make([]JournalResponse, len(entries)), NextToken: nextToken}
	for i := range entries {
		res.Journals[i] = ToJournalResponse(&entries[i])
	}
	return res
}
