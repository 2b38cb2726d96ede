package mapping

import (
	"github.com/SscSPs/backoffice/internal/core/domain"
	"github.com/SscSPs/backoffice/internal/models"
)

// ToModelJournal converts a journal entry header to its row model.
func ToModelJournal(d domain.JournalEntry) models.Journal {
	return models.Journal{
		ID:           d.ID,
		Number:       d.Number,
		JournalDate:  d.Date,
		Description:  d.Description,
		Status:       string(d.Status),
		CancelReason: NullString(d.CancelReason),
		Type:         NullString(d.Type),
		ReversalOf:   NullString(d.ReversalOf),
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournal converts a journal row to a header without lines.
func ToDomainJournal(m models.Journal) domain.JournalEntry {
	return domain.JournalEntry{
		ID:           m.ID,
		Number:       m.Number,
		Date:         m.JournalDate,
		Description:  m.Description,
		Status:       domain.EntryStatus(m.Status),
		CancelReason: m.CancelReason.String,
		Type:         m.Type.String,
		ReversalOf:   m.ReversalOf.String,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a line for storage under journalID.
func ToModelJournalLine(journalID string, d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		ID:          d.ID,
		JournalID:   journalID,
		LineNo:      d.LineNo,
		AccountCode: d.AccountCode,
		Debit:       d.Debit,
		Credit:      d.Credit,
		Memo:        NullString(d.Memo),
		Department:  NullString(d.Department),
		Project:     NullString(d.Project),
	}
}

// ToDomainJournalLine converts a stored line.
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		ID:          m.ID,
		EntryID:     m.JournalID,
		LineNo:      m.LineNo,
		AccountCode: m.AccountCode,
		Debit:       m.Debit,
		Credit:      m.Credit,
		Memo:        m.Memo.String,
		Department:  m.Department.String,
		Project:     m.Project.String,
	}
}
