package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/backoffice/internal/core/domain"
)

// JournalReader defines read operations for journal headers.
type JournalReader interface {
	// FindEntryByID returns the header only; Lines is left empty.
	FindEntryByID(ctx context.Context, id string) (*domain.JournalEntry, error)
	// FindEntryByIDForUpdate also row-locks the header until the transaction ends.
	FindEntryByIDForUpdate(ctx context.Context, id string) (*domain.JournalEntry, error)
	// ListEntries pages by (date, created_at, id) descending. It returns the
	// entries, a token for the next page, and an error.
	ListEntries(ctx context.Context, status domain.EntryStatus, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
	// CountEntriesByNumberPrefix counts entries whose number starts with prefix.
	CountEntriesByNumberPrefix(ctx context.Context, prefix string) (int64, error)
}

// JournalWriter defines write operations for journal headers.
type JournalWriter interface {
	InsertEntry(ctx context.Context, entry domain.JournalEntry) error
	// UpdateEntryHeader writes date, description, status, cancel reason and audit fields.
	UpdateEntryHeader(ctx context.Context, entry domain.JournalEntry) error
}

// JournalLineReader defines read operations for journal lines.
type JournalLineReader interface {
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)
	FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error)
	// SumLinesByAccount totals debit and credit per account over the lines of
	// entries in the given statuses, optionally limited to a date range.
	SumLinesByAccount(ctx context.Context, statuses []domain.EntryStatus, from, to *time.Time) (map[string]domain.LineTotals, error)
}

// JournalLineWriter replaces lines wholesale.
type JournalLineWriter interface {
	InsertLines(ctx context.Context, entryID string, lines []domain.JournalLine) error
	DeleteLines(ctx context.Context, entryID string) error
}

// JournalRepositoryFacade combines all journal repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	JournalLineReader
	JournalLineWriter
}
