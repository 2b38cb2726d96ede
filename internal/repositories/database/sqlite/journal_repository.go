package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/backoffice/internal/apperrors"
	"github.com/SscSPs/backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/backoffice/internal/models"
	"github.com/SscSPs/backoffice/internal/utils/mapping"
	"github.com/SscSPs/backoffice/internal/utils/pagination"
	"github.com/google/uuid"
)

const journalColumns = `id, number, date, description, status, cancel_reason, type, reversal_of,
	created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `id, journal_id, line_no, account_code, debit, credit, memo, department, project`

type SQLiteJournalRepository struct {
	q querier
}

func newSQLiteJournalRepository(q querier) *SQLiteJournalRepository {
	return &SQLiteJournalRepository{q: q}
}

var _ portsrepo.JournalRepositoryFacade = (*SQLiteJournalRepository)(nil)

func scanJournal(s rowScanner) (domain.JournalEntry, error) {
	var m models.Journal
	var date, createdAt, updatedAt string
	err := s.Scan(
		&m.ID,
		&m.Number,
		&date,
		&m.Description,
		&m.Status,
		&m.CancelReason,
		&m.Type,
		&m.ReversalOf,
		&createdAt,
		&m.CreatedBy,
		&updatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.JournalEntry{}, err
	}
	if m.JournalDate, err = parseDate(date); err != nil {
		return domain.JournalEntry{}, err
	}
	if m.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return domain.JournalEntry{}, err
	}
	if m.LastUpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return domain.JournalEntry{}, err
	}
	return mapping.ToDomainJournal(m), nil
}

func scanLine(s rowScanner) (domain.JournalLine, error) {
	var m models.JournalLine
	err := s.Scan(
		&m.ID,
		&m.JournalID,
		&m.LineNo,
		&m.AccountCode,
		&m.Debit,
		&m.Credit,
		&m.Memo,
		&m.Department,
		&m.Project,
	)
	if err != nil {
		return domain.JournalLine{}, err
	}
	return mapping.ToDomainJournalLine(m), nil
}

// FindEntryByID retrieves a journal header.
func (r *SQLiteJournalRepository) FindEntryByID(ctx context.Context, id string) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE id = ?;`
	entry, err := scanJournal(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("failed to find journal %s", id))
	}
	return &entry, nil
}

// FindEntryByIDForUpdate reads the header inside the current transaction,
// which already owns the SQLite write lock.
func (r *SQLiteJournalRepository) FindEntryByIDForUpdate(ctx context.Context, id string) (*domain.JournalEntry, error) {
	return r.FindEntryByID(ctx, id)
}

// ListEntries pages journal headers newest first.
func (r *SQLiteJournalRepository) ListEntries(ctx context.Context, status domain.EntryStatus, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := `SELECT ` + journalColumns + ` FROM journals WHERE 1 = 1`
	args := []any{}
	if status != "" {
		query += ` AND status = ?`
		args = append(args, string(status))
	}
	if nextToken != nil && *nextToken != "" {
		cursor, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", fmt.Errorf("%w: %v", apperrors.ErrValidation, decodeErr))
		}
		query += ` AND (date, created_at, id) < (?, ?, ?)`
		args = append(args, formatDate(cursor.Date), formatTimestamp(cursor.CreatedAt), cursor.ID)
	}
	query += ` ORDER BY date DESC, created_at DESC, id DESC LIMIT ?;`
	args = append(args, fetchLimit)

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, mapError(err, "failed to query journals")
	}
	defer rows.Close()

	entries := make([]domain.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		entry, err := scanJournal(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan journal row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating journal rows: %w", err)
	}

	var next *string
	if len(entries) > limit {
		last := entries[limit-1]
		token := pagination.EncodeToken(last.Date, last.CreatedAt, last.ID)
		next = &token
		entries = entries[:limit]
	}
	return entries, next, nil
}

// CountEntriesByNumberPrefix counts journals whose number starts with prefix.
func (r *SQLiteJournalRepository) CountEntriesByNumberPrefix(ctx context.Context, prefix string) (int64, error) {
	var count int64
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM journals WHERE substr(number, 1, ?) = ?;`, len(prefix), prefix,
	).Scan(&count)
	if err != nil {
		return 0, mapError(err, fmt.Sprintf("failed to count journals with prefix %s", prefix))
	}
	return count, nil
}

// InsertEntry inserts a journal header. Lines are written by InsertLines.
func (r *SQLiteJournalRepository) InsertEntry(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.ToModelJournal(entry)
	query := `
		INSERT INTO journals (` + journalColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	_, err := r.q.ExecContext(ctx, query,
		m.ID,
		m.Number,
		formatDate(m.JournalDate),
		m.Description,
		m.Status,
		m.CancelReason,
		m.Type,
		m.ReversalOf,
		formatTimestamp(m.CreatedAt),
		m.CreatedBy,
		formatTimestamp(m.LastUpdatedAt),
		m.LastUpdatedBy,
	)
	return mapError(err, fmt.Sprintf("failed to insert journal %s", m.Number))
}

// UpdateEntryHeader rewrites the mutable header fields.
func (r *SQLiteJournalRepository) UpdateEntryHeader(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.ToModelJournal(entry)
	query := `
		UPDATE journals
		SET date = ?, description = ?, status = ?, cancel_reason = ?, last_updated_at = ?, last_updated_by = ?
		WHERE id = ?;
	`
	res, err := r.q.ExecContext(ctx, query,
		formatDate(m.JournalDate),
		m.Description,
		m.Status,
		m.CancelReason,
		formatTimestamp(m.LastUpdatedAt),
		m.LastUpdatedBy,
		m.ID,
	)
	if err != nil {
		return mapError(err, fmt.Sprintf("failed to update journal %s", m.ID))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("journal %s: %w", m.ID, apperrors.ErrNotFound)
	}
	return nil
}

// FindLinesByEntryID returns the lines of one journal in line order.
func (r *SQLiteJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	byEntry, err := r.FindLinesByEntryIDs(ctx, []string{entryID})
	if err != nil {
		return nil, err
	}
	return byEntry[entryID], nil
}

// FindLinesByEntryIDs returns lines grouped by journal id. Every requested
// id is present in the result, possibly with an empty slice.
func (r *SQLiteJournalRepository) FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error) {
	result := make(map[string][]domain.JournalLine, len(entryIDs))
	if len(entryIDs) == 0 {
		return result, nil
	}
	in, args := inClause(entryIDs)
	query := `SELECT ` + lineColumns + ` FROM journal_lines WHERE journal_id IN (` + in + `) ORDER BY journal_id, line_no;`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "failed to query journal lines")
	}
	defer rows.Close()

	for rows.Next() {
		line, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal line: %w", err)
		}
		result[line.EntryID] = append(result[line.EntryID], line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal lines: %w", err)
	}
	for _, id := range entryIDs {
		if _, ok := result[id]; !ok {
			result[id] = []domain.JournalLine{}
		}
	}
	return result, nil
}

// SumLinesByAccount totals lines per account. Amounts are stored as text, so
// the sum is taken in Go to stay exact.
func (r *SQLiteJournalRepository) SumLinesByAccount(ctx context.Context, statuses []domain.EntryStatus, from, to *time.Time) (map[string]domain.LineTotals, error) {
	totals := map[string]domain.LineTotals{}
	if len(statuses) == 0 {
		return totals, nil
	}
	in, args := inClause(statuses)
	query := `
		SELECT l.account_code, l.debit, l.credit
		FROM journal_lines l
		JOIN journals j ON j.id = l.journal_id
		WHERE j.status IN (` + in + `)`
	for i := range args {
		args[i] = string(statuses[i])
	}
	if from != nil {
		query += ` AND j.date >= ?`
		args = append(args, formatDate(*from))
	}
	if to != nil {
		query += ` AND j.date <= ?`
		args = append(args, formatDate(*to))
	}

	rows, err := r.q.QueryContext(ctx, query+";", args...)
	if err != nil {
		return nil, mapError(err, "failed to sum journal lines")
	}
	defer rows.Close()

	for rows.Next() {
		var m models.JournalLine
		if err := rows.Scan(&m.AccountCode, &m.Debit, &m.Credit); err != nil {
			return nil, fmt.Errorf("failed to scan line totals: %w", err)
		}
		t := totals[m.AccountCode]
		t.Debit = t.Debit.Add(m.Debit)
		t.Credit = t.Credit.Add(m.Credit)
		totals[m.AccountCode] = t
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line totals: %w", err)
	}
	return totals, nil
}

// InsertLines stores lines under entryID, assigning ids where missing.
func (r *SQLiteJournalRepository) InsertLines(ctx context.Context, entryID string, lines []domain.JournalLine) error {
	query := `INSERT INTO journal_lines (` + lineColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);`
	for _, line := range lines {
		if line.ID == "" {
			line.ID = uuid.NewString()
		}
		m := mapping.ToModelJournalLine(entryID, line)
		_, err := r.q.ExecContext(ctx, query,
			m.ID,
			m.JournalID,
			m.LineNo,
			m.AccountCode,
			m.Debit.String(),
			m.Credit.String(),
			m.Memo,
			m.Department,
			m.Project,
		)
		if err != nil {
			return mapError(err, fmt.Sprintf("failed to insert line %d of journal %s", m.LineNo, entryID))
		}
	}
	return nil
}

// DeleteLines removes every line of a journal.
func (r *SQLiteJournalRepository) DeleteLines(ctx context.Context, entryID string) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM journal_lines WHERE journal_id = ?;`, entryID)
	return mapError(err, fmt.Sprintf("failed to delete lines of journal %s", entryID))
}
