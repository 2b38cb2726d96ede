package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/SscSPs/backoffice/internal/apperrors"
	"github.com/SscSPs/backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/backoffice/internal/models"
	"github.com/SscSPs/backoffice/internal/utils/mapping"
	"github.com/SscSPs/backoffice/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const journalColumns = `id, number, date, description, status, cancel_reason, type, reversal_of,
	created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `id, journal_id, line_no, account_code, debit, credit, memo, department, project`

type PgxJournalRepository struct {
	db DBTX
}

func newPgxJournalRepository(db DBTX) *PgxJournalRepository {
	return &PgxJournalRepository{db: db}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func scanJournal(row pgx.Row) (domain.JournalEntry, error) {
	var m models.Journal
	err := row.Scan(
		&m.ID,
		&m.Number,
		&m.JournalDate,
		&m.Description,
		&m.Status,
		&m.CancelReason,
		&m.Type,
		&m.ReversalOf,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.JournalEntry{}, err
	}
	return mapping.ToDomainJournal(m), nil
}

// FindEntryByID retrieves a journal header.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, id string) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE id = $1;`
	entry, err := scanJournal(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("failed to find journal %s", id))
	}
	return &entry, nil
}

// FindEntryByIDForUpdate retrieves a journal header and locks it until the transaction ends.
func (r *PgxJournalRepository) FindEntryByIDForUpdate(ctx context.Context, id string) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE id = $1 FOR UPDATE;`
	entry, err := scanJournal(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("failed to lock journal %s", id))
	}
	return &entry, nil
}

// ListEntries pages journal headers newest first. One extra row is fetched
// to find out whether a next page exists.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, status domain.EntryStatus, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := `SELECT ` + journalColumns + ` FROM journals WHERE TRUE`
	args := []any{}
	if status != "" {
		args = append(args, string(status))
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	if nextToken != nil && *nextToken != "" {
		cursor, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", fmt.Errorf("%w: %v", apperrors.ErrValidation, decodeErr))
		}
		n := len(args)
		query += fmt.Sprintf(` AND (date, created_at, id) < ($%d, $%d, $%d)`, n+1, n+2, n+3)
		args = append(args, cursor.Date, cursor.CreatedAt, cursor.ID)
	}
	args = append(args, fetchLimit)
	query += ` ORDER BY date DESC, created_at DESC, id DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.db.Query(ctx, query, args...)
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
func (r *PgxJournalRepository) CountEntriesByNumberPrefix(ctx context.Context, prefix string) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM journals WHERE number LIKE $1;`, likePrefix(prefix)).Scan(&count)
	if err != nil {
		return 0, mapError(err, fmt.Sprintf("failed to count journals with prefix %s", prefix))
	}
	return count, nil
}

// InsertEntry inserts a journal header. Lines are written by InsertLines.
func (r *PgxJournalRepository) InsertEntry(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.ToModelJournal(entry)
	query := `
		INSERT INTO journals (` + journalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.db.Exec(ctx, query,
		m.ID,
		m.Number,
		m.JournalDate,
		m.Description,
		m.Status,
		m.CancelReason,
		m.Type,
		m.ReversalOf,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	return mapError(err, fmt.Sprintf("failed to insert journal %s", m.Number))
}

// UpdateEntryHeader rewrites the mutable header fields.
func (r *PgxJournalRepository) UpdateEntryHeader(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.ToModelJournal(entry)
	query := `
		UPDATE journals
		SET date = $2, description = $3, status = $4, cancel_reason = $5, last_updated_at = $6, last_updated_by = $7
		WHERE id = $1;
	`
	cmdTag, err := r.db.Exec(ctx, query,
		m.ID,
		m.JournalDate,
		m.Description,
		m.Status,
		m.CancelReason,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, fmt.Sprintf("failed to update journal %s", m.ID))
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("journal %s: %w", m.ID, apperrors.ErrNotFound)
	}
	return nil
}

// FindLinesByEntryID returns the lines of one journal in line order.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	byEntry, err := r.FindLinesByEntryIDs(ctx, []string{entryID})
	if err != nil {
		return nil, err
	}
	return byEntry[entryID], nil
}

// FindLinesByEntryIDs returns lines grouped by journal id. Every requested
// id is present in the result, possibly with an empty slice.
func (r *PgxJournalRepository) FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error) {
	result := make(map[string][]domain.JournalLine, len(entryIDs))
	if len(entryIDs) == 0 {
		return result, nil
	}
	query := `SELECT ` + lineColumns + ` FROM journal_lines WHERE journal_id = ANY($1) ORDER BY journal_id, line_no;`
	rows, err := r.db.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, mapError(err, "failed to query journal lines")
	}
	defer rows.Close()

	for rows.Next() {
		var m models.JournalLine
		if err := rows.Scan(
			&m.ID,
			&m.JournalID,
			&m.LineNo,
			&m.AccountCode,
			&m.Debit,
			&m.Credit,
			&m.Memo,
			&m.Department,
			&m.Project,
		); err != nil {
			return nil, fmt.Errorf("failed to scan journal line: %w", err)
		}
		result[m.JournalID] = append(result[m.JournalID], mapping.ToDomainJournalLine(m))
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

// SumLinesByAccount totals lines per account for entries in the given statuses.
func (r *PgxJournalRepository) SumLinesByAccount(ctx context.Context, statuses []domain.EntryStatus, from, to *time.Time) (map[string]domain.LineTotals, error) {
	totals := map[string]domain.LineTotals{}
	if len(statuses) == 0 {
		return totals, nil
	}
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}
	query := `
		SELECT l.account_code, COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM journal_lines l
		JOIN journals j ON j.id = l.journal_id
		WHERE j.status = ANY($1)
		  AND ($2::date IS NULL OR j.date >= $2::date)
		  AND ($3::date IS NULL OR j.date <= $3::date)
		GROUP BY l.account_code;
	`
	rows, err := r.db.Query(ctx, query, names, from, to)
	if err != nil {
		return nil, mapError(err, "failed to sum journal lines")
	}
	defer rows.Close()

	for rows.Next() {
		var code string
		var t domain.LineTotals
		if err := rows.Scan(&code, &t.Debit, &t.Credit); err != nil {
			return nil, fmt.Errorf("failed to scan line totals: %w", err)
		}
		totals[code] = t
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line totals: %w", err)
	}
	return totals, nil
}

// InsertLines stores lines under entryID in one batch, assigning ids where missing.
func (r *PgxJournalRepository) InsertLines(ctx context.Context, entryID string, lines []domain.JournalLine) error {
	if len(lines) == 0 {
		return nil
	}
	query := `INSERT INTO journal_lines (` + lineColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`
	batch := &pgx.Batch{}
	for _, line := range lines {
		if line.ID == "" {
			line.ID = uuid.NewString()
		}
		m := mapping.ToModelJournalLine(entryID, line)
		batch.Queue(query, m.ID, m.JournalID, m.LineNo, m.AccountCode, m.Debit, m.Credit, m.Memo, m.Department, m.Project)
	}

	br := r.db.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil && batchErr == nil {
			batchErr = mapError(err, fmt.Sprintf("failed to insert line %d of journal %s", i+1, entryID))
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = mapError(err, fmt.Sprintf("failed to close line batch of journal %s", entryID))
	}
	return batchErr
}

// DeleteLines removes every line of a journal.
func (r *PgxJournalRepository) DeleteLines(ctx context.Context, entryID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM journal_lines WHERE journal_id = $1;`, entryID)
	return mapError(err, fmt.Sprintf("failed to delete lines of journal %s", entryID))
}
