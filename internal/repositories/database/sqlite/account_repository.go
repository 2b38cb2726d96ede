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
	"github.com/shopspring/decimal"
)

const accountColumns = `a.code, a.name, a.account_type, a.level, a.parent_code, a.is_system, a.status, a.balance,
	a.created_at, a.created_by, a.last_updated_at, a.last_updated_by,
	EXISTS (SELECT 1 FROM accounts c WHERE c.parent_code = a.code AND c.status = 'Active')`

type SQLiteAccountRepository struct {
	q querier
}

func newSQLiteAccountRepository(q querier) *SQLiteAccountRepository {
	return &SQLiteAccountRepository{q: q}
}

var _ portsrepo.AccountRepositoryFacade = (*SQLiteAccountRepository)(nil)

func scanAccount(s rowScanner) (domain.Account, error) {
	var m models.Account
	var createdAt, updatedAt string
	err := s.Scan(
		&m.Code,
		&m.Name,
		&m.AccountType,
		&m.Level,
		&m.ParentCode,
		&m.IsSystem,
		&m.Status,
		&m.Balance,
		&createdAt,
		&m.CreatedBy,
		&updatedAt,
		&m.LastUpdatedBy,
		&m.HasChildren,
	)
	if err != nil {
		return domain.Account{}, err
	}
	if m.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return domain.Account{}, err
	}
	if m.LastUpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return domain.Account{}, err
	}
	return mapping.ToDomainAccount(m), nil
}

// SaveAccount inserts a new account.
func (r *SQLiteAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (code, name, account_type, level, parent_code, is_system, status, balance,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	_, err := r.q.ExecContext(ctx, query,
		m.Code,
		m.Name,
		string(m.AccountType),
		m.Level,
		m.ParentCode,
		m.IsSystem,
		m.Status,
		m.Balance.String(),
		formatTimestamp(m.CreatedAt),
		m.CreatedBy,
		formatTimestamp(m.LastUpdatedAt),
		m.LastUpdatedBy,
	)
	return mapError(err, fmt.Sprintf("failed to save account %s", m.Code))
}

// FindAccountByCode retrieves an account by its code.
func (r *SQLiteAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts a WHERE a.code = ?;`
	acc, err := scanAccount(r.q.QueryRowContext(ctx, query, code))
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("failed to find account %s", code))
	}
	return &acc, nil
}

// FindAccountsByCodes retrieves multiple accounts; unknown codes are absent from the map.
func (r *SQLiteAccountRepository) FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	if len(codes) == 0 {
		return map[string]domain.Account{}, nil
	}
	in, args := inClause(codes)
	query := `SELECT ` + accountColumns + ` FROM accounts a WHERE a.code IN (` + in + `);`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "failed to query accounts by codes")
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account, len(codes))
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts[acc.Code] = acc
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// FindAccountsByCodesForUpdate reads the accounts inside the current
// transaction. SQLite holds the database write lock for the whole
// transaction, so no row lock is taken.
func (r *SQLiteAccountRepository) FindAccountsByCodesForUpdate(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	return r.FindAccountsByCodes(ctx, codes)
}

// ListAccounts retrieves the chart of accounts ordered by code.
func (r *SQLiteAccountRepository) ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts a`
	if !includeInactive {
		query += ` WHERE a.status = 'Active'`
	}
	query += ` ORDER BY a.code;`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError(err, "failed to list accounts")
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// HasActiveChildren reports whether any active account names code as parent.
func (r *SQLiteAccountRepository) HasActiveChildren(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.q.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM accounts WHERE parent_code = ? AND status = 'Active');`, code,
	).Scan(&exists)
	if err != nil {
		return false, mapError(err, fmt.Sprintf("failed to check children of account %s", code))
	}
	return exists, nil
}

// UpdateAccount writes the editable fields. Balance and type are never touched here.
func (r *SQLiteAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		UPDATE accounts
		SET name = ?, parent_code = ?, level = ?, last_updated_at = ?, last_updated_by = ?
		WHERE code = ?;
	`
	res, err := r.q.ExecContext(ctx, query,
		m.Name,
		m.ParentCode,
		m.Level,
		formatTimestamp(m.LastUpdatedAt),
		m.LastUpdatedBy,
		m.Code,
	)
	if err != nil {
		return mapError(err, fmt.Sprintf("failed to update account %s", m.Code))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("account %s: %w", m.Code, apperrors.ErrNotFound)
	}
	return nil
}

// DeactivateAccount marks an active account inactive.
func (r *SQLiteAccountRepository) DeactivateAccount(ctx context.Context, code string, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET status = 'Inactive', last_updated_at = ?, last_updated_by = ?
		WHERE code = ? AND status = 'Active';
	`
	res, err := r.q.ExecContext(ctx, query, formatTimestamp(now), userID, code)
	if err != nil {
		return mapError(err, fmt.Sprintf("failed to deactivate account %s", code))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, findErr := r.FindAccountByCode(ctx, code); findErr != nil {
			return findErr
		}
		return fmt.Errorf("account %s is already inactive: %w", code, apperrors.ErrInvalidState)
	}
	return nil
}

// AddToBalance adds delta to the stored balance of one account.
func (r *SQLiteAccountRepository) AddToBalance(ctx context.Context, code string, delta decimal.Decimal, now time.Time) error {
	var balance decimal.Decimal
	err := r.q.QueryRowContext(ctx, `SELECT balance FROM accounts WHERE code = ?;`, code).Scan(&balance)
	if err != nil {
		return mapError(err, fmt.Sprintf("failed to read balance of account %s", code))
	}

	_, err = r.q.ExecContext(ctx,
		`UPDATE accounts SET balance = ?, last_updated_at = ? WHERE code = ?;`,
		balance.Add(delta).String(), formatTimestamp(now), code,
	)
	return mapError(err, fmt.Sprintf("failed to update balance of account %s", code))
}
