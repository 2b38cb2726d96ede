package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/backoffice/internal/apperrors"
	"github.com/SscSPs/backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/backoffice/internal/models"
	"github.com/SscSPs/backoffice/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const accountColumns = `a.code, a.name, a.account_type, a.level, a.parent_code, a.is_system, a.status, a.balance,
	a.created_at, a.created_by, a.last_updated_at, a.last_updated_by,
	EXISTS (SELECT 1 FROM accounts c WHERE c.parent_code = a.code AND c.status = 'Active')`

type PgxAccountRepository struct {
	db DBTX
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(db DBTX) *PgxAccountRepository {
	return &PgxAccountRepository{db: db}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (domain.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.Code,
		&m.Name,
		&m.AccountType,
		&m.Level,
		&m.ParentCode,
		&m.IsSystem,
		&m.Status,
		&m.Balance,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.HasChildren,
	)
	if err != nil {
		return domain.Account{}, err
	}
	return mapping.ToDomainAccount(m), nil
}

func (r *PgxAccountRepository) queryAccounts(ctx context.Context, query string, args ...any) ([]domain.Account, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "failed to query accounts")
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

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (code, name, account_type, level, parent_code, is_system, status, balance,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.db.Exec(ctx, query,
		m.Code,
		m.Name,
		string(m.AccountType),
		m.Level,
		m.ParentCode,
		m.IsSystem,
		m.Status,
		m.Balance,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	return mapError(err, fmt.Sprintf("failed to save account %s", m.Code))
}

// FindAccountByCode retrieves an account by its code.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts a WHERE a.code = $1;`
	acc, err := scanAccount(r.db.QueryRow(ctx, query, code))
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("failed to find account %s", code))
	}
	return &acc, nil
}

// FindAccountsByCodes retrieves multiple accounts; unknown codes are absent from the map.
func (r *PgxAccountRepository) FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	if len(codes) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts a WHERE a.code = ANY($1);`
	accounts, err := r.queryAccounts(ctx, query, codes)
	if err != nil {
		return nil, err
	}
	return toAccountMap(accounts), nil
}

// FindAccountsByCodesForUpdate retrieves accounts and locks their rows until
// the transaction ends. Rows are locked in code order so concurrent postings
// touching the same accounts cannot deadlock.
func (r *PgxAccountRepository) FindAccountsByCodesForUpdate(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	if len(codes) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts a WHERE a.code = ANY($1) ORDER BY a.code FOR UPDATE OF a;`
	accounts, err := r.queryAccounts(ctx, query, codes)
	if err != nil {
		return nil, err
	}
	return toAccountMap(accounts), nil
}

func toAccountMap(accounts []domain.Account) map[string]domain.Account {
	m := make(map[string]domain.Account, len(accounts))
	for _, acc := range accounts {
		m[acc.Code] = acc
	}
	return m
}

// ListAccounts retrieves the chart of accounts ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts a`
	if !includeInactive {
		query += ` WHERE a.status = 'Active'`
	}
	return r.queryAccounts(ctx, query+` ORDER BY a.code;`)
}

// HasActiveChildren reports whether any active account names code as parent.
func (r *PgxAccountRepository) HasActiveChildren(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM accounts WHERE parent_code = $1 AND status = 'Active');`, code,
	).Scan(&exists)
	if err != nil {
		return false, mapError(err, fmt.Sprintf("failed to check children of account %s", code))
	}
	return exists, nil
}

// UpdateAccount writes the editable fields. Balance and type are never touched here.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		UPDATE accounts
		SET name = $2, parent_code = $3, level = $4, last_updated_at = $5, last_updated_by = $6
		WHERE code = $1;
	`
	cmdTag, err := r.db.Exec(ctx, query, m.Code, m.Name, m.ParentCode, m.Level, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return mapError(err, fmt.Sprintf("failed to update account %s", m.Code))
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("account %s: %w", m.Code, apperrors.ErrNotFound)
	}
	return nil
}

// DeactivateAccount marks an active account inactive.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, code string, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET status = 'Inactive', last_updated_at = $2, last_updated_by = $3
		WHERE code = $1 AND status = 'Active';
	`
	cmdTag, err := r.db.Exec(ctx, query, code, now, userID)
	if err != nil {
		return mapError(err, fmt.Sprintf("failed to deactivate account %s", code))
	}
	if cmdTag.RowsAffected() == 0 {
		// Either the account does not exist or it was already inactive.
		if _, findErr := r.FindAccountByCode(ctx, code); findErr != nil {
			return findErr
		}
		return fmt.Errorf("account %s is already inactive: %w", code, apperrors.ErrInvalidState)
	}
	return nil
}

// AddToBalance adds delta to the stored balance of one account.
func (r *PgxAccountRepository) AddToBalance(ctx context.Context, code string, delta decimal.Decimal, now time.Time) error {
	query := `
		UPDATE accounts
		SET balance = balance + $2, last_updated_at = $3
		WHERE code = $1;
	`
	cmdTag, err := r.db.Exec(ctx, query, code, delta, now)
	if err != nil {
		return mapError(err, fmt.Sprintf("failed to update balance of account %s", code))
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s not found during balance update", apperrors.ErrNotFound, code)
	}
	return nil
}
