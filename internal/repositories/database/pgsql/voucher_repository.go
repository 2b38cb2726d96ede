package pgsql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/SscSPs/backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/backoffice/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

type PgxVoucherRepository struct {
	db DBTX
}

func newPgxVoucherRepository(db DBTX) *PgxVoucherRepository {
	return &PgxVoucherRepository{db: db}
}

var _ portsrepo.CashVoucherRepository = (*PgxVoucherRepository)(nil)

const receiptColumns = `id, voucher_no, date, total_amount, deposit_account, memo, journal_id,
	created_at, created_by, last_updated_at, last_updated_by`

const paymentColumns = `id, voucher_no, date, total_amount, paid_from_account, payee_name, check_no, is_blank_check, memo, journal_id,
	created_at, created_by, last_updated_at, last_updated_by`

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func scanReceipt(row pgx.Row) (domain.CashReceipt, error) {
	var rc domain.CashReceipt
	var memo sql.NullString
	err := row.Scan(
		&rc.ID,
		&rc.VoucherNo,
		&rc.Date,
		&rc.TotalAmount,
		&rc.DepositAccount,
		&memo,
		&rc.JournalID,
		&rc.CreatedAt,
		&rc.CreatedBy,
		&rc.LastUpdatedAt,
		&rc.LastUpdatedBy,
	)
	rc.Memo = memo.String
	return rc, err
}

func scanPayment(row pgx.Row) (domain.CashPayment, error) {
	var p domain.CashPayment
	var payee, checkNo, memo sql.NullString
	err := row.Scan(
		&p.ID,
		&p.VoucherNo,
		&p.Date,
		&p.TotalAmount,
		&p.PaidFromAccount,
		&payee,
		&checkNo,
		&p.IsBlankCheck,
		&memo,
		&p.JournalID,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	p.PayeeName, p.CheckNo, p.Memo = payee.String, checkNo.String, memo.String
	return p, err
}

func (r *PgxVoucherRepository) insertItems(ctx context.Context, table, parentColumn, parentID string, items []domain.CashVoucherItem) error {
	query := `INSERT INTO ` + table + ` (` + parentColumn + `, line_no, account_code, amount, memo, department, project)
		VALUES ($1, $2, $3, $4, $5, $6, $7);`
	batch := &pgx.Batch{}
	for _, it := range items {
		batch.Queue(query, parentID, it.LineNo, it.AccountCode, it.Amount,
			nullString(it.Memo), nullString(it.Department), nullString(it.Project))
	}
	br := r.db.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil && batchErr == nil {
			batchErr = mapError(err, fmt.Sprintf("failed to insert item %d of voucher %s", i+1, parentID))
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = mapError(err, fmt.Sprintf("failed to close item batch of voucher %s", parentID))
	}
	return batchErr
}

func (r *PgxVoucherRepository) findItems(ctx context.Context, table, parentColumn, parentID string) ([]domain.CashVoucherItem, error) {
	query := `SELECT line_no, account_code, amount, memo, department, project FROM ` + table +
		` WHERE ` + parentColumn + ` = $1 ORDER BY line_no;`
	rows, err := r.db.Query(ctx, query, parentID)
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("failed to query items of voucher %s", parentID))
	}
	defer rows.Close()

	items := []domain.CashVoucherItem{}
	for rows.Next() {
		var it domain.CashVoucherItem
		var memo, dept, project sql.NullString
		if err := rows.Scan(&it.LineNo, &it.AccountCode, &it.Amount, &memo, &dept, &project); err != nil {
			return nil, fmt.Errorf("failed to scan voucher item: %w", err)
		}
		it.Memo, it.Department, it.Project = memo.String, dept.String, project.String
		items = append(items, it)
	}
	return items, rows.Err()
}

// SaveCashReceipt inserts a receipt header with its items.
func (r *PgxVoucherRepository) SaveCashReceipt(ctx context.Context, receipt domain.CashReceipt) error {
	query := `INSERT INTO cash_bank_receipts (` + receiptColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`
	_, err := r.db.Exec(ctx, query,
		receipt.ID,
		receipt.VoucherNo,
		receipt.Date,
		receipt.TotalAmount,
		receipt.DepositAccount,
		nullString(receipt.Memo),
		receipt.JournalID,
		receipt.CreatedAt,
		receipt.CreatedBy,
		receipt.LastUpdatedAt,
		receipt.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, fmt.Sprintf("failed to save cash receipt %s", receipt.VoucherNo))
	}
	return r.insertItems(ctx, "cash_bank_receipt_items", "receipt_id", receipt.ID, receipt.Items)
}

// FindCashReceiptByID loads a receipt with its items.
func (r *PgxVoucherRepository) FindCashReceiptByID(ctx context.Context, id string) (*domain.CashReceipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM cash_bank_receipts WHERE id = $1;`
	receipt, err := scanReceipt(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("failed to find cash receipt %s", id))
	}
	if receipt.Items, err = r.findItems(ctx, "cash_bank_receipt_items", "receipt_id", id); err != nil {
		return nil, err
	}
	return &receipt, nil
}

// ListCashReceipts lists receipt headers newest first, without items.
func (r *PgxVoucherRepository) ListCashReceipts(ctx context.Context, limit, offset int) ([]domain.CashReceipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM cash_bank_receipts ORDER BY date DESC, voucher_no DESC LIMIT $1 OFFSET $2;`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, mapError(err, "failed to list cash receipts")
	}
	defer rows.Close()

	receipts := []domain.CashReceipt{}
	for rows.Next() {
		rc, err := scanReceipt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cash receipt: %w", err)
		}
		receipts = append(receipts, rc)
	}
	return receipts, rows.Err()
}

// SaveCashPayment inserts a payment header with its items.
func (r *PgxVoucherRepository) SaveCashPayment(ctx context.Context, payment domain.CashPayment) error {
	query := `INSERT INTO cash_bank_payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);`
	_, err := r.db.Exec(ctx, query,
		payment.ID,
		payment.VoucherNo,
		payment.Date,
		payment.TotalAmount,
		payment.PaidFromAccount,
		nullString(payment.PayeeName),
		nullString(payment.CheckNo),
		payment.IsBlankCheck,
		nullString(payment.Memo),
		payment.JournalID,
		payment.CreatedAt,
		payment.CreatedBy,
		payment.LastUpdatedAt,
		payment.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, fmt.Sprintf("failed to save cash payment %s", payment.VoucherNo))
	}
	return r.insertItems(ctx, "cash_bank_payment_items", "payment_id", payment.ID, payment.Items)
}

// FindCashPaymentByID loads a payment with its items.
func (r *PgxVoucherRepository) FindCashPaymentByID(ctx context.Context, id string) (*domain.CashPayment, error) {
	query := `SELECT ` + paymentColumns + ` FROM cash_bank_payments WHERE id = $1;`
	payment, err := scanPayment(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("failed to find cash payment %s", id))
	}
	if payment.Items, err = r.findItems(ctx, "cash_bank_payment_items", "payment_id", id); err != nil {
		return nil, err
	}
	return &payment, nil
}

// ListCashPayments lists payment headers newest first, without items.
func (r *PgxVoucherRepository) ListCashPayments(ctx context.Context, limit, offset int) ([]domain.CashPayment, error) {
	query := `SELECT ` + paymentColumns + ` FROM cash_bank_payments ORDER BY date DESC, voucher_no DESC LIMIT $1 OFFSET $2;`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, mapError(err, "failed to list cash payments")
	}
	defer rows.Close()

	payments := []domain.CashPayment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cash payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// CountVouchersByPrefix counts numbers starting with prefix in the family's table.
func (r *PgxVoucherRepository) CountVouchersByPrefix(ctx context.Context, family domain.VoucherFamily, prefix string) (int64, error) {
	var query string
	switch family {
	case domain.FamilyCashReceipt:
		query = `SELECT COUNT(*) FROM cash_bank_receipts WHERE voucher_no LIKE $1;`
	case domain.FamilyCashPayment:
		query = `SELECT COUNT(*) FROM cash_bank_payments WHERE voucher_no LIKE $1;`
	default:
		query = `SELECT COUNT(*) FROM journals WHERE number LIKE $1;`
	}
	var count int64
	if err := r.db.QueryRow(ctx, query, likePrefix(prefix)).Scan(&count); err != nil {
		return 0, mapError(err, fmt.Sprintf("failed to count %s with prefix %s", family, prefix))
	}
	return count, nil
}

type PgxSequenceRepository struct {
	db DBTX
}

func newPgxSequenceRepository(db DBTX) *PgxSequenceRepository {
	return &PgxSequenceRepository{db: db}
}

var _ portsrepo.SequenceRepository = (*PgxSequenceRepository)(nil)

// LockSequence creates the counter on first use and locks its row.
func (r *PgxSequenceRepository) LockSequence(ctx context.Context, scope string) (int64, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO number_sequences (scope, last_value) VALUES ($1, 0) ON CONFLICT (scope) DO NOTHING;`, scope)
	if err != nil {
		return 0, mapError(err, fmt.Sprintf("failed to create sequence %s", scope))
	}
	var last int64
	err = r.db.QueryRow(ctx, `SELECT last_value FROM number_sequences WHERE scope = $1 FOR UPDATE;`, scope).Scan(&last)
	if err != nil {
		return 0, mapError(err, fmt.Sprintf("failed to lock sequence %s", scope))
	}
	return last, nil
}

// SetSequence stores the last allocated value of scope.
func (r *PgxSequenceRepository) SetSequence(ctx context.Context, scope string, value int64) error {
	_, err := r.db.Exec(ctx, `UPDATE number_sequences SET last_value = $2 WHERE scope = $1;`, scope, value)
	return mapError(err, fmt.Sprintf("failed to update sequence %s", scope))
}
