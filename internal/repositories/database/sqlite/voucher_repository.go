package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/SscSPs/backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/backoffice/internal/core/ports/repositories"
)

type SQLiteVoucherRepository struct {
	q querier
}

func newSQLiteVoucherRepository(q querier) *SQLiteVoucherRepository {
	return &SQLiteVoucherRepository{q: q}
}

var _ portsrepo.CashVoucherRepository = (*SQLiteVoucherRepository)(nil)

const receiptColumns = `id, voucher_no, date, total_amount, deposit_account, memo, journal_id,
	created_at, created_by, last_updated_at, last_updated_by`

const paymentColumns = `id, voucher_no, date, total_amount, paid_from_account, payee_name, check_no, is_blank_check, memo, journal_id,
	created_at, created_by, last_updated_at, last_updated_by`

func scanReceipt(s rowScanner) (domain.CashReceipt, error) {
	var rc domain.CashReceipt
	var date, createdAt, updatedAt string
	var memo sql.NullString
	err := s.Scan(
		&rc.ID,
		&rc.VoucherNo,
		&date,
		&rc.TotalAmount,
		&rc.DepositAccount,
		&memo,
		&rc.JournalID,
		&createdAt,
		&rc.CreatedBy,
		&updatedAt,
		&rc.LastUpdatedBy,
	)
	if err != nil {
		return domain.CashReceipt{}, err
	}
	rc.Memo = memo.String
	if rc.Date, err = parseDate(date); err != nil {
		return domain.CashReceipt{}, err
	}
	if rc.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return domain.CashReceipt{}, err
	}
	if rc.LastUpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return domain.CashReceipt{}, err
	}
	return rc, nil
}

func scanPayment(s rowScanner) (domain.CashPayment, error) {
	var p domain.CashPayment
	var date, createdAt, updatedAt string
	var payee, checkNo, memo sql.NullString
	err := s.Scan(
		&p.ID,
		&p.VoucherNo,
		&date,
		&p.TotalAmount,
		&p.PaidFromAccount,
		&payee,
		&checkNo,
		&p.IsBlankCheck,
		&memo,
		&p.JournalID,
		&createdAt,
		&p.CreatedBy,
		&updatedAt,
		&p.LastUpdatedBy,
	)
	if err != nil {
		return domain.CashPayment{}, err
	}
	p.PayeeName, p.CheckNo, p.Memo = payee.String, checkNo.String, memo.String
	if p.Date, err = parseDate(date); err != nil {
		return domain.CashPayment{}, err
	}
	if p.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return domain.CashPayment{}, err
	}
	if p.LastUpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return domain.CashPayment{}, err
	}
	return p, nil
}

func (r *SQLiteVoucherRepository) insertItems(ctx context.Context, table, parentColumn, parentID string, items []domain.CashVoucherItem) error {
	query := `INSERT INTO ` + table + ` (` + parentColumn + `, line_no, account_code, amount, memo, department, project)
		VALUES (?, ?, ?, ?, ?, ?, ?);`
	for _, it := range items {
		_, err := r.q.ExecContext(ctx, query,
			parentID,
			it.LineNo,
			it.AccountCode,
			it.Amount.String(),
			nullString(it.Memo),
			nullString(it.Department),
			nullString(it.Project),
		)
		if err != nil {
			return mapError(err, fmt.Sprintf("failed to insert item %d of voucher %s", it.LineNo, parentID))
		}
	}
	return nil
}

func (r *SQLiteVoucherRepository) findItems(ctx context.Context, table, parentColumn, parentID string) ([]domain.CashVoucherItem, error) {
	query := `SELECT line_no, account_code, amount, memo, department, project FROM ` + table +
		` WHERE ` + parentColumn + ` = ? ORDER BY line_no;`
	rows, err := r.q.QueryContext(ctx, query, parentID)
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
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating voucher items: %w", err)
	}
	return items, nil
}

// SaveCashReceipt inserts a receipt header with its items.
func (r *SQLiteVoucherRepository) SaveCashReceipt(ctx context.Context, receipt domain.CashReceipt) error {
	query := `INSERT INTO cash_bank_receipts (` + receiptColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`
	_, err := r.q.ExecContext(ctx, query,
		receipt.ID,
		receipt.VoucherNo,
		formatDate(receipt.Date),
		receipt.TotalAmount.String(),
		receipt.DepositAccount,
		nullString(receipt.Memo),
		receipt.JournalID,
		formatTimestamp(receipt.CreatedAt),
		receipt.CreatedBy,
		formatTimestamp(receipt.LastUpdatedAt),
		receipt.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, fmt.Sprintf("failed to save cash receipt %s", receipt.VoucherNo))
	}
	return r.insertItems(ctx, "cash_bank_receipt_items", "receipt_id", receipt.ID, receipt.Items)
}

// FindCashReceiptByID loads a receipt with its items.
func (r *SQLiteVoucherRepository) FindCashReceiptByID(ctx context.Context, id string) (*domain.CashReceipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM cash_bank_receipts WHERE id = ?;`
	receipt, err := scanReceipt(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("failed to find cash receipt %s", id))
	}
	if receipt.Items, err = r.findItems(ctx, "cash_bank_receipt_items", "receipt_id", id); err != nil {
		return nil, err
	}
	return &receipt, nil
}

// ListCashReceipts lists receipt headers newest first, without items.
func (r *SQLiteVoucherRepository) ListCashReceipts(ctx context.Context, limit, offset int) ([]domain.CashReceipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM cash_bank_receipts ORDER BY date DESC, voucher_no DESC LIMIT ? OFFSET ?;`
	rows, err := r.q.QueryContext(ctx, query, limit, offset)
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
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cash receipts: %w", err)
	}
	return receipts, nil
}

// SaveCashPayment inserts a payment header with its items.
func (r *SQLiteVoucherRepository) SaveCashPayment(ctx context.Context, payment domain.CashPayment) error {
	query := `INSERT INTO cash_bank_payments (` + paymentColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`
	_, err := r.q.ExecContext(ctx, query,
		payment.ID,
		payment.VoucherNo,
		formatDate(payment.Date),
		payment.TotalAmount.String(),
		payment.PaidFromAccount,
		nullString(payment.PayeeName),
		nullString(payment.CheckNo),
		payment.IsBlankCheck,
		nullString(payment.Memo),
		payment.JournalID,
		formatTimestamp(payment.CreatedAt),
		payment.CreatedBy,
		formatTimestamp(payment.LastUpdatedAt),
		payment.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, fmt.Sprintf("failed to save cash payment %s", payment.VoucherNo))
	}
	return r.insertItems(ctx, "cash_bank_payment_items", "payment_id", payment.ID, payment.Items)
}

// FindCashPaymentByID loads a payment with its items.
func (r *SQLiteVoucherRepository) FindCashPaymentByID(ctx context.Context, id string) (*domain.CashPayment, error) {
	query := `SELECT ` + paymentColumns + ` FROM cash_bank_payments WHERE id = ?;`
	payment, err := scanPayment(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("failed to find cash payment %s", id))
	}
	if payment.Items, err = r.findItems(ctx, "cash_bank_payment_items", "payment_id", id); err != nil {
		return nil, err
	}
	return &payment, nil
}

// ListCashPayments lists payment headers newest first, without items.
func (r *SQLiteVoucherRepository) ListCashPayments(ctx context.Context, limit, offset int) ([]domain.CashPayment, error) {
	query := `SELECT ` + paymentColumns + ` FROM cash_bank_payments ORDER BY date DESC, voucher_no DESC LIMIT ? OFFSET ?;`
	rows, err := r.q.QueryContext(ctx, query, limit, offset)
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
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cash payments: %w", err)
	}
	return payments, nil
}

// voucherNumberColumn maps a family onto its table and number column.
func voucherNumberColumn(family domain.VoucherFamily) (table, column string) {
	switch family {
	case domain.FamilyCashReceipt:
		return "cash_bank_receipts", "voucher_no"
	case domain.FamilyCashPayment:
		return "cash_bank_payments", "voucher_no"
	}
	return "journals", "number"
}

// CountVouchersByPrefix counts numbers starting with prefix in the family's table.
func (r *SQLiteVoucherRepository) CountVouchersByPrefix(ctx context.Context, family domain.VoucherFamily, prefix string) (int64, error) {
	table, column := voucherNumberColumn(family)
	var count int64
	query := `SELECT COUNT(*) FROM ` + table + ` WHERE substr(` + column + `, 1, ?) = ?;`
	if err := r.q.QueryRowContext(ctx, query, len(prefix), prefix).Scan(&count); err != nil {
		return 0, mapError(err, fmt.Sprintf("failed to count %s with prefix %s", table, prefix))
	}
	return count, nil
}

type SQLiteSequenceRepository struct {
	q querier
}

func newSQLiteSequenceRepository(q querier) *SQLiteSequenceRepository {
	return &SQLiteSequenceRepository{q: q}
}

var _ portsrepo.SequenceRepository = (*SQLiteSequenceRepository)(nil)

// LockSequence creates the counter on first use and returns its last value.
func (r *SQLiteSequenceRepository) LockSequence(ctx context.Context, scope string) (int64, error) {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO number_sequences (scope, last_value) VALUES (?, 0) ON CONFLICT (scope) DO NOTHING;`, scope)
	if err != nil {
		return 0, mapError(err, fmt.Sprintf("failed to create sequence %s", scope))
	}
	var last int64
	err = r.q.QueryRowContext(ctx, `SELECT last_value FROM number_sequences WHERE scope = ?;`, scope).Scan(&last)
	if err != nil {
		return 0, mapError(err, fmt.Sprintf("failed to read sequence %s", scope))
	}
	return last, nil
}

// SetSequence stores the last allocated value of scope.
func (r *SQLiteSequenceRepository) SetSequence(ctx context.Context, scope string, value int64) error {
	_, err := r.q.ExecContext(ctx, `UPDATE number_sequences SET last_value = ? WHERE scope = ?;`, value, scope)
	return mapError(err, fmt.Sprintf("failed to update sequence %s", scope))
}
