package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/SscSPs/backoffice/internal/apperrors"
	"github.com/SscSPs/backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/backoffice/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// SQLiteSalesRepository stores customers, discounts and trade invoices.
type SQLiteSalesRepository struct {
	q querier
}

func newSQLiteSalesRepository(q querier) *SQLiteSalesRepository {
	return &SQLiteSalesRepository{q: q}
}

var (
	_ portsrepo.CustomerRepository = (*SQLiteSalesRepository)(nil)
	_ portsrepo.DiscountRepository = (*SQLiteSalesRepository)(nil)
	_ portsrepo.InvoiceRepository  = (*SQLiteSalesRepository)(nil)
)

const customerColumns = `id, name, email, phone, address, tax_id, created_at, created_by, last_updated_at, last_updated_by`

func scanCustomer(s rowScanner) (domain.Customer, error) {
	var c domain.Customer
	var email, phone, address, taxID sql.NullString
	var createdAt, updatedAt string
	err := s.Scan(&c.ID, &c.Name, &email, &phone, &address, &taxID, &createdAt, &c.CreatedBy, &updatedAt, &c.LastUpdatedBy)
	if err != nil {
		return domain.Customer{}, err
	}
	c.Email, c.Phone, c.Address, c.TaxID = email.String, phone.String, address.String, taxID.String
	if c.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return domain.Customer{}, err
	}
	if c.LastUpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return domain.Customer{}, err
	}
	return c, nil
}

func (r *SQLiteSalesRepository) SaveCustomer(ctx context.Context, c domain.Customer) error {
	query := `INSERT INTO customers (` + customerColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`
	_, err := r.q.ExecContext(ctx, query,
		c.ID,
		c.Name,
		nullString(c.Email),
		nullString(c.Phone),
		nullString(c.Address),
		nullString(c.TaxID),
		formatTimestamp(c.CreatedAt),
		c.CreatedBy,
		formatTimestamp(c.LastUpdatedAt),
		c.LastUpdatedBy,
	)
	return mapError(err, fmt.Sprintf("failed to save customer %s", c.Name))
}

func (r *SQLiteSalesRepository) FindCustomerByID(ctx context.Context, id string) (*domain.Customer, error) {
	c, err := scanCustomer(r.q.QueryRowContext(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = ?;`, id))
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("failed to find customer %s", id))
	}
	return &c, nil
}

func (r *SQLiteSalesRepository) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY name;`)
	if err != nil {
		return nil, mapError(err, "failed to list customers")
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *SQLiteSalesRepository) SaveDiscount(ctx context.Context, d domain.Discount) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO discounts (code, name, percentage, account_code) VALUES (?, ?, ?, ?);`,
		d.Code, d.Name, d.Percentage.String(), d.AccountCode,
	)
	return mapError(err, fmt.Sprintf("failed to save discount %s", d.Code))
}

func (r *SQLiteSalesRepository) FindDiscountByCode(ctx context.Context, code string) (*domain.Discount, error) {
	var d domain.Discount
	err := r.q.QueryRowContext(ctx,
		`SELECT code, name, percentage, account_code FROM discounts WHERE code = ?;`, code,
	).Scan(&d.Code, &d.Name, &d.Percentage, &d.AccountCode)
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("failed to find discount %s", code))
	}
	return &d, nil
}

func (r *SQLiteSalesRepository) ListDiscounts(ctx context.Context) ([]domain.Discount, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT code, name, percentage, account_code FROM discounts ORDER BY code;`)
	if err != nil {
		return nil, mapError(err, "failed to list discounts")
	}
	defer rows.Close()

	discounts := []domain.Discount{}
	for rows.Next() {
		var d domain.Discount
		if err := rows.Scan(&d.Code, &d.Name, &d.Percentage, &d.AccountCode); err != nil {
			return nil, fmt.Errorf("failed to scan discount: %w", err)
		}
		discounts = append(discounts, d)
	}
	return discounts, rows.Err()
}

const invoiceColumns = `id, invoice_no, customer_id, date, due_date, description, total_amount, paid_amount, status, journal_id,
	created_at, created_by, last_updated_at, last_updated_by`

func scanInvoice(s rowScanner) (domain.Invoice, error) {
	var inv domain.Invoice
	var date, createdAt, updatedAt string
	var dueDate, description, journalID sql.NullString
	err := s.Scan(
		&inv.ID,
		&inv.InvoiceNo,
		&inv.CustomerID,
		&date,
		&dueDate,
		&description,
		&inv.TotalAmount,
		&inv.PaidAmount,
		&inv.Status,
		&journalID,
		&createdAt,
		&inv.CreatedBy,
		&updatedAt,
		&inv.LastUpdatedBy,
	)
	if err != nil {
		return domain.Invoice{}, err
	}
	inv.Description, inv.JournalID = description.String, journalID.String
	if inv.Date, err = parseDate(date); err != nil {
		return domain.Invoice{}, err
	}
	if inv.DueDate, err = parseNullDate(dueDate); err != nil {
		return domain.Invoice{}, err
	}
	if inv.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return domain.Invoice{}, err
	}
	if inv.LastUpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return domain.Invoice{}, err
	}
	return inv, nil
}

func (r *SQLiteSalesRepository) SaveInvoice(ctx context.Context, inv domain.Invoice) error {
	query := `INSERT INTO invoices (` + invoiceColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`
	_, err := r.q.ExecContext(ctx, query,
		inv.ID,
		inv.InvoiceNo,
		inv.CustomerID,
		formatDate(inv.Date),
		nullDate(inv.DueDate),
		nullString(inv.Description),
		inv.TotalAmount.String(),
		inv.PaidAmount.String(),
		string(inv.Status),
		nullString(inv.JournalID),
		formatTimestamp(inv.CreatedAt),
		inv.CreatedBy,
		formatTimestamp(inv.LastUpdatedAt),
		inv.LastUpdatedBy,
	)
	return mapError(err, fmt.Sprintf("failed to save invoice %s", inv.InvoiceNo))
}

func (r *SQLiteSalesRepository) FindInvoiceByID(ctx context.Context, id string) (*domain.Invoice, error) {
	inv, err := scanInvoice(r.q.QueryRowContext(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = ?;`, id))
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("failed to find invoice %s", id))
	}
	return &inv, nil
}

// FindInvoiceByIDForUpdate reads inside the current transaction, which holds the write lock.
func (r *SQLiteSalesRepository) FindInvoiceByIDForUpdate(ctx context.Context, id string) (*domain.Invoice, error) {
	return r.FindInvoiceByID(ctx, id)
}

func (r *SQLiteSalesRepository) ListInvoices(ctx context.Context, customerID string, openOnly bool) ([]domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE 1 = 1`
	args := []any{}
	if customerID != "" {
		query += ` AND customer_id = ?`
		args = append(args, customerID)
	}
	if openOnly {
		query += ` AND status IN (?, ?)`
		args = append(args, string(domain.InvoiceUnpaid), string(domain.InvoicePartiallyPaid))
	}
	query += ` ORDER BY COALESCE(due_date, date), invoice_no;`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "failed to list invoices")
	}
	defer rows.Close()

	invoices := []domain.Invoice{}
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

func (r *SQLiteSalesRepository) UpdateInvoicePayment(ctx context.Context, id string, paid decimal.Decimal, status domain.InvoiceStatus) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE invoices SET paid_amount = ?, status = ?, last_updated_at = ? WHERE id = ?;`,
		paid.String(), string(status), formatTimestamp(time.Now()), id,
	)
	if err != nil {
		return mapError(err, fmt.Sprintf("failed to update payment of invoice %s", id))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("invoice %s: %w", id, apperrors.ErrNotFound)
	}
	return nil
}
