package pgsql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/SscSPs/backoffice/internal/apperrors"
	"github.com/SscSPs/backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/backoffice/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// PgxSalesRepository stores customers, discounts and trade invoices.
type PgxSalesRepository struct {
	db DBTX
}

func newPgxSalesRepository(db DBTX) *PgxSalesRepository {
	return &PgxSalesRepository{db: db}
}

var (
	_ portsrepo.CustomerRepository = (*PgxSalesRepository)(nil)
	_ portsrepo.DiscountRepository = (*PgxSalesRepository)(nil)
	_ portsrepo.InvoiceRepository  = (*PgxSalesRepository)(nil)
)

const customerColumns = `id, name, email, phone, address, tax_id, created_at, created_by, last_updated_at, last_updated_by`

func scanCustomer(row pgx.Row) (domain.Customer, error) {
	var c domain.Customer
	var email, phone, address, taxID sql.NullString
	err := row.Scan(&c.ID, &c.Name, &email, &phone, &address, &taxID, &c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy)
	c.Email, c.Phone, c.Address, c.TaxID = email.String, phone.String, address.String, taxID.String
	return c, err
}

func (r *PgxSalesRepository) SaveCustomer(ctx context.Context, c domain.Customer) error {
	query := `INSERT INTO customers (` + customerColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`
	_, err := r.db.Exec(ctx, query,
		c.ID,
		c.Name,
		nullString(c.Email),
		nullString(c.Phone),
		nullString(c.Address),
		nullString(c.TaxID),
		c.CreatedAt,
		c.CreatedBy,
		c.LastUpdatedAt,
		c.LastUpdatedBy,
	)
	return mapError(err, fmt.Sprintf("failed to save customer %s", c.Name))
}

func (r *PgxSalesRepository) FindCustomerByID(ctx context.Context, id string) (*domain.Customer, error) {
	c, err := scanCustomer(r.db.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1;`, id))
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("failed to find customer %s", id))
	}
	return &c, nil
}

func (r *PgxSalesRepository) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	rows, err := r.db.Query(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY name;`)
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

func (r *PgxSalesRepository) SaveDiscount(ctx context.Context, d domain.Discount) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO discounts (code, name, percentage, account_code) VALUES ($1, $2, $3, $4);`,
		d.Code, d.Name, d.Percentage, d.AccountCode,
	)
	return mapError(err, fmt.Sprintf("failed to save discount %s", d.Code))
}

func (r *PgxSalesRepository) FindDiscountByCode(ctx context.Context, code string) (*domain.Discount, error) {
	var d domain.Discount
	err := r.db.QueryRow(ctx,
		`SELECT code, name, percentage, account_code FROM discounts WHERE code = $1;`, code,
	).Scan(&d.Code, &d.Name, &d.Percentage, &d.AccountCode)
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("failed to find discount %s", code))
	}
	return &d, nil
}

func (r *PgxSalesRepository) ListDiscounts(ctx context.Context) ([]domain.Discount, error) {
	rows, err := r.db.Query(ctx, `SELECT code, name, percentage, account_code FROM discounts ORDER BY code;`)
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

func scanInvoice(row pgx.Row) (domain.Invoice, error) {
	var inv domain.Invoice
	var description, journalID sql.NullString
	err := row.Scan(
		&inv.ID,
		&inv.InvoiceNo,
		&inv.CustomerID,
		&inv.Date,
		&inv.DueDate,
		&description,
		&inv.TotalAmount,
		&inv.PaidAmount,
		&inv.Status,
		&journalID,
		&inv.CreatedAt,
		&inv.CreatedBy,
		&inv.LastUpdatedAt,
		&inv.LastUpdatedBy,
	)
	inv.Description, inv.JournalID = description.String, journalID.String
	return inv, err
}

func (r *PgxSalesRepository) SaveInvoice(ctx context.Context, inv domain.Invoice) error {
	query := `INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);`
	_, err := r.db.Exec(ctx, query,
		inv.ID,
		inv.InvoiceNo,
		inv.CustomerID,
		inv.Date,
		inv.DueDate,
		nullString(inv.Description),
		inv.TotalAmount,
		inv.PaidAmount,
		string(inv.Status),
		nullString(inv.JournalID),
		inv.CreatedAt,
		inv.CreatedBy,
		inv.LastUpdatedAt,
		inv.LastUpdatedBy,
	)
	return mapError(err, fmt.Sprintf("failed to save invoice %s", inv.InvoiceNo))
}

func (r *PgxSalesRepository) FindInvoiceByID(ctx context.Context, id string) (*domain.Invoice, error) {
	inv, err := scanInvoice(r.db.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1;`, id))
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("failed to find invoice %s", id))
	}
	return &inv, nil
}

func (r *PgxSalesRepository) FindInvoiceByIDForUpdate(ctx context.Context, id string) (*domain.Invoice, error) {
	inv, err := scanInvoice(r.db.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1 FOR UPDATE;`, id))
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("failed to lock invoice %s", id))
	}
	return &inv, nil
}

func (r *PgxSalesRepository) ListInvoices(ctx context.Context, customerID string, openOnly bool) ([]domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE ($1 = '' OR customer_id::text = $1)
		  AND (NOT $2 OR status IN ('Unpaid', 'Partially Paid'))
		ORDER BY COALESCE(due_date, date), invoice_no;
	`
	rows, err := r.db.Query(ctx, query, customerID, openOnly)
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

func (r *PgxSalesRepository) UpdateInvoicePayment(ctx context.Context, id string, paid decimal.Decimal, status domain.InvoiceStatus) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE invoices SET paid_amount = $2, status = $3, last_updated_at = $4 WHERE id = $1;`,
		id, paid, string(status), time.Now(),
	)
	if err != nil {
		return mapError(err, fmt.Sprintf("failed to update payment of invoice %s", id))
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("invoice %s: %w", id, apperrors.ErrNotFound)
	}
	return nil
}
