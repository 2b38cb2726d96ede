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
)

type PgxTaxInvoiceRepository struct {
	db DBTX
}

func newPgxTaxInvoiceRepository(db DBTX) *PgxTaxInvoiceRepository {
	return &PgxTaxInvoiceRepository{db: db}
}

var _ portsrepo.TaxInvoiceRepository = (*PgxTaxInvoiceRepository)(nil)

const taxInvoiceColumns = `id, tax_invoice_no, date, tax_period, customer_id, trade_invoice_id, dpp, ppn, total, status, journal_id,
	created_at, created_by, last_updated_at, last_updated_by`

const purchaseTaxInvoiceColumns = `id, tax_invoice_no, date, received_date, tax_period, supplier_name, po_no, dpp, ppn, total, status, journal_id,
	created_at, created_by, last_updated_at, last_updated_by`

func scanTaxInvoice(row pgx.Row) (domain.TaxInvoice, error) {
	var ti domain.TaxInvoice
	var period, journalID sql.NullString
	err := row.Scan(
		&ti.ID,
		&ti.TaxInvoiceNo,
		&ti.Date,
		&period,
		&ti.CustomerID,
		&ti.TradeInvoiceID,
		&ti.DPP,
		&ti.PPN,
		&ti.Total,
		&ti.Status,
		&journalID,
		&ti.CreatedAt,
		&ti.CreatedBy,
		&ti.LastUpdatedAt,
		&ti.LastUpdatedBy,
	)
	ti.TaxPeriod, ti.JournalID = period.String, journalID.String
	return ti, err
}

func scanPurchaseTaxInvoice(row pgx.Row) (domain.PurchaseTaxInvoice, error) {
	var pi domain.PurchaseTaxInvoice
	var period, poNo, journalID sql.NullString
	err := row.Scan(
		&pi.ID,
		&pi.TaxInvoiceNo,
		&pi.Date,
		&pi.ReceivedDate,
		&period,
		&pi.SupplierName,
		&poNo,
		&pi.DPP,
		&pi.PPN,
		&pi.Total,
		&pi.Status,
		&journalID,
		&pi.CreatedAt,
		&pi.CreatedBy,
		&pi.LastUpdatedAt,
		&pi.LastUpdatedBy,
	)
	pi.TaxPeriod, pi.PONo, pi.JournalID = period.String, poNo.String, journalID.String
	return pi, err
}

func (r *PgxTaxInvoiceRepository) SaveTaxInvoice(ctx context.Context, ti domain.TaxInvoice) error {
	query := `INSERT INTO tax_invoices (` + taxInvoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);`
	_, err := r.db.Exec(ctx, query,
		ti.ID,
		ti.TaxInvoiceNo,
		ti.Date,
		nullString(ti.TaxPeriod),
		ti.CustomerID,
		ti.TradeInvoiceID,
		ti.DPP,
		ti.PPN,
		ti.Total,
		string(ti.Status),
		nullString(ti.JournalID),
		ti.CreatedAt,
		ti.CreatedBy,
		ti.LastUpdatedAt,
		ti.LastUpdatedBy,
	)
	return mapError(err, fmt.Sprintf("failed to save tax invoice %s", ti.TaxInvoiceNo))
}

func (r *PgxTaxInvoiceRepository) FindTaxInvoiceByID(ctx context.Context, id string) (*domain.TaxInvoice, error) {
	ti, err := scanTaxInvoice(r.db.QueryRow(ctx, `SELECT `+taxInvoiceColumns+` FROM tax_invoices WHERE id = $1;`, id))
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("failed to find tax invoice %s", id))
	}
	return &ti, nil
}

func (r *PgxTaxInvoiceRepository) FindTaxInvoiceByTradeInvoice(ctx context.Context, tradeInvoiceID string) (*domain.TaxInvoice, error) {
	query := `SELECT ` + taxInvoiceColumns + ` FROM tax_invoices WHERE trade_invoice_id = $1;`
	ti, err := scanTaxInvoice(r.db.QueryRow(ctx, query, tradeInvoiceID))
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("failed to find tax invoice of trade invoice %s", tradeInvoiceID))
	}
	return &ti, nil
}

func (r *PgxTaxInvoiceRepository) ListTaxInvoices(ctx context.Context) ([]domain.TaxInvoice, error) {
	rows, err := r.db.Query(ctx, `SELECT `+taxInvoiceColumns+` FROM tax_invoices ORDER BY date DESC, tax_invoice_no;`)
	if err != nil {
		return nil, mapError(err, "failed to list tax invoices")
	}
	defer rows.Close()

	invoices := []domain.TaxInvoice{}
	for rows.Next() {
		ti, err := scanTaxInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tax invoice: %w", err)
		}
		invoices = append(invoices, ti)
	}
	return invoices, rows.Err()
}

func (r *PgxTaxInvoiceRepository) MarkTaxInvoicePosted(ctx context.Context, id string, journalID string) error {
	return r.markPosted(ctx, "tax_invoices", id, journalID)
}

func (r *PgxTaxInvoiceRepository) SavePurchaseTaxInvoice(ctx context.Context, pi domain.PurchaseTaxInvoice) error {
	query := `INSERT INTO purchase_tax_invoices (` + purchaseTaxInvoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);`
	_, err := r.db.Exec(ctx, query,
		pi.ID,
		pi.TaxInvoiceNo,
		pi.Date,
		pi.ReceivedDate,
		nullString(pi.TaxPeriod),
		pi.SupplierName,
		nullString(pi.PONo),
		pi.DPP,
		pi.PPN,
		pi.Total,
		string(pi.Status),
		nullString(pi.JournalID),
		pi.CreatedAt,
		pi.CreatedBy,
		pi.LastUpdatedAt,
		pi.LastUpdatedBy,
	)
	return mapError(err, fmt.Sprintf("failed to save purchase tax invoice %s", pi.TaxInvoiceNo))
}

func (r *PgxTaxInvoiceRepository) FindPurchaseTaxInvoiceByID(ctx context.Context, id string) (*domain.PurchaseTaxInvoice, error) {
	query := `SELECT ` + purchaseTaxInvoiceColumns + ` FROM purchase_tax_invoices WHERE id = $1;`
	pi, err := scanPurchaseTaxInvoice(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("failed to find purchase tax invoice %s", id))
	}
	return &pi, nil
}

func (r *PgxTaxInvoiceRepository) ListPurchaseTaxInvoices(ctx context.Context) ([]domain.PurchaseTaxInvoice, error) {
	query := `SELECT ` + purchaseTaxInvoiceColumns + ` FROM purchase_tax_invoices ORDER BY date DESC, tax_invoice_no;`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, mapError(err, "failed to list purchase tax invoices")
	}
	defer rows.Close()

	invoices := []domain.PurchaseTaxInvoice{}
	for rows.Next() {
		pi, err := scanPurchaseTaxInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan purchase tax invoice: %w", err)
		}
		invoices = append(invoices, pi)
	}
	return invoices, rows.Err()
}

func (r *PgxTaxInvoiceRepository) MarkPurchaseTaxInvoicePosted(ctx context.Context, id string, journalID string) error {
	return r.markPosted(ctx, "purchase_tax_invoices", id, journalID)
}

func (r *PgxTaxInvoiceRepository) markPosted(ctx context.Context, table, id, journalID string) error {
	query := `UPDATE ` + table + ` SET status = 'Posted', journal_id = $2, last_updated_at = $3 WHERE id = $1 AND status = 'Draft';`
	cmdTag, err := r.db.Exec(ctx, query, id, nullString(journalID), time.Now())
	if err != nil {
		return mapError(err, fmt.Sprintf("failed to post %s %s", table, id))
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%s %s is not a draft: %w", table, id, apperrors.ErrInvalidState)
	}
	return nil
}
