package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/SscSPs/backoffice/internal/apperrors"
	"github.com/SscSPs/backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/backoffice/internal/core/ports/repositories"
)

type SQLiteTaxInvoiceRepository struct {
	q querier
}

func newSQLiteTaxInvoiceRepository(q querier) *SQLiteTaxInvoiceRepository {
	return &SQLiteTaxInvoiceRepository{q: q}
}

var _ portsrepo.TaxInvoiceRepository = (*SQLiteTaxInvoiceRepository)(nil)

const taxInvoiceColumns = `id, tax_invoice_no, date, tax_period, customer_id, trade_invoice_id, dpp, ppn, total, status, journal_id,
	created_at, created_by, last_updated_at, last_updated_by`

const purchaseTaxInvoiceColumns = `id, tax_invoice_no, date, received_date, tax_period, supplier_name, po_no, dpp, ppn, total, status, journal_id,
	created_at, created_by, last_updated_at, last_updated_by`

func scanTaxInvoice(s rowScanner) (domain.TaxInvoice, error) {
	var ti domain.TaxInvoice
	var date, createdAt, updatedAt string
	var period, journalID sql.NullString
	err := s.Scan(
		&ti.ID,
		&ti.TaxInvoiceNo,
		&date,
		&period,
		&ti.CustomerID,
		&ti.TradeInvoiceID,
		&ti.DPP,
		&ti.PPN,
		&ti.Total,
		&ti.Status,
		&journalID,
		&createdAt,
		&ti.CreatedBy,
		&updatedAt,
		&ti.LastUpdatedBy,
	)
	if err != nil {
		return domain.TaxInvoice{}, err
	}
	ti.TaxPeriod, ti.JournalID = period.String, journalID.String
	if ti.Date, err = parseDate(date); err != nil {
		return domain.TaxInvoice{}, err
	}
	if ti.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return domain.TaxInvoice{}, err
	}
	if ti.LastUpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return domain.TaxInvoice{}, err
	}
	return ti, nil
}

func scanPurchaseTaxInvoice(s rowScanner) (domain.PurchaseTaxInvoice, error) {
	var pi domain.PurchaseTaxInvoice
	var date, createdAt, updatedAt string
	var received, period, poNo, journalID sql.NullString
	err := s.Scan(
		&pi.ID,
		&pi.TaxInvoiceNo,
		&date,
		&received,
		&period,
		&pi.SupplierName,
		&poNo,
		&pi.DPP,
		&pi.PPN,
		&pi.Total,
		&pi.Status,
		&journalID,
		&createdAt,
		&pi.CreatedBy,
		&updatedAt,
		&pi.LastUpdatedBy,
	)
	if err != nil {
		return domain.PurchaseTaxInvoice{}, err
	}
	pi.TaxPeriod, pi.PONo, pi.JournalID = period.String, poNo.String, journalID.String
	if pi.Date, err = parseDate(date); err != nil {
		return domain.PurchaseTaxInvoice{}, err
	}
	if pi.ReceivedDate, err = parseNullDate(received); err != nil {
		return domain.PurchaseTaxInvoice{}, err
	}
	if pi.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return domain.PurchaseTaxInvoice{}, err
	}
	if pi.LastUpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return domain.PurchaseTaxInvoice{}, err
	}
	return pi, nil
}

func (r *SQLiteTaxInvoiceRepository) SaveTaxInvoice(ctx context.Context, ti domain.TaxInvoice) error {
	query := `INSERT INTO tax_invoices (` + taxInvoiceColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`
	_, err := r.q.ExecContext(ctx, query,
		ti.ID,
		ti.TaxInvoiceNo,
		formatDate(ti.Date),
		nullString(ti.TaxPeriod),
		ti.CustomerID,
		ti.TradeInvoiceID,
		ti.DPP.String(),
		ti.PPN.String(),
		ti.Total.String(),
		string(ti.Status),
		nullString(ti.JournalID),
		formatTimestamp(ti.CreatedAt),
		ti.CreatedBy,
		formatTimestamp(ti.LastUpdatedAt),
		ti.LastUpdatedBy,
	)
	return mapError(err, fmt.Sprintf("failed to save tax invoice %s", ti.TaxInvoiceNo))
}

func (r *SQLiteTaxInvoiceRepository) FindTaxInvoiceByID(ctx context.Context, id string) (*domain.TaxInvoice, error) {
	ti, err := scanTaxInvoice(r.q.QueryRowContext(ctx, `SELECT `+taxInvoiceColumns+` FROM tax_invoices WHERE id = ?;`, id))
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("failed to find tax invoice %s", id))
	}
	return &ti, nil
}

func (r *SQLiteTaxInvoiceRepository) FindTaxInvoiceByTradeInvoice(ctx context.Context, tradeInvoiceID string) (*domain.TaxInvoice, error) {
	query := `SELECT ` + taxInvoiceColumns + ` FROM tax_invoices WHERE trade_invoice_id = ?;`
	ti, err := scanTaxInvoice(r.q.QueryRowContext(ctx, query, tradeInvoiceID))
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("failed to find tax invoice of trade invoice %s", tradeInvoiceID))
	}
	return &ti, nil
}

func (r *SQLiteTaxInvoiceRepository) ListTaxInvoices(ctx context.Context) ([]domain.TaxInvoice, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+taxInvoiceColumns+` FROM tax_invoices ORDER BY date DESC, tax_invoice_no;`)
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

// MarkTaxInvoicePosted flips a draft tax invoice to posted and links its journal.
func (r *SQLiteTaxInvoiceRepository) MarkTaxInvoicePosted(ctx context.Context, id string, journalID string) error {
	return r.markPosted(ctx, "tax_invoices", id, journalID)
}

func (r *SQLiteTaxInvoiceRepository) SavePurchaseTaxInvoice(ctx context.Context, pi domain.PurchaseTaxInvoice) error {
	query := `INSERT INTO purchase_tax_invoices (` + purchaseTaxInvoiceColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`
	_, err := r.q.ExecContext(ctx, query,
		pi.ID,
		pi.TaxInvoiceNo,
		formatDate(pi.Date),
		nullDate(pi.ReceivedDate),
		nullString(pi.TaxPeriod),
		pi.SupplierName,
		nullString(pi.PONo),
		pi.DPP.String(),
		pi.PPN.String(),
		pi.Total.String(),
		string(pi.Status),
		nullString(pi.JournalID),
		formatTimestamp(pi.CreatedAt),
		pi.CreatedBy,
		formatTimestamp(pi.LastUpdatedAt),
		pi.LastUpdatedBy,
	)
	return mapError(err, fmt.Sprintf("failed to save purchase tax invoice %s", pi.TaxInvoiceNo))
}

func (r *SQLiteTaxInvoiceRepository) FindPurchaseTaxInvoiceByID(ctx context.Context, id string) (*domain.PurchaseTaxInvoice, error) {
	query := `SELECT ` + purchaseTaxInvoiceColumns + ` FROM purchase_tax_invoices WHERE id = ?;`
	pi, err := scanPurchaseTaxInvoice(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("failed to find purchase tax invoice %s", id))
	}
	return &pi, nil
}

func (r *SQLiteTaxInvoiceRepository) ListPurchaseTaxInvoices(ctx context.Context) ([]domain.PurchaseTaxInvoice, error) {
	query := `SELECT ` + purchaseTaxInvoiceColumns + ` FROM purchase_tax_invoices ORDER BY date DESC, tax_invoice_no;`
	rows, err := r.q.QueryContext(ctx, query)
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

func (r *SQLiteTaxInvoiceRepository) MarkPurchaseTaxInvoicePosted(ctx context.Context, id string, journalID string) error {
	return r.markPosted(ctx, "purchase_tax_invoices", id, journalID)
}

func (r *SQLiteTaxInvoiceRepository) markPosted(ctx context.Context, table, id, journalID string) error {
	query := `UPDATE ` + table + ` SET status = 'Posted', journal_id = ?, last_updated_at = ? WHERE id = ? AND status = 'Draft';`
	res, err := r.q.ExecContext(ctx, query, nullString(journalID), formatTimestamp(time.Now()), id)
	if err != nil {
		return mapError(err, fmt.Sprintf("failed to post %s %s", table, id))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s %s is not a draft: %w", table, id, apperrors.ErrInvalidState)
	}
	return nil
}
