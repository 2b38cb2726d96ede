package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/backoffice/internal/apperrors"
	"github.com/SscSPs/backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/backoffice/internal/core/ports/services"
	"github.com/SscSPs/backoffice/internal/dto"
	"github.com/SscSPs/backoffice/internal/metrics"
	"github.com/SscSPs/backoffice/internal/platform/config"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TaxInvoiceService handles sales and purchase tax invoices and posts their
// VAT journals.
type TaxInvoiceService struct {
	BaseService
	txManager portsrepo.TransactionManager
	repos     portsrepo.RepositoryProvider
	poster    portssvc.JournalPosterSvc
	accounts  config.SystemAccounts
}

func NewTaxInvoiceService(
	txManager portsrepo.TransactionManager,
	repos portsrepo.RepositoryProvider,
	poster portssvc.JournalPosterSvc,
	accounts config.SystemAccounts,
) *TaxInvoiceService {
	return &TaxInvoiceService{
		BaseService: newBaseService(),
		txManager:   txManager,
		repos:       repos,
		poster:      poster,
		accounts:    accounts,
	}
}

var _ portssvc.TaxInvoiceSvc = (*TaxInvoiceService)(nil)

func checkTaxAmounts(dpp, ppn, total decimal.Decimal) error {
	if dpp.IsNegative() || ppn.IsNegative() {
		return fmt.Errorf("%w: dpp and ppn must not be negative", apperrors.ErrValidation)
	}
	for _, d := range []decimal.Decimal{dpp, ppn, total} {
		if !domain.IsCentAmount(d) {
			return fmt.Errorf("%w: amount %s has more than %d decimal places", apperrors.ErrValidation, d.String(), domain.AmountScale)
		}
	}
	if !dpp.Add(ppn).Equal(total) {
		return fmt.Errorf("%w: dpp %s plus ppn %s does not equal total %s",
			apperrors.ErrValidation, dpp.StringFixed(2), ppn.StringFixed(2), total.StringFixed(2))
	}
	return nil
}

func parseTaxStatus(s string) (domain.TaxInvoiceStatus, error) {
	switch strings.TrimSpace(s) {
	case "", string(domain.TaxInvoiceDraft):
		return domain.TaxInvoiceDraft, nil
	case string(domain.TaxInvoicePosted):
		return domain.TaxInvoicePosted, nil
	}
	return "", fmt.Errorf("%w: unknown tax invoice status %q", apperrors.ErrValidation, s)
}

// CreateTaxInvoice issues a sales tax invoice for a trade invoice. When
// created Posted the VAT journal is written in the same transaction.
func (s *TaxInvoiceService) CreateTaxInvoice(ctx context.Context, req dto.CreateTaxInvoiceRequest, userID string) (*domain.TaxInvoice, error) {
	if err := checkTaxAmounts(req.DPP, req.PPN, req.Total); err != nil {
		return nil, err
	}
	status, err := parseTaxStatus(req.Status)
	if err != nil {
		return nil, err
	}
	date, err := s.resolveDate(req.Date)
	if err != nil {
		return nil, err
	}

	ti := domain.TaxInvoice{
		ID:             uuid.NewString(),
		TaxInvoiceNo:   strings.TrimSpace(req.TaxInvoiceNo),
		Date:           date,
		TaxPeriod:      strings.TrimSpace(req.TaxPeriod),
		CustomerID:     req.CustomerID,
		TradeInvoiceID: req.TradeInvoiceID,
		DPP:            req.DPP,
		PPN:            req.PPN,
		Total:          req.Total,
		Status:         domain.TaxInvoiceDraft,
		AuditFields:    domain.NewAuditFields(userID, s.Now()),
	}

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		trade, err := repos.InvoiceRepo.FindInvoiceByID(ctx, req.TradeInvoiceID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: trade invoice %s does not exist", apperrors.ErrValidation, req.TradeInvoiceID)
			}
			return err
		}
		if trade.CustomerID != req.CustomerID {
			return fmt.Errorf("%w: trade invoice %s belongs to another customer", apperrors.ErrValidation, trade.InvoiceNo)
		}
		_, err = repos.TaxInvoiceRepo.FindTaxInvoiceByTradeInvoice(ctx, trade.ID)
		if err == nil {
			return fmt.Errorf("%w: trade invoice %s already has a tax invoice", apperrors.ErrDuplicate, trade.InvoiceNo)
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}

		if err := repos.TaxInvoiceRepo.SaveTaxInvoice(ctx, ti); err != nil {
			return err
		}
		if status == domain.TaxInvoicePosted {
			return s.postTaxInvoice(ctx, repos, &ti, userID)
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create tax invoice", slog.String("tax_invoice_no", ti.TaxInvoiceNo))
		return nil, err
	}

	s.LogInfo(ctx, "Tax invoice created",
		slog.String("tax_invoice_id", ti.ID),
		slog.String("status", string(ti.Status)))
	return &ti, nil
}

// postTaxInvoice moves the VAT out of sales into the VAT output account.
// A zero PPN posts no journal.
func (s *TaxInvoiceService) postTaxInvoice(ctx context.Context, repos portsrepo.RepositoryProvider, ti *domain.TaxInvoice, userID string) error {
	journalID := ""
	if ti.PPN.IsPositive() {
		entry, err := s.poster.CreateEntryInTx(ctx, repos, domain.CreateEntryInput{
			Date:        domain.FormatDate(ti.Date),
			Description: "Sales tax invoice " + ti.TaxInvoiceNo,
			Status:      domain.Posted,
			Lines: []domain.LineInput{
				{AccountCode: s.accounts.Sales, Debit: ti.PPN},
				{AccountCode: s.accounts.VATOutput, Credit: ti.PPN},
			},
			Type:   domain.EntryTypeSalesTax,
			UserID: userID,
		})
		if err != nil {
			return err
		}
		journalID = entry.ID
	}
	if err := repos.TaxInvoiceRepo.MarkTaxInvoicePosted(ctx, ti.ID, journalID); err != nil {
		return err
	}
	ti.Status, ti.JournalID = domain.TaxInvoicePosted, journalID
	ti.Touch(userID, s.Now())
	return nil
}

// PostTaxInvoice posts a draft sales tax invoice.
func (s *TaxInvoiceService) PostTaxInvoice(ctx context.Context, id string, userID string) (*domain.TaxInvoice, error) {
	var ti *domain.TaxInvoice
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		var err error
		if ti, err = repos.TaxInvoiceRepo.FindTaxInvoiceByID(ctx, id); err != nil {
			return err
		}
		if ti.Status != domain.TaxInvoiceDraft {
			return fmt.Errorf("%w: tax invoice %s is %s", apperrors.ErrInvalidState, ti.TaxInvoiceNo, ti.Status)
		}
		return s.postTaxInvoice(ctx, repos, ti, userID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to post tax invoice", slog.String("tax_invoice_id", id))
		return nil, err
	}
	if ti.JournalID != "" {
		metrics.EntriesCreated.WithLabelValues(string(domain.Posted)).Inc()
	}
	s.LogInfo(ctx, "Tax invoice posted", slog.String("tax_invoice_id", id))
	return ti, nil
}

func (s *TaxInvoiceService) GetTaxInvoice(ctx context.Context, id string) (*domain.TaxInvoice, error) {
	return s.repos.TaxInvoiceRepo.FindTaxInvoiceByID(ctx, id)
}

func (s *TaxInvoiceService) ListTaxInvoices(ctx context.Context) ([]domain.TaxInvoice, error) {
	invoices, err := s.repos.TaxInvoiceRepo.ListTaxInvoices(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list tax invoices")
		return nil, err
	}
	return invoices, nil
}

// CreatePurchaseTaxInvoice records a supplier's tax invoice, posting it
// immediately when requested.
func (s *TaxInvoiceService) CreatePurchaseTaxInvoice(ctx context.Context, req dto.CreatePurchaseTaxInvoiceRequest, userID string) (*domain.PurchaseTaxInvoice, error) {
	if err := checkTaxAmounts(req.DPP, req.PPN, req.Total); err != nil {
		return nil, err
	}
	status, err := parseTaxStatus(req.Status)
	if err != nil {
		return nil, err
	}
	date, err := s.resolveDate(req.Date)
	if err != nil {
		return nil, err
	}
	var received *time.Time
	if strings.TrimSpace(req.ReceivedDate) != "" {
		d, err := parseDate(req.ReceivedDate)
		if err != nil {
			return nil, err
		}
		received = &d
	}

	pi := domain.PurchaseTaxInvoice{
		ID:           uuid.NewString(),
		TaxInvoiceNo: strings.TrimSpace(req.TaxInvoiceNo),
		Date:         date,
		ReceivedDate: received,
		TaxPeriod:    strings.TrimSpace(req.TaxPeriod),
		SupplierName: strings.TrimSpace(req.SupplierName),
		PONo:         strings.TrimSpace(req.PONo),
		DPP:          req.DPP,
		PPN:          req.PPN,
		Total:        req.Total,
		Status:       domain.TaxInvoiceDraft,
		AuditFields:  domain.NewAuditFields(userID, s.Now()),
	}

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		if err := repos.TaxInvoiceRepo.SavePurchaseTaxInvoice(ctx, pi); err != nil {
			return err
		}
		if status == domain.TaxInvoicePosted {
			return s.postPurchaseTaxInvoice(ctx, repos, &pi, userID)
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create purchase tax invoice", slog.String("tax_invoice_no", pi.TaxInvoiceNo))
		return nil, err
	}

	s.LogInfo(ctx, "Purchase tax invoice created",
		slog.String("tax_invoice_id", pi.ID),
		slog.String("status", string(pi.Status)))
	return &pi, nil
}

// postPurchaseTaxInvoice books Dr purchases (dpp), Dr VAT input (ppn),
// Cr payables (total).
func (s *TaxInvoiceService) postPurchaseTaxInvoice(ctx context.Context, repos portsrepo.RepositoryProvider, pi *domain.PurchaseTaxInvoice, userID string) error {
	lines := []domain.LineInput{}
	if pi.DPP.IsPositive() {
		lines = append(lines, domain.LineInput{AccountCode: s.accounts.Purchases, Debit: pi.DPP})
	}
	if pi.PPN.IsPositive() {
		lines = append(lines, domain.LineInput{AccountCode: s.accounts.VATInput, Debit: pi.PPN})
	}
	lines = append(lines, domain.LineInput{AccountCode: s.accounts.Payable, Credit: pi.Total})

	entry, err := s.poster.CreateEntryInTx(ctx, repos, domain.CreateEntryInput{
		Date:        domain.FormatDate(pi.Date),
		Description: fmt.Sprintf("Purchase tax invoice %s - %s", pi.TaxInvoiceNo, pi.SupplierName),
		Status:      domain.Posted,
		Lines:       lines,
		Type:        domain.EntryTypePurchaseTax,
		UserID:      userID,
	})
	if err != nil {
		return err
	}
	if err := repos.TaxInvoiceRepo.MarkPurchaseTaxInvoicePosted(ctx, pi.ID, entry.ID); err != nil {
		return err
	}
	pi.Status, pi.JournalID = domain.TaxInvoicePosted, entry.ID
	pi.Touch(userID, s.Now())
	return nil
}

// PostPurchaseTaxInvoice posts a draft purchase tax invoice.
func (s *TaxInvoiceService) PostPurchaseTaxInvoice(ctx context.Context, id string, userID string) (*domain.PurchaseTaxInvoice, error) {
	var pi *domain.PurchaseTaxInvoice
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		var err error
		if pi, err = repos.TaxInvoiceRepo.FindPurchaseTaxInvoiceByID(ctx, id); err != nil {
			return err
		}
		if pi.Status != domain.TaxInvoiceDraft {
			return fmt.Errorf("%w: purchase tax invoice %s is %s", apperrors.ErrInvalidState, pi.TaxInvoiceNo, pi.Status)
		}
		return s.postPurchaseTaxInvoice(ctx, repos, pi, userID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to post purchase tax invoice", slog.String("tax_invoice_id", id))
		return nil, err
	}
	metrics.EntriesCreated.WithLabelValues(string(domain.Posted)).Inc()
	s.LogInfo(ctx, "Purchase tax invoice posted", slog.String("tax_invoice_id", id))
	return pi, nil
}

func (s *TaxInvoiceService) GetPurchaseTaxInvoice(ctx context.Context, id string) (*domain.PurchaseTaxInvoice, error) {
	return s.repos.TaxInvoiceRepo.FindPurchaseTaxInvoiceByID(ctx, id)
}

func (s *TaxInvoiceService) ListPurchaseTaxInvoices(ctx context.Context) ([]domain.PurchaseTaxInvoice, error) {
	invoices, err := s.repos.TaxInvoiceRepo.ListPurchaseTaxInvoices(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list purchase tax invoices")
		return nil, err
	}
	return invoices, nil
}
