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
	"github.com/SscSPs/backoffice/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// SalesService handles customers, discounts, trade invoices and customer
// payments. Invoices and payments post their journal through the posting
// engine inside the same transaction.
type SalesService struct {
	BaseService
	txManager portsrepo.TransactionManager
	repos     portsrepo.RepositoryProvider
	poster    portssvc.JournalPosterSvc
	accounts  config.SystemAccounts
}

func NewSalesService(
	txManager portsrepo.TransactionManager,
	repos portsrepo.RepositoryProvider,
	poster portssvc.JournalPosterSvc,
	accounts config.SystemAccounts,
) *SalesService {
	return &SalesService{
		BaseService: newBaseService(),
		txManager:   txManager,
		repos:       repos,
		poster:      poster,
		accounts:    accounts,
	}
}

var _ portssvc.SalesSvc = (*SalesService)(nil)

func (s *SalesService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, userID string) (*domain.Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: customer name is required", apperrors.ErrValidation)
	}
	customer := domain.Customer{
		ID:          uuid.NewString(),
		Name:        name,
		Email:       strings.TrimSpace(req.Email),
		Phone:       strings.TrimSpace(req.Phone),
		Address:     req.Address,
		TaxID:       strings.TrimSpace(req.TaxID),
		AuditFields: domain.NewAuditFields(userID, s.Now()),
	}
	if err := s.repos.CustomerRepo.SaveCustomer(ctx, customer); err != nil {
		s.LogError(ctx, err, "Failed to save customer", slog.String("name", name))
		return nil, err
	}
	s.LogInfo(ctx, "Customer created", slog.String("customer_id", customer.ID))
	return &customer, nil
}

func (s *SalesService) GetCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	return s.repos.CustomerRepo.FindCustomerByID(ctx, id)
}

func (s *SalesService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	customers, err := s.repos.CustomerRepo.ListCustomers(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list customers")
		return nil, err
	}
	return customers, nil
}

func (s *SalesService) CreateDiscount(ctx context.Context, req dto.CreateDiscountRequest) (*domain.Discount, error) {
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, fmt.Errorf("%w: discount code is required", apperrors.ErrValidation)
	}
	if req.Percentage.IsNegative() || req.Percentage.GreaterThanOrEqual(hundred) {
		return nil, fmt.Errorf("%w: discount percentage must be at least 0 and below 100", apperrors.ErrValidation)
	}
	accountCode := strings.TrimSpace(req.AccountCode)
	if _, err := s.repos.AccountRepo.FindAccountByCode(ctx, accountCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: discount account %s does not exist", apperrors.ErrValidation, accountCode)
		}
		return nil, err
	}

	discount := domain.Discount{
		Code:        code,
		Name:        strings.TrimSpace(req.Name),
		Percentage:  req.Percentage,
		AccountCode: accountCode,
	}
	if err := s.repos.DiscountRepo.SaveDiscount(ctx, discount); err != nil {
		s.LogError(ctx, err, "Failed to save discount", slog.String("code", code))
		return nil, err
	}
	s.LogInfo(ctx, "Discount created", slog.String("code", code))
	return &discount, nil
}

func (s *SalesService) ListDiscounts(ctx context.Context) ([]domain.Discount, error) {
	discounts, err := s.repos.DiscountRepo.ListDiscounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list discounts")
		return nil, err
	}
	return discounts, nil
}

// CreateInvoice stores an unpaid trade invoice and posts Dr receivable / Cr
// sales for its total.
func (s *SalesService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, error) {
	invoiceNo := strings.TrimSpace(req.InvoiceNo)
	if invoiceNo == "" {
		return nil, fmt.Errorf("%w: invoice number is required", apperrors.ErrValidation)
	}
	if !req.TotalAmount.IsPositive() || !domain.IsCentAmount(req.TotalAmount) {
		return nil, fmt.Errorf("%w: invoice total must be positive with at most %d decimal places", apperrors.ErrValidation, domain.AmountScale)
	}
	date, err := s.resolveDate(req.Date)
	if err != nil {
		return nil, err
	}
	var dueDate *time.Time
	if strings.TrimSpace(req.DueDate) != "" {
		d, err := parseDate(req.DueDate)
		if err != nil {
			return nil, err
		}
		if d.Before(date) {
			return nil, fmt.Errorf("%w: due date is before invoice date", apperrors.ErrValidation)
		}
		dueDate = &d
	}

	invoice := domain.Invoice{
		ID:          uuid.NewString(),
		InvoiceNo:   invoiceNo,
		CustomerID:  req.CustomerID,
		Date:        date,
		DueDate:     dueDate,
		Description: req.Description,
		TotalAmount: req.TotalAmount,
		PaidAmount:  decimal.Zero,
		Status:      domain.InvoiceUnpaid,
		AuditFields: domain.NewAuditFields(userID, s.Now()),
	}

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		customer, err := repos.CustomerRepo.FindCustomerByID(ctx, req.CustomerID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: customer %s does not exist", apperrors.ErrValidation, req.CustomerID)
			}
			return err
		}
		entry, err := s.poster.CreateEntryInTx(ctx, repos, domain.CreateEntryInput{
			Date:        domain.FormatDate(date),
			Description: fmt.Sprintf("Sales invoice %s - %s", invoiceNo, customer.Name),
			Status:      domain.Posted,
			Lines: []domain.LineInput{
				{AccountCode: s.accounts.Receivable, Debit: invoice.TotalAmount},
				{AccountCode: s.accounts.Sales, Credit: invoice.TotalAmount},
			},
			Type:   domain.EntryTypeSalesInvoice,
			UserID: userID,
		})
		if err != nil {
			return err
		}
		invoice.JournalID = entry.ID
		return repos.InvoiceRepo.SaveInvoice(ctx, invoice)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create invoice", slog.String("invoice_no", invoiceNo))
		return nil, err
	}

	metrics.EntriesCreated.WithLabelValues(string(domain.Posted)).Inc()
	s.LogInfo(ctx, "Invoice created",
		slog.String("invoice_id", invoice.ID),
		slog.String("journal_id", invoice.JournalID))
	return &invoice, nil
}

func (s *SalesService) ListInvoices(ctx context.Context, params dto.ListInvoicesParams) ([]domain.Invoice, error) {
	invoices, err := s.repos.InvoiceRepo.ListInvoices(ctx, params.CustomerID, params.OpenOnly)
	if err != nil {
		s.LogError(ctx, err, "Failed to list invoices")
		return nil, err
	}
	return invoices, nil
}

// RecordPayment applies cash received from a customer to its invoices. Each
// allocation's cash is grossed up by the settlement discount and applied up
// to the invoice's outstanding amount; cash beyond that is held as a
// customer deposit. One posted journal records the whole payment.
func (s *SalesService) RecordPayment(ctx context.Context, req dto.RecordPaymentRequest, userID string) (*domain.CustomerPayment, error) {
	if len(req.Allocations) == 0 {
		return nil, fmt.Errorf("%w: at least one allocation is required", apperrors.ErrValidation)
	}
	cashAccount := strings.TrimSpace(req.AccountCode)
	if cashAccount == "" {
		return nil, fmt.Errorf("%w: cash account is required", apperrors.ErrValidation)
	}
	for i, a := range req.Allocations {
		if !a.Amount.IsPositive() || !domain.IsCentAmount(a.Amount) {
			return nil, fmt.Errorf("%w: allocation %d: amount must be positive with at most %d decimal places", apperrors.ErrValidation, i+1, domain.AmountScale)
		}
	}
	date, err := s.resolveDate(req.PaymentDate)
	if err != nil {
		return nil, err
	}

	result := &domain.CustomerPayment{
		CustomerID:     req.CustomerID,
		CashReceived:   decimal.Zero,
		AppliedAmount:  decimal.Zero,
		DiscountAmount: decimal.Zero,
		Overpayment:    decimal.Zero,
	}

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		customer, err := repos.CustomerRepo.FindCustomerByID(ctx, req.CustomerID)
		if err != nil {
			return err
		}

		pct := decimal.Zero
		discountAccount := ""
		if code := strings.TrimSpace(req.DiscountCode); code != "" {
			discount, err := repos.DiscountRepo.FindDiscountByCode(ctx, code)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return fmt.Errorf("%w: discount %s does not exist", apperrors.ErrValidation, code)
				}
				return err
			}
			pct, discountAccount = discount.Percentage, discount.AccountCode
		}

		cashApplied := decimal.Zero
		for _, a := range req.Allocations {
			invoice, err := repos.InvoiceRepo.FindInvoiceByIDForUpdate(ctx, a.InvoiceID)
			if err != nil {
				return err
			}
			if invoice.CustomerID != customer.ID {
				return fmt.Errorf("%w: invoice %s belongs to another customer", apperrors.ErrValidation, invoice.InvoiceNo)
			}
			if invoice.Status == domain.InvoiceCancelled {
				return fmt.Errorf("%w: invoice %s is cancelled", apperrors.ErrInvalidState, invoice.InvoiceNo)
			}

			st := accounting.Settle(a.Amount, invoice.Outstanding(), pct)
			invoice.PaidAmount = invoice.PaidAmount.Add(st.Applied)
			invoice.Status = domain.SettlementStatus(invoice.TotalAmount, invoice.PaidAmount)
			if err := repos.InvoiceRepo.UpdateInvoicePayment(ctx, invoice.ID, invoice.PaidAmount, invoice.Status); err != nil {
				return err
			}

			result.CashReceived = result.CashReceived.Add(st.Cash)
			result.AppliedAmount = result.AppliedAmount.Add(st.Applied)
			result.DiscountAmount = result.DiscountAmount.Add(st.Discount)
			result.Overpayment = result.Overpayment.Add(st.Excess)
			cashApplied = cashApplied.Add(st.CashApplied)
			result.Invoices = append(result.Invoices, *invoice)
		}

		lines := []domain.LineInput{{AccountCode: cashAccount, Debit: result.CashReceived}}
		if result.DiscountAmount.IsPositive() {
			lines = append(lines, domain.LineInput{AccountCode: discountAccount, Debit: result.DiscountAmount})
		}
		if result.AppliedAmount.IsPositive() {
			lines = append(lines, domain.LineInput{AccountCode: s.accounts.Receivable, Credit: result.AppliedAmount})
		}
		if result.Overpayment.IsPositive() {
			lines = append(lines, domain.LineInput{AccountCode: s.accounts.CustomerDeposit, Credit: result.Overpayment})
		}

		entry, err := s.poster.CreateEntryInTx(ctx, repos, domain.CreateEntryInput{
			Date:        domain.FormatDate(date),
			Description: paymentDescription(customer.Name, result.Invoices),
			Status:      domain.Posted,
			Lines:       lines,
			Type:        domain.EntryTypeCustomerPay,
			UserID:      userID,
		})
		if err != nil {
			return err
		}
		result.JournalID, result.JournalNumber = entry.ID, entry.Number

		s.LogDebug(ctx, "Customer payment split",
			slog.String("cash_applied", cashApplied.StringFixed(2)),
			slog.String("discount", result.DiscountAmount.StringFixed(2)),
			slog.String("overpayment", result.Overpayment.StringFixed(2)))
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to record customer payment", slog.String("customer_id", req.CustomerID))
		return nil, err
	}

	metrics.EntriesCreated.WithLabelValues(string(domain.Posted)).Inc()
	s.LogInfo(ctx, "Customer payment recorded",
		slog.String("customer_id", req.CustomerID),
		slog.String("journal_id", result.JournalID))
	return result, nil
}

func paymentDescription(customerName string, invoices []domain.Invoice) string {
	if len(invoices) == 1 {
		return fmt.Sprintf("Payment of invoice %s - %s", invoices[0].InvoiceNo, customerName)
	}
	return fmt.Sprintf("Payment of several invoices - %s", customerName)
}
