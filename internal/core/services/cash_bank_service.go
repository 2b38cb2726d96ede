package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/backoffice/internal/apperrors"
	"github.com/SscSPs/backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/backoffice/internal/core/ports/services"
	"github.com/SscSPs/backoffice/internal/dto"
	"github.com/SscSPs/backoffice/internal/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CashBankService records cash/bank receipts and payments. The voucher, its
// items, its journal entry and the balance changes commit together.
type CashBankService struct {
	BaseService
	txManager portsrepo.TransactionManager
	repos     portsrepo.RepositoryProvider
	poster    portssvc.JournalPosterSvc
	numbers   portssvc.VoucherNumberAllocator
}

func NewCashBankService(
	txManager portsrepo.TransactionManager,
	repos portsrepo.RepositoryProvider,
	poster portssvc.JournalPosterSvc,
	numbers portssvc.VoucherNumberAllocator,
) *CashBankService {
	return &CashBankService{
		BaseService: newBaseService(),
		txManager:   txManager,
		repos:       repos,
		poster:      poster,
		numbers:     numbers,
	}
}

var _ portssvc.CashBankSvc = (*CashBankService)(nil)

// toVoucherItems validates the detail rows and checks they add up to total.
func toVoucherItems(reqs []dto.CashVoucherItemRequest, total decimal.Decimal) ([]domain.CashVoucherItem, error) {
	if len(reqs) == 0 {
		return nil, fmt.Errorf("%w: at least one item is required", apperrors.ErrValidation)
	}
	if !total.IsPositive() || !domain.IsCentAmount(total) {
		return nil, fmt.Errorf("%w: total amount must be positive with at most %d decimal places", apperrors.ErrValidation, domain.AmountScale)
	}
	items := make([]domain.CashVoucherItem, len(reqs))
	for i, r := range reqs {
		code := strings.TrimSpace(r.AccountCode)
		if code == "" {
			return nil, fmt.Errorf("%w: item %d: account code is required", apperrors.ErrValidation, i+1)
		}
		if !r.Amount.IsPositive() || !domain.IsCentAmount(r.Amount) {
			return nil, fmt.Errorf("%w: item %d: amount must be positive with at most %d decimal places", apperrors.ErrValidation, i+1, domain.AmountScale)
		}
		items[i] = domain.CashVoucherItem{
			LineNo:      i + 1,
			AccountCode: code,
			Amount:      r.Amount,
			Memo:        r.Memo,
			Department:  r.Department,
			Project:     r.Project,
		}
	}
	if sum := domain.SumItems(items); !sum.Equal(total) {
		return nil, fmt.Errorf("%w: items total %s does not match voucher total %s",
			apperrors.ErrValidation, sum.StringFixed(2), total.StringFixed(2))
	}
	return items, nil
}

// itemLines turns detail rows into journal lines on the debit or credit side.
func itemLines(items []domain.CashVoucherItem, debit bool) []domain.LineInput {
	lines := make([]domain.LineInput, len(items))
	for i, it := range items {
		line := domain.LineInput{
			AccountCode: it.AccountCode,
			Memo:        it.Memo,
			Department:  it.Department,
			Project:     it.Project,
		}
		if debit {
			line.Debit = it.Amount
		} else {
			line.Credit = it.Amount
		}
		lines[i] = line
	}
	return lines
}

// CreateCashReceipt debits the deposit account with the total and credits
// every detail account with its amount.
func (s *CashBankService) CreateCashReceipt(ctx context.Context, req dto.CreateCashReceiptRequest, userID string) (*domain.CashReceipt, error) {
	items, err := toVoucherItems(req.Items, req.TotalAmount)
	if err != nil {
		return nil, err
	}
	deposit := strings.TrimSpace(req.DepositAccount)
	if deposit == "" {
		return nil, fmt.Errorf("%w: deposit account is required", apperrors.ErrValidation)
	}
	date, err := s.resolveDate(req.Date)
	if err != nil {
		return nil, err
	}

	receipt := domain.CashReceipt{
		ID:             uuid.NewString(),
		VoucherNo:      strings.TrimSpace(req.VoucherNo),
		Date:           date,
		TotalAmount:    req.TotalAmount,
		DepositAccount: deposit,
		Memo:           req.Memo,
		Items:          items,
		AuditFields:    domain.NewAuditFields(userID, s.Now()),
	}

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		if receipt.VoucherNo == "" {
			no, err := s.numbers.AllocateVoucherNumber(ctx, repos, domain.PrefixCashReceipt)
			if err != nil {
				return err
			}
			receipt.VoucherNo = no
		}

		lines := append([]domain.LineInput{{
			AccountCode: deposit,
			Debit:       receipt.TotalAmount,
			Memo:        receipt.Memo,
		}}, itemLines(items, false)...)
		entry, err := s.poster.CreateEntryInTx(ctx, repos, domain.CreateEntryInput{
			Date:        domain.FormatDate(date),
			Description: "Cash receipt " + receipt.VoucherNo,
			Status:      domain.Posted,
			Lines:       lines,
			Type:        domain.EntryTypeCashReceipt,
			UserID:      userID,
		})
		if err != nil {
			return err
		}
		receipt.JournalID = entry.ID

		return repos.VoucherRepo.SaveCashReceipt(ctx, receipt)
	})
	if err != nil {
		s.logVoucherFailure(ctx, err, "Failed to create cash receipt", receipt.VoucherNo)
		return nil, err
	}

	metrics.EntriesCreated.WithLabelValues(string(domain.Posted)).Inc()
	s.LogInfo(ctx, "Cash receipt created",
		slog.String("voucher_no", receipt.VoucherNo),
		slog.String("journal_id", receipt.JournalID))
	return &receipt, nil
}

// CreateCashPayment credits the paid-from account with the total and debits
// every detail account with its amount.
func (s *CashBankService) CreateCashPayment(ctx context.Context, req dto.CreateCashPaymentRequest, userID string) (*domain.CashPayment, error) {
	items, err := toVoucherItems(req.Items, req.TotalAmount)
	if err != nil {
		return nil, err
	}
	paidFrom := strings.TrimSpace(req.PaidFromAccount)
	if paidFrom == "" {
		return nil, fmt.Errorf("%w: paid-from account is required", apperrors.ErrValidation)
	}
	date, err := s.resolveDate(req.Date)
	if err != nil {
		return nil, err
	}

	payment := domain.CashPayment{
		ID:              uuid.NewString(),
		VoucherNo:       strings.TrimSpace(req.VoucherNo),
		Date:            date,
		TotalAmount:     req.TotalAmount,
		PaidFromAccount: paidFrom,
		PayeeName:       req.PayeeName,
		CheckNo:         req.CheckNo,
		IsBlankCheck:    req.IsBlankCheck,
		Memo:            req.Memo,
		Items:           items,
		AuditFields:     domain.NewAuditFields(userID, s.Now()),
	}

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		if payment.VoucherNo == "" {
			no, err := s.numbers.AllocateVoucherNumber(ctx, repos, domain.PrefixCashPayment)
			if err != nil {
				return err
			}
			payment.VoucherNo = no
		}

		lines := append([]domain.LineInput{{
			AccountCode: paidFrom,
			Credit:      payment.TotalAmount,
			Memo:        payment.Memo,
		}}, itemLines(items, true)...)
		entry, err := s.poster.CreateEntryInTx(ctx, repos, domain.CreateEntryInput{
			Date:        domain.FormatDate(date),
			Description: "Cash payment " + payment.VoucherNo,
			Status:      domain.Posted,
			Lines:       lines,
			Type:        domain.EntryTypeCashPayment,
			UserID:      userID,
		})
		if err != nil {
			return err
		}
		payment.JournalID = entry.ID

		return repos.VoucherRepo.SaveCashPayment(ctx, payment)
	})
	if err != nil {
		s.logVoucherFailure(ctx, err, "Failed to create cash payment", payment.VoucherNo)
		return nil, err
	}

	metrics.EntriesCreated.WithLabelValues(string(domain.Posted)).Inc()
	s.LogInfo(ctx, "Cash payment created",
		slog.String("voucher_no", payment.VoucherNo),
		slog.String("journal_id", payment.JournalID))
	return &payment, nil
}

func (s *CashBankService) logVoucherFailure(ctx context.Context, err error, msg, voucherNo string) {
	if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrIntegrity) {
		s.LogWarn(ctx, msg, slog.String("voucher_no", voucherNo), slog.String("error", err.Error()))
		return
	}
	s.LogError(ctx, err, msg, slog.String("voucher_no", voucherNo))
}

func (s *CashBankService) GetCashReceipt(ctx context.Context, id string) (*domain.CashReceipt, error) {
	return s.repos.VoucherRepo.FindCashReceiptByID(ctx, id)
}

func (s *CashBankService) ListCashReceipts(ctx context.Context, params dto.ListParams) ([]domain.CashReceipt, error) {
	limit, offset := normalizePage(params)
	receipts, err := s.repos.VoucherRepo.ListCashReceipts(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list cash receipts")
		return nil, err
	}
	return receipts, nil
}

func (s *CashBankService) GetCashPayment(ctx context.Context, id string) (*domain.CashPayment, error) {
	return s.repos.VoucherRepo.FindCashPaymentByID(ctx, id)
}

func (s *CashBankService) ListCashPayments(ctx context.Context, params dto.ListParams) ([]domain.CashPayment, error) {
	limit, offset := normalizePage(params)
	payments, err := s.repos.VoucherRepo.ListCashPayments(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list cash payments")
		return nil, err
	}
	return payments, nil
}

func normalizePage(params dto.ListParams) (int, int) {
	limit, offset := params.Limit, params.Offset
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
