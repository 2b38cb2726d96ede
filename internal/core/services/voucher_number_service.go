package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/backoffice/internal/apperrors"
	"github.com/SscSPs/backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/backoffice/internal/core/ports/services"
)

// VoucherNumberService previews and allocates voucher and journal numbers.
type VoucherNumberService struct {
	BaseService
	repos portsrepo.RepositoryProvider
}

func NewVoucherNumberService(repos portsrepo.RepositoryProvider) *VoucherNumberService {
	return &VoucherNumberService{BaseService: newBaseService(), repos: repos}
}

var (
	_ portssvc.VoucherNumberSvc       = (*VoucherNumberService)(nil)
	_ portssvc.VoucherNumberAllocator = (*VoucherNumberService)(nil)
)

// NextVoucherNumber counts the existing numbers of the current year's series.
// Two concurrent callers may see the same number; use AllocateVoucherNumber
// when the number is about to be stored.
func (s *VoucherNumberService) NextVoucherNumber(ctx context.Context, prefix string) (string, error) {
	p, err := domain.NormalizeVoucherPrefix(prefix)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	year := s.Now().Year()
	search := domain.VoucherSearchPrefix(p, year)

	count, err := s.repos.VoucherRepo.CountVouchersByPrefix(ctx, domain.FamilyForPrefix(p), search)
	if err != nil {
		s.LogError(ctx, err, "Failed to count vouchers", slog.String("prefix", p))
		return "", err
	}
	return domain.FormatVoucherNumber(p, year, count+1), nil
}

// AllocateVoucherNumber reserves the next number of a series inside the
// caller's transaction.
func (s *VoucherNumberService) AllocateVoucherNumber(ctx context.Context, repos portsrepo.RepositoryProvider, prefix string) (string, error) {
	p, err := domain.NormalizeVoucherPrefix(prefix)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	year := s.Now().Year()
	search := domain.VoucherSearchPrefix(p, year)

	seq, err := s.allocate(ctx, repos, search, func() (int64, error) {
		return repos.VoucherRepo.CountVouchersByPrefix(ctx, domain.FamilyForPrefix(p), search)
	})
	if err != nil {
		return "", err
	}
	return domain.FormatVoucherNumber(p, year, seq), nil
}

// AllocateJournalNumber reserves the next JU-{year}-{seq} number.
func (s *VoucherNumberService) AllocateJournalNumber(ctx context.Context, repos portsrepo.RepositoryProvider) (string, error) {
	year := s.Now().Year()
	search := domain.JournalNumberPrefix(year)

	seq, err := s.allocate(ctx, repos, search, func() (int64, error) {
		return repos.JournalRepo.CountEntriesByNumberPrefix(ctx, search)
	})
	if err != nil {
		return "", err
	}
	return domain.FormatJournalNumber(year, seq), nil
}

// allocate bumps the counter of scope. The stored counter is raised to the
// row count first so numbers written before the counter existed are skipped.
func (s *VoucherNumberService) allocate(ctx context.Context, repos portsrepo.RepositoryProvider, scope string, count func() (int64, error)) (int64, error) {
	last, err := repos.SequenceRepo.LockSequence(ctx, scope)
	if err != nil {
		s.LogError(ctx, err, "Failed to lock number sequence", slog.String("scope", scope))
		return 0, err
	}
	existing, err := count()
	if err != nil {
		s.LogError(ctx, err, "Failed to count numbered rows", slog.String("scope", scope))
		return 0, err
	}
	next := max(last, existing) + 1
	if err := repos.SequenceRepo.SetSequence(ctx, scope, next); err != nil {
		s.LogError(ctx, err, "Failed to store number sequence", slog.String("scope", scope))
		return 0, err
	}
	return next, nil
}
