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
	"github.com/shopspring/decimal"
)

// AccountService maintains the chart of accounts. Balances are never
// written here; see LedgerService.
type AccountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

func NewAccountService(repo portsrepo.AccountRepositoryFacade) *AccountService {
	return &AccountService{BaseService: newBaseService(), accountRepo: repo}
}

// Ensure AccountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*AccountService)(nil)

// resolveParent loads the parent of an account of type t and returns the
// level a child of it gets. An empty code means a root account.
func (s *AccountService) resolveParent(ctx context.Context, parentCode string, t domain.AccountType) (int, error) {
	if parentCode == "" {
		return 1, nil
	}
	parent, err := s.accountRepo.FindAccountByCode(ctx, parentCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return 0, fmt.Errorf("%w: parent account %s does not exist", apperrors.ErrValidation, parentCode)
		}
		return 0, err
	}
	if !parent.IsActive() {
		return 0, fmt.Errorf("%w: parent account %s is inactive", apperrors.ErrValidation, parentCode)
	}
	if parent.Type != t {
		return 0, fmt.Errorf("%w: parent account %s is %s, not %s", apperrors.ErrValidation, parentCode, parent.Type, t)
	}
	return parent.Level + 1, nil
}

func (s *AccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	code := strings.TrimSpace(req.Code)
	name := strings.TrimSpace(req.Name)
	if code == "" || name == "" {
		return nil, fmt.Errorf("%w: account code and name are required", apperrors.ErrValidation)
	}
	accountType, err := domain.ParseAccountType(req.Type)
	if err != nil {
		return nil, validationErr(err)
	}
	parentCode := strings.TrimSpace(req.ParentCode)
	if parentCode == code {
		return nil, fmt.Errorf("%w: account cannot be its own parent", apperrors.ErrValidation)
	}
	level, err := s.resolveParent(ctx, parentCode, accountType)
	if err != nil {
		s.LogWarn(ctx, "Invalid parent account",
			slog.String("account_code", code),
			slog.String("parent_code", parentCode),
			slog.String("error", err.Error()))
		return nil, err
	}

	account := domain.Account{
		Code:        code,
		Name:        name,
		Type:        accountType,
		Level:       level,
		ParentCode:  parentCode,
		IsSystem:    req.IsSystem,
		Status:      domain.AccountActive,
		AuditFields: domain.NewAuditFields(userID, s.Now()),
		Balance:     decimal.Zero,
	}
	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("account_code", code))
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_code", code),
		slog.String("account_type", string(accountType)))
	return &account, nil
}

func (s *AccountService) GetAccount(ctx context.Context, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		// ErrNotFound is an expected outcome
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account", slog.String("account_code", code))
		}
		return nil, err
	}
	return account, nil
}

func (s *AccountService) ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, includeInactive)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, err
	}
	return accounts, nil
}

// GetAccountType resolves the normal-balance class of an account.
func (s *AccountService) GetAccountType(ctx context.Context, code string) (domain.AccountType, error) {
	account, err := s.GetAccount(ctx, code)
	if err != nil {
		return "", err
	}
	return account.Type, nil
}

// UpdateAccount renames or moves an account. Accounts with children keep
// their parent so the levels of the subtree stay consistent.
func (s *AccountService) UpdateAccount(ctx context.Context, code string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	account, err := s.GetAccount(ctx, code)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: account name must not be empty", apperrors.ErrValidation)
		}
		account.Name = name
	}
	if req.ParentCode != nil {
		parentCode := strings.TrimSpace(*req.ParentCode)
		if parentCode == account.Code {
			return nil, fmt.Errorf("%w: account cannot be its own parent", apperrors.ErrValidation)
		}
		if parentCode != account.ParentCode {
			if account.HasChildren {
				return nil, fmt.Errorf("%w: account %s has children and cannot be moved", apperrors.ErrInvalidState, code)
			}
			level, err := s.resolveParent(ctx, parentCode, account.Type)
			if err != nil {
				return nil, err
			}
			account.ParentCode = parentCode
			account.Level = level
		}
	}

	account.Touch(userID, s.Now())
	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_code", code))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated successfully", slog.String("account_code", code))
	return account, nil
}

// DeactivateAccount soft-deletes an account. System accounts and accounts
// with active children are refused.
func (s *AccountService) DeactivateAccount(ctx context.Context, code string, userID string) error {
	account, err := s.GetAccount(ctx, code)
	if err != nil {
		return err
	}
	if account.IsSystem {
		return fmt.Errorf("%w: account %s is a system account", apperrors.ErrInvalidState, code)
	}
	hasChildren, err := s.accountRepo.HasActiveChildren(ctx, code)
	if err != nil {
		s.LogError(ctx, err, "Failed to check child accounts", slog.String("account_code", code))
		return err
	}
	if hasChildren {
		return fmt.Errorf("%w: account %s has active children", apperrors.ErrInvalidState, code)
	}

	if userID == "" {
		userID = domain.SystemUserID
	}
	if err := s.accountRepo.DeactivateAccount(ctx, code, userID, s.Now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_code", code))
		return err
	}

	s.LogInfo(ctx, "Account deactivated successfully", slog.String("account_code", code))
	return nil
}
