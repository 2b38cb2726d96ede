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
	"github.com/SscSPs/backoffice/internal/metrics"
	"github.com/google/uuid"
)

// Errors specific to the posting engine. All of them wrap an apperrors sentinel.
var (
	ErrUnbalancedEntry   = fmt.Errorf("%w: journal entry does not balance", apperrors.ErrValidation)
	ErrIllegalTransition = fmt.Errorf("%w: illegal journal status transition", apperrors.ErrInvalidState)
	ErrEntryNotPosted    = fmt.Errorf("%w: only posted entries can be reversed", apperrors.ErrInvalidState)
)

const defaultListLimit = 20

// JournalService is the posting engine. It is the only caller that couples
// journal persistence with balance effects.
type JournalService struct {
	BaseService
	txManager portsrepo.TransactionManager
	repos     portsrepo.RepositoryProvider
	ledger    *LedgerService
	numbers   portssvc.VoucherNumberAllocator
}

func NewJournalService(
	txManager portsrepo.TransactionManager,
	repos portsrepo.RepositoryProvider,
	ledger *LedgerService,
	numbers portssvc.VoucherNumberAllocator,
) *JournalService {
	return &JournalService{
		BaseService: newBaseService(),
		txManager:   txManager,
		repos:       repos,
		ledger:      ledger,
		numbers:     numbers,
	}
}

var _ portssvc.JournalSvcFacade = (*JournalService)(nil)

func parseDate(raw string) (time.Time, error) {
	d, err := domain.ParseEntryDate(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return d, nil
}

func validationErr(err error) error {
	return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
}

func (s *JournalService) recordFailure(ctx context.Context, operation string, err error, keyvals ...any) {
	metrics.PostingFailures.WithLabelValues(operation, metrics.FailureReason(err)).Inc()
	if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrInvalidState) || errors.Is(err, apperrors.ErrNotFound) {
		s.LogWarn(ctx, "Journal "+operation+" rejected", append(keyvals, slog.String("error", err.Error()))...)
		return
	}
	s.LogError(ctx, err, "Journal "+operation+" failed", keyvals...)
}

// checkLines validates the lines an entry in status would end up with.
func checkLines(status domain.EntryStatus, lines []domain.JournalLine) error {
	if err := domain.ValidateLines(lines); err != nil {
		return validationErr(err)
	}
	if status.IsImpactful() {
		if err := domain.ValidateBalanced(lines); err != nil {
			return fmt.Errorf("%w: %v", ErrUnbalancedEntry, err)
		}
	}
	return nil
}

// CreateEntry stores a new entry and, when it is posted, applies its lines
// to account balances. Everything happens in one transaction.
func (s *JournalService) CreateEntry(ctx context.Context, input domain.CreateEntryInput) (*domain.JournalEntry, error) {
	var created *domain.JournalEntry
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		entry, err := s.CreateEntryInTx(ctx, repos, input)
		if err != nil {
			return err
		}
		created = entry
		return nil
	})
	if err != nil {
		s.recordFailure(ctx, "create", err, slog.String("status", string(input.Status)))
		return nil, err
	}

	metrics.EntriesCreated.WithLabelValues(string(created.Status)).Inc()
	s.LogInfo(ctx, "Journal entry created",
		slog.String("journal_id", created.ID),
		slog.String("number", created.Number),
		slog.String("status", string(created.Status)))
	return created, nil
}

// CreateEntryInTx is CreateEntry for callers that already hold a
// transaction; repos must be bound to it.
func (s *JournalService) CreateEntryInTx(ctx context.Context, repos portsrepo.RepositoryProvider, input domain.CreateEntryInput) (*domain.JournalEntry, error) {
	if input.Status != domain.Draft && input.Status != domain.Posted {
		return nil, fmt.Errorf("%w: new entries must be Draft or Posted, got %q", apperrors.ErrInvalidState, input.Status)
	}
	date, err := s.resolveDate(input.Date)
	if err != nil {
		return nil, err
	}
	lines := domain.ToJournalLines(input.Lines)
	if err := checkLines(input.Status, lines); err != nil {
		return nil, err
	}

	number := strings.TrimSpace(input.Number)
	if number == "" {
		if number, err = s.numbers.AllocateJournalNumber(ctx, repos); err != nil {
			return nil, fmt.Errorf("failed to allocate journal number: %w", err)
		}
	}
	entryType := strings.TrimSpace(input.Type)
	if entryType == "" {
		entryType = domain.EntryTypeGeneral
	}

	entry := domain.JournalEntry{
		ID:          uuid.NewString(),
		Number:      number,
		Date:        date,
		Description: input.Description,
		Status:      input.Status,
		Type:        entryType,
		ReversalOf:  input.ReversalOf,
		AuditFields: domain.NewAuditFields(input.UserID, s.Now()),
	}
	for i := range lines {
		lines[i].ID = uuid.NewString()
		lines[i].EntryID = entry.ID
	}

	if err := repos.JournalRepo.InsertEntry(ctx, entry); err != nil {
		return nil, err
	}
	if err := repos.JournalRepo.InsertLines(ctx, entry.ID, lines); err != nil {
		return nil, err
	}
	if entry.Status.IsImpactful() {
		if err := s.ledger.AdjustBalances(ctx, repos, lines, Apply); err != nil {
			return nil, err
		}
	}

	entry.Lines = lines
	return &entry, nil
}

// UpdateEntry patches an entry. The balance impact of the old state is
// removed before the impact of the new state is applied.
func (s *JournalService) UpdateEntry(ctx context.Context, id string, patch domain.EntryPatch) error {
	var resulting domain.EntryStatus
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		current, err := repos.JournalRepo.FindEntryByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		oldStatus := current.Status
		if oldStatus.IsTerminal() {
			return fmt.Errorf("%w: entry %s is %s", ErrIllegalTransition, current.Number, oldStatus)
		}
		newStatus := oldStatus
		if patch.Status != nil {
			newStatus = *patch.Status
		}
		if !oldStatus.CanTransitionTo(newStatus) {
			return fmt.Errorf("%w: %s to %s", ErrIllegalTransition, oldStatus, newStatus)
		}

		oldLines, err := repos.JournalRepo.FindLinesByEntryID(ctx, id)
		if err != nil {
			return err
		}
		effective := oldLines
		if patch.Lines != nil {
			effective = domain.ToJournalLines(patch.Lines)
			for i := range effective {
				effective[i].ID = uuid.NewString()
				effective[i].EntryID = id
			}
		}
		if err := checkLines(newStatus, effective); err != nil {
			return err
		}

		// An empty date keeps the stored one.
		if patch.Date != nil && strings.TrimSpace(*patch.Date) != "" {
			if current.Date, err = parseDate(*patch.Date); err != nil {
				return err
			}
		}
		if patch.Description != nil {
			current.Description = *patch.Description
		}
		if patch.CancelReason != nil {
			current.CancelReason = *patch.CancelReason
		}
		current.Status = newStatus
		current.Touch(patch.UserID, s.Now())
		if err := repos.JournalRepo.UpdateEntryHeader(ctx, *current); err != nil {
			return err
		}

		if patch.Lines != nil {
			if err := repos.JournalRepo.DeleteLines(ctx, id); err != nil {
				return err
			}
			if err := repos.JournalRepo.InsertLines(ctx, id, effective); err != nil {
				return err
			}
		}

		if oldStatus.IsImpactful() {
			if err := s.ledger.AdjustBalances(ctx, repos, oldLines, Unapply); err != nil {
				return err
			}
		}
		if newStatus.IsImpactful() {
			if err := s.ledger.AdjustBalances(ctx, repos, effective, Apply); err != nil {
				return err
			}
		}
		resulting = newStatus
		return nil
	})
	if err != nil {
		s.recordFailure(ctx, "update", err, slog.String("journal_id", id))
		return err
	}

	metrics.EntriesUpdated.WithLabelValues(string(resulting)).Inc()
	s.LogInfo(ctx, "Journal entry updated",
		slog.String("journal_id", id),
		slog.String("status", string(resulting)))
	return nil
}

// ReverseEntry marks a posted entry Reversed, removes its balance impact and
// creates a draft mirror with debit and credit swapped. It returns the id of
// the mirror.
func (s *JournalService) ReverseEntry(ctx context.Context, id string, cancelReason string, userID string) (string, error) {
	var mirrorID string
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		original, err := repos.JournalRepo.FindEntryByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if original.Status != domain.Posted {
			return fmt.Errorf("%w: entry %s is %s", ErrEntryNotPosted, original.Number, original.Status)
		}
		lines, err := repos.JournalRepo.FindLinesByEntryID(ctx, id)
		if err != nil {
			return err
		}

		original.Status = domain.Reversed
		original.CancelReason = cancelReason
		original.Touch(userID, s.Now())
		if err := repos.JournalRepo.UpdateEntryHeader(ctx, *original); err != nil {
			return err
		}
		if err := s.ledger.AdjustBalances(ctx, repos, lines, Unapply); err != nil {
			return err
		}

		mirror, err := s.CreateEntryInTx(ctx, repos, domain.CreateEntryInput{
			Date:        domain.FormatDate(original.Date),
			Description: original.Description,
			Status:      domain.Draft,
			Lines:       toLineInputs(domain.MirrorLines(lines)),
			Type:        original.Type,
			ReversalOf:  original.ID,
			UserID:      userID,
		})
		if err != nil {
			return err
		}
		mirrorID = mirror.ID
		return nil
	})
	if err != nil {
		s.recordFailure(ctx, "reverse", err, slog.String("journal_id", id))
		return "", err
	}

	metrics.EntriesReversed.Inc()
	s.LogInfo(ctx, "Journal entry reversed",
		slog.String("journal_id", id),
		slog.String("mirror_id", mirrorID))
	return mirrorID, nil
}

func toLineInputs(lines []domain.JournalLine) []domain.LineInput {
	inputs := make([]domain.LineInput, len(lines))
	for i, l := range lines {
		inputs[i] = domain.LineInput{
			AccountCode: l.AccountCode,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Memo:        l.Memo,
			Department:  l.Department,
			Project:     l.Project,
		}
	}
	return inputs
}

// GetEntry loads an entry with its lines.
func (s *JournalService) GetEntry(ctx context.Context, id string) (*domain.JournalEntry, error) {
	entry, err := s.repos.JournalRepo.FindEntryByID(ctx, id)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get journal entry", slog.String("journal_id", id))
		}
		return nil, err
	}
	if entry.Lines, err = s.repos.JournalRepo.FindLinesByEntryID(ctx, id); err != nil {
		s.LogError(ctx, err, "Failed to get journal lines", slog.String("journal_id", id))
		return nil, err
	}
	return entry, nil
}

// ListEntries returns one page of entries with their lines, newest first.
func (s *JournalService) ListEntries(ctx context.Context, params domain.ListEntriesParams) ([]domain.JournalEntry, *string, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	var token *string
	if params.NextToken != "" {
		token = &params.NextToken
	}

	entries, next, err := s.repos.JournalRepo.ListEntries(ctx, params.Status, limit, token)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries")
		return nil, nil, err
	}
	if len(entries) == 0 {
		return entries, next, nil
	}

	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	linesByEntry, err := s.repos.JournalRepo.FindLinesByEntryIDs(ctx, ids)
	if err != nil {
		s.LogError(ctx, err, "Failed to load lines of journal page")
		return nil, nil, err
	}
	for i := range entries {
		entries[i].Lines = linesByEntry[entries[i].ID]
	}
	return entries, next, nil
}

// VerifyBalances recomputes every account balance from the lines of posted
// entries and reports the accounts whose stored balance differs. A reversed
// original is left out because its reversal already removed its impact.
func (s *JournalService) VerifyBalances(ctx context.Context) ([]domain.BalanceDrift, error) {
	accounts, err := s.repos.AccountRepo.ListAccounts(ctx, true)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts for verification")
		return nil, err
	}
	totals, err := s.repos.JournalRepo.SumLinesByAccount(ctx, []domain.EntryStatus{domain.Posted}, nil, nil)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum posted lines for verification")
		return nil, err
	}

	drifts := []domain.BalanceDrift{}
	for _, acc := range accounts {
		t := totals[acc.Code]
		expected := acc.Type.SignedDelta(t.Debit, t.Credit)
		if !expected.Equal(acc.Balance) {
			drifts = append(drifts, domain.BalanceDrift{
				AccountCode: acc.Code,
				Stored:      acc.Balance,
				Expected:    expected,
			})
		}
	}
	if len(drifts) > 0 {
		s.LogWarn(ctx, "Account balances drifted from line history", slog.Int("accounts", len(drifts)))
	}
	return drifts, nil
}
