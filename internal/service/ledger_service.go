package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/thatman123-source/cash-reconciliation/internal/dto"
	"github.com/thatman123-source/cash-reconciliation/internal/model"
	"github.com/thatman123-source/cash-reconciliation/internal/recon"
	"github.com/thatman123-source/cash-reconciliation/internal/repository"
	"github.com/thatman123-source/cash-reconciliation/internal/worker"
)

// LedgerService orchestrates entries and withdrawals against the store.
// Mismatch/difference are always rederived through the recon package on
// writes, and the safe totals are recomputed from the full entry history
// on every list — never maintained incrementally.
type LedgerService interface {
	ListEntries(ctx context.Context) (*dto.EntryListResponse, error)
	EntriesForDate(ctx context.Context, date string) ([]dto.EntryResponse, error)
	CreateEntry(ctx context.Context, req dto.CreateEntryRequest) (*dto.EntryResponse, error)
	UpdateEntry(ctx context.Context, id uuid.UUID, req dto.UpdateEntryRequest) (*dto.EntryResponse, error)
	DeleteEntry(ctx context.Context, id uuid.UUID) error
	ApproveEntry(ctx context.Context, id uuid.UUID, reason string) (*dto.EntryResponse, error)
	ListWithdrawals(ctx context.Context) ([]dto.WithdrawalResponse, error)
	RequestWithdrawal(ctx context.Context, req dto.WithdrawalRequest) (*dto.WithdrawalResponse, error)
	Totals(ctx context.Context) (*dto.SafeTotalsResponse, error)
}

type ledgerService struct {
	entries     repository.EntryRepository
	withdrawals repository.WithdrawalRepository
	dispatcher  *worker.Dispatcher
	// notifyEmail receives a notification whenever a mismatch is
	// approved; empty disables notifications.
	notifyEmail string
	now         func() time.Time

	// cached totals — a read-through cache refreshed on every list and
	// after every mutation, shown as-is when a refresh fails mid-flight.
	mu     sync.RWMutex
	totals dto.SafeTotalsResponse
}

func NewLedgerService(
	entries repository.EntryRepository,
	withdrawals repository.WithdrawalRepository,
	dispatcher *worker.Dispatcher,
	notifyEmail string,
) LedgerService {
	return &ledgerService{
		entries:     entries,
		withdrawals: withdrawals,
		dispatcher:  dispatcher,
		notifyEmail: notifyEmail,
		now:         time.Now,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func mapEntry(e model.Entry) dto.EntryResponse {
	return dto.EntryResponse{
		ID:              e.ID.String(),
		Date:            e.Date,
		CashIn:          e.CashIn,
		FrontSafe:       e.FrontSafe,
		BackSafe:        e.BackSafe,
		Deposited:       e.Deposited,
		Notes:           e.Notes,
		Mismatch:        e.Mismatch,
		Difference:      e.Difference,
		DifferenceLabel: recon.FormatDifference(e.Difference),
		Approved:        e.Approved,
		ApprovedReason:  e.ApprovedReason,
		CreatedAt:       e.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func mapWithdrawal(w model.Withdrawal) dto.WithdrawalResponse {
	return dto.WithdrawalResponse{
		ID:        w.ID.String(),
		Date:      w.Date,
		Amount:    w.Amount,
		Reason:    w.Reason,
		CreatedAt: w.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// ─── Entries ─────────────────────────────────────────────────────────────────

func (s *ledgerService) ListEntries(ctx context.Context) (*dto.EntryListResponse, error) {
	entries, err := s.entries.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	// Recompute totals from the rows just loaded, not from a counter.
	front, back := decimal.Zero, decimal.Zero
	for _, e := range entries {
		front = front.Add(e.FrontSafe)
		back = back.Add(e.BackSafe)
	}
	withdrawn, err := s.withdrawals.SumAmounts(ctx, nil)
	if err != nil {
		return nil, err
	}
	totals := dto.SafeTotalsResponse{
		FrontTotal:    front,
		BackTotal:     back,
		BackAvailable: back.Sub(withdrawn),
	}
	s.mu.Lock()
	s.totals = totals
	s.mu.Unlock()

	resp := &dto.EntryListResponse{
		Entries: make([]dto.EntryResponse, 0, len(entries)),
		Totals:  totals,
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, mapEntry(e))
	}
	return resp, nil
}

func (s *ledgerService) EntriesForDate(ctx context.Context, date string) ([]dto.EntryResponse, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	entries, err := s.entries.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.EntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, mapEntry(e))
	}
	return resp, nil
}

// validateAmounts rejects negative currency fields before they reach
// the engine. The engine itself stays permissive.
func validateAmounts(fields map[string]decimal.Decimal) error {
	for name, v := range fields {
		if v.IsNegative() {
			return fmt.Errorf("%w: %s must not be negative", ErrValidation, name)
		}
	}
	return nil
}

func (s *ledgerService) CreateEntry(ctx context.Context, req dto.CreateEntryRequest) (*dto.EntryResponse, error) {
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	if err := validateAmounts(map[string]decimal.Decimal{
		"cash_in": req.CashIn, "front_safe": req.FrontSafe,
		"back_safe": req.BackSafe, "deposited": req.Deposited,
	}); err != nil {
		return nil, err
	}

	// Idempotent replay: a retried create with the same client_ref
	// returns the row the first attempt appended.
	if req.ClientRef != nil {
		existing, err := s.entries.FindByClientRef(ctx, *req.ClientRef)
		if err == nil {
			resp := mapEntry(*existing)
			return &resp, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	mismatch, difference := recon.Compute(req.CashIn, req.FrontSafe, req.BackSafe, req.Deposited)
	entry := &model.Entry{
		Date:       req.Date,
		CashIn:     req.CashIn,
		FrontSafe:  req.FrontSafe,
		BackSafe:   req.BackSafe,
		Deposited:  req.Deposited,
		Notes:      req.Notes,
		Mismatch:   mismatch,
		Difference: difference,
		Approved:   false,
		ClientRef:  req.ClientRef,
	}
	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, err
	}
	s.refreshTotals(ctx)

	resp := mapEntry(*entry)
	return &resp, nil
}

func (s *ledgerService) UpdateEntry(ctx context.Context, id uuid.UUID, req dto.UpdateEntryRequest) (*dto.EntryResponse, error) {
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	if err := validateAmounts(map[string]decimal.Decimal{
		"cash_in": req.CashIn, "front_safe": req.FrontSafe,
		"back_safe": req.BackSafe, "deposited": req.Deposited,
	}); err != nil {
		return nil, err
	}

	entry, err := s.entries.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// Derived fields come from the NEW values; an edit can flip the
	// mismatch flag in either direction.
	mismatch, difference := recon.Compute(req.CashIn, req.FrontSafe, req.BackSafe, req.Deposited)

	// An approval covers a specific shortfall. If the edit changes the
	// computed difference, the old sign-off no longer describes what it
	// approved, so the entry reverts to unapproved and must be approved
	// again.
	if entry.Approved && !difference.Equal(entry.Difference) {
		entry.Approved = false
		entry.ApprovedReason = ""
	}

	entry.Date = req.Date
	entry.CashIn = req.CashIn
	entry.FrontSafe = req.FrontSafe
	entry.BackSafe = req.BackSafe
	entry.Deposited = req.Deposited
	entry.Notes = req.Notes
	entry.Mismatch = mismatch
	entry.Difference = difference

	if err := s.entries.Update(ctx, entry); err != nil {
		return nil, err
	}
	s.refreshTotals(ctx)

	resp := mapEntry(*entry)
	return &resp, nil
}

func (s *ledgerService) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	if err := s.entries.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.refreshTotals(ctx)
	return nil
}

func (s *ledgerService) ApproveEntry(ctx context.Context, id uuid.UUID, reason string) (*dto.EntryResponse, error) {
	entry, err := s.entries.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	approved, err := recon.Approve(*entry, reason)
	if err != nil {
		return nil, err
	}
	if err := s.entries.Update(ctx, &approved); err != nil {
		return nil, err
	}
	s.refreshTotals(ctx)
	s.notifyApproval(ctx, approved)

	resp := mapEntry(approved)
	return &resp, nil
}

// notifyApproval sends a fire-and-forget email to the supervisor inbox.
// Queue failures are logged, never surfaced — the approval itself has
// already been persisted.
func (s *ledgerService) notifyApproval(ctx context.Context, e model.Entry) {
	if s.dispatcher == nil || s.notifyEmail == "" {
		return
	}
	payload := worker.EmailJobPayload{
		ToEmail: s.notifyEmail,
		Subject: fmt.Sprintf("Mismatch approved for %s (%s)", e.Date, recon.FormatDifference(e.Difference)),
		Body: fmt.Sprintf(
			"Entry %s dated %s was approved.\n\nCash in: $%s\nDifference: %s\nReason: %s\n",
			e.ID, e.Date, e.CashIn.String(), recon.FormatDifference(e.Difference), e.ApprovedReason,
		),
	}
	if err := s.dispatcher.EnqueueEmail(ctx, payload); err != nil {
		log.Warn().Err(err).Str("entry_id", e.ID.String()).Msg("failed to enqueue approval notification")
	}
}

// ─── Withdrawals ─────────────────────────────────────────────────────────────

func (s *ledgerService) ListWithdrawals(ctx context.Context) ([]dto.WithdrawalResponse, error) {
	ws, err := s.withdrawals.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.WithdrawalResponse, 0, len(ws))
	for _, w := range ws {
		resp = append(resp, mapWithdrawal(w))
	}
	return resp, nil
}

func (s *ledgerService) RequestWithdrawal(ctx context.Context, req dto.WithdrawalRequest) (*dto.WithdrawalResponse, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}

	if req.ClientRef != nil {
		existing, err := s.withdrawals.FindByClientRef(ctx, *req.ClientRef)
		if err == nil {
			resp := mapWithdrawal(*existing)
			return &resp, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	withdrawal := &model.Withdrawal{
		Date:      s.now().Format("2006-01-02"),
		Amount:    req.Amount,
		Reason:    req.Reason,
		ClientRef: req.ClientRef,
	}

	// Sufficiency check and append run inside one transaction, and the
	// advisory lock serializes the whole check: without it, READ
	// COMMITTED lets two concurrent transactions both read the same
	// aggregate balance and both insert. Available balance nets prior
	// withdrawals out of the back-safe sum.
	txErr := runTx(ctx, s.withdrawals.DB(), func(tx *gorm.DB) error {
		if err := s.withdrawals.LockBackSafe(ctx, tx); err != nil {
			return err
		}
		_, back, err := s.entries.SumSafes(ctx, tx)
		if err != nil {
			return err
		}
		withdrawn, err := s.withdrawals.SumAmounts(ctx, tx)
		if err != nil {
			return err
		}
		available := back.Sub(withdrawn)
		if req.Amount.GreaterThan(available) {
			return fmt.Errorf("%w: requested $%s, available $%s",
				ErrInsufficientFunds, req.Amount.String(), available.String())
		}
		return s.withdrawals.Create(ctx, tx, withdrawal)
	})
	if txErr != nil {
		return nil, txErr
	}
	s.refreshTotals(ctx)

	resp := mapWithdrawal(*withdrawal)
	return &resp, nil
}

// ─── Totals ──────────────────────────────────────────────────────────────────

func (s *ledgerService) Totals(ctx context.Context) (*dto.SafeTotalsResponse, error) {
	front, back, err := s.entries.SumSafes(ctx, nil)
	if err != nil {
		return nil, err
	}
	withdrawn, err := s.withdrawals.SumAmounts(ctx, nil)
	if err != nil {
		return nil, err
	}
	totals := dto.SafeTotalsResponse{
		FrontTotal:    front,
		BackTotal:     back,
		BackAvailable: back.Sub(withdrawn),
	}
	s.mu.Lock()
	s.totals = totals
	s.mu.Unlock()
	return &totals, nil
}

// refreshTotals recomputes the cached totals after a mutation. A failed
// refresh keeps the previous snapshot — the next successful list fixes
// it, matching the stale-until-reload contract.
func (s *ledgerService) refreshTotals(ctx context.Context) {
	if _, err := s.Totals(ctx); err != nil {
		log.Warn().Err(err).Msg("totals refresh failed; serving stale totals until next reload")
	}
}
