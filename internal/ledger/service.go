package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vuxmai/salary-in-discord/internal/models"
)

// Service is the only component that changes a balance. Every balance
// change produces exactly one matching history row (or, for undo, removes
// exactly one row and inverse-adjusts the balance).
//
// Mutations are serialized per user so two concurrent adjustments to the
// same account cannot lose an update.
type Service struct {
	store Store

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewService creates a Service backed by the given store.
func NewService(store Store) *Service {
	return &Service{
		store: store,
		locks: make(map[string]*sync.Mutex),
	}
}

// userLock returns the mutex guarding one user's read-modify-write.
func (s *Service) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	return lock
}

// ApplyAdjustment adds a signed amount to a user's balance and appends a
// matching history entry. The account is created with balance 0 on first
// use. Returns the new balance.
func (s *Service) ApplyAdjustment(ctx context.Context, userID string, amount float64, operation, executorID, period string) (float64, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	balance, err := s.store.GetBalance(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to read balance for %s: %w", userID, err)
	}

	newBalance := balance + amount
	if err := s.store.UpsertBalance(ctx, userID, newBalance); err != nil {
		return 0, fmt.Errorf("failed to update balance for %s: %w", userID, err)
	}

	entry := &models.SalaryEntry{
		UserID:           userID,
		Timestamp:        time.Now(),
		Amount:           amount,
		Operation:        operation,
		ExecutorID:       executorID,
		ResultingBalance: newBalance,
		Period:           period,
	}
	if _, err := s.store.AppendEntry(ctx, entry); err != nil {
		return 0, fmt.Errorf("failed to append history entry for %s: %w", userID, err)
	}

	return newBalance, nil
}

// ResetAccount deletes the account and all of its history rows.
// Irreversible: no undo history survives a reset.
func (s *Service) ResetAccount(ctx context.Context, userID string) error {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.store.DeleteAccount(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete account %s: %w", userID, err)
	}
	if err := s.store.DeleteEntries(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete history for %s: %w", userID, err)
	}
	return nil
}

// UndoLatest reverts the single most recent history entry matching the
// given period: its amount is inverted onto the balance and the entry is
// deleted. Returns the undone entry, or nil if no entry matched.
func (s *Service) UndoLatest(ctx context.Context, userID, period string) (*models.SalaryEntry, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	entries, err := s.store.ListEntries(ctx, userID, period)
	if err != nil {
		return nil, fmt.Errorf("failed to list history for %s: %w", userID, err)
	}
	if len(entries) == 0 {
		return nil, nil
	}

	// Entries come back most recent first.
	latest := entries[0]

	balance, err := s.store.GetBalance(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read balance for %s: %w", userID, err)
	}
	if err := s.store.UpsertBalance(ctx, userID, balance-latest.Amount); err != nil {
		return nil, fmt.Errorf("failed to restore balance for %s: %w", userID, err)
	}
	if err := s.store.DeleteEntry(ctx, latest.ID); err != nil {
		return nil, fmt.Errorf("failed to delete history entry %d: %w", latest.ID, err)
	}

	return &latest, nil
}

// History returns a user's history entries, most recent first, optionally
// filtered to one period.
func (s *Service) History(ctx context.Context, userID, period string) ([]models.SalaryEntry, error) {
	return s.store.ListEntries(ctx, userID, period)
}

// Balance returns a user's current balance (0 for a user with no account).
func (s *Service) Balance(ctx context.Context, userID string) (float64, error) {
	return s.store.GetBalance(ctx, userID)
}
