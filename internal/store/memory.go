package store

import (
	"context"
	"sort"
	"sync"

	"github.com/vuxmai/salary-in-discord/internal/models"
)

// Memory is an in-process Store, used by tests and by the "memory" storage
// driver for local runs. State does not survive a restart.
type Memory struct {
	mu       sync.RWMutex
	balances map[string]float64
	entries  []models.SalaryEntry
	nextID   int
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		balances: make(map[string]float64),
		nextID:   1,
	}
}

func (m *Memory) GetBalance(ctx context.Context, userID string) (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.balances[userID], nil
}

func (m *Memory) UpsertBalance(ctx context.Context, userID string, balance float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[userID] = balance
	return nil
}

func (m *Memory) AppendEntry(ctx context.Context, entry *models.SalaryEntry) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry.ID = m.nextID
	m.nextID++
	m.entries = append(m.entries, *entry)
	return entry.ID, nil
}

func (m *Memory) ListEntries(ctx context.Context, userID, period string) ([]models.SalaryEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.SalaryEntry
	for _, e := range m.entries {
		if e.UserID != userID {
			continue
		}
		if period != "" && e.Period != period {
			continue
		}
		out = append(out, e)
	}

	// Most recent first, matching the Postgres ordering.
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ID > out[j].ID
	})

	return out, nil
}

func (m *Memory) DeleteAccount(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.balances, userID)
	return nil
}

func (m *Memory) DeleteEntries(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.entries[:0]
	for _, e := range m.entries {
		if e.UserID != userID {
			kept = append(kept, e)
		}
	}
	m.entries = kept
	return nil
}

func (m *Memory) DeleteEntry(ctx context.Context, entryID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, e := range m.entries {
		if e.ID == entryID {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}
	return nil
}
