package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vuxmai/salary-in-discord/internal/models"
)

func TestMemoryGetBalanceUnknownUser(t *testing.T) {
	m := NewMemory()
	balance, err := m.GetBalance(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Equal(t, 0.0, balance)
}

func TestMemoryUpsertBalance(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.UpsertBalance(ctx, "u1", 12.5))
	balance, err := m.GetBalance(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 12.5, balance)

	require.NoError(t, m.UpsertBalance(ctx, "u1", -3))
	balance, err = m.GetBalance(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, -3.0, balance)
}

func TestMemoryAppendAssignsIncreasingIDs(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	first := &models.SalaryEntry{UserID: "u1", Timestamp: time.Now(), Amount: 1}
	second := &models.SalaryEntry{UserID: "u1", Timestamp: time.Now(), Amount: 2}

	id1, err := m.AppendEntry(ctx, first)
	require.NoError(t, err)
	id2, err := m.AppendEntry(ctx, second)
	require.NoError(t, err)

	assert.Greater(t, id2, id1)
	assert.Equal(t, id1, first.ID)
	assert.Equal(t, id2, second.ID)
}

func TestMemoryListEntriesOrderedByTimestampDesc(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	base := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	// Inserted out of timestamp order on purpose: ordering must follow
	// the timestamps, not the assigned IDs.
	stamps := []time.Time{base.Add(time.Hour), base, base.Add(2 * time.Hour)}
	for i, ts := range stamps {
		_, err := m.AppendEntry(ctx, &models.SalaryEntry{
			UserID:    "u1",
			Timestamp: ts,
			Amount:    float64(i),
			Period:    "2024-01-01 00:00:00",
		})
		require.NoError(t, err)
	}

	entries, err := m.ListEntries(ctx, "u1", "")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.True(t, entries[0].Timestamp.After(entries[1].Timestamp))
	assert.True(t, entries[1].Timestamp.After(entries[2].Timestamp))
}

func TestMemoryListEntriesFiltersByPeriod(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, err := m.AppendEntry(ctx, &models.SalaryEntry{UserID: "u1", Timestamp: time.Now(), Period: "jan"})
	require.NoError(t, err)
	_, err = m.AppendEntry(ctx, &models.SalaryEntry{UserID: "u1", Timestamp: time.Now(), Period: "feb"})
	require.NoError(t, err)
	_, err = m.AppendEntry(ctx, &models.SalaryEntry{UserID: "u2", Timestamp: time.Now(), Period: "jan"})
	require.NoError(t, err)

	entries, err := m.ListEntries(ctx, "u1", "jan")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "jan", entries[0].Period)
	assert.Equal(t, "u1", entries[0].UserID)
}

func TestMemoryDeleteEntry(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	id1, err := m.AppendEntry(ctx, &models.SalaryEntry{UserID: "u1", Timestamp: time.Now()})
	require.NoError(t, err)
	_, err = m.AppendEntry(ctx, &models.SalaryEntry{UserID: "u1", Timestamp: time.Now()})
	require.NoError(t, err)

	require.NoError(t, m.DeleteEntry(ctx, id1))

	entries, err := m.ListEntries(ctx, "u1", "")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotEqual(t, id1, entries[0].ID)
}

func TestMemoryDeleteAccountAndEntries(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.UpsertBalance(ctx, "u1", 10))
	_, err := m.AppendEntry(ctx, &models.SalaryEntry{UserID: "u1", Timestamp: time.Now()})
	require.NoError(t, err)
	_, err = m.AppendEntry(ctx, &models.SalaryEntry{UserID: "u2", Timestamp: time.Now()})
	require.NoError(t, err)

	require.NoError(t, m.DeleteAccount(ctx, "u1"))
	require.NoError(t, m.DeleteEntries(ctx, "u1"))

	balance, err := m.GetBalance(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 0.0, balance)

	entries, err := m.ListEntries(ctx, "u1", "")
	require.NoError(t, err)
	assert.Empty(t, entries)

	// Other users are untouched.
	entries, err = m.ListEntries(ctx, "u2", "")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
