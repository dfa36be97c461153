package ledger

import (
	"context"

	"github.com/vuxmai/salary-in-discord/internal/models"
)

// Store is the persistence boundary for salary accounts and history.
// Implementations must make every mutation durable before returning.
type Store interface {
	// GetBalance returns the current balance for a user, or 0 if no
	// account exists yet.
	GetBalance(ctx context.Context, userID string) (float64, error)

	// UpsertBalance creates the account if absent, otherwise overwrites
	// its balance.
	UpsertBalance(ctx context.Context, userID string, balance float64) error

	// AppendEntry inserts a new history row and returns its assigned ID.
	AppendEntry(ctx context.Context, entry *models.SalaryEntry) (int, error)

	// ListEntries returns all entries for a user, most recent first.
	// An empty period returns every entry; otherwise only entries whose
	// period label matches.
	ListEntries(ctx context.Context, userID, period string) ([]models.SalaryEntry, error)

	// DeleteAccount removes the account row entirely.
	DeleteAccount(ctx context.Context, userID string) error

	// DeleteEntries removes every history row for a user.
	DeleteEntries(ctx context.Context, userID string) error

	// DeleteEntry removes exactly one history row by ID.
	DeleteEntry(ctx context.Context, entryID int) error
}
