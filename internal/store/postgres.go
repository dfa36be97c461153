package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/viper"

	"github.com/vuxmai/salary-in-discord/internal/models"
)

// Postgres is the pgx-backed Store used in production.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a PostgreSQL connection pool from viper configuration
// and returns a Store backed by it.
func NewPostgres(ctx context.Context) (*Postgres, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable search_path=%s",
		viper.GetString("PostgreSQL.Host"),
		viper.GetString("PostgreSQL.Port"),
		viper.GetString("PostgreSQL.User"),
		viper.GetString("PostgreSQL.Password"),
		viper.GetString("PostgreSQL.DBName"),
		viper.GetString("PostgreSQL.Schema"),
	)

	connectConf, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to parse PostgreSQL config: %w", err)
	}

	connectConf.MaxConns = int32(viper.GetInt("PostgreSQL.PoolMaxConns"))
	connectConf.HealthCheckPeriod = 15 * time.Second
	connectConf.ConnConfig.ConnectTimeout = 5 * time.Second

	// Set timezone to PGX runtime
	if s := os.Getenv("TZ"); s != "" {
		connectConf.ConnConfig.RuntimeParams["timezone"] = s
	}

	pool, err := pgxpool.NewWithConfig(ctx, connectConf)
	if err != nil {
		return nil, fmt.Errorf("unable to create PostgreSQL connection pool: %w", err)
	}

	log.Println("Connected to PostgreSQL successfully")
	return &Postgres{pool: pool}, nil
}

// Migrate sets up the database schema
func (p *Postgres) Migrate(ctx context.Context) error {
	log.Println("Starting database migration...")

	// Schema for salary_accounts table
	accountsSchema := `
    CREATE TABLE IF NOT EXISTS salary_accounts (
        user_id VARCHAR(50) PRIMARY KEY,
        balance DOUBLE PRECISION NOT NULL DEFAULT 0
    );`
	if _, err := p.pool.Exec(ctx, accountsSchema); err != nil {
		return fmt.Errorf("failed to migrate salary_accounts table: %w", err)
	}

	// Schema for salary_history table
	historySchema := `
    CREATE TABLE IF NOT EXISTS salary_history (
        id SERIAL PRIMARY KEY,
        user_id VARCHAR(50) NOT NULL,
        ts TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
        amount DOUBLE PRECISION NOT NULL,
        operation VARCHAR(10) NOT NULL,
        executor_id VARCHAR(50) NOT NULL,
        resulting_balance DOUBLE PRECISION NOT NULL,
        period VARCHAR(50) NOT NULL
    );
    CREATE INDEX IF NOT EXISTS idx_salary_history_user_id ON salary_history(user_id);
    CREATE INDEX IF NOT EXISTS idx_salary_history_user_period ON salary_history(user_id, period);`
	if _, err := p.pool.Exec(ctx, historySchema); err != nil {
		return fmt.Errorf("failed to migrate salary_history table: %w", err)
	}

	log.Println("Database migration completed successfully")
	return nil
}

// Close releases the underlying connection pool.
func (p *Postgres) Close() {
	p.pool.Close()
}

// GetBalance returns the user's current balance, or 0 for an unknown user.
func (p *Postgres) GetBalance(ctx context.Context, userID string) (float64, error) {
	var balance float64
	err := p.pool.QueryRow(ctx,
		`SELECT balance FROM salary_accounts WHERE user_id = $1`, userID).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("error getting balance for user %s: %w", userID, err)
	}
	return balance, nil
}

// UpsertBalance creates or overwrites the user's account balance.
func (p *Postgres) UpsertBalance(ctx context.Context, userID string, balance float64) error {
	query := `
        INSERT INTO salary_accounts (user_id, balance)
        VALUES ($1, $2)
        ON CONFLICT (user_id)
        DO UPDATE SET balance = EXCLUDED.balance;
    `
	if _, err := p.pool.Exec(ctx, query, userID, balance); err != nil {
		return fmt.Errorf("failed to upsert balance for user %s: %w", userID, err)
	}
	return nil
}

// AppendEntry inserts a new salary history row and returns its ID.
func (p *Postgres) AppendEntry(ctx context.Context, entry *models.SalaryEntry) (int, error) {
	var entryID int
	err := p.pool.QueryRow(ctx,
		`INSERT INTO salary_history (user_id, ts, amount, operation, executor_id, resulting_balance, period)
         VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		entry.UserID, entry.Timestamp, entry.Amount, entry.Operation,
		entry.ExecutorID, entry.ResultingBalance, entry.Period).Scan(&entryID)
	if err != nil {
		return 0, fmt.Errorf("failed to append salary history entry: %w", err)
	}
	entry.ID = entryID
	return entryID, nil
}

// ListEntries returns the user's history rows, most recent first.
func (p *Postgres) ListEntries(ctx context.Context, userID, period string) ([]models.SalaryEntry, error) {
	query := `
        SELECT id, user_id, ts, amount, operation, executor_id, resulting_balance, period
        FROM salary_history
        WHERE user_id = $1
        ORDER BY ts DESC, id DESC`
	args := []interface{}{userID}
	if period != "" {
		query = `
        SELECT id, user_id, ts, amount, operation, executor_id, resulting_balance, period
        FROM salary_history
        WHERE user_id = $1 AND period = $2
        ORDER BY ts DESC, id DESC`
		args = append(args, period)
	}

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying salary history for user %s: %w", userID, err)
	}
	defer rows.Close()

	var entries []models.SalaryEntry
	for rows.Next() {
		var e models.SalaryEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Timestamp, &e.Amount,
			&e.Operation, &e.ExecutorID, &e.ResultingBalance, &e.Period); err != nil {
			return nil, fmt.Errorf("error scanning salary history row: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating salary history rows: %w", err)
	}

	return entries, nil
}

// DeleteAccount removes the user's account row.
func (p *Postgres) DeleteAccount(ctx context.Context, userID string) error {
	if _, err := p.pool.Exec(ctx,
		`DELETE FROM salary_accounts WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete account for user %s: %w", userID, err)
	}
	return nil
}

// DeleteEntries removes every history row for the user.
func (p *Postgres) DeleteEntries(ctx context.Context, userID string) error {
	if _, err := p.pool.Exec(ctx,
		`DELETE FROM salary_history WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete history for user %s: %w", userID, err)
	}
	return nil
}

// DeleteEntry removes exactly one history row by ID.
func (p *Postgres) DeleteEntry(ctx context.Context, entryID int) error {
	if _, err := p.pool.Exec(ctx,
		`DELETE FROM salary_history WHERE id = $1`, entryID); err != nil {
		return fmt.Errorf("failed to delete history entry %d: %w", entryID, err)
	}
	return nil
}
