package testdb

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
)

// TestTimeout bounds connecting to and preparing a test database.
const TestTimeout = 10 * time.Second

// OpenPostgres connects to the configured Postgres test database and runs
// prepare (typically the migrations) on it. The connection is closed when
// the test ends. The test is skipped if no URL is configured.
func OpenPostgres(t *testing.T, prepare func(ctx context.Context, db *sql.DB) error) *sql.DB {
	t.Helper()

	url := PostgresURL()
	if url == "" {
		t.Skipf("%s not set, skipping PostgreSQL integration test", EnvDatabaseURL)
	}

	db, err := sql.Open("pgx", url)
	if err != nil {
		t.Fatalf("failed to open database: %s", formatConnectionError(err, url))
	}
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("database connection failed: %s", formatConnectionError(err, url))
	}

	if prepare != nil {
		if err := prepare(ctx, db); err != nil {
			t.Fatalf("failed to prepare test database: %v", err)
		}
	}
	return db
}

// WithTx runs fn inside a transaction that is always rolled back, so the
// test leaves no rows behind.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			// ALLOW-PANIC
			panic(r)
		}

		// sql.ErrTxDone is expected if fn already ended the transaction
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("Warning: failed to rollback transaction: %v", err)
		}
	}()

	fn(t, tx)
}
