package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver

	"github.com/phrazzld/taskmate-api/internal/config"
	"github.com/phrazzld/taskmate-api/internal/platform/mongodb"
	"github.com/phrazzld/taskmate-api/internal/platform/postgres"
	"github.com/phrazzld/taskmate-api/internal/store"
)

// startupTimeout bounds connecting, pinging and preparing the schema.
const startupTimeout = 30 * time.Second

// storeBackend bundles the stores of one database driver with the function
// that releases its connections.
type storeBackend struct {
	accounts store.AccountStore
	tasks    store.TaskStore
	close    func(ctx context.Context) error
}

// openStores connects to the backend selected by cfg.Database.Driver and
// prepares its schema.
func openStores(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*storeBackend, error) {
	ctx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	switch cfg.Database.Driver {
	case config.DriverPostgres:
		return openPostgresStores(ctx, cfg, logger)
	case config.DriverMongo:
		return openMongoStores(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

func openPostgresStores(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*storeBackend, error) {
	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	// Configure connection pool with reasonable defaults
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := postgres.Migrate(ctx, db, logger); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Info("Database connection established", slog.String("driver", config.DriverPostgres))
	return &storeBackend{
		accounts: postgres.NewPostgresAccountStore(db, logger),
		tasks:    postgres.NewPostgresTaskStore(db, logger),
		close: func(context.Context) error {
			return db.Close()
		},
	}, nil
}

func openMongoStores(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*storeBackend, error) {
	client, err := mongodb.Connect(ctx, cfg.Database.URL, logger)
	if err != nil {
		return nil, err
	}

	db := client.Database(cfg.Database.Name)
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	logger.Info("Database connection established",
		slog.String("driver", config.DriverMongo),
		slog.String("database", cfg.Database.Name))
	return &storeBackend{
		accounts: mongodb.NewMongoAccountStore(db, logger),
		tasks:    mongodb.NewMongoTaskStore(db, logger),
		close:    client.Disconnect,
	}, nil
}
