package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"coinScout/internal/ports"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Repository implements ports.HistoryStore over the trading bot's SQLite database.
// The database is opened read-only; the trading bot is the only writer.
type Repository struct {
	db     *sql.DB
	logger ports.Logger
	path   string
}

// Config holds configuration for the SQLite repository.
type Config struct {
	DBPath string
	Logger ports.Logger
}

// NewRepository opens the database at cfg.DBPath in read-only mode.
// A missing file or a failed connection is reported as ports.ErrStoreUnavailable.
func NewRepository(cfg Config) (*Repository, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for SQLite repository")
	}
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = "./data/crypto_trading.db"
	}

	if _, err := os.Stat(dbPath); err != nil {
		err = fmt.Errorf("unable to find database file at '%s': %w: %w", dbPath, ports.ErrStoreUnavailable, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	db, err := sql.Open("sqlite3", "file:"+dbPath+"?mode=ro&_busy_timeout=5000")
	if err != nil {
		err = fmt.Errorf("failed to open database at '%s': %w: %w", dbPath, ports.ErrStoreUnavailable, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		err = fmt.Errorf("failed to ping database at '%s': %w: %w", dbPath, ports.ErrStoreUnavailable, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	// Every snapshot is a single transaction on a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	cfg.Logger.Debug(context.Background(), "SQLite database opened read-only", map[string]interface{}{"path": dbPath})
	return &Repository{db: db, logger: cfg.Logger, path: dbPath}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	if r.db != nil {
		r.logger.Debug(context.Background(), "Closing SQLite database connection")
		return r.db.Close()
	}
	return nil
}

// Snapshot opens a read-only transaction. All queries of one analytics call run on it,
// so they see one consistent state of the database.
func (r *Repository) Snapshot(ctx context.Context) (ports.HistorySnapshot, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		err = fmt.Errorf("failed to begin read transaction on '%s': %w: %w", r.path, ports.ErrStoreUnavailable, err)
		r.logger.Error(ctx, err, "Unable to open history snapshot")
		return nil, err
	}
	return &snapshot{tx: tx, logger: r.logger}, nil
}

// snapshot implements ports.HistorySnapshot on top of one read-only transaction.
type snapshot struct {
	tx          *sql.Tx
	logger      ports.Logger
	hasDeposits *bool
}

// Close ends the read transaction. Closing twice is a no-op.
func (s *snapshot) Close() error {
	if err := s.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("failed to close history snapshot: %w", err)
	}
	return nil
}

// queryFailed wraps a driver error as a store failure.
func queryFailed(what string, err error) error {
	return fmt.Errorf("failed to query %s: %w: %w: %w", what, ports.ErrStoreUnavailable, ports.ErrQueryFailed, err)
}
