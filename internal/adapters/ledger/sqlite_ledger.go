package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/backboard/email-router/internal/core"
)

// SQLiteLedger is a SQLite implementation of the LedgerRepository interface
type SQLiteLedger struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteLedger creates a new SQLite ledger
func NewSQLiteLedger(dbPath string, logger *zap.Logger) (*SQLiteLedger, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS routing_ledger (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			sender TEXT NOT NULL,
			target TEXT NOT NULL,
			routed_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	// Index on sender for audit queries
	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_ledger_sender ON routing_ledger(sender)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	return &SQLiteLedger{
		db:     db,
		logger: logger,
	}, nil
}

// Append stores an audit entry for a routing decision
func (l *SQLiteLedger) Append(ctx context.Context, entry *core.LedgerEntry) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO routing_ledger (sender, target, routed_at)
		VALUES (?, ?, ?)
	`, entry.Sender, string(entry.Target), entry.RoutedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert ledger entry: %w", err)
	}

	l.logger.Debug("Ledger entry recorded",
		zap.String("sender", entry.Sender),
		zap.String("target", string(entry.Target)))
	return nil
}

// Close closes the database connection
func (l *SQLiteLedger) Close() error {
	return l.db.Close()
}
