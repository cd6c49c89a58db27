package ledger

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/backboard/email-router/internal/core"
)

// MySQLLedger is a MySQL implementation of the LedgerRepository interface
type MySQLLedger struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMySQLLedger creates a new MySQL ledger from a DSN
func NewMySQLLedger(dsn string, logger *zap.Logger) (*MySQLLedger, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to MySQL database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS routing_ledger (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			sender VARCHAR(255) NOT NULL,
			target VARCHAR(64) NOT NULL,
			routed_at TIMESTAMP NOT NULL,
			INDEX idx_ledger_sender (sender)
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &MySQLLedger{
		db:     db,
		logger: logger,
	}, nil
}

// Append stores an audit entry for a routing decision
func (l *MySQLLedger) Append(ctx context.Context, entry *core.LedgerEntry) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO routing_ledger (sender, target, routed_at)
		VALUES (?, ?, ?)
	`, entry.Sender, string(entry.Target), entry.RoutedAt.Format("2006-01-02 15:04:05"))
	if err != nil {
		return fmt.Errorf("failed to insert ledger entry: %w", err)
	}

	l.logger.Debug("Ledger entry recorded",
		zap.String("sender", entry.Sender),
		zap.String("target", string(entry.Target)),
		zap.Time("routed_at", entry.RoutedAt))
	return nil
}

// Close closes the database connection
func (l *MySQLLedger) Close() error {
	return l.db.Close()
}
