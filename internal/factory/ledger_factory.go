package factory

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/backboard/email-router/internal/adapters/ledger"
	"github.com/backboard/email-router/internal/config"
	"github.com/backboard/email-router/internal/core"
)

// LedgerFactory creates decision ledgers based on configuration
type LedgerFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewLedgerFactory creates a new ledger factory
func NewLedgerFactory(cfg *config.Config, logger *zap.Logger) *LedgerFactory {
	return &LedgerFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateLedger creates a ledger repository based on the configuration
func (f *LedgerFactory) CreateLedger() (core.LedgerRepository, error) {
	ledgerCfg := f.cfg.GetLedger()

	switch ledgerCfg.Type {
	case "memory":
		return ledger.NewMemoryLedger(f.logger), nil
	case "sqlite":
		// Ensure directory exists
		if err := os.MkdirAll(filepath.Dir(ledgerCfg.SQLitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
		return ledger.NewSQLiteLedger(ledgerCfg.SQLitePath, f.logger)
	case "mysql":
		if ledgerCfg.DatabaseURL == "" {
			return nil, fmt.Errorf("ledger.database_url is required for the mysql ledger")
		}
		return ledger.NewMySQLLedger(ledgerCfg.DatabaseURL, f.logger)
	default:
		return nil, fmt.Errorf("unsupported ledger type: %s", ledgerCfg.Type)
	}
}
