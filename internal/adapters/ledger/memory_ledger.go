package ledger

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/backboard/email-router/internal/core"
)

// MemoryLedger is an in-memory implementation of the LedgerRepository
// interface. Entries only live for the lifetime of the process; each append
// is also logged so the audit trail is visible without a real datastore.
type MemoryLedger struct {
	entries []*core.LedgerEntry
	mu      sync.Mutex
	logger  *zap.Logger
}

// NewMemoryLedger creates a new in-memory ledger
func NewMemoryLedger(logger *zap.Logger) *MemoryLedger {
	return &MemoryLedger{
		logger: logger,
	}
}

// Append stores an audit entry for a routing decision
func (l *MemoryLedger) Append(ctx context.Context, entry *core.LedgerEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, entry)
	l.logger.Info("Ledger entry recorded",
		zap.String("sender", entry.Sender),
		zap.String("target", string(entry.Target)),
		zap.Time("routed_at", entry.RoutedAt))
	return nil
}

// Entries returns a snapshot of all recorded entries
func (l *MemoryLedger) Entries() []*core.LedgerEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]*core.LedgerEntry, len(l.entries))
	copy(out, l.entries)
	return out
}
