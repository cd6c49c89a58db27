package ledger

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/backboard/email-router/internal/core"
)

func TestMemoryLedgerAppend(t *testing.T) {
	l := NewMemoryLedger(zap.NewNop())
	ctx := context.Background()

	entries := []*core.LedgerEntry{
		{Sender: "a@example.com", Target: core.TargetGeminiKnight, RoutedAt: time.Now()},
		{Sender: "b@example.com", Target: core.TargetUser, RoutedAt: time.Now()},
	}

	for _, e := range entries {
		if err := l.Append(ctx, e); err != nil {
			t.Fatalf("append %s: %v", e.Sender, err)
		}
	}

	got := l.Entries()
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].Sender != "a@example.com" || got[0].Target != core.TargetGeminiKnight {
		t.Errorf("unexpected first entry %+v", got[0])
	}
	if got[1].Sender != "b@example.com" {
		t.Errorf("unexpected second entry %+v", got[1])
	}
}

func TestMemoryLedgerEntriesSnapshot(t *testing.T) {
	l := NewMemoryLedger(zap.NewNop())
	ctx := context.Background()

	if err := l.Append(ctx, &core.LedgerEntry{Sender: "a@example.com", Target: core.TargetUser, RoutedAt: time.Now()}); err != nil {
		t.Fatalf("append: %v", err)
	}

	snapshot := l.Entries()
	if err := l.Append(ctx, &core.LedgerEntry{Sender: "b@example.com", Target: core.TargetUser, RoutedAt: time.Now()}); err != nil {
		t.Fatalf("append: %v", err)
	}

	if len(snapshot) != 1 {
		t.Errorf("snapshot should not grow after later appends, got %d entries", len(snapshot))
	}
}
