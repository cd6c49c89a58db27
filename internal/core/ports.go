package core

import (
	"context"
)

// Classifier defines the interface for the routing classification service
type Classifier interface {
	// ClassifyEmail asks the classification service where an email should be routed
	ClassifyEmail(ctx context.Context, email *Email) (*RoutingDecision, error)
}

// LedgerRepository defines the interface for the routing decision audit log
type LedgerRepository interface {
	// Append stores an audit entry for a routing decision
	Append(ctx context.Context, entry *LedgerEntry) error
}

// Remediator forwards a recommended action to the downstream remediation agent
type Remediator interface {
	Remediate(ctx context.Context, action string) error
}

// Notifier sends a summary of a routed email back to the user
type Notifier interface {
	SendSummary(ctx context.Context, email *Email, decision *RoutingDecision) error
}

// ConstraintChecker queries the constraints service about a routing decision
type ConstraintChecker interface {
	Check(ctx context.Context, email *Email, decision *RoutingDecision) error
}
