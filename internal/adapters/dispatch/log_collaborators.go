package dispatch

import (
	"context"

	"go.uber.org/zap"

	"github.com/backboard/email-router/internal/core"
)

// Log-only collaborators are used when no downstream endpoint is configured.
// They record the action that would have been taken and report success.

// LogRemediator logs remediation actions instead of forwarding them
type LogRemediator struct {
	logger *zap.Logger
}

// NewLogRemediator creates a log-only remediator
func NewLogRemediator(logger *zap.Logger) *LogRemediator {
	return &LogRemediator{logger: logger}
}

// Remediate logs the action that would have been forwarded
func (r *LogRemediator) Remediate(ctx context.Context, action string) error {
	r.logger.Info("Remediation action (log only)", zap.String("action", action))
	return nil
}

// LogNotifier logs summary notifications instead of sending them
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a log-only notifier
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// SendSummary logs the summary that would have been sent
func (n *LogNotifier) SendSummary(ctx context.Context, email *core.Email, decision *core.RoutingDecision) error {
	n.logger.Info("Summary notification (log only)",
		zap.String("sender", email.From),
		zap.String("subject", email.Subject),
		zap.String("action", decision.Action))
	return nil
}

// LogConstraintChecker logs constraint queries instead of issuing them
type LogConstraintChecker struct {
	logger *zap.Logger
}

// NewLogConstraintChecker creates a log-only constraint checker
func NewLogConstraintChecker(logger *zap.Logger) *LogConstraintChecker {
	return &LogConstraintChecker{logger: logger}
}

// Check logs the constraint query that would have been issued
func (c *LogConstraintChecker) Check(ctx context.Context, email *core.Email, decision *core.RoutingDecision) error {
	c.logger.Info("Constraint query (log only)",
		zap.String("sender", email.From),
		zap.String("action", decision.Action))
	return nil
}
