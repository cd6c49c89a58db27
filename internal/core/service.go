package core

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RouterService is the core service for email routing. It runs the pipeline
// once per email: classify, append to the ledger, dispatch the action.
type RouterService struct {
	classifier Classifier
	ledger     LedgerRepository
	dispatcher *Dispatcher
	logger     *zap.Logger
}

// NewRouterService creates a new router service
func NewRouterService(
	classifier Classifier,
	ledger LedgerRepository,
	dispatcher *Dispatcher,
	logger *zap.Logger,
) *RouterService {
	return &RouterService{
		classifier: classifier,
		ledger:     ledger,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// RouteEmail runs a single email through the full pipeline. Every email that
// classifies successfully produces exactly one ledger entry and exactly one
// action result; a classification failure short-circuits both.
func (s *RouterService) RouteEmail(ctx context.Context, email *Email) (*ActionResult, error) {
	decision, err := s.classifier.ClassifyEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Classified email",
		zap.String("sender", email.From),
		zap.String("target", string(decision.Target)),
		zap.String("action", decision.Action),
		zap.String("model", decision.ModelUsed))

	entry := &LedgerEntry{
		Sender:   email.From,
		Target:   decision.Target,
		RoutedAt: time.Now(),
	}
	if err := s.ledger.Append(ctx, entry); err != nil {
		// The ledger is an audit trail, not a gate. Log and keep routing.
		s.logger.Error("Failed to append ledger entry",
			zap.Error(err),
			zap.String("sender", email.From))
	}

	return s.dispatcher.Dispatch(ctx, decision, email)
}

// Dispatcher maps a routing decision to a concrete downstream side effect
type Dispatcher struct {
	remediator Remediator
	notifier   Notifier
	checker    ConstraintChecker
	logger     *zap.Logger
}

// NewDispatcher creates a new action dispatcher
func NewDispatcher(
	remediator Remediator,
	notifier Notifier,
	checker ConstraintChecker,
	logger *zap.Logger,
) *Dispatcher {
	return &Dispatcher{
		remediator: remediator,
		notifier:   notifier,
		checker:    checker,
		logger:     logger,
	}
}

// Dispatch executes the downstream action for a routing decision. An unknown
// target executes no action but still reports executed; a collaborator
// failure reports failed and returns a DispatchError.
func (d *Dispatcher) Dispatch(ctx context.Context, decision *RoutingDecision, email *Email) (*ActionResult, error) {
	var err error

	switch decision.Target {
	case TargetGeminiKnight:
		d.logger.Info("Routing to Gemini Knight",
			zap.String("action", decision.Action),
			zap.String("sender", email.From))
		err = d.remediator.Remediate(ctx, decision.Action)
	case TargetUser:
		d.logger.Info("Sending summary to user", zap.String("sender", email.From))
		err = d.notifier.SendSummary(ctx, email, decision)
	case TargetLumoArchitect:
		d.logger.Info("Querying Lumo for constraints", zap.String("sender", email.From))
		err = d.checker.Check(ctx, email, decision)
	case TargetUnknown:
		d.logger.Warn("No action for unknown routing target",
			zap.String("sender", email.From),
			zap.String("raw_decision", decision.Raw))
	default:
		// A target that never went through ParseRoutingTarget. Treated the
		// same as unknown: no action, target echoed back unchanged.
		d.logger.Warn("No action for unrecognized routing target",
			zap.String("sender", email.From),
			zap.String("target", string(decision.Target)))
	}

	if err != nil {
		return &ActionResult{Status: StatusFailed, Target: decision.Target},
			&DispatchError{Target: decision.Target, Err: err}
	}

	return &ActionResult{Status: StatusExecuted, Target: decision.Target}, nil
}
