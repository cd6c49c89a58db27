package factory

import (
	"time"

	"go.uber.org/zap"

	"github.com/backboard/email-router/internal/adapters/dispatch"
	"github.com/backboard/email-router/internal/config"
	"github.com/backboard/email-router/internal/core"
)

// DispatcherFactory creates the action dispatcher and its collaborators
type DispatcherFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewDispatcherFactory creates a new dispatcher factory
func NewDispatcherFactory(cfg *config.Config, logger *zap.Logger) *DispatcherFactory {
	return &DispatcherFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateDispatcher creates the dispatcher. Collaborators without a configured
// endpoint fall back to log-only implementations.
func (f *DispatcherFactory) CreateDispatcher() (*core.Dispatcher, error) {
	dispatchCfg := f.cfg.GetDispatch()

	timeout, err := f.cfg.GetDuration("dispatch.http_timeout")
	if err != nil {
		timeout = 10 * time.Second
	}

	var remediator core.Remediator
	if dispatchCfg.RemediationURL != "" {
		remediator = dispatch.NewWebhookRemediator(dispatchCfg.RemediationURL, timeout, f.logger)
	} else {
		remediator = dispatch.NewLogRemediator(f.logger)
	}

	var notifier core.Notifier
	if dispatchCfg.SMTPEnabled && dispatchCfg.SMTPTo != "" {
		notifier = dispatch.NewSMTPNotifier(
			dispatchCfg.SMTPAddress,
			dispatchCfg.SMTPPort,
			dispatchCfg.SMTPFrom,
			dispatchCfg.SMTPTo,
			f.logger,
		)
	} else {
		notifier = dispatch.NewLogNotifier(f.logger)
	}

	var checker core.ConstraintChecker
	if dispatchCfg.ConstraintsURL != "" {
		checker = dispatch.NewHTTPConstraintChecker(dispatchCfg.ConstraintsURL, timeout, f.logger)
	} else {
		checker = dispatch.NewLogConstraintChecker(f.logger)
	}

	return core.NewDispatcher(remediator, notifier, checker, f.logger), nil
}
