package ingress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/backboard/email-router/internal/core"
)

// CliIngress routes a single email read from a reader and prints the action
// result as JSON on the writer
type CliIngress struct {
	service *core.RouterService
	logger  *zap.Logger
	out     io.Writer
	timeout time.Duration
}

// NewCliIngress creates a new CLI ingress
func NewCliIngress(service *core.RouterService, logger *zap.Logger, out io.Writer, timeout time.Duration) *CliIngress {
	return &CliIngress{
		service: service,
		logger:  logger,
		out:     out,
		timeout: timeout,
	}
}

// ProcessEmail routes one email and writes {"status","target"} to the output
func (f *CliIngress) ProcessEmail(ctx context.Context, email *core.Email) (*core.ActionResult, error) {
	f.logger.Debug("Processing email", zap.String("sender", email.From))

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	result, err := f.service.RouteEmail(ctx, email)
	if err != nil {
		var dispatchErr *core.DispatchError
		if result == nil || !errors.As(err, &dispatchErr) {
			return nil, err
		}
		// Dispatch failed but a terminal result exists; report it and let
		// the caller decide on the exit code.
		f.logger.Error("Dispatch failed", zap.Error(err))
	}

	enc := json.NewEncoder(f.out)
	enc.SetIndent("", "  ")
	if encErr := enc.Encode(result); encErr != nil {
		return nil, fmt.Errorf("failed to encode result: %w", encErr)
	}

	return result, err
}

// Start is a no-op for the CLI ingress
func (f *CliIngress) Start() error {
	return nil
}

// Stop is a no-op for the CLI ingress
func (f *CliIngress) Stop() error {
	return nil
}
