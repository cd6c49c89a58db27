package ports

import (
	"context"

	"github.com/backboard/email-router/internal/core"
)

// EmailIngress defines the interface for sources that feed emails into the
// routing pipeline
type EmailIngress interface {
	// ProcessEmail routes a single email and returns the action result
	ProcessEmail(ctx context.Context, email *core.Email) (*core.ActionResult, error)

	// Start starts the ingress
	Start() error

	// Stop stops the ingress
	Stop() error
}
