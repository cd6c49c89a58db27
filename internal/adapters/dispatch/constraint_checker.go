package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/backboard/email-router/internal/core"
)

// HTTPConstraintChecker queries the Lumo constraints service over HTTP
type HTTPConstraintChecker struct {
	endpoint string
	client   *http.Client
	logger   *zap.Logger
}

// NewHTTPConstraintChecker creates a new constraints service client
func NewHTTPConstraintChecker(endpoint string, timeout time.Duration, logger *zap.Logger) *HTTPConstraintChecker {
	return &HTTPConstraintChecker{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// Check submits the routing decision for a constraint evaluation
func (c *HTTPConstraintChecker) Check(ctx context.Context, email *core.Email, decision *core.RoutingDecision) error {
	payload, err := json.Marshal(map[string]string{
		"sender":  email.From,
		"subject": email.Subject,
		"target":  string(decision.Target),
		"action":  decision.Action,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal constraint query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build constraint request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("constraint query failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("constraints service returned status %d", resp.StatusCode)
	}

	c.logger.Info("Constraint check completed", zap.String("sender", email.From))
	return nil
}
