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
)

// WebhookRemediator forwards remediation actions to the Gemini Knight
// endpoint as HTTP POSTs. Each call is bounded by an explicit timeout and
// the response body is always drained and released.
type WebhookRemediator struct {
	endpoint string
	client   *http.Client
	logger   *zap.Logger
}

// NewWebhookRemediator creates a new webhook remediator
func NewWebhookRemediator(endpoint string, timeout time.Duration, logger *zap.Logger) *WebhookRemediator {
	return &WebhookRemediator{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// Remediate forwards the action string. The response payload is not consumed.
func (r *WebhookRemediator) Remediate(ctx context.Context, action string) error {
	payload, err := json.Marshal(map[string]string{"action": action})
	if err != nil {
		return fmt.Errorf("failed to marshal remediation payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build remediation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("remediation call failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("remediation endpoint returned status %d", resp.StatusCode)
	}

	r.logger.Info("Remediation action forwarded", zap.String("action", action))
	return nil
}
