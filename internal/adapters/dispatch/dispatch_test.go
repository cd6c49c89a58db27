package dispatch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/backboard/email-router/internal/core"
)

func TestWebhookRemediatorForwardsAction(t *testing.T) {
	var received map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	r := NewWebhookRemediator(srv.URL, 5*time.Second, zap.NewNop())
	if err := r.Remediate(context.Background(), "rollback release 42"); err != nil {
		t.Fatalf("remediate: %v", err)
	}

	if received["action"] != "rollback release 42" {
		t.Errorf("unexpected payload %v", received)
	}
}

func TestWebhookRemediatorNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	r := NewWebhookRemediator(srv.URL, 5*time.Second, zap.NewNop())
	if err := r.Remediate(context.Background(), "noop"); err == nil {
		t.Error("expected error for 500 response")
	}
}

func TestHTTPConstraintCheckerSubmitsDecision(t *testing.T) {
	var received map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewHTTPConstraintChecker(srv.URL, 5*time.Second, zap.NewNop())
	email := &core.Email{From: "alice@example.com", Subject: "quota question"}
	decision := &core.RoutingDecision{Target: core.TargetLumoArchitect, Action: "check quota limits"}

	if err := c.Check(context.Background(), email, decision); err != nil {
		t.Fatalf("check: %v", err)
	}

	if received["sender"] != "alice@example.com" {
		t.Errorf("unexpected sender %q", received["sender"])
	}
	if received["target"] != "lumo_architect" {
		t.Errorf("unexpected target %q", received["target"])
	}
	if received["action"] != "check quota limits" {
		t.Errorf("unexpected action %q", received["action"])
	}
}

func TestHTTPConstraintCheckerUnreachable(t *testing.T) {
	c := NewHTTPConstraintChecker("http://127.0.0.1:1", time.Second, zap.NewNop())
	email := &core.Email{From: "alice@example.com"}
	decision := &core.RoutingDecision{Target: core.TargetLumoArchitect}

	if err := c.Check(context.Background(), email, decision); err == nil {
		t.Error("expected error for unreachable service")
	}
}

func TestLogCollaboratorsAlwaysSucceed(t *testing.T) {
	ctx := context.Background()
	email := &core.Email{From: "alice@example.com", Subject: "hello"}
	decision := &core.RoutingDecision{Target: core.TargetUser, Action: "summarize"}

	if err := NewLogRemediator(zap.NewNop()).Remediate(ctx, "anything"); err != nil {
		t.Errorf("log remediator: %v", err)
	}
	if err := NewLogNotifier(zap.NewNop()).SendSummary(ctx, email, decision); err != nil {
		t.Errorf("log notifier: %v", err)
	}
	if err := NewLogConstraintChecker(zap.NewNop()).Check(ctx, email, decision); err != nil {
		t.Errorf("log checker: %v", err)
	}
}
