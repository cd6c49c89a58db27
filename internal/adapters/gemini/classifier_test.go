package gemini

import (
	"strings"
	"testing"
	"time"

	"github.com/backboard/email-router/internal/core"
)

func TestBuildRoutingPromptEmbedsFieldsVerbatim(t *testing.T) {
	email := &core.Email{
		From:       "alice@example.com",
		To:         []string{"router@example.com"},
		Subject:    "Nightly build #4521 failed",
		Body:       "Stack trace:\n  at main.go:42\nPlease investigate.",
		ReceivedAt: time.Now(),
	}

	prompt := buildRoutingPrompt(email, email.Body)

	if !strings.Contains(prompt, email.From) {
		t.Error("prompt missing sender")
	}
	if !strings.Contains(prompt, email.Subject) {
		t.Error("prompt missing subject")
	}
	if !strings.Contains(prompt, email.Body) {
		t.Error("prompt missing body")
	}
}

func TestBuildRoutingPromptMultipleRecipients(t *testing.T) {
	email := &core.Email{
		From:    "alice@example.com",
		To:      []string{"a@example.com", "b@example.com", "c@example.com"},
		Subject: "hi",
		Body:    "hello",
	}

	prompt := buildRoutingPrompt(email, email.Body)
	if !strings.Contains(prompt, "a@example.com and 2 others") {
		t.Errorf("unexpected recipient rendering in prompt:\n%s", prompt)
	}
}

func TestParseRoutingResponsePlainJSON(t *testing.T) {
	routing, err := parseRoutingResponse(`{"target":"gemini_knight","action":"restart the service"}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if routing.Target != "gemini_knight" {
		t.Errorf("unexpected target %q", routing.Target)
	}
	if routing.Action != "restart the service" {
		t.Errorf("unexpected action %q", routing.Action)
	}
}

func TestParseRoutingResponseWrappedInProse(t *testing.T) {
	responseText := "Sure, here is the routing decision:\n```json\n" +
		`{"target":"user","action":"send summary"}` + "\n```\nLet me know if you need anything else."

	routing, err := parseRoutingResponse(responseText)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if routing.Target != "user" {
		t.Errorf("unexpected target %q", routing.Target)
	}
}

func TestParseRoutingResponseNoJSON(t *testing.T) {
	if _, err := parseRoutingResponse("I cannot classify this email."); err == nil {
		t.Error("expected error for response without JSON")
	}
}
