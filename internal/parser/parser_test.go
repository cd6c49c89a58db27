package parser

import (
	"strings"
	"testing"
)

func TestParseWellFormedEmail(t *testing.T) {
	raw := "From: alice@example.com\r\n" +
		"To: bob@example.com, carol@example.com\r\n" +
		"Subject: Deployment failed on prod\r\n" +
		"\r\n" +
		"The nightly deployment failed with exit code 3.\r\n"

	email, err := ParseString(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if email.From != "alice@example.com" {
		t.Errorf("expected sender alice@example.com, got %q", email.From)
	}
	if email.Subject != "Deployment failed on prod" {
		t.Errorf("unexpected subject %q", email.Subject)
	}
	if len(email.To) != 2 || email.To[0] != "bob@example.com" || email.To[1] != "carol@example.com" {
		t.Errorf("unexpected recipients %v", email.To)
	}
	if !strings.Contains(email.Body, "exit code 3") {
		t.Errorf("body not preserved: %q", email.Body)
	}
	if email.ReceivedAt.IsZero() {
		t.Error("expected receive timestamp to be captured")
	}
}

func TestParseMissingHeadersYieldsEmptyFields(t *testing.T) {
	raw := "X-Mailer: test\r\n" +
		"\r\n" +
		"body only\r\n"

	email, err := ParseString(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if email.From != "" {
		t.Errorf("expected empty sender, got %q", email.From)
	}
	if email.Subject != "" {
		t.Errorf("expected empty subject, got %q", email.Subject)
	}
	if email.To != nil {
		t.Errorf("expected no recipients, got %v", email.To)
	}
	if !strings.Contains(email.Body, "body only") {
		t.Errorf("body not preserved: %q", email.Body)
	}
}

func TestParseUnparseableInputFallsBackToBody(t *testing.T) {
	raw := "this is not an email at all"

	email, err := ParseString(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if email.From != "" || email.Subject != "" {
		t.Errorf("expected empty header fields, got from=%q subject=%q", email.From, email.Subject)
	}
	if email.Body != raw {
		t.Errorf("expected raw input as body, got %q", email.Body)
	}
}

func TestParseMultipartExtractsPlainText(t *testing.T) {
	raw := "From: alice@example.com\r\n" +
		"To: bob@example.com\r\n" +
		"Subject: multipart test\r\n" +
		"Content-Type: multipart/alternative; boundary=\"xyz\"\r\n" +
		"\r\n" +
		"--xyz\r\n" +
		"Content-Type: text/plain\r\n" +
		"\r\n" +
		"plain part here\r\n" +
		"--xyz\r\n" +
		"Content-Type: text/html\r\n" +
		"\r\n" +
		"<p>html part here</p>\r\n" +
		"--xyz--\r\n"

	email, err := ParseString(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if !strings.Contains(email.Body, "plain part here") {
		t.Errorf("expected plain text part in body, got %q", email.Body)
	}
	if strings.Contains(email.Body, "html part here") {
		t.Errorf("html part should be skipped, got %q", email.Body)
	}
}
