package parser

import (
	"bytes"
	"io"
	"net/mail"
	"strings"
	"time"

	"github.com/backboard/email-router/internal/core"
)

// Parse converts raw RFC-822 email text into a core.Email. Header extraction
// is best-effort: missing or malformed headers yield empty-string fields, and
// input with no parseable header block at all is treated as a bare body.
// The receive timestamp is captured at call time.
func Parse(r io.Reader) (*core.Email, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	if err != nil {
		// No header block could be recognized. Keep the content as the body
		// so the pipeline still produces a decision for it.
		return &core.Email{
			Body:       string(raw),
			Headers:    make(map[string][]string),
			ReceivedAt: time.Now(),
		}, nil
	}

	body, err := extractTextFromMessage(msg)
	if err != nil {
		return nil, err
	}

	email := &core.Email{
		From:       msg.Header.Get("From"),
		To:         splitAddressList(msg.Header.Get("To")),
		Subject:    msg.Header.Get("Subject"),
		Body:       body,
		Headers:    make(map[string][]string),
		ReceivedAt: time.Now(),
	}
	for k, v := range msg.Header {
		email.Headers[k] = v
	}

	return email, nil
}

// ParseString is a convenience wrapper over Parse for raw email text
func ParseString(raw string) (*core.Email, error) {
	return Parse(strings.NewReader(raw))
}

// splitAddressList splits a To header on commas, trimming whitespace.
// An empty header yields a nil slice rather than a single empty entry.
func splitAddressList(header string) []string {
	if strings.TrimSpace(header) == "" {
		return nil
	}
	parts := strings.Split(header, ",")
	addrs := make([]string, 0, len(parts))
	for _, p := range parts {
		addrs = append(addrs, strings.TrimSpace(p))
	}
	return addrs
}
