package dispatch

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/emersion/go-smtp"
	"go.uber.org/zap"

	"github.com/backboard/email-router/internal/core"
)

// SMTPNotifier sends summary notifications to the user through a local MTA
type SMTPNotifier struct {
	relayAddr string
	relayPort int
	from      string
	to        string
	logger    *zap.Logger
}

// NewSMTPNotifier creates a new SMTP summary notifier
func NewSMTPNotifier(relayAddr string, relayPort int, from, to string, logger *zap.Logger) *SMTPNotifier {
	return &SMTPNotifier{
		relayAddr: relayAddr,
		relayPort: relayPort,
		from:      from,
		to:        to,
		logger:    logger,
	}
}

// SendSummary relays a summary of the routed email to the configured user address
func (n *SMTPNotifier) SendSummary(ctx context.Context, email *core.Email, decision *core.RoutingDecision) error {
	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", n.from)
	fmt.Fprintf(&msg, "To: %s\r\n", n.to)
	fmt.Fprintf(&msg, "Subject: [routed] %s\r\n", email.Subject)
	fmt.Fprintf(&msg, "\r\n")
	fmt.Fprintf(&msg, "Sender: %s\r\n", email.From)
	fmt.Fprintf(&msg, "Target: %s\r\n", decision.Target)
	fmt.Fprintf(&msg, "Action: %s\r\n", decision.Action)
	fmt.Fprintf(&msg, "Received: %s\r\n", email.ReceivedAt.Format(time.RFC3339))

	return n.relay(ctx, msg.Bytes())
}

// relay delivers the message to the configured MTA using go-smtp
func (n *SMTPNotifier) relay(ctx context.Context, data []byte) error {
	addr := fmt.Sprintf("%s:%d", n.relayAddr, n.relayPort)

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}

	dialer := net.Dialer{Timeout: 10 * time.Second}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to connect to MTA: %w", err)
	}

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			conn.Close()
			return fmt.Errorf("failed to set connection deadline: %w", err)
		}
	} else if err := conn.SetDeadline(time.Now().Add(30 * time.Second)); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set connection deadline: %w", err)
	}

	c := smtp.NewClient(conn)
	defer c.Close()

	if err := c.Hello(hostname); err != nil {
		return fmt.Errorf("EHLO failed: %w", err)
	}
	if err := c.Mail(n.from, nil); err != nil {
		return fmt.Errorf("MAIL FROM failed: %w", err)
	}
	if err := c.Rcpt(n.to, nil); err != nil {
		return fmt.Errorf("RCPT TO failed: %w", err)
	}

	wc, err := c.Data()
	if err != nil {
		return fmt.Errorf("DATA command failed: %w", err)
	}
	if _, err := wc.Write(data); err != nil {
		wc.Close()
		return fmt.Errorf("failed to send message data: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	if err := c.Quit(); err != nil {
		// The message is already accepted at this point
		n.logger.Warn("QUIT command failed", zap.Error(err))
	}

	n.logger.Info("Summary notification sent", zap.String("to", n.to))
	return nil
}
