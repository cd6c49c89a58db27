package ingress

import (
	"context"
	"io"
	"time"

	"github.com/emersion/go-smtp"
	"go.uber.org/zap"

	"github.com/backboard/email-router/internal/core"
	"github.com/backboard/email-router/internal/parser"
)

// SMTPIngress accepts emails over SMTP and runs each one through the routing
// pipeline. Messages are consumed; nothing is re-delivered.
type SMTPIngress struct {
	service    *core.RouterService
	logger     *zap.Logger
	listenAddr string
	domain     string
	server     *smtp.Server
}

// NewSMTPIngress creates a new SMTP ingress server
func NewSMTPIngress(service *core.RouterService, logger *zap.Logger, listenAddr, domain string) *SMTPIngress {
	return &SMTPIngress{
		service:    service,
		logger:     logger,
		listenAddr: listenAddr,
		domain:     domain,
	}
}

// Start starts the SMTP server
func (f *SMTPIngress) Start() error {
	f.server = smtp.NewServer(&smtpBackend{ingress: f})

	f.server.Addr = f.listenAddr
	f.server.Domain = f.domain
	f.server.ReadTimeout = 30 * time.Second
	f.server.WriteTimeout = 30 * time.Second
	f.server.MaxMessageBytes = 30 * 1024 * 1024 // 30MB
	f.server.MaxRecipients = 50
	f.server.AllowInsecureAuth = true

	f.logger.Info("SMTP ingress starting", zap.String("address", f.listenAddr))

	go func() {
		if err := f.server.ListenAndServe(); err != nil {
			if err != smtp.ErrServerClosed {
				f.logger.Error("SMTP server error", zap.Error(err))
			}
		}
	}()

	return nil
}

// Stop stops the SMTP server
func (f *SMTPIngress) Stop() error {
	if f.server != nil {
		return f.server.Close()
	}
	return nil
}

// ProcessEmail routes a single email through the pipeline
func (f *SMTPIngress) ProcessEmail(ctx context.Context, email *core.Email) (*core.ActionResult, error) {
	return f.service.RouteEmail(ctx, email)
}

// smtpBackend implements the go-smtp Backend interface
type smtpBackend struct {
	ingress *SMTPIngress
}

// NewSession creates a new SMTP session
func (b *smtpBackend) NewSession(c *smtp.Conn) (smtp.Session, error) {
	return &smtpSession{
		ingress:    b.ingress,
		recipients: make([]string, 0),
	}, nil
}

// smtpSession implements the go-smtp Session interface
type smtpSession struct {
	ingress    *SMTPIngress
	sender     string
	recipients []string
}

// Reset resets the session state
func (s *smtpSession) Reset() {
	s.sender = ""
	s.recipients = make([]string, 0)
}

// AuthPlain handles PLAIN authentication (not needed for the ingress)
func (s *smtpSession) AuthPlain(_ []byte) error {
	return smtp.ErrAuthUnsupported
}

// Mail sets the sender address
func (s *smtpSession) Mail(from string, _ *smtp.MailOptions) error {
	s.sender = from
	return nil
}

// Rcpt adds a recipient
func (s *smtpSession) Rcpt(to string, _ *smtp.RcptOptions) error {
	s.recipients = append(s.recipients, to)
	return nil
}

// Data receives the message body and routes the email
func (s *smtpSession) Data(r io.Reader) error {
	email, err := parser.Parse(r)
	if err != nil {
		s.ingress.logger.Error("Failed to read message data", zap.Error(err))
		return err
	}

	// Envelope data wins over headers when present
	if s.sender != "" {
		email.From = s.sender
	}
	if len(s.recipients) > 0 {
		email.To = s.recipients
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := s.ingress.service.RouteEmail(ctx, email)
	if err != nil {
		s.ingress.logger.Error("Failed to route email",
			zap.Error(err),
			zap.String("sender", email.From))
		// The message is accepted either way; routing failures must not
		// bounce mail back to the submitter.
		return nil
	}

	s.ingress.logger.Info("Routed email",
		zap.String("sender", email.From),
		zap.String("target", string(result.Target)),
		zap.String("status", string(result.Status)))

	return nil
}

// Logout handles SMTP logout
func (s *smtpSession) Logout() error {
	return nil
}
