package factory

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/backboard/email-router/internal/adapters/ingress"
	"github.com/backboard/email-router/internal/config"
	"github.com/backboard/email-router/internal/core"
	"github.com/backboard/email-router/internal/ports"
)

// IngressFactory creates email ingresses based on configuration
type IngressFactory struct {
	cfg     *config.Config
	logger  *zap.Logger
	service *core.RouterService
}

// NewIngressFactory creates a new ingress factory
func NewIngressFactory(cfg *config.Config, logger *zap.Logger, service *core.RouterService) *IngressFactory {
	return &IngressFactory{
		cfg:     cfg,
		logger:  logger,
		service: service,
	}
}

// CreateIngress creates an email ingress based on the configuration
func (f *IngressFactory) CreateIngress() (ports.EmailIngress, error) {
	ingressType := f.cfg.GetString("server.ingress_type")

	switch ingressType {
	case "smtp":
		return ingress.NewSMTPIngress(
			f.service,
			f.logger,
			f.cfg.GetString("server.listen_address"),
			f.cfg.GetString("server.domain"),
		), nil
	case "cli":
		return ingress.NewCliIngress(f.service, f.logger, os.Stdout, 30*time.Second), nil
	default:
		return nil, fmt.Errorf("unsupported ingress type: %s", ingressType)
	}
}
