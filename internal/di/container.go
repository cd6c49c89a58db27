package di

import (
	"go.uber.org/dig"

	"github.com/backboard/email-router/internal/config"
	"github.com/backboard/email-router/internal/core"
	"github.com/backboard/email-router/internal/factory"
	"github.com/backboard/email-router/internal/logging"
	"github.com/backboard/email-router/internal/ports"
	"github.com/backboard/email-router/internal/utils"
)

// BuildContainer creates and configures a dependency injection container
// for the routing daemon
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewTextProcessorFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewClassifierFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewLedgerFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewDispatcherFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewIngressFactory); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(func(f *factory.TextProcessorFactory) *utils.TextProcessor {
		return f.CreateTextProcessor()
	}); err != nil {
		return nil, err
	}

	// Register classifier
	if err := container.Provide(func(f *factory.ClassifierFactory) (core.Classifier, error) {
		return f.CreateClassifier()
	}); err != nil {
		return nil, err
	}

	// Register decision ledger
	if err := container.Provide(func(f *factory.LedgerFactory) (core.LedgerRepository, error) {
		return f.CreateLedger()
	}); err != nil {
		return nil, err
	}

	// Register action dispatcher
	if err := container.Provide(func(f *factory.DispatcherFactory) (*core.Dispatcher, error) {
		return f.CreateDispatcher()
	}); err != nil {
		return nil, err
	}

	// Register router service
	if err := container.Provide(core.NewRouterService); err != nil {
		return nil, err
	}

	// Register email ingress
	if err := container.Provide(func(f *factory.IngressFactory) (ports.EmailIngress, error) {
		return f.CreateIngress()
	}); err != nil {
		return nil, err
	}

	return container, nil
}
