package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/backboard/email-router/internal/core"
	"github.com/backboard/email-router/internal/di"
	"github.com/backboard/email-router/internal/ports"
)

func main() {
	// Build the dependency injection container
	container, err := di.BuildContainer()
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected
func run(
	logger *zap.Logger,
	emailIngress ports.EmailIngress,
	classifier core.Classifier,
	ledgerRepo core.LedgerRepository,
) error {
	defer logger.Sync()

	// Start the ingress
	if err := emailIngress.Start(); err != nil {
		logger.Fatal("Failed to start ingress", zap.Error(err))
		return err
	}

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	<-sigCh
	logger.Info("Shutting down...")

	// Stop the ingress
	if err := emailIngress.Stop(); err != nil {
		logger.Error("Failed to stop ingress", zap.Error(err))
	}

	// Close any resources that need closing
	if closer, ok := classifier.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close classifier", zap.Error(err))
		}
	}
	if closer, ok := ledgerRepo.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close ledger", zap.Error(err))
		}
	}

	logger.Info("Shutdown complete")
	return nil
}
