package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/backboard/email-router/internal/agent"
	"github.com/backboard/email-router/internal/logging"
)

var (
	listenAddr = flag.String("listen", "0.0.0.0:8080", "Listen address for the agent runtime")
	apiKey     = flag.String("gemini-api-key", "", "API key for Google AI Studio (falls back to GEMINI_API_KEY)")
	modelName  = flag.String("gemini-model", "gemini-3-flash-preview", "Gemini model name")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog    = flag.Bool("json-log", false, "Output logs in JSON format")
)

func main() {
	flag.Parse()

	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	key := *apiKey
	if key == "" {
		key = os.Getenv("GEMINI_API_KEY")
	}
	if key == "" {
		logger.Fatal("Gemini API key is required")
	}

	runtime, err := agent.NewRuntime(key, *modelName, logger)
	if err != nil {
		logger.Fatal("Failed to create agent runtime", zap.Error(err))
	}
	defer runtime.Close()

	server := agent.NewServer(runtime, logger, *listenAddr)
	if err := server.Start(); err != nil {
		logger.Fatal("Failed to start agent runtime", zap.Error(err))
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	<-sigCh
	logger.Info("Shutting down...")

	if err := server.Stop(); err != nil {
		logger.Error("Failed to stop agent runtime", zap.Error(err))
	}

	logger.Info("Shutdown complete")
}
