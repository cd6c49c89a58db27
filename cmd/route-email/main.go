package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/backboard/email-router/internal/adapters/ingress"
	"github.com/backboard/email-router/internal/config"
	"github.com/backboard/email-router/internal/core"
	"github.com/backboard/email-router/internal/factory"
	"github.com/backboard/email-router/internal/logging"
	"github.com/backboard/email-router/internal/parser"
)

var (
	// Classifier provider flags
	provider    = flag.String("provider", "gemini", "Classifier provider (gemini, openai, bedrock)")
	maxTokens   = flag.Int("max-tokens", 1000, "Maximum tokens for the classifier response")
	temperature = flag.Float64("temperature", 0.1, "Temperature for classifier generation")
	topP        = flag.Float64("top-p", 0.9, "Top-p for classifier generation")
	maxBodySize = flag.Int("max-body-size", 4096, "Maximum email body size to send to the classifier")

	// Gemini flags
	geminiAPIKey    = flag.String("gemini-api-key", "", "API key for Google AI Studio")
	geminiModelName = flag.String("gemini-model", "gemini-3-flash-preview", "Gemini model name")

	// OpenAI flags
	openaiAPIKey    = flag.String("openai-api-key", "", "API key for OpenAI")
	openaiModelName = flag.String("openai-model", "gpt-4", "OpenAI model name")

	// Bedrock flags
	bedrockRegion  = flag.String("bedrock-region", "us-east-1", "AWS region for Bedrock")
	bedrockModelID = flag.String("bedrock-model", "anthropic.claude-v2", "Bedrock model ID")

	// Ledger flags
	ledgerType  = flag.String("ledger", "memory", "Ledger type (memory, sqlite, mysql)")
	sqlitePath  = flag.String("sqlite-path", "routing_ledger.db", "SQLite ledger path")
	databaseURL = flag.String("database-url", "", "MySQL DSN for the mysql ledger")

	// Input flags
	inputFile  = flag.String("file", "", "Input email file (use stdin if not specified)")
	timeout    = flag.Duration("timeout", 30*time.Second, "Deadline for the whole pipeline")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog    = flag.Bool("json-log", false, "Output logs in JSON format")
	configFile = flag.String("config", "", "Path to config file (overrides command line flags)")
)

func main() {
	flag.Parse()

	var cfg *config.Config
	var err error

	// Initialize logger
	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Load configuration from file if specified
	if *configFile != "" {
		cfg, err = config.New()
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}
		logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
	} else {
		// Create config from command line flags
		cfg = createConfigFromFlags()
	}

	// Build the pipeline
	textProcessor := factory.NewTextProcessorFactory(logger).CreateTextProcessor()

	classifier, err := factory.NewClassifierFactory(cfg, logger, textProcessor).CreateClassifier()
	if err != nil {
		logger.Fatal("Failed to create classifier", zap.Error(err))
	}

	ledgerRepo, err := factory.NewLedgerFactory(cfg, logger).CreateLedger()
	if err != nil {
		logger.Fatal("Failed to create ledger", zap.Error(err))
	}

	dispatcher, err := factory.NewDispatcherFactory(cfg, logger).CreateDispatcher()
	if err != nil {
		logger.Fatal("Failed to create dispatcher", zap.Error(err))
	}

	service := core.NewRouterService(classifier, ledgerRepo, dispatcher, logger)

	// Read email from file or stdin
	var emailReader io.Reader
	if *inputFile != "" {
		file, err := os.Open(*inputFile)
		if err != nil {
			logger.Fatal("Failed to open input file", zap.Error(err), zap.String("file", *inputFile))
		}
		defer file.Close()
		emailReader = file
		logger.Info("Reading email from file", zap.String("file", *inputFile))
	} else {
		emailReader = os.Stdin
		logger.Info("Reading email from stdin")
	}

	email, err := parser.Parse(emailReader)
	if err != nil {
		logger.Fatal("Failed to parse email", zap.Error(err))
	}

	logger.Debug("Parsed email",
		zap.String("from", email.From),
		zap.String("subject", email.Subject),
		zap.Int("body_bytes", len(email.Body)))

	// Route the email; the ingress prints {"status","target"} on stdout
	cli := ingress.NewCliIngress(service, logger, os.Stdout, *timeout)
	result, err := cli.ProcessEmail(context.Background(), email)
	if err != nil {
		if result == nil {
			logger.Fatal("Failed to route email", zap.Error(err))
		}
		// Dispatch failed; the result was still printed
		os.Exit(1)
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
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags() *config.Config {
	v := config.NewEmptyViper()

	// Set classifier provider
	v.Set("llm.provider", *provider)

	// Set provider-specific configuration
	switch *provider {
	case "gemini":
		v.Set("gemini.api_key", *geminiAPIKey)
		v.Set("gemini.model_name", *geminiModelName)
		v.Set("gemini.max_tokens", *maxTokens)
		v.Set("gemini.temperature", *temperature)
		v.Set("gemini.top_p", *topP)
		v.Set("gemini.max_body_size", *maxBodySize)
	case "openai":
		v.Set("openai.api_key", *openaiAPIKey)
		v.Set("openai.model_name", *openaiModelName)
		v.Set("openai.max_tokens", *maxTokens)
		v.Set("openai.temperature", *temperature)
		v.Set("openai.top_p", *topP)
		v.Set("openai.max_body_size", *maxBodySize)
	case "bedrock":
		v.Set("bedrock.region", *bedrockRegion)
		v.Set("bedrock.model_id", *bedrockModelID)
		v.Set("bedrock.max_tokens", *maxTokens)
		v.Set("bedrock.temperature", *temperature)
		v.Set("bedrock.top_p", *topP)
		v.Set("bedrock.max_body_size", *maxBodySize)
	}

	// Set ledger configuration
	v.Set("ledger.type", *ledgerType)
	v.Set("ledger.sqlite_path", *sqlitePath)
	v.Set("ledger.database_url", *databaseURL)

	return config.NewFromViper(v)
}
