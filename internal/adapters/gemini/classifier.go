package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/backboard/email-router/internal/core"
	"github.com/backboard/email-router/internal/utils"
)

// GeminiClassifier is an implementation of the Classifier interface using
// the Google AI Studio generative language API
type GeminiClassifier struct {
	client        *genai.Client
	model         *genai.GenerativeModel
	modelName     string
	maxBodySize   int
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// routingResponse represents the structured response from the routing engine
type routingResponse struct {
	Target string `json:"target"`
	Action string `json:"action"`
}

const routingPromptFormat = `You are an email routing engine. Decide which system should handle the following email.
Respond with a JSON object containing:
- target: one of "gemini_knight" (remediation), "user" (summary notification), "lumo_architect" (constraint check)
- action: string (the recommended action for the chosen target)

Email:
From: %s
To: %s
Subject: %s
Body:
%s

Respond only with the JSON object and nothing else.`

// NewGeminiClassifier creates a new Gemini classifier client
func NewGeminiClassifier(
	apiKey string,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxBodySize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) (*GeminiClassifier, error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(temperature)
	model.SetTopP(topP)
	model.SetMaxOutputTokens(int32(maxTokens))

	return &GeminiClassifier{
		client:        client,
		model:         model,
		modelName:     modelName,
		maxBodySize:   maxBodySize,
		logger:        logger,
		textProcessor: textProcessor,
	}, nil
}

// Close closes the Gemini client
func (c *GeminiClassifier) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// ClassifyEmail sends the email to the routing engine and returns its decision
func (c *GeminiClassifier) ClassifyEmail(ctx context.Context, email *core.Email) (*core.RoutingDecision, error) {
	body := c.textProcessor.ProcessText(email.Body, c.maxBodySize)
	prompt := buildRoutingPrompt(email, body)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, core.NewClassificationError("gemini", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, core.NewClassificationError("gemini", fmt.Errorf("empty response from Gemini"))
	}

	responseText := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])

	routing, err := parseRoutingResponse(responseText)
	if err != nil {
		return nil, core.NewClassificationError("gemini", err)
	}

	return &core.RoutingDecision{
		Target:       core.ParseRoutingTarget(routing.Target),
		Action:       routing.Action,
		Raw:          responseText,
		ModelUsed:    c.modelName,
		ClassifiedAt: time.Now(),
	}, nil
}

// buildRoutingPrompt formats the routing prompt. The sender, subject and body
// strings are embedded verbatim.
func buildRoutingPrompt(email *core.Email, body string) string {
	to := ""
	if len(email.To) > 0 {
		to = email.To[0]
		if len(email.To) > 1 {
			to += fmt.Sprintf(" and %d others", len(email.To)-1)
		}
	}
	return fmt.Sprintf(routingPromptFormat, email.From, to, email.Subject, body)
}

// parseRoutingResponse parses the engine's JSON reply. When the model wraps
// the JSON in prose, the outermost brace pair is extracted and retried.
func parseRoutingResponse(responseText string) (*routingResponse, error) {
	var routing routingResponse
	if err := json.Unmarshal([]byte(responseText), &routing); err == nil {
		return &routing, nil
	}

	jsonStart := -1
	jsonEnd := -1
	for i := 0; i < len(responseText); i++ {
		if responseText[i] == '{' {
			jsonStart = i
			break
		}
	}
	for i := len(responseText) - 1; i >= 0; i-- {
		if responseText[i] == '}' {
			jsonEnd = i + 1
			break
		}
	}

	if jsonStart < 0 || jsonEnd <= jsonStart {
		return nil, fmt.Errorf("failed to extract JSON from routing response")
	}

	if err := json.Unmarshal([]byte(responseText[jsonStart:jsonEnd]), &routing); err != nil {
		return nil, fmt.Errorf("failed to parse routing response as JSON: %w", err)
	}
	return &routing, nil
}
