package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/backboard/email-router/internal/core"
	"github.com/backboard/email-router/internal/utils"
)

// OpenAIClassifier is an implementation of the Classifier interface using OpenAI
type OpenAIClassifier struct {
	client        *openai.Client
	modelName     string
	maxTokens     int
	temperature   float32
	topP          float32
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

// NewOpenAIClassifier creates a new OpenAI classifier client
func NewOpenAIClassifier(
	apiKey string,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxBodySize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) *OpenAIClassifier {
	return &OpenAIClassifier{
		client:        openai.NewClient(apiKey),
		modelName:     modelName,
		maxTokens:     maxTokens,
		temperature:   temperature,
		topP:          topP,
		maxBodySize:   maxBodySize,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// ClassifyEmail sends the email to the routing engine and returns its decision
func (c *OpenAIClassifier) ClassifyEmail(ctx context.Context, email *core.Email) (*core.RoutingDecision, error) {
	to := ""
	if len(email.To) > 0 {
		to = email.To[0]
		if len(email.To) > 1 {
			to += fmt.Sprintf(" and %d others", len(email.To)-1)
		}
	}

	body := c.textProcessor.ProcessText(email.Body, c.maxBodySize)
	prompt := fmt.Sprintf(routingPromptFormat, email.From, to, email.Subject, body)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		TopP:        c.topP,
	})
	if err != nil {
		return nil, core.NewClassificationError("openai", err)
	}

	if len(resp.Choices) == 0 {
		return nil, core.NewClassificationError("openai", fmt.Errorf("empty response from OpenAI"))
	}

	responseText := resp.Choices[0].Message.Content

	routing, err := parseRoutingResponse(responseText)
	if err != nil {
		return nil, core.NewClassificationError("openai", err)
	}

	return &core.RoutingDecision{
		Target:       core.ParseRoutingTarget(routing.Target),
		Action:       routing.Action,
		Raw:          responseText,
		ModelUsed:    c.modelName,
		ClassifiedAt: time.Now(),
	}, nil
}

// parseRoutingResponse parses the engine's JSON reply, extracting the
// outermost brace pair when the model wraps the JSON in prose
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
