package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// maxToolRounds bounds the number of tool-call round trips per invocation
const maxToolRounds = 5

// Runtime runs prompts against a generative model with the demo tools
// attached
type Runtime struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	modelName string
	logger    *zap.Logger
}

// NewRuntime creates a new agent runtime
func NewRuntime(apiKey, modelName string, logger *zap.Logger) (*Runtime, error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create model client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.Tools = toolDeclarations()

	return &Runtime{
		client:    client,
		model:     model,
		modelName: modelName,
		logger:    logger,
	}, nil
}

// Close closes the underlying model client
func (r *Runtime) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

// Invoke sends a prompt through the model, executing tool calls until the
// model produces a final text answer
func (r *Runtime) Invoke(ctx context.Context, prompt string) (string, error) {
	session := r.model.StartChat()

	resp, err := session.SendMessage(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("model invocation failed: %w", err)
	}

	for round := 0; round < maxToolRounds; round++ {
		calls := functionCalls(resp)
		if len(calls) == 0 {
			break
		}

		replies := make([]genai.Part, 0, len(calls))
		for _, fc := range calls {
			r.logger.Debug("Executing tool call",
				zap.String("tool", fc.Name),
				zap.Any("args", fc.Args))

			out, err := callTool(fc)
			if err != nil {
				// Feed the failure back so the model can recover or rephrase
				replies = append(replies, genai.FunctionResponse{
					Name:     fc.Name,
					Response: map[string]any{"error": err.Error()},
				})
				continue
			}
			replies = append(replies, genai.FunctionResponse{
				Name:     fc.Name,
				Response: map[string]any{"result": out},
			})
		}

		resp, err = session.SendMessage(ctx, replies...)
		if err != nil {
			return "", fmt.Errorf("model invocation failed: %w", err)
		}
	}

	text := responseText(resp)
	if text == "" {
		return "", fmt.Errorf("model produced no text response")
	}
	return text, nil
}

// functionCalls collects the tool calls requested in a model response
func functionCalls(resp *genai.GenerateContentResponse) []genai.FunctionCall {
	var calls []genai.FunctionCall
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if fc, ok := part.(genai.FunctionCall); ok {
				calls = append(calls, fc)
			}
		}
	}
	return calls
}

// responseText concatenates the text parts of a model response
func responseText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}
	return sb.String()
}
