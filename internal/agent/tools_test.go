package agent

import (
	"strings"
	"testing"

	"github.com/google/generative-ai-go/genai"
)

func TestGetWeather(t *testing.T) {
	out := GetWeather("Paris")
	if !strings.Contains(out, "Paris") {
		t.Errorf("expected location in output, got %q", out)
	}
	if !strings.Contains(out, "sunny") {
		t.Errorf("expected sunny weather, got %q", out)
	}
}

func TestCalculateTip(t *testing.T) {
	out := CalculateTip(100.0, 20.0)
	if !strings.Contains(out, "Tip (20.0%): $20.00") {
		t.Errorf("unexpected tip rendering: %q", out)
	}
	if !strings.Contains(out, "Total: $120.00") {
		t.Errorf("unexpected total rendering: %q", out)
	}
	if !strings.Contains(out, "Bill: $100.00") {
		t.Errorf("unexpected bill rendering: %q", out)
	}
}

func TestCallToolWeather(t *testing.T) {
	out, err := callTool(genai.FunctionCall{
		Name: "get_weather",
		Args: map[string]any{"location": "Oslo"},
	})
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if !strings.Contains(out, "Oslo") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestCallToolTipDefaultPercentage(t *testing.T) {
	out, err := callTool(genai.FunctionCall{
		Name: "calculate_tip",
		Args: map[string]any{"bill_amount": 100.0},
	})
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if !strings.Contains(out, "Tip (15.0%): $15.00") {
		t.Errorf("expected default 15%% tip, got %q", out)
	}
}

func TestCallToolMissingArgument(t *testing.T) {
	if _, err := callTool(genai.FunctionCall{Name: "calculate_tip", Args: map[string]any{}}); err == nil {
		t.Error("expected error for missing bill_amount")
	}
	if _, err := callTool(genai.FunctionCall{Name: "get_weather", Args: map[string]any{}}); err == nil {
		t.Error("expected error for missing location")
	}
}

func TestCallToolUnknown(t *testing.T) {
	if _, err := callTool(genai.FunctionCall{Name: "launch_rocket"}); err == nil {
		t.Error("expected error for unknown tool")
	}
}
