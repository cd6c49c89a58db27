package agent

import (
	"fmt"

	"github.com/google/generative-ai-go/genai"
)

// GetWeather returns weather information for a location. Mock data for
// demonstration; always sunny.
func GetWeather(location string) string {
	return fmt.Sprintf("The weather in %s is sunny and 72°F", location)
}

// DefaultTipPercentage is applied when the model omits the tip percentage
const DefaultTipPercentage = 15.0

// CalculateTip calculates the tip amount for a bill
func CalculateTip(billAmount, tipPercentage float64) string {
	tip := billAmount * (tipPercentage / 100)
	total := billAmount + tip
	return fmt.Sprintf("Bill: $%.2f, Tip (%.1f%%): $%.2f, Total: $%.2f", billAmount, tipPercentage, tip, total)
}

// toolDeclarations describes the tools exposed to the model
func toolDeclarations() []*genai.Tool {
	return []*genai.Tool{
		{
			FunctionDeclarations: []*genai.FunctionDeclaration{
				{
					Name:        "get_weather",
					Description: "Get weather information for a location.",
					Parameters: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"location": {
								Type:        genai.TypeString,
								Description: "The location to get weather for.",
							},
						},
						Required: []string{"location"},
					},
				},
				{
					Name:        "calculate_tip",
					Description: "Calculate tip amount for a bill.",
					Parameters: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"bill_amount": {
								Type:        genai.TypeNumber,
								Description: "The bill amount in dollars.",
							},
							"tip_percentage": {
								Type:        genai.TypeNumber,
								Description: "The tip percentage. Defaults to 15.",
							},
						},
						Required: []string{"bill_amount"},
					},
				},
			},
		},
	}
}

// callTool executes a tool call requested by the model
func callTool(fc genai.FunctionCall) (string, error) {
	switch fc.Name {
	case "get_weather":
		location, ok := fc.Args["location"].(string)
		if !ok {
			return "", fmt.Errorf("get_weather: missing location argument")
		}
		return GetWeather(location), nil
	case "calculate_tip":
		billAmount, ok := fc.Args["bill_amount"].(float64)
		if !ok {
			return "", fmt.Errorf("calculate_tip: missing bill_amount argument")
		}
		tipPercentage := DefaultTipPercentage
		if p, ok := fc.Args["tip_percentage"].(float64); ok {
			tipPercentage = p
		}
		return CalculateTip(billAmount, tipPercentage), nil
	default:
		return "", fmt.Errorf("unknown tool: %s", fc.Name)
	}
}
