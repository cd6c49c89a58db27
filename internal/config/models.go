package config

// LLMConfig represents the configuration for the classifier provider
type LLMConfig struct {
	Provider string
}

// GeminiConfig represents the configuration for Google AI Studio
type GeminiConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
	MaxBodySize int
}

// OpenAIConfig represents the configuration for OpenAI
type OpenAIConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
	MaxBodySize int
}

// BedrockConfig represents the configuration for Amazon Bedrock
type BedrockConfig struct {
	Region      string
	ModelID     string
	MaxTokens   int
	Temperature float32
	TopP        float32
	MaxBodySize int
}

// LedgerConfig represents the configuration for the decision ledger
type LedgerConfig struct {
	Type        string
	SQLitePath  string
	DatabaseURL string
}

// DispatchConfig represents the configuration for the action dispatcher's
// downstream collaborators
type DispatchConfig struct {
	RemediationURL string
	ConstraintsURL string
	SMTPEnabled    bool
	SMTPAddress    string
	SMTPPort       int
	SMTPFrom       string
	SMTPTo         string
}

// GetLLM returns the classifier provider configuration
func (c *Config) GetLLM() LLMConfig {
	return LLMConfig{
		Provider: c.GetString("llm.provider"),
	}
}

// GetGemini returns the Gemini configuration
func (c *Config) GetGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:      c.GetString("gemini.api_key"),
		ModelName:   c.GetString("gemini.model_name"),
		MaxTokens:   c.GetInt("gemini.max_tokens"),
		Temperature: float32(c.GetFloat64("gemini.temperature")),
		TopP:        float32(c.GetFloat64("gemini.top_p")),
		MaxBodySize: c.GetInt("gemini.max_body_size"),
	}
}

// GetOpenAI returns the OpenAI configuration
func (c *Config) GetOpenAI() OpenAIConfig {
	return OpenAIConfig{
		APIKey:      c.GetString("openai.api_key"),
		ModelName:   c.GetString("openai.model_name"),
		MaxTokens:   c.GetInt("openai.max_tokens"),
		Temperature: float32(c.GetFloat64("openai.temperature")),
		TopP:        float32(c.GetFloat64("openai.top_p")),
		MaxBodySize: c.GetInt("openai.max_body_size"),
	}
}

// GetBedrock returns the Bedrock configuration
func (c *Config) GetBedrock() BedrockConfig {
	return BedrockConfig{
		Region:      c.GetString("bedrock.region"),
		ModelID:     c.GetString("bedrock.model_id"),
		MaxTokens:   c.GetInt("bedrock.max_tokens"),
		Temperature: float32(c.GetFloat64("bedrock.temperature")),
		TopP:        float32(c.GetFloat64("bedrock.top_p")),
		MaxBodySize: c.GetInt("bedrock.max_body_size"),
	}
}

// GetLedger returns the ledger configuration
func (c *Config) GetLedger() LedgerConfig {
	return LedgerConfig{
		Type:        c.GetString("ledger.type"),
		SQLitePath:  c.GetString("ledger.sqlite_path"),
		DatabaseURL: c.GetString("ledger.database_url"),
	}
}

// GetDispatch returns the dispatch collaborator configuration
func (c *Config) GetDispatch() DispatchConfig {
	return DispatchConfig{
		RemediationURL: c.GetString("dispatch.remediation_url"),
		ConstraintsURL: c.GetString("dispatch.constraints_url"),
		SMTPEnabled:    c.GetBool("dispatch.smtp.enabled"),
		SMTPAddress:    c.GetString("dispatch.smtp.address"),
		SMTPPort:       c.GetInt("dispatch.smtp.port"),
		SMTPFrom:       c.GetString("dispatch.smtp.from"),
		SMTPTo:         c.GetString("dispatch.smtp.to"),
	}
}
