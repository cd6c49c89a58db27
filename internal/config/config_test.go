package config

import (
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := NewFromViper(NewEmptyViper())

	if got := cfg.GetLLM().Provider; got != "gemini" {
		t.Errorf("unexpected default provider %q", got)
	}
	if got := cfg.GetGemini().ModelName; got != "gemini-3-flash-preview" {
		t.Errorf("unexpected default gemini model %q", got)
	}
	if got := cfg.GetLedger().Type; got != "memory" {
		t.Errorf("unexpected default ledger type %q", got)
	}
	if cfg.GetDispatch().SMTPEnabled {
		t.Error("dispatch SMTP should be disabled by default")
	}
}

func TestOverrides(t *testing.T) {
	v := NewEmptyViper()
	v.Set("llm.provider", "openai")
	v.Set("openai.api_key", "sk-test")
	v.Set("ledger.type", "mysql")
	v.Set("ledger.database_url", "user:pass@tcp(db:3306)/router")
	cfg := NewFromViper(v)

	if got := cfg.GetLLM().Provider; got != "openai" {
		t.Errorf("unexpected provider %q", got)
	}
	if got := cfg.GetOpenAI().APIKey; got != "sk-test" {
		t.Errorf("unexpected api key %q", got)
	}
	ledger := cfg.GetLedger()
	if ledger.Type != "mysql" || ledger.DatabaseURL != "user:pass@tcp(db:3306)/router" {
		t.Errorf("unexpected ledger config %+v", ledger)
	}
}

func TestGetDuration(t *testing.T) {
	v := NewEmptyViper()
	cfg := NewFromViper(v)

	d, err := cfg.GetDuration("dispatch.http_timeout")
	if err != nil {
		t.Fatalf("parse duration: %v", err)
	}
	if d.Seconds() != 10 {
		t.Errorf("unexpected default timeout %v", d)
	}
}
