package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	if cfg.OpenAI.Model != "gpt-4o" {
		t.Fatalf("default model = %q", cfg.OpenAI.Model)
	}
	if cfg.Extraction.MinTextThreshold != 50 {
		t.Fatalf("default threshold = %d", cfg.Extraction.MinTextThreshold)
	}
	if cfg.Extraction.Language != "eng" {
		t.Fatalf("default language = %q", cfg.Extraction.Language)
	}
	if cfg.Debate.MaxRounds != 10 {
		t.Fatalf("default max rounds = %d", cfg.Debate.MaxRounds)
	}
	if cfg.OpenAI.Temperatures.Extraction != 0.1 || cfg.OpenAI.Temperatures.Debate != 0.8 {
		t.Fatalf("unexpected default temperatures: %+v", cfg.OpenAI.Temperatures)
	}
}

func TestMergeConfigKeepsDefaultsForZeroValues(t *testing.T) {
	t.Parallel()

	base := defaultConfig()
	merged := mergeConfig(base, Config{
		OpenAI: OpenAIConfig{Model: "gpt-4o-mini"},
		Debate: DebateConfig{MaxRounds: 4},
	})

	if merged.OpenAI.Model != "gpt-4o-mini" {
		t.Fatalf("model override lost: %q", merged.OpenAI.Model)
	}
	if merged.OpenAI.Endpoint != base.OpenAI.Endpoint {
		t.Fatalf("unset endpoint should keep default, got %q", merged.OpenAI.Endpoint)
	}
	if merged.Debate.MaxRounds != 4 {
		t.Fatalf("max rounds override lost: %d", merged.Debate.MaxRounds)
	}
	if merged.Extraction.MinTextThreshold != 50 {
		t.Fatalf("unset threshold should keep default, got %d", merged.Extraction.MinTextThreshold)
	}
	if merged.OpenAI.Temperatures.Summary != 0.3 {
		t.Fatalf("unset temperature should keep default, got %v", merged.OpenAI.Temperatures.Summary)
	}
}

func TestLoadReadsYAMLFile(t *testing.T) {
	yamlBody := `
openai:
  model: gpt-4o-mini
  temperatures:
    analysis: 0.5
extraction:
  minTextThreshold: 120
  language: deu
debate:
  maxRounds: 6
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(yamlBody), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv(configPathEnv, path)
	t.Setenv(openAIAPIKeyEnv, "")
	t.Setenv(openAIModelEnv, "")
	t.Setenv(openAIEndpointEnv, "")

	cfg := Load()
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Fatalf("model = %q", cfg.OpenAI.Model)
	}
	if cfg.OpenAI.Temperatures.Analysis != 0.5 {
		t.Fatalf("analysis temperature = %v", cfg.OpenAI.Temperatures.Analysis)
	}
	if cfg.OpenAI.Temperatures.Extraction != 0.1 {
		t.Fatalf("unset temperatures should keep defaults, got %v", cfg.OpenAI.Temperatures.Extraction)
	}
	if cfg.Extraction.MinTextThreshold != 120 || cfg.Extraction.Language != "deu" {
		t.Fatalf("extraction settings = %+v", cfg.Extraction)
	}
	if cfg.Debate.MaxRounds != 6 {
		t.Fatalf("max rounds = %d", cfg.Debate.MaxRounds)
	}
}

func TestLoadEnvOverridesWinOverFile(t *testing.T) {
	yamlBody := `
openai:
  model: gpt-4o-mini
  apiKey: sk-from-file
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(yamlBody), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv(configPathEnv, path)
	t.Setenv(openAIAPIKeyEnv, "sk-from-env")
	t.Setenv(openAIModelEnv, "gpt-4o")
	t.Setenv(openAIEndpointEnv, "")

	cfg := Load()
	if cfg.OpenAI.APIKey != "sk-from-env" {
		t.Fatalf("api key = %q", cfg.OpenAI.APIKey)
	}
	if cfg.OpenAI.Model != "gpt-4o" {
		t.Fatalf("model = %q", cfg.OpenAI.Model)
	}
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	t.Setenv(configPathEnv, filepath.Join(t.TempDir(), "nope.yaml"))
	t.Setenv(openAIAPIKeyEnv, "")
	t.Setenv(openAIModelEnv, "")
	t.Setenv(openAIEndpointEnv, "")

	cfg := Load()
	if cfg.OpenAI.Model != "gpt-4o" || cfg.Debate.MaxRounds != 10 {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := defaultConfig()
	valid.OpenAI.APIKey = "sk-abc123"
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty key", func(c *Config) { c.OpenAI.APIKey = "" }, "missing OPENAI_API_KEY"},
		{"placeholder key", func(c *Config) { c.OpenAI.APIKey = "your-api-key-here" }, "missing OPENAI_API_KEY"},
		{"wrong prefix", func(c *Config) { c.OpenAI.APIKey = "pk-abc123" }, "invalid OPENAI_API_KEY format"},
		{"no endpoint", func(c *Config) { c.OpenAI.Endpoint = "" }, "endpoint and model"},
		{"no model", func(c *Config) { c.OpenAI.Model = "" }, "endpoint and model"},
		{"zero rounds", func(c *Config) { c.Debate.MaxRounds = 0 }, "maxRounds"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := defaultConfig()
			cfg.OpenAI.APIKey = "sk-abc123"
			tc.mutate(&cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q should mention %q", err, tc.want)
			}
		})
	}
}
