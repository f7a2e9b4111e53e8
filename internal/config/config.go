package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	configPathEnv     = "BILLFIGHTER_CONFIG"
	openAIAPIKeyEnv   = "OPENAI_API_KEY"
	openAIModelEnv    = "OPENAI_MODEL"
	openAIEndpointEnv = "OPENAI_ENDPOINT"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging    LoggingConfig    `yaml:"logging"`
	OpenAI     OpenAIConfig     `yaml:"openai"`
	Extraction ExtractionConfig `yaml:"extraction"`
	Debate     DebateConfig     `yaml:"debate"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// OpenAIConfig defines how to contact the completion API.
type OpenAIConfig struct {
	Endpoint     string            `yaml:"endpoint"`
	Model        string            `yaml:"model"`
	APIKey       string            `yaml:"apiKey"`
	Temperatures TemperatureConfig `yaml:"temperatures"`
}

// TemperatureConfig carries the sampling temperature for each stage.
type TemperatureConfig struct {
	Extraction  float64 `yaml:"extraction"`
	Analysis    float64 `yaml:"analysis"`
	Negotiation float64 `yaml:"negotiation"`
	Debate      float64 `yaml:"debate"`
	Summary     float64 `yaml:"summary"`
}

// ExtractionConfig tunes the document-extraction selector.
type ExtractionConfig struct {
	// MinTextThreshold is the combined trimmed character count below which
	// direct extraction is considered to have missed a scanned document.
	MinTextThreshold int `yaml:"minTextThreshold"`
	// Language is the Tesseract language pack used by the OCR fallback.
	Language string `yaml:"language"`
}

// DebateConfig bounds the fighter-vs-hospital exchange.
type DebateConfig struct {
	MaxRounds int `yaml:"maxRounds"`
}

// Load reads the .env file, YAML configuration (if present), and applies
// environment overrides.
func Load() Config {
	// Missing .env is fine; environment may already be populated.
	_ = godotenv.Load()

	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()

	return cfg
}

// Validate reports configuration errors before any network call is made.
func (c Config) Validate() error {
	key := strings.TrimSpace(c.OpenAI.APIKey)
	if key == "" || key == "your-api-key-here" {
		return fmt.Errorf("missing OPENAI_API_KEY: set it in your environment or .env file")
	}
	if !strings.HasPrefix(key, "sk-") {
		return fmt.Errorf("invalid OPENAI_API_KEY format: expected a key starting with %q", "sk-")
	}
	if c.OpenAI.Endpoint == "" || c.OpenAI.Model == "" {
		return fmt.Errorf("completion endpoint and model must be configured")
	}
	if c.Debate.MaxRounds < 1 {
		return fmt.Errorf("debate maxRounds must be at least 1, got %d", c.Debate.MaxRounds)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(openAIAPIKeyEnv); v != "" {
		c.OpenAI.APIKey = v
	}

	if v := os.Getenv(openAIModelEnv); v != "" {
		c.OpenAI.Model = v
	}

	if v := os.Getenv(openAIEndpointEnv); v != "" {
		c.OpenAI.Endpoint = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging = override.Logging
	}

	if override.OpenAI.Endpoint != "" {
		base.OpenAI.Endpoint = override.OpenAI.Endpoint
	}
	if override.OpenAI.Model != "" {
		base.OpenAI.Model = override.OpenAI.Model
	}
	if override.OpenAI.APIKey != "" {
		base.OpenAI.APIKey = override.OpenAI.APIKey
	}

	if override.OpenAI.Temperatures.Extraction > 0 {
		base.OpenAI.Temperatures.Extraction = override.OpenAI.Temperatures.Extraction
	}
	if override.OpenAI.Temperatures.Analysis > 0 {
		base.OpenAI.Temperatures.Analysis = override.OpenAI.Temperatures.Analysis
	}
	if override.OpenAI.Temperatures.Negotiation > 0 {
		base.OpenAI.Temperatures.Negotiation = override.OpenAI.Temperatures.Negotiation
	}
	if override.OpenAI.Temperatures.Debate > 0 {
		base.OpenAI.Temperatures.Debate = override.OpenAI.Temperatures.Debate
	}
	if override.OpenAI.Temperatures.Summary > 0 {
		base.OpenAI.Temperatures.Summary = override.OpenAI.Temperatures.Summary
	}

	if override.Extraction.MinTextThreshold > 0 {
		base.Extraction.MinTextThreshold = override.Extraction.MinTextThreshold
	}
	if override.Extraction.Language != "" {
		base.Extraction.Language = override.Extraction.Language
	}

	if override.Debate.MaxRounds > 0 {
		base.Debate.MaxRounds = override.Debate.MaxRounds
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		OpenAI: OpenAIConfig{
			Endpoint: "https://api.openai.com/v1/chat/completions",
			Model:    "gpt-4o",
			APIKey:   "",
			Temperatures: TemperatureConfig{
				Extraction:  0.1,
				Analysis:    0.2,
				Negotiation: 0.7,
				Debate:      0.8,
				Summary:     0.3,
			},
		},
		Extraction: ExtractionConfig{
			MinTextThreshold: 50,
			Language:         "eng",
		},
		Debate: DebateConfig{MaxRounds: 10},
	}
}
