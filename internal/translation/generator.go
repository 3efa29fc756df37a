package translation

import (
	"context"
	"fmt"
	"time"

	apperrors "codeberg.org/snonux/jsonlingo/internal/errors"
)

// Generator is a text-generation service answering one system+user prompt pair
type Generator interface {
	// Generate returns the completion for the two prompts. Implementations
	// sample at temperature zero.
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// Name returns the provider name
	Name() string
}

// Config holds the settings for building a Generator
type Config struct {
	Provider string // "openai" or "gemini"

	// OpenAI-specific settings
	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string // empty for api.openai.com

	// Gemini-specific settings
	GeminiKey   string
	GeminiModel string

	// Circuit breaker; BreakerFailures == 0 disables it
	BreakerFailures uint32
	BreakerCooldown time.Duration
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Provider:        "openai",
		OpenAIModel:     "gpt-4o-mini",
		GeminiModel:     "gemini-2.0-flash",
		BreakerFailures: 5,
		BreakerCooldown: 30 * time.Second,
	}
}

// NewGenerator creates the generator named by config.Provider, wrapped in a
// circuit breaker when enabled.
func NewGenerator(ctx context.Context, config *Config) (Generator, error) {
	if config == nil {
		config = DefaultConfig()
	}

	var gen Generator
	switch config.Provider {
	case "openai", "":
		g, err := NewOpenAIGenerator(config)
		if err != nil {
			return nil, err
		}
		gen = g
	case "gemini":
		g, err := NewGeminiGenerator(ctx, config)
		if err != nil {
			return nil, err
		}
		gen = g
	default:
		return nil, apperrors.NewConfigError(fmt.Sprintf("unknown provider: %s", config.Provider), nil)
	}

	if config.BreakerFailures > 0 {
		gen = NewBreakerGenerator(gen, config.BreakerFailures, config.BreakerCooldown)
	}
	return gen, nil
}
