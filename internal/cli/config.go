package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	apperrors "codeberg.org/snonux/jsonlingo/internal/errors"
	"codeberg.org/snonux/jsonlingo/internal/translation"
)

var envKeyReplacer = strings.NewReplacer(".", "_", "-", "_")

// Config is the materialised application configuration
type Config struct {
	Generator translation.Config

	Language    string
	Concurrency int
	Strict      bool
	Timeout     time.Duration

	Server ServerConfig
}

// ServerConfig holds the HTTP service settings
type ServerConfig struct {
	Addr         string
	Environment  string
	AllowedHosts []string
	CORSOrigins  []string
	HistoryDB    string
}

func setDefaults() {
	def := translation.DefaultConfig()

	viper.SetDefault("provider", def.Provider)
	viper.SetDefault("openai.model", def.OpenAIModel)
	viper.SetDefault("gemini.model", def.GeminiModel)
	viper.SetDefault("translate.language", translation.DefaultLanguage)
	viper.SetDefault("translate.concurrency", 4)
	viper.SetDefault("translate.strict", false)
	viper.SetDefault("translate.timeout", 5*time.Minute)
	viper.SetDefault("breaker.failures", def.BreakerFailures)
	viper.SetDefault("breaker.cooldown", def.BreakerCooldown)
	viper.SetDefault("server.addr", ":8000")
	viper.SetDefault("server.environment", "development")
}

// LoadConfig builds a Config from viper. The generic "model" key (the --model
// flag) overrides the model of whichever provider is selected.
func LoadConfig() (*Config, error) {
	gen := translation.Config{
		Provider:        strings.ToLower(viper.GetString("provider")),
		OpenAIKey:       GetOpenAIKey(),
		OpenAIModel:     viper.GetString("openai.model"),
		OpenAIBaseURL:   viper.GetString("openai.base_url"),
		GeminiKey:       GetGeminiKey(),
		GeminiModel:     viper.GetString("gemini.model"),
		BreakerFailures: viper.GetUint32("breaker.failures"),
		BreakerCooldown: viper.GetDuration("breaker.cooldown"),
	}

	if model := viper.GetString("model"); model != "" {
		switch gen.Provider {
		case "gemini":
			gen.GeminiModel = model
		default:
			gen.OpenAIModel = model
		}
	}

	switch gen.Provider {
	case "", "openai", "gemini":
	default:
		return nil, apperrors.NewConfigError(fmt.Sprintf("unknown provider %q (want openai or gemini)", gen.Provider), nil)
	}

	config := &Config{
		Generator:   gen,
		Language:    viper.GetString("translate.language"),
		Concurrency: viper.GetInt("translate.concurrency"),
		Strict:      viper.GetBool("translate.strict"),
		Timeout:     viper.GetDuration("translate.timeout"),
		Server: ServerConfig{
			Addr:         viper.GetString("server.addr"),
			Environment:  viper.GetString("server.environment"),
			AllowedHosts: viper.GetStringSlice("server.allowed_hosts"),
			CORSOrigins:  viper.GetStringSlice("server.cors_origins"),
			HistoryDB:    viper.GetString("server.history_db"),
		},
	}

	if config.Concurrency < 1 {
		return nil, apperrors.NewConfigError(fmt.Sprintf("concurrency must be at least 1, got %d", config.Concurrency), nil)
	}

	return config, nil
}

// NewLogger returns a text logger on w; verbose enables debug output
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
