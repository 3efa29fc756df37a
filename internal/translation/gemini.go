package translation

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"google.golang.org/genai"

	apperrors "codeberg.org/snonux/jsonlingo/internal/errors"
)

// GeminiGenerator implements Generator with the Gemini API
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a new Gemini generator
func NewGeminiGenerator(ctx context.Context, config *Config) (*GeminiGenerator, error) {
	if config.GeminiKey == "" {
		return nil, apperrors.NewConfigError("Gemini API key not found", nil)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.GeminiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, apperrors.NewConfigError("failed to create Gemini client", err)
	}

	model := config.GeminiModel
	if model == "" {
		model = DefaultConfig().GeminiModel
	}

	return &GeminiGenerator{client: client, model: model}, nil
}

// Name returns the provider name
func (g *GeminiGenerator) Name() string {
	return "gemini"
}

// Generate passes the system prompt as system instruction
func (g *GeminiGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(userPrompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0),
		ResponseMIMEType:  "application/json",
	})
	if err != nil {
		return "", classifyGeminiError(err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", apperrors.NewUnexpectedError("Gemini returned no text", nil)
	}
	return text, nil
}

func classifyGeminiError(err error) error {
	code := 0
	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	switch {
	case errors.As(err, &apiErr):
		code = apiErr.Code
	case errors.As(err, &apiErrPtr):
		code = apiErrPtr.Code
	}

	if code == http.StatusUnauthorized || code == http.StatusForbidden {
		return apperrors.NewFatalServiceError("Gemini API rejected the credentials", err)
	}
	return apperrors.NewServiceError("Gemini API error", err)
}
