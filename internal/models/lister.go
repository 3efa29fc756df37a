package models

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Lister handles listing available OpenAI models
type Lister struct {
	apiKey string
	client *openai.Client
}

// NewLister creates a new model lister. baseURL selects an
// OpenAI-compatible endpoint and may be empty.
func NewLister(apiKey, baseURL string) *Lister {
	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}

	return &Lister{
		apiKey: apiKey,
		client: openai.NewClientWithConfig(clientConfig),
	}
}

// ListAvailableModels writes the chat models usable for translation to w
func (l *Lister) ListAvailableModels(ctx context.Context, w io.Writer) error {
	if l.apiKey == "" {
		return fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure in .jsonlingo.yaml")
	}

	models, err := l.client.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	chatModels, others := categorize(models.Models)

	fmt.Fprintln(w, "Chat/Translation Models:")
	if len(chatModels) == 0 {
		fmt.Fprintln(w, "  No chat models found")
	}
	for _, model := range chatModels {
		fmt.Fprintf(w, "  %s\n", model)
	}
	if others > 0 {
		fmt.Fprintf(w, "\n%d other models (audio, image, embedding) omitted\n", others)
	}

	return nil
}

// categorize returns the sorted chat model IDs and the number of other models
func categorize(models []openai.Model) ([]string, int) {
	chatModels := []string{}
	others := 0

	for _, model := range models {
		id := model.ID
		switch {
		case strings.Contains(id, "tts"), strings.Contains(id, "audio"),
			strings.Contains(id, "realtime"), strings.Contains(id, "transcribe"),
			strings.Contains(id, "dall-e"), strings.Contains(id, "image"),
			strings.Contains(id, "embedding"), strings.Contains(id, "whisper"),
			strings.Contains(id, "moderation"):
			others++
		case strings.HasPrefix(id, "gpt"), strings.HasPrefix(id, "o1"),
			strings.HasPrefix(id, "o3"), strings.HasPrefix(id, "o4"),
			strings.Contains(id, "chat"):
			chatModels = append(chatModels, id)
		default:
			others++
		}
	}

	sort.Strings(chatModels)
	return chatModels, others
}
