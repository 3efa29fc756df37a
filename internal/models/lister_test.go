package models

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"
)

func TestNewLister(t *testing.T) {
	lister := NewLister("test-api-key", "")

	if lister == nil {
		t.Fatal("NewLister returned nil")
	}

	if lister.apiKey != "test-api-key" {
		t.Errorf("Expected API key 'test-api-key', got '%s'", lister.apiKey)
	}

	if lister.client == nil {
		t.Error("OpenAI client not initialized")
	}
}

func TestListAvailableModels_NoAPIKey(t *testing.T) {
	lister := NewLister("", "")

	err := lister.ListAvailableModels(context.Background(), &bytes.Buffer{})
	if err == nil {
		t.Fatal("Expected error for missing API key")
	}

	expectedError := "OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure in .jsonlingo.yaml"
	if err.Error() != expectedError {
		t.Errorf("Expected error '%s', got: %v", expectedError, err)
	}
}

func TestListAvailableModels_FakeServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/models" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"object":"list","data":[
			{"id":"gpt-4o-mini","object":"model"},
			{"id":"dall-e-3","object":"model"},
			{"id":"gpt-4o-mini-tts","object":"model"},
			{"id":"gpt-4o","object":"model"},
			{"id":"text-embedding-3-small","object":"model"}
		]}`))
	}))
	defer server.Close()

	var out bytes.Buffer
	lister := NewLister("test-key", server.URL+"/v1")
	if err := lister.ListAvailableModels(context.Background(), &out); err != nil {
		t.Fatalf("ListAvailableModels failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{"  gpt-4o\n", "  gpt-4o-mini\n", "3 other models"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "dall-e-3") {
		t.Errorf("output lists an image model:\n%s", got)
	}
}

func TestCategorize(t *testing.T) {
	models := []openai.Model{
		{ID: "o3-mini"}, {ID: "whisper-1"}, {ID: "gpt-3.5-turbo"}, {ID: "babbage-002"},
	}

	chat, others := categorize(models)
	if !reflect.DeepEqual(chat, []string{"gpt-3.5-turbo", "o3-mini"}) {
		t.Errorf("categorize() chat = %v", chat)
	}
	if others != 2 {
		t.Errorf("categorize() others = %d, want 2", others)
	}
}

func TestListAvailableModels_Integration(t *testing.T) {
	// Skip if no API key
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: OPENAI_API_KEY not set")
	}

	lister := NewLister(apiKey, "")

	var out bytes.Buffer
	if err := lister.ListAvailableModels(context.Background(), &out); err != nil {
		t.Errorf("ListAvailableModels failed: %v", err)
	}
}
