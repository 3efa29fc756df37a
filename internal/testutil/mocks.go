package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"codeberg.org/snonux/jsonlingo/internal/translation"
)

// MockGenerator mocks a text-generation service. It is safe for concurrent
// use and keys its answers by the text being translated.
type MockGenerator struct {
	Responses map[string]string
	Errors    map[string]error

	// Delay is applied to every call; a canceled context ends it early.
	Delay time.Duration

	mu          sync.Mutex
	calls       []string
	inFlight    int
	maxInFlight int
}

// Name returns the provider name
func (m *MockGenerator) Name() string {
	return "mock"
}

// Generate mocks one completion
func (m *MockGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	text := strings.TrimPrefix(userPrompt, translation.BuildUserPrompt(""))

	m.mu.Lock()
	m.calls = append(m.calls, text)
	m.inFlight++
	if m.inFlight > m.maxInFlight {
		m.maxInFlight = m.inFlight
	}
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.inFlight--
		m.mu.Unlock()
	}()

	if m.Delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(m.Delay):
		}
	}

	if err, ok := m.Errors[text]; ok {
		return "", err
	}

	if resp, ok := m.Responses[text]; ok {
		return resp, nil
	}

	// Default mock translation
	return StructuredReply("translation", fmt.Sprintf("mock translation of %s", text)), nil
}

// Calls returns the texts seen so far, in call order
func (m *MockGenerator) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// MaxInFlight returns the highest number of concurrent calls observed
func (m *MockGenerator) MaxInFlight() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maxInFlight
}

// StructuredReply builds a schema-conforming reply with the translation under key
func StructuredReply(key, text string) string {
	data, _ := json.Marshal(map[string]string{
		key:                 text,
		"translation_notes": "",
	})
	return string(data)
}
