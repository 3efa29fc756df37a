package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codeberg.org/snonux/jsonlingo/internal/jsonvalue"
)

// CreateTestFile creates a test file with content
func CreateTestFile(t *testing.T, path string, content []byte) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create directory for test file: %v", err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", path, err)
	}
}

// CreateTestDocuments writes JSON documents named by their map key into a
// temporary directory and returns it
func CreateTestDocuments(t *testing.T, docs map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range docs {
		CreateTestFile(t, filepath.Join(dir, name), []byte(content))
	}
	return dir
}

// MustParse parses a JSON document or fails the test
func MustParse(t *testing.T, s string) jsonvalue.Value {
	t.Helper()

	v, err := jsonvalue.Parse([]byte(s))
	if err != nil {
		t.Fatalf("Failed to parse %q: %v", s, err)
	}
	return v
}

// AssertJSON checks that v encodes to the expected compact JSON
func AssertJSON(t *testing.T, v jsonvalue.Value, expected string) {
	t.Helper()

	data, err := v.MarshalJSON()
	if err != nil {
		t.Fatalf("Failed to encode value: %v", err)
	}
	if string(data) != expected {
		t.Errorf("JSON mismatch\nExpected: %s\nActual:   %s", expected, data)
	}
}

// AssertFileExists checks if a file exists
func AssertFileExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Expected file to exist: %s", path)
	}
}

// AssertFileNotExists checks if a file does not exist
func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); err == nil {
		t.Errorf("Expected file to not exist: %s", path)
	}
}

// AssertFileContains checks if a file contains a substring
func AssertFileContains(t *testing.T, path string, substring string) {
	t.Helper()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}

	if !strings.Contains(string(content), substring) {
		t.Errorf("File %s does not contain expected substring: %q", path, substring)
	}
}
