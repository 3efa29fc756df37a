package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Entry is one document listed in a batch file
type Entry struct {
	Path string

	// Language overrides the default target language when set
	Language string
}

// ReadBatchFile reads document paths from a file and returns Entry slice
// Supports formats:
// - Path only: "docs/article.json" (default target language)
// - With language: "docs/article.json = German"
// - Comments: lines starting with '#' are ignored
//
// Relative paths are resolved against the batch file's directory.
func ReadBatchFile(filename string) ([]Entry, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	baseDir := filepath.Dir(filename)
	var entries []Entry

	for _, line := range splitLines(string(content)) {
		line = trimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		path, language := line, ""
		if strings.Contains(line, "=") {
			parts := strings.SplitN(line, "=", 2)
			path = strings.TrimSpace(parts[0])
			language = strings.TrimSpace(parts[1])
		}

		// "= German" names no document
		if path == "" {
			continue
		}

		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		entries = append(entries, Entry{Path: path, Language: language})
	}

	return entries, nil
}

// splitLines splits a string by newlines
func splitLines(s string) []string {
	var lines []string
	var current strings.Builder
	for _, r := range s {
		if r == '\n' {
			lines = append(lines, current.String())
			current.Reset()
		} else if r != '\r' {
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}

// trimSpace trims whitespace from string
func trimSpace(s string) string {
	start := 0
	end := len(s)

	// Trim from start
	for start < end && isSpace(rune(s[start])) {
		start++
	}

	// Trim from end
	for end > start && isSpace(rune(s[end-1])) {
		end--
	}

	return s[start:end]
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
