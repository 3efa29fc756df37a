package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iancoleman/orderedmap"

	"codeberg.org/snonux/jsonlingo/internal"
	apperrors "codeberg.org/snonux/jsonlingo/internal/errors"
	"codeberg.org/snonux/jsonlingo/internal/history"
	"codeberg.org/snonux/jsonlingo/internal/jsonvalue"
	"codeberg.org/snonux/jsonlingo/internal/tree"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 500
)

func (s *Server) handleVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version":     internal.Version,
		"environment": s.config.Environment,
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"provider": s.provider,
	})
}

// handleTranslate serves the caller envelope
// {"translations": {"create": [{"headline": ..., "content": ...}]}}
func (s *Server) handleTranslate(c *gin.Context) {
	body, err := jsonvalue.Read(c.Request.Body)
	if err != nil || body.Kind() != jsonvalue.KindObject {
		s.fail(c, apperrors.NewInputError("request body must be a JSON object", err))
		return
	}

	item, err := createItem(body)
	if err != nil {
		s.fail(c, err)
		return
	}

	doc := jsonvalue.Object(
		jsonvalue.Member{Key: "headline", Value: fieldOrEmpty(item, "headline")},
		jsonvalue.Member{Key: "content", Value: fieldOrEmpty(item, "content")},
	)

	var requested string
	if lang, ok := body.Get("target_language"); ok && lang.Kind() == jsonvalue.KindString {
		requested = lang.Str()
	}

	language := s.targetLanguage(c, requested)
	out, _, ok := s.translate(c, doc, language)
	if !ok {
		return
	}

	envelope := orderedmap.New()
	envelope.SetEscapeHTML(false)
	envelope.Set("status", "success")
	envelope.Set("translated_data", out)
	c.PureJSON(http.StatusOK, envelope)
}

type documentRequest struct {
	Document       json.RawMessage `json:"document"`
	TargetLanguage string          `json:"target_language"`
}

func (s *Server) handleTranslateDocument(c *gin.Context) {
	var req documentRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			err = nil
		}
		s.fail(c, apperrors.NewInputError("request body must be a JSON object", err))
		return
	}
	// an explicit null arrives as the literal, only an absent key is empty
	if len(req.Document) == 0 {
		s.fail(c, apperrors.NewShapeError(`missing "document"`, nil))
		return
	}
	doc, err := jsonvalue.Parse(req.Document)
	if err != nil {
		s.fail(c, apperrors.NewInputError("invalid document", err))
		return
	}

	language := s.targetLanguage(c, req.TargetLanguage)
	out, report, ok := s.translate(c, doc, language)
	if !ok {
		return
	}

	c.PureJSON(http.StatusOK, gin.H{
		"status":          "success",
		"target_language": language,
		"document":        out,
		"stats":           report,
	})
}

func (s *Server) handleHistory(c *gin.Context) {
	if s.history == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "request history is disabled"})
		return
	}

	limit := defaultHistoryLimit
	if q := c.Query("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 1 {
			s.fail(c, apperrors.NewInputError(fmt.Sprintf("invalid limit %q", q), err))
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	ctx := c.Request.Context()
	entries, err := s.history.Recent(ctx, limit)
	if err != nil {
		s.fail(c, apperrors.NewUnexpectedError("failed to read history", err))
		return
	}
	stats, err := s.history.Stats(ctx)
	if err != nil {
		s.fail(c, apperrors.NewUnexpectedError("failed to read history", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"stats":   stats,
	})
}

// translate runs the tree translator for one request and records it. On
// failure the response has already been written.
func (s *Server) translate(c *gin.Context, doc jsonvalue.Value, language string) (jsonvalue.Value, tree.Report, bool) {
	ctx := c.Request.Context()
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	start := time.Now()
	out, report, err := s.trees.TranslateWithReport(ctx, doc, language)
	s.record(c, language, report, time.Since(start), err)

	if err != nil {
		s.fail(c, err)
		return jsonvalue.Value{}, tree.Report{}, false
	}

	if report.Original > 0 {
		s.logger.Warn("document partially translated",
			"request_id", c.GetString(requestIDKey),
			"language", language,
			"leaves", report.Leaves,
			"kept_original", report.Original)
	}
	return out, report, true
}

func (s *Server) record(c *gin.Context, language string, report tree.Report, elapsed time.Duration, err error) {
	if s.history == nil {
		return
	}

	entry := history.Entry{
		RequestID:  c.GetString(requestIDKey),
		Endpoint:   c.FullPath(),
		Language:   language,
		Leaves:     report.Leaves,
		Structured: report.Structured,
		Raw:        report.Raw,
		Original:   report.Original,
		Duration:   elapsed.Milliseconds(),
		Status:     history.StatusSuccess,
	}
	if err != nil {
		entry.Status = history.StatusFailed
		entry.Error = err.Error()
	}

	// the client may already be gone; the log entry is still wanted
	ctx := context.WithoutCancel(c.Request.Context())
	if _, err := s.history.Record(ctx, entry); err != nil {
		s.logger.Error("failed to record request", "request_id", entry.RequestID, "error", err)
	}
}

// targetLanguage picks the request's language, then ?lang=, then the default
func (s *Server) targetLanguage(c *gin.Context, requested string) string {
	if requested != "" {
		return requested
	}
	if lang := c.Query("lang"); lang != "" {
		return lang
	}
	return s.config.Language
}

// createItem returns body.translations.create[0]
func createItem(body jsonvalue.Value) (jsonvalue.Value, error) {
	if translations, ok := body.Get("translations"); ok {
		if create, ok := translations.Get("create"); ok && create.Kind() == jsonvalue.KindArray && create.Len() > 0 {
			if item := create.Elems()[0]; item.Kind() == jsonvalue.KindObject {
				return item, nil
			}
		}
	}

	members := body.Members()
	keys := make([]string, 0, len(members))
	for _, m := range members {
		keys = append(keys, m.Key)
	}
	sort.Strings(keys)
	return jsonvalue.Value{}, apperrors.NewShapeError(fmt.Sprintf("expected translations.create[0], received keys: %v", keys), nil)
}

func fieldOrEmpty(item jsonvalue.Value, key string) jsonvalue.Value {
	if v, ok := item.Get(key); ok {
		return v
	}
	return jsonvalue.String("")
}
