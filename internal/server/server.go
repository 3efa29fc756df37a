package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"codeberg.org/snonux/jsonlingo/internal/history"
	"codeberg.org/snonux/jsonlingo/internal/tree"
)

// Config holds the HTTP service settings
type Config struct {
	Environment string

	// Language is the target when a request names none
	Language string

	// Timeout bounds the translation of one request; zero means none
	Timeout time.Duration

	// Strict reports that the tree translator fails whole documents
	Strict bool

	AllowedHosts []string
	CORSOrigins  []string

	Logger *slog.Logger
}

// Server is the HTTP translation service
type Server struct {
	trees    *tree.TreeTranslator
	provider string
	history  *history.Store
	config   Config
	logger   *slog.Logger
	engine   *gin.Engine
}

// New creates a Server. store may be nil to disable the request log.
func New(trees *tree.TreeTranslator, provider string, store *history.Store, config Config) *Server {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	s := &Server{
		trees:    trees,
		provider: provider,
		history:  store,
		config:   config,
		logger:   config.Logger,
	}
	s.engine = s.routes()
	return s
}

// Handler returns the HTTP handler of the service
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is done, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr, "provider", s.provider, "environment", s.config.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server error: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return <-errCh
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestID(), s.accessLog())

	if len(s.config.AllowedHosts) > 0 {
		r.Use(allowHosts(s.config.AllowedHosts))
	}
	if len(s.config.CORSOrigins) > 0 {
		r.Use(cors(s.config.CORSOrigins))
	}

	r.GET("/version", s.handleVersion)
	r.GET("/health", s.handleHealth)
	r.POST("/translate", s.handleTranslate)
	r.POST("/translate/document", s.handleTranslateDocument)
	r.GET("/history", s.handleHistory)

	return r
}
