// Package server exposes the ranking pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/candidate-ranker/internal/ranking"
	"github.com/spigell/candidate-ranker/internal/storage"
)

// Config holds HTTP server settings.
type Config struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown-timeout"`
	CORSAllowOrigin string        `mapstructure:"cors-allow-origin"`
	MaxBodyBytes    int64         `mapstructure:"max-body-bytes"`
}

const (
	defaultAddr            = ":5000"
	defaultShutdownTimeout = 10 * time.Second
	defaultMaxBodyBytes    = 10 << 20
)

// Deps aggregates the collaborators used by the handlers.
type Deps struct {
	Ranker *ranking.Ranker
	// Store is optional; without it the candidate routes answer 404.
	Store  storage.CandidateStore
	Logger *zap.Logger
}

type handlers struct {
	ranker       *ranking.Ranker
	store        storage.CandidateStore
	maxBodyBytes int64
}

// NewRouter constructs the gin engine with middleware and routes registered.
func NewRouter(cfg Config, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r.Use(
		requestID(log),
		logging(),
		recovery(),
		cors(cfg.CORSAllowOrigin),
	)

	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}

	h := &handlers{ranker: deps.Ranker, store: deps.Store, maxBodyBytes: maxBody}

	r.GET("/healthz", h.health)

	api := r.Group("/api")
	api.POST("/rank-candidates", h.rankCandidates)
	api.POST("/extract", h.extractRequirements)
	api.GET("/candidates", h.listCandidates)
	api.POST("/candidates", h.importCandidates)

	r.NoRoute(func(c *gin.Context) {
		respondError(c, http.StatusNotFound, codeNotFound, "Route not found", nil)
	})

	return r
}

// Serve runs the HTTP server until ctx is cancelled, then shuts it down
// within the configured timeout.
func Serve(ctx context.Context, cfg Config, handler http.Handler, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}

	addr := cfg.Addr
	if addr == "" {
		addr = defaultAddr
	}
	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		log.Info("shutting down http server", zap.Duration("timeout", timeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		log.Info("http server stopped")
		return nil
	})

	return g.Wait()
}
