// Package api serves the ledger and its reports over HTTP as JSON.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/Veraticus/tally/internal/dates"
	"github.com/Veraticus/tally/internal/ledger"
	"github.com/Veraticus/tally/internal/report"
	"github.com/gin-gonic/gin"
)

// Config holds the HTTP server settings.
type Config struct {
	Addr            string
	Currency        string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DefaultConfig returns the settings used when none are configured.
func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		Currency:        "$",
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Server exposes a Ledger and a report Generator over HTTP.
type Server struct {
	ledger    *ledger.Ledger
	generator *report.Generator
	resolver  *dates.Resolver
	router    *gin.Engine
	cfg       Config
}

// NewServer builds the router. Nothing listens until Run is called.
func NewServer(l *ledger.Ledger, g *report.Generator, resolver *dates.Resolver, cfg Config) *Server {
	RegisterValidators()

	if cfg.Currency == "" {
		cfg.Currency = "$"
	}

	s := &Server{
		ledger:    l,
		generator: g,
		resolver:  resolver,
		cfg:       cfg,
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogging())

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.GET("/dashboard", s.dashboard)
	api.GET("/summary", s.summary)
	api.GET("/search", s.search)

	api.GET("/transactions", s.listTransactions)
	api.POST("/transactions", s.createTransaction)
	api.GET("/transactions/:id", s.getTransaction)
	api.PUT("/transactions/:id", s.updateTransaction)
	api.DELETE("/transactions/:id", s.deleteTransaction)

	api.GET("/categories", s.listCategories)
	api.POST("/categories", s.createCategory)
	api.GET("/categories/:id", s.getCategory)
	api.DELETE("/categories/:id", s.deleteCategory)
	api.GET("/categories/:id/summary", s.categorySummary)

	api.GET("/reports/:kind", s.getReport)

	router.NoRoute(func(c *gin.Context) {
		respondWithError(c, notFound(CodeNotFound, "Resource not found"))
	})

	return router
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = DefaultConfig().ShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	slog.Info("Shutting down HTTP server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
