// Package server is the HTTP surface: the credential proxy routes and a small
// JSON API for starting a debate and downloading its transcript.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lorenzotomasdiez/llm-debate/internal/debate"
	"github.com/lorenzotomasdiez/llm-debate/internal/models"
	"github.com/lorenzotomasdiez/llm-debate/internal/proxy"
	"github.com/sirupsen/logrus"
)

// StartOpts holds configuration for the HTTP server.
type StartOpts struct {
	Addr    string
	Session *debate.Session
	Aliases *models.Registry
	// Proxies maps a route name ("groq", "openrouter") to its handler,
	// served at /api/proxy/<name>.
	Proxies map[string]*proxy.Handler
	Log     *logrus.Logger
	Out     io.Writer
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(opts StartOpts) (*gin.Engine, error) {
	if opts.Session == nil {
		return nil, fmt.Errorf("server: session is required")
	}
	if opts.Aliases == nil {
		opts.Aliases = models.DefaultRegistry()
	}
	if opts.Log == nil {
		opts.Log = logrus.New()
		opts.Log.SetOutput(io.Discard)
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(opts.Log))
	registerRoutes(router, opts)
	return router, nil
}

// Start launches the HTTP server. It blocks until ctx is cancelled, then
// shuts down gracefully.
func Start(ctx context.Context, opts StartOpts) error {
	if opts.Addr == "" {
		opts.Addr = ":8888"
	}

	gin.SetMode(gin.ReleaseMode)
	router, err := NewRouter(opts)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              opts.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	if opts.Out != nil {
		fmt.Fprintf(opts.Out, "Debate server listening on %s\n", opts.Addr)
	}

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

func requestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		}).Debug("request")
	}
}
