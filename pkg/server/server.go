// Package server implements the local preview server: it serves the built
// output tree with pretty-URL resolution and pushes livereload events to
// connected browsers over a websocket.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
)

// Config configures the preview server.
type Config struct {
	// Addr is the listen address, e.g. "localhost:1414".
	Addr string
	// Dir is the built output tree to serve.
	Dir string
	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

// Server serves a built site directory over HTTP.
type Server struct {
	cfg    Config
	hub    *Hub
	engine *gin.Engine
	logger *slog.Logger
}

// New creates a preview server over the given output directory.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		cfg:    cfg,
		hub:    NewHub(cfg.Logger),
		engine: engine,
		logger: cfg.Logger,
	}

	engine.GET("/livereload", func(c *gin.Context) {
		s.hub.serveWs(c.Writer, c.Request)
	})
	engine.NoRoute(s.serveStatic)

	return s
}

// Hub returns the livereload hub, so a rebuild loop can notify browsers.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Handler exposes the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run starts the hub and the HTTP listener, and shuts both down when the
// context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	go s.hub.Run(ctx)

	srv := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("preview server listening", "addr", s.cfg.Addr, "dir", s.cfg.Dir)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// serveStatic resolves a request path against the output tree. Directories
// fall through to their index.html, misses get the built 404 page.
func (s *Server) serveStatic(c *gin.Context) {
	reqPath := path.Clean(c.Request.URL.Path)
	full := filepath.Join(s.cfg.Dir, filepath.FromSlash(reqPath))

	info, err := os.Stat(full)
	if err == nil && info.IsDir() {
		full = filepath.Join(full, "index.html")
		info, err = os.Stat(full)
	}
	if err != nil || info.IsDir() {
		s.notFound(c)
		return
	}
	c.File(full)
}

func (s *Server) notFound(c *gin.Context) {
	page, err := os.ReadFile(filepath.Join(s.cfg.Dir, "404.html"))
	if err != nil {
		c.String(http.StatusNotFound, "404 page not found")
		return
	}
	c.Data(http.StatusNotFound, "text/html; charset=utf-8", page)
}
