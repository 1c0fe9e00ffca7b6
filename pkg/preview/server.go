// Package preview serves freshly rendered CV documents over HTTP and lets an
// editor patch the content snapshot they are rendered from.
package preview

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nikogura/portfolio-cv/pkg/content"
	"github.com/nikogura/portfolio-cv/pkg/generator"
	"github.com/nikogura/portfolio-cv/pkg/metrics"
	"github.com/nikogura/portfolio-cv/pkg/renderer"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
)

// Options configure a Server.
type Options struct {
	// Name is used for download file names.
	Name   string
	Logger *slog.Logger
}

// Server renders documents on request from the current content snapshot.
type Server struct {
	gen    *generator.Generator
	name   string
	logger *slog.Logger
	router *gin.Engine

	mu       sync.RWMutex
	snapshot content.SiteContent
}

// New builds the server and its routes around initial.
func New(gen *generator.Generator, initial content.SiteContent, opts Options) (s *Server) {
	s = &Server{
		gen:      gen,
		name:     opts.Name,
		logger:   opts.Logger,
		snapshot: initial,
	}
	if s.name == "" {
		s.name = initial.Hero.Name
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	router := gin.New()
	router.Use(gin.Recovery(), CorrelationID(), RequestLogger(s.logger), metrics.GinMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/cv/:file", s.handleDocument)
	router.GET("/content", s.handleGetContent)
	router.PATCH("/content", s.handlePatchContent)

	s.router = router
	return s
}

// Handler exposes the routes, mainly for tests.
func (s *Server) Handler() (h http.Handler) {
	h = s.router
	return h
}

// Snapshot returns the content documents are currently rendered from.
func (s *Server) Snapshot() (c content.SiteContent) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c = s.snapshot
	return c
}

// ListenAndServe runs the server until ctx ends.
func (s *Server) ListenAndServe(ctx context.Context, addr string) (err error) {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	s.logger.Info("preview server listening", slog.String("addr", addr))
	go func() {
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err = httpServer.Shutdown(shutdownCtx)
		if err != nil {
			err = errors.Wrap(err, "failed to shut down preview server")
			return err
		}
		return err
	case err = <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
			return err
		}
		err = errors.Wrap(err, "preview server failed")
		return err
	}
}

// handleDocument serves GET /cv/<lang>.<format>. A language that is not
// supported is negotiated from ?lang= and Accept-Language instead.
func (s *Server) handleDocument(c *gin.Context) {
	file := c.Param("file")
	dot := strings.LastIndex(file, ".")
	if dot < 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "expected /cv/<lang>.<format>"})
		return
	}

	format, err := renderer.ParseFormat(file[dot+1:])
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	lang, err := content.ParseLanguage(file[:dot])
	if err != nil {
		lang = content.Negotiate(c.Query("lang"), c.GetHeader("Accept-Language"))
	}

	data, err := s.gen.RenderOne(s.Snapshot(), lang, format)
	if err != nil {
		loggerFrom(c).Error("render failed",
			slog.String("lang", lang.String()),
			slog.String("format", format.String()),
			slog.Any("error", err),
		)
		status := http.StatusInternalServerError
		if errors.Is(err, renderer.ErrUnsupportedFormat) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+renderer.Filename(s.name, lang, format)+`"`)
	c.Header("Content-Language", lang.String())
	c.Data(http.StatusOK, format.ContentType(), data)
}

// handleGetContent returns the snapshot as JSON, or as YAML with
// ?format=yaml so it can be saved back as a content file.
func (s *Server) handleGetContent(c *gin.Context) {
	enc := content.EncodingJSON
	contentType := "application/json; charset=utf-8"
	switch strings.ToLower(c.DefaultQuery("format", string(content.EncodingJSON))) {
	case string(content.EncodingJSON):
	case string(content.EncodingYAML), "yml":
		enc = content.EncodingYAML
		contentType = "application/yaml; charset=utf-8"
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported format " + c.Query("format")})
		return
	}

	data, err := content.Encode(s.Snapshot(), enc)
	if err != nil {
		loggerFrom(c).Error("content encoding failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, contentType, data)
}

// handlePatchContent applies one edit and swaps in the new snapshot. The
// edit is rejected if the result would fail to load from a content file.
func (s *Server) handlePatchContent(c *gin.Context) {
	var edit content.Edit
	err := c.ShouldBindJSON(&edit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid edit body: " + err.Error()})
		return
	}

	s.mu.Lock()
	next, err := content.Apply(s.snapshot, edit.Path, edit.Value)
	if err == nil {
		err = next.Validate()
	}
	if err == nil {
		s.snapshot = next
	}
	s.mu.Unlock()

	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, content.ErrInvalidEdit) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	loggerFrom(c).Info("content edited", slog.String("path", edit.Path))
	c.JSON(http.StatusOK, next)
}
