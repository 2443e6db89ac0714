// Package server provides the sysmon Gin-based HTTP surface.
// Every request builds its own Snapshot; nothing is cached or shared
// between requests.
//
//	GET /healthz
//	GET /api/snapshot?format=json|table
package server

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vesaa/sysmon/internal/agent"
	"github.com/vesaa/sysmon/internal/render"
)

// Server renders Snapshots on demand.
type Server struct {
	collector *agent.Collector
	logger    *zap.SugaredLogger
}

// New returns a Server backed by c.
func New(c *agent.Collector, logger *zap.SugaredLogger) *Server {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Server{collector: c, logger: logger}
}

// Engine builds a Gin engine with recovery, request logging and all routes.
func (s *Server) Engine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), LogMiddleware(s.logger))
	s.RegisterRoutes(r)
	return r
}

// RegisterRoutes wires up the API on the given engine.
func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
	})

	api := r.Group("/api")
	api.GET("/snapshot", s.handleSnapshot)
}

// ── Handlers ──────────────────────────────────────────────────────────────────

// handleSnapshot collects a fresh Snapshot and renders it.
//
//	GET /api/snapshot?format=table
//
// format defaults to json.
func (s *Server) handleSnapshot(c *gin.Context) {
	format, err := render.ParseFormat(c.DefaultQuery("format", "json"))
	if err != nil {
		s.logger.Warnw("rejected format selection", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap := s.collector.Collect(c.Request.Context())

	var buf bytes.Buffer
	switch format {
	case render.Tabular:
		render.NewTable(s.logger).Render(&buf, snap)
		c.Data(http.StatusOK, "text/plain; charset=utf-8", buf.Bytes())
	default:
		if _, err := render.NewJSON(s.logger).Render(&buf, snap); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", buf.Bytes())
	}
}
