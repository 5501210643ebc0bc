// Package server exposes the extraction pipeline over HTTP.
package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/joseph-ayodele/invoice-parser/internal/common"
	"github.com/joseph-ayodele/invoice-parser/internal/document"
	"github.com/joseph-ayodele/invoice-parser/internal/export"
	"github.com/joseph-ayodele/invoice-parser/internal/invoice"
)

// Extractor is satisfied by *pipeline.Orchestrator.
type Extractor interface {
	Extract(ctx context.Context, doc *document.Document) (*invoice.Record, error)
}

type Server struct {
	logger         *slog.Logger
	extractor      Extractor
	exporter       *export.Service
	maxUploadBytes int64
}

func New(logger *slog.Logger, x Extractor, exporter *export.Service, maxUploadMB int) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if exporter == nil {
		exporter = export.NewService(logger)
	}
	if maxUploadMB <= 0 {
		maxUploadMB = 20
	}
	return &Server{
		logger:         logger,
		extractor:      x,
		exporter:       exporter,
		maxUploadBytes: int64(maxUploadMB) << 20,
	}
}

// Router builds the gin engine with request ids and access logging.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/health", s.Health)
	v1 := r.Group("/v1")
	v1.POST("/invoices/parse", s.ParseInvoice)
	return r
}

const requestIDHeader = "X-Request-ID"

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		rid := c.GetHeader(requestIDHeader)
		if rid == "" {
			rid = uuid.New().String()
		}
		c.Header(requestIDHeader, rid)
		c.Request = c.Request.WithContext(common.WithRequestID(c.Request.Context(), rid))

		c.Next()

		s.logger.Info("http.request",
			"req_id", rid,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
	}
}
