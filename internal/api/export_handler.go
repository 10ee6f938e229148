package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"resumePress/internal/api/middleware"
	"resumePress/internal/errcode"
	"resumePress/internal/export"
	"resumePress/internal/pipeline"
	"resumePress/internal/resume"
	"resumePress/internal/templates"
)

type pdfExporter interface {
	Export(ctx context.Context, req export.Request) (export.Output, error)
	Preview(doc resume.Document, templateID string) (string, pipeline.Result, error)
}

// ExportHandler renders documents submitted inline, without storing them.
type ExportHandler struct {
	exporter   pdfExporter
	counter    redisRateCounter
	rateLimit  int64
	rateWindow time.Duration
}

// NewExportHandler builds the handler. A nil counter or a zero limit
// disables rate limiting.
func NewExportHandler(exporter pdfExporter, counter redisRateCounter, rateLimit int64, rateWindow time.Duration) *ExportHandler {
	if rateWindow <= 0 {
		rateWindow = time.Minute
	}
	return &ExportHandler{exporter: exporter, counter: counter, rateLimit: rateLimit, rateWindow: rateWindow}
}

type exportRequest struct {
	Document   json.RawMessage `json:"document" binding:"required"`
	TemplateID string          `json:"template_id"`
	Backend    string          `json:"backend"`
}

// POST /v1/preview
// Responds with the print HTML the browser backend would receive.
func (h *ExportHandler) Preview(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	doc, ok := decodeDocument(c, req.Document)
	if !ok {
		return
	}
	html, result, err := h.exporter.Preview(doc, req.TemplateID)
	if err != nil {
		h.writeExportError(c, err)
		return
	}
	c.Header("X-Page-Count", fmt.Sprint(result.PageCount()))
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// POST /v1/export
// Responds with the PDF as an attachment.
func (h *ExportHandler) Export(c *gin.Context) {
	if !h.allow(c) {
		Error(c, http.StatusTooManyRequests, "export rate limit exceeded")
		return
	}

	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	backend, err := export.ParseBackend(req.Backend, "")
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	doc, ok := decodeDocument(c, req.Document)
	if !ok {
		return
	}

	out, err := h.exporter.Export(c.Request.Context(), export.Request{
		Document:   doc,
		TemplateID: req.TemplateID,
		Backend:    backend,
	})
	if err != nil {
		h.writeExportError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", out.Filename))
	c.Header("X-Page-Count", fmt.Sprint(out.Pages))
	c.Header("X-Page-Size", string(out.PageSize))
	c.Data(http.StatusOK, "application/pdf", out.PDF)
}

func (h *ExportHandler) allow(c *gin.Context) bool {
	if h.counter == nil || h.rateLimit <= 0 {
		return true
	}
	key := "export_rate:" + c.ClientIP()
	count, err := incrWithTTL(c.Request.Context(), h.counter, key, h.rateWindow)
	if err != nil {
		middleware.LoggerFromContext(c).Warn("export rate limit check failed, allowing request", slog.Any("error", err))
		return true
	}
	return count <= h.rateLimit
}

func (h *ExportHandler) writeExportError(c *gin.Context, err error) {
	if documentError(c, err) {
		return
	}
	switch {
	case errors.Is(err, templates.ErrUnknownTemplate):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": errcode.UnknownTemplate})
	case errors.Is(err, export.ErrUnknownBackend):
		BadRequest(c, err.Error())
	case errors.Is(err, export.ErrBackendUnavailable):
		Error(c, http.StatusServiceUnavailable, err.Error())
	default:
		middleware.LoggerFromContext(c).Error("export failed", slog.Any("error", err))
		Internal(c, "failed to export resume")
	}
}

func decodeDocument(c *gin.Context, raw json.RawMessage) (resume.Document, bool) {
	doc, err := resume.Decode(raw)
	if err != nil {
		if !documentError(c, err) {
			BadRequest(c, err.Error())
		}
		return resume.Document{}, false
	}
	return doc, true
}
