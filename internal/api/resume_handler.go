package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"resumePress/internal/api/middleware"
	"resumePress/internal/database"
	"resumePress/internal/errcode"
	"resumePress/internal/export"
	"resumePress/internal/resume"
	"resumePress/internal/storage"
	"resumePress/internal/tasks"
	"resumePress/internal/templates"
)

const (
	downloadLinkTTL = 5 * time.Minute
	exportMaxRetry  = 5
	listExportLimit = 50
)

type taskQueue interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type objectStore interface {
	GenerateDownloadURL(ctx context.Context, objectKey, filename string, duration time.Duration) (string, error)
	ListObjects(ctx context.Context, prefix string, limit int) ([]storage.ObjectMeta, error)
	DeletePrefix(ctx context.Context, prefix string) error
}

// ResumeHandler stores documents and schedules their asynchronous export.
// Queue and store may be nil; the routes needing them then answer 503.
type ResumeHandler struct {
	db    *gorm.DB
	queue taskQueue
	store objectStore
}

func NewResumeHandler(db *gorm.DB, queue taskQueue, store objectStore) *ResumeHandler {
	return &ResumeHandler{db: db, queue: queue, store: store}
}

var errInvalidResumeID = errors.New("invalid resume id")

type saveResumeRequest struct {
	Title      string          `json:"title" binding:"required"`
	Content    json.RawMessage `json:"content" binding:"required"`
	TemplateID string          `json:"template_id"`
}

type resumeListItem struct {
	ID         uint      `json:"id"`
	Title      string    `json:"title"`
	TemplateID string    `json:"template_id"`
	Status     string    `json:"status"`
	PageCount  int       `json:"page_count"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type resumeResponse struct {
	ID         uint           `json:"id"`
	Title      string         `json:"title"`
	Content    datatypes.JSON `json:"content"`
	TemplateID string         `json:"template_id"`
	Status     string         `json:"status"`
	PageCount  int            `json:"page_count"`
	HasPDF     bool           `json:"has_pdf"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// GET /v1/resumes/default
// Responds with a fresh editor state: the sample document and the default
// template.
func (h *ResumeHandler) GetDefaultResume(c *gin.Context) {
	c.JSON(http.StatusOK, resume.NewState(templates.DefaultID()))
}

// POST /v1/resumes
func (h *ResumeHandler) CreateResume(c *gin.Context) {
	req, ok := bindSaveRequest(c)
	if !ok {
		return
	}

	model := database.Resume{
		Title:      req.Title,
		Content:    datatypes.JSON(req.Content),
		TemplateID: req.TemplateID,
		Status:     database.StatusDraft,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&model).Error; err != nil {
		Internal(c, "failed to create resume")
		return
	}
	c.JSON(http.StatusCreated, newResumeResponse(model))
}

// GET /v1/resumes
func (h *ResumeHandler) ListResumes(c *gin.Context) {
	var resumes []database.Resume
	if err := h.db.WithContext(c.Request.Context()).
		Order("updated_at DESC").
		Find(&resumes).Error; err != nil {
		Internal(c, "failed to list resumes")
		return
	}

	items := make([]resumeListItem, 0, len(resumes))
	for _, r := range resumes {
		items = append(items, resumeListItem{
			ID:         r.ID,
			Title:      r.Title,
			TemplateID: r.TemplateID,
			Status:     r.Status,
			PageCount:  r.PageCount,
			UpdatedAt:  r.UpdatedAt,
		})
	}
	c.JSON(http.StatusOK, items)
}

// GET /v1/resumes/:id
func (h *ResumeHandler) GetResume(c *gin.Context) {
	model, ok := h.loadResume(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newResumeResponse(*model))
}

// PUT /v1/resumes/:id
// Replaces title, content and template. A stored PDF is kept until the
// next export overwrites the key.
func (h *ResumeHandler) UpdateResume(c *gin.Context) {
	req, ok := bindSaveRequest(c)
	if !ok {
		return
	}
	model, ok := h.loadResume(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	updates := map[string]any{
		"title":       req.Title,
		"content":     datatypes.JSON(req.Content),
		"template_id": req.TemplateID,
	}
	if err := h.db.WithContext(ctx).Model(model).Updates(updates).Error; err != nil {
		Internal(c, "failed to update resume")
		return
	}
	if err := h.db.WithContext(ctx).First(model, model.ID).Error; err != nil {
		Internal(c, "failed to reload resume")
		return
	}
	c.JSON(http.StatusOK, newResumeResponse(*model))
}

// DELETE /v1/resumes/:id
// Removes the row and every stored export of it.
func (h *ResumeHandler) DeleteResume(c *gin.Context) {
	model, ok := h.loadResume(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := h.db.WithContext(ctx).Delete(&database.Resume{}, model.ID).Error; err != nil {
		Internal(c, "failed to delete resume")
		return
	}
	if h.store != nil {
		if err := h.store.DeletePrefix(ctx, storage.ExportPrefix(model.ID)); err != nil {
			middleware.LoggerFromContext(c).Warn("delete stored exports failed",
				slog.Uint64("resume_id", uint64(model.ID)),
				slog.Any("error", err),
			)
		}
	}
	c.Status(http.StatusNoContent)
}

// POST /v1/resumes/:id/export
// Queues a PDF export and returns 202. Progress is pushed over /v1/ws.
func (h *ResumeHandler) ExportResume(c *gin.Context) {
	if h.queue == nil {
		Error(c, http.StatusServiceUnavailable, "export queue is not configured")
		return
	}
	model, ok := h.loadResume(c)
	if !ok {
		return
	}
	if _, err := model.Document(); err != nil {
		if !documentError(c, err) {
			BadRequest(c, err.Error())
		}
		return
	}

	templateID := c.Query("template_id")
	if templateID == "" {
		templateID = model.TemplateID
	}
	if templateID != "" && !templates.IsValid(templateID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": templates.ErrUnknownTemplate.Error(), "code": errcode.UnknownTemplate})
		return
	}

	task, err := tasks.NewPDFExportTask(model.ID, middleware.GetCorrelationID(c), templateID)
	if err != nil {
		Internal(c, "failed to create task")
		return
	}

	ctx := c.Request.Context()
	if err := h.db.WithContext(ctx).Model(model).Update("status", database.StatusPending).Error; err != nil {
		Internal(c, "failed to update resume status")
		return
	}

	info, err := h.queue.Enqueue(task, asynq.MaxRetry(exportMaxRetry))
	if err != nil {
		_ = h.db.WithContext(ctx).Model(model).Update("status", database.StatusFailed).Error
		Internal(c, "failed to enqueue pdf export")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message": "PDF export request accepted",
		"task_id": info.ID,
	})
}

// GET /v1/resumes/:id/download-link
// Returns a short-lived presigned URL for the latest export.
func (h *ResumeHandler) GetDownloadLink(c *gin.Context) {
	if h.store == nil {
		Error(c, http.StatusServiceUnavailable, "object storage is not configured")
		return
	}
	model, ok := h.loadResume(c)
	if !ok {
		return
	}
	if model.PdfKey == "" {
		Conflict(c, "pdf not ready")
		return
	}

	signedURL, err := h.store.GenerateDownloadURL(c.Request.Context(), model.PdfKey, export.Filename, downloadLinkTTL)
	if err != nil {
		Internal(c, "failed to generate download link")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"url":        signedURL,
		"expires_in": int(downloadLinkTTL.Seconds()),
	})
}

// GET /v1/resumes/:id/exports
func (h *ResumeHandler) ListExports(c *gin.Context) {
	if h.store == nil {
		Error(c, http.StatusServiceUnavailable, "object storage is not configured")
		return
	}
	model, ok := h.loadResume(c)
	if !ok {
		return
	}

	objects, err := h.store.ListObjects(c.Request.Context(), storage.ExportPrefix(model.ID), listExportLimit)
	if err != nil {
		Internal(c, "failed to list exports")
		return
	}
	if objects == nil {
		objects = []storage.ObjectMeta{}
	}
	c.JSON(http.StatusOK, gin.H{"exports": objects, "latest": model.PdfKey})
}

// bindSaveRequest binds the body and validates the document and template.
func bindSaveRequest(c *gin.Context) (saveResumeRequest, bool) {
	var req saveResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return req, false
	}
	if _, ok := decodeDocument(c, req.Content); !ok {
		return req, false
	}
	if req.TemplateID == "" {
		req.TemplateID = templates.DefaultID()
	}
	if !templates.IsValid(req.TemplateID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": templates.ErrUnknownTemplate.Error(), "code": errcode.UnknownTemplate})
		return req, false
	}
	return req, true
}

func (h *ResumeHandler) loadResume(c *gin.Context) (*database.Resume, bool) {
	model, err := h.findResume(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, errInvalidResumeID):
			BadRequest(c, "invalid resume id")
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "resume not found", "code": errcode.ResumeNotFound})
		default:
			Internal(c, "failed to query resume")
		}
		return nil, false
	}
	return model, true
}

func (h *ResumeHandler) findResume(ctx context.Context, idParam string) (*database.Resume, error) {
	id, err := strconv.ParseUint(idParam, 10, 64)
	if err != nil || id == 0 {
		return nil, errInvalidResumeID
	}
	var model database.Resume
	if err := h.db.WithContext(ctx).First(&model, uint(id)).Error; err != nil {
		return nil, err
	}
	return &model, nil
}

func newResumeResponse(r database.Resume) resumeResponse {
	return resumeResponse{
		ID:         r.ID,
		Title:      r.Title,
		Content:    r.Content,
		TemplateID: r.TemplateID,
		Status:     r.Status,
		PageCount:  r.PageCount,
		HasPDF:     r.PdfKey != "",
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}
