package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/hibiken/asynq"
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"resumePress/internal/database"
	"resumePress/internal/errcode"
	"resumePress/internal/export"
	"resumePress/internal/layout"
	"resumePress/internal/resume"
	"resumePress/internal/storage"
	"resumePress/internal/tasks"
	"resumePress/internal/templates"
)

type objectUploader interface {
	UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (*minio.UploadInfo, error)
}

type publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

type exporter interface {
	Export(ctx context.Context, req export.Request) (export.Output, error)
}

// ExportTaskHandler consumes pdf:export tasks.
type ExportTaskHandler struct {
	db       *gorm.DB
	storage  objectUploader
	notifier publisher
	exporter exporter
	logger   *slog.Logger
}

func NewExportTaskHandler(db *gorm.DB, storage objectUploader, notifier publisher, exporter exporter, logger *slog.Logger) *ExportTaskHandler {
	return &ExportTaskHandler{
		db:       db,
		storage:  storage,
		notifier: notifier,
		exporter: exporter,
		logger:   logger,
	}
}

// ProcessTask implements asynq.Handler.
func (h *ExportTaskHandler) ProcessTask(ctx context.Context, t *asynq.Task) (retErr error) {
	log := h.logger

	var payload tasks.PDFExportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Error("unmarshal task payload failed", slog.Any("error", err))
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	log = log.With(
		slog.String("correlation_id", payload.CorrelationID),
		slog.Int("resume_id", int(payload.ResumeID)),
	)
	log.Info("starting resume export task")

	var row database.Resume
	if err := h.db.WithContext(ctx).First(&row, payload.ResumeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("resume not found, skipping task")
			return nil
		}
		log.Error("query resume failed", slog.Any("error", err))
		return err
	}

	defer func() {
		if retErr == nil {
			return
		}
		code, terminal := classify(retErr)
		message := strings.TrimSpace(retErr.Error())
		if terminal {
			retErr = fmt.Errorf("%w: %w", retErr, asynq.SkipRetry)
		} else if !isFinalAsynqAttempt(ctx) {
			return
		}

		if err := h.db.WithContext(ctx).Model(&row).Update("status", database.StatusFailed).Error; err != nil {
			log.Error("mark resume export failed", slog.Any("error", err))
		}
		notify := ExportNotifyMessage{
			Status:        "error",
			ResumeID:      row.ID,
			CorrelationID: payload.CorrelationID,
			ErrorCode:     code,
			ErrorMessage:  message,
		}
		if err := h.publish(ctx, notify); err != nil {
			log.Error("publish export error notification failed", slog.Any("error", err))
		}
	}()

	doc, err := row.Document()
	if err != nil {
		log.Error("stored resume is invalid", slog.Any("error", err))
		return err
	}

	templateID := payload.TemplateID
	if templateID == "" {
		templateID = row.TemplateID
	}
	out, err := h.exporter.Export(ctx, export.Request{Document: doc, TemplateID: templateID})
	if err != nil {
		log.Error("export resume failed", slog.Any("error", err))
		return err
	}

	objectName := storage.NewExportKey(row.ID)
	if _, err := h.storage.UploadFile(ctx, objectName, bytes.NewReader(out.PDF), int64(len(out.PDF)), "application/pdf"); err != nil {
		log.Error("upload pdf to minio failed", slog.Any("error", err))
		return err
	}

	update := map[string]any{
		"pdf_key":    objectName,
		"status":     database.StatusCompleted,
		"page_count": out.Pages,
	}
	if err := h.db.WithContext(ctx).Model(&row).Updates(update).Error; err != nil {
		log.Error("update resume failed", slog.Any("error", err))
		return err
	}

	notify := ExportNotifyMessage{
		Status:        "completed",
		ResumeID:      row.ID,
		CorrelationID: payload.CorrelationID,
		PageCount:     out.Pages,
		ErrorCode:     errcode.OK,
	}
	if err := h.publish(ctx, notify); err != nil {
		// The PDF is stored; a retry would only duplicate it.
		log.Error("publish redis notification failed", slog.Any("error", err))
	}

	log.Info("resume export task completed",
		slog.String("object", objectName),
		slog.Int("pages", out.Pages))
	return nil
}

func (h *ExportTaskHandler) publish(ctx context.Context, notify ExportNotifyMessage) error {
	data, err := json.Marshal(notify)
	if err != nil {
		return fmt.Errorf("marshal notification payload: %w", err)
	}
	channel := tasks.NotifyChannel(notify.ResumeID)
	if err := h.notifier.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("publish redis notification to %q: %w", channel, err)
	}
	return nil
}

// classify maps an export failure to its notification code and whether
// retrying could ever help.
func classify(err error) (code int, terminal bool) {
	var schemaErr *resume.SchemaError
	switch {
	case errors.Is(err, layout.ErrContentArea), errors.Is(err, layout.ErrInvalidFormat):
		return errcode.InvalidConfiguration, true
	case errors.As(err, &schemaErr):
		return errcode.InvalidDocument, true
	case errors.Is(err, templates.ErrUnknownTemplate):
		return errcode.UnknownTemplate, true
	default:
		return errcode.SystemError, false
	}
}

func isFinalAsynqAttempt(ctx context.Context) bool {
	retryCount, ok1 := asynq.GetRetryCount(ctx)
	maxRetry, ok2 := asynq.GetMaxRetry(ctx)
	if !ok1 || !ok2 {
		return false
	}
	return retryCount >= maxRetry
}
