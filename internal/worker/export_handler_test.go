package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"resumePress/internal/database"
	"resumePress/internal/errcode"
	"resumePress/internal/estimate"
	"resumePress/internal/export"
	"resumePress/internal/pipeline"
	"resumePress/internal/resume"
	"resumePress/internal/tasks"
)

type fakeUploader struct {
	objects map[string][]byte
}

func (u *fakeUploader) UploadFile(_ context.Context, name string, r io.Reader, _ int64, _ string) (*minio.UploadInfo, error) {
	b, _ := io.ReadAll(r)
	u.objects[name] = b
	return &minio.UploadInfo{Key: name}, nil
}

type published struct {
	channel string
	message ExportNotifyMessage
}

type fakePublisher struct {
	messages []published
}

func (p *fakePublisher) Publish(_ context.Context, channel string, message interface{}) *redis.IntCmd {
	var msg ExportNotifyMessage
	_ = json.Unmarshal(message.([]byte), &msg)
	p.messages = append(p.messages, published{channel: channel, message: msg})
	return redis.NewIntResult(1, nil)
}

type nativeWriter struct{}

func (nativeWriter) Render(result pipeline.Result, _ resume.Document) ([]byte, error) {
	return []byte(fmt.Sprintf("%%PDF pages=%d", len(result.Pages))), nil
}

type harness struct {
	db        *gorm.DB
	uploader  *fakeUploader
	publisher *fakePublisher
	handler   *ExportTaskHandler
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db, err := database.OpenSQLite("file:" + t.Name() + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	svc := export.NewService(estimate.New(nil, nil), nil, nativeWriter{}, export.BackendNative, slog.Default())
	h := &harness{
		db:        db,
		uploader:  &fakeUploader{objects: map[string][]byte{}},
		publisher: &fakePublisher{},
	}
	h.handler = NewExportTaskHandler(db, h.uploader, h.publisher, svc, slog.Default())
	return h
}

func (h *harness) insert(t *testing.T, doc resume.Document) database.Resume {
	t.Helper()
	row := database.Resume{Title: "Main", TemplateID: "classic", Status: database.StatusPending}
	if err := row.SetDocument(doc); err != nil {
		t.Fatalf("set document: %v", err)
	}
	if err := h.db.Create(&row).Error; err != nil {
		t.Fatalf("create resume: %v", err)
	}
	return row
}

func task(t *testing.T, id uint) *asynq.Task {
	t.Helper()
	tk, err := tasks.NewPDFExportTask(id, "cid-test", "")
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	return tk
}

func TestExportTaskCompletes(t *testing.T) {
	h := newHarness(t)
	row := h.insert(t, resume.Default())

	if err := h.handler.ProcessTask(context.Background(), task(t, row.ID)); err != nil {
		t.Fatalf("process: %v", err)
	}

	var stored database.Resume
	if err := h.db.First(&stored, row.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.Status != database.StatusCompleted || stored.PageCount == 0 {
		t.Fatalf("resume not updated: %+v", stored)
	}
	if _, ok := h.uploader.objects[stored.PdfKey]; !ok {
		t.Fatalf("pdf %q not uploaded", stored.PdfKey)
	}
	if len(h.publisher.messages) != 1 {
		t.Fatalf("expected one notification, got %d", len(h.publisher.messages))
	}
	msg := h.publisher.messages[0]
	if msg.channel != tasks.NotifyChannel(row.ID) || msg.message.Status != "completed" || msg.message.PageCount != stored.PageCount {
		t.Fatalf("unexpected notification %+v", msg)
	}
}

func TestExportTaskConfigErrorIsTerminal(t *testing.T) {
	h := newHarness(t)
	doc := resume.Default()
	doc.Format.Margins.Left, doc.Format.Margins.Right = 300, 300
	row := h.insert(t, doc)

	err := h.handler.ProcessTask(context.Background(), task(t, row.ID))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry, got %v", err)
	}
	if len(h.publisher.messages) != 1 || h.publisher.messages[0].message.ErrorCode != errcode.InvalidConfiguration {
		t.Fatalf("expected invalid configuration notification, got %+v", h.publisher.messages)
	}
	var stored database.Resume
	h.db.First(&stored, row.ID)
	if stored.Status != database.StatusFailed {
		t.Fatalf("expected failed status, got %q", stored.Status)
	}
	if len(h.uploader.objects) != 0 {
		t.Fatalf("nothing should be uploaded")
	}
}

func TestExportTaskMissingResumeIsSkipped(t *testing.T) {
	h := newHarness(t)
	if err := h.handler.ProcessTask(context.Background(), task(t, 999)); err != nil {
		t.Fatalf("expected nil for missing resume, got %v", err)
	}
	if len(h.publisher.messages) != 0 {
		t.Fatalf("no notification expected")
	}
}

func TestExportTaskBadPayload(t *testing.T) {
	h := newHarness(t)
	err := h.handler.ProcessTask(context.Background(), asynq.NewTask(tasks.TypePDFExport, []byte("{")))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry, got %v", err)
	}
}

func TestClassify(t *testing.T) {
	if code, terminal := classify(errors.New("minio down")); terminal || code != errcode.SystemError {
		t.Fatalf("transient errors must be retried")
	}
	if code, terminal := classify(&resume.SchemaError{}); !terminal || code != errcode.InvalidDocument {
		t.Fatalf("schema errors are terminal")
	}
}
