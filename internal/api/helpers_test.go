package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"resumePress/internal/database"
	"resumePress/internal/estimate"
	"resumePress/internal/export"
	"resumePress/internal/pipeline"
	"resumePress/internal/resume"
	"resumePress/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenSQLite("file:" + t.Name() + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return db
}

// fakeCounter is an in-memory redisRateCounter.
type fakeCounter struct {
	mu     sync.Mutex
	counts map[string]int64
	err    error
}

func newFakeCounter() *fakeCounter {
	return &fakeCounter{counts: map[string]int64{}}
}

func (f *fakeCounter) Incr(ctx context.Context, key string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	f.counts[key]++
	return redis.NewIntResult(f.counts[key], nil)
}

func (f *fakeCounter) Expire(ctx context.Context, key string, _ time.Duration) *redis.BoolCmd {
	return redis.NewBoolResult(true, nil)
}

type fakeQueue struct {
	tasks []*asynq.Task
	err   error
}

func (q *fakeQueue) Enqueue(task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if q.err != nil {
		return nil, q.err
	}
	q.tasks = append(q.tasks, task)
	return &asynq.TaskInfo{ID: "task-1", Type: task.Type()}, nil
}

type fakeStore struct {
	objects       map[string][]storage.ObjectMeta
	deletedPrefix []string
	presignedKey  string
	presignedName string
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]storage.ObjectMeta{}}
}

func (s *fakeStore) GenerateDownloadURL(_ context.Context, key, filename string, _ time.Duration) (string, error) {
	s.presignedKey = key
	s.presignedName = filename
	return "https://example.invalid/" + key, nil
}

func (s *fakeStore) ListObjects(_ context.Context, prefix string, _ int) ([]storage.ObjectMeta, error) {
	return s.objects[prefix], nil
}

func (s *fakeStore) DeletePrefix(_ context.Context, prefix string) error {
	s.deletedPrefix = append(s.deletedPrefix, prefix)
	return nil
}

// nativeWriter stands in for the canvas backend.
type nativeWriter struct{}

func (nativeWriter) Render(pipeline.Result, resume.Document) ([]byte, error) {
	return []byte("%PDF-1.7 native"), nil
}

func newTestRouter(t *testing.T, deps Deps) *gin.Engine {
	t.Helper()
	if deps.Logger == nil {
		deps.Logger = discardLogger()
	}
	router := NewRouter(deps.Logger)
	RegisterRoutes(router, deps)
	return router
}

func newExporter() *export.Service {
	return export.NewService(estimate.New(nil, nil), nil, nativeWriter{}, export.BackendNative, discardLogger())
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response: %v\n%s", err, rec.Body.String())
	}
}
