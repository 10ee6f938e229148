package api

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"resumePress/internal/errcode"
	"resumePress/internal/resume"
)

func TestExportReturnsPDF(t *testing.T) {
	router := newTestRouter(t, Deps{Exporter: newExporter()})

	rec := doJSON(t, router, http.MethodPost, "/v1/export", map[string]any{
		"document": resume.Default(),
		"backend":  "native",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("content type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "resume.pdf") {
		t.Errorf("content disposition = %q", cd)
	}
	if !strings.HasPrefix(rec.Body.String(), "%PDF") {
		t.Errorf("body is not a PDF")
	}
}

func TestExportBrowserUnavailable(t *testing.T) {
	router := newTestRouter(t, Deps{Exporter: newExporter()})

	rec := doJSON(t, router, http.MethodPost, "/v1/export", map[string]any{
		"document": resume.Default(),
		"backend":  "browser",
	})
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestExportUnknownBackend(t *testing.T) {
	router := newTestRouter(t, Deps{Exporter: newExporter()})

	rec := doJSON(t, router, http.MethodPost, "/v1/export", map[string]any{
		"document": resume.Default(),
		"backend":  "fax",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestExportUnknownTemplate(t *testing.T) {
	router := newTestRouter(t, Deps{Exporter: newExporter()})

	rec := doJSON(t, router, http.MethodPost, "/v1/export", map[string]any{
		"document":    resume.Default(),
		"template_id": "nope",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var got struct {
		Code int `json:"code"`
	}
	decodeBody(t, rec, &got)
	if got.Code != errcode.UnknownTemplate {
		t.Errorf("code = %d, want %d", got.Code, errcode.UnknownTemplate)
	}
}

func TestExportConfigError(t *testing.T) {
	router := newTestRouter(t, Deps{Exporter: newExporter()})

	doc := resume.Default()
	doc.Format.Margins = resume.Margins{Top: 500, Bottom: 500, Left: 10, Right: 10}
	rec := doJSON(t, router, http.MethodPost, "/v1/export", map[string]any{"document": doc})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestExportRateLimit(t *testing.T) {
	counter := newFakeCounter()
	h := NewExportHandler(newExporter(), counter, 2, 0)
	router := newTestRouter(t, Deps{})
	router.POST("/limited", h.Export)

	body := map[string]any{"document": resume.Default(), "backend": "native"}
	for i := 0; i < 2; i++ {
		if rec := doJSON(t, router, http.MethodPost, "/limited", body); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i, rec.Code)
		}
	}
	if rec := doJSON(t, router, http.MethodPost, "/limited", body); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
}

func TestExportRateLimitFailsOpen(t *testing.T) {
	counter := newFakeCounter()
	counter.err = errors.New("redis down")
	h := NewExportHandler(newExporter(), counter, 1, 0)
	router := newTestRouter(t, Deps{})
	router.POST("/limited", h.Export)

	body := map[string]any{"document": resume.Default(), "backend": "native"}
	for i := 0; i < 3; i++ {
		if rec := doJSON(t, router, http.MethodPost, "/limited", body); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i, rec.Code)
		}
	}
}

func TestPreviewReturnsHTML(t *testing.T) {
	router := newTestRouter(t, Deps{Exporter: newExporter()})

	rec := doJSON(t, router, http.MethodPost, "/v1/preview", map[string]any{
		"document":    resume.Default(),
		"template_id": "modern",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html") {
		t.Errorf("content type = %q", rec.Header().Get("Content-Type"))
	}
	if rec.Header().Get("X-Page-Count") == "" {
		t.Error("missing X-Page-Count")
	}
	if !strings.Contains(rec.Body.String(), "John Doe") {
		t.Error("preview does not contain the resume name")
	}
}
