package api

import (
	"net/http"
	"testing"

	"resumePress/internal/templates"
)

func TestListTemplates(t *testing.T) {
	router := newTestRouter(t, Deps{Exporter: newExporter()})

	rec := doJSON(t, router, http.MethodGet, "/v1/templates", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got templateListResponse
	decodeBody(t, rec, &got)
	if len(got.Templates) != len(templates.All()) {
		t.Errorf("got %d templates", len(got.Templates))
	}
	if got.DefaultID != templates.DefaultID() {
		t.Errorf("default_id = %q", got.DefaultID)
	}
}

func TestListTemplatesUnknownCategory(t *testing.T) {
	router := newTestRouter(t, Deps{Exporter: newExporter()})

	rec := doJSON(t, router, http.MethodGet, "/v1/templates?category=none", nil)
	var got templateListResponse
	decodeBody(t, rec, &got)
	if got.Templates == nil || len(got.Templates) != 0 {
		t.Errorf("want empty non-null list, got %#v", got.Templates)
	}
}

func TestGetTemplate(t *testing.T) {
	router := newTestRouter(t, Deps{Exporter: newExporter()})

	rec := doJSON(t, router, http.MethodGet, "/v1/templates/"+templates.Modern, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got templates.Template
	decodeBody(t, rec, &got)
	if got.ID != templates.Modern {
		t.Errorf("id = %q", got.ID)
	}

	if rec := doJSON(t, router, http.MethodGet, "/v1/templates/missing", nil); rec.Code != http.StatusNotFound {
		t.Errorf("missing template status = %d, want 404", rec.Code)
	}
}
