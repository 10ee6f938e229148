// Package export turns a resume document into a PDF through either the
// browser or the native backend.
package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"resumePress/internal/estimate"
	"resumePress/internal/pipeline"
	"resumePress/internal/resume"
	"resumePress/internal/templates"
	"resumePress/internal/units"
)

type Backend string

const (
	BackendBrowser Backend = "browser"
	BackendNative  Backend = "native"
)

// Filename is the attachment name of every exported PDF.
const Filename = "resume.pdf"

var (
	ErrUnknownBackend     = errors.New("unknown export backend")
	ErrBackendUnavailable = errors.New("export backend not configured")
)

// ParseBackend accepts backend names case-insensitively. Empty means
// fallback.
func ParseBackend(value string, fallback Backend) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(value))); b {
	case "":
		return fallback, nil
	case BackendBrowser, BackendNative:
		return b, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBackend, value)
	}
}

// HTMLRenderer prints HTML to PDF on paper of the given size.
type HTMLRenderer interface {
	Render(ctx context.Context, html string, size units.PageSize) ([]byte, error)
}

// PDFWriter draws a paginated layout directly to PDF.
type PDFWriter interface {
	Render(result pipeline.Result, doc resume.Document) ([]byte, error)
}

type Request struct {
	Document   resume.Document
	TemplateID string
	Backend    Backend
}

type Output struct {
	PDF      []byte
	Pages    int
	PageSize units.PageSize
	Filename string
	Backend  Backend
	Source   estimate.Source
}

type Service struct {
	estimator *estimate.Estimator
	browser   HTMLRenderer
	native    PDFWriter
	backend   Backend
	logger    *slog.Logger
}

// NewService wires the export backends. Either renderer may be nil; a
// request for a missing one fails with ErrBackendUnavailable.
func NewService(est *estimate.Estimator, browser HTMLRenderer, native PDFWriter, backend Backend, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if backend == "" {
		backend = BackendBrowser
	}
	return &Service{estimator: est, browser: browser, native: native, backend: backend, logger: logger}
}

// Preview lays the document out and renders the print HTML without
// producing a PDF.
func (s *Service) Preview(doc resume.Document, templateID string) (string, pipeline.Result, error) {
	tpl, err := resolveTemplate(templateID)
	if err != nil {
		return "", pipeline.Result{}, err
	}
	result, err := pipeline.Run(doc, s.estimator)
	if err != nil {
		return "", pipeline.Result{}, err
	}
	html, err := templates.Render(tpl, doc, result)
	if err != nil {
		return "", pipeline.Result{}, err
	}
	return html, result, nil
}

func (s *Service) Export(ctx context.Context, req Request) (Output, error) {
	backend := req.Backend
	if backend == "" {
		backend = s.backend
	}
	logger := s.logger.With(
		slog.String("template_id", req.TemplateID),
		slog.String("backend", string(backend)),
	)

	tpl, err := resolveTemplate(req.TemplateID)
	if err != nil {
		return Output{}, err
	}
	result, err := pipeline.Run(req.Document, s.estimator)
	if err != nil {
		return Output{}, err
	}
	size := req.Document.Format.PageSize

	var data []byte
	switch backend {
	case BackendBrowser:
		if s.browser == nil {
			return Output{}, fmt.Errorf("%w: %s", ErrBackendUnavailable, backend)
		}
		html, err := templates.Render(tpl, req.Document, result)
		if err != nil {
			return Output{}, err
		}
		data, err = s.browser.Render(ctx, html, size)
		if err != nil {
			return Output{}, fmt.Errorf("browser export: %w", err)
		}
	case BackendNative:
		if s.native == nil {
			return Output{}, fmt.Errorf("%w: %s", ErrBackendUnavailable, backend)
		}
		data, err = s.native.Render(result, req.Document)
		if err != nil {
			return Output{}, fmt.Errorf("native export: %w", err)
		}
	default:
		return Output{}, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}

	logger.Info("resume exported",
		slog.Int("pages", result.PageCount()),
		slog.String("source", string(result.Source)),
		slog.Int("bytes", len(data)))

	return Output{
		PDF:      data,
		Pages:    result.PageCount(),
		PageSize: size,
		Filename: Filename,
		Backend:  backend,
		Source:   result.Source,
	}, nil
}

func resolveTemplate(id string) (templates.Template, error) {
	if strings.TrimSpace(id) == "" {
		id = templates.DefaultID()
	}
	tpl, err := templates.Get(id)
	if err != nil {
		return templates.Template{}, fmt.Errorf("%w: %q", err, id)
	}
	return tpl, nil
}
