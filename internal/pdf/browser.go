// Package pdf prints rendered resume HTML to PDF in headless Chromium.
package pdf

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"resumePress/internal/units"
)

const defaultTimeout = 30 * time.Second

const fontsReadyScript = `() => {
  if (document && document.fonts && document.fonts.ready) {
    return Promise.race([
      document.fonts.ready.then(() => true),
      new Promise((resolve) => setTimeout(() => resolve(true), 3000))
    ]);
  }
  return true;
}`

type Options struct {
	// Bin is the Chromium executable. Empty means launcher.LookPath.
	Bin     string
	Timeout time.Duration
	Logger  *slog.Logger
}

// BrowserRenderer launches a fresh headless browser per render.
type BrowserRenderer struct {
	bin     string
	timeout time.Duration
	logger  *slog.Logger
}

func NewBrowserRenderer(opts Options) *BrowserRenderer {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &BrowserRenderer{bin: opts.Bin, timeout: opts.Timeout, logger: opts.Logger}
}

// Render prints html on paper of the given size with zero margins. The
// document's own @page rule wins when present.
func (r *BrowserRenderer) Render(ctx context.Context, html string, size units.PageSize) ([]byte, error) {
	widthIn, heightIn, ok := units.PaperInches(size)
	if !ok {
		return nil, fmt.Errorf("render pdf: unsupported page size %q", size)
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	logger := r.logger.With(slog.String("page_size", string(size)))

	launch := launcher.New().
		Context(ctx).
		Headless(true).
		NoSandbox(true)
	if r.bin != "" {
		launch = launch.Bin(r.bin)
	} else if path, ok := launcher.LookPath(); ok {
		launch = launch.Bin(path)
	}

	browserURL, err := launch.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch chromium: %w", err)
	}
	defer launch.Cleanup()

	browser := rod.New().ControlURL(browserURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}
	defer func() {
		_ = browser.Close()
	}()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	defer func() {
		_ = page.Close()
	}()

	if err := page.SetDocumentContent(html); err != nil {
		return nil, fmt.Errorf("set document content: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait load: %w", err)
	}
	if _, evalErr := page.Eval(fontsReadyScript); evalErr != nil {
		logger.Warn("document.fonts.ready wait failed, continue", slog.Any("error", evalErr))
	}
	if err := (proto.EmulationSetEmulatedMedia{Media: "print"}).Call(page); err != nil {
		return nil, fmt.Errorf("set emulated media to print: %w", err)
	}

	reader, err := page.PDF(&proto.PagePrintToPDF{
		PrintBackground:   true,
		PaperWidth:        float64Ptr(widthIn),
		PaperHeight:       float64Ptr(heightIn),
		MarginTop:         float64Ptr(0),
		MarginBottom:      float64Ptr(0),
		MarginLeft:        float64Ptr(0),
		MarginRight:       float64Ptr(0),
		PreferCSSPageSize: true,
	})
	if err != nil {
		return nil, fmt.Errorf("export pdf: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read pdf bytes: %w", err)
	}
	logger.Info("browser pdf rendered", slog.Int("bytes", len(data)))
	return data, nil
}

func float64Ptr(value float64) *float64 {
	return &value
}
