package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"resumePress/internal/estimate"
	"resumePress/internal/export"
	"resumePress/internal/layout"
	"resumePress/internal/pdf"
	"resumePress/internal/pipeline"
	"resumePress/internal/resume"
	"resumePress/internal/templates"
	"resumePress/internal/typeset"
)

const (
	measurerHeuristic = "heuristic"
	measurerCanvas    = "canvas"
)

func newLayoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layout <resume.json>",
		Short: "Print the page and content measurements of a resume's format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			if err := layout.Check(doc.Format); err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), layout.Calculate(doc.Format))
		},
	}
}

type pageSummary struct {
	Number      int                `json:"number"`
	Blocks      []resume.BlockKind `json:"blocks"`
	HeightsPx   []float64          `json:"heights_px"`
	RemainingPx float64            `json:"remaining_px"`
	RemainingPt float64            `json:"remaining_pt"`
}

type paginateSummary struct {
	Layout     layout.Measurements `json:"layout"`
	Source     estimate.Source     `json:"source"`
	BlockCount int                 `json:"block_count"`
	PageCount  int                 `json:"page_count"`
	Pages      []pageSummary       `json:"pages"`
}

func newPaginateCmd() *cobra.Command {
	var measurer string

	cmd := &cobra.Command{
		Use:   "paginate <resume.json>",
		Short: "Split a resume into pages and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			doc, err := readDocument(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			est, err := newEstimator(ctx, measurer)
			if err != nil {
				return err
			}

			prog := newProgress(loggerFromContext(ctx))
			result, err := pipeline.Run(doc, est)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Paginated %d blocks into %d pages", result.BlockCount, result.PageCount()))

			return writeJSON(cmd.OutOrStdout(), summarize(result))
		},
	}
	cmd.Flags().StringVar(&measurer, "measurer", measurerHeuristic, "block height source: heuristic or canvas")
	return cmd
}

func summarize(r pipeline.Result) paginateSummary {
	pages := make([]pageSummary, 0, len(r.Pages))
	for _, p := range r.Pages {
		s := pageSummary{Number: p.Number, RemainingPx: p.RemainingPx, RemainingPt: p.RemainingPt()}
		for _, b := range p.Blocks {
			s.Blocks = append(s.Blocks, b.Block.Kind)
			s.HeightsPx = append(s.HeightsPx, b.Height.Px)
		}
		pages = append(pages, s)
	}
	return paginateSummary{
		Layout:     r.Layout,
		Source:     r.Source,
		BlockCount: r.BlockCount,
		PageCount:  r.PageCount(),
		Pages:      pages,
	}
}

type exportSummary struct {
	Output   string          `json:"output"`
	Pages    int             `json:"pages"`
	Bytes    int             `json:"bytes"`
	Backend  export.Backend  `json:"backend"`
	Source   estimate.Source `json:"source"`
	Template string          `json:"template"`
}

func newExportCmd() *cobra.Command {
	var (
		output     string
		templateID string
		backend    string
		measurer   string
		chromeBin  string
	)

	cmd := &cobra.Command{
		Use:   "export <resume.json>",
		Short: "Render a resume to PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			b, err := export.ParseBackend(backend, export.BackendNative)
			if err != nil {
				return err
			}
			doc, err := readDocument(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			est, err := newEstimator(ctx, measurer)
			if err != nil {
				return err
			}

			svc := export.NewService(est,
				pdf.NewBrowserRenderer(pdf.Options{Bin: chromeBin, Logger: slogFromContext(ctx)}),
				typeset.NewWriter(),
				b,
				slogFromContext(ctx),
			)

			prog := newProgress(logger)
			out, err := svc.Export(ctx, export.Request{Document: doc, TemplateID: templateID, Backend: b})
			if err != nil {
				return err
			}
			if err := os.WriteFile(output, out.PDF, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			prog.done(fmt.Sprintf("Wrote %s", output))

			return writeJSON(cmd.OutOrStdout(), exportSummary{
				Output:   output,
				Pages:    out.Pages,
				Bytes:    len(out.PDF),
				Backend:  out.Backend,
				Source:   out.Source,
				Template: templateOrDefault(templateID),
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", export.Filename, "PDF output path")
	cmd.Flags().StringVar(&templateID, "template", templates.DefaultID(), "template id")
	cmd.Flags().StringVar(&backend, "backend", string(export.BackendNative), "export backend: native or browser")
	cmd.Flags().StringVar(&measurer, "measurer", measurerHeuristic, "block height source: heuristic or canvas")
	cmd.Flags().StringVar(&chromeBin, "chrome-bin", "", "Chromium executable for the browser backend")
	return cmd
}

func newTemplatesCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List the built-in templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list := templates.All()
			if category != "" {
				list = templates.ByCategory(category)
			}
			if list == nil {
				list = []templates.Template{}
			}
			return writeJSON(cmd.OutOrStdout(), list)
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only list templates of this category")
	return cmd
}

func newEstimator(ctx context.Context, name string) (*estimate.Estimator, error) {
	switch name {
	case "", measurerHeuristic:
		return estimate.New(nil, slogFromContext(ctx)), nil
	case measurerCanvas:
		return estimate.New(typeset.NewMeasurer(), slogFromContext(ctx)), nil
	default:
		return nil, fmt.Errorf("unknown measurer %q (want %s or %s)", name, measurerHeuristic, measurerCanvas)
	}
}

// readDocument loads and validates a resume from path, or from stdin when
// path is "-".
func readDocument(stdin io.Reader, path string) (resume.Document, error) {
	var (
		raw []byte
		err error
	)
	if path == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return resume.Document{}, fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := resume.Decode(raw)
	if err != nil {
		return resume.Document{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return doc, nil
}

func templateOrDefault(id string) string {
	if id == "" {
		return templates.DefaultID()
	}
	return id
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
