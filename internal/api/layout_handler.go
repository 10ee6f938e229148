package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"resumePress/internal/api/middleware"
	"resumePress/internal/estimate"
	"resumePress/internal/layout"
	"resumePress/internal/pipeline"
	"resumePress/internal/resume"
)

// LayoutHandler exposes the layout engine without producing a PDF.
type LayoutHandler struct {
	estimators      map[string]*estimate.Estimator
	defaultMeasurer string
}

func NewLayoutHandler(estimators map[string]*estimate.Estimator, defaultMeasurer string) *LayoutHandler {
	if estimators == nil {
		estimators = map[string]*estimate.Estimator{}
	}
	if _, ok := estimators[string(estimate.SourceHeuristic)]; !ok {
		estimators[string(estimate.SourceHeuristic)] = estimate.New(nil, nil)
	}
	if _, ok := estimators[defaultMeasurer]; !ok {
		defaultMeasurer = string(estimate.SourceHeuristic)
	}
	return &LayoutHandler{estimators: estimators, defaultMeasurer: defaultMeasurer}
}

type paginateRequest struct {
	Document json.RawMessage `json:"document" binding:"required"`
	Measurer string          `json:"measurer"`
}

type blockResponse struct {
	Kind     resume.BlockKind `json:"kind"`
	HeightPx float64          `json:"height_px"`
	HeightPt float64          `json:"height_pt"`
}

type pageResponse struct {
	Number      int             `json:"number"`
	Blocks      []blockResponse `json:"blocks"`
	RemainingPx float64         `json:"remaining_px"`
	RemainingPt float64         `json:"remaining_pt"`
}

type paginateResponse struct {
	Layout     layout.Measurements `json:"layout"`
	Pages      []pageResponse      `json:"pages"`
	PageCount  int                 `json:"page_count"`
	BlockCount int                 `json:"block_count"`
	Source     estimate.Source     `json:"source"`
}

// POST /v1/layout
// Body is a Format; responds with its Measurements.
func (h *LayoutHandler) Calculate(c *gin.Context) {
	var f resume.Format
	if err := c.ShouldBindJSON(&f); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if err := layout.Check(f); err != nil {
		documentError(c, err)
		return
	}
	c.JSON(http.StatusOK, layout.Calculate(f))
}

// POST /v1/paginate
func (h *LayoutHandler) Paginate(c *gin.Context) {
	var req paginateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	name := req.Measurer
	if name == "" {
		name = h.defaultMeasurer
	}
	est, found := h.estimators[name]
	if !found {
		BadRequest(c, "unknown measurer: "+name)
		return
	}

	doc, ok := decodeDocument(c, req.Document)
	if !ok {
		return
	}

	result, err := pipeline.Run(doc, est)
	if err != nil {
		if !documentError(c, err) {
			middleware.LoggerFromContext(c).Error("paginate failed", slog.Any("error", err))
			Internal(c, "failed to paginate")
		}
		return
	}
	c.JSON(http.StatusOK, newPaginateResponse(result))
}

func newPaginateResponse(r pipeline.Result) paginateResponse {
	pages := make([]pageResponse, 0, len(r.Pages))
	for _, p := range r.Pages {
		blocks := make([]blockResponse, 0, len(p.Blocks))
		for _, b := range p.Blocks {
			blocks = append(blocks, blockResponse{Kind: b.Block.Kind, HeightPx: b.Height.Px, HeightPt: b.Height.Pt})
		}
		pages = append(pages, pageResponse{
			Number:      p.Number,
			Blocks:      blocks,
			RemainingPx: p.RemainingPx,
			RemainingPt: p.RemainingPt(),
		})
	}
	return paginateResponse{
		Layout:     r.Layout,
		Pages:      pages,
		PageCount:  r.PageCount(),
		BlockCount: r.BlockCount,
		Source:     r.Source,
	}
}
