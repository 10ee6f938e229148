package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resumePress/internal/errcode"
	"resumePress/internal/templates"
)

// TemplateHandler serves the built-in template registry.
type TemplateHandler struct{}

func NewTemplateHandler() *TemplateHandler {
	return &TemplateHandler{}
}

type templateListResponse struct {
	Templates []templates.Template `json:"templates"`
	DefaultID string               `json:"default_id"`
}

// GET /v1/templates
// Optional ?category= filters the list.
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	list := templates.All()
	if category := c.Query("category"); category != "" {
		list = templates.ByCategory(category)
	}
	if list == nil {
		list = []templates.Template{}
	}
	c.JSON(http.StatusOK, templateListResponse{Templates: list, DefaultID: templates.DefaultID()})
}

// GET /v1/templates/:id
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	t, err := templates.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, templates.ErrUnknownTemplate) {
			c.JSON(http.StatusNotFound, gin.H{"error": "template not found", "code": errcode.UnknownTemplate})
			return
		}
		Internal(c, "failed to load template")
		return
	}
	c.JSON(http.StatusOK, t)
}
