package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resumePress/internal/errcode"
	"resumePress/internal/layout"
	"resumePress/internal/resume"
)

func Error(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

func BadRequest(c *gin.Context, msg string) { Error(c, http.StatusBadRequest, msg) }
func NotFound(c *gin.Context, msg string)   { Error(c, http.StatusNotFound, msg) }
func Conflict(c *gin.Context, msg string)   { Error(c, http.StatusConflict, msg) }
func Internal(c *gin.Context, msg string)   { Error(c, http.StatusInternalServerError, msg) }

// InvalidConfiguration reports a format the layout engine refuses.
func InvalidConfiguration(c *gin.Context, err *layout.ConfigError) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"error": err.Error(),
		"code":  errcode.InvalidConfiguration,
		"field": err.Field,
	})
}

// InvalidDocument reports schema violations of a submitted document.
func InvalidDocument(c *gin.Context, err *resume.SchemaError) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":      "invalid resume document",
		"code":       errcode.InvalidDocument,
		"violations": err.Violations,
	})
}

// documentError writes the response for a decode or layout failure and
// reports whether err was one of them.
func documentError(c *gin.Context, err error) bool {
	var cfgErr *layout.ConfigError
	var schemaErr *resume.SchemaError
	switch {
	case errors.As(err, &cfgErr):
		InvalidConfiguration(c, cfgErr)
	case errors.As(err, &schemaErr):
		InvalidDocument(c, schemaErr)
	default:
		return false
	}
	return true
}
