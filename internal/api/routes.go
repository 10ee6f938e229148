package api

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"resumePress/internal/estimate"
)

// Deps holds everything the handlers need. Redis, Queue and Storage may be
// nil; the routes depending on them are then not registered.
type Deps struct {
	DB         *gorm.DB
	Redis      *redis.Client
	Queue      taskQueue
	Storage    objectStore
	Exporter   pdfExporter
	Estimators map[string]*estimate.Estimator
	// DefaultMeasurer keys Estimators when a request names none.
	DefaultMeasurer string
	RateLimit       int64
	RateWindow      time.Duration
	Logger          *slog.Logger
}

// RegisterRoutes registers the /v1 API.
func RegisterRoutes(router *gin.Engine, deps Deps) {
	var counter redisRateCounter
	if deps.Redis != nil {
		counter = deps.Redis
	}

	layoutHandler := NewLayoutHandler(deps.Estimators, deps.DefaultMeasurer)
	exportHandler := NewExportHandler(deps.Exporter, counter, deps.RateLimit, deps.RateWindow)
	templateHandler := NewTemplateHandler()

	v1 := router.Group("/v1")
	{
		v1.POST("/layout", layoutHandler.Calculate)
		v1.POST("/paginate", layoutHandler.Paginate)
		v1.POST("/preview", exportHandler.Preview)
		v1.POST("/export", exportHandler.Export)

		v1.GET("/templates", templateHandler.ListTemplates)
		v1.GET("/templates/:id", templateHandler.GetTemplate)

		if deps.Redis != nil {
			wsHandler := NewWsHandler(deps.Redis, deps.Logger, nil)
			v1.GET("/ws", wsHandler.HandleConnection)
		}

		if deps.DB != nil {
			resumeHandler := NewResumeHandler(deps.DB, deps.Queue, deps.Storage)
			resumeGroup := v1.Group("/resumes")
			{
				resumeGroup.GET("/default", resumeHandler.GetDefaultResume)
				resumeGroup.POST("", resumeHandler.CreateResume)
				resumeGroup.GET("", resumeHandler.ListResumes)
				resumeGroup.GET("/:id", resumeHandler.GetResume)
				resumeGroup.PUT("/:id", resumeHandler.UpdateResume)
				resumeGroup.DELETE("/:id", resumeHandler.DeleteResume)
				resumeGroup.POST("/:id/export", resumeHandler.ExportResume)
				resumeGroup.GET("/:id/download-link", resumeHandler.GetDownloadLink)
				resumeGroup.GET("/:id/exports", resumeHandler.ListExports)
			}
		}
	}
}
