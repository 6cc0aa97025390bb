package handlers

import (
	"net/http"

	"awardcheck-backend/logger"
	"awardcheck-backend/metrics"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RouterConfig collects what NewRouter wires into the engine
type RouterConfig struct {
	Evaluation *EvaluationHandler
	Reference  *ReferenceHandler
	Metrics    *metrics.Metrics
	Logger     *zap.Logger
}

// NewRouter sets up the API routes
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Logger != nil {
		r.Use(logger.GinMiddleware(cfg.Logger))
	}

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	{
		// Award evaluation
		api.POST("/awards/evaluate", cfg.Evaluation.Evaluate)

		// Reference data
		api.GET("/sites", cfg.Reference.ListSites)
		api.GET("/sites/:id", cfg.Reference.GetSite)
		api.GET("/project-refs/:id", cfg.Reference.GetProjectRef)
		api.GET("/line-items", cfg.Reference.ListLineItems)
		api.GET("/line-items/:id", cfg.Reference.GetLineItem)
		api.GET("/contracts/:id", cfg.Reference.GetContract)
	}

	return r
}
