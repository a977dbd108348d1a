package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/mi-attendance-api/api/swagger"
	"github.com/noah-isme/mi-attendance-api/internal/handler"
	"github.com/noah-isme/mi-attendance-api/internal/middleware"
	"github.com/noah-isme/mi-attendance-api/internal/models"
	"github.com/noah-isme/mi-attendance-api/pkg/config"
	"github.com/noah-isme/mi-attendance-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/mi-attendance-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/mi-attendance-api/pkg/middleware/requestid"
)

type routes struct {
	students *handler.RecordHandler[models.Student]
	teachers *handler.RecordHandler[models.Teacher]
	metrics  *handler.MetricsHandler
	observer middleware.HTTPObserver
}

func newRouter(cfg *config.Config, logr *zap.Logger, h routes) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(h.observer, "/metrics", "/health", "/ready"))
		r.GET("/metrics", h.metrics.Prometheus)
	}

	r.GET("/health", h.metrics.Health)
	r.GET("/ready", h.metrics.Ready)

	h.students.Register(r.Group("/" + string(models.KindStudent)))
	h.teachers.Register(r.Group("/" + string(models.KindTeacher)))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
