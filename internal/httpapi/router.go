package httpapi

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/noah-isme/shift-scheduler/pkg/config"
)

// RegisterRoutes wires the solver's routes onto an existing gin engine,
// grounded on cmd/api-gateway/main.go's route-grouping shape.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, health *HealthHandler, solve *SolveHandler, export *ExportHandler) {
	r.GET("/health", health.Health)
	r.GET("/ready", health.Health)
	r.GET("/metrics", health.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/solve", solve.Solve)
	api.POST("/export", export.Export)
	api.GET("/export/download/:token", export.Download)
}
