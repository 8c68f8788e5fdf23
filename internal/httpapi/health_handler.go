package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/shift-scheduler/internal/metrics"
)

// HealthHandler serves liveness and Prometheus scrape endpoints, grounded on
// internal/handler/metrics_handler.go's Health/Prometheus pair.
type HealthHandler struct {
	metrics *metrics.Registry
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(reg *metrics.Registry) *HealthHandler {
	return &HealthHandler{metrics: reg}
}

// Health responds 200 OK once the process is able to serve requests.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Prometheus exposes the metrics registry's scrape handler.
func (h *HealthHandler) Prometheus(c *gin.Context) {
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}
