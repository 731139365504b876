package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/votiy-api/internal/interface/http"
	"github.com/oksasatya/votiy-api/internal/observability"
)

// HealthModule is mounted on the engine root: GET /health and GET /metrics.
type HealthModule struct {
	Health *handlers.HealthHandler
}

func NewHealthModule(h *handlers.HealthHandler) *HealthModule {
	return &HealthModule{Health: h}
}

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/health", m.Health.Health)
	rg.GET("/metrics", observability.Handler())
}
