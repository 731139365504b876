package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/votiy-api/internal/interface/http"
	"github.com/oksasatya/votiy-api/internal/interface/middleware"
)

// DebugModule exposes expvar and a database ping under /debug.
type DebugModule struct {
	Health  *handlers.HealthHandler
	Limiter *middleware.Limiter
}

func NewDebugModule(h *handlers.HealthHandler, l *middleware.Limiter) *DebugModule {
	return &DebugModule{Health: h, Limiter: l}
}

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rl := m.Limiter.PerIP(120, time.Minute)
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
	rg.GET("/debug/db", rl, m.Health.Database)
}
