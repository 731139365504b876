package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/votiy-api/internal/interface/http"
	"github.com/oksasatya/votiy-api/internal/interface/middleware"
	"github.com/oksasatya/votiy-api/pkg/helpers"
)

type PollModule struct {
	Handler *handlers.PollHandler
	JWT     *helpers.JWTManager
	Limiter *middleware.Limiter
}

func NewPollModule(h *handlers.PollHandler, jwt *helpers.JWTManager, l *middleware.Limiter) *PollModule {
	return &PollModule{Handler: h, JWT: jwt, Limiter: l}
}

func (m *PollModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/polls")

	auth := middleware.Auth(m.JWT)
	write := m.Limiter.PerUser(60, time.Minute)

	g.GET("", m.Handler.List)
	g.GET("/search", m.Limiter.PerIP(60, time.Minute), m.Handler.Search)
	g.GET("/my-polls", auth, m.Handler.MyPolls)
	g.GET("/:id", middleware.OptionalAuth(m.JWT), m.Handler.Get)
	g.POST("", auth, write, m.Handler.Create)
	g.PUT("/:id", auth, write, m.Handler.Update)
	g.DELETE("/:id", auth, write, m.Handler.Delete)
}
