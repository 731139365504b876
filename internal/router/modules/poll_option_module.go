package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/votiy-api/internal/interface/http"
	"github.com/oksasatya/votiy-api/internal/interface/middleware"
)

// PollOptionModule mounts /poll-options; none of its routes need a token.
type PollOptionModule struct {
	Handler *handlers.PollOptionHandler
	Limiter *middleware.Limiter
}

func NewPollOptionModule(h *handlers.PollOptionHandler, l *middleware.Limiter) *PollOptionModule {
	return &PollOptionModule{Handler: h, Limiter: l}
}

func (m *PollOptionModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/poll-options")
	write := m.Limiter.PerIP(60, time.Minute)

	g.GET("", m.Handler.List)
	g.GET("/poll/:pollId", m.Handler.ListByPoll)
	g.GET("/:id", m.Handler.Get)
	g.POST("", write, m.Handler.Create)
	g.PUT("/:id", write, m.Handler.Update)
	g.DELETE("/:id", write, m.Handler.Delete)
}
