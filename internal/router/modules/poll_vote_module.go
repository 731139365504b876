package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/votiy-api/internal/interface/http"
	"github.com/oksasatya/votiy-api/internal/interface/middleware"
)

// PollVoteModule mounts /poll-votes; none of its routes need a token.
type PollVoteModule struct {
	Handler *handlers.PollVoteHandler
	Limiter *middleware.Limiter
}

func NewPollVoteModule(h *handlers.PollVoteHandler, l *middleware.Limiter) *PollVoteModule {
	return &PollVoteModule{Handler: h, Limiter: l}
}

func (m *PollVoteModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/poll-votes")
	write := m.Limiter.PerIPAndPath(30, time.Minute)

	g.GET("", m.Handler.List)
	g.GET("/poll/:pollId", m.Handler.ListByPoll)
	g.GET("/poll/:pollId/results", m.Handler.Results)
	g.GET("/user/:userId", m.Handler.ListByUser)
	g.GET("/:id", m.Handler.Get)
	g.POST("", write, m.Handler.Create)
	g.PUT("/:id", write, m.Handler.Update)
	g.DELETE("/:id", write, m.Handler.Delete)
}
