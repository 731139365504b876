package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/votiy-api/internal/interface/http"
	"github.com/oksasatya/votiy-api/internal/interface/middleware"
	"github.com/oksasatya/votiy-api/pkg/helpers"
)

// UserModule mounts /users. Reads are public, writes need a token.
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
	Limiter *middleware.Limiter
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager, l *middleware.Limiter) *UserModule {
	return &UserModule{Handler: h, JWT: jwt, Limiter: l}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/users")

	auth := middleware.Auth(m.JWT)
	write := m.Limiter.PerUser(60, time.Minute)

	// /profile must be registered before /:id
	g.GET("/profile", auth, m.Handler.GetProfile)
	g.PUT("/profile", auth, write, m.Handler.UpdateProfile)

	g.GET("", m.Handler.List)
	g.GET("/:id", m.Handler.Get)
	g.POST("", auth, write, m.Handler.Create)
	g.PUT("/:id", auth, write, m.Handler.Update)
	g.DELETE("/:id", auth, write, m.Handler.Delete)
}
