package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/votiy-api/internal/interface/http"
	"github.com/oksasatya/votiy-api/internal/interface/middleware"
	"github.com/oksasatya/votiy-api/pkg/helpers"
)

// AuthModule mounts /auth.
// Public: POST /signup, /signin, /login
// Protected: POST /signout, /refresh, GET /profile, PUT /change-password
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
	Limiter *middleware.Limiter
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager, l *middleware.Limiter) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt, Limiter: l}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/auth")

	signupLimiter := m.Limiter.PerIP(10, time.Hour)
	signinLimiter := m.Limiter.PerIPAndPath(10, time.Minute)

	g.POST("/signup", signupLimiter, m.Handler.Signup)
	g.POST("/signin", signinLimiter, m.Handler.Signin)
	g.POST("/login", signinLimiter, m.Handler.Signin)

	auth := g.Group("/")
	auth.Use(middleware.Auth(m.JWT), m.Limiter.PerUser(120, time.Minute))
	{
		auth.POST("/signout", m.Handler.Signout)
		auth.GET("/profile", m.Handler.Profile)
		auth.POST("/refresh", m.Handler.Refresh)
		auth.PUT("/change-password", m.Limiter.PerUser(5, time.Minute), m.Handler.ChangePassword)
	}
}
