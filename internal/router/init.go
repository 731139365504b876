package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/votiy-api/config"
	"github.com/oksasatya/votiy-api/internal/application"
	"github.com/oksasatya/votiy-api/internal/container"
	"github.com/oksasatya/votiy-api/internal/infrastructure/cache"
	"github.com/oksasatya/votiy-api/internal/infrastructure/search"
	handlers "github.com/oksasatya/votiy-api/internal/interface/http"
	"github.com/oksasatya/votiy-api/internal/interface/middleware"
	"github.com/oksasatya/votiy-api/internal/observability"
	"github.com/oksasatya/votiy-api/internal/router/modules"
	"github.com/oksasatya/votiy-api/pkg/helpers"
	"github.com/oksasatya/votiy-api/pkg/response"
)

// Deps is everything the HTTP layer is built from. Redis, Mail and Search
// are optional and leave their features disabled when nil.
type Deps struct {
	Config *config.Config
	Logger *logrus.Logger
	JWT    *helpers.JWTManager
	Repos  container.Repositories
	DB     handlers.Pinger
	Redis  *redis.Client
	Mail   helpers.Publisher
	Search application.PollIndex
}

// DepsFromContainer collects the singletons registered by cmd/main.go.
func DepsFromContainer() Deps {
	cfg := container.GetConfig()
	d := Deps{
		Config: cfg,
		Logger: container.GetLogger(),
		JWT:    container.GetJWT(),
		Repos:  container.GetRepositories(),
		Redis:  container.GetRedis(),
	}
	if pool := container.GetPGPool(); pool != nil {
		d.DB = pool
	} else if p, ok := d.Repos.Users.(handlers.Pinger); ok {
		d.DB = p
	}
	// Interface fields must stay untyped nil when the backing client is absent.
	if q := container.GetRabbitQueue(); q != nil {
		d.Mail = q
	}
	if es := container.GetES(); es != nil {
		d.Search = search.NewPollIndex(es, cfg.ESPollsIndex)
	}
	return d
}

type services struct {
	users   *application.UserService
	auth    *application.AuthService
	polls   *application.PollService
	options *application.PollOptionService
	votes   *application.PollVoteService
}

func buildServices(d Deps) services {
	var pollCache application.PollCache
	if d.Redis != nil {
		pollCache = cache.NewPollCache(d.Redis, d.Config.PollsCacheTTL, d.Logger)
	}

	users := application.NewUserService(d.Repos.Users, pollCache, d.Logger)
	notifier := application.NewNotifier(d.Mail, d.Config.AppName, d.Config.AppURL, d.Logger)
	polls := application.NewPollService(d.Repos.Polls, pollCache, d.Search, d.Logger)

	return services{
		users:   users,
		auth:    application.NewAuthService(users, d.JWT, notifier, d.Logger),
		polls:   polls,
		options: application.NewPollOptionService(d.Repos.Options, polls),
		votes:   application.NewPollVoteService(d.Repos.Votes, d.Repos.Options),
	}
}

// InitModules builds services and handlers from d and registers their modules.
func InitModules(r *Registry, d Deps) {
	svc := buildServices(d)

	var rdb *redis.Client
	if d.Config.RateLimitEnabled {
		rdb = d.Redis
	}
	limiter := middleware.NewLimiter(rdb, nil)

	health := handlers.NewHealthHandler(d.Config.Env, d.DB)
	r.AddRoot(modules.NewHealthModule(health))

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(svc.auth), d.JWT, limiter))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(svc.users), d.JWT, limiter))
	r.Add(modules.NewPollModule(handlers.NewPollHandler(svc.polls), d.JWT, limiter))
	r.Add(modules.NewPollOptionModule(handlers.NewPollOptionHandler(svc.options), limiter))
	r.Add(modules.NewPollVoteModule(handlers.NewPollVoteHandler(svc.votes), limiter))

	if d.Config.DebugMetricsEnabled && d.DB != nil {
		r.Add(modules.NewDebugModule(health, middleware.NewLimiter(rdb, middleware.AllowPrivateIP())))
	}
}

func routeNotFound(c *gin.Context) {
	response.Error(c, http.StatusNotFound, "Route not found", nil)
}

// NewEngine returns the fully wired gin engine.
func NewEngine(d Deps) *gin.Engine {
	if d.Logger == nil {
		d.Logger = helpers.NopLogger()
	}

	r := gin.New()
	r.HandleMethodNotAllowed = false
	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	r.Use(observability.Middleware())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders:   []string{"Content-Length", middleware.HeaderRequestID},
	}))
	if d.Config.HTTPLogEnabled || d.Config.IsDevelopment() {
		r.Use(middleware.AccessLog(d.Logger))
	}
	r.NoRoute(routeNotFound)
	r.NoMethod(routeNotFound)

	reg := NewRegistry(r)
	InitModules(reg, d)
	reg.RegisterAll()
	return r
}
