package http

import (
	"time"

	"telegram_initdata/internal/config"
	"telegram_initdata/internal/http/handlers"
	"telegram_initdata/internal/http/middleware"
	"telegram_initdata/internal/service"
	"telegram_initdata/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis_rate/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	redis "github.com/redis/go-redis/v9"
)

// Deps is everything the routes need. Users, Redis and Hub are optional.
type Deps struct {
	Config  *config.Config
	Version string

	Auth   *service.Authenticator
	Login  *service.LoginService
	Tokens *service.TokenIssuer
	Users  handlers.UserReader

	// Redis backs the rate limiter; nil falls back to a per-process limiter.
	Redis *redis.Client
	Hub   *ws.Hub
	// Checks are probed by /readyz and /health.
	Checks map[string]handlers.Pinger
}

// NewRouter builds the engine with the shared middleware installed.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.CORS(d.Config.AllowedOrigin))
	RegisterRoutes(r, d)
	return r
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	h := handlers.NewHandler(d.Login, d.Users)
	healthHandler := handlers.NewHealthHandler(d.Version, d.Checks)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authRL := rateLimit(d, "auth", d.Config.AuthRateLimit, d.Config.AuthRateWindow, middleware.ClientIPKey)
	userRL := rateLimit(d, "user", d.Config.AuthRateLimit*10, d.Config.AuthRateWindow, middleware.TgIDKey)

	v1 := r.Group("/api/v1")
	v1.POST("/auth", authRL, h.Auth)
	v1.GET("/me", middleware.JWT(d.Tokens), userRL, h.Me)
	v1.GET("/init-data", authRL, middleware.InitData(d.Auth), h.InitData)

	if d.Hub != nil {
		r.GET("/ws", authRL, ws.Handle(d.Hub, d.Config.AllowedOrigin))
	}
}

func rateLimit(d Deps, scope string, limit int, window time.Duration, key middleware.KeyFunc) gin.HandlerFunc {
	if limit <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if d.Redis != nil {
		return middleware.RedisRateLimit(redis_rate.NewLimiter(d.Redis), scope,
			redis_rate.Limit{Rate: limit, Burst: limit, Period: window}, key)
	}
	return middleware.SimpleRateLimit(scope, limit, window, key)
}
