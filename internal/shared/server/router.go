package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	googleauth "portfolio-backend/internal/auth"
	"portfolio-backend/internal/dashboard"
	"portfolio-backend/internal/shared/config"
	"portfolio-backend/internal/shared/metrics"
	"portfolio-backend/internal/shared/server/middleware"
	"portfolio-backend/internal/shared/server/respond"
	"portfolio-backend/internal/users"
	"portfolio-backend/internal/waitlist"
	"portfolio-backend/internal/wizard"
)

// RouterDeps carries the wired handlers into the router. Nil handlers simply
// leave their routes unregistered, which keeps partial setups usable in tests.
type RouterDeps struct {
	Config           config.Config
	GoogleAuth       *googleauth.GoogleService
	UsersHandler     *users.Handler
	WizardHandler    *wizard.Handler
	WaitlistHandler  *waitlist.Handler
	DashboardHandler *dashboard.Handler
	Visitors         middleware.VisitRecorder
	UploadLimiter    *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Session(),
		middleware.Visitor(deps.Visitors),
		middleware.Auth(),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}

	if deps.UsersHandler != nil {
		authed := api.Group("", middleware.RequireUser())
		deps.UsersHandler.RegisterRoutes(authed)
	}

	if deps.WizardHandler != nil {
		upload := api.Group("", middleware.RequireUser(), middleware.RateLimit(uploadRateLimit(deps.UploadLimiter)))
		deps.WizardHandler.RegisterRoutes(api, upload)
	}

	if deps.WaitlistHandler != nil {
		deps.WaitlistHandler.RegisterRoutes(api)
	}

	if deps.DashboardHandler != nil {
		admin := api.Group("/admin", middleware.RequireStaff())
		admin.GET("/metrics", metrics.Handler())
		deps.DashboardHandler.RegisterRoutes(admin)
	}

	return r
}

// uploadRateLimit throttles resume uploads per user: a short burst, then one
// generation every 20 seconds.
func uploadRateLimit(limiter *middleware.RateLimiter) middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"UPLOAD": {Rate: 0.05, Burst: 3},
		},
		DefaultGroup: "UPLOAD",
		Limiter:      limiter,
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
