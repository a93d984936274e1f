package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gharsapp/ghars-backend/internal/config"
	"github.com/gharsapp/ghars-backend/internal/handler"
	"github.com/gharsapp/ghars-backend/internal/middleware"
	"github.com/gharsapp/ghars-backend/internal/model"
	"github.com/gharsapp/ghars-backend/internal/response"
	"github.com/gharsapp/ghars-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth        *handler.AuthHandler
	Admin       *handler.AdminHandler
	Class       *handler.ClassHandler
	Student     *handler.StudentHandler
	Week        *handler.WeekHandler
	Leaderboard *handler.LeaderboardHandler
	Analytics   *handler.AnalyticsHandler
	WS          *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Serve uploaded media files statically with aggressive caching (1 year).
	uploadsGroup := router.Group("/uploads")
	uploadsGroup.Use(middleware.CacheControl(31536000))
	{
		uploadsGroup.Static("/", cfg.UploadDir)
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Prometheus scrape endpoint.
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ─── 0. Public Group (No Auth) ─────────────────────────────────────
	publicAPI := router.Group("/api/v1/public")
	{
		publicAPI.GET("/leaderboard", handlers.Leaderboard.GetLeaderboard)
		publicAPI.GET("/classes", handlers.Class.ListClasses)
		publicAPI.GET("/weeks", handlers.Week.ListPublicWeeks)
		publicAPI.GET("/weeks/:id", handlers.Week.GetWeek)
	}

	// Rate limiter for login (30 requests per minute per IP).
	loginLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group ─────────────────────────────────────────────────
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/login", loginLimiter.Middleware(), handlers.Auth.Login)

		// Authenticated profile routes
		auth.GET("/me", middleware.RequireAuth(authService), handlers.Auth.Me)
		auth.POST("/me/avatar", middleware.RequireAuth(authService), handlers.Auth.UploadAvatar)
	}

	// ─── 2. WebSocket Group ────────────────────────────────────────────
	ws := router.Group("/ws/v1")
	{
		ws.GET("/leaderboard", handlers.WS.LeaderboardStream)
	}

	// ─── 3. Admin Group (JWT + RBAC) ───────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireAdmin(authService))
	{
		// Admin account management
		adminAPI.GET("/admins",
			middleware.RequirePermissions(model.PermissionManageAdmins),
			handlers.Admin.ListAdmins,
		)
		adminAPI.POST("/admins",
			middleware.RequirePermissions(model.PermissionManageAdmins),
			handlers.Admin.CreateAdmin,
		)
		adminAPI.PUT("/admins/:id",
			middleware.RequirePermissions(model.PermissionManageAdmins),
			handlers.Admin.UpdateAdmin,
		)
		adminAPI.DELETE("/admins/:id",
			middleware.RequirePermissions(model.PermissionManageAdmins),
			handlers.Admin.DeleteAdmin,
		)

		// Class management
		adminAPI.GET("/classes",
			middleware.RequirePermissions(model.PermissionManageClasses),
			handlers.Class.ListClasses,
		)
		adminAPI.POST("/classes",
			middleware.RequirePermissions(model.PermissionManageClasses),
			handlers.Class.CreateClass,
		)
		adminAPI.PUT("/classes/:id",
			middleware.RequirePermissions(model.PermissionManageClasses),
			handlers.Class.UpdateClass,
		)
		adminAPI.DELETE("/classes/:id",
			middleware.RequirePermissions(model.PermissionManageClasses),
			handlers.Class.DeleteClass,
		)

		// Student management
		adminAPI.GET("/students",
			middleware.RequirePermissions(model.PermissionManageStudents),
			handlers.Student.ListStudents,
		)
		adminAPI.POST("/students",
			middleware.RequirePermissions(model.PermissionManageStudents),
			handlers.Student.CreateStudent,
		)
		adminAPI.PUT("/students/:id",
			middleware.RequirePermissions(model.PermissionManageStudents),
			handlers.Student.UpdateStudent,
		)
		adminAPI.DELETE("/students/:id",
			middleware.RequirePermissions(model.PermissionManageStudents),
			handlers.Student.DeleteStudent,
		)
		adminAPI.POST("/students/:id/avatar",
			middleware.RequirePermissions(model.PermissionManageStudents),
			handlers.Student.UploadStudentAvatar,
		)

		// Point awards
		adminAPI.POST("/students/:id/add-points",
			middleware.RequirePermissions(model.PermissionManagePoints),
			handlers.Student.AddPoints,
		)

		// Week management
		adminAPI.GET("/weeks",
			middleware.RequirePermissions(model.PermissionManageWeeks),
			handlers.Week.ListAllWeeks,
		)
		adminAPI.POST("/weeks",
			middleware.RequirePermissions(model.PermissionManageWeeks),
			handlers.Week.CreateWeek,
		)
		adminAPI.PUT("/weeks/:id",
			middleware.RequirePermissions(model.PermissionManageWeeks),
			handlers.Week.UpdateWeek,
		)
		adminAPI.DELETE("/weeks/:id",
			middleware.RequirePermissions(model.PermissionManageWeeks),
			handlers.Week.DeleteWeek,
		)
		adminAPI.POST("/weeks/:id/video",
			middleware.RequirePermissions(model.PermissionManageWeeks),
			handlers.Week.UploadWeekVideo,
		)
		adminAPI.POST("/weeks/:id/cards",
			middleware.RequirePermissions(model.PermissionManageWeeks),
			handlers.Week.AddCard,
		)
		adminAPI.PUT("/weeks/:id/cards/:card_id",
			middleware.RequirePermissions(model.PermissionManageWeeks),
			handlers.Week.UpdateCard,
		)
		adminAPI.DELETE("/weeks/:id/cards/:card_id",
			middleware.RequirePermissions(model.PermissionManageWeeks),
			handlers.Week.DeleteCard,
		)

		// Analytics
		adminAPI.GET("/analytics/report",
			middleware.RequirePermissions(model.PermissionViewAnalytics),
			handlers.Analytics.GetReport,
		)
	}

	return router
}
