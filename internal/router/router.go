package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mohamedkhaled004/school-academy-backend/internal/config"
	"github.com/mohamedkhaled004/school-academy-backend/internal/handler"
	"github.com/mohamedkhaled004/school-academy-backend/internal/middleware"
	"github.com/mohamedkhaled004/school-academy-backend/internal/response"
	"github.com/mohamedkhaled004/school-academy-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth       *handler.AuthHandler
	Enrollment *handler.EnrollmentHandler
	Class      *handler.ClassHandler
	Teacher    *handler.TeacherHandler
	AccessCode *handler.AccessCodeHandler
	User       *handler.UserHandler
	Media      *handler.MediaHandler
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

	// Apply request ID middleware globally so every response carries one.
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

	// ─── 0. Public Group (No Auth) ─────────────────────────────────────
	publicAPI := router.Group("/api/v1/public")
	{
		publicAPI.GET("/classes", handlers.Class.Catalog)
		publicAPI.GET("/classes/:id", handlers.Class.GetClass)
		publicAPI.GET("/teachers", handlers.Teacher.ListTeachers)
		publicAPI.GET("/teachers/:id", handlers.Teacher.GetTeacher)
	}

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)

		// Authenticated profile routes
		auth.GET("/me", middleware.RequireUserJWT(authService), handlers.Auth.Me)
		auth.POST("/logout", middleware.RequireUserJWT(authService), handlers.Auth.Logout)
	}

	// ─── 2. Student Group (JWT + Active Session) ───────────────────────
	studentAPI := router.Group("/api/v1/student")
	studentAPI.Use(
		middleware.RequireUserJWT(authService),
		middleware.CheckActiveSession(authService),
	)
	{
		studentAPI.POST("/redeem-code", handlers.Enrollment.RedeemCode)
		studentAPI.POST("/enroll-free", handlers.Enrollment.EnrollFree)
		studentAPI.GET("/my-classes", handlers.Enrollment.MyClasses)
	}

	// ─── 3. Admin Group (JWT + Admin Role) ─────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireAdminJWT(authService))
	{
		// Media upload
		adminAPI.POST("/media/upload", handlers.Media.UploadMedia)

		// Class management
		adminAPI.GET("/classes", handlers.Class.ListClasses)
		adminAPI.POST("/classes", handlers.Class.CreateClass)
		adminAPI.PUT("/classes/:id", handlers.Class.UpdateClass)
		adminAPI.DELETE("/classes/:id", handlers.Class.DeleteClass)

		// Access codes
		adminAPI.POST("/access-codes", handlers.AccessCode.GenerateCodes)
		adminAPI.DELETE("/access-codes/:id", handlers.AccessCode.DeleteCode)
		adminAPI.GET("/classes/:id/access-codes", handlers.AccessCode.ListCodes)
		adminAPI.GET("/classes/:id/access-codes/stats", handlers.AccessCode.CodeStats)

		// Enrollments
		adminAPI.GET("/classes/:id/enrollments", handlers.Enrollment.ClassRoster)
		adminAPI.DELETE("/enrollments/:id", handlers.Enrollment.DeleteEnrollment)

		// Teacher management
		adminAPI.POST("/teachers", handlers.Teacher.CreateTeacher)
		adminAPI.PUT("/teachers/:id", handlers.Teacher.UpdateTeacher)
		adminAPI.DELETE("/teachers/:id", handlers.Teacher.DeleteTeacher)

		// User management
		adminAPI.GET("/users", handlers.User.ListUsers)
		adminAPI.DELETE("/users/:id", handlers.User.DeleteUser)
		adminAPI.POST("/users/:id/reset-session", handlers.User.ResetUserSession)
	}

	return router
}
