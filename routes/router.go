package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/xxml-lang/xxmlhub/config"
	"github.com/xxml-lang/xxmlhub/controllers"
	"github.com/xxml-lang/xxmlhub/middleware"
	"github.com/xxml-lang/xxmlhub/services"
	"github.com/xxml-lang/xxmlhub/utils"
)

// SetupRouter wires routes, middlewares and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		r.Use(gin.Recovery())
	}
	r.Use(middleware.RequestID())
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	// Record page views after each request
	r.Use(middleware.TrafficRecorder(db))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	invalidator := utils.RedisInvalidator{}
	postService := services.NewPostService(db, invalidator)
	commentService := services.NewCommentService(db, invalidator)
	docsService := services.NewDocsService(db, invalidator)
	downloadService := services.NewDownloadService(db)
	securityService := services.NewSecurityService(db)

	authController := controllers.NewAuthController(db)
	forumController := controllers.NewForumController(db, postService, commentService)
	blogController := controllers.NewBlogController(db, postService)
	docsController := controllers.NewDocsController(docsService)
	downloadsController := controllers.NewDownloadsController(downloadService)
	adminController := controllers.NewAdminController(db)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware(securityService))
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)
	authGroup.GET("/me", middleware.AuthRequired(), authController.Me)

	// Public reads
	api.GET("/categories", forumController.ListCategories)
	api.GET("/forum/posts", forumController.ListPosts)
	api.GET("/forum/posts/:id", forumController.GetPost)
	api.GET("/blog/posts", blogController.ListPosts)
	api.GET("/blog/posts/:slug", blogController.GetPost)
	api.GET("/docs/modules", docsController.ListModules)
	api.GET("/docs/modules/:slug", docsController.GetModule)
	api.GET("/docs/modules/:slug/classes/:classSlug", docsController.GetClass)
	api.GET("/downloads", downloadsController.List)
	api.GET("/downloads/:token", downloadsController.Get)
	api.GET("/users/:id", authController.GetUserPublic)
	api.GET("/stats", adminController.GetStats)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(), middleware.RateLimitMiddleware(securityService))

	protected.POST("/forum/posts", forumController.CreatePost)
	protected.PUT("/forum/posts/:id", forumController.UpdatePost)
	protected.DELETE("/forum/posts/:id", forumController.DeletePost)
	protected.POST("/forum/posts/:id/pin", forumController.PinPost)
	protected.POST("/forum/posts/:id/comments", forumController.CreateComment)
	protected.PUT("/comments/:commentId", forumController.UpdateComment)
	protected.DELETE("/comments/:commentId", forumController.DeleteComment)
	protected.GET("/comments/:commentId/revisions", forumController.ListCommentRevisions)

	protected.PUT("/blog/posts/:id", blogController.UpdatePost)
	protected.DELETE("/blog/posts/:id", blogController.DeletePost)

	protected.PUT("/docs/modules/:slug", docsController.UpdateModule)
	protected.PUT("/docs/modules/:slug/classes/:classSlug", docsController.ReplaceClass)
	protected.DELETE("/docs/modules/:slug/classes/:classSlug", docsController.DeleteClass)

	admin := protected.Group("/admin")
	admin.GET("/users", adminController.ListUsers)
	admin.PUT("/users/:id/role", adminController.SetUserRole)
	admin.GET("/security", adminController.GetSecurityDashboard)
	admin.POST("/downloads", downloadsController.Publish)
	admin.DELETE("/downloads/:id", downloadsController.Unpublish)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r
}
