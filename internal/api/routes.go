package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"jobvault/internal/api/middleware"
	"jobvault/internal/auth"
	"jobvault/internal/config"
	"jobvault/internal/pdf"
	"jobvault/internal/storage"
)

// RegisterRoutes wires every handler under /api.
func RegisterRoutes(
	router *gin.Engine,
	cfg *config.Config,
	db *gorm.DB,
	asynqClient *asynq.Client,
	authService *auth.AuthService,
	redisClient *redis.Client,
	logger *slog.Logger,
	storageClient *storage.Client,
	rasterizer pdf.Rasterizer,
) {
	debug := cfg.API.DebugErrors

	jobHandler := NewJobHandler(db, debug)
	historyHandler := NewHistoryHandler(db, debug)
	projectHandler := NewProjectHandler(db, debug)
	resumeHandler := NewResumeHandler(db, debug)
	exportHandler := NewExportHandler(db, asynqClient, storageClient, rasterizer, logger, debug)
	authHandler := NewAuthHandler(db, authService, redisClient, logger, cfg.Auth.LoginRateLimitPerHour, cfg.Auth.CookieDomain)
	assetHandler := NewAssetHandler(storageClient, logger, cfg.Clamd.Addr)
	wsHandler := NewWsHandler(redisClient, authService, logger, nil)
	authMiddleware := middleware.AuthMiddleware(authService)

	api := router.Group("/api")
	{
		api.GET("/ws", wsHandler.HandleConnection)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.POST("/logout", authMiddleware, authHandler.Logout)
			authGroup.POST("/change-password", authMiddleware, authHandler.ChangePassword)
		}

		jobs := api.Group("/jobs")
		jobs.Use(authMiddleware)
		{
			jobs.GET("", jobHandler.List)
			jobs.POST("", jobHandler.Create)
			jobs.GET("/pipeline", jobHandler.Pipeline)
			jobs.GET("/:id", jobHandler.Get)
			jobs.PUT("/:id", jobHandler.Update)
			jobs.DELETE("/:id", jobHandler.Delete)
		}

		experiences := api.Group("/experiences")
		experiences.Use(authMiddleware)
		{
			experiences.GET("", historyHandler.ListExperiences)
			experiences.POST("", historyHandler.CreateExperience)
			experiences.PUT("/:id", historyHandler.UpdateExperience)
			experiences.DELETE("/:id", historyHandler.DeleteExperience)
		}

		education := api.Group("/education")
		education.Use(authMiddleware)
		{
			education.GET("", historyHandler.ListEducation)
			education.POST("", historyHandler.CreateEducation)
			education.PUT("/:id", historyHandler.UpdateEducation)
			education.DELETE("/:id", historyHandler.DeleteEducation)
		}

		skills := api.Group("/skills")
		skills.Use(authMiddleware)
		{
			skills.GET("", historyHandler.ListSkills)
			skills.POST("", historyHandler.CreateSkill)
			skills.PUT("/:id", historyHandler.UpdateSkill)
			skills.DELETE("/:id", historyHandler.DeleteSkill)
		}

		certifications := api.Group("/certifications")
		certifications.Use(authMiddleware)
		{
			certifications.GET("", historyHandler.ListCertifications)
			certifications.POST("", historyHandler.CreateCertification)
			certifications.PUT("/:id", historyHandler.UpdateCertification)
			certifications.DELETE("/:id", historyHandler.DeleteCertification)
		}

		achievements := api.Group("/achievements")
		achievements.Use(authMiddleware)
		{
			achievements.GET("", historyHandler.ListAchievements)
			achievements.POST("", historyHandler.CreateAchievement)
			achievements.PUT("/:id", historyHandler.UpdateAchievement)
			achievements.DELETE("/:id", historyHandler.DeleteAchievement)
		}

		projects := api.Group("/projects")
		projects.Use(authMiddleware)
		{
			projects.GET("", projectHandler.List)
			projects.POST("", projectHandler.Create)
			projects.PUT("/:id", projectHandler.Update)
			projects.DELETE("/:id", projectHandler.Delete)
		}

		resumes := api.Group("/resumes")
		resumes.Use(authMiddleware)
		{
			resumes.GET("", resumeHandler.List)
			resumes.POST("", resumeHandler.Create)
			resumes.GET("/:id", resumeHandler.Get)
			resumes.PUT("/:id", resumeHandler.Update)
			resumes.DELETE("/:id", resumeHandler.Delete)
			resumes.GET("/:id/preview", resumeHandler.Preview)
			resumes.POST("/:id/sections", resumeHandler.CreateSection)
			resumes.POST("/:id/sections/reorder", resumeHandler.ReorderSections)
		}

		sections := api.Group("/sections")
		sections.Use(authMiddleware)
		{
			sections.PUT("/:id", resumeHandler.UpdateSection)
			sections.DELETE("/:id", resumeHandler.DeleteSection)
		}

		resumeOps := api.Group("/resume")
		resumeOps.Use(authMiddleware)
		{
			resumeOps.POST("/seed", resumeHandler.Seed)
			resumeOps.POST("/export", exportHandler.Create)
			resumeOps.GET("/export/:id", exportHandler.Download)
			resumeOps.POST("/export/:id/async", exportHandler.EnqueueAsync)
			resumeOps.GET("/export/:id/download-link", exportHandler.DownloadLink)
		}

		assets := api.Group("/assets")
		assets.Use(authMiddleware)
		{
			assets.POST("/upload", assetHandler.UploadAsset)
			assets.GET("", assetHandler.ListAssets)
			assets.GET("/view", assetHandler.GetAssetURL)
		}
	}
}
