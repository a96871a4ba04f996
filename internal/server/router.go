package server

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/retirepath-backend/internal/handlers"
	"github.com/yungbote/retirepath-backend/internal/middleware"
	"github.com/yungbote/retirepath-backend/internal/utils"
)

type RouterConfig struct {
	AuthMiddleware     *middleware.AuthMiddleware
	HealthcheckHandler *handlers.HealthcheckHandler
	AuthHandler        *handlers.AuthHandler
	UserHandler        *handlers.UserHandler
	AssessmentHandler  *handlers.AssessmentHandler
	RoadmapHandler     *handlers.RoadmapHandler
	MediaDir           string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(otelgin.Middleware("retirepath-backend"))

	origins := strings.Split(utils.GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000", nil), ",")
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", cfg.HealthcheckHandler.Healthcheck)
	if cfg.MediaDir != "" {
		router.Static("/media", cfg.MediaDir)
	}
	api := router.Group("/api")
	{
		api.POST("/register", cfg.AuthHandler.Register)
		api.POST("/login", cfg.AuthHandler.Login)
		api.GET("/questions", cfg.AssessmentHandler.GetQuestions)
	}

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/api")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Auth
	protected.POST("/refresh", cfg.AuthHandler.Refresh)
	protected.POST("/logout", cfg.AuthHandler.Logout)
	// User
	protected.GET("/user", cfg.UserHandler.GetCurrentUser)
	protected.PATCH("/user/avatar", cfg.UserHandler.UpdateAvatar)
	// Assessment
	protected.POST("/assessment", cfg.AssessmentHandler.Submit)
	protected.GET("/assessment/latest", cfg.AssessmentHandler.GetLatest)
	// Roadmap
	protected.POST("/roadmap", cfg.RoadmapHandler.Generate)
	protected.POST("/roadmap/regenerate", cfg.RoadmapHandler.Regenerate)
	protected.GET("/roadmap/latest", cfg.RoadmapHandler.GetLatest)
	protected.GET("/roadmap/:id/checks", cfg.RoadmapHandler.GetChecks)
	protected.PUT("/roadmap/:id/checks", cfg.RoadmapHandler.SetCheck)

	return router
}
