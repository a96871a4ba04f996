package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/yungbote/retirepath-backend/internal/clients/openai"
	redisclient "github.com/yungbote/retirepath-backend/internal/clients/redis"
	"github.com/yungbote/retirepath-backend/internal/db"
	"github.com/yungbote/retirepath-backend/internal/handlers"
	"github.com/yungbote/retirepath-backend/internal/logger"
	"github.com/yungbote/retirepath-backend/internal/middleware"
	"github.com/yungbote/retirepath-backend/internal/observability"
	"github.com/yungbote/retirepath-backend/internal/questions"
	"github.com/yungbote/retirepath-backend/internal/repos"
	"github.com/yungbote/retirepath-backend/internal/server"
	"github.com/yungbote/retirepath-backend/internal/services"
	"github.com/yungbote/retirepath-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Tracing
	shutdownOTel := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "retirepath-backend",
		Environment: utils.GetEnv("APP_ENV", "development", log),
		Version:     utils.GetEnv("APP_VERSION", "dev", log),
	})
	if shutdownOTel != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownOTel(ctx); err != nil {
				log.Warn("otel shutdown failed", "error", err)
			}
		}()
	}

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	mediaDir := utils.GetEnv("MEDIA_DIR", "./media", log)
	mediaPublicBase := utils.GetEnv("MEDIA_PUBLIC_BASE", "/media", log)
	port := utils.GetEnv("PORT", "8080", log)

	// Database
	dbService, err := db.NewService(log)
	if err != nil {
		log.Fatal("Database init failed", "error", err)
	}
	if err = dbService.AutoMigrateAll(); err != nil {
		log.Fatal("Database auto migration failed", "error", err)
	}
	theDB := dbService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(theDB, log)
	userTokenRepo := repos.NewUserTokenRepo(theDB, log)
	assessmentRepo := repos.NewAssessmentRepo(theDB, log)
	roadmapRepo := repos.NewRoadmapRepo(theDB, log)
	entitlementRepo := repos.NewEntitlementRepo(theDB, log)
	taskCheckRepo := repos.NewTaskCheckRepo(theDB, log)

	// Question catalog
	catalog, err := questions.Load(os.Getenv("QUESTIONS_PATH"))
	if err != nil {
		log.Fatal("Could not load question catalog", "error", err)
	}

	// Clients
	var generator services.RoadmapGenerator
	openaiClient, err := openai.NewClient(log)
	if err != nil {
		log.Warn("OpenAI client unavailable, using rule-based generation", "error", err)
		generator = services.NewHeuristicGenerator(log)
	} else {
		generator = services.NewOpenAIGenerator(log, openaiClient)
	}

	var genLock redisclient.GenerationLock
	if lock, err := redisclient.NewGenerationLock(log); err != nil {
		log.Warn("Redis lock unavailable, using in-process lock only", "error", err)
	} else {
		genLock = lock
		defer genLock.Close()
	}

	// Services
	log.Info("Setting up Services from main...")
	avatarService, err := services.NewAvatarService(log, mediaDir, mediaPublicBase)
	if err != nil {
		log.Warn("Could not init AvatarService, continuing without avatars", "error", err)
		avatarService = nil
	}
	authService := services.NewAuthService(theDB, log, userRepo, avatarService, userTokenRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
	userService := services.NewUserService(theDB, log, userRepo, avatarService)
	assessmentService := services.NewAssessmentService(theDB, log, catalog, assessmentRepo)
	entitlementService := services.NewEntitlementService(log, entitlementRepo)
	roadmapService := services.NewRoadmapService(theDB, log, generator, entitlementService, assessmentRepo, roadmapRepo, taskCheckRepo, genLock)
	progressService := services.NewProgressService(log, roadmapRepo, taskCheckRepo)

	// Handlers
	log.Info("Setting up Handlers from main...")
	healthcheckHandler := handlers.NewHealthcheckHandler()
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	assessmentHandler := handlers.NewAssessmentHandler(assessmentService)
	roadmapHandler := handlers.NewRoadmapHandler(roadmapService, progressService)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	router := server.NewRouter(server.RouterConfig{
		AuthMiddleware:     authMiddleware,
		HealthcheckHandler: healthcheckHandler,
		AuthHandler:        authHandler,
		UserHandler:        userHandler,
		AssessmentHandler:  assessmentHandler,
		RoadmapHandler:     roadmapHandler,
		MediaDir:           mediaDir,
	})

	log.Info("Starting server", "port", port, "db_driver", dbService.Driver())
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
