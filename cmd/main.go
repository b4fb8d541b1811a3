package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/campusforge/campusforge-backend/internal/db"
	"github.com/campusforge/campusforge-backend/internal/handlers"
	"github.com/campusforge/campusforge-backend/internal/middleware"
	"github.com/campusforge/campusforge-backend/internal/observability"
	"github.com/campusforge/campusforge-backend/internal/pkg/logger"
	"github.com/campusforge/campusforge-backend/internal/repos"
	"github.com/campusforge/campusforge-backend/internal/server"
	"github.com/campusforge/campusforge-backend/internal/services"
	"github.com/campusforge/campusforge-backend/internal/utils"
)

const serviceName = "campusforge-backend"

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

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	embeddingCacheTTL := utils.GetEnvAsInt("EMBEDDING_CACHE_TTL", 86400, log)

	// Tracing
	ctx := context.Background()
	otelCfg := observability.OtelConfigFromEnv()
	otelCfg.ServiceName = serviceName
	otelCfg.Environment = utils.GetEnv("APP_ENV", "development", log)
	otelCfg.Version = utils.GetEnv("APP_VERSION", "dev", log)
	if shutdown := observability.InitOTel(ctx, log, otelCfg); shutdown != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdown(shutdownCtx)
		}()
	}

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Redis (embedding cache, optional)
	var redisClient *redis.Client
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn("Redis unreachable, embedding cache disabled", "error", err)
			redisClient = nil
		}
	}

	// Repos
	log.Info("Setting up Repos from main...")
	studentRepo := repos.NewStudentRepo(thePG, log)
	teacherRepo := repos.NewTeacherRepo(thePG, log)
	projectRepo := repos.NewProjectRepo(thePG, log)
	matchRepo := repos.NewMatchRepo(thePG, log)
	notificationRepo := repos.NewNotificationRepo(thePG, log)

	// Services
	log.Info("Setting up Services from main...")
	bucketService, err := services.NewBucketService(log)
	if err != nil {
		log.Warn("Could not init BucketService, avatars disabled", "error", err)
	}
	var avatarService services.AvatarService
	if bucketService != nil {
		avatarService, err = services.NewAvatarService(thePG, log, studentRepo, teacherRepo, bucketService)
		if err != nil {
			log.Warn("Could not init AvatarService, avatars disabled", "error", err)
			avatarService = nil
		}
	}
	embeddingClient, err := services.NewEmbeddingClient(services.EmbeddingConfigFromEnv(log), log)
	if err != nil {
		log.Error("Could not init EmbeddingClient", "error", err)
		os.Exit(1)
	}
	similarityService := services.NewSimilarityService(log, embeddingClient, redisClient, time.Duration(embeddingCacheTTL)*time.Second)
	authService := services.NewAuthService(thePG, log, studentRepo, teacherRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second)
	studentService := services.NewStudentService(thePG, log, studentRepo, avatarService)
	teacherService := services.NewTeacherService(thePG, log, teacherRepo, avatarService)
	projectService := services.NewProjectService(thePG, log, projectRepo)
	matchmakingService := services.NewMatchmakingService(thePG, log, studentRepo, teacherRepo, projectRepo, matchRepo, similarityService)
	notificationService := services.NewNotificationService(thePG, log, notificationRepo)

	// Handlers
	log.Info("Setting up handlers from main...")
	authHandler := handlers.NewAuthHandler(authService)
	studentHandler := handlers.NewStudentHandler(studentService)
	teacherHandler := handlers.NewTeacherHandler(teacherService)
	projectHandler := handlers.NewProjectHandler(projectService)
	matchmakingHandler := handlers.NewMatchmakingHandler(matchmakingService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// Middleware
	log.Info("Setting up middleware from main...")
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		ServiceName:         serviceName,
		AuthMiddleware:      authMiddleware,
		AuthHandler:         authHandler,
		StudentHandler:      studentHandler,
		TeacherHandler:      teacherHandler,
		ProjectHandler:      projectHandler,
		MatchmakingHandler:  matchmakingHandler,
		NotificationHandler: notificationHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Warn("Server failed", "error", err)
	}
}
