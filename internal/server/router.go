package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/campusforge/campusforge-backend/internal/handlers"
	"github.com/campusforge/campusforge-backend/internal/middleware"
)

type RouterConfig struct {
	ServiceName         string
	AuthMiddleware      *middleware.AuthMiddleware
	AuthHandler         *handlers.AuthHandler
	StudentHandler      *handlers.StudentHandler
	TeacherHandler      *handlers.TeacherHandler
	ProjectHandler      *handlers.ProjectHandler
	MatchmakingHandler  *handlers.MatchmakingHandler
	NotificationHandler *handlers.NotificationHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(otelgin.Middleware(cfg.ServiceName))

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	api := router.Group("/api")
	{
		api.POST("/auth/signup", cfg.AuthHandler.Signup)
		api.POST("/auth/login", cfg.AuthHandler.Login)
		// Profiles are registered before credentials exist, so upserts
		// stay outside the auth wall.
		api.PUT("/students", cfg.StudentHandler.UpsertProfile)
		api.PUT("/teachers", cfg.TeacherHandler.UpsertProfile)
	}

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/api")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Profiles
	protected.GET("/students/:usn", cfg.StudentHandler.GetProfile)
	protected.PATCH("/students/:usn/visibility", cfg.StudentHandler.SetVisibility)
	protected.GET("/teachers/:facultyId", cfg.TeacherHandler.GetProfile)
	protected.PATCH("/teachers/:facultyId/visibility", cfg.TeacherHandler.SetVisibility)
	// Projects
	protected.POST("/projects", cfg.ProjectHandler.Create)
	protected.GET("/projects/mine", cfg.ProjectHandler.ListMine)
	protected.GET("/projects/openings", cfg.ProjectHandler.ListOpenings)
	protected.GET("/projects/:id", cfg.ProjectHandler.Get)
	protected.PUT("/projects/:id", cfg.ProjectHandler.Update)
	protected.DELETE("/projects/:id", cfg.ProjectHandler.Delete)
	protected.PATCH("/projects/:id/active", cfg.ProjectHandler.SetActive)
	// Matchmaking
	protected.GET("/match/students/:usn", cfg.MatchmakingHandler.MatchStudents)
	protected.GET("/match/teachers/:usn", cfg.MatchmakingHandler.MatchTeachersForStudent)
	protected.GET("/match/students/for-teacher/:facultyId", cfg.MatchmakingHandler.MatchStudentsForTeacher)
	protected.GET("/match/projects/:type/:id", cfg.MatchmakingHandler.MatchProjects)
	protected.GET("/match/history/:type/:id", cfg.MatchmakingHandler.ListMatches)
	// Notifications
	protected.POST("/notifications", cfg.NotificationHandler.Create)
	protected.GET("/notifications", cfg.NotificationHandler.ListMine)
	protected.PATCH("/notifications/:id/read", cfg.NotificationHandler.MarkRead)

	return router
}
