package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/taskforce/taskforce-api/internal/auth"
	"github.com/taskforce/taskforce-api/internal/config"
	"github.com/taskforce/taskforce-api/internal/database"
	"github.com/taskforce/taskforce-api/internal/handlers"
	"github.com/taskforce/taskforce-api/internal/logger"
	"github.com/taskforce/taskforce-api/internal/middleware"
	"github.com/taskforce/taskforce-api/internal/models"
	"github.com/taskforce/taskforce-api/internal/repository"
	"github.com/taskforce/taskforce-api/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl := logger.New(cfg.GinMode, cfg.LogLevel)

	gin.SetMode(cfg.GinMode)

	if err := database.Connect(cfg); err != nil {
		zl.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.Migrate(); err != nil {
		zl.Fatal().Err(err).Msg("failed to run migrations")
	}

	userRepo := repository.NewUserRepository(database.GetDB())
	taskRepo := repository.NewTaskRepository(database.GetDB())

	tokens := auth.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.JWTExpiryHours)*time.Hour)

	authService := services.NewAuthService(userRepo, tokens)
	userService := services.NewUserService(userRepo)
	taskService := services.NewTaskService(taskRepo, userRepo)
	statsService := services.NewStatsService(taskRepo, userRepo)
	seedService := services.NewSeedService(userRepo, taskRepo)

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	taskHandler := handlers.NewTaskHandler(taskService)
	dashboardHandler := handlers.NewDashboardHandler(statsService)
	seedHandler := handlers.NewSeedHandler(seedService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(zl))

	corsCfg := cors.DefaultConfig()
	if len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORSOrigins
		corsCfg.AllowCredentials = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	requireAuth := middleware.RequireAuth(userRepo, tokens)
	adminOnly := middleware.RequireRoles(models.RoleAdmin)
	adminOrManager := middleware.RequireRoles(models.RoleAdmin, models.RoleManager)

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":  "ok",
				"message": "Taskforce API is running",
			})
		})

		api.POST("/seed", seedHandler.Seed)

		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.GET("/me", requireAuth, authHandler.Me)
		}

		users := api.Group("/users")
		users.Use(requireAuth)
		{
			users.GET("", adminOrManager, userHandler.ListUsers)
			users.GET("/:id", adminOnly, userHandler.GetUser)
			users.PUT("/:id", adminOnly, userHandler.UpdateUser)
			users.PUT("/:id/toggle-active", adminOnly, userHandler.ToggleActive)
			users.PUT("/:id/role", adminOnly, userHandler.SetRole)
			users.DELETE("/:id", adminOnly, userHandler.DeleteUser)
		}

		tasks := api.Group("/tasks")
		tasks.Use(requireAuth)
		{
			tasks.POST("", adminOrManager, taskHandler.CreateTask)
			tasks.GET("", taskHandler.ListTasks)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PUT("/:id", adminOrManager, taskHandler.UpdateTask)
			tasks.PUT("/:id/status", taskHandler.UpdateTaskStatus)
			tasks.DELETE("/:id", adminOrManager, taskHandler.DeleteTask)
		}

		dashboard := api.Group("/dashboard")
		dashboard.Use(requireAuth)
		{
			dashboard.GET("/stats", dashboardHandler.Stats)
			dashboard.GET("/performance", adminOrManager, dashboardHandler.Performance)
		}
	}

	zl.Info().Str("port", cfg.Port).Msg("server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		zl.Fatal().Err(err).Msg("server exited")
	}
}
