package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/taskforce/taskforce-api/internal/auth"
	"github.com/taskforce/taskforce-api/internal/database"
	"github.com/taskforce/taskforce-api/internal/middleware"
	"github.com/taskforce/taskforce-api/internal/models"
	"github.com/taskforce/taskforce-api/internal/repository"
	"github.com/taskforce/taskforce-api/internal/services"
)

// testPassword is the plaintext password of every fixture user.
const testPassword = "password123"

type testEnv struct {
	db       *gorm.DB
	router   *gin.Engine
	tokens   *auth.TokenManager
	userRepo repository.UserRepository
	taskRepo repository.TaskRepository
}

// setupTestEnv builds an in-memory database and a router wired exactly
// like the production server.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:  gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Task{}))
	database.SetDB(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	env := &testEnv{
		db:       db,
		tokens:   tokens,
		userRepo: userRepo,
		taskRepo: taskRepo,
	}
	env.router = buildRouter(userRepo, taskRepo, tokens)
	return env
}

func buildRouter(userRepo repository.UserRepository, taskRepo repository.TaskRepository, tokens *auth.TokenManager) *gin.Engine {
	authHandler := NewAuthHandler(services.NewAuthService(userRepo, tokens))
	userHandler := NewUserHandler(services.NewUserService(userRepo))
	taskHandler := NewTaskHandler(services.NewTaskService(taskRepo, userRepo))
	dashboardHandler := NewDashboardHandler(services.NewStatsService(taskRepo, userRepo))
	seedHandler := NewSeedHandler(services.NewSeedService(userRepo, taskRepo))

	requireAuth := middleware.RequireAuth(userRepo, tokens)
	adminOnly := middleware.RequireRoles(models.RoleAdmin)
	adminOrManager := middleware.RequireRoles(models.RoleAdmin, models.RoleManager)

	r := gin.New()
	api := r.Group("/api")

	api.POST("/seed", seedHandler.Seed)

	authRoutes := api.Group("/auth")
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.GET("/me", requireAuth, authHandler.Me)

	users := api.Group("/users")
	users.Use(requireAuth)
	users.GET("", adminOrManager, userHandler.ListUsers)
	users.GET("/:id", adminOnly, userHandler.GetUser)
	users.PUT("/:id", adminOnly, userHandler.UpdateUser)
	users.PUT("/:id/toggle-active", adminOnly, userHandler.ToggleActive)
	users.PUT("/:id/role", adminOnly, userHandler.SetRole)
	users.DELETE("/:id", adminOnly, userHandler.DeleteUser)

	tasks := api.Group("/tasks")
	tasks.Use(requireAuth)
	tasks.POST("", adminOrManager, taskHandler.CreateTask)
	tasks.GET("", taskHandler.ListTasks)
	tasks.GET("/:id", taskHandler.GetTask)
	tasks.PUT("/:id", adminOrManager, taskHandler.UpdateTask)
	tasks.PUT("/:id/status", taskHandler.UpdateTaskStatus)
	tasks.DELETE("/:id", adminOrManager, taskHandler.DeleteTask)

	dashboard := api.Group("/dashboard")
	dashboard.Use(requireAuth)
	dashboard.GET("/stats", dashboardHandler.Stats)
	dashboard.GET("/performance", adminOrManager, dashboardHandler.Performance)

	return r
}

func (e *testEnv) createUser(t *testing.T, email string, role models.Role, active bool) *models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Email:        email,
		PasswordHash: string(hashed),
		Name:         "Test " + email,
		Role:         role,
		IsActive:     active,
	}
	require.NoError(t, e.userRepo.Create(user))
	return user
}

func (e *testEnv) createTask(t *testing.T, title string, creator *models.User, assignee *models.User) *models.Task {
	t.Helper()

	task := &models.Task{
		Title:         title,
		Description:   "test description",
		Status:        models.TaskStatusPending,
		Priority:      models.TaskPriorityMedium,
		CreatedBy:     creator.ID,
		CreatedByName: creator.Name,
	}
	if assignee != nil {
		task.AssignedTo = &assignee.ID
	}
	require.NoError(t, e.taskRepo.Create(task))
	return task
}

func (e *testEnv) token(t *testing.T, user *models.User) string {
	t.Helper()

	token, err := e.tokens.Generate(user.ID, string(user.Role))
	require.NoError(t, err)
	return token
}

// request performs an HTTP call against the test router. A non-empty
// token is sent as a bearer Authorization header.
func (e *testEnv) request(t *testing.T, method, path string, payload any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}
