package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/todo-api/internal/models"
	"github.com/yukikurage/todo-api/internal/repository"
	"github.com/yukikurage/todo-api/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type middlewareTestEnv struct {
	db          *gorm.DB
	tokens      *services.TokenService
	authService *services.AuthService
	todoService *services.TodoService
}

func init() {
	gin.SetMode(gin.TestMode)
}

func setupMiddlewareTestEnv(t *testing.T) middlewareTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Todo{}))

	return newMiddlewareTestEnv(db)
}

func newMiddlewareTestEnv(db *gorm.DB) middlewareTestEnv {
	tokens := services.NewTokenService("test-secret", 10*time.Minute)
	return middlewareTestEnv{
		db:          db,
		tokens:      tokens,
		authService: services.NewAuthService(repository.NewUserRepository(db), tokens, bcrypt.MinCost),
		todoService: services.NewTodoService(repository.NewTodoRepository(db)),
	}
}

func (env middlewareTestEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()

	user, err := env.authService.Register(services.RegisterInput{
		Username:       username,
		Email:          username + "@example.com",
		Password:       "password1",
		VerifyPassword: "password1",
	})
	require.NoError(t, err)
	return user
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
