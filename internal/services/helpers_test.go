package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/todo-api/internal/models"
	"github.com/yukikurage/todo-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "test-secret"

type serviceTestEnv struct {
	db          *gorm.DB
	tokens      *TokenService
	authService *AuthService
	todoService *TodoService
}

func setupServiceTestEnv(t *testing.T) serviceTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every new connection to :memory: is a fresh database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Todo{}))

	return newServiceTestEnv(db)
}

func newServiceTestEnv(db *gorm.DB) serviceTestEnv {
	tokens := NewTokenService(testSecret, 600*time.Second)
	return serviceTestEnv{
		db:          db,
		tokens:      tokens,
		authService: NewAuthService(repository.NewUserRepository(db), tokens, bcrypt.MinCost),
		todoService: NewTodoService(repository.NewTodoRepository(db)),
	}
}

// setupFailingStoreEnv returns services on a mocked MySQL connection so store failures can
// be injected.
func setupFailingStoreEnv(t *testing.T) (serviceTestEnv, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return newServiceTestEnv(db), mock
}

func (env serviceTestEnv) register(t *testing.T, username string) *models.User {
	t.Helper()

	user, err := env.authService.Register(RegisterInput{
		Username:       username,
		Email:          username + "@example.com",
		Password:       "password1",
		VerifyPassword: "password1",
	})
	require.NoError(t, err)
	return user
}

func boolPtr(b bool) *bool {
	return &b
}
