package services

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/todo-api/internal/config"
	"github.com/yukikurage/todo-api/internal/database"
	"github.com/yukikurage/todo-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// staleExistsRepo answers the availability checks as if a concurrent registration had not
// committed yet, so the insert itself hits the unique index.
type staleExistsRepo struct {
	repository.UserRepository
}

func (staleExistsRepo) ExistsByUsername(string) (bool, error) { return false, nil }
func (staleExistsRepo) ExistsByEmail(string) (bool, error)    { return false, nil }

func TestAuthService_RegisterDuplicateAtInsert(t *testing.T) {
	cfg := &config.Config{
		GinMode:        "release",
		DBDriver:       "sqlite",
		DBPath:         filepath.Join(t.TempDir(), "todos.db"),
		DBMaxOpenConns: 1,
		DBMaxIdleConns: 1,
	}
	db, err := database.Connect(cfg)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})
	require.NoError(t, database.Migrate(db))

	tokens := NewTokenService(testSecret, 0)
	auth := NewAuthService(staleExistsRepo{repository.NewUserRepository(db)}, tokens, bcrypt.MinCost)

	input := RegisterInput{
		Username:       "alice",
		Email:          "alice@example.com",
		Password:       "password1",
		VerifyPassword: "password1",
	}
	_, err = auth.Register(input)
	require.NoError(t, err)

	input.Email = "alice2@example.com"
	_, err = auth.Register(input)
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "got %v", err)
	assert.Contains(t, verr.Fields, "username")
	assert.False(t, errors.Is(err, ErrStoreUnavailable))
}
