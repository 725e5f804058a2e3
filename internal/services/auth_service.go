package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/yukikurage/todo-api/internal/constants"
	"github.com/yukikurage/todo-api/internal/models"
	"github.com/yukikurage/todo-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService handles credential storage and identity resolution.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *TokenService
	validate *validator.Validate
	hashCost int
	// dummyHash is compared against when the user does not exist, so unknown names cost
	// as much as wrong passwords.
	dummyHash string
	compare   func(candidate, storedHash string) bool
}

// NewAuthService creates a new AuthService. hashCost is the bcrypt cost; out-of-range values
// fall back to bcrypt.DefaultCost.
func NewAuthService(userRepo repository.UserRepository, tokens *TokenService, hashCost int) *AuthService {
	if hashCost < bcrypt.MinCost || hashCost > bcrypt.MaxCost {
		hashCost = bcrypt.DefaultCost
	}
	dummyHash, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), hashCost)
	if err != nil {
		panic(fmt.Sprintf("generate dummy password hash: %v", err))
	}
	return &AuthService{
		userRepo:  userRepo,
		tokens:    tokens,
		validate:  validator.New(),
		hashCost:  hashCost,
		dummyHash: string(dummyHash),
		compare:   VerifyPassword,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Username       string
	Email          string
	Password       string
	VerifyPassword string
}

// Register validates the input and stores a new user with a bcrypt hash of the password.
// Rejected input is reported as a *ValidationError.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)

	verr := NewValidationError()
	if username == "" {
		verr.Add("username", "This field is required.")
	}
	if email == "" {
		verr.Add("email", "This field is required.")
	} else if err := s.validate.Var(email, "email"); err != nil {
		verr.Add("email", "Invalid email address.")
	}
	if len(input.Password) < constants.MinPasswordLength {
		verr.Add("password", fmt.Sprintf("Field must be at least %d characters long.", constants.MinPasswordLength))
	}
	if input.Password != input.VerifyPassword {
		verr.Add("password", "Both passwords must match")
	}

	if username != "" {
		taken, err := s.userRepo.ExistsByUsername(username)
		if err != nil {
			return nil, storeError("check username", err)
		}
		if taken {
			verr.Add("username", "User with that username already exists.")
		}
	}
	if email != "" {
		taken, err := s.userRepo.ExistsByEmail(email)
		if err != nil {
			return nil, storeError("check email", err)
		}
		if taken {
			verr.Add("email", "User with that email already exists.")
		}
	}

	if verr.HasErrors() {
		return nil, verr
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.hashCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	if err := s.userRepo.Create(user); err != nil {
		// Lost a race with a concurrent registration of the same name.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			verr.Add("username", "User with that username or email already exists.")
			return nil, verr
		}
		return nil, storeError("create user", err)
	}

	return user, nil
}

// VerifyPassword reports whether candidate matches the stored bcrypt hash. The comparison
// runs in constant time.
func VerifyPassword(candidate, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(candidate)) == nil
}

// Authenticate resolves a username/password pair to a user.
func (s *AuthService) Authenticate(username, password string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	return s.checkPassword(user, err, password)
}

// Login resolves an email/password pair to a user. The web login form uses this.
func (s *AuthService) Login(email, password string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(strings.TrimSpace(email))
	return s.checkPassword(user, err, password)
}

func (s *AuthService) checkPassword(user *models.User, err error, password string) (*models.User, error) {
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.compare(password, s.dummyHash)
			return nil, ErrInvalidCredentials
		}
		return nil, storeError("find user", err)
	}

	if !s.compare(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// AuthenticateToken resolves a bearer token to a user. The user is re-read so that tokens
// of deleted accounts stop working.
func (s *AuthService) AuthenticateToken(token string) (*models.User, error) {
	userID, ok := s.tokens.Verify(token)
	if !ok {
		return nil, ErrInvalidCredentials
	}

	user, err := s.GetUser(userID)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	return user, err
}

// GenerateAuthToken issues an API token for an authenticated user.
func (s *AuthService) GenerateAuthToken(user *models.User) (string, error) {
	return s.tokens.Issue(user.ID)
}

// TokenTTL returns the lifetime of issued API tokens.
func (s *AuthService) TokenTTL() time.Duration {
	return s.tokens.TTL()
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, storeError("find user", err)
	}

	return user, nil
}

// DeleteUser removes a user and every todo they own.
func (s *AuthService) DeleteUser(id uint64) error {
	if err := s.userRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return storeError("delete user", err)
	}
	return nil
}
