package dto

import (
	"time"

	"github.com/yukikurage/todo-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenDTO is the body of the token endpoint
type TokenDTO struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

// ToUserDTO converts a User model to UserDTO. The email is only included for the user's
// own record.
func ToUserDTO(user models.User, includeEmail bool) UserDTO {
	dto := UserDTO{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	}
	if includeEmail {
		dto.Email = user.Email
	}
	return dto
}
