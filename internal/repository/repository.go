package repository

import (
	"github.com/yukikurage/todo-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// ExistsByUsername reports whether the username is taken
	ExistsByUsername(username string) (bool, error)

	// ExistsByEmail reports whether the email is taken
	ExistsByEmail(email string) (bool, error)

	// Delete deletes a user together with the todos they own
	Delete(id uint64) error
}

// TodoRepository defines the interface for todo data access
type TodoRepository interface {
	// Create creates a new todo
	Create(todo *models.Todo) error

	// FindByID finds a todo by ID
	FindByID(id uint64) (*models.Todo, error)

	// ListByOwner lists the todos created by a user
	ListByOwner(ownerID uint64) ([]models.Todo, error)

	// Update overwrites name and flags, returning gorm.ErrRecordNotFound when the todo is gone
	Update(todo *models.Todo) error

	// Delete deletes a todo, returning gorm.ErrRecordNotFound when nothing was removed
	Delete(id uint64) error
}
