package repository

import (
	"github.com/yukikurage/todo-api/internal/database"
	"github.com/yukikurage/todo-api/internal/models"
	"gorm.io/gorm"
)

// GormTodoRepository is a GORM implementation of TodoRepository
type GormTodoRepository struct {
	db *gorm.DB
}

// NewTodoRepository creates a new TodoRepository
func NewTodoRepository(db *gorm.DB) TodoRepository {
	return &GormTodoRepository{db: db}
}

// Create creates a new todo
func (r *GormTodoRepository) Create(todo *models.Todo) error {
	return r.db.Create(todo).Error
}

// FindByID finds a todo by ID
func (r *GormTodoRepository) FindByID(id uint64) (*models.Todo, error) {
	var todo models.Todo
	if err := r.db.First(&todo, id).Error; err != nil {
		return nil, err
	}
	return &todo, nil
}

// ListByOwner lists the todos created by a user, oldest first
func (r *GormTodoRepository) ListByOwner(ownerID uint64) ([]models.Todo, error) {
	todos := []models.Todo{}
	if err := r.db.Scopes(database.CreatedBy(ownerID), database.OldestFirst).Find(&todos).Error; err != nil {
		return nil, err
	}
	return todos, nil
}

// Update writes the name and flags of an existing todo. It never inserts: a todo deleted
// since it was loaded yields gorm.ErrRecordNotFound.
func (r *GormTodoRepository) Update(todo *models.Todo) error {
	result := r.db.Model(&models.Todo{}).Where("id = ?", todo.ID).Updates(map[string]any{
		"name":      todo.Name,
		"completed": todo.Completed,
		"edited":    todo.Edited,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete deletes a todo
func (r *GormTodoRepository) Delete(id uint64) error {
	result := r.db.Delete(&models.Todo{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
