package services

import (
	"errors"
	"strings"

	"github.com/yukikurage/todo-api/internal/models"
	"github.com/yukikurage/todo-api/internal/repository"
	"gorm.io/gorm"
)

// TodoService handles todo business logic
type TodoService struct {
	todoRepo repository.TodoRepository
}

// NewTodoService creates a new TodoService
func NewTodoService(todoRepo repository.TodoRepository) *TodoService {
	return &TodoService{
		todoRepo: todoRepo,
	}
}

// CreateTodoInput represents input for creating a todo
type CreateTodoInput struct {
	OwnerID   uint64
	Name      string
	Completed *bool
	Edited    *bool
}

// UpdateTodoInput represents input for updating a todo. Nil flags keep their stored value.
type UpdateTodoInput struct {
	Name      string
	Completed *bool
	Edited    *bool
}

// ListTodos returns the todos owned by ownerID
func (s *TodoService) ListTodos(ownerID uint64) ([]models.Todo, error) {
	todos, err := s.todoRepo.ListByOwner(ownerID)
	if err != nil {
		return nil, storeError("list todos", err)
	}
	return todos, nil
}

// GetTodo returns a todo by ID
func (s *TodoService) GetTodo(id uint64) (*models.Todo, error) {
	todo, err := s.todoRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, storeError("find todo", err)
	}
	return todo, nil
}

// CreateTodo creates a todo owned by input.OwnerID
func (s *TodoService) CreateTodo(input CreateTodoInput) (*models.Todo, error) {
	name, err := validateTodoName(input.Name)
	if err != nil {
		return nil, err
	}

	todo := &models.Todo{
		Name:        name,
		CreatedByID: input.OwnerID,
	}
	applyFlags(todo, input.Completed, input.Edited)

	if err := s.todoRepo.Create(todo); err != nil {
		return nil, storeError("create todo", err)
	}
	return todo, nil
}

// UpdateTodo overwrites the name and any supplied flags of todo. Concurrent updates are
// not detected; the last write wins.
func (s *TodoService) UpdateTodo(todo *models.Todo, input UpdateTodoInput) (*models.Todo, error) {
	name, err := validateTodoName(input.Name)
	if err != nil {
		return nil, err
	}

	updated := *todo
	updated.Name = name
	applyFlags(&updated, input.Completed, input.Edited)

	if err := s.todoRepo.Update(&updated); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, storeError("update todo", err)
	}
	return &updated, nil
}

// DeleteTodo deletes a todo by ID
func (s *TodoService) DeleteTodo(id uint64) error {
	if err := s.todoRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTodoNotFound
		}
		return storeError("delete todo", err)
	}
	return nil
}

func validateTodoName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		verr := NewValidationError()
		verr.Add("name", "No todo name provided")
		return "", verr
	}
	return name, nil
}

func applyFlags(todo *models.Todo, completed, edited *bool) {
	if completed != nil {
		todo.Completed = *completed
	}
	if edited != nil {
		todo.Edited = *edited
	}
}
