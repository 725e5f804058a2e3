package dto

import (
	"github.com/yukikurage/todo-api/internal/models"
)

// TodoDTO represents a todo in API responses
type TodoDTO struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
	Edited    bool   `json:"edited"`
}

// ToTodoDTO converts a Todo model to TodoDTO
func ToTodoDTO(todo models.Todo) TodoDTO {
	return TodoDTO{
		ID:        todo.ID,
		Name:      todo.Name,
		Completed: todo.Completed,
		Edited:    todo.Edited,
	}
}

// ToTodoDTOs converts todos to DTOs. The result is never nil so it encodes as [].
func ToTodoDTOs(todos []models.Todo) []TodoDTO {
	items := make([]TodoDTO, len(todos))
	for i, todo := range todos {
		items[i] = ToTodoDTO(todo)
	}
	return items
}
