package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/todo-api/internal/constants"
	"github.com/yukikurage/todo-api/internal/dto"
	apierrors "github.com/yukikurage/todo-api/internal/errors"
	"github.com/yukikurage/todo-api/internal/middleware"
	"github.com/yukikurage/todo-api/internal/services"
)

// TodoRequest is the body of create and update calls, as JSON or form fields.
type TodoRequest struct {
	Name      string `form:"name" json:"name"`
	Completed *bool  `form:"completed" json:"completed"`
	Edited    *bool  `form:"edited" json:"edited"`
}

type TodoHandler struct {
	todoService *services.TodoService
}

func NewTodoHandler(todoService *services.TodoService) *TodoHandler {
	return &TodoHandler{
		todoService: todoService,
	}
}

// ListTodos returns the current user's todos
func (h *TodoHandler) ListTodos(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	todos, err := h.todoService.ListTodos(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTodoDTOs(todos))
}

// CreateTodo creates a todo owned by the current user
func (h *TodoHandler) CreateTodo(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req TodoRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	todo, err := h.todoService.CreateTodo(services.CreateTodoInput{
		OwnerID:   userID,
		Name:      req.Name,
		Completed: req.Completed,
		Edited:    req.Edited,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header("Location", todoLocation(todo.ID))
	c.JSON(http.StatusCreated, dto.ToTodoDTO(*todo))
}

// GetTodo returns a specific todo by ID
// Todo is already loaded by RequireTodoAccess middleware
func (h *TodoHandler) GetTodo(c *gin.Context) {
	todo, exists := middleware.GetTodo(c)
	if !exists {
		apierrors.InternalError(c, "Todo not found in context")
		return
	}

	c.JSON(http.StatusOK, dto.ToTodoDTO(todo))
}

// UpdateTodo overwrites an existing todo
func (h *TodoHandler) UpdateTodo(c *gin.Context) {
	todo, exists := middleware.GetTodo(c)
	if !exists {
		apierrors.InternalError(c, "Todo not found in context")
		return
	}

	var req TodoRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.todoService.UpdateTodo(&todo, services.UpdateTodoInput{
		Name:      req.Name,
		Completed: req.Completed,
		Edited:    req.Edited,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header("Location", todoLocation(updated.ID))
	c.JSON(http.StatusOK, dto.ToTodoDTO(*updated))
}

// DeleteTodo deletes a todo
func (h *TodoHandler) DeleteTodo(c *gin.Context) {
	todo, exists := middleware.GetTodo(c)
	if !exists {
		apierrors.InternalError(c, "Todo not found in context")
		return
	}

	if err := h.todoService.DeleteTodo(todo.ID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header("Location", constants.TodosPath)
	c.Status(http.StatusNoContent)
}

func todoLocation(id uint64) string {
	return fmt.Sprintf("%s/%d", constants.TodosPath, id)
}
