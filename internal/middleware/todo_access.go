package middleware

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/yukikurage/todo-api/internal/constants"
	apierrors "github.com/yukikurage/todo-api/internal/errors"
	"github.com/yukikurage/todo-api/internal/models"
	"github.com/yukikurage/todo-api/internal/services"
)

// RequireTodoAccess loads the todo named by the :id parameter into the context.
// With enforceOwnership set, only the todo's creator gets through; everyone else sees 404
// so the todo's existence is not leaked. It must run after RequireAPIAuth in that case.
func RequireTodoAccess(todoService *services.TodoService, enforceOwnership bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Non-numeric ids never match a todo
		todoID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.NotFound(c, "Todo not found")
			c.Abort()
			return
		}

		todo, err := todoService.GetTodo(todoID)
		if err != nil {
			if errors.Is(err, services.ErrTodoNotFound) {
				apierrors.NotFound(c, "Todo not found")
			} else {
				log.Error().Err(err).Uint64("todo_id", todoID).Msg("Todo lookup failed")
				apierrors.ServiceUnavailable(c, "")
			}
			c.Abort()
			return
		}

		if enforceOwnership {
			userID, exists := GetUserID(c)
			if !exists {
				apierrors.Unauthorized(c, "")
				c.Abort()
				return
			}
			if !todo.OwnedBy(userID) {
				apierrors.NotFound(c, "Todo not found")
				c.Abort()
				return
			}
		}

		c.Set(constants.ContextKeyTodo, *todo)
		c.Next()
	}
}

// GetTodo retrieves the todo loaded by RequireTodoAccess
func GetTodo(c *gin.Context) (models.Todo, bool) {
	value, exists := c.Get(constants.ContextKeyTodo)
	if !exists {
		return models.Todo{}, false
	}
	todo, ok := value.(models.Todo)
	return todo, ok
}
