package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/todo-api/internal/constants"
	"github.com/yukikurage/todo-api/internal/services"
)

func newTodoRouter(env middlewareTestEnv, enforceOwnership bool, userID uint64) *gin.Engine {
	r := gin.New()
	r.GET("/todos/:id",
		func(c *gin.Context) {
			if userID != 0 {
				c.Set(constants.ContextKeyUserID, userID)
			}
			c.Next()
		},
		RequireTodoAccess(env.todoService, enforceOwnership),
		func(c *gin.Context) {
			todo, ok := GetTodo(c)
			if !ok {
				c.Status(http.StatusTeapot)
				return
			}
			c.JSON(http.StatusOK, gin.H{"name": todo.Name})
		},
	)
	return r
}

func TestRequireTodoAccess(t *testing.T) {
	env := setupMiddlewareTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	todo, err := env.todoService.CreateTodo(services.CreateTodoInput{OwnerID: alice.ID, Name: "buy milk"})
	require.NoError(t, err)
	todoPath := "/todos/" + strconv.FormatUint(todo.ID, 10)

	tests := []struct {
		name       string
		enforce    bool
		userID     uint64
		path       string
		wantStatus int
	}{
		{"found without ownership check", false, 0, todoPath, http.StatusOK},
		{"other user without ownership check", false, bob.ID, todoPath, http.StatusOK},
		{"unknown id", false, 0, "/todos/999", http.StatusNotFound},
		{"non-numeric id", false, 0, "/todos/abc", http.StatusNotFound},
		{"owner with ownership check", true, alice.ID, todoPath, http.StatusOK},
		{"other user with ownership check", true, bob.ID, todoPath, http.StatusNotFound},
		{"anonymous with ownership check", true, 0, todoPath, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTodoRouter(env, tt.enforce, tt.userID)
			w := serve(r, httptest.NewRequest(http.MethodGet, tt.path, nil))

			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				var body map[string]string
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, "buy milk", body["name"])
			}
		})
	}
}
