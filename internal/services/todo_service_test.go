package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodoService_ListTodosIsOwnerFiltered(t *testing.T) {
	env := setupServiceTestEnv(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")

	_, err := env.todoService.CreateTodo(CreateTodoInput{OwnerID: alice.ID, Name: "buy milk"})
	require.NoError(t, err)
	_, err = env.todoService.CreateTodo(CreateTodoInput{OwnerID: bob.ID, Name: "walk dog"})
	require.NoError(t, err)
	_, err = env.todoService.CreateTodo(CreateTodoInput{OwnerID: alice.ID, Name: "pay rent", Completed: boolPtr(true)})
	require.NoError(t, err)

	todos, err := env.todoService.ListTodos(alice.ID)
	require.NoError(t, err)
	require.Len(t, todos, 2)
	for _, todo := range todos {
		assert.Equal(t, alice.ID, todo.CreatedByID)
	}
	assert.Equal(t, "buy milk", todos[0].Name)
	assert.False(t, todos[0].Completed)
	assert.True(t, todos[1].Completed)

	none, err := env.todoService.ListTodos(9999)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestTodoService_CreateRequiresName(t *testing.T) {
	env := setupServiceTestEnv(t)
	alice := env.register(t, "alice")

	_, err := env.todoService.CreateTodo(CreateTodoInput{OwnerID: alice.ID, Name: "  "})

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields["name"], "No todo name provided")
}

func TestTodoService_UpdateTodo(t *testing.T) {
	env := setupServiceTestEnv(t)
	alice := env.register(t, "alice")

	todo, err := env.todoService.CreateTodo(CreateTodoInput{OwnerID: alice.ID, Name: "draft"})
	require.NoError(t, err)
	assert.False(t, todo.Completed)
	assert.False(t, todo.Edited)

	updated, err := env.todoService.UpdateTodo(todo, UpdateTodoInput{Name: "final", Completed: boolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Name)
	assert.True(t, updated.Completed)
	assert.False(t, updated.Edited)

	updated, err = env.todoService.UpdateTodo(updated, UpdateTodoInput{Name: "final", Edited: boolPtr(true)})
	require.NoError(t, err)

	stored, err := env.todoService.GetTodo(todo.ID)
	require.NoError(t, err)
	assert.Equal(t, "final", stored.Name)
	assert.True(t, stored.Completed)
	assert.True(t, stored.Edited)
	assert.Equal(t, alice.ID, stored.CreatedByID)

	_, err = env.todoService.UpdateTodo(stored, UpdateTodoInput{Name: ""})
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestTodoService_DeleteTodo(t *testing.T) {
	env := setupServiceTestEnv(t)
	alice := env.register(t, "alice")

	todo, err := env.todoService.CreateTodo(CreateTodoInput{OwnerID: alice.ID, Name: "temp"})
	require.NoError(t, err)

	require.NoError(t, env.todoService.DeleteTodo(todo.ID))

	_, err = env.todoService.GetTodo(todo.ID)
	assert.ErrorIs(t, err, ErrTodoNotFound)
	assert.ErrorIs(t, env.todoService.DeleteTodo(todo.ID), ErrTodoNotFound)
}

func TestTodoService_UpdateAfterDelete(t *testing.T) {
	env := setupServiceTestEnv(t)
	alice := env.register(t, "alice")

	created, err := env.todoService.CreateTodo(CreateTodoInput{OwnerID: alice.ID, Name: "temp"})
	require.NoError(t, err)

	loaded, err := env.todoService.GetTodo(created.ID)
	require.NoError(t, err)
	require.NoError(t, env.todoService.DeleteTodo(created.ID))

	_, err = env.todoService.UpdateTodo(loaded, UpdateTodoInput{Name: "revived"})
	assert.ErrorIs(t, err, ErrTodoNotFound)

	_, err = env.todoService.GetTodo(created.ID)
	assert.ErrorIs(t, err, ErrTodoNotFound)

	var count int64
	require.NoError(t, env.db.Table("todos").Count(&count).Error)
	assert.Zero(t, count)
}

func TestSeed(t *testing.T) {
	env := setupServiceTestEnv(t)

	require.NoError(t, Seed(env.authService, env.todoService))
	// Second run finds the users and writes nothing
	require.NoError(t, Seed(env.authService, env.todoService))

	testuser, err := env.authService.Authenticate("testuser", "password")
	require.NoError(t, err)

	todos, err := env.todoService.ListTodos(testuser.ID)
	require.NoError(t, err)
	require.Len(t, todos, 3)
	assert.Equal(t, "clean the house", todos[0].Name)
}
