package services

import (
	"errors"

	"github.com/rs/zerolog/log"
)

type seedTodo struct {
	name  string
	owner string
}

var (
	seedUsers = []RegisterInput{
		{Username: "testuser", Email: "testuser@example.com", Password: "password", VerifyPassword: "password"},
		{Username: "otheruser", Email: "otheruser@example.com", Password: "password", VerifyPassword: "password"},
	}
	seedTodos = []seedTodo{
		{name: "clean the house", owner: "testuser"},
		{name: "water the dog", owner: "otheruser"},
		{name: "feed the lawn", owner: "testuser"},
		{name: "pay dem bills", owner: "otheruser"},
		{name: "run", owner: "testuser"},
		{name: "swim", owner: "otheruser"},
	}
)

// Seed creates the demo users and their todos on first run. If the demo users already
// exist nothing is written.
func Seed(auth *AuthService, todos *TodoService) error {
	owners := make(map[string]uint64, len(seedUsers))
	for _, input := range seedUsers {
		user, err := auth.Register(input)
		if err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				log.Info().Str("username", input.Username).Msg("Seed data already present, skipping")
				return nil
			}
			return err
		}
		owners[user.Username] = user.ID
	}

	for _, t := range seedTodos {
		if _, err := todos.CreateTodo(CreateTodoInput{OwnerID: owners[t.owner], Name: t.name}); err != nil {
			return err
		}
	}

	log.Info().Int("users", len(seedUsers)).Int("todos", len(seedTodos)).Msg("Seeded demo data")
	return nil
}
