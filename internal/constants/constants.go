package constants

import "time"

// Context and session keys
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUser      = "user"
	ContextKeyTodo      = "todo"
	ContextKeyRequestID = "request_id"

	SessionCookieName = "todo_session"
)

// Authentication
const (
	MinPasswordLength = 8
	DefaultTokenTTL   = 600 * time.Second
	AuthRealm         = "Authentication Required"
)

// API paths used for Location headers
const (
	APIPrefix     = "/api/v1"
	UsersPath     = APIPrefix + "/users"
	TodosPath     = APIPrefix + "/todos"
	RequestIDHead = "X-Request-ID"
)
