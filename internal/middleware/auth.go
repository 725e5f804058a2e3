package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/yukikurage/todo-api/internal/constants"
	apierrors "github.com/yukikurage/todo-api/internal/errors"
	"github.com/yukikurage/todo-api/internal/models"
	"github.com/yukikurage/todo-api/internal/services"
)

// RequireAPIAuth resolves the request's credential to a user before the wrapped handler runs.
// It accepts HTTP Basic username/password or a Bearer token. Requests without a resolvable
// identity are rejected with 401; a failing store yields 503 instead.
func RequireAPIAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, scheme, err := resolveCredential(authService, c.Request)
		if err != nil {
			if errors.Is(err, services.ErrStoreUnavailable) {
				log.Error().Err(err).Str("request_id", c.GetString(constants.ContextKeyRequestID)).Msg("Auth resolution failed")
				apierrors.ServiceUnavailable(c, "")
				c.Abort()
				return
			}

			c.Header("WWW-Authenticate", scheme+` realm="`+constants.AuthRealm+`"`)
			apierrors.Unauthorized(c, "Unauthorized access")
			c.Abort()
			return
		}

		setUser(c, user)
		c.Next()
	}
}

func resolveCredential(authService *services.AuthService, r *http.Request) (*models.User, string, error) {
	if username, password, ok := r.BasicAuth(); ok {
		user, err := authService.Authenticate(username, password)
		return user, "Basic", err
	}

	scheme, token, found := strings.Cut(r.Header.Get("Authorization"), " ")
	if found && strings.EqualFold(scheme, "Bearer") {
		user, err := authService.AuthenticateToken(strings.TrimSpace(token))
		return user, "Bearer", err
	}

	return nil, "Basic", services.ErrInvalidCredentials
}

// RequireSession guards the HTML pages. Visitors without a logged-in session are sent to
// the login page.
func RequireSession(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID, ok := toUint64(session.Get(constants.ContextKeyUserID))
		if !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		user, err := authService.GetUser(userID)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				session.Clear()
				_ = session.Save()
				c.Redirect(http.StatusFound, "/login")
				c.Abort()
				return
			}
			log.Error().Err(err).Msg("Session user lookup failed")
			c.String(http.StatusServiceUnavailable, "Service temporarily unavailable")
			c.Abort()
			return
		}

		setUser(c, user)
		c.Next()
	}
}

func setUser(c *gin.Context, user *models.User) {
	c.Set(constants.ContextKeyUser, user)
	c.Set(constants.ContextKeyUserID, user.ID)
}

// GetUser retrieves the authenticated user from context
func GetUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok && user != nil
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	return toUint64(userID)
}

func toUint64(value any) (uint64, bool) {
	switch v := value.(type) {
	case uint64:
		return v, v != 0
	case uint:
		return uint64(v), v != 0
	case int:
		if v <= 0 {
			return 0, false
		}
		return uint64(v), true
	case int64:
		if v <= 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
