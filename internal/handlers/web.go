package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/yukikurage/todo-api/internal/constants"
	"github.com/yukikurage/todo-api/internal/dto"
	"github.com/yukikurage/todo-api/internal/middleware"
	"github.com/yukikurage/todo-api/internal/services"
)

const (
	flashSuccess = "success"
	flashError   = "error"
)

// WebHandler serves the session-based HTML pages.
type WebHandler struct {
	authService *services.AuthService
	todoService *services.TodoService
}

// NewWebHandler creates a new WebHandler.
func NewWebHandler(authService *services.AuthService, todoService *services.TodoService) *WebHandler {
	return &WebHandler{
		authService: authService,
		todoService: todoService,
	}
}

// RegisterPage renders the registration form.
func (h *WebHandler) RegisterPage(c *gin.Context) {
	h.render(c, http.StatusOK, "register.html", gin.H{
		"Title":       "Register",
		"Form":        RegisterRequest{},
		"FieldErrors": map[string][]string{},
	})
}

// Register creates the account, logs the new user in and redirects to the todo page.
func (h *WebHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		log.Debug().Err(err).Msg("Unreadable registration form")
		sessions.Default(c).AddFlash("The form could not be read. Please try again.", flashError)
		h.render(c, http.StatusBadRequest, "register.html", gin.H{
			"Title":       "Register",
			"Form":        RegisterRequest{},
			"FieldErrors": map[string][]string{},
		})
		return
	}

	user, err := h.authService.Register(req.input())
	if err != nil {
		var verr *services.ValidationError
		if !errors.As(err, &verr) {
			h.fail(c, err)
			return
		}
		h.render(c, http.StatusOK, "register.html", gin.H{
			"Title":       "Register",
			"Form":        RegisterRequest{Username: req.Username, Email: req.Email},
			"FieldErrors": verr.Fields,
		})
		return
	}

	h.login(c, user.ID, "You've been successfully registered!")
}

// LoginPage renders the login form.
func (h *WebHandler) LoginPage(c *gin.Context) {
	h.render(c, http.StatusOK, "login.html", gin.H{"Title": "Login"})
}

// Login checks the email/password pair and starts a session.
func (h *WebHandler) Login(c *gin.Context) {
	email := c.PostForm("email")
	user, err := h.authService.Login(email, c.PostForm("password"))
	if err != nil {
		if !errors.Is(err, services.ErrInvalidCredentials) {
			h.fail(c, err)
			return
		}
		session := sessions.Default(c)
		session.AddFlash("Your email or password doesn't match!", flashError)
		h.render(c, http.StatusOK, "login.html", gin.H{"Title": "Login", "Email": email})
		return
	}

	h.login(c, user.ID, "You've been logged in!")
}

// Logout ends the session.
func (h *WebHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.AddFlash("You've been logged out! Come back soon!", flashSuccess)
	if err := session.Save(); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

// Index lists the logged-in user's todos.
func (h *WebHandler) Index(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	todos, err := h.todoService.ListTodos(userID)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.render(c, http.StatusOK, "index.html", gin.H{
		"Title": "My Todos",
		"Todos": dto.ToTodoDTOs(todos),
	})
}

func (h *WebHandler) login(c *gin.Context, userID uint64, message string) {
	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, userID)
	session.AddFlash(message, flashSuccess)
	if err := session.Save(); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// render adds the pending flashes and the current user to data.
func (h *WebHandler) render(c *gin.Context, status int, name string, data gin.H) {
	session := sessions.Default(c)
	data["Success"] = session.Flashes(flashSuccess)
	data["Errors"] = session.Flashes(flashError)
	if err := session.Save(); err != nil {
		log.Warn().Err(err).Msg("Failed to save session")
	}
	if user, ok := middleware.GetUser(c); ok {
		data["User"] = user
	}
	c.HTML(status, name, data)
}

func (h *WebHandler) fail(c *gin.Context, err error) {
	log.Error().Err(err).Str("request_id", c.GetString(constants.ContextKeyRequestID)).Msg("Page request failed")
	if errors.Is(err, services.ErrStoreUnavailable) {
		c.String(http.StatusServiceUnavailable, "Service temporarily unavailable")
		return
	}
	c.String(http.StatusInternalServerError, "Internal server error")
}
