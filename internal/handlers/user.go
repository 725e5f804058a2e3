package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/todo-api/internal/constants"
	"github.com/yukikurage/todo-api/internal/dto"
	apierrors "github.com/yukikurage/todo-api/internal/errors"
	"github.com/yukikurage/todo-api/internal/middleware"
	"github.com/yukikurage/todo-api/internal/services"
)

// RegisterRequest is shared by the API and the HTML registration form.
type RegisterRequest struct {
	Username       string `form:"username" json:"username"`
	Email          string `form:"email" json:"email"`
	Password       string `form:"password" json:"password"`
	VerifyPassword string `form:"verify_password" json:"verify_password"`
}

func (r RegisterRequest) input() services.RegisterInput {
	return services.RegisterInput{
		Username:       r.Username,
		Email:          r.Email,
		Password:       r.Password,
		VerifyPassword: r.VerifyPassword,
	}
}

// UserHandler serves the user and token endpoints.
type UserHandler struct {
	authService *services.AuthService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(authService *services.AuthService) *UserHandler {
	return &UserHandler{
		authService: authService,
	}
}

// Register creates a user from a JSON or form body.
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Register(req.input())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("%s/%d", constants.UsersPath, user.ID))
	c.JSON(http.StatusCreated, dto.ToUserDTO(*user, true))
}

// GetAuthToken issues an API token to the authenticated caller.
func (h *UserHandler) GetAuthToken(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	token, err := h.authService.GenerateAuthToken(user)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TokenDTO{
		Token:     token,
		ExpiresIn: int64(h.authService.TokenTTL().Seconds()),
	})
}

// GetUser returns the public record of a user.
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.NotFound(c, "User not found")
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user, false))
}
