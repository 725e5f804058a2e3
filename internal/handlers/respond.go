package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/yukikurage/todo-api/internal/constants"
	apierrors "github.com/yukikurage/todo-api/internal/errors"
	"github.com/yukikurage/todo-api/internal/services"
)

func respondServiceError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		apierrors.BadRequestWithDetails(c, "Validation failed", verr.Fields)
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, services.ErrTodoNotFound):
		apierrors.NotFound(c, "Todo not found")
	case errors.Is(err, services.ErrStoreUnavailable):
		log.Error().Err(err).Str("request_id", c.GetString(constants.ContextKeyRequestID)).Msg("Store unavailable")
		apierrors.ServiceUnavailable(c, "")
	default:
		log.Error().Err(err).Str("request_id", c.GetString(constants.ContextKeyRequestID)).Msg("Request failed")
		apierrors.InternalError(c, "")
	}
}
