package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/luxe-fragrances/storefront-backend/internal/apperrors"
	"github.com/luxe-fragrances/storefront-backend/internal/middleware"
)

// ErrorResponse is the generic error body every handler returns on failure.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError maps application errors to HTTP statuses. Unrecognized errors
// become a 500 with a generic message; the detail goes to the log, not the
// client.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrAccountExists):
		c.JSON(http.StatusConflict, ErrorResponse{Error: apperrors.ErrAccountExists.Error()})
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: apperrors.ErrInvalidCredentials.Error()})
	case errors.Is(err, apperrors.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: apperrors.ErrInvalidToken.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: apperrors.ErrForbidden.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: apperrors.ErrNotFound.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, ErrorResponse{Error: apperrors.ErrDuplicate.Error()})
	default:
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Unhandled error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}
