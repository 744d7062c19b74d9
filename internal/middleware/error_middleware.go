package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/uniactivity/internal/app/models/dto"
	"github.com/yigit/uniactivity/internal/pkg/apperrors"
	"github.com/yigit/uniactivity/internal/pkg/logger"
)

// HandleAPIError maps an error to its HTTP status and writes the error envelope. The
// not-found family becomes 404, other invalid arguments 400, invalid state 400 with code
// RES_004, token errors 401 and anything else 500.
func HandleAPIError(c *gin.Context, err error) {
	status, detail := errorDetailFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("Request failed")
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

func errorDetailFor(err error) (int, *dto.ErrorDetail) {
	message := err.Error()
	var customErr *apperrors.CustomError
	errors.As(err, &customErr)

	switch {
	case errors.Is(err, apperrors.ErrTokenExpired):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")
	case apperrors.Is(err, apperrors.ErrTokenInvalid, apperrors.ErrInvalidFormat):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")
	case apperrors.IsNotFound(err):
		return http.StatusNotFound, withCustomDetails(dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, message), customErr)
	case errors.Is(err, apperrors.ErrValidationFailed):
		return http.StatusBadRequest, withCustomDetails(dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message), customErr)
	case errors.Is(err, apperrors.ErrInvalidArgument):
		return http.StatusBadRequest, withCustomDetails(dto.NewErrorDetail(dto.ErrorCodeResourceInvalid, message), customErr)
	case apperrors.Is(err, apperrors.ErrEmailAlreadyExists, apperrors.ErrIdentifierExists):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, message)
	case errors.Is(err, apperrors.ErrInvalidState):
		return http.StatusBadRequest, withCustomDetails(dto.NewErrorDetail(dto.ErrorCodeInvalidState, message), customErr)
	default:
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error").
			WithSeverity(dto.ErrorSeverityCritical)
	}
}

func withCustomDetails(detail *dto.ErrorDetail, customErr *apperrors.CustomError) *dto.ErrorDetail {
	if customErr != nil && customErr.Details != nil {
		detail = detail.WithDetails(customErr.Details)
	}
	return detail
}

var errPanic = errors.New("internal panic")
