package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/uniactivity/internal/app/models/dto"
)

// BindingErrorDetail turns a gin binding error into a validation error detail listing each
// failed field
func BindingErrorDetail(err error) *dto.ErrorDetail {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make([]dto.FieldError, 0, len(validationErrs))
		for _, e := range validationErrs {
			fields = append(fields, dto.FieldError{
				Field:   jsonFieldName(e),
				Message: formatValidationError(e),
			})
		}
		return dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed").WithDetails(fields)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		return dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").
			WithDetails("malformed JSON")
	case errors.As(err, &typeErr):
		return dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").
			WithField(typeErr.Field).
			WithDetails(typeErr.Field + " must be of type " + typeErr.Type.String())
	}

	return dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").WithDetails(err.Error())
}

// jsonFieldName lowercases the first letter of the struct field ("MaxStudents" => "maxStudents")
func jsonFieldName(e validator.FieldError) string {
	field := e.Field()
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	field := jsonFieldName(e)
	switch e.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return field + " must be at least " + e.Param()
	case "max":
		return field + " must be at most " + e.Param()
	case "email":
		return field + " must be a valid email address"
	case "oneof":
		return field + " must be one of: " + e.Param()
	case "isodate":
		return field + " must be a date (YYYY-MM-DD)"
	case "timestamp":
		return field + " must be a timestamp (YYYY-MM-DDTHH:MM:SS) or a date"
	default:
		return field + " validation failed: " + e.Tag()
	}
}

// HandleBindingError writes a 400 response for a request that failed to bind
func HandleBindingError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(BindingErrorDetail(err)))
}
