package utils

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// FieldErrors lists the form fields a request left out or got wrong.
type FieldErrors struct {
	Fields []string `json:"fields"`
}

// RespondError writes err as JSON. Anything that is not an AppError is
// reported as internal without leaking its text.
func RespondError(c *gin.Context, err error) {
	appErr := AsAppError(err)
	if appErr == nil {
		appErr = ErrInternal
	}

	c.JSON(appErr.Status, ErrorResponse{Error: ErrorBody{
		Code:    appErr.Code,
		Message: appErr.Message,
		Details: appErr.Details,
	}})
}

// RespondBindError reports a failed form bind as VALIDATION_ERROR, naming
// the offending fields when the binder says which they were.
func RespondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		RespondError(c, ErrBadRequest.WithMessage("malformed form"))
		return
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, strings.ToLower(fe.Field()))
	}

	appErr := ErrBadRequest.WithMessage("missing or invalid fields: " + strings.Join(fields, ", "))
	appErr.Details = FieldErrors{Fields: fields}
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: ErrorBody{
		Code:    appErr.Code,
		Message: appErr.Message,
		Details: appErr.Details,
	}})
}
