package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/table-order/models"
	"github.com/yeremiapane/table-order/utils"
)

var (
	ErrInvalidCredentials = &CustomError{"invalid credentials"}
	ErrMissingToken       = &CustomError{"authorization header missing"}
)

type CustomError struct {
	Message string
}

func (e *CustomError) Error() string {
	return e.Message
}

// statusFor maps the model error taxonomy to an HTTP status.
func statusFor(err error) int {
	var verr *models.ValidationError
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrInvalidTransition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondServiceError(c *gin.Context, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		utils.ErrorLogger.WithField("path", c.FullPath()).WithError(err).Error("Request failed")
		_ = c.Error(err)
	}
	utils.RespondError(c, code, err)
}

// bindJSON decodes the request body, answering 400 on malformed input.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.RespondError(c, http.StatusBadRequest, models.NewValidationError("", "invalid request body: "+err.Error()))
		return false
	}
	return true
}
