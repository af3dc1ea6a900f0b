package utils

import (
	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// RespondJSON writes data as the bare response body.
func RespondJSON(c *gin.Context, code int, data interface{}) {
	c.JSON(code, data)
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// AbortError writes the error and stops the handler chain.
func AbortError(c *gin.Context, code int, err error) {
	c.AbortWithStatusJSON(code, ErrorResponse{Error: err.Error()})
}
