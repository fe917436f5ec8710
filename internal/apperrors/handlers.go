package apperrors

import (
	"github.com/gin-gonic/gin"
	"github.com/jobboard-dev/jobboard/internal/logger"
)

type ErrorResponse struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// HandleError writes err as a {message} body. Details of internal errors are logged, never returned.
func HandleError(c *gin.Context, err error) {
	appErr := From(err)

	if appErr.HTTPCode >= 500 {
		logger.CtxWithError(c.Request.Context(), "request failed", err, "path", c.FullPath())
	}

	c.AbortWithStatusJSON(appErr.HTTPCode, ErrorResponse{Message: appErr.Message, Field: appErr.Field})
}
