package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jobboard-dev/jobboard/internal/apperrors"
	"github.com/jobboard-dev/jobboard/internal/types"
)

func respondData(ctx *gin.Context, status int, data any) {
	ctx.JSON(status, types.Envelope{Success: true, Data: data})
}

func respondList[T any](ctx *gin.Context, items []T) {
	count := len(items)
	ctx.JSON(http.StatusOK, types.Envelope{Success: true, Count: &count, Data: items})
}

func respondError(ctx *gin.Context, err error) {
	apperrors.HandleError(ctx, err)
}

func invalidBody() error {
	return apperrors.Validation("", "Invalid request body")
}

func notAuthenticated() error {
	return apperrors.Unauthorized("User not authenticated")
}
