package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jobboard-dev/jobboard/internal/access"
	"github.com/jobboard-dev/jobboard/internal/apperrors"
	"github.com/jobboard-dev/jobboard/internal/logger"
	"github.com/jobboard-dev/jobboard/internal/models"
	"github.com/jobboard-dev/jobboard/internal/types"
)

type AuthenticatedUser struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

func (u AuthenticatedUser) Identity() access.Identity {
	return access.Identity{ID: u.ID, Role: u.Role}
}

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

func AuthMiddleware(authenticator Authenticator) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")

		if authHeader == "" {
			apperrors.HandleError(ctx, apperrors.Unauthorized("Authorization token is required"))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)

		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			apperrors.HandleError(ctx, apperrors.Unauthorized("Authorization header format must be Bearer {token}"))
			return
		}

		user, err := authenticator.Authenticate(ctx.Request.Context(), strings.TrimSpace(parts[1]))

		if err != nil {
			apperrors.HandleError(ctx, err)
			return
		}

		ctx.Set(types.ContextUserKey, AuthenticatedUser{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		})
		ctx.Request = ctx.Request.WithContext(logger.WithUserID(ctx.Request.Context(), user.ID))
		ctx.Next()
	}
}

// RequireCapability must run after AuthMiddleware.
func RequireCapability(capability access.Capability) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		value, exists := ctx.Get(types.ContextUserKey)
		user, ok := value.(AuthenticatedUser)

		if !exists || !ok {
			apperrors.HandleError(ctx, apperrors.Unauthorized("User not authenticated"))
			return
		}

		if err := access.Require(user.Identity(), capability); err != nil {
			apperrors.HandleError(ctx, err)
			return
		}

		ctx.Next()
	}
}
