package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jobboard-dev/jobboard/internal/access"
	"github.com/jobboard-dev/jobboard/internal/middleware"
	"github.com/jobboard-dev/jobboard/internal/types"
)

func GetCurrentUser(ctx *gin.Context) (middleware.AuthenticatedUser, error) {
	user, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return middleware.AuthenticatedUser{}, fmt.Errorf("User not authenticated")
	}

	authenticatedUser, ok := user.(middleware.AuthenticatedUser)

	if !ok {
		return middleware.AuthenticatedUser{}, fmt.Errorf("Invalid user type in context")
	}

	return authenticatedUser, nil
}

// GetIdentity is the requester passed explicitly into services.
func GetIdentity(ctx *gin.Context) (access.Identity, error) {
	user, err := GetCurrentUser(ctx)

	if err != nil {
		return access.Identity{}, err
	}

	return user.Identity(), nil
}
