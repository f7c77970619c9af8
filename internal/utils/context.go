package utils

import (
	"fmt"

	"github.com/duopot/duopot/internal/middleware"
	"github.com/duopot/duopot/internal/policy"
	"github.com/duopot/duopot/internal/types"
	"github.com/gin-gonic/gin"
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

// CurrentIdentity returns the caller's policy identity, or policy.Anonymous
// when the request carries no resolvable user.
func CurrentIdentity(ctx *gin.Context) policy.Identity {
	user, err := GetCurrentUser(ctx)

	if err != nil {
		return policy.Anonymous
	}

	return policy.Identity{UserID: user.ID}
}
