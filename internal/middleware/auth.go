package middleware

import (
	"net/http"
	"strings"

	"github.com/duopot/duopot/db"
	"github.com/duopot/duopot/internal/auth"
	"github.com/duopot/duopot/internal/models"
	"github.com/duopot/duopot/internal/types"
	"github.com/gin-gonic/gin"
)

type AuthenticatedUser struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

// resolveIdentity re-derives the caller's identity from the request on every
// call: token from the Authorization header (or the session cookie), claims
// verified, user row confirmed to still exist. Sessions can be revoked out
// of band, so nothing here is cached between requests.
func resolveIdentity(ctx *gin.Context) (AuthenticatedUser, bool) {
	tokenString := ""

	if authHeader := ctx.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)

		if len(parts) != 2 || parts[0] != "Bearer" {
			return AuthenticatedUser{}, false
		}

		tokenString = parts[1]
	} else if cookie, err := ctx.Cookie("token"); err == nil {
		tokenString = cookie
	}

	if tokenString == "" {
		return AuthenticatedUser{}, false
	}

	userID, err := auth.UserIDFromToken(tokenString)

	if err != nil {
		return AuthenticatedUser{}, false
	}

	var user models.User

	if err := db.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return AuthenticatedUser{}, false
	}

	return AuthenticatedUser{ID: user.ID, Email: user.Email}, true
}

// AuthMiddleware rejects requests without a resolvable identity.
func AuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := resolveIdentity(ctx)

		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing token"})
			return
		}

		ctx.Set(types.ContextUserKey, user)
		ctx.Next()
	}
}

// OptionalAuthMiddleware resolves the identity when present but lets the
// request through either way. Handlers behind it see the anonymous identity
// for unauthenticated callers and respond with the empty ledger view rather
// than an error.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if user, ok := resolveIdentity(ctx); ok {
			ctx.Set(types.ContextUserKey, user)
		}

		ctx.Next()
	}
}
