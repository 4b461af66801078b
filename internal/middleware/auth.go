package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/taskhive/taskhive-api/internal/auth"
	"github.com/taskhive/taskhive-api/internal/constants"
	apierrors "github.com/taskhive/taskhive-api/internal/errors"
	"github.com/taskhive/taskhive-api/internal/services"
	"go.uber.org/zap"
)

// RequireAuth resolves the bearer token to an identity and attaches it to
// the request context. Handlers behind it always observe a resolved
// identity or never run.
func RequireAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			apierrors.Unauthorized(c, "Invalid authorization header")
			c.Abort()
			return
		}

		user, err := authService.Authenticate(parts[1])
		if err != nil {
			if !errors.Is(err, services.ErrInvalidToken) {
				zap.L().Error("failed to authenticate request", zap.Error(err))
			}
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyIdentity, auth.Identity{
			ID:   user.ID,
			Role: user.Role,
		})
		c.Next()
	}
}

// RequireAdmin rejects any caller whose resolved identity is not an admin.
// Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if !identity.IsAdmin() {
			apierrors.Forbidden(c, "Admin access required")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetIdentity retrieves the resolved caller identity from context.
func GetIdentity(c *gin.Context) (auth.Identity, bool) {
	value, exists := c.Get(constants.ContextKeyIdentity)
	if !exists {
		return auth.Identity{}, false
	}

	identity, ok := value.(auth.Identity)
	return identity, ok
}
