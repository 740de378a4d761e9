package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/taskforce/taskforce-api/internal/auth"
	apierrors "github.com/taskforce/taskforce-api/internal/errors"
	"github.com/taskforce/taskforce-api/internal/models"
	"github.com/taskforce/taskforce-api/internal/repository"
)

const contextKeyUser = "current_user"

// RequireAuth validates the bearer token and resolves the live user
// record for every request. The token only establishes identity: role
// and active-status checks always run against the freshly loaded
// record, so a deactivation or role change takes effect on the next
// request even for tokens issued earlier.
func RequireAuth(users repository.UserRepository, tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			apierrors.Unauthorized(c, "Not authenticated")
			c.Abort()
			return
		}

		claims, err := tokens.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			apierrors.Unauthorized(c, "Invalid token")
			c.Abort()
			return
		}

		user, err := users.FindByID(claims.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apierrors.Unauthorized(c, "User not found")
			} else {
				apierrors.InternalError(c, "Failed to load user")
			}
			c.Abort()
			return
		}

		if !user.IsActive {
			apierrors.Forbidden(c, "Access Denied - Account deactivated")
			c.Abort()
			return
		}

		c.Set(contextKeyUser, user)
		c.Next()
	}
}

// RequireRoles rejects requests whose actor's current role is not in
// the allowed set. Must run after RequireAuth.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			apierrors.Unauthorized(c, "Not authenticated")
			c.Abort()
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		apierrors.Forbidden(c, "Insufficient permissions")
		c.Abort()
	}
}

// CurrentUser retrieves the authenticated user stored by RequireAuth.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(contextKeyUser)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}
