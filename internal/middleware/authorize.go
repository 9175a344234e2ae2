package middleware

import (
	"context"                        // Context for repository calls
	"errors"                         // Error inspection
	"net/http"                       // HTTP status codes
	"student_portal/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
)

// LoginPath is where unauthenticated requests are sent
const LoginPath = "/login"

const currentUserKey = "currentUser"

// UserFinder loads a user with its roles
type UserFinder interface {
	FindByID(ctx context.Context, id uint) (*domain.User, error)
}

// Authorize checks the user's roles from the database on each request.
// Anonymous requests are redirected to the login page; users lacking the
// permission for op get 403.
func Authorize(users UserFinder, op domain.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get(userIDKey)
		if !exists {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		user, err := users.FindByID(c.Request.Context(), userID.(uint))
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			_ = c.Error(err) // Rendered by ErrorHandler
			c.Abort()
			return
		}
		// Account removed or disabled since login
		if err != nil || !user.Enabled {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		if !user.Can(op) {
			RenderError(c, http.StatusForbidden, "Access Denied", "You do not have permission to access this page")
			return
		}
		c.Set(currentUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the user loaded by Authorize
func CurrentUser(c *gin.Context) *domain.User {
	if v, ok := c.Get(currentUserKey); ok {
		if user, ok := v.(*domain.User); ok {
			return user
		}
	}
	return nil
}
