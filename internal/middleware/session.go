package middleware

import (
	"student_portal/internal/utils" // JWT and cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// SessionCookie carries the signed session token
const SessionCookie = "SESSION"

const (
	userIDKey = "userID"        // Context key of the authenticated user id
	claimsKey = "sessionClaims" // Context key of the parsed session claims
)

// SessionMiddleware resolves the session cookie into a user id. Requests
// without a valid session continue anonymously; guards decide what that means.
func SessionMiddleware(secret string, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(SessionCookie)
		if err != nil || tokenStr == "" {
			c.Next()
			return
		}
		claims, err := utils.ParseJWT(tokenStr, secret)
		if err != nil {
			c.Next() // Expired or tampered, treat as anonymous
			return
		}
		if rdb != nil {
			revoked, err := utils.IsSessionRevoked(c.Request.Context(), rdb, claims.ID)
			if err != nil {
				logrus.WithError(err).Warn("Session revocation check failed")
			} else if revoked {
				c.Next()
				return
			}
		}
		c.Set(userIDKey, claims.UserID)
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// SessionClaims returns the claims of the current session, if any
func SessionClaims(c *gin.Context) (*utils.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*utils.Claims)
	return claims, ok
}
