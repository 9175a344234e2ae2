package middleware

import (
	"crypto/subtle" // Constant time comparison
	"net/http"      // HTTP methods and status codes

	"github.com/gin-gonic/gin" // Gin web framework
	"github.com/google/uuid"   // Token generation
)

const (
	CSRFCookie = "XSRF-TOKEN"   // Cookie holding the token
	CSRFField  = "_csrf"        // Form field echoing the token
	CSRFHeader = "X-XSRF-TOKEN" // Header echoing the token
	csrfKey    = "csrfToken"
)

// CSRFMiddleware enforces a double-submit token on state changing requests
func CSRFMiddleware(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CSRFCookie)
		if err != nil || token == "" {
			token = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(CSRFCookie, token, 0, "/", "", secure, false)
		}
		c.Set(csrfKey, token)

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
			c.Next()
			return
		}
		sent := c.GetHeader(CSRFHeader)
		if sent == "" {
			sent = c.PostForm(CSRFField)
		}
		if sent == "" || subtle.ConstantTimeCompare([]byte(sent), []byte(token)) != 1 {
			RenderError(c, http.StatusForbidden, "Access Denied", "Invalid CSRF token")
			return
		}
		c.Next()
	}
}

// CSRFToken returns the token forms must echo back
func CSRFToken(c *gin.Context) string {
	return c.GetString(csrfKey)
}
