package api

import (
	"context"                            // Context for repository calls
	"errors"                             // Error inspection
	"net/http"                           // HTTP status codes
	"student_portal/internal/domain"     // Importing domain models
	"student_portal/internal/metrics"    // Login counters
	"student_portal/internal/middleware" // Cookie names and CSRF token
	"student_portal/internal/utils"      // Utility functions
	"time"                               // Session lifetime

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"golang.org/x/crypto/bcrypt"   // Password hashing
)

// UserStore looks up accounts for login and authorization
type UserStore interface {
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}

// LoginForm is the payload of the login form
type LoginForm struct {
	Username string `form:"username"` // Login name
	Password string `form:"password"` // Plain text password
}

// SessionSettings controls the issued session cookie
type SessionSettings struct {
	Secret string        // Token signing key
	TTL    time.Duration // Session lifetime
	Secure bool          // Send cookies over HTTPS only
}

// LoginPageHandler renders the login form
func LoginPageHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, failed := c.GetQuery("error")     // Set after a rejected attempt
		_, loggedOut := c.GetQuery("logout") // Set after logout
		c.HTML(http.StatusOK, "login.html", gin.H{
			"loginError": failed,
			"loggedOut":  loggedOut,
			"csrfToken":  middleware.CSRFToken(c),
		})
	}
}

// LoginHandler authenticates a user and establishes a session cookie
func LoginHandler(users UserStore, session SessionSettings) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form LoginForm
		// Bind the form; a malformed body is just a failed login
		if err := c.ShouldBind(&form); err != nil || form.Username == "" {
			rejectLogin(c, form.Username, "malformed")
			return
		}
		user, err := users.FindByUsername(c.Request.Context(), form.Username)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			_ = c.Error(err)
			return
		}
		if err != nil {
			rejectLogin(c, form.Username, "unknown_user")
			return
		}
		if !user.Enabled {
			rejectLogin(c, form.Username, "disabled")
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(form.Password)); err != nil {
			rejectLogin(c, form.Username, "bad_credentials")
			return
		}
		token, err := utils.GenerateJWT(user.ID, user.Username, session.Secret, session.TTL)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(middleware.SessionCookie, token, int(session.TTL.Seconds()), "/", "", session.Secure, true)
		metrics.LoginAttempts.WithLabelValues("success").Inc()
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,
			"username": user.Username,
		}).Info("User logged in")
		c.Redirect(http.StatusFound, "/students")
	}
}

// rejectLogin sends the browser back to the form with an error flag
func rejectLogin(c *gin.Context, username, reason string) {
	metrics.LoginAttempts.WithLabelValues("failure").Inc()
	logrus.WithFields(logrus.Fields{
		"username": username,
		"reason":   reason,
	}).Warn("Login rejected")
	c.Redirect(http.StatusFound, middleware.LoginPath+"?error")
}

// LogoutHandler ends the session and deny-lists its token when Redis is available
func LogoutHandler(rdb *redis.Client, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := middleware.SessionClaims(c); ok && rdb != nil && claims.ExpiresAt != nil {
			if err := utils.RevokeSession(c.Request.Context(), rdb, claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
				logrus.WithError(err).Warn("Session revocation failed")
			}
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(middleware.SessionCookie, "", -1, "/", "", secure, true) // Expire the cookie
		c.Redirect(http.StatusFound, middleware.LoginPath+"?logout")
	}
}
