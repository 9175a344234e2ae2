package middleware

import (
	"errors"                         // Error inspection
	"net/http"                       // HTTP status codes
	"student_portal/internal/domain" // Domain errors

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// ErrorView is the template rendered for every error response
const ErrorView = "error.html"

// ErrorHandler renders errors attached with c.Error and recovered panics.
// domain.ErrInvalidArgument maps to 400, anything else to 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logrus.WithFields(logrus.Fields{
					"path":  c.Request.URL.Path,
					"panic": r,
				}).Error("Unexpected exception occurred")
				RenderError(c, http.StatusInternalServerError, "An unexpected error occurred", "Please try again later")
			}
		}()

		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		status, title := http.StatusInternalServerError, "An unexpected error occurred"
		if errors.Is(err, domain.ErrInvalidArgument) {
			status, title = http.StatusBadRequest, "Invalid request"
		}
		logrus.WithFields(logrus.Fields{
			"path":   c.Request.URL.Path,
			"status": status,
			"error":  err.Error(),
		}).Error("Request failed")
		if c.Writer.Written() {
			return
		}
		RenderError(c, status, title, err.Error())
	}
}

// RenderError writes the error view and stops the handler chain
func RenderError(c *gin.Context, status int, title, message string) {
	c.HTML(status, ErrorView, gin.H{
		"status":  status,
		"error":   title,
		"message": message,
	})
	c.Abort()
}
