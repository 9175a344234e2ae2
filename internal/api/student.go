package api

import (
	"context"                            // Context for service calls
	"fmt"                                // Error wrapping
	"net/http"                           // HTTP status codes
	"strconv"                            // Path parameter parsing
	"student_portal/internal/domain"     // Importing domain models
	"student_portal/internal/middleware" // Current user and CSRF token

	"github.com/gin-gonic/gin" // Gin web framework
)

// StudentService is what the student pages need from the service layer
type StudentService interface {
	GetAllStudents(ctx context.Context) ([]domain.Student, error)
	SaveStudent(ctx context.Context, form domain.StudentForm) (*domain.Student, error)
	DeleteStudent(ctx context.Context, id uint) error
}

// ListStudentsHandler renders every student
func ListStudentsHandler(svc StudentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		students, err := svc.GetAllStudents(c.Request.Context())
		if err != nil {
			_ = c.Error(err)
			return
		}
		user := middleware.CurrentUser(c)
		var username string
		if user != nil {
			username = user.Username
		}
		c.HTML(http.StatusOK, "students.html", gin.H{
			"students":  students,
			"username":  username,
			"canCreate": user.Can(domain.OpCreateStudent),
			"canDelete": user.Can(domain.OpDeleteStudent),
			"csrfToken": middleware.CSRFToken(c),
		})
	}
}

// AddStudentHandler renders an empty creation form
func AddStudentHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "student-form.html", gin.H{
			"student":   domain.StudentForm{},
			"csrfToken": middleware.CSRFToken(c),
		})
	}
}

// StoreStudentHandler saves the submitted form and redirects to the list
func StoreStudentHandler(svc StudentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form domain.StudentForm
		if err := c.ShouldBind(&form); err != nil {
			_ = c.Error(fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err))
			return
		}
		if _, err := svc.SaveStudent(c.Request.Context(), form); err != nil {
			_ = c.Error(err)
			return
		}
		c.Redirect(http.StatusFound, "/students")
	}
}

// DeleteStudentHandler deletes the student named in the path and redirects to the list.
// Ids that cannot exist (zero or negative) are a no-op like any other missing id.
func DeleteStudentHandler(svc StudentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseID(c.Param("id"))
		if err != nil {
			_ = c.Error(err)
			return
		}
		if id > 0 {
			if err := svc.DeleteStudent(c.Request.Context(), uint(id)); err != nil {
				_ = c.Error(err)
				return
			}
		}
		c.Redirect(http.StatusFound, "/students")
	}
}

// parseID accepts any integer; anything else is an invalid argument
func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: student id %q", domain.ErrInvalidArgument, raw)
	}
	return id, nil
}
