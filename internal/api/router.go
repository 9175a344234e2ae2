package api

import (
	"net/http"                           // HTTP status codes
	"strings"                            // Path prefix checks
	"student_portal/internal/domain"     // Operations guarded per route
	"student_portal/internal/middleware" // Custom middleware
	"student_portal/internal/views"      // HTML templates

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// ServiceName labels the request metrics
const ServiceName = "student-portal"

// Dependencies wires the router to its collaborators
type Dependencies struct {
	Students StudentService
	Users    UserStore
	DB       Pinger
	Redis    *redis.Client // Optional
	Session  SessionSettings
}

// NewRouter builds the Gin engine with every route and middleware
func NewRouter(deps Dependencies) *gin.Engine {
	r := gin.Default()
	r.SetHTMLTemplate(views.Templates())

	// Order matters: CSRF is checked before the session is trusted
	r.Use(
		middleware.PrometheusMiddleware(ServiceName),
		middleware.ErrorHandler(),
		middleware.CSRFMiddleware(deps.Session.Secure),
		middleware.SessionMiddleware(deps.Session.Secret, deps.Redis),
	)

	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/students") })
	r.GET("/health", HealthHandler(deps.DB))

	// Login routes (public)
	r.GET("/login", LoginPageHandler())
	r.POST("/login", LoginHandler(deps.Users, deps.Session))
	r.POST("/logout", LogoutHandler(deps.Redis, deps.Session.Secure))

	// Student routes, each guarded by its operation
	students := r.Group("/students")
	students.GET("", middleware.Authorize(deps.Users, domain.OpListStudents), ListStudentsHandler(deps.Students))
	students.GET("/add", middleware.Authorize(deps.Users, domain.OpCreateStudent), AddStudentHandler())
	students.POST("/store", middleware.Authorize(deps.Users, domain.OpCreateStudent), StoreStudentHandler(deps.Students))
	students.POST("/delete/:id", middleware.Authorize(deps.Users, domain.OpDeleteStudent), DeleteStudentHandler(deps.Students))

	// Unknown pages under /students still require a login first
	r.NoRoute(NotFoundHandler())

	return r
}

// NotFoundHandler renders 404, except that anonymous requests anywhere under
// /students are sent to the login page
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if path == "/students" || strings.HasPrefix(path, "/students/") {
			if _, ok := middleware.SessionClaims(c); !ok {
				c.Redirect(http.StatusFound, middleware.LoginPath)
				return
			}
		}
		middleware.RenderError(c, http.StatusNotFound, "Not Found", "No page at "+path)
	}
}
