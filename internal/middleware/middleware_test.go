package middleware_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"student_portal/internal/domain"
	"student_portal/internal/metrics"
	"student_portal/internal/middleware"
	"student_portal/internal/testutil"
	"student_portal/internal/utils"
	"student_portal/internal/views"

	"github.com/gin-gonic/gin"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.SetHTMLTemplate(views.Templates())
	r.Use(mw...)
	return r
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCSRF_IssuesTokenOnSafeRequests(t *testing.T) {
	r := newEngine(middleware.CSRFMiddleware(false))
	var seen string
	r.GET("/", func(c *gin.Context) { seen = middleware.CSRFToken(c) })

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.CSRFCookie {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.Equal(t, cookie.Value, seen)

	// An existing cookie is reused, not rotated
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(testutil.CSRFCookie())
	rec = serve(r, req)
	assert.Empty(t, rec.Result().Cookies())
	assert.Equal(t, testutil.CSRFToken, seen)
}

func TestCSRF_GuardsUnsafeRequests(t *testing.T) {
	r := newEngine(middleware.CSRFMiddleware(false))
	r.POST("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	post := func(field string, withCookie bool) int {
		form := url.Values{}
		if field != "" {
			form.Set(middleware.CSRFField, field)
		}
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		if withCookie {
			req.AddCookie(testutil.CSRFCookie())
		}
		return serve(r, req).Code
	}

	assert.Equal(t, http.StatusOK, post(testutil.CSRFToken, true))
	assert.Equal(t, http.StatusForbidden, post("", true))
	assert.Equal(t, http.StatusForbidden, post("forged", true))
	assert.Equal(t, http.StatusForbidden, post(testutil.CSRFToken, false), "fresh cookie never matches")
}

type fakeUsers map[uint]*domain.User

func (f fakeUsers) FindByID(_ context.Context, id uint) (*domain.User, error) {
	if id == 500 {
		return nil, errors.New("connection reset")
	}
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func TestAuthorize(t *testing.T) {
	users := fakeUsers{
		1: {ID: 1, Username: "admin", Enabled: true, Roles: []domain.UserRole{{Role: domain.RoleAdmin}}},
		2: {ID: 2, Username: "user", Enabled: true, Roles: []domain.UserRole{{Role: domain.RoleUser}}},
		3: {ID: 3, Username: "off", Enabled: false, Roles: []domain.UserRole{{Role: domain.RoleAdmin}}},
	}
	r := newEngine(middleware.ErrorHandler(), middleware.SessionMiddleware(testutil.JWTSecret, nil))
	r.GET("/create", middleware.Authorize(users, domain.OpCreateStudent), func(c *gin.Context) {
		c.String(http.StatusOK, middleware.CurrentUser(c).Username)
	})

	get := func(cookie *http.Cookie) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/create", nil)
		if cookie != nil {
			req.AddCookie(cookie)
		}
		return serve(r, req)
	}

	rec := get(nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, middleware.LoginPath, rec.Header().Get("Location"))

	rec = get(testutil.SessionCookie(t, 1, "admin"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin", rec.Body.String())

	rec = get(testutil.SessionCookie(t, 2, "user"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Access Denied")

	for _, id := range []uint{3, 99} {
		rec = get(testutil.SessionCookie(t, id, fmt.Sprint(id)))
		assert.Equal(t, http.StatusFound, rec.Code)
	}

	rec = get(testutil.SessionCookie(t, 500, "flaky"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestErrorHandler(t *testing.T) {
	r := newEngine(middleware.ErrorHandler())
	r.GET("/bad", func(c *gin.Context) {
		_ = c.Error(fmt.Errorf("%w: id must be numeric", domain.ErrInvalidArgument))
	})
	r.GET("/fail", func(c *gin.Context) { _ = c.Error(errors.New("Database error")) })
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "fine") })

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/bad", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid request")
	assert.Contains(t, rec.Body.String(), "id must be numeric")

	rec = serve(r, httptest.NewRequest(http.MethodGet, "/fail", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "An unexpected error occurred")
	assert.Contains(t, rec.Body.String(), "Database error")

	rec = serve(r, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please try again later")

	rec = serve(r, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "fine", rec.Body.String())
}

func TestSessionMiddleware(t *testing.T) {
	r := newEngine(middleware.SessionMiddleware(testutil.JWTSecret, nil))
	r.GET("/", func(c *gin.Context) {
		claims, ok := middleware.SessionClaims(c)
		if !ok {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, claims.Username)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "anonymous", serve(r, req).Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(testutil.SessionCookie(t, 1, "admin"))
	assert.Equal(t, "admin", serve(r, req).Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "tampered"})
	assert.Equal(t, "anonymous", serve(r, req).Body.String())
}

func TestSessionMiddleware_RevokedToken(t *testing.T) {
	_, rdb := testutil.NewRedis(t)
	r := newEngine(middleware.SessionMiddleware(testutil.JWTSecret, rdb))
	r.GET("/", func(c *gin.Context) {
		if _, ok := middleware.SessionClaims(c); ok {
			c.String(http.StatusOK, "authenticated")
			return
		}
		c.String(http.StatusOK, "anonymous")
	})
	cookie := testutil.SessionCookie(t, 1, "admin")
	get := func() string {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(cookie)
		return serve(r, req).Body.String()
	}

	assert.Equal(t, "authenticated", get())

	claims, err := utils.ParseJWT(cookie.Value, testutil.JWTSecret)
	require.NoError(t, err)
	require.NoError(t, utils.RevokeSession(context.Background(), rdb, claims.ID, time.Hour))
	assert.Equal(t, "anonymous", get())
}

func TestPrometheusMiddlewarePassesThrough(t *testing.T) {
	r := newEngine(middleware.PrometheusMiddleware("test"))
	r.GET("/ping/:id", func(c *gin.Context) { c.String(http.StatusTeapot, "pong") })

	counted := func(method, route, status string) float64 {
		return promtest.ToFloat64(metrics.RequestsTotal.WithLabelValues("test", method, route, status))
	}
	before := counted(http.MethodGet, "/ping/:id", "418")
	unmatched := counted(http.MethodGet, "unmatched", "404")

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/ping/7", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	rec = serve(r, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Method and route pattern are separate labels
	assert.Equal(t, before+1, counted(http.MethodGet, "/ping/:id", "418"))
	assert.Equal(t, unmatched+1, counted(http.MethodGet, "unmatched", "404"))
}
