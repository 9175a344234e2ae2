package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"student_portal/internal/api"
	"student_portal/internal/domain"
	"student_portal/internal/middleware"
	"student_portal/internal/repository"
	"student_portal/internal/service"
	"student_portal/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type harness struct {
	t        *testing.T
	router   *gin.Engine
	db       *gorm.DB
	students *repository.StudentRepository
	admin    *http.Cookie
	user     *http.Cookie
}

// newHarness wires the real router to an in-memory database. A non-nil svc
// replaces the real student service.
func newHarness(t *testing.T, svc api.StudentService) *harness {
	t.Helper()
	return buildHarness(t, svc, nil)
}

// buildHarness is newHarness with an optional Redis client for sessions
func buildHarness(t *testing.T, svc api.StudentService, rdb *redis.Client) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)
	gdb := testutil.OpenTestDB(t)
	users := repository.NewUserRepository(gdb)
	students := repository.NewStudentRepository(gdb)
	if svc == nil {
		svc = service.NewStudentService(students, nil)
	}
	sqlDB, err := gdb.DB()
	require.NoError(t, err)

	ctx := context.Background()
	admin, err := users.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	user, err := users.FindByUsername(ctx, "user")
	require.NoError(t, err)

	router := api.NewRouter(api.Dependencies{
		Students: svc,
		Users:    users,
		DB:       sqlDB,
		Redis:    rdb,
		Session:  api.SessionSettings{Secret: testutil.JWTSecret, TTL: time.Hour},
	})
	return &harness{
		t:        t,
		router:   router,
		db:       gdb,
		students: students,
		admin:    testutil.SessionCookie(t, admin.ID, admin.Username),
		user:     testutil.SessionCookie(t, user.ID, user.Username),
	}
}

func (h *harness) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return rec
}

// post submits a form carrying a valid CSRF token pair
func (h *harness) post(path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	if form == nil {
		form = url.Values{}
	}
	form.Set(middleware.CSRFField, testutil.CSRFToken)
	return h.postRaw(path, form, append(cookies, testutil.CSRFCookie())...)
}

// postRaw submits a form as is
func (h *harness) postRaw(path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return rec
}

func (h *harness) seed(name, roll string) domain.Student {
	h.t.Helper()
	s := domain.Student{Name: name, Roll: roll}
	require.NoError(h.t, h.students.Create(context.Background(), &s))
	return s
}

func (h *harness) all() []domain.Student {
	h.t.Helper()
	all, err := h.students.FindAll(context.Background())
	require.NoError(h.t, err)
	return all
}

func cookieNamed(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func (h *harness) postWithHeader(path string, form url.Values, header, value string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set(header, value)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return rec
}
