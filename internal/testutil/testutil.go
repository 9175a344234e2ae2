package testutil

import (
	"net/http"
	"testing"
	"time"

	"student_portal/internal/config"
	"student_portal/internal/db"
	"student_portal/internal/middleware"
	"student_portal/internal/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	AdminPassword = "admin-secret"
	UserPassword  = "user-secret"
	JWTSecret     = "test-secret"
	CSRFToken     = "test-csrf-token"
)

// OpenTestDB opens a private in-memory SQLite database, migrated and seeded
// with the admin and user accounts. It is closed via t.Cleanup.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := &config.Config{
		DBDriver: config.DriverSQLite,
		// Shared cache keeps the database alive across pooled connections
		DBName: "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	}
	gdb, err := db.Open(cfg)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("test db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	if err := db.Seed(gdb, db.DefaultAccounts(AdminPassword, UserPassword)); err != nil {
		t.Fatalf("seed test db: %v", err)
	}
	return gdb
}

// SessionCookie returns a signed session cookie for the given user
func SessionCookie(t *testing.T, userID uint, username string) *http.Cookie {
	t.Helper()
	token, err := utils.GenerateJWT(userID, username, JWTSecret, time.Hour)
	if err != nil {
		t.Fatalf("sign session: %v", err)
	}
	return &http.Cookie{Name: middleware.SessionCookie, Value: token}
}

// CSRFCookie returns the cookie half of a double-submit token pair
func CSRFCookie() *http.Cookie {
	return &http.Cookie{Name: middleware.CSRFCookie, Value: CSRFToken}
}

// NewRedis starts an in-process Redis server and a client connected to it,
// both torn down via t.Cleanup.
func NewRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}
