package config

import (
	"fmt"     // For error formatting
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"time"    // For session TTL

	"github.com/joho/godotenv" // For loading .env files
)

// Supported database drivers
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// Config holds the application configuration
type Config struct {
	AppPort           string        // Application port
	DBDriver          string        // Database driver: postgres, mysql or sqlite
	DBUser            string        // Database user
	DBPassword        string        // Database password
	DBHost            string        // Database host
	DBPort            string        // Database port
	DBName            string        // Database name (file path for sqlite)
	DBSSLMode         string        // Postgres sslmode
	DBAutoMigrate     bool          // Migrate and seed on server startup
	JWTSecret         string        // Session token signing key
	SessionTTL        time.Duration // Session lifetime
	RedisAddr         string        // Redis server address, empty disables Redis
	RedisPass         string        // Redis password
	RedisDB           int           // Redis database number
	MetricsPort       string        // Prometheus listener port, empty disables it
	IsProd            bool          // Is production environment
	SeedAdminPassword string        // Initial password of the admin account
	SeedUserPassword  string        // Initial password of the user account
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	ttl, err := time.ParseDuration(getEnv("SESSION_TTL", "30m"))
	if err != nil || ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Config{
		AppPort:           getEnv("APP_PORT", "8080"),
		DBDriver:          getEnv("DB_DRIVER", DriverPostgres),
		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", ""),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", "studentdb"),
		DBSSLMode:         getEnv("DB_SSLMODE", "disable"),
		DBAutoMigrate:     getEnv("DB_AUTO_MIGRATE", "true") == "true",
		JWTSecret:         getEnv("JWT_SECRET", ""),
		SessionTTL:        ttl,
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPass:         os.Getenv("REDIS_PASS"),
		RedisDB:           redisDB,
		MetricsPort:       os.Getenv("METRICS_PORT"),
		IsProd:            os.Getenv("IS_PROD") == "true",
		SeedAdminPassword: getEnv("SEED_ADMIN_PASSWORD", "admin123"),
		SeedUserPassword:  getEnv("SEED_USER_PASSWORD", "user123"),
	}
}

// Validate rejects configurations the server cannot run with
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverPostgres, DriverMySQL, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.JWTSecret == "" {
		if c.IsProd {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		c.JWTSecret = "dev-secret-change-me" // Development fallback only
	}
	return nil
}

// DSN builds the Data Source Name for the configured driver
func (c *Config) DSN() string {
	switch c.DBDriver {
	case DriverMySQL:
		return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
	case DriverSQLite:
		return c.DBName
	default:
		return "host=" + c.DBHost + " user=" + c.DBUser + " password=" + c.DBPassword +
			" dbname=" + c.DBName + " port=" + c.DBPort + " sslmode=" + c.DBSSLMode
	}
}

// getEnv retrieves an environment variable with a default fallback
func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
