package main

import (
	"context"                            // context package is needed for Redis operations
	"student_portal/internal/api"        // Custom package for HTTP handlers
	"student_portal/internal/config"     // Custom package for configuration
	"student_portal/internal/db"         // Custom package for database setup
	"student_portal/internal/metrics"    // Custom package for Prometheus metrics
	"student_portal/internal/repository" // Custom package for data access
	"student_portal/internal/service"    // Custom package for business logic

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}

	// Setup logger
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	// Connect to the database selected by DB_DRIVER
	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		logrus.Fatalf("failed to get DB handle: %v", err)
	}

	// Apply schema and seed accounts on startup, like the migrate command
	if cfg.DBAutoMigrate {
		if err := db.Migrate(gdb); err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := db.Seed(gdb, db.DefaultAccounts(cfg.SeedAdminPassword, cfg.SeedUserPassword)); err != nil {
			logrus.Fatalf("seeding failed: %v", err)
		}
	}

	// Setup Redis client when configured
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		// Test Redis connection
		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
	}

	// Metrics on their own listener
	if cfg.MetricsPort != "" {
		metrics.StartMetricsServer(cfg.MetricsPort)
		logrus.Info("Metrics served on " + cfg.MetricsPort)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	users := repository.NewUserRepository(gdb)
	students := service.NewStudentService(repository.NewStudentRepository(gdb), redisClient)

	r := api.NewRouter(api.Dependencies{
		Students: students,
		Users:    users,
		DB:       sqlDB,
		Redis:    redisClient,
		Session: api.SessionSettings{
			Secret: cfg.JWTSecret,
			TTL:    cfg.SessionTTL,
			Secure: cfg.IsProd, // HTTPS only cookies in production
		},
	})

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	logrus.Info("Server running on " + cfg.AppPort)
	if err := r.Run(":" + cfg.AppPort); err != nil {
		logrus.Fatalf("server stopped: %v", err)
	}
}
