package main

import (
	"student_portal/internal/config" // Custom import path (Config)
	"student_portal/internal/db"     // Custom import path (Database)

	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("%v", err)
	}
	// Seed the static admin and user accounts
	if err := db.Seed(gdb, db.DefaultAccounts(cfg.SeedAdminPassword, cfg.SeedUserPassword)); err != nil {
		logrus.Fatalf("seeding failed: %v", err)
	}
}
