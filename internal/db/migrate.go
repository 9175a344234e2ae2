package db

import (
	"fmt"                            // Error formatting
	"student_portal/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Logrus for structured logging
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// Migrate creates or updates the students, users and user_roles tables
func Migrate(db *gorm.DB) error {
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	if err := db.AutoMigrate(&domain.Student{}, &domain.User{}, &domain.UserRole{}); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logrus.Info("Migration completed.")
	return nil
}

// SeedAccount describes one of the static accounts
type SeedAccount struct {
	Username string
	Password string // Plain text, hashed before insert
	Role     domain.Role
}

// DefaultAccounts returns the admin and user seed accounts
func DefaultAccounts(adminPassword, userPassword string) []SeedAccount {
	return []SeedAccount{
		{Username: "admin", Password: adminPassword, Role: domain.RoleAdmin},
		{Username: "user", Password: userPassword, Role: domain.RoleUser},
	}
}

// Seed inserts the given accounts unless a user with that username exists
func Seed(db *gorm.DB, accounts []SeedAccount) error {
	for _, acc := range accounts {
		if !acc.Role.Valid() {
			return fmt.Errorf("seed %s: %w: unknown role %q", acc.Username, domain.ErrInvalidArgument, acc.Role)
		}
		var existing domain.User
		res := db.Where("username = ?", acc.Username).Limit(1).Find(&existing)
		if res.Error != nil {
			return fmt.Errorf("seed %s: %w", acc.Username, res.Error)
		}
		if res.RowsAffected > 0 {
			continue // Already seeded
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(acc.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("seed %s: hash password: %w", acc.Username, err)
		}
		user := domain.User{
			Username: acc.Username,
			Password: string(hash),
			Enabled:  true,
			Roles:    []domain.UserRole{{Role: acc.Role}},
		}
		// Creates the user and its role rows in one transaction
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("seed %s: %w", acc.Username, err)
		}
		logrus.WithFields(logrus.Fields{
			"username": acc.Username,
			"role":     acc.Role,
		}).Info("Seeded account")
	}
	return nil
}
