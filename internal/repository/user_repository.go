package repository

import (
	"context"
	"errors"
	"student_portal/internal/domain"

	"gorm.io/gorm"
)

// UserRepository reads the static accounts with their roles preloaded
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository wraps db
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByID loads a user with roles, or domain.ErrNotFound
func (r *UserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Preload("Roles").First(&user, id).Error
	return found(&user, err)
}

// FindByUsername loads a user with roles by login name, or domain.ErrNotFound
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Preload("Roles").Where("username = ?", username).First(&user).Error
	return found(&user, err)
}

// found maps gorm.ErrRecordNotFound to domain.ErrNotFound
func found(user *domain.User, err error) (*domain.User, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
