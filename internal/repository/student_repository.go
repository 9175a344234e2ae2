package repository

import (
	"context"
	"errors"
	"student_portal/internal/domain"

	"gorm.io/gorm"
)

// StudentRepository stores students through GORM
type StudentRepository struct {
	db *gorm.DB
}

// NewStudentRepository wraps db
func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// FindAll returns every student in storage order
func (r *StudentRepository) FindAll(ctx context.Context) ([]domain.Student, error) {
	students := []domain.Student{}
	if err := r.db.WithContext(ctx).Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

// FindByID loads one student, or domain.ErrNotFound
func (r *StudentRepository) FindByID(ctx context.Context, id uint) (*domain.Student, error) {
	var student domain.Student
	err := r.db.WithContext(ctx).First(&student, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// Create inserts the student and fills in its generated ID
func (r *StudentRepository) Create(ctx context.Context, student *domain.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

// DeleteByID removes the student; unknown ids are not an error
func (r *StudentRepository) DeleteByID(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.Student{}, id).Error
}
