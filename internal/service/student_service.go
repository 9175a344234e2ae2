package service

import (
	"context"                         // Context for repository and Redis calls
	"strconv"                         // Generation suffix
	"student_portal/internal/domain"  // Importing domain models
	"student_portal/internal/metrics" // Business counters
	"student_portal/internal/utils"   // Cache helpers
	"time"                            // Cache TTL

	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

const (
	studentsCacheKey = "students:all"   // Prefix of the cached full list, suffixed by generation
	studentsGenKey   = "students:gen"   // Bumped by every write
	studentsCacheTTL = 60 * time.Second // Same TTL as the other cached reads
)

// StudentStore is the persistence the service delegates to
type StudentStore interface {
	FindAll(ctx context.Context) ([]domain.Student, error)
	FindByID(ctx context.Context, id uint) (*domain.Student, error)
	Create(ctx context.Context, student *domain.Student) error
	DeleteByID(ctx context.Context, id uint) error
}

// StudentService lists, creates and deletes students
type StudentService struct {
	repo StudentStore
	rdb  *redis.Client // Optional list cache, nil disables it
}

// NewStudentService builds the service; rdb may be nil
func NewStudentService(repo StudentStore, rdb *redis.Client) *StudentService {
	return &StudentService{repo: repo, rdb: rdb}
}

// GetAllStudents returns every student, served from Redis when cached.
// Entries are keyed by the write generation read before querying, so a list
// loaded concurrently with a write is stored under a generation no later
// reader asks for.
func (s *StudentService) GetAllStudents(ctx context.Context) ([]domain.Student, error) {
	var cacheKey string
	if s.rdb != nil {
		gen, err := utils.CacheGeneration(ctx, s.rdb, studentsGenKey)
		if err != nil {
			logrus.WithError(err).Warn("Student cache read failed")
		} else {
			cacheKey = studentsCacheKey + ":" + strconv.FormatInt(gen, 10)
			var cached []domain.Student
			found, err := utils.GetCache(ctx, s.rdb, cacheKey, &cached)
			if err == nil && found {
				return cached, nil
			}
			if err != nil {
				logrus.WithError(err).Warn("Student cache read failed")
			}
		}
	}
	students, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if cacheKey != "" {
		if err := utils.SetCache(ctx, s.rdb, cacheKey, students, studentsCacheTTL); err != nil {
			logrus.WithError(err).Warn("Student cache write failed")
		}
	}
	return students, nil
}

// GetStudentByID returns a single student or domain.ErrNotFound
func (s *StudentService) GetStudentByID(ctx context.Context, id uint) (*domain.Student, error) {
	return s.repo.FindByID(ctx, id)
}

// SaveStudent inserts the form as a new student; fields are not validated
func (s *StudentService) SaveStudent(ctx context.Context, form domain.StudentForm) (*domain.Student, error) {
	student := form.ToStudent()
	if err := s.repo.Create(ctx, &student); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	metrics.StudentsCreated.Inc()
	logrus.WithFields(logrus.Fields{
		"student_id": student.ID,
		"roll":       student.Roll,
	}).Info("Student created")
	return &student, nil
}

// DeleteStudent removes the student if present; a missing id is a no-op
func (s *StudentService) DeleteStudent(ctx context.Context, id uint) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	metrics.StudentsDeleted.Inc()
	logrus.WithField("student_id", id).Info("Student deleted")
	return nil
}

// invalidate moves readers to a fresh generation
func (s *StudentService) invalidate(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := utils.BumpGeneration(ctx, s.rdb, studentsGenKey); err != nil {
		logrus.WithError(err).Warn("Student cache invalidation failed")
	}
}
