package repository

import (
	"github.com/edustack/edustack-backend/internal/domain"
	"gorm.io/gorm"
)

// EnrollmentRepository data access for subject enrollments
type EnrollmentRepository interface {
	Create(enrollment *domain.Enrollment) error
	Delete(userID string, subjectID uint64) error
	ListByUser(userID string) ([]*domain.Enrollment, error)
}

type enrollmentRepository struct {
	db *gorm.DB
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) Create(enrollment *domain.Enrollment) error {
	return r.db.Create(enrollment).Error
}

func (r *enrollmentRepository) Delete(userID string, subjectID uint64) error {
	result := r.db.Where("user_id = ? AND subject_id = ?", userID, subjectID).Delete(&domain.Enrollment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *enrollmentRepository) ListByUser(userID string) ([]*domain.Enrollment, error) {
	var enrollments []*domain.Enrollment
	err := r.db.Preload("Subject").
		Where("user_id = ?", userID).
		Order("enrolled_at DESC").
		Find(&enrollments).Error
	return enrollments, err
}
