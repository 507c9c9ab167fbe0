package repository

import (
	"github.com/edustack/edustack-backend/internal/domain"
	"gorm.io/gorm"
)

// SubjectRepository data access for subjects
type SubjectRepository interface {
	WithTx(tx *gorm.DB) SubjectRepository
	Create(subject *domain.Subject) error
	FindByID(id uint64) (*domain.Subject, error)
	FindBySlug(slug string) (*domain.Subject, error)
	List(visibleOnly bool) ([]*domain.Subject, error)
	Save(subject *domain.Subject) error
	Delete(id uint64) error
	Exists(id uint64) (bool, error)
}

type subjectRepository struct {
	db *gorm.DB
}

// NewSubjectRepository creates a new SubjectRepository
func NewSubjectRepository(db *gorm.DB) SubjectRepository {
	return &subjectRepository{db: db}
}

func (r *subjectRepository) WithTx(tx *gorm.DB) SubjectRepository {
	return &subjectRepository{db: tx}
}

func (r *subjectRepository) Create(subject *domain.Subject) error {
	return r.db.Create(subject).Error
}

func (r *subjectRepository) FindByID(id uint64) (*domain.Subject, error) {
	var subject domain.Subject
	err := r.db.First(&subject, id).Error
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *subjectRepository) FindBySlug(slug string) (*domain.Subject, error) {
	var subject domain.Subject
	err := r.db.Where("slug = ?", slug).First(&subject).Error
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *subjectRepository) List(visibleOnly bool) ([]*domain.Subject, error) {
	var subjects []*domain.Subject
	query := r.db.Order("name ASC")
	if visibleOnly {
		query = query.Where("is_visible = ?", true)
	}
	err := query.Find(&subjects).Error
	return subjects, err
}

func (r *subjectRepository) Save(subject *domain.Subject) error {
	return r.db.Save(subject).Error
}

func (r *subjectRepository) Delete(id uint64) error {
	return r.db.Delete(&domain.Subject{}, id).Error
}

func (r *subjectRepository) Exists(id uint64) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Subject{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
