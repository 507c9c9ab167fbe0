package repository

import (
	"github.com/edustack/edustack-backend/internal/domain"
	"gorm.io/gorm"
)

// ChapterRepository data access for chapters
type ChapterRepository interface {
	WithTx(tx *gorm.DB) ChapterRepository
	Create(chapter *domain.Chapter) error
	FindByID(id uint64) (*domain.Chapter, error)
	FindBySubjectAndSlug(subjectID uint64, slug string) (*domain.Chapter, error)
	ListBySubject(subjectID uint64) ([]*domain.Chapter, error)
	ListPublishedBySubject(subjectID uint64) ([]*domain.Chapter, error)
	MaxOrderNum(subjectID uint64) (*uint, error)
	Save(chapter *domain.Chapter) error
	Delete(id uint64) error
	SetOrder(id uint64, order uint) error
}

type chapterRepository struct {
	db *gorm.DB
}

// NewChapterRepository creates a new ChapterRepository
func NewChapterRepository(db *gorm.DB) ChapterRepository {
	return &chapterRepository{db: db}
}

func (r *chapterRepository) WithTx(tx *gorm.DB) ChapterRepository {
	return &chapterRepository{db: tx}
}

func (r *chapterRepository) Create(chapter *domain.Chapter) error {
	return r.db.Create(chapter).Error
}

func (r *chapterRepository) FindByID(id uint64) (*domain.Chapter, error) {
	var chapter domain.Chapter
	err := r.db.First(&chapter, id).Error
	if err != nil {
		return nil, err
	}
	return &chapter, nil
}

func (r *chapterRepository) FindBySubjectAndSlug(subjectID uint64, slug string) (*domain.Chapter, error) {
	var chapter domain.Chapter
	err := r.db.Where("subject_id = ? AND slug = ?", subjectID, slug).First(&chapter).Error
	if err != nil {
		return nil, err
	}
	return &chapter, nil
}

func (r *chapterRepository) ListBySubject(subjectID uint64) ([]*domain.Chapter, error) {
	var chapters []*domain.Chapter
	err := r.db.Where("subject_id = ?", subjectID).Order("order_num ASC").Find(&chapters).Error
	return chapters, err
}

func (r *chapterRepository) ListPublishedBySubject(subjectID uint64) ([]*domain.Chapter, error) {
	var chapters []*domain.Chapter
	err := r.db.
		Where("subject_id = ? AND status = ? AND is_visible = ?", subjectID, domain.StatusPublished, true).
		Order("order_num ASC").
		Find(&chapters).Error
	return chapters, err
}

// MaxOrderNum returns the highest order among a subject's chapters,
// or nil when the subject has none
func (r *chapterRepository) MaxOrderNum(subjectID uint64) (*uint, error) {
	var max *uint
	err := r.db.Model(&domain.Chapter{}).
		Where("subject_id = ?", subjectID).
		Select("MAX(order_num)").
		Scan(&max).Error
	if err != nil {
		return nil, err
	}
	return max, nil
}

func (r *chapterRepository) Save(chapter *domain.Chapter) error {
	return r.db.Save(chapter).Error
}

func (r *chapterRepository) Delete(id uint64) error {
	return r.db.Delete(&domain.Chapter{}, id).Error
}

func (r *chapterRepository) SetOrder(id uint64, order uint) error {
	return r.db.Model(&domain.Chapter{}).Where("id = ?", id).Update("order_num", order).Error
}
