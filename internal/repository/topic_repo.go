package repository

import (
	"time"

	"github.com/edustack/edustack-backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TopicRepository data access for topics
type TopicRepository interface {
	WithTx(tx *gorm.DB) TopicRepository
	Create(topic *domain.Topic) error
	FindByID(id uint64) (*domain.Topic, error)
	FindByIDWithChapter(id uint64) (*domain.Topic, error)
	// FindByIDForUpdate locks the topic row for the duration of the
	// surrounding transaction. Version numbers are assigned under this
	// lock so concurrent updates cannot collide or skip.
	FindByIDForUpdate(id uint64) (*domain.Topic, error)
	FindByChapterAndSlug(chapterID uint64, slug string) (*domain.Topic, error)
	ListByChapter(chapterID uint64) ([]*domain.Topic, error)
	ListPublishedByChapter(chapterID uint64) ([]*domain.Topic, error)
	ListScheduledBefore(cutoff time.Time) ([]*domain.Topic, error)
	MaxOrderNum(chapterID uint64) (*uint, error)
	Save(topic *domain.Topic) error
	Delete(id uint64) error
	SetOrder(id uint64, order uint) error
}

type topicRepository struct {
	db *gorm.DB
}

// NewTopicRepository creates a new TopicRepository
func NewTopicRepository(db *gorm.DB) TopicRepository {
	return &topicRepository{db: db}
}

func (r *topicRepository) WithTx(tx *gorm.DB) TopicRepository {
	return &topicRepository{db: tx}
}

func (r *topicRepository) Create(topic *domain.Topic) error {
	return r.db.Create(topic).Error
}

func (r *topicRepository) FindByID(id uint64) (*domain.Topic, error) {
	var topic domain.Topic
	err := r.db.First(&topic, id).Error
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

func (r *topicRepository) FindByIDWithChapter(id uint64) (*domain.Topic, error) {
	var topic domain.Topic
	err := r.db.Preload("Chapter").First(&topic, id).Error
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

func (r *topicRepository) FindByIDForUpdate(id uint64) (*domain.Topic, error) {
	var topic domain.Topic
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&topic, id).Error
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

func (r *topicRepository) FindByChapterAndSlug(chapterID uint64, slug string) (*domain.Topic, error) {
	var topic domain.Topic
	err := r.db.Where("chapter_id = ? AND slug = ?", chapterID, slug).First(&topic).Error
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

func (r *topicRepository) ListByChapter(chapterID uint64) ([]*domain.Topic, error) {
	var topics []*domain.Topic
	err := r.db.Where("chapter_id = ?", chapterID).Order("order_num ASC").Find(&topics).Error
	return topics, err
}

func (r *topicRepository) ListPublishedByChapter(chapterID uint64) ([]*domain.Topic, error) {
	var topics []*domain.Topic
	err := r.db.
		Where("chapter_id = ? AND status = ? AND is_visible = ?", chapterID, domain.StatusPublished, true).
		Order("order_num ASC").
		Find(&topics).Error
	return topics, err
}

// ListScheduledBefore returns approved topics whose scheduled publish
// time has passed
func (r *topicRepository) ListScheduledBefore(cutoff time.Time) ([]*domain.Topic, error) {
	var topics []*domain.Topic
	err := r.db.
		Where("status = ? AND scheduled_at IS NOT NULL AND scheduled_at <= ?", domain.StatusApproved, cutoff).
		Find(&topics).Error
	return topics, err
}

func (r *topicRepository) MaxOrderNum(chapterID uint64) (*uint, error) {
	var max *uint
	err := r.db.Model(&domain.Topic{}).
		Where("chapter_id = ?", chapterID).
		Select("MAX(order_num)").
		Scan(&max).Error
	if err != nil {
		return nil, err
	}
	return max, nil
}

func (r *topicRepository) Save(topic *domain.Topic) error {
	return r.db.Save(topic).Error
}

func (r *topicRepository) Delete(id uint64) error {
	return r.db.Delete(&domain.Topic{}, id).Error
}

func (r *topicRepository) SetOrder(id uint64, order uint) error {
	return r.db.Model(&domain.Topic{}).Where("id = ?", id).Update("order_num", order).Error
}
