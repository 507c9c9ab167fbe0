package repository

import (
	"github.com/edustack/edustack-backend/internal/domain"
	"gorm.io/gorm"
)

// VersionRepository data access for the topic version ledger.
// Versions are append-only: no update or delete methods exist, and a
// unique index on (topic_id, version) backstops the per-topic lock
// taken during assignment.
type VersionRepository interface {
	WithTx(tx *gorm.DB) VersionRepository
	Create(version *domain.TopicVersion) error
	ListByTopic(topicID uint64) ([]*domain.TopicVersion, error)
	FindByTopicAndVersion(topicID uint64, version uint) (*domain.TopicVersion, error)
	DeleteByTopic(topicID uint64) error
}

type versionRepository struct {
	db *gorm.DB
}

// NewVersionRepository creates a new VersionRepository
func NewVersionRepository(db *gorm.DB) VersionRepository {
	return &versionRepository{db: db}
}

func (r *versionRepository) WithTx(tx *gorm.DB) VersionRepository {
	return &versionRepository{db: tx}
}

func (r *versionRepository) Create(version *domain.TopicVersion) error {
	return r.db.Create(version).Error
}

func (r *versionRepository) ListByTopic(topicID uint64) ([]*domain.TopicVersion, error) {
	var versions []*domain.TopicVersion
	err := r.db.Where("topic_id = ?", topicID).Order("version DESC").Find(&versions).Error
	return versions, err
}

func (r *versionRepository) FindByTopicAndVersion(topicID uint64, version uint) (*domain.TopicVersion, error) {
	var v domain.TopicVersion
	err := r.db.Where("topic_id = ? AND version = ?", topicID, version).First(&v).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// DeleteByTopic cascades the ledger when its topic is hard-deleted.
// This is the only path that removes version rows.
func (r *versionRepository) DeleteByTopic(topicID uint64) error {
	return r.db.Where("topic_id = ?", topicID).Delete(&domain.TopicVersion{}).Error
}
