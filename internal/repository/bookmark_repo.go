package repository

import (
	"github.com/edustack/edustack-backend/internal/domain"
	"gorm.io/gorm"
)

// BookmarkRepository data access for topic bookmarks
type BookmarkRepository interface {
	Create(bookmark *domain.Bookmark) error
	Delete(userID string, topicID uint64) error
	ListByUser(userID string, page, perPage int) ([]*domain.Bookmark, int64, error)
}

type bookmarkRepository struct {
	db *gorm.DB
}

// NewBookmarkRepository creates a new BookmarkRepository
func NewBookmarkRepository(db *gorm.DB) BookmarkRepository {
	return &bookmarkRepository{db: db}
}

func (r *bookmarkRepository) Create(bookmark *domain.Bookmark) error {
	return r.db.Create(bookmark).Error
}

func (r *bookmarkRepository) Delete(userID string, topicID uint64) error {
	result := r.db.Where("user_id = ? AND topic_id = ?", userID, topicID).Delete(&domain.Bookmark{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *bookmarkRepository) ListByUser(userID string, page, perPage int) ([]*domain.Bookmark, int64, error) {
	var bookmarks []*domain.Bookmark
	var total int64

	query := r.db.Model(&domain.Bookmark{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Preload("Topic").
		Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&bookmarks).Error

	return bookmarks, total, err
}
