package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/edustack/edustack-backend/internal/common"
	"github.com/edustack/edustack-backend/internal/domain"
	"github.com/edustack/edustack-backend/internal/middleware"
	"github.com/edustack/edustack-backend/internal/repository"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// BookmarkHandler handles topic bookmark endpoints
type BookmarkHandler struct {
	bookmarks repository.BookmarkRepository
	topics    repository.TopicRepository
}

// NewBookmarkHandler creates a new BookmarkHandler
func NewBookmarkHandler(bookmarks repository.BookmarkRepository, topics repository.TopicRepository) *BookmarkHandler {
	return &BookmarkHandler{bookmarks: bookmarks, topics: topics}
}

// AddBookmark handles POST /api/v1/topics/:id/bookmark
func (h *BookmarkHandler) AddBookmark(c *gin.Context) {
	actor := middleware.GetActor(c)
	topicID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if _, err := h.topics.FindByID(topicID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.FailResponse(c, "Topic not found", common.ErrTopicNotFound)
			return
		}
		common.FailResponse(c, "Failed to check topic", err)
		return
	}

	// The unique (user_id, topic_id) index decides duplicates, so
	// two racing adds cannot both succeed.
	bookmark := &domain.Bookmark{
		UserID:  actor.UserID,
		TopicID: topicID,
	}
	if err := h.bookmarks.Create(bookmark); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			common.ErrorResponse(c, http.StatusConflict, "Already bookmarked", common.ErrConflict)
			return
		}
		common.FailResponse(c, "Failed to add bookmark", err)
		return
	}
	common.CreatedResponse(c, bookmark)
}

// RemoveBookmark handles DELETE /api/v1/topics/:id/bookmark
func (h *BookmarkHandler) RemoveBookmark(c *gin.Context) {
	actor := middleware.GetActor(c)
	topicID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.bookmarks.Delete(actor.UserID, topicID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.FailResponse(c, "Bookmark not found", common.ErrNotFound)
			return
		}
		common.FailResponse(c, "Failed to remove bookmark", err)
		return
	}
	common.SuccessResponse(c, gin.H{"removed": topicID})
}

// ListBookmarks handles GET /api/v1/me/bookmarks
func (h *BookmarkHandler) ListBookmarks(c *gin.Context) {
	actor := middleware.GetActor(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	bookmarks, total, err := h.bookmarks.ListByUser(actor.UserID, page, perPage)
	if err != nil {
		common.FailResponse(c, "Failed to list bookmarks", err)
		return
	}
	common.SuccessWithMeta(c, bookmarks, common.NewMeta(page, perPage, total))
}
