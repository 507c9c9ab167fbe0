package handler

import (
	"net/http"
	"strconv"

	"github.com/edustack/edustack-backend/internal/common"
	"github.com/edustack/edustack-backend/internal/domain"
	"github.com/edustack/edustack-backend/internal/middleware"
	"github.com/edustack/edustack-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// ChapterHandler handles chapter management endpoints
type ChapterHandler struct {
	content service.ContentService
}

// NewChapterHandler creates a new ChapterHandler
func NewChapterHandler(content service.ContentService) *ChapterHandler {
	return &ChapterHandler{content: content}
}

func parseID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid "+name, err)
		return 0, false
	}
	return id, true
}

// ListChapters handles GET /api/v1/subjects/:id/chapters
func (h *ChapterHandler) ListChapters(c *gin.Context) {
	subjectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	chapters, err := h.content.ListChapters(subjectID)
	if err != nil {
		common.FailResponse(c, "Failed to list chapters", err)
		return
	}
	common.SuccessResponse(c, chapters)
}

// CreateChapter handles POST /api/v1/subjects/:id/chapters
func (h *ChapterHandler) CreateChapter(c *gin.Context) {
	subjectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req domain.CreateChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	chapter, err := h.content.CreateChapter(middleware.GetActor(c), subjectID, &req)
	if err != nil {
		common.FailResponse(c, "Failed to create chapter", err)
		return
	}
	common.CreatedResponse(c, chapter)
}

// UpdateChapter handles PUT /api/v1/chapters/:id
func (h *ChapterHandler) UpdateChapter(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req domain.UpdateChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	chapter, err := h.content.UpdateChapter(middleware.GetActor(c), id, &req)
	if err != nil {
		common.FailResponse(c, "Failed to update chapter", err)
		return
	}
	common.SuccessResponse(c, chapter)
}

// DeleteChapter handles DELETE /api/v1/chapters/:id
func (h *ChapterHandler) DeleteChapter(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.content.DeleteChapter(middleware.GetActor(c), id); err != nil {
		common.FailResponse(c, "Failed to delete chapter", err)
		return
	}
	common.SuccessResponse(c, gin.H{"deleted": id})
}

// ReorderChapters handles PUT /api/v1/subjects/:id/chapters/reorder
func (h *ChapterHandler) ReorderChapters(c *gin.Context) {
	subjectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req domain.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.content.ReorderChapters(middleware.GetActor(c), subjectID, req.OrderedIDs); err != nil {
		common.FailResponse(c, "Failed to reorder chapters", err)
		return
	}

	chapters, err := h.content.ListChapters(subjectID)
	if err != nil {
		common.FailResponse(c, "Failed to list chapters", err)
		return
	}
	common.SuccessResponse(c, chapters)
}
