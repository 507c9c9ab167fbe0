package handler

import (
	"net/http"

	"github.com/edustack/edustack-backend/internal/common"
	"github.com/edustack/edustack-backend/internal/domain"
	"github.com/edustack/edustack-backend/internal/middleware"
	"github.com/edustack/edustack-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// TopicHandler handles topic management endpoints
type TopicHandler struct {
	content service.ContentService
}

// NewTopicHandler creates a new TopicHandler
func NewTopicHandler(content service.ContentService) *TopicHandler {
	return &TopicHandler{content: content}
}

// ListTopics handles GET /api/v1/chapters/:id/topics
func (h *TopicHandler) ListTopics(c *gin.Context) {
	chapterID, ok := parseID(c, "id")
	if !ok {
		return
	}

	topics, err := h.content.ListTopics(chapterID)
	if err != nil {
		common.FailResponse(c, "Failed to list topics", err)
		return
	}
	common.SuccessResponse(c, topics)
}

// CreateTopic handles POST /api/v1/chapters/:id/topics
func (h *TopicHandler) CreateTopic(c *gin.Context) {
	chapterID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req domain.CreateTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	topic, err := h.content.CreateTopic(middleware.GetActor(c), chapterID, &req)
	if err != nil {
		common.FailResponse(c, "Failed to create topic", err)
		return
	}
	common.CreatedResponse(c, topic)
}

// GetTopic handles GET /api/v1/topics/:id
func (h *TopicHandler) GetTopic(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	topic, err := h.content.GetTopic(id)
	if err != nil {
		common.FailResponse(c, "Failed to get topic", err)
		return
	}
	common.SuccessResponse(c, topic)
}

// UpdateTopic handles PUT /api/v1/topics/:id
func (h *TopicHandler) UpdateTopic(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req domain.UpdateTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	topic, err := h.content.UpdateTopic(middleware.GetActor(c), id, &req)
	if err != nil {
		common.FailResponse(c, "Failed to update topic", err)
		return
	}
	common.SuccessResponse(c, topic)
}

// DeleteTopic handles DELETE /api/v1/topics/:id
func (h *TopicHandler) DeleteTopic(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.content.DeleteTopic(middleware.GetActor(c), id); err != nil {
		common.FailResponse(c, "Failed to delete topic", err)
		return
	}
	common.SuccessResponse(c, gin.H{"deleted": id})
}

// ReorderTopics handles PUT /api/v1/chapters/:id/topics/reorder
func (h *TopicHandler) ReorderTopics(c *gin.Context) {
	chapterID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req domain.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.content.ReorderTopics(middleware.GetActor(c), chapterID, req.OrderedIDs); err != nil {
		common.FailResponse(c, "Failed to reorder topics", err)
		return
	}

	topics, err := h.content.ListTopics(chapterID)
	if err != nil {
		common.FailResponse(c, "Failed to list topics", err)
		return
	}
	common.SuccessResponse(c, topics)
}
