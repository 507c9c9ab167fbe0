package handler

import (
	"github.com/edustack/edustack-backend/internal/common"
	"github.com/edustack/edustack-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// ReaderHandler handles the public read-only API. Only published,
// visible content is reachable here.
type ReaderHandler struct {
	reader service.ReaderService
}

// NewReaderHandler creates a new ReaderHandler
func NewReaderHandler(reader service.ReaderService) *ReaderHandler {
	return &ReaderHandler{reader: reader}
}

// ListSubjects handles GET /api/v1/public/subjects
func (h *ReaderHandler) ListSubjects(c *gin.Context) {
	subjects, err := h.reader.ListSubjects()
	if err != nil {
		common.FailResponse(c, "Failed to list subjects", err)
		return
	}
	common.SuccessResponse(c, subjects)
}

// ListChapters handles GET /api/v1/public/subjects/:subject/chapters
func (h *ReaderHandler) ListChapters(c *gin.Context) {
	chapters, err := h.reader.ListChapters(c.Param("subject"))
	if err != nil {
		common.FailResponse(c, "Failed to list chapters", err)
		return
	}
	common.SuccessResponse(c, chapters)
}

// ListTopics handles GET /api/v1/public/subjects/:subject/chapters/:chapter/topics
func (h *ReaderHandler) ListTopics(c *gin.Context) {
	topics, err := h.reader.ListTopics(c.Param("subject"), c.Param("chapter"))
	if err != nil {
		common.FailResponse(c, "Failed to list topics", err)
		return
	}
	common.SuccessResponse(c, topics)
}

// GetTopic handles GET /api/v1/public/subjects/:subject/chapters/:chapter/topics/:topic
func (h *ReaderHandler) GetTopic(c *gin.Context) {
	topic, err := h.reader.GetTopic(c.Param("subject"), c.Param("chapter"), c.Param("topic"))
	if err != nil {
		common.FailResponse(c, "Failed to get topic", err)
		return
	}
	common.SuccessResponse(c, topic)
}
