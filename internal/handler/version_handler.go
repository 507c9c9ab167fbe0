package handler

import (
	"net/http"
	"strconv"

	"github.com/edustack/edustack-backend/internal/common"
	"github.com/edustack/edustack-backend/internal/middleware"
	"github.com/edustack/edustack-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// VersionHandler handles topic version ledger endpoints
type VersionHandler struct {
	content service.ContentService
}

// NewVersionHandler creates a new VersionHandler
func NewVersionHandler(content service.ContentService) *VersionHandler {
	return &VersionHandler{content: content}
}

// ListVersions handles GET /api/v1/topics/:id/versions
func (h *VersionHandler) ListVersions(c *gin.Context) {
	topicID, ok := parseID(c, "id")
	if !ok {
		return
	}

	versions, err := h.content.ListVersions(topicID)
	if err != nil {
		common.FailResponse(c, "Failed to list versions", err)
		return
	}
	common.SuccessResponse(c, versions)
}

// GetVersion handles GET /api/v1/topics/:id/versions/:version
func (h *VersionHandler) GetVersion(c *gin.Context) {
	topicID, ok := parseID(c, "id")
	if !ok {
		return
	}

	version, err := strconv.ParseUint(c.Param("version"), 10, 32)
	if err != nil || version == 0 {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid version number", err)
		return
	}

	v, err := h.content.GetVersion(topicID, uint(version))
	if err != nil {
		common.FailResponse(c, "Failed to get version", err)
		return
	}
	common.SuccessResponse(c, v)
}

// RestoreVersion handles POST /api/v1/topics/:id/versions/:version/restore
func (h *VersionHandler) RestoreVersion(c *gin.Context) {
	topicID, ok := parseID(c, "id")
	if !ok {
		return
	}

	version, err := strconv.ParseUint(c.Param("version"), 10, 32)
	if err != nil || version == 0 {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid version number", err)
		return
	}

	topic, err := h.content.RestoreVersion(middleware.GetActor(c), topicID, uint(version))
	if err != nil {
		common.FailResponse(c, "Failed to restore version", err)
		return
	}
	common.SuccessResponse(c, topic)
}
