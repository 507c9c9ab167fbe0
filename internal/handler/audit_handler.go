package handler

import (
	"strconv"

	"github.com/edustack/edustack-backend/internal/common"
	"github.com/edustack/edustack-backend/internal/repository"
	"github.com/edustack/edustack-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// AuditHandler handles the admin-only audit trail read endpoint
type AuditHandler struct {
	audit service.AuditService
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(audit service.AuditService) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// ListAuditLogs handles GET /api/v1/admin/audit-logs
func (h *AuditHandler) ListAuditLogs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	entityID, _ := strconv.ParseUint(c.Query("entity_id"), 10, 64)

	filter := repository.AuditFilter{
		EntityType: c.Query("entity_type"),
		EntityID:   entityID,
		ActorID:    c.Query("actor_id"),
		Action:     c.Query("action"),
	}

	entries, total, err := h.audit.List(filter, page, perPage)
	if err != nil {
		common.FailResponse(c, "Failed to list audit logs", err)
		return
	}
	common.SuccessWithMeta(c, entries, common.NewMeta(page, perPage, total))
}
