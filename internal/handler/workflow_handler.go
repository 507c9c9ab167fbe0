package handler

import (
	"net/http"

	"github.com/edustack/edustack-backend/internal/common"
	"github.com/edustack/edustack-backend/internal/domain"
	"github.com/edustack/edustack-backend/internal/middleware"
	"github.com/edustack/edustack-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// WorkflowHandler handles review workflow transition endpoints
type WorkflowHandler struct {
	workflow service.WorkflowService
}

// NewWorkflowHandler creates a new WorkflowHandler
func NewWorkflowHandler(workflow service.WorkflowService) *WorkflowHandler {
	return &WorkflowHandler{workflow: workflow}
}

// SubmitForReview handles POST /api/v1/topics/:id/submit
func (h *WorkflowHandler) SubmitForReview(c *gin.Context) {
	h.transition(c, string(domain.ActionSubmitReview), func(actor domain.Actor, id uint64) (*domain.Topic, error) {
		return h.workflow.SubmitForReview(actor, id)
	})
}

// Approve handles POST /api/v1/topics/:id/approve
func (h *WorkflowHandler) Approve(c *gin.Context) {
	h.transition(c, string(domain.ActionApprove), func(actor domain.Actor, id uint64) (*domain.Topic, error) {
		return h.workflow.Approve(actor, id)
	})
}

// Publish handles POST /api/v1/topics/:id/publish
func (h *WorkflowHandler) Publish(c *gin.Context) {
	h.transition(c, string(domain.ActionPublish), func(actor domain.Actor, id uint64) (*domain.Topic, error) {
		return h.workflow.Publish(actor, id)
	})
}

// Reject handles POST /api/v1/topics/:id/reject
func (h *WorkflowHandler) Reject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req domain.RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	topic, err := h.workflow.Reject(middleware.GetActor(c), id, req.Reason)
	middleware.CountTransition(string(domain.ActionReject), err == nil)
	if err != nil {
		common.FailResponse(c, "Failed to reject topic", err)
		return
	}
	common.SuccessResponse(c, topic)
}

// Archive handles POST /api/v1/topics/:id/archive
func (h *WorkflowHandler) Archive(c *gin.Context) {
	h.transition(c, string(domain.ActionArchive), func(actor domain.Actor, id uint64) (*domain.Topic, error) {
		return h.workflow.Archive(actor, id)
	})
}

func (h *WorkflowHandler) transition(c *gin.Context, action string, fn func(domain.Actor, uint64) (*domain.Topic, error)) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	topic, err := fn(middleware.GetActor(c), id)
	middleware.CountTransition(action, err == nil)
	if err != nil {
		common.FailResponse(c, "Transition failed", err)
		return
	}
	common.SuccessResponse(c, topic)
}
