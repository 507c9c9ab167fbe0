package handler

import (
	"errors"
	"net/http"

	"github.com/edustack/edustack-backend/internal/common"
	"github.com/edustack/edustack-backend/internal/domain"
	"github.com/edustack/edustack-backend/internal/middleware"
	"github.com/edustack/edustack-backend/internal/repository"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// EnrollmentHandler handles subject enrollment endpoints
type EnrollmentHandler struct {
	enrollments repository.EnrollmentRepository
	subjects    repository.SubjectRepository
}

// NewEnrollmentHandler creates a new EnrollmentHandler
func NewEnrollmentHandler(enrollments repository.EnrollmentRepository, subjects repository.SubjectRepository) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments, subjects: subjects}
}

// Enroll handles POST /api/v1/subjects/:id/enroll
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	actor := middleware.GetActor(c)
	subjectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if _, err := h.subjects.FindByID(subjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.FailResponse(c, "Subject not found", common.ErrSubjectNotFound)
			return
		}
		common.FailResponse(c, "Failed to check subject", err)
		return
	}

	// The unique (user_id, subject_id) index decides duplicates, so
	// two racing enrollments cannot both succeed.
	enrollment := &domain.Enrollment{
		UserID:    actor.UserID,
		SubjectID: subjectID,
	}
	if err := h.enrollments.Create(enrollment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			common.ErrorResponse(c, http.StatusConflict, "Already enrolled", common.ErrConflict)
			return
		}
		common.FailResponse(c, "Failed to enroll", err)
		return
	}
	common.CreatedResponse(c, enrollment)
}

// Withdraw handles DELETE /api/v1/subjects/:id/enroll
func (h *EnrollmentHandler) Withdraw(c *gin.Context) {
	actor := middleware.GetActor(c)
	subjectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.enrollments.Delete(actor.UserID, subjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.FailResponse(c, "Enrollment not found", common.ErrNotFound)
			return
		}
		common.FailResponse(c, "Failed to withdraw", err)
		return
	}
	common.SuccessResponse(c, gin.H{"withdrawn": subjectID})
}

// ListEnrollments handles GET /api/v1/me/enrollments
func (h *EnrollmentHandler) ListEnrollments(c *gin.Context) {
	actor := middleware.GetActor(c)

	enrollments, err := h.enrollments.ListByUser(actor.UserID)
	if err != nil {
		common.FailResponse(c, "Failed to list enrollments", err)
		return
	}
	common.SuccessResponse(c, enrollments)
}
