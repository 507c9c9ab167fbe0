package handler

import (
	"net/http"

	"github.com/edustack/edustack-backend/internal/common"
	"github.com/edustack/edustack-backend/internal/domain"
	"github.com/edustack/edustack-backend/internal/middleware"
	"github.com/edustack/edustack-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// CurriculumHandler handles curriculum hierarchy and subject endpoints
type CurriculumHandler struct {
	curriculum service.CurriculumService
}

// NewCurriculumHandler creates a new CurriculumHandler
func NewCurriculumHandler(curriculum service.CurriculumService) *CurriculumHandler {
	return &CurriculumHandler{curriculum: curriculum}
}

// ListUniversities handles GET /api/v1/universities
func (h *CurriculumHandler) ListUniversities(c *gin.Context) {
	universities, err := h.curriculum.ListUniversities()
	if err != nil {
		common.FailResponse(c, "Failed to list universities", err)
		return
	}
	common.SuccessResponse(c, universities)
}

// ListCampuses handles GET /api/v1/universities/:id/campuses
func (h *CurriculumHandler) ListCampuses(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	campuses, err := h.curriculum.ListCampuses(id)
	if err != nil {
		common.FailResponse(c, "Failed to list campuses", err)
		return
	}
	common.SuccessResponse(c, campuses)
}

// ListDepartments handles GET /api/v1/campuses/:id/departments
func (h *CurriculumHandler) ListDepartments(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	departments, err := h.curriculum.ListDepartments(id)
	if err != nil {
		common.FailResponse(c, "Failed to list departments", err)
		return
	}
	common.SuccessResponse(c, departments)
}

// ListPrograms handles GET /api/v1/departments/:id/programs
func (h *CurriculumHandler) ListPrograms(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	programs, err := h.curriculum.ListPrograms(id)
	if err != nil {
		common.FailResponse(c, "Failed to list programs", err)
		return
	}
	common.SuccessResponse(c, programs)
}

// ListSemesters handles GET /api/v1/programs/:id/semesters
func (h *CurriculumHandler) ListSemesters(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	semesters, err := h.curriculum.ListSemesters(id)
	if err != nil {
		common.FailResponse(c, "Failed to list semesters", err)
		return
	}
	common.SuccessResponse(c, semesters)
}

// ListSubjects handles GET /api/v1/subjects
func (h *CurriculumHandler) ListSubjects(c *gin.Context) {
	// Contributors and above see hidden subjects as well
	visibleOnly := !middleware.GetActor(c).AtLeast(domain.RoleContributor)

	subjects, err := h.curriculum.ListSubjects(visibleOnly)
	if err != nil {
		common.FailResponse(c, "Failed to list subjects", err)
		return
	}
	common.SuccessResponse(c, subjects)
}

// GetSubject handles GET /api/v1/subjects/slug/:slug
func (h *CurriculumHandler) GetSubject(c *gin.Context) {
	subject, err := h.curriculum.GetSubject(c.Param("slug"))
	if err != nil {
		common.FailResponse(c, "Failed to get subject", err)
		return
	}
	common.SuccessResponse(c, subject)
}

// CreateSubject handles POST /api/v1/admin/subjects
func (h *CurriculumHandler) CreateSubject(c *gin.Context) {
	var req domain.CreateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	subject, err := h.curriculum.CreateSubject(middleware.GetActor(c), &req)
	if err != nil {
		common.FailResponse(c, "Failed to create subject", err)
		return
	}
	common.CreatedResponse(c, subject)
}

// UpdateSubject handles PUT /api/v1/admin/subjects/:id
func (h *CurriculumHandler) UpdateSubject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req domain.UpdateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	subject, err := h.curriculum.UpdateSubject(middleware.GetActor(c), id, &req)
	if err != nil {
		common.FailResponse(c, "Failed to update subject", err)
		return
	}
	common.SuccessResponse(c, subject)
}

// DeleteSubject handles DELETE /api/v1/admin/subjects/:id
func (h *CurriculumHandler) DeleteSubject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.curriculum.DeleteSubject(middleware.GetActor(c), id); err != nil {
		common.FailResponse(c, "Failed to delete subject", err)
		return
	}
	common.SuccessResponse(c, gin.H{"deleted": id})
}
