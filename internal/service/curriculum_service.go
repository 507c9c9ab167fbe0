package service

import (
	"errors"

	"github.com/edustack/edustack-backend/internal/common"
	"github.com/edustack/edustack-backend/internal/domain"
	"github.com/edustack/edustack-backend/internal/repository"
	"gorm.io/gorm"
)

// CurriculumService read access to the curriculum hierarchy plus
// admin-only subject management
type CurriculumService interface {
	ListUniversities() ([]*domain.University, error)
	ListCampuses(universityID uint64) ([]*domain.Campus, error)
	ListDepartments(campusID uint64) ([]*domain.Department, error)
	ListPrograms(departmentID uint64) ([]*domain.Program, error)
	ListSemesters(programID uint64) ([]*domain.Semester, error)

	ListSubjects(visibleOnly bool) ([]*domain.Subject, error)
	GetSubject(slug string) (*domain.Subject, error)
	CreateSubject(actor domain.Actor, req *domain.CreateSubjectRequest) (*domain.Subject, error)
	UpdateSubject(actor domain.Actor, id uint64, req *domain.UpdateSubjectRequest) (*domain.Subject, error)
	DeleteSubject(actor domain.Actor, id uint64) error
}

type curriculumService struct {
	db        TxRunner
	hierarchy repository.CurriculumRepository
	subjects  repository.SubjectRepository
	audit     AuditService
}

// NewCurriculumService creates a new CurriculumService
func NewCurriculumService(db TxRunner, hierarchy repository.CurriculumRepository, subjects repository.SubjectRepository, audit AuditService) CurriculumService {
	return &curriculumService{db: db, hierarchy: hierarchy, subjects: subjects, audit: audit}
}

func (s *curriculumService) ListUniversities() ([]*domain.University, error) {
	return s.hierarchy.ListUniversities()
}

func (s *curriculumService) ListCampuses(universityID uint64) ([]*domain.Campus, error) {
	return s.hierarchy.ListCampuses(universityID)
}

func (s *curriculumService) ListDepartments(campusID uint64) ([]*domain.Department, error) {
	return s.hierarchy.ListDepartments(campusID)
}

func (s *curriculumService) ListPrograms(departmentID uint64) ([]*domain.Program, error) {
	return s.hierarchy.ListPrograms(departmentID)
}

func (s *curriculumService) ListSemesters(programID uint64) ([]*domain.Semester, error) {
	return s.hierarchy.ListSemesters(programID)
}

func (s *curriculumService) ListSubjects(visibleOnly bool) ([]*domain.Subject, error) {
	return s.subjects.List(visibleOnly)
}

func (s *curriculumService) GetSubject(slug string) (*domain.Subject, error) {
	subject, err := s.subjects.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrSubjectNotFound
		}
		return nil, err
	}
	return subject, nil
}

func (s *curriculumService) CreateSubject(actor domain.Actor, req *domain.CreateSubjectRequest) (*domain.Subject, error) {
	if !actor.AtLeast(domain.RoleAdmin) {
		return nil, common.ErrForbidden
	}

	var subject *domain.Subject
	err := s.db.Transaction(func(tx *gorm.DB) error {
		subjects := s.subjects.WithTx(tx)

		if _, err := subjects.FindBySlug(req.Slug); err == nil {
			return common.ErrSlugTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		subject = &domain.Subject{
			Slug:        req.Slug,
			Name:        req.Name,
			Description: req.Description,
			SemesterID:  req.SemesterID,
			IsVisible:   true,
		}
		if err := subjects.Create(subject); err != nil {
			return err
		}

		return s.audit.Record(tx, domain.AuditCreate, domain.EntitySubject, subject.ID, subject.Name, actor, nil)
	})
	if err != nil {
		return nil, err
	}
	return subject, nil
}

func (s *curriculumService) UpdateSubject(actor domain.Actor, id uint64, req *domain.UpdateSubjectRequest) (*domain.Subject, error) {
	if !actor.AtLeast(domain.RoleAdmin) {
		return nil, common.ErrForbidden
	}

	var subject *domain.Subject
	err := s.db.Transaction(func(tx *gorm.DB) error {
		subjects := s.subjects.WithTx(tx)

		existing, err := subjects.FindByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.ErrSubjectNotFound
			}
			return err
		}

		if req.Name != nil {
			existing.Name = *req.Name
		}
		if req.Description != nil {
			existing.Description = req.Description
		}
		if req.IsVisible != nil {
			existing.IsVisible = *req.IsVisible
		}
		if req.SemesterID != nil {
			existing.SemesterID = req.SemesterID
		}

		if err := subjects.Save(existing); err != nil {
			return err
		}
		subject = existing

		return s.audit.Record(tx, domain.AuditUpdate, domain.EntitySubject, existing.ID, existing.Name, actor, nil)
	})
	if err != nil {
		return nil, err
	}
	return subject, nil
}

// DeleteSubject removes a subject only; chapters must be deleted first
// through the content API so their ledgers cascade properly
func (s *curriculumService) DeleteSubject(actor domain.Actor, id uint64) error {
	if !actor.AtLeast(domain.RoleAdmin) {
		return common.ErrForbidden
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		subjects := s.subjects.WithTx(tx)

		subject, err := subjects.FindByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.ErrSubjectNotFound
			}
			return err
		}

		if err := subjects.Delete(id); err != nil {
			return err
		}

		return s.audit.Record(tx, domain.AuditDelete, domain.EntitySubject, subject.ID, subject.Name, actor, nil)
	})
}
