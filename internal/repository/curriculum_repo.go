package repository

import (
	"github.com/edustack/edustack-backend/internal/domain"
	"gorm.io/gorm"
)

// CurriculumRepository read access to the hierarchy above subjects
type CurriculumRepository interface {
	ListUniversities() ([]*domain.University, error)
	ListCampuses(universityID uint64) ([]*domain.Campus, error)
	ListDepartments(campusID uint64) ([]*domain.Department, error)
	ListPrograms(departmentID uint64) ([]*domain.Program, error)
	ListSemesters(programID uint64) ([]*domain.Semester, error)
}

type curriculumRepository struct {
	db *gorm.DB
}

// NewCurriculumRepository creates a new CurriculumRepository
func NewCurriculumRepository(db *gorm.DB) CurriculumRepository {
	return &curriculumRepository{db: db}
}

func (r *curriculumRepository) ListUniversities() ([]*domain.University, error) {
	var universities []*domain.University
	err := r.db.Order("name ASC").Find(&universities).Error
	return universities, err
}

func (r *curriculumRepository) ListCampuses(universityID uint64) ([]*domain.Campus, error) {
	var campuses []*domain.Campus
	err := r.db.Where("university_id = ?", universityID).Order("name ASC").Find(&campuses).Error
	return campuses, err
}

func (r *curriculumRepository) ListDepartments(campusID uint64) ([]*domain.Department, error) {
	var departments []*domain.Department
	err := r.db.Where("campus_id = ?", campusID).Order("name ASC").Find(&departments).Error
	return departments, err
}

func (r *curriculumRepository) ListPrograms(departmentID uint64) ([]*domain.Program, error) {
	var programs []*domain.Program
	err := r.db.Where("department_id = ?", departmentID).Order("name ASC").Find(&programs).Error
	return programs, err
}

func (r *curriculumRepository) ListSemesters(programID uint64) ([]*domain.Semester, error) {
	var semesters []*domain.Semester
	err := r.db.Where("program_id = ?", programID).Order("order_num ASC").Find(&semesters).Error
	return semesters, err
}
