package domain

import "time"

// Curriculum hierarchy: University > Campus > Department > Program >
// Semester > Subject. Everything above Subject is read-mostly
// reference data maintained by admins.

// University top of the curriculum hierarchy
type University struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Slug      string    `gorm:"column:slug;type:varchar(100);uniqueIndex" json:"slug"`
	Name      string    `gorm:"column:name;type:varchar(255)" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (University) TableName() string { return "universities" }

// Campus belongs to a University
type Campus struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UniversityID uint64    `gorm:"column:university_id;index" json:"university_id"`
	Slug         string    `gorm:"column:slug;type:varchar(100)" json:"slug"`
	Name         string    `gorm:"column:name;type:varchar(255)" json:"name"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Campus) TableName() string { return "campuses" }

// Department belongs to a Campus
type Department struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CampusID  uint64    `gorm:"column:campus_id;index" json:"campus_id"`
	Slug      string    `gorm:"column:slug;type:varchar(100)" json:"slug"`
	Name      string    `gorm:"column:name;type:varchar(255)" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Department) TableName() string { return "departments" }

// Program belongs to a Department
type Program struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	DepartmentID uint64    `gorm:"column:department_id;index" json:"department_id"`
	Slug         string    `gorm:"column:slug;type:varchar(100)" json:"slug"`
	Name         string    `gorm:"column:name;type:varchar(255)" json:"name"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Program) TableName() string { return "programs" }

// Semester belongs to a Program
type Semester struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ProgramID uint64    `gorm:"column:program_id;index" json:"program_id"`
	Slug      string    `gorm:"column:slug;type:varchar(100)" json:"slug"`
	Name      string    `gorm:"column:name;type:varchar(255)" json:"name"`
	OrderNum  uint      `gorm:"column:order_num;default:0" json:"order_num"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Semester) TableName() string { return "semesters" }

// Subject is the unit chapters hang off. Existence checks for chapter
// creation go through here.
type Subject struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	SemesterID  *uint64   `gorm:"column:semester_id;index" json:"semester_id,omitempty"`
	Slug        string    `gorm:"column:slug;type:varchar(100);uniqueIndex" json:"slug"`
	Name        string    `gorm:"column:name;type:varchar(255)" json:"name"`
	Description *string   `gorm:"column:description;type:text" json:"description,omitempty"`
	IsVisible   bool      `gorm:"column:is_visible;default:true" json:"is_visible"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Subject) TableName() string { return "subjects" }

// CreateSubjectRequest admin request to create a subject
type CreateSubjectRequest struct {
	Slug        string  `json:"slug" binding:"required,max=100"`
	Name        string  `json:"name" binding:"required,max=255"`
	Description *string `json:"description"`
	SemesterID  *uint64 `json:"semester_id"`
}

// UpdateSubjectRequest admin request to update a subject
type UpdateSubjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsVisible   *bool   `json:"is_visible"`
	SemesterID  *uint64 `json:"semester_id"`
}
