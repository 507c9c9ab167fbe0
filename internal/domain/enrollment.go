package domain

import "time"

// Enrollment records a user taking a subject
type Enrollment struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID     string    `gorm:"column:user_id;type:varchar(50);index:idx_enrollments_user_subject,unique" json:"user_id"`
	SubjectID  uint64    `gorm:"column:subject_id;index:idx_enrollments_user_subject,unique" json:"subject_id"`
	Subject    *Subject  `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
	EnrolledAt time.Time `gorm:"column:enrolled_at;autoCreateTime" json:"enrolled_at"`
}

func (Enrollment) TableName() string { return "enrollments" }
