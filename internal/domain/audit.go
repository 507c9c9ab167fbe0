package domain

import "time"

// AuditAction tags what happened to an entity
type AuditAction string

const (
	AuditCreate       AuditAction = "CREATE"
	AuditUpdate       AuditAction = "UPDATE"
	AuditDelete       AuditAction = "DELETE"
	AuditSubmitReview AuditAction = "SUBMIT_REVIEW"
	AuditApprove      AuditAction = "APPROVE"
	AuditPublish      AuditAction = "PUBLISH"
	AuditReject       AuditAction = "REJECT"
	AuditArchive      AuditAction = "ARCHIVE"
	AuditRestore      AuditAction = "RESTORE"
)

// AuditLogEntry append-only record of a content mutation. Rows are
// written in the same transaction as the mutation they describe and
// are never updated or deleted by this service.
type AuditLogEntry struct {
	ID         uint64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Action     AuditAction `gorm:"column:action;type:varchar(20);index" json:"action"`
	EntityType string      `gorm:"column:entity_type;type:varchar(30);index:idx_audit_entity" json:"entity_type"`
	EntityID   uint64      `gorm:"column:entity_id;index:idx_audit_entity" json:"entity_id"`
	EntityName string      `gorm:"column:entity_name;type:varchar(255)" json:"entity_name"`
	ActorID    string      `gorm:"column:actor_id;type:varchar(50);index" json:"actor_id"`
	Changes    *string     `gorm:"column:changes;type:json" json:"changes,omitempty"`
	CreatedAt  time.Time   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (AuditLogEntry) TableName() string { return "audit_logs" }

// Audited entity types
const (
	EntitySubject = "subject"
	EntityChapter = "chapter"
	EntityTopic   = "topic"
)
