package repository

import (
	"github.com/edustack/edustack-backend/internal/domain"
	"gorm.io/gorm"
)

// AuditFilter narrows audit log listings
type AuditFilter struct {
	EntityType string
	EntityID   uint64
	ActorID    string
	Action     string
}

// AuditRepository append-only data access for audit log entries.
// There are deliberately no update or delete methods.
type AuditRepository interface {
	WithTx(tx *gorm.DB) AuditRepository
	Create(entry *domain.AuditLogEntry) error
	List(filter AuditFilter, page, perPage int) ([]*domain.AuditLogEntry, int64, error)
}

type auditRepository struct {
	db *gorm.DB
}

// NewAuditRepository creates a new AuditRepository
func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) WithTx(tx *gorm.DB) AuditRepository {
	return &auditRepository{db: tx}
}

func (r *auditRepository) Create(entry *domain.AuditLogEntry) error {
	return r.db.Create(entry).Error
}

func (r *auditRepository) List(filter AuditFilter, page, perPage int) ([]*domain.AuditLogEntry, int64, error) {
	var entries []*domain.AuditLogEntry
	var total int64

	query := r.db.Model(&domain.AuditLogEntry{})
	if filter.EntityType != "" {
		query = query.Where("entity_type = ?", filter.EntityType)
	}
	if filter.EntityID != 0 {
		query = query.Where("entity_id = ?", filter.EntityID)
	}
	if filter.ActorID != "" {
		query = query.Where("actor_id = ?", filter.ActorID)
	}
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC, id DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&entries).Error

	return entries, total, err
}
