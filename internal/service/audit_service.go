package service

import (
	"encoding/json"
	"fmt"

	"github.com/edustack/edustack-backend/internal/domain"
	"github.com/edustack/edustack-backend/internal/repository"
	"gorm.io/gorm"
)

// AuditService is the append-only sink for content mutations. Record
// must be called with the transaction of the mutation it describes so
// that the entry commits or aborts together with the data change.
type AuditService interface {
	Record(tx *gorm.DB, action domain.AuditAction, entityType string, entityID uint64, entityName string, actor domain.Actor, changes interface{}) error
	List(filter repository.AuditFilter, page, perPage int) ([]*domain.AuditLogEntry, int64, error)
}

type auditService struct {
	repo repository.AuditRepository
}

// NewAuditService creates a new AuditService
func NewAuditService(repo repository.AuditRepository) AuditService {
	return &auditService{repo: repo}
}

// Record writes one audit entry through the given transaction. A nil
// changes payload is stored as NULL; anything else is marshalled to
// JSON. Failure to write the entry fails the caller's transaction.
func (s *auditService) Record(tx *gorm.DB, action domain.AuditAction, entityType string, entityID uint64, entityName string, actor domain.Actor, changes interface{}) error {
	entry := &domain.AuditLogEntry{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		EntityName: entityName,
		ActorID:    actor.UserID,
	}

	if changes != nil {
		data, err := json.Marshal(changes)
		if err != nil {
			return fmt.Errorf("marshal audit changes: %w", err)
		}
		payload := string(data)
		entry.Changes = &payload
	}

	return s.repo.WithTx(tx).Create(entry)
}

func (s *auditService) List(filter repository.AuditFilter, page, perPage int) ([]*domain.AuditLogEntry, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return s.repo.List(filter, page, perPage)
}
