package service

import (
	"context"
	"errors"
	"time"

	"github.com/edustack/edustack-backend/internal/common"
	"github.com/edustack/edustack-backend/internal/domain"
	"github.com/edustack/edustack-backend/internal/repository"
	"github.com/edustack/edustack-backend/pkg/cache"
	"github.com/edustack/edustack-backend/pkg/logger"
	"gorm.io/gorm"
)

// schedulerActor stamps audit entries written by the scheduled
// publication job
var schedulerActor = domain.Actor{UserID: "system:scheduler", Nickname: "scheduler", Level: domain.RoleAdmin}

// WorkflowService drives the review state machine over topic status.
// Contributors may submit their drafts for review; promoting,
// rejecting or archiving takes manager role. That asymmetry is the
// separation of duties the workflow exists to enforce.
type WorkflowService interface {
	SubmitForReview(actor domain.Actor, topicID uint64) (*domain.Topic, error)
	Approve(actor domain.Actor, topicID uint64) (*domain.Topic, error)
	Publish(actor domain.Actor, topicID uint64) (*domain.Topic, error)
	Reject(actor domain.Actor, topicID uint64, reason string) (*domain.Topic, error)
	Archive(actor domain.Actor, topicID uint64) (*domain.Topic, error)

	// PublishScheduled promotes approved topics whose scheduled
	// publish time has passed. Called by the scheduler loop.
	PublishScheduled(ctx context.Context) (int, error)
}

type workflowService struct {
	db     TxRunner
	topics repository.TopicRepository
	audit  AuditService
	cache  cache.Service
}

// NewWorkflowService creates a new WorkflowService
func NewWorkflowService(db TxRunner, topics repository.TopicRepository, audit AuditService, cacheService cache.Service) WorkflowService {
	return &workflowService{db: db, topics: topics, audit: audit, cache: cacheService}
}

func (s *workflowService) SubmitForReview(actor domain.Actor, topicID uint64) (*domain.Topic, error) {
	if !actor.AtLeast(domain.RoleContributor) {
		return nil, common.ErrForbidden
	}
	return s.transition(actor, topicID, domain.ActionSubmitReview, domain.AuditSubmitReview, nil)
}

func (s *workflowService) Approve(actor domain.Actor, topicID uint64) (*domain.Topic, error) {
	if !actor.AtLeast(domain.RoleManager) {
		return nil, common.ErrForbidden
	}
	return s.transition(actor, topicID, domain.ActionApprove, domain.AuditApprove, nil)
}

func (s *workflowService) Publish(actor domain.Actor, topicID uint64) (*domain.Topic, error) {
	if !actor.AtLeast(domain.RoleManager) {
		return nil, common.ErrForbidden
	}
	return s.transition(actor, topicID, domain.ActionPublish, domain.AuditPublish, nil)
}

// Reject sends a topic back to draft. The reason lives in the audit
// payload only, never on the entity.
func (s *workflowService) Reject(actor domain.Actor, topicID uint64, reason string) (*domain.Topic, error) {
	if !actor.AtLeast(domain.RoleManager) {
		return nil, common.ErrForbidden
	}
	var changes map[string]interface{}
	if reason != "" {
		changes = map[string]interface{}{"reason": reason}
	}
	return s.transition(actor, topicID, domain.ActionReject, domain.AuditReject, changes)
}

func (s *workflowService) Archive(actor domain.Actor, topicID uint64) (*domain.Topic, error) {
	if !actor.AtLeast(domain.RoleManager) {
		return nil, common.ErrForbidden
	}
	return s.transition(actor, topicID, domain.ActionArchive, domain.AuditArchive, nil)
}

// transition validates the requested action against the topic's
// current status under its row lock, applies it, and audits it — all
// in one transaction. Illegal actions fail with ErrInvalidTransition
// and leave the status unchanged.
func (s *workflowService) transition(actor domain.Actor, topicID uint64, action domain.WorkflowAction, auditAction domain.AuditAction, changes map[string]interface{}) (*domain.Topic, error) {
	var topic *domain.Topic
	err := s.db.Transaction(func(tx *gorm.DB) error {
		topics := s.topics.WithTx(tx)

		locked, err := topics.FindByIDForUpdate(topicID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.ErrTopicNotFound
			}
			return err
		}

		if !domain.CanTransition(locked.Status, action) {
			return common.ErrInvalidTransition
		}

		from := locked.Status
		locked.Status = domain.TransitionTarget(action)
		if action == domain.ActionPublish {
			// Refreshed on every publish, including re-publish
			now := time.Now()
			locked.PublishedAt = &now
		}

		if err := topics.Save(locked); err != nil {
			return err
		}
		topic = locked

		if changes == nil {
			changes = map[string]interface{}{}
		}
		changes["from"] = from
		changes["to"] = locked.Status
		return s.audit.Record(tx, auditAction, domain.EntityTopic, locked.ID, locked.Title, actor, changes)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateChapter(topic.ChapterID)
	return topic, nil
}

// PublishScheduled publishes every approved topic whose scheduledAt
// has passed. Each topic gets its own transaction so one failure does
// not hold back the rest.
func (s *workflowService) PublishScheduled(ctx context.Context) (int, error) {
	due, err := s.topics.ListScheduledBefore(time.Now())
	if err != nil {
		return 0, err
	}

	published := 0
	for _, t := range due {
		select {
		case <-ctx.Done():
			return published, ctx.Err()
		default:
		}

		_, err := s.transition(schedulerActor, t.ID, domain.ActionPublish, domain.AuditPublish,
			map[string]interface{}{"scheduled": true})
		if err != nil {
			logger.GetLogger().Error().Err(err).Uint64("topic_id", t.ID).Msg("scheduled publish failed")
			continue
		}
		published++
	}
	return published, nil
}

func (s *workflowService) invalidateChapter(chapterID uint64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateChapter(context.Background(), chapterID); err != nil {
		logger.GetLogger().Warn().Err(err).Uint64("chapter_id", chapterID).Msg("cache invalidation failed")
	}
}
