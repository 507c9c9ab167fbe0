package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/edustack/edustack-backend/internal/common"
	"github.com/edustack/edustack-backend/internal/domain"
	"github.com/edustack/edustack-backend/internal/markdown"
	"github.com/edustack/edustack-backend/internal/repository"
	"github.com/edustack/edustack-backend/pkg/cache"
	"github.com/edustack/edustack-backend/pkg/logger"
	"gorm.io/gorm"
)

// ContentService is the revision engine: chapter/topic CRUD plus the
// per-topic version ledger. Every mutation commits its audit entry in
// the same transaction; version numbers are assigned under a row lock
// on the topic so the ledger stays gapless.
type ContentService interface {
	CreateChapter(actor domain.Actor, subjectID uint64, req *domain.CreateChapterRequest) (*domain.Chapter, error)
	UpdateChapter(actor domain.Actor, id uint64, req *domain.UpdateChapterRequest) (*domain.Chapter, error)
	DeleteChapter(actor domain.Actor, id uint64) error
	ReorderChapters(actor domain.Actor, subjectID uint64, orderedIDs []uint64) error
	ListChapters(subjectID uint64) ([]*domain.Chapter, error)

	CreateTopic(actor domain.Actor, chapterID uint64, req *domain.CreateTopicRequest) (*domain.Topic, error)
	GetTopic(id uint64) (*domain.Topic, error)
	UpdateTopic(actor domain.Actor, id uint64, req *domain.UpdateTopicRequest) (*domain.Topic, error)
	DeleteTopic(actor domain.Actor, id uint64) error
	ReorderTopics(actor domain.Actor, chapterID uint64, orderedIDs []uint64) error
	ListTopics(chapterID uint64) ([]*domain.Topic, error)

	ListVersions(topicID uint64) ([]*domain.TopicVersion, error)
	GetVersion(topicID uint64, version uint) (*domain.TopicVersion, error)
	RestoreVersion(actor domain.Actor, topicID uint64, version uint) (*domain.Topic, error)
}

type contentService struct {
	db       TxRunner
	subjects repository.SubjectRepository
	chapters repository.ChapterRepository
	topics   repository.TopicRepository
	versions repository.VersionRepository
	audit    AuditService
	cache    cache.Service
}

// NewContentService creates a new ContentService
func NewContentService(
	db TxRunner,
	subjects repository.SubjectRepository,
	chapters repository.ChapterRepository,
	topics repository.TopicRepository,
	versions repository.VersionRepository,
	audit AuditService,
	cacheService cache.Service,
) ContentService {
	return &contentService{
		db:       db,
		subjects: subjects,
		chapters: chapters,
		topics:   topics,
		versions: versions,
		audit:    audit,
		cache:    cacheService,
	}
}

// CreateChapter creates a chapter under a subject. Order defaults to
// max(existing)+1, or 0 for the subject's first chapter.
func (s *contentService) CreateChapter(actor domain.Actor, subjectID uint64, req *domain.CreateChapterRequest) (*domain.Chapter, error) {
	if !actor.AtLeast(domain.RoleContributor) {
		return nil, common.ErrForbidden
	}

	var chapter *domain.Chapter
	err := s.db.Transaction(func(tx *gorm.DB) error {
		subjects := s.subjects.WithTx(tx)
		chapters := s.chapters.WithTx(tx)

		exists, err := subjects.Exists(subjectID)
		if err != nil {
			return err
		}
		if !exists {
			return common.ErrSubjectNotFound
		}

		if _, err := chapters.FindBySubjectAndSlug(subjectID, req.Slug); err == nil {
			return common.ErrSlugTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		order, err := s.nextChapterOrder(chapters, subjectID, req.OrderNum)
		if err != nil {
			return err
		}

		chapter = &domain.Chapter{
			SubjectID:   subjectID,
			Title:       req.Title,
			Slug:        req.Slug,
			Description: req.Description,
			OrderNum:    order,
			Status:      domain.StatusDraft,
			IsVisible:   true,
		}
		if err := chapters.Create(chapter); err != nil {
			return err
		}

		return s.audit.Record(tx, domain.AuditCreate, domain.EntityChapter, chapter.ID, chapter.Title, actor, nil)
	})
	if err != nil {
		return nil, err
	}
	return chapter, nil
}

func (s *contentService) nextChapterOrder(chapters repository.ChapterRepository, subjectID uint64, requested *uint) (uint, error) {
	if requested != nil {
		return *requested, nil
	}
	max, err := chapters.MaxOrderNum(subjectID)
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max + 1, nil
}

// UpdateChapter applies only the supplied fields and audits a
// before/after snapshot
func (s *contentService) UpdateChapter(actor domain.Actor, id uint64, req *domain.UpdateChapterRequest) (*domain.Chapter, error) {
	if !actor.AtLeast(domain.RoleContributor) {
		return nil, common.ErrForbidden
	}

	var chapter *domain.Chapter
	err := s.db.Transaction(func(tx *gorm.DB) error {
		chapters := s.chapters.WithTx(tx)

		existing, err := chapters.FindByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.ErrChapterNotFound
			}
			return err
		}
		before := *existing

		if req.Slug != nil && *req.Slug != existing.Slug {
			if _, err := chapters.FindBySubjectAndSlug(existing.SubjectID, *req.Slug); err == nil {
				return common.ErrSlugTaken
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			existing.Slug = *req.Slug
		}
		if req.Title != nil {
			existing.Title = *req.Title
		}
		if req.Description != nil {
			existing.Description = req.Description
		}
		if req.OrderNum != nil {
			existing.OrderNum = *req.OrderNum
		}
		if req.Status != nil {
			existing.Status = *req.Status
		}
		if req.IsVisible != nil {
			existing.IsVisible = *req.IsVisible
		}

		if err := chapters.Save(existing); err != nil {
			return err
		}
		chapter = existing

		changes := map[string]interface{}{
			"before": chapterSnapshot(&before),
			"after":  chapterSnapshot(existing),
		}
		return s.audit.Record(tx, domain.AuditUpdate, domain.EntityChapter, existing.ID, existing.Title, actor, changes)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateChapter(chapter.ID)
	return chapter, nil
}

// chapterSnapshot is the audited field set for chapter updates.
// Timestamps are deliberately excluded.
func chapterSnapshot(c *domain.Chapter) map[string]interface{} {
	return map[string]interface{}{
		"title":       c.Title,
		"slug":        c.Slug,
		"description": c.Description,
		"order_num":   c.OrderNum,
		"status":      c.Status,
		"is_visible":  c.IsVisible,
	}
}

// DeleteChapter hard-deletes a chapter and cascades to its topics and
// their version ledgers. Requires manager role.
func (s *contentService) DeleteChapter(actor domain.Actor, id uint64) error {
	if !actor.AtLeast(domain.RoleManager) {
		return common.ErrForbidden
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		chapters := s.chapters.WithTx(tx)
		topics := s.topics.WithTx(tx)
		versions := s.versions.WithTx(tx)

		chapter, err := chapters.FindByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.ErrChapterNotFound
			}
			return err
		}

		children, err := topics.ListByChapter(id)
		if err != nil {
			return err
		}
		for _, topic := range children {
			if err := versions.DeleteByTopic(topic.ID); err != nil {
				return err
			}
			if err := topics.Delete(topic.ID); err != nil {
				return err
			}
		}

		if err := chapters.Delete(id); err != nil {
			return err
		}

		return s.audit.Record(tx, domain.AuditDelete, domain.EntityChapter, chapter.ID, chapter.Title, actor, nil)
	})
	if err != nil {
		return err
	}

	s.invalidateChapter(id)
	return nil
}

// ReorderChapters assigns order = slice index to each chapter, scoped
// to the subject, atomically
func (s *contentService) ReorderChapters(actor domain.Actor, subjectID uint64, orderedIDs []uint64) error {
	if !actor.AtLeast(domain.RoleContributor) {
		return common.ErrForbidden
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		subjects := s.subjects.WithTx(tx)
		chapters := s.chapters.WithTx(tx)

		subject, err := subjects.FindByID(subjectID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.ErrSubjectNotFound
			}
			return err
		}

		for i, id := range orderedIDs {
			chapter, err := chapters.FindByID(id)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return common.ErrChapterNotFound
				}
				return err
			}
			if chapter.SubjectID != subjectID {
				return common.ErrChapterNotFound
			}
			if err := chapters.SetOrder(id, uint(i)); err != nil {
				return err
			}
		}

		changes := map[string]interface{}{"reordered_chapter_ids": orderedIDs}
		return s.audit.Record(tx, domain.AuditUpdate, domain.EntitySubject, subject.ID, subject.Name, actor, changes)
	})
}

func (s *contentService) ListChapters(subjectID uint64) ([]*domain.Chapter, error) {
	exists, err := s.subjects.Exists(subjectID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, common.ErrSubjectNotFound
	}
	return s.chapters.ListBySubject(subjectID)
}

// CreateTopic creates a topic at version 1 with a matching ledger
// entry. A missing excerpt is derived from the content.
func (s *contentService) CreateTopic(actor domain.Actor, chapterID uint64, req *domain.CreateTopicRequest) (*domain.Topic, error) {
	if !actor.AtLeast(domain.RoleContributor) {
		return nil, common.ErrForbidden
	}

	var topic *domain.Topic
	err := s.db.Transaction(func(tx *gorm.DB) error {
		chapters := s.chapters.WithTx(tx)
		topics := s.topics.WithTx(tx)
		versions := s.versions.WithTx(tx)

		if _, err := chapters.FindByID(chapterID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.ErrChapterNotFound
			}
			return err
		}

		if _, err := topics.FindByChapterAndSlug(chapterID, req.Slug); err == nil {
			return common.ErrSlugTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		order, err := s.nextTopicOrder(topics, chapterID, req.OrderNum)
		if err != nil {
			return err
		}

		// An author-supplied excerpt is kept verbatim, only capped;
		// derivation from content is the fallback.
		excerpt := ""
		if req.Excerpt != nil {
			excerpt = markdown.Truncate(*req.Excerpt, domain.ExcerptMaxLen)
		} else {
			excerpt = markdown.Excerpt(req.Content, domain.DeriveExcerptLen)
		}

		topic = &domain.Topic{
			ChapterID:       chapterID,
			Title:           req.Title,
			Slug:            req.Slug,
			Content:         req.Content,
			Excerpt:         excerpt,
			OrderNum:        order,
			Status:          domain.StatusDraft,
			IsVisible:       true,
			MetaTitle:       req.MetaTitle,
			MetaDescription: req.MetaDescription,
			AuthorID:        actor.UserID,
			CurrentVersion:  1,
			ScheduledAt:     req.ScheduledAt,
		}
		if err := topics.Create(topic); err != nil {
			return err
		}

		initial := &domain.TopicVersion{
			TopicID:    topic.ID,
			Version:    1,
			Content:    req.Content,
			Changelog:  "Initial version",
			AuthorID:   actor.UserID,
			AuthorName: actor.Nickname,
		}
		if err := versions.Create(initial); err != nil {
			return err
		}

		return s.audit.Record(tx, domain.AuditCreate, domain.EntityTopic, topic.ID, topic.Title, actor, nil)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateChapter(chapterID)
	return topic, nil
}

func (s *contentService) nextTopicOrder(topics repository.TopicRepository, chapterID uint64, requested *uint) (uint, error) {
	if requested != nil {
		return *requested, nil
	}
	max, err := topics.MaxOrderNum(chapterID)
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max + 1, nil
}

func (s *contentService) GetTopic(id uint64) (*domain.Topic, error) {
	topic, err := s.topics.FindByIDWithChapter(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrTopicNotFound
		}
		return nil, err
	}
	return topic, nil
}

// UpdateTopic applies only the supplied fields. If and only if the
// content is supplied and differs from the stored content, a new
// version is appended at current+1 under the topic's row lock. The
// audit entry lists changed field names, not values.
func (s *contentService) UpdateTopic(actor domain.Actor, id uint64, req *domain.UpdateTopicRequest) (*domain.Topic, error) {
	if !actor.AtLeast(domain.RoleContributor) {
		return nil, common.ErrForbidden
	}

	var chapterID uint64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		topics := s.topics.WithTx(tx)
		versions := s.versions.WithTx(tx)

		topic, err := topics.FindByIDForUpdate(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.ErrTopicNotFound
			}
			return err
		}
		chapterID = topic.ChapterID

		var changed []string

		if req.Slug != nil && *req.Slug != topic.Slug {
			if _, err := topics.FindByChapterAndSlug(topic.ChapterID, *req.Slug); err == nil {
				return common.ErrSlugTaken
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			topic.Slug = *req.Slug
			changed = append(changed, "slug")
		}
		if req.Title != nil && *req.Title != topic.Title {
			topic.Title = *req.Title
			changed = append(changed, "title")
		}
		if req.OrderNum != nil && *req.OrderNum != topic.OrderNum {
			topic.OrderNum = *req.OrderNum
			changed = append(changed, "order_num")
		}
		if req.IsVisible != nil && *req.IsVisible != topic.IsVisible {
			topic.IsVisible = *req.IsVisible
			changed = append(changed, "is_visible")
		}
		if req.MetaTitle != nil {
			topic.MetaTitle = req.MetaTitle
			changed = append(changed, "meta_title")
		}
		if req.MetaDescription != nil {
			topic.MetaDescription = req.MetaDescription
			changed = append(changed, "meta_description")
		}
		if req.ScheduledAt != nil {
			topic.ScheduledAt = req.ScheduledAt
			changed = append(changed, "scheduled_at")
		}

		contentChanged := req.Content != nil && *req.Content != topic.Content
		if contentChanged {
			topic.Content = *req.Content
			topic.CurrentVersion++
			changed = append(changed, "content")
		}

		if req.Excerpt != nil {
			topic.Excerpt = markdown.Truncate(*req.Excerpt, domain.ExcerptMaxLen)
			changed = append(changed, "excerpt")
		} else if contentChanged {
			topic.Excerpt = markdown.Excerpt(topic.Content, domain.DeriveExcerptLen)
		}

		if len(changed) == 0 {
			return nil
		}

		if err := topics.Save(topic); err != nil {
			return err
		}

		if contentChanged {
			changelog := "Content updated"
			if req.Changelog != nil && *req.Changelog != "" {
				changelog = *req.Changelog
			}
			version := &domain.TopicVersion{
				TopicID:    topic.ID,
				Version:    topic.CurrentVersion,
				Content:    topic.Content,
				Changelog:  changelog,
				AuthorID:   actor.UserID,
				AuthorName: actor.Nickname,
			}
			if err := versions.Create(version); err != nil {
				return err
			}
		}

		changes := map[string]interface{}{"fields": changed}
		return s.audit.Record(tx, domain.AuditUpdate, domain.EntityTopic, topic.ID, topic.Title, actor, changes)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateChapter(chapterID)
	return s.GetTopic(id)
}

// DeleteTopic hard-deletes a topic and its version ledger. Requires
// manager role.
func (s *contentService) DeleteTopic(actor domain.Actor, id uint64) error {
	if !actor.AtLeast(domain.RoleManager) {
		return common.ErrForbidden
	}

	var chapterID uint64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		topics := s.topics.WithTx(tx)
		versions := s.versions.WithTx(tx)

		topic, err := topics.FindByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.ErrTopicNotFound
			}
			return err
		}
		chapterID = topic.ChapterID

		if err := versions.DeleteByTopic(id); err != nil {
			return err
		}
		if err := topics.Delete(id); err != nil {
			return err
		}

		return s.audit.Record(tx, domain.AuditDelete, domain.EntityTopic, topic.ID, topic.Title, actor, nil)
	})
	if err != nil {
		return err
	}

	s.invalidateChapter(chapterID)
	return nil
}

// ReorderTopics assigns order = slice index to each topic, scoped to
// the chapter, atomically
func (s *contentService) ReorderTopics(actor domain.Actor, chapterID uint64, orderedIDs []uint64) error {
	if !actor.AtLeast(domain.RoleContributor) {
		return common.ErrForbidden
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		chapters := s.chapters.WithTx(tx)
		topics := s.topics.WithTx(tx)

		chapter, err := chapters.FindByID(chapterID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.ErrChapterNotFound
			}
			return err
		}

		for i, id := range orderedIDs {
			topic, err := topics.FindByID(id)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return common.ErrTopicNotFound
				}
				return err
			}
			if topic.ChapterID != chapterID {
				return common.ErrTopicNotFound
			}
			if err := topics.SetOrder(id, uint(i)); err != nil {
				return err
			}
		}

		changes := map[string]interface{}{"reordered_topic_ids": orderedIDs}
		return s.audit.Record(tx, domain.AuditUpdate, domain.EntityChapter, chapter.ID, chapter.Title, actor, changes)
	})
	if err != nil {
		return err
	}

	s.invalidateChapter(chapterID)
	return nil
}

func (s *contentService) ListTopics(chapterID uint64) ([]*domain.Topic, error) {
	if _, err := s.chapters.FindByID(chapterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrChapterNotFound
		}
		return nil, err
	}
	return s.topics.ListByChapter(chapterID)
}

func (s *contentService) ListVersions(topicID uint64) ([]*domain.TopicVersion, error) {
	if _, err := s.topics.FindByID(topicID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrTopicNotFound
		}
		return nil, err
	}
	return s.versions.ListByTopic(topicID)
}

func (s *contentService) GetVersion(topicID uint64, version uint) (*domain.TopicVersion, error) {
	v, err := s.versions.FindByTopicAndVersion(topicID, version)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrVersionNotFound
		}
		return nil, err
	}
	return v, nil
}

// RestoreVersion copies an old version's content forward as a new
// version at current+1. History is append-only: nothing is rewound,
// renumbered or deleted, and the topic's status is untouched.
func (s *contentService) RestoreVersion(actor domain.Actor, topicID uint64, version uint) (*domain.Topic, error) {
	if !actor.AtLeast(domain.RoleContributor) {
		return nil, common.ErrForbidden
	}

	var chapterID uint64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		topics := s.topics.WithTx(tx)
		versions := s.versions.WithTx(tx)

		topic, err := topics.FindByIDForUpdate(topicID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.ErrTopicNotFound
			}
			return err
		}
		chapterID = topic.ChapterID

		source, err := versions.FindByTopicAndVersion(topicID, version)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.ErrVersionNotFound
			}
			return err
		}

		topic.Content = source.Content
		topic.CurrentVersion++

		restored := &domain.TopicVersion{
			TopicID:    topicID,
			Version:    topic.CurrentVersion,
			Content:    source.Content,
			Changelog:  fmt.Sprintf("Restored from version %d", version),
			AuthorID:   actor.UserID,
			AuthorName: actor.Nickname,
		}
		if err := versions.Create(restored); err != nil {
			return err
		}
		if err := topics.Save(topic); err != nil {
			return err
		}

		changes := map[string]interface{}{"restored_from": version, "new_version": topic.CurrentVersion}
		return s.audit.Record(tx, domain.AuditRestore, domain.EntityTopic, topic.ID, topic.Title, actor, changes)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateChapter(chapterID)
	return s.GetTopic(topicID)
}

// invalidateChapter drops the published-content cache for a chapter.
// Best effort: a cache miss is always safe.
func (s *contentService) invalidateChapter(chapterID uint64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateChapter(context.Background(), chapterID); err != nil {
		logger.GetLogger().Warn().Err(err).Uint64("chapter_id", chapterID).Msg("cache invalidation failed")
	}
}
