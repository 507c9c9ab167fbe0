package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/edustack/edustack-backend/internal/common"
	"github.com/edustack/edustack-backend/internal/domain"
	"github.com/edustack/edustack-backend/internal/markdown"
	"github.com/edustack/edustack-backend/internal/repository"
	"github.com/edustack/edustack-backend/pkg/cache"
	"gorm.io/gorm"
)

// ReaderService is the public, read-only surface. It sees published,
// visible content exclusively; everything else behaves as not found.
// Topic listings and rendered topic detail are cached in Redis.
type ReaderService interface {
	ListSubjects() ([]*domain.Subject, error)
	ListChapters(subjectSlug string) ([]*domain.Chapter, error)
	ListTopics(subjectSlug, chapterSlug string) ([]*domain.TopicSummary, error)
	GetTopic(subjectSlug, chapterSlug, topicSlug string) (*domain.TopicView, error)
}

type readerService struct {
	subjects repository.SubjectRepository
	chapters repository.ChapterRepository
	topics   repository.TopicRepository
	cache    cache.Service
}

// NewReaderService creates a new ReaderService
func NewReaderService(subjects repository.SubjectRepository, chapters repository.ChapterRepository, topics repository.TopicRepository, cacheService cache.Service) ReaderService {
	return &readerService{subjects: subjects, chapters: chapters, topics: topics, cache: cacheService}
}

func (s *readerService) ListSubjects() ([]*domain.Subject, error) {
	return s.subjects.List(true)
}

func (s *readerService) resolveSubject(subjectSlug string) (*domain.Subject, error) {
	subject, err := s.subjects.FindBySlug(subjectSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrSubjectNotFound
		}
		return nil, err
	}
	if !subject.IsVisible {
		return nil, common.ErrSubjectNotFound
	}
	return subject, nil
}

// resolveChapter maps slugs to a published, visible chapter. Hidden
// and unpublished chapters are indistinguishable from missing ones.
func (s *readerService) resolveChapter(subjectSlug, chapterSlug string) (*domain.Chapter, error) {
	subject, err := s.resolveSubject(subjectSlug)
	if err != nil {
		return nil, err
	}
	chapter, err := s.chapters.FindBySubjectAndSlug(subject.ID, chapterSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrChapterNotFound
		}
		return nil, err
	}
	if chapter.Status != domain.StatusPublished || !chapter.IsVisible {
		return nil, common.ErrChapterNotFound
	}
	return chapter, nil
}

func (s *readerService) ListChapters(subjectSlug string) ([]*domain.Chapter, error) {
	subject, err := s.resolveSubject(subjectSlug)
	if err != nil {
		return nil, err
	}
	return s.chapters.ListPublishedBySubject(subject.ID)
}

func (s *readerService) ListTopics(subjectSlug, chapterSlug string) ([]*domain.TopicSummary, error) {
	chapter, err := s.resolveChapter(subjectSlug, chapterSlug)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	if s.cache != nil {
		if data, err := s.cache.GetTopicList(ctx, chapter.ID); err == nil {
			var cached []*domain.TopicSummary
			if json.Unmarshal(data, &cached) == nil {
				return cached, nil
			}
		}
	}

	topics, err := s.topics.ListPublishedByChapter(chapter.ID)
	if err != nil {
		return nil, err
	}

	summaries := make([]*domain.TopicSummary, len(topics))
	for i, t := range topics {
		summaries[i] = t.ToSummary()
	}

	if s.cache != nil {
		_ = s.cache.SetTopicList(ctx, chapter.ID, summaries)
	}
	return summaries, nil
}

func (s *readerService) GetTopic(subjectSlug, chapterSlug, topicSlug string) (*domain.TopicView, error) {
	chapter, err := s.resolveChapter(subjectSlug, chapterSlug)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	if s.cache != nil {
		if data, err := s.cache.GetTopic(ctx, chapter.ID, topicSlug); err == nil {
			var cached domain.TopicView
			if json.Unmarshal(data, &cached) == nil {
				return &cached, nil
			}
		}
	}

	topic, err := s.topics.FindByChapterAndSlug(chapter.ID, topicSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrTopicNotFound
		}
		return nil, err
	}
	if topic.Status != domain.StatusPublished || !topic.IsVisible {
		return nil, common.ErrTopicNotFound
	}

	view := topic.ToView(markdown.Render(topic.Content))

	if s.cache != nil {
		_ = s.cache.SetTopic(ctx, chapter.ID, topicSlug, view)
	}
	return view, nil
}
