package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/edustack/edustack-backend/internal/common"
	"github.com/edustack/edustack-backend/internal/domain"
	"github.com/edustack/edustack-backend/internal/handler"
	"github.com/edustack/edustack-backend/internal/repository"
	"github.com/edustack/edustack-backend/internal/routes"
	"github.com/edustack/edustack-backend/internal/service"
	"github.com/edustack/edustack-backend/pkg/jwt"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ContentAPISuite runs the editorial workflow end to end over HTTP
// against an in-memory SQLite database.
type ContentAPISuite struct {
	suite.Suite
	db       *gorm.DB
	router   *gin.Engine
	workflow service.WorkflowService

	studentToken     string
	contributorToken string
	managerToken     string
	adminToken       string
}

func TestContentAPISuite(t *testing.T) {
	suite.Run(t, new(ContentAPISuite))
}

func (s *ContentAPISuite) SetupSuite() {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	s.Require().NoError(err)
	s.db = db

	// A single connection keeps every goroutine on the same in-memory
	// database and serializes SQLite transactions.
	sqlDB, err := db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	s.Require().NoError(db.AutoMigrate(
		&domain.University{},
		&domain.Campus{},
		&domain.Department{},
		&domain.Program{},
		&domain.Semester{},
		&domain.Subject{},
		&domain.Chapter{},
		&domain.Topic{},
		&domain.TopicVersion{},
		&domain.AuditLogEntry{},
		&domain.Bookmark{},
		&domain.Enrollment{},
	))

	jwtManager := jwt.NewManager("test-secret-key-for-integration-tests", 900, 86400)
	s.studentToken = s.token(jwtManager, "student1", "Student", domain.RoleStudent)
	s.contributorToken = s.token(jwtManager, "contributor1", "Contributor", domain.RoleContributor)
	s.managerToken = s.token(jwtManager, "manager1", "Manager", domain.RoleManager)
	s.adminToken = s.token(jwtManager, "admin1", "Admin", domain.RoleAdmin)

	curriculumRepo := repository.NewCurriculumRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	chapterRepo := repository.NewChapterRepository(db)
	topicRepo := repository.NewTopicRepository(db)
	versionRepo := repository.NewVersionRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	bookmarkRepo := repository.NewBookmarkRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)

	auditService := service.NewAuditService(auditRepo)
	contentService := service.NewContentService(db, subjectRepo, chapterRepo, topicRepo, versionRepo, auditService, nil)
	s.workflow = service.NewWorkflowService(db, topicRepo, auditService, nil)
	curriculumService := service.NewCurriculumService(db, curriculumRepo, subjectRepo, auditService)
	readerService := service.NewReaderService(subjectRepo, chapterRepo, topicRepo, nil)

	handlers := &routes.Handlers{
		Curriculum: handler.NewCurriculumHandler(curriculumService),
		Chapter:    handler.NewChapterHandler(contentService),
		Topic:      handler.NewTopicHandler(contentService),
		Version:    handler.NewVersionHandler(contentService),
		Workflow:   handler.NewWorkflowHandler(s.workflow),
		Reader:     handler.NewReaderHandler(readerService),
		Bookmark:   handler.NewBookmarkHandler(bookmarkRepo, topicRepo),
		Enrollment: handler.NewEnrollmentHandler(enrollmentRepo, subjectRepo),
		Audit:      handler.NewAuditHandler(auditService),
	}

	s.router = gin.New()
	routes.Setup(s.router, handlers, jwtManager)
}

func (s *ContentAPISuite) token(m *jwt.Manager, userID, nickname string, role domain.Role) string {
	token, err := m.GenerateToken(userID, nickname, int(role))
	s.Require().NoError(err)
	return token
}

type envelope struct {
	Success bool              `json:"success"`
	Data    json.RawMessage   `json:"data"`
	Meta    *common.Meta      `json:"meta"`
	Error   *common.ErrorInfo `json:"error"`
}

func (s *ContentAPISuite) do(method, path, token string, body interface{}) (*httptest.ResponseRecorder, *envelope) {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if len(w.Body.Bytes()) > 0 {
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, &env
}

func (s *ContentAPISuite) decode(env *envelope, out interface{}) {
	s.Require().NoError(json.Unmarshal(env.Data, out))
}

func (s *ContentAPISuite) createSubject(slug, name string) domain.Subject {
	w, env := s.do(http.MethodPost, "/api/v1/admin/subjects", s.adminToken, domain.CreateSubjectRequest{
		Slug: slug,
		Name: name,
	})
	s.Require().Equal(http.StatusCreated, w.Code)
	var subject domain.Subject
	s.decode(env, &subject)
	return subject
}

func (s *ContentAPISuite) createChapter(subjectID uint64, slug, title string) domain.Chapter {
	w, env := s.do(http.MethodPost, fmt.Sprintf("/api/v1/subjects/%d/chapters", subjectID), s.contributorToken,
		domain.CreateChapterRequest{Title: title, Slug: slug})
	s.Require().Equal(http.StatusCreated, w.Code)
	var chapter domain.Chapter
	s.decode(env, &chapter)
	return chapter
}

func (s *ContentAPISuite) createTopic(chapterID uint64, slug, title, content string) domain.Topic {
	w, env := s.do(http.MethodPost, fmt.Sprintf("/api/v1/chapters/%d/topics", chapterID), s.contributorToken,
		domain.CreateTopicRequest{Title: title, Slug: slug, Content: content})
	s.Require().Equal(http.StatusCreated, w.Code)
	var topic domain.Topic
	s.decode(env, &topic)
	return topic
}

func (s *ContentAPISuite) TestEditorialWorkflow() {
	subject := s.createSubject("golang", "Go Programming")
	chapter := s.createChapter(subject.ID, "basics", "Basics")
	s.Equal(uint(0), chapter.OrderNum)

	topic := s.createTopic(chapter.ID, "pointers", "Pointers", "# Pointers\n\nv1 content.")
	s.Equal(domain.StatusDraft, topic.Status)
	s.Equal(uint(1), topic.CurrentVersion)

	// students cannot touch the management API
	w, _ := s.do(http.MethodPost, fmt.Sprintf("/api/v1/subjects/%d/chapters", subject.ID), s.studentToken,
		domain.CreateChapterRequest{Title: "Nope", Slug: "nope"})
	s.Equal(http.StatusForbidden, w.Code)

	// contributor submits for review
	w, env := s.do(http.MethodPost, fmt.Sprintf("/api/v1/topics/%d/submit", topic.ID), s.contributorToken, nil)
	s.Equal(http.StatusOK, w.Code)
	var submitted domain.Topic
	s.decode(env, &submitted)
	s.Equal(domain.StatusInReview, submitted.Status)

	// contributor cannot approve their own work
	w, _ = s.do(http.MethodPost, fmt.Sprintf("/api/v1/topics/%d/approve", topic.ID), s.contributorToken, nil)
	s.Equal(http.StatusForbidden, w.Code)

	// manager approves, then publishes
	w, _ = s.do(http.MethodPost, fmt.Sprintf("/api/v1/topics/%d/approve", topic.ID), s.managerToken, nil)
	s.Equal(http.StatusOK, w.Code)

	w, env = s.do(http.MethodPost, fmt.Sprintf("/api/v1/topics/%d/publish", topic.ID), s.managerToken, nil)
	s.Equal(http.StatusOK, w.Code)
	var published domain.Topic
	s.decode(env, &published)
	s.Equal(domain.StatusPublished, published.Status)
	s.NotNil(published.PublishedAt)

	// submitting a published topic is an invalid transition
	w, env = s.do(http.MethodPost, fmt.Sprintf("/api/v1/topics/%d/submit", topic.ID), s.contributorToken, nil)
	s.Equal(http.StatusUnprocessableEntity, w.Code)
	s.Require().NotNil(env.Error)
	s.Equal("INVALID_TRANSITION", env.Error.Code)

	// content update appends version 2, status untouched
	w, env = s.do(http.MethodPut, fmt.Sprintf("/api/v1/topics/%d", topic.ID), s.contributorToken,
		map[string]interface{}{"content": "# Pointers\n\nv2 content.", "changelog": "Second pass"})
	s.Equal(http.StatusOK, w.Code)
	var updated domain.Topic
	s.decode(env, &updated)
	s.Equal(uint(2), updated.CurrentVersion)
	s.Equal(domain.StatusPublished, updated.Status)

	// restoring version 1 appends version 3
	w, env = s.do(http.MethodPost, fmt.Sprintf("/api/v1/topics/%d/versions/1/restore", topic.ID), s.contributorToken, nil)
	s.Equal(http.StatusOK, w.Code)
	var restored domain.Topic
	s.decode(env, &restored)
	s.Equal(uint(3), restored.CurrentVersion)
	s.Equal("# Pointers\n\nv1 content.", restored.Content)
	s.Equal(domain.StatusPublished, restored.Status)

	// ledger lists three versions, newest first
	w, env = s.do(http.MethodGet, fmt.Sprintf("/api/v1/topics/%d/versions", topic.ID), s.contributorToken, nil)
	s.Equal(http.StatusOK, w.Code)
	var versions []domain.TopicVersion
	s.decode(env, &versions)
	s.Require().Len(versions, 3)
	s.Equal(uint(3), versions[0].Version)
	s.Equal("Restored from version 1", versions[0].Changelog)
	s.Equal(uint(2), versions[1].Version)
	s.Equal("Second pass", versions[1].Changelog)
	s.Equal(uint(1), versions[2].Version)
	s.Equal("Initial version", versions[2].Changelog)
}

func (s *ContentAPISuite) TestRejectReturnsToDraft() {
	subject := s.createSubject("rust", "Rust Programming")
	chapter := s.createChapter(subject.ID, "ownership", "Ownership")
	topic := s.createTopic(chapter.ID, "borrowing", "Borrowing", "Draft text.")

	w, _ := s.do(http.MethodPost, fmt.Sprintf("/api/v1/topics/%d/submit", topic.ID), s.contributorToken, nil)
	s.Equal(http.StatusOK, w.Code)

	w, env := s.do(http.MethodPost, fmt.Sprintf("/api/v1/topics/%d/reject", topic.ID), s.managerToken,
		domain.RejectRequest{Reason: "needs examples"})
	s.Equal(http.StatusOK, w.Code)
	var rejected domain.Topic
	s.decode(env, &rejected)
	s.Equal(domain.StatusDraft, rejected.Status)

	// the reason lands in the audit trail, not on the topic
	var entry domain.AuditLogEntry
	err := s.db.Where("entity_type = ? AND entity_id = ? AND action = ?",
		domain.EntityTopic, topic.ID, domain.AuditReject).First(&entry).Error
	s.Require().NoError(err)
	s.Require().NotNil(entry.Changes)
	s.Contains(*entry.Changes, "needs examples")
}

func (s *ContentAPISuite) TestArchivedIsTerminal() {
	subject := s.createSubject("calculus", "Calculus")
	chapter := s.createChapter(subject.ID, "limits", "Limits")
	topic := s.createTopic(chapter.ID, "epsilon", "Epsilon-Delta", "Text.")

	w, _ := s.do(http.MethodPost, fmt.Sprintf("/api/v1/topics/%d/archive", topic.ID), s.managerToken, nil)
	s.Equal(http.StatusOK, w.Code)

	for _, action := range []string{"submit", "approve", "publish", "reject", "archive"} {
		w, _ := s.do(http.MethodPost, fmt.Sprintf("/api/v1/topics/%d/%s", topic.ID, action), s.managerToken, nil)
		s.Equal(http.StatusUnprocessableEntity, w.Code, "action %s must be invalid from archived", action)
	}
}

func (s *ContentAPISuite) TestSlugUniquenessPerParent() {
	subject := s.createSubject("physics", "Physics")
	chapterA := s.createChapter(subject.ID, "mechanics", "Mechanics")
	chapterB := s.createChapter(subject.ID, "optics", "Optics")
	s.createTopic(chapterA.ID, "waves", "Waves", "In mechanics.")

	// same slug in the same chapter conflicts
	w, env := s.do(http.MethodPost, fmt.Sprintf("/api/v1/chapters/%d/topics", chapterA.ID), s.contributorToken,
		domain.CreateTopicRequest{Title: "Waves again", Slug: "waves", Content: "dup"})
	s.Equal(http.StatusConflict, w.Code)
	s.Require().NotNil(env.Error)
	s.Equal("CONFLICT", env.Error.Code)

	// same slug under a different chapter is fine
	w, _ = s.do(http.MethodPost, fmt.Sprintf("/api/v1/chapters/%d/topics", chapterB.ID), s.contributorToken,
		domain.CreateTopicRequest{Title: "Waves", Slug: "waves", Content: "In optics."})
	s.Equal(http.StatusCreated, w.Code)

	// duplicate chapter slug under the same subject conflicts
	w, _ = s.do(http.MethodPost, fmt.Sprintf("/api/v1/subjects/%d/chapters", subject.ID), s.contributorToken,
		domain.CreateChapterRequest{Title: "Mechanics II", Slug: "mechanics"})
	s.Equal(http.StatusConflict, w.Code)
}

func (s *ContentAPISuite) TestConcurrentUpdatesKeepLedgerGapless() {
	subject := s.createSubject("concurrency", "Concurrency")
	chapter := s.createChapter(subject.ID, "sync", "Synchronization")
	topic := s.createTopic(chapter.ID, "mutex", "Mutexes", "# Mutexes\n\nv1 content.")

	// Racing writers must each land on a distinct version number with
	// no gaps; the row lock plus the (topic_id, version) unique index
	// guarantee it.
	const writers = 6
	codes := make(chan int, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			body, _ := json.Marshal(map[string]interface{}{
				"content":   fmt.Sprintf("# Mutexes\n\nrevision %d.", n),
				"changelog": fmt.Sprintf("pass %d", n),
			})
			req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/v1/topics/%d", topic.ID), bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+s.contributorToken)
			w := httptest.NewRecorder()
			s.router.ServeHTTP(w, req)
			codes <- w.Code
		}(i)
	}
	wg.Wait()
	close(codes)

	for code := range codes {
		s.Equal(http.StatusOK, code)
	}

	w, env := s.do(http.MethodGet, fmt.Sprintf("/api/v1/topics/%d/versions", topic.ID), s.contributorToken, nil)
	s.Equal(http.StatusOK, w.Code)
	var versions []domain.TopicVersion
	s.decode(env, &versions)
	s.Require().Len(versions, writers+1)
	for i, v := range versions {
		s.Equal(uint(writers+1-i), v.Version, "ledger must run %d..1 newest first", writers+1)
	}

	w, env = s.do(http.MethodGet, fmt.Sprintf("/api/v1/topics/%d", topic.ID), s.contributorToken, nil)
	s.Equal(http.StatusOK, w.Code)
	var updated domain.Topic
	s.decode(env, &updated)
	s.Equal(uint(writers+1), updated.CurrentVersion)
}

func (s *ContentAPISuite) TestReorderAssignsSlicePositions() {
	subject := s.createSubject("chemistry", "Chemistry")
	a := s.createChapter(subject.ID, "atoms", "Atoms")
	b := s.createChapter(subject.ID, "bonds", "Bonds")
	c := s.createChapter(subject.ID, "reactions", "Reactions")
	s.Equal(uint(0), a.OrderNum)
	s.Equal(uint(1), b.OrderNum)
	s.Equal(uint(2), c.OrderNum)

	w, env := s.do(http.MethodPut, fmt.Sprintf("/api/v1/subjects/%d/chapters/reorder", subject.ID), s.contributorToken,
		domain.ReorderRequest{OrderedIDs: []uint64{c.ID, a.ID, b.ID}})
	s.Equal(http.StatusOK, w.Code)

	var chapters []domain.Chapter
	s.decode(env, &chapters)
	s.Require().Len(chapters, 3)
	s.Equal(c.ID, chapters[0].ID)
	s.Equal(a.ID, chapters[1].ID)
	s.Equal(b.ID, chapters[2].ID)
	s.Equal(uint(0), chapters[0].OrderNum)
	s.Equal(uint(1), chapters[1].OrderNum)
	s.Equal(uint(2), chapters[2].OrderNum)

	// a chapter belonging to another subject poisons the whole reorder
	other := s.createSubject("biology", "Biology")
	foreign := s.createChapter(other.ID, "cells", "Cells")
	w, _ = s.do(http.MethodPut, fmt.Sprintf("/api/v1/subjects/%d/chapters/reorder", subject.ID), s.contributorToken,
		domain.ReorderRequest{OrderedIDs: []uint64{foreign.ID, a.ID}})
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *ContentAPISuite) TestPublicReadAPI() {
	subject := s.createSubject("astronomy", "Astronomy")
	chapter := s.createChapter(subject.ID, "planets", "Planets")
	topic := s.createTopic(chapter.ID, "mars", "Mars", "# Mars\n\nThe red planet.")
	s.createTopic(chapter.ID, "venus", "Venus", "Still a draft.")

	// chapter must itself be published to be publicly visible
	published := domain.StatusPublished
	w, _ := s.do(http.MethodPut, fmt.Sprintf("/api/v1/chapters/%d", chapter.ID), s.contributorToken,
		domain.UpdateChapterRequest{Status: &published})
	s.Equal(http.StatusOK, w.Code)

	w, _ = s.do(http.MethodPost, fmt.Sprintf("/api/v1/topics/%d/publish", topic.ID), s.managerToken, nil)
	s.Equal(http.StatusOK, w.Code)

	// anonymous list shows only the published topic
	w, env := s.do(http.MethodGet, "/api/v1/public/subjects/astronomy/chapters/planets/topics", "", nil)
	s.Equal(http.StatusOK, w.Code)
	var summaries []domain.TopicSummary
	s.decode(env, &summaries)
	s.Require().Len(summaries, 1)
	s.Equal("mars", summaries[0].Slug)

	// detail renders markdown to HTML
	w, env = s.do(http.MethodGet, "/api/v1/public/subjects/astronomy/chapters/planets/topics/mars", "", nil)
	s.Equal(http.StatusOK, w.Code)
	var view domain.TopicView
	s.decode(env, &view)
	s.Contains(view.ContentHTML, "<h1>Mars</h1>")

	// drafts are indistinguishable from missing topics
	w, _ = s.do(http.MethodGet, "/api/v1/public/subjects/astronomy/chapters/planets/topics/venus", "", nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *ContentAPISuite) TestScheduledPublishing() {
	subject := s.createSubject("geology", "Geology")
	chapter := s.createChapter(subject.ID, "rocks", "Rocks")
	topic := s.createTopic(chapter.ID, "igneous", "Igneous", "Text.")

	past := time.Now().Add(-time.Hour)
	w, _ := s.do(http.MethodPut, fmt.Sprintf("/api/v1/topics/%d", topic.ID), s.contributorToken,
		map[string]interface{}{"scheduled_at": past.Format(time.RFC3339)})
	s.Equal(http.StatusOK, w.Code)

	w, _ = s.do(http.MethodPost, fmt.Sprintf("/api/v1/topics/%d/submit", topic.ID), s.contributorToken, nil)
	s.Equal(http.StatusOK, w.Code)
	w, _ = s.do(http.MethodPost, fmt.Sprintf("/api/v1/topics/%d/approve", topic.ID), s.managerToken, nil)
	s.Equal(http.StatusOK, w.Code)

	count, err := s.workflow.PublishScheduled(context.Background())
	s.Require().NoError(err)
	s.GreaterOrEqual(count, 1)

	var refreshed domain.Topic
	s.Require().NoError(s.db.First(&refreshed, topic.ID).Error)
	s.Equal(domain.StatusPublished, refreshed.Status)
	s.NotNil(refreshed.PublishedAt)

	// the scheduler's audit entry carries the system actor
	var entry domain.AuditLogEntry
	err = s.db.Where("entity_type = ? AND entity_id = ? AND action = ?",
		domain.EntityTopic, topic.ID, domain.AuditPublish).First(&entry).Error
	s.Require().NoError(err)
	s.Equal("system:scheduler", entry.ActorID)
}

func (s *ContentAPISuite) TestAuditTrail() {
	subject := s.createSubject("history", "History")
	chapter := s.createChapter(subject.ID, "ancient", "Ancient")
	topic := s.createTopic(chapter.ID, "rome", "Rome", "SPQR.")

	// only admins may read the trail
	w, _ := s.do(http.MethodGet, "/api/v1/admin/audit-logs", s.managerToken, nil)
	s.Equal(http.StatusForbidden, w.Code)

	path := fmt.Sprintf("/api/v1/admin/audit-logs?entity_type=%s&entity_id=%d", domain.EntityTopic, topic.ID)
	w, env := s.do(http.MethodGet, path, s.adminToken, nil)
	s.Equal(http.StatusOK, w.Code)

	var entries []domain.AuditLogEntry
	s.decode(env, &entries)
	s.Require().Len(entries, 1)
	s.Equal(domain.AuditCreate, entries[0].Action)
	s.Equal("contributor1", entries[0].ActorID)
	s.Require().NotNil(env.Meta)
	s.Equal(int64(1), env.Meta.Total)
}

func (s *ContentAPISuite) TestDeleteCascadesVersions() {
	subject := s.createSubject("music", "Music Theory")
	chapter := s.createChapter(subject.ID, "harmony", "Harmony")
	topic := s.createTopic(chapter.ID, "chords", "Chords", "v1")

	w, _ := s.do(http.MethodPut, fmt.Sprintf("/api/v1/topics/%d", topic.ID), s.contributorToken,
		map[string]interface{}{"content": "v2"})
	s.Equal(http.StatusOK, w.Code)

	// contributor cannot delete
	w, _ = s.do(http.MethodDelete, fmt.Sprintf("/api/v1/topics/%d", topic.ID), s.contributorToken, nil)
	s.Equal(http.StatusForbidden, w.Code)

	w, _ = s.do(http.MethodDelete, fmt.Sprintf("/api/v1/topics/%d", topic.ID), s.managerToken, nil)
	s.Equal(http.StatusOK, w.Code)

	var count int64
	s.db.Model(&domain.TopicVersion{}).Where("topic_id = ?", topic.ID).Count(&count)
	s.Equal(int64(0), count)
}

func (s *ContentAPISuite) TestBookmarksAndEnrollments() {
	subject := s.createSubject("statistics", "Statistics")
	chapter := s.createChapter(subject.ID, "sampling", "Sampling")
	topic := s.createTopic(chapter.ID, "bias", "Bias", "Text.")

	// bookmark a topic
	w, _ := s.do(http.MethodPost, fmt.Sprintf("/api/v1/topics/%d/bookmark", topic.ID), s.studentToken, nil)
	s.Equal(http.StatusCreated, w.Code)

	// duplicates conflict
	w, _ = s.do(http.MethodPost, fmt.Sprintf("/api/v1/topics/%d/bookmark", topic.ID), s.studentToken, nil)
	s.Equal(http.StatusConflict, w.Code)

	w, env := s.do(http.MethodGet, "/api/v1/me/bookmarks", s.studentToken, nil)
	s.Equal(http.StatusOK, w.Code)
	var bookmarks []domain.Bookmark
	s.decode(env, &bookmarks)
	s.Require().Len(bookmarks, 1)
	s.Equal(topic.ID, bookmarks[0].TopicID)

	w, _ = s.do(http.MethodDelete, fmt.Sprintf("/api/v1/topics/%d/bookmark", topic.ID), s.studentToken, nil)
	s.Equal(http.StatusOK, w.Code)

	// enroll in a subject
	w, _ = s.do(http.MethodPost, fmt.Sprintf("/api/v1/subjects/%d/enroll", subject.ID), s.studentToken, nil)
	s.Equal(http.StatusCreated, w.Code)

	w, env = s.do(http.MethodGet, "/api/v1/me/enrollments", s.studentToken, nil)
	s.Equal(http.StatusOK, w.Code)
	var enrollments []domain.Enrollment
	s.decode(env, &enrollments)
	s.Require().Len(enrollments, 1)
	s.Equal(subject.ID, enrollments[0].SubjectID)

	// racing duplicate enrollments: exactly one wins, the rest
	// conflict on the unique index instead of erroring out
	const racers = 4
	codes := make(chan int, racers)
	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/subjects/%d/enroll", subject.ID), nil)
			req.Header.Set("Authorization", "Bearer "+s.contributorToken)
			w := httptest.NewRecorder()
			s.router.ServeHTTP(w, req)
			codes <- w.Code
		}()
	}
	wg.Wait()
	close(codes)

	created, conflicted := 0, 0
	for code := range codes {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflicted++
		}
	}
	s.Equal(1, created)
	s.Equal(racers-1, conflicted)

	// anonymous callers get 401 on student endpoints
	w, _ = s.do(http.MethodPost, fmt.Sprintf("/api/v1/topics/%d/bookmark", topic.ID), "", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
}
