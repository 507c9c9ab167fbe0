package routes

import (
	"github.com/edustack/edustack-backend/internal/handler"
	"github.com/edustack/edustack-backend/internal/middleware"
	"github.com/edustack/edustack-backend/pkg/jwt"
	"github.com/gin-gonic/gin"
)

// Handlers bundles everything Setup wires into the router
type Handlers struct {
	Curriculum *handler.CurriculumHandler
	Chapter    *handler.ChapterHandler
	Topic      *handler.TopicHandler
	Version    *handler.VersionHandler
	Workflow   *handler.WorkflowHandler
	Reader     *handler.ReaderHandler
	Bookmark   *handler.BookmarkHandler
	Enrollment *handler.EnrollmentHandler
	Audit      *handler.AuditHandler
}

// Setup configures all API routes
func Setup(router *gin.Engine, h *Handlers, jwtManager *jwt.Manager) {
	api := router.Group("/api/v1")
	auth := middleware.JWTAuth(jwtManager)
	optionalAuth := middleware.OptionalJWTAuth(jwtManager)

	// Public read API: published, visible content only
	public := api.Group("/public")
	public.GET("/subjects", h.Reader.ListSubjects)
	public.GET("/subjects/:subject/chapters", h.Reader.ListChapters)
	public.GET("/subjects/:subject/chapters/:chapter/topics", h.Reader.ListTopics)
	public.GET("/subjects/:subject/chapters/:chapter/topics/:topic", h.Reader.GetTopic)

	// Curriculum hierarchy (read-only reference data)
	api.GET("/universities", h.Curriculum.ListUniversities)
	api.GET("/universities/:id/campuses", h.Curriculum.ListCampuses)
	api.GET("/campuses/:id/departments", h.Curriculum.ListDepartments)
	api.GET("/departments/:id/programs", h.Curriculum.ListPrograms)
	api.GET("/programs/:id/semesters", h.Curriculum.ListSemesters)

	// Subjects
	subjects := api.Group("/subjects")
	subjects.GET("", optionalAuth, h.Curriculum.ListSubjects)
	subjects.GET("/slug/:slug", h.Curriculum.GetSubject)

	// Chapters (nested under subjects)
	subjects.GET("/:id/chapters", auth, middleware.RequireContributor(), h.Chapter.ListChapters)
	subjects.POST("/:id/chapters", auth, middleware.RequireContributor(), h.Chapter.CreateChapter)
	subjects.PUT("/:id/chapters/reorder", auth, middleware.RequireContributor(), h.Chapter.ReorderChapters)

	chapters := api.Group("/chapters", auth)
	chapters.PUT("/:id", middleware.RequireContributor(), h.Chapter.UpdateChapter)
	chapters.DELETE("/:id", middleware.RequireManager(), h.Chapter.DeleteChapter)

	// Topics (nested under chapters)
	chapters.GET("/:id/topics", middleware.RequireContributor(), h.Topic.ListTopics)
	chapters.POST("/:id/topics", middleware.RequireContributor(), h.Topic.CreateTopic)
	chapters.PUT("/:id/topics/reorder", middleware.RequireContributor(), h.Topic.ReorderTopics)

	topics := api.Group("/topics", auth)
	topics.GET("/:id", middleware.RequireContributor(), h.Topic.GetTopic)
	topics.PUT("/:id", middleware.RequireContributor(), h.Topic.UpdateTopic)
	topics.DELETE("/:id", middleware.RequireManager(), h.Topic.DeleteTopic)

	// Version ledger
	topics.GET("/:id/versions", middleware.RequireContributor(), h.Version.ListVersions)
	topics.GET("/:id/versions/:version", middleware.RequireContributor(), h.Version.GetVersion)
	topics.POST("/:id/versions/:version/restore", middleware.RequireContributor(), h.Version.RestoreVersion)

	// Review workflow. Contributors submit; managers promote.
	topics.POST("/:id/submit", middleware.RequireContributor(), h.Workflow.SubmitForReview)
	topics.POST("/:id/approve", middleware.RequireManager(), h.Workflow.Approve)
	topics.POST("/:id/publish", middleware.RequireManager(), h.Workflow.Publish)
	topics.POST("/:id/reject", middleware.RequireManager(), h.Workflow.Reject)
	topics.POST("/:id/archive", middleware.RequireManager(), h.Workflow.Archive)

	// Bookmarks
	topics.POST("/:id/bookmark", middleware.RequireStudent(), h.Bookmark.AddBookmark)
	topics.DELETE("/:id/bookmark", middleware.RequireStudent(), h.Bookmark.RemoveBookmark)

	// Enrollments
	subjects.POST("/:id/enroll", auth, middleware.RequireStudent(), h.Enrollment.Enroll)
	subjects.DELETE("/:id/enroll", auth, middleware.RequireStudent(), h.Enrollment.Withdraw)

	me := api.Group("/me", auth)
	me.GET("/bookmarks", h.Bookmark.ListBookmarks)
	me.GET("/enrollments", h.Enrollment.ListEnrollments)

	// Admin
	admin := api.Group("/admin", auth, middleware.RequireAdmin())
	admin.POST("/subjects", h.Curriculum.CreateSubject)
	admin.PUT("/subjects/:id", h.Curriculum.UpdateSubject)
	admin.DELETE("/subjects/:id", h.Curriculum.DeleteSubject)
	admin.GET("/audit-logs", h.Audit.ListAuditLogs)
}
