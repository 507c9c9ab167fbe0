package domain

import "time"

// ContentStatus lifecycle state shared by chapters and topics
type ContentStatus string

const (
	StatusDraft     ContentStatus = "draft"
	StatusInReview  ContentStatus = "in_review"
	StatusApproved  ContentStatus = "approved"
	StatusPublished ContentStatus = "published"
	StatusArchived  ContentStatus = "archived"
)

// WorkflowAction is a named transition on the review state machine
type WorkflowAction string

const (
	ActionSubmitReview WorkflowAction = "submit_review"
	ActionApprove      WorkflowAction = "approve"
	ActionPublish      WorkflowAction = "publish"
	ActionReject       WorkflowAction = "reject"
	ActionArchive      WorkflowAction = "archive"
)

// legalSources lists the states each workflow action may fire from.
// Archived is terminal: no action leaves it.
var legalSources = map[WorkflowAction][]ContentStatus{
	ActionSubmitReview: {StatusDraft},
	ActionApprove:      {StatusInReview},
	ActionPublish:      {StatusDraft, StatusApproved},
	ActionReject:       {StatusDraft, StatusInReview, StatusApproved, StatusPublished},
	ActionArchive:      {StatusDraft, StatusInReview, StatusApproved, StatusPublished},
}

// CanTransition reports whether action may fire from the given status
func CanTransition(from ContentStatus, action WorkflowAction) bool {
	for _, s := range legalSources[action] {
		if s == from {
			return true
		}
	}
	return false
}

// TransitionTarget returns the status an action lands in
func TransitionTarget(action WorkflowAction) ContentStatus {
	switch action {
	case ActionSubmitReview:
		return StatusInReview
	case ActionApprove:
		return StatusApproved
	case ActionPublish:
		return StatusPublished
	case ActionReject:
		return StatusDraft
	case ActionArchive:
		return StatusArchived
	}
	return ""
}

// Chapter ordered grouping of topics under a subject
type Chapter struct {
	ID          uint64        `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	SubjectID   uint64        `gorm:"column:subject_id;index:idx_chapters_subject_slug,unique" json:"subject_id"`
	Title       string        `gorm:"column:title;type:varchar(255)" json:"title"`
	Slug        string        `gorm:"column:slug;type:varchar(100);index:idx_chapters_subject_slug,unique" json:"slug"`
	Description *string       `gorm:"column:description;type:text" json:"description,omitempty"`
	OrderNum    uint          `gorm:"column:order_num;default:0" json:"order_num"`
	Status      ContentStatus `gorm:"column:status;type:varchar(20);default:'draft'" json:"status"`
	IsVisible   bool          `gorm:"column:is_visible;default:true" json:"is_visible"`
	CreatedAt   time.Time     `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time     `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Chapter) TableName() string { return "chapters" }

// ExcerptMaxLen is the hard cap on stored excerpts; DeriveExcerptLen
// is how much of the content an auto-derived excerpt keeps.
const (
	ExcerptMaxLen    = 500
	DeriveExcerptLen = 200
)

// Topic the leaf content unit: a versioned Markdown page
type Topic struct {
	ID              uint64        `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ChapterID       uint64        `gorm:"column:chapter_id;index:idx_topics_chapter_slug,unique" json:"chapter_id"`
	Chapter         *Chapter      `gorm:"foreignKey:ChapterID" json:"chapter,omitempty"`
	Title           string        `gorm:"column:title;type:varchar(255)" json:"title"`
	Slug            string        `gorm:"column:slug;type:varchar(100);index:idx_topics_chapter_slug,unique" json:"slug"`
	Content         string        `gorm:"column:content;type:mediumtext" json:"content"`
	Excerpt         string        `gorm:"column:excerpt;type:varchar(500)" json:"excerpt"`
	OrderNum        uint          `gorm:"column:order_num;default:0" json:"order_num"`
	Status          ContentStatus `gorm:"column:status;type:varchar(20);default:'draft'" json:"status"`
	IsVisible       bool          `gorm:"column:is_visible;default:true" json:"is_visible"`
	MetaTitle       *string       `gorm:"column:meta_title;type:varchar(255)" json:"meta_title,omitempty"`
	MetaDescription *string       `gorm:"column:meta_description;type:varchar(500)" json:"meta_description,omitempty"`
	AuthorID        string        `gorm:"column:author_id;type:varchar(50);index" json:"author_id"`
	CurrentVersion  uint          `gorm:"column:current_version;default:1" json:"current_version"`
	ScheduledAt     *time.Time    `gorm:"column:scheduled_at;index" json:"scheduled_at,omitempty"`
	PublishedAt     *time.Time    `gorm:"column:published_at" json:"published_at,omitempty"`
	CreatedAt       time.Time     `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time     `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Topic) TableName() string { return "topics" }

// TopicVersion immutable content snapshot. Versions of a topic form a
// gapless sequence starting at 1; rows are never updated or deleted
// except by cascade when the topic itself is hard-deleted.
type TopicVersion struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	TopicID    uint64    `gorm:"column:topic_id;index:idx_versions_topic_version,unique" json:"topic_id"`
	Version    uint      `gorm:"column:version;index:idx_versions_topic_version,unique" json:"version"`
	Content    string    `gorm:"column:content;type:mediumtext" json:"content"`
	Changelog  string    `gorm:"column:changelog;type:varchar(500)" json:"changelog"`
	AuthorID   string    `gorm:"column:author_id;type:varchar(50)" json:"author_id"`
	AuthorName string    `gorm:"column:author_name;type:varchar(100)" json:"author_name"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (TopicVersion) TableName() string { return "topic_versions" }

// CreateChapterRequest request body for chapter creation
type CreateChapterRequest struct {
	Title       string  `json:"title" binding:"required,max=255"`
	Slug        string  `json:"slug" binding:"required,max=100"`
	Description *string `json:"description"`
	OrderNum    *uint   `json:"order_num"`
}

// UpdateChapterRequest partial update; nil fields are left untouched
type UpdateChapterRequest struct {
	Title       *string        `json:"title"`
	Slug        *string        `json:"slug"`
	Description *string        `json:"description"`
	OrderNum    *uint          `json:"order_num"`
	Status      *ContentStatus `json:"status"`
	IsVisible   *bool          `json:"is_visible"`
}

// CreateTopicRequest request body for topic creation
type CreateTopicRequest struct {
	Title           string     `json:"title" binding:"required,max=255"`
	Slug            string     `json:"slug" binding:"required,max=100"`
	Content         string     `json:"content" binding:"required"`
	Excerpt         *string    `json:"excerpt" binding:"omitempty,max=500"`
	OrderNum        *uint      `json:"order_num"`
	MetaTitle       *string    `json:"meta_title"`
	MetaDescription *string    `json:"meta_description"`
	ScheduledAt     *time.Time `json:"scheduled_at"`
}

// UpdateTopicRequest partial update; a non-nil Content that differs
// from the stored content appends a new version
type UpdateTopicRequest struct {
	Title           *string    `json:"title"`
	Slug            *string    `json:"slug"`
	Content         *string    `json:"content"`
	Excerpt         *string    `json:"excerpt" binding:"omitempty,max=500"`
	OrderNum        *uint      `json:"order_num"`
	IsVisible       *bool      `json:"is_visible"`
	MetaTitle       *string    `json:"meta_title"`
	MetaDescription *string    `json:"meta_description"`
	ScheduledAt     *time.Time `json:"scheduled_at"`
	Changelog       *string    `json:"changelog"`
}

// ReorderRequest assigns order = slice index to each id
type ReorderRequest struct {
	OrderedIDs []uint64 `json:"ordered_ids" binding:"required,min=1"`
}

// RejectRequest optional reviewer feedback, recorded in the audit
// payload only
type RejectRequest struct {
	Reason string `json:"reason"`
}
