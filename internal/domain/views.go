package domain

import "time"

// TopicSummary list item for the public read API
type TopicSummary struct {
	ID          uint64     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt"`
	OrderNum    uint       `json:"order_num"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// ToSummary converts a topic to its public list representation
func (t *Topic) ToSummary() *TopicSummary {
	return &TopicSummary{
		ID:          t.ID,
		Title:       t.Title,
		Slug:        t.Slug,
		Excerpt:     t.Excerpt,
		OrderNum:    t.OrderNum,
		PublishedAt: t.PublishedAt,
	}
}

// TopicView full public detail of a published topic, with the
// Markdown content rendered to HTML
type TopicView struct {
	ID              uint64     `json:"id"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Excerpt         string     `json:"excerpt"`
	ContentHTML     string     `json:"content_html"`
	MetaTitle       *string    `json:"meta_title,omitempty"`
	MetaDescription *string    `json:"meta_description,omitempty"`
	OrderNum        uint       `json:"order_num"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ToView converts a topic to its public detail representation
func (t *Topic) ToView(contentHTML string) *TopicView {
	return &TopicView{
		ID:              t.ID,
		Title:           t.Title,
		Slug:            t.Slug,
		Excerpt:         t.Excerpt,
		ContentHTML:     contentHTML,
		MetaTitle:       t.MetaTitle,
		MetaDescription: t.MetaDescription,
		OrderNum:        t.OrderNum,
		PublishedAt:     t.PublishedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}
