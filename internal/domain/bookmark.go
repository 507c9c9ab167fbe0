package domain

import "time"

// Bookmark marks a topic saved by a user
type Bookmark struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"column:user_id;type:varchar(50);index:idx_bookmarks_user_topic,unique" json:"user_id"`
	TopicID   uint64    `gorm:"column:topic_id;index:idx_bookmarks_user_topic,unique" json:"topic_id"`
	Topic     *Topic    `gorm:"foreignKey:TopicID" json:"topic,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Bookmark) TableName() string { return "bookmarks" }
