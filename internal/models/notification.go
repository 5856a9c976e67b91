package models

import "time"

// Recognized notification types. The column is an open set: system-generated
// types outside this list are stored and listed as-is, they just render with
// the generic push copy.
const (
	NotificationPostReply      = "POST_REPLY"
	NotificationCommentReply   = "COMMENT_REPLY"
	NotificationPostMention    = "POST_MENTION"
	NotificationCommentMention = "COMMENT_MENTION"
)

// Notification represents an event recorded for a user (PostgreSQL).
// Rows are immutable except for the single nil-to-timestamp transition of
// Read; expiry pruning is the only thing that deletes them.
type Notification struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Type      string     `json:"type" gorm:"size:30;index"`
	TargetID  string     `json:"target_id" gorm:"index;size:40;not null"`
	SenderID  *string    `json:"sender_id" gorm:"index;size:40"` // nil when sent by the system
	SubID     *string    `json:"sub_id" gorm:"size:40"`
	PostID    *string    `json:"post_id" gorm:"size:40"`
	CommentID *string    `json:"comment_id" gorm:"size:40"`
	Content   *string    `json:"content"`
	Read      *time.Time `json:"read"`
	CreatedAt time.Time  `json:"created_at" gorm:"index"`
}

// NotificationView is one row of the enriched notification listing. The
// related sub/post/comment fields are read-time snapshots and nil whenever
// the notification carries no such relation.
type NotificationView struct {
	ID                   uint       `json:"id"`
	Type                 string     `json:"type"`
	Read                 *time.Time `json:"read"`
	CreatedAt            time.Time  `json:"created_at"`
	SubID                *string    `json:"sub_id"`
	SubName              *string    `json:"sub_name"`
	SubNSFW              *bool      `json:"sub_nsfw"`
	PostID               *string    `json:"post_id"`
	CommentID            *string    `json:"comment_id"`
	Sender               *string    `json:"sender"` // sender display name
	SenderID             *string    `json:"sender_id"`
	Content              *string    `json:"content"`
	PostTitle            *string    `json:"post_title"`
	PostLink             *string    `json:"post_link"`
	PostContent          *string    `json:"post_content"`
	PostScore            *int       `json:"post_score"`
	PostNSFW             *bool      `json:"post_nsfw"`
	Posted               *time.Time `json:"posted"`
	CommentContent       *string    `json:"comment_content"`
	CommentScore         *int       `json:"comment_score"`
	AlreadyViewed        bool       `json:"already_viewed"`
	CommentContext       *string    `json:"comment_context"`
	CommentContextPosted *time.Time `json:"comment_context_posted"`
	CommentContextScore  *int       `json:"comment_context_score"`
	CommentContextID     *string    `json:"comment_context_id"`
	CommentPositive      *bool      `json:"comment_positive" gorm:"-"`
	PostPositive         *bool      `json:"post_positive" gorm:"-"`
}
