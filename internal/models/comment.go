package models

import "time"

// SubPostComment represents a comment on a post. A non-null Status marks the
// comment as soft-deleted and keeps it out of notification listings.
type SubPostComment struct {
	ID       string    `json:"id" gorm:"primaryKey;size:40"`
	PostID   string    `json:"post_id" gorm:"index;size:40"`
	UserID   string    `json:"user_id" gorm:"index;size:40"`
	ParentID *string   `json:"parent_id" gorm:"index;size:40"` // nil for top-level comments
	Content  string    `json:"content"`
	Score    int       `json:"score" gorm:"default:0"`
	Status   *int      `json:"status"`
	Posted   time.Time `json:"posted" gorm:"autoCreateTime"`
}

// SubPostCommentVote records a user's vote direction on a comment
type SubPostCommentVote struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	UserID    string `json:"user_id" gorm:"size:40;uniqueIndex:idx_comment_vote"`
	CommentID string `json:"comment_id" gorm:"size:40;uniqueIndex:idx_comment_vote"`
	Positive  bool   `json:"positive"`
}

// SubPostCommentView is a per-user receipt marking a comment as seen. It only
// annotates notification listings; it never affects retention.
type SubPostCommentView struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	UserID    string `json:"user_id" gorm:"size:40;uniqueIndex:idx_comment_view"`
	CommentID string `json:"comment_id" gorm:"size:40;uniqueIndex:idx_comment_view"`
}
