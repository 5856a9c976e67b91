package models

import "time"

// SubPost represents a post submitted to a sub
type SubPost struct {
	ID      string    `json:"id" gorm:"primaryKey;size:40"`
	SubID   string    `json:"sub_id" gorm:"index;size:40"`
	UserID  string    `json:"user_id" gorm:"index;size:40"`
	Title   string    `json:"title"`
	Link    string    `json:"link"`
	Content string    `json:"content"`
	Score   int       `json:"score" gorm:"default:0"`
	NSFW    bool      `json:"nsfw" gorm:"default:false"`
	Posted  time.Time `json:"posted" gorm:"autoCreateTime"`
}

// SubPostVote records a user's vote direction on a post
type SubPostVote struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	UserID   string `json:"user_id" gorm:"size:40;uniqueIndex:idx_post_vote"`
	PostID   string `json:"post_id" gorm:"size:40;uniqueIndex:idx_post_vote"`
	Positive bool   `json:"positive"`
}
