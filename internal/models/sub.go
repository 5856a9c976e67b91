package models

// Sub represents a community within the platform
type Sub struct {
	ID   string `json:"id" gorm:"primaryKey;size:40"`
	Name string `json:"name" gorm:"uniqueIndex"`
	NSFW bool   `json:"nsfw" gorm:"default:false"`
}

// SubMod is a moderator membership edge. A row with Invite=false marks an
// active moderator; Invite=true is a pending invitation and grants nothing.
type SubMod struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	UserID string `json:"user_id" gorm:"index;size:40;uniqueIndex:idx_sub_mod"`
	SubID  string `json:"sub_id" gorm:"index;size:40;uniqueIndex:idx_sub_mod"`
	Invite bool   `json:"invite" gorm:"default:false"`
}
