package models

// UserContentBlock is a directed block edge: UserID does not want to see
// content or notifications from TargetID.
type UserContentBlock struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	UserID   string `json:"user_id" gorm:"size:40;uniqueIndex:idx_content_block"`
	TargetID string `json:"target_id" gorm:"size:40;uniqueIndex:idx_content_block"`
}
