package repositories

import (
	"context"

	"gorm.io/gorm"
)

// BlockRepository decides whether a notification from a sender must be
// suppressed because the recipient blocked them.
type BlockRepository interface {
	IsBlockedForDelivery(ctx context.Context, senderID, targetID string, subID *string) (bool, error)
}

type blockRepository struct {
	db *gorm.DB
}

func NewBlockRepository(db *gorm.DB) BlockRepository {
	return &blockRepository{db: db}
}

// IsBlockedForDelivery reports whether target blocks sender and neither of
// them holds an active (non-invite) moderator seat on the sub. Moderator
// status on either side overrides the block. A nil subID means no moderator
// override can apply.
func (r *blockRepository) IsBlockedForDelivery(ctx context.Context, senderID, targetID string, subID *string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("user_content_blocks").
		Joins("LEFT JOIN sub_mods AS blocker_mods ON blocker_mods.user_id = user_content_blocks.user_id AND blocker_mods.sub_id = ? AND blocker_mods.invite = ?", subID, false).
		Joins("LEFT JOIN sub_mods AS sender_mods ON sender_mods.user_id = user_content_blocks.target_id AND sender_mods.sub_id = ? AND sender_mods.invite = ?", subID, false).
		Where("user_content_blocks.user_id = ? AND user_content_blocks.target_id = ?", targetID, senderID).
		Where("blocker_mods.id IS NULL AND sender_mods.id IS NULL").
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
