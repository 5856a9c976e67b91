package repositories

import (
	"context"
	"time"

	"github.com/dobarx/hivemind/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationPageSize is the fixed page length of the notification listing.
const NotificationPageSize = 50

// notificationRetention is how long unread-and-unseen notifications are kept
// before MarkAllRead prunes them.
const notificationRetention = 30 * 24 * time.Hour

// blockableTypes are the notification types hidden from the recipient when
// the sender is blocked. Every other type is always visible.
var blockableTypes = []string{
	models.NotificationPostReply,
	models.NotificationCommentReply,
	models.NotificationPostMention,
	models.NotificationCommentMention,
}

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListForUser(ctx context.Context, userID string, page int) ([]models.NotificationView, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	MarkAllRead(ctx context.Context, userID string) error
	DeleteExpired(ctx context.Context, userID string, keep []uint) error
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

// ListForUser returns one page of the viewer's notifications, newest first,
// enriched with snapshots of the related sub, post, comment and one level of
// parent-comment context. Rows whose comment was soft-deleted are dropped,
// and rows from blocked senders are hidden unless either party is an active
// moderator of the notification's sub.
func (r *notificationRepository) ListForUser(ctx context.Context, userID string, page int) ([]models.NotificationView, error) {
	if page < 1 {
		page = 1
	}

	var views []models.NotificationView
	err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Select(`notifications.id AS id,
			notifications.type AS type,
			notifications.read AS read,
			notifications.created_at AS created_at,
			notifications.sub_id AS sub_id,
			subs.name AS sub_name,
			subs.nsfw AS sub_nsfw,
			notifications.post_id AS post_id,
			notifications.comment_id AS comment_id,
			users.name AS sender,
			notifications.sender_id AS sender_id,
			notifications.content AS content,
			sub_posts.title AS post_title,
			sub_posts.link AS post_link,
			sub_posts.content AS post_content,
			sub_posts.score AS post_score,
			sub_posts.nsfw AS post_nsfw,
			sub_posts.posted AS posted,
			sub_post_comments.content AS comment_content,
			sub_post_comments.score AS comment_score,
			(sub_post_comment_views.id IS NOT NULL) AS already_viewed,
			parent_comments.content AS comment_context,
			parent_comments.posted AS comment_context_posted,
			parent_comments.score AS comment_context_score,
			parent_comments.id AS comment_context_id`).
		Joins("LEFT JOIN subs ON subs.id = notifications.sub_id").
		Joins("LEFT JOIN sub_posts ON sub_posts.id = notifications.post_id").
		Joins("LEFT JOIN sub_post_comments ON sub_post_comments.id = notifications.comment_id").
		Joins("LEFT JOIN sub_post_comment_views ON sub_post_comment_views.comment_id = sub_post_comments.id AND sub_post_comment_views.user_id = ?", userID).
		Joins("LEFT JOIN users ON users.id = notifications.sender_id").
		Joins("LEFT JOIN user_content_blocks ON user_content_blocks.user_id = ? AND user_content_blocks.target_id = users.id", userID).
		Joins("LEFT JOIN sub_mods AS sender_mods ON sender_mods.user_id = users.id AND sender_mods.sub_id = notifications.sub_id AND sender_mods.invite = ?", false).
		Joins("LEFT JOIN sub_mods AS viewer_mods ON viewer_mods.user_id = ? AND viewer_mods.sub_id = notifications.sub_id AND viewer_mods.invite = ?", userID, false).
		Joins("LEFT JOIN sub_post_comments AS parent_comments ON parent_comments.id = sub_post_comments.parent_id").
		Where("notifications.target_id = ?", userID).
		Where("sub_post_comments.status IS NULL").
		Where("(user_content_blocks.id IS NULL OR notifications.type NOT IN ? OR sender_mods.id IS NOT NULL OR viewer_mods.id IS NOT NULL)", blockableTypes).
		Order("notifications.created_at DESC, notifications.id DESC").
		Limit(NotificationPageSize).
		Offset((page - 1) * NotificationPageSize).
		Scan(&views).Error
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return views, nil
	}

	return r.mergeVotes(ctx, userID, views)
}

type notificationVotes struct {
	ID              uint
	PostPositive    *bool
	CommentPositive *bool
}

// mergeVotes fetches the viewer's vote direction for only the notifications
// already on the page and merges them in-memory by notification id. Joining
// the vote tables into the main query made the Postgres planner do far too
// much work for users with long histories.
func (r *notificationRepository) mergeVotes(ctx context.Context, userID string, views []models.NotificationView) ([]models.NotificationView, error) {
	ids := make([]uint, 0, len(views))
	for _, view := range views {
		ids = append(ids, view.ID)
	}

	var votes []notificationVotes
	err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Select(`notifications.id AS id,
			sub_post_votes.positive AS post_positive,
			sub_post_comment_votes.positive AS comment_positive`).
		Joins("LEFT JOIN sub_posts ON sub_posts.id = notifications.post_id").
		Joins("LEFT JOIN sub_post_votes ON sub_post_votes.user_id = ? AND sub_post_votes.post_id = sub_posts.id", userID).
		Joins("LEFT JOIN sub_post_comments ON sub_post_comments.id = notifications.comment_id").
		Joins("LEFT JOIN sub_post_comment_votes ON sub_post_comment_votes.user_id = ? AND sub_post_comment_votes.comment_id = sub_post_comments.id", userID).
		Where("notifications.id IN ?", ids).
		Scan(&votes).Error
	if err != nil {
		return nil, err
	}

	votesByID := make(map[uint]notificationVotes, len(votes))
	for _, vote := range votes {
		votesByID[vote.ID] = vote
	}
	for i := range views {
		if vote, ok := votesByID[views[i].ID]; ok {
			views[i].PostPositive = vote.PostPositive
			views[i].CommentPositive = vote.CommentPositive
		}
	}
	return views, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("target_id = ? AND read IS NULL", userID).
		Count(&count).Error
	return count, err
}

// MarkAllRead stamps every unread notification of the user. Idempotent: a
// second call matches no rows.
func (r *notificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("target_id = ? AND read IS NULL", userID).
		Update("read", time.Now().UTC()).Error
}

// DeleteExpired removes the user's notifications older than the retention
// window, sparing the ids in keep so nothing visible on the caller's screen
// vanishes mid-session.
func (r *notificationRepository) DeleteExpired(ctx context.Context, userID string, keep []uint) error {
	query := r.db.WithContext(ctx).
		Where("target_id = ? AND created_at < ?", userID, time.Now().UTC().Add(-notificationRetention))
	if len(keep) > 0 {
		query = query.Where("id NOT IN ?", keep)
	}
	return query.Delete(&models.Notification{}).Error
}
