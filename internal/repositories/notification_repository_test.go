package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dobarx/hivemind/backend/internal/models"
	"github.com/dobarx/hivemind/backend/internal/testutil"
)

func strPtr(s string) *string { return &s }

func seedUser(t *testing.T, db *gorm.DB, id, name string) {
	t.Helper()
	require.NoError(t, db.Create(&models.User{ID: id, Name: name, Email: name + "@example.com"}).Error)
}

func seedSub(t *testing.T, db *gorm.DB, id, name string) {
	t.Helper()
	require.NoError(t, db.Create(&models.Sub{ID: id, Name: name}).Error)
}

func seedPost(t *testing.T, db *gorm.DB, id, subID, userID, title string) {
	t.Helper()
	require.NoError(t, db.Create(&models.SubPost{
		ID: id, SubID: subID, UserID: userID, Title: title,
		Link: "https://example.com/" + id, Content: "post content", Score: 3,
	}).Error)
}

func seedComment(t *testing.T, db *gorm.DB, id, postID, userID string, parentID *string) {
	t.Helper()
	require.NoError(t, db.Create(&models.SubPostComment{
		ID: id, PostID: postID, UserID: userID, ParentID: parentID,
		Content: "comment " + id, Score: 2,
	}).Error)
}

func TestListForUserPagination(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	seedUser(t, db, "u1", "alice")
	seedUser(t, db, "u2", "bob")

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 60; i++ {
		require.NoError(t, db.Create(&models.Notification{
			Type:      models.NotificationPostReply,
			TargetID:  "u2",
			SenderID:  strPtr("u1"),
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}).Error)
	}

	first, err := repo.ListForUser(ctx, "u2", 1)
	require.NoError(t, err)
	require.Len(t, first, NotificationPageSize)

	// Newest first.
	for i := 1; i < len(first); i++ {
		require.False(t, first[i].CreatedAt.After(first[i-1].CreatedAt))
	}

	second, err := repo.ListForUser(ctx, "u2", 2)
	require.NoError(t, err)
	require.Len(t, second, 10)

	seen := make(map[uint]bool)
	for _, view := range first {
		seen[view.ID] = true
	}
	for _, view := range second {
		require.False(t, seen[view.ID], "page 2 repeated notification %d", view.ID)
	}

	empty, err := repo.ListForUser(ctx, "u2", 3)
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestListForUserEnrichment(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	seedUser(t, db, "u1", "alice")
	seedUser(t, db, "u2", "bob")
	seedSub(t, db, "s1", "golang")
	seedPost(t, db, "p1", "s1", "u2", "generics in practice")
	seedComment(t, db, "c1", "p1", "u2", nil)
	seedComment(t, db, "c2", "p1", "u1", strPtr("c1"))
	require.NoError(t, db.Create(&models.SubPostCommentView{UserID: "u2", CommentID: "c2"}).Error)

	require.NoError(t, db.Create(&models.Notification{
		Type:      models.NotificationCommentReply,
		TargetID:  "u2",
		SenderID:  strPtr("u1"),
		SubID:     strPtr("s1"),
		PostID:    strPtr("p1"),
		CommentID: strPtr("c2"),
	}).Error)

	views, err := repo.ListForUser(ctx, "u2", 1)
	require.NoError(t, err)
	require.Len(t, views, 1)

	view := views[0]
	require.Equal(t, models.NotificationCommentReply, view.Type)
	require.Nil(t, view.Read)
	require.NotNil(t, view.SubName)
	require.Equal(t, "golang", *view.SubName)
	require.NotNil(t, view.PostTitle)
	require.Equal(t, "generics in practice", *view.PostTitle)
	require.NotNil(t, view.PostScore)
	require.Equal(t, 3, *view.PostScore)
	require.NotNil(t, view.Sender)
	require.Equal(t, "alice", *view.Sender)
	require.NotNil(t, view.CommentContent)
	require.Equal(t, "comment c2", *view.CommentContent)
	require.True(t, view.AlreadyViewed)

	// One level of parent-comment context.
	require.NotNil(t, view.CommentContext)
	require.Equal(t, "comment c1", *view.CommentContext)
	require.NotNil(t, view.CommentContextID)
	require.Equal(t, "c1", *view.CommentContextID)
	require.NotNil(t, view.CommentContextScore)
	require.Equal(t, 2, *view.CommentContextScore)
}

func TestListForUserVoteMerge(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	seedUser(t, db, "u1", "alice")
	seedUser(t, db, "u2", "bob")
	seedSub(t, db, "s1", "golang")
	seedPost(t, db, "p1", "s1", "u2", "first post")
	seedPost(t, db, "p2", "s1", "u2", "second post")
	seedComment(t, db, "c1", "p1", "u1", nil)

	// Viewer voted the post up and the comment down.
	require.NoError(t, db.Create(&models.SubPostVote{UserID: "u2", PostID: "p1", Positive: true}).Error)
	require.NoError(t, db.Create(&models.SubPostCommentVote{UserID: "u2", CommentID: "c1", Positive: false}).Error)

	require.NoError(t, db.Create(&models.Notification{
		Type: models.NotificationCommentReply, TargetID: "u2", SenderID: strPtr("u1"),
		SubID: strPtr("s1"), PostID: strPtr("p1"), CommentID: strPtr("c1"),
	}).Error)
	require.NoError(t, db.Create(&models.Notification{
		Type: models.NotificationPostReply, TargetID: "u2", SenderID: strPtr("u1"),
		SubID: strPtr("s1"), PostID: strPtr("p2"),
		CreatedAt: time.Now().UTC().Add(-time.Minute),
	}).Error)

	views, err := repo.ListForUser(ctx, "u2", 1)
	require.NoError(t, err)
	require.Len(t, views, 2)

	voted := views[0] // newest: the comment reply on p1
	require.NotNil(t, voted.PostPositive)
	require.True(t, *voted.PostPositive)
	require.NotNil(t, voted.CommentPositive)
	require.False(t, *voted.CommentPositive)

	unvoted := views[1]
	require.Nil(t, unvoted.PostPositive)
	require.Nil(t, unvoted.CommentPositive)
}

func TestListForUserSkipsDeletedComments(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	seedUser(t, db, "u1", "alice")
	seedUser(t, db, "u2", "bob")
	seedSub(t, db, "s1", "golang")
	seedPost(t, db, "p1", "s1", "u2", "a post")
	seedComment(t, db, "c1", "p1", "u1", nil)

	deleted := 1
	require.NoError(t, db.Model(&models.SubPostComment{}).
		Where("id = ?", "c1").Update("status", &deleted).Error)

	require.NoError(t, db.Create(&models.Notification{
		Type: models.NotificationCommentReply, TargetID: "u2", SenderID: strPtr("u1"),
		SubID: strPtr("s1"), PostID: strPtr("p1"), CommentID: strPtr("c1"),
	}).Error)

	views, err := repo.ListForUser(ctx, "u2", 1)
	require.NoError(t, err)
	require.Empty(t, views)
}

func TestListForUserHidesBlockedSenders(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	seedUser(t, db, "u1", "alice")
	seedUser(t, db, "u2", "bob")
	seedSub(t, db, "s1", "golang")

	// bob blocks alice.
	require.NoError(t, db.Create(&models.UserContentBlock{UserID: "u2", TargetID: "u1"}).Error)

	require.NoError(t, db.Create(&models.Notification{
		Type: models.NotificationPostReply, TargetID: "u2", SenderID: strPtr("u1"), SubID: strPtr("s1"),
	}).Error)
	// Non-reply types stay visible regardless of blocking.
	require.NoError(t, db.Create(&models.Notification{
		Type: "SUB_BAN", TargetID: "u2", SenderID: strPtr("u1"), SubID: strPtr("s1"),
		CreatedAt: time.Now().UTC().Add(-time.Minute),
	}).Error)

	views, err := repo.ListForUser(ctx, "u2", 1)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, "SUB_BAN", views[0].Type)

	// A pending moderator invite does not override the block.
	invite := models.SubMod{UserID: "u1", SubID: "s1", Invite: true}
	require.NoError(t, db.Create(&invite).Error)
	views, err = repo.ListForUser(ctx, "u2", 1)
	require.NoError(t, err)
	require.Len(t, views, 1)

	// An active moderator seat for the sender does.
	require.NoError(t, db.Model(&models.SubMod{}).
		Where("id = ?", invite.ID).Update("invite", false).Error)
	views, err = repo.ListForUser(ctx, "u2", 1)
	require.NoError(t, err)
	require.Len(t, views, 2)

	// So does one for the viewer.
	require.NoError(t, db.Delete(&models.SubMod{}, invite.ID).Error)
	require.NoError(t, db.Create(&models.SubMod{UserID: "u2", SubID: "s1", Invite: false}).Error)
	views, err = repo.ListForUser(ctx, "u2", 1)
	require.NoError(t, err)
	require.Len(t, views, 2)
}

func TestMarkAllReadIsIdempotent(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	seedUser(t, db, "u2", "bob")
	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&models.Notification{
			Type: "SYSTEM", TargetID: "u2",
			CreatedAt: time.Now().UTC().Add(time.Duration(-i) * time.Minute),
		}).Error)
	}

	count, err := repo.CountUnread(ctx, "u2")
	require.NoError(t, err)
	require.EqualValues(t, 3, count)

	require.NoError(t, repo.MarkAllRead(ctx, "u2"))
	count, err = repo.CountUnread(ctx, "u2")
	require.NoError(t, err)
	require.EqualValues(t, 0, count)

	var firstPass []models.Notification
	require.NoError(t, db.Where("target_id = ?", "u2").Find(&firstPass).Error)

	require.NoError(t, repo.MarkAllRead(ctx, "u2"))
	var secondPass []models.Notification
	require.NoError(t, db.Where("target_id = ?", "u2").Find(&secondPass).Error)

	// The second call matched no rows: the read timestamps are untouched.
	for i := range firstPass {
		require.NotNil(t, firstPass[i].Read)
		require.Equal(t, firstPass[i].Read.UTC(), secondPass[i].Read.UTC())
	}
}

func TestDeleteExpiredSparesVisibleIDs(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	seedUser(t, db, "u2", "bob")

	old1 := models.Notification{Type: "SYSTEM", TargetID: "u2", CreatedAt: time.Now().UTC().AddDate(0, 0, -40)}
	old2 := models.Notification{Type: "SYSTEM", TargetID: "u2", CreatedAt: time.Now().UTC().AddDate(0, 0, -35)}
	fresh := models.Notification{Type: "SYSTEM", TargetID: "u2", CreatedAt: time.Now().UTC().AddDate(0, 0, -2)}
	require.NoError(t, db.Create(&old1).Error)
	require.NoError(t, db.Create(&old2).Error)
	require.NoError(t, db.Create(&fresh).Error)

	// old1 is still on the visible page, old2 is not.
	require.NoError(t, repo.DeleteExpired(ctx, "u2", []uint{old1.ID, fresh.ID}))

	var remaining []models.Notification
	require.NoError(t, db.Where("target_id = ?", "u2").Find(&remaining).Error)
	require.Len(t, remaining, 2)

	ids := make(map[uint]bool)
	for _, n := range remaining {
		ids[n.ID] = true
	}
	require.True(t, ids[old1.ID], "visible expired notification must survive")
	require.True(t, ids[fresh.ID])
	require.False(t, ids[old2.ID], "invisible expired notification must be pruned")
}

func TestDeleteExpiredScopesToTargetUser(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	seedUser(t, db, "u2", "bob")
	seedUser(t, db, "u3", "carol")

	mine := models.Notification{Type: "SYSTEM", TargetID: "u2", CreatedAt: time.Now().UTC().AddDate(0, 0, -40)}
	theirs := models.Notification{Type: "SYSTEM", TargetID: "u3", CreatedAt: time.Now().UTC().AddDate(0, 0, -40)}
	require.NoError(t, db.Create(&mine).Error)
	require.NoError(t, db.Create(&theirs).Error)

	require.NoError(t, repo.DeleteExpired(ctx, "u2", []uint{}))

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Where("target_id = ?", "u3").Count(&count).Error)
	require.EqualValues(t, 1, count)
	require.NoError(t, db.Model(&models.Notification{}).Where("target_id = ?", "u2").Count(&count).Error)
	require.EqualValues(t, 0, count)
}

func TestListForUserOnlyReturnsOwnRows(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	seedUser(t, db, "u2", "bob")
	seedUser(t, db, "u3", "carol")
	for i, target := range []string{"u2", "u3", "u2"} {
		require.NoError(t, db.Create(&models.Notification{
			Type: "SYSTEM", TargetID: target,
			CreatedAt: time.Now().UTC().Add(time.Duration(-i) * time.Minute),
		}).Error)
	}

	views, err := repo.ListForUser(ctx, "u2", 1)
	require.NoError(t, err)
	require.Len(t, views, 2)
	for _, view := range views {
		require.Equal(t, "SYSTEM", view.Type, fmt.Sprintf("unexpected row %d", view.ID))
	}
}
