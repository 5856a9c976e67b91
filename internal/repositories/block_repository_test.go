package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dobarx/hivemind/backend/internal/models"
	"github.com/dobarx/hivemind/backend/internal/testutil"
)

func TestIsBlockedForDelivery(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	repo := NewBlockRepository(db)
	ctx := context.Background()

	seedUser(t, db, "u1", "alice")
	seedUser(t, db, "u2", "bob")
	seedSub(t, db, "s1", "golang")

	// No block edge: not blocked. This is the normal soft miss.
	blocked, err := repo.IsBlockedForDelivery(ctx, "u1", "u2", strPtr("s1"))
	require.NoError(t, err)
	require.False(t, blocked)

	// bob blocks alice.
	require.NoError(t, db.Create(&models.UserContentBlock{UserID: "u2", TargetID: "u1"}).Error)

	blocked, err = repo.IsBlockedForDelivery(ctx, "u1", "u2", strPtr("s1"))
	require.NoError(t, err)
	require.True(t, blocked)

	// The direction matters: alice has not blocked bob.
	blocked, err = repo.IsBlockedForDelivery(ctx, "u2", "u1", strPtr("s1"))
	require.NoError(t, err)
	require.False(t, blocked)

	// Blocking also applies when the notification has no sub.
	blocked, err = repo.IsBlockedForDelivery(ctx, "u1", "u2", nil)
	require.NoError(t, err)
	require.True(t, blocked)
}

func TestIsBlockedForDeliveryModeratorOverride(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	repo := NewBlockRepository(db)
	ctx := context.Background()

	seedUser(t, db, "u1", "alice")
	seedUser(t, db, "u2", "bob")
	seedSub(t, db, "s1", "golang")
	seedSub(t, db, "s2", "rustlang")
	require.NoError(t, db.Create(&models.UserContentBlock{UserID: "u2", TargetID: "u1"}).Error)

	// A pending invite grants nothing.
	invite := models.SubMod{UserID: "u1", SubID: "s1", Invite: true}
	require.NoError(t, db.Create(&invite).Error)
	blocked, err := repo.IsBlockedForDelivery(ctx, "u1", "u2", strPtr("s1"))
	require.NoError(t, err)
	require.True(t, blocked)

	// An active seat for the sender overrides the block on that sub only.
	require.NoError(t, db.Model(&models.SubMod{}).Where("id = ?", invite.ID).Update("invite", false).Error)
	blocked, err = repo.IsBlockedForDelivery(ctx, "u1", "u2", strPtr("s1"))
	require.NoError(t, err)
	require.False(t, blocked)

	blocked, err = repo.IsBlockedForDelivery(ctx, "u1", "u2", strPtr("s2"))
	require.NoError(t, err)
	require.True(t, blocked)

	// An active seat for the blocking recipient works the same way.
	require.NoError(t, db.Create(&models.SubMod{UserID: "u2", SubID: "s2", Invite: false}).Error)
	blocked, err = repo.IsBlockedForDelivery(ctx, "u1", "u2", strPtr("s2"))
	require.NoError(t, err)
	require.False(t, blocked)
}
