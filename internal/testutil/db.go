package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dobarx/hivemind/backend/internal/models"
)

// MustOpenTestDB opens an in-memory SQLite database with the full schema
// migrated. The connection is closed via t.Cleanup.
func MustOpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A second pooled connection would get its own empty :memory: database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Sub{},
		&models.SubMod{},
		&models.SubPost{},
		&models.SubPostComment{},
		&models.SubPostVote{},
		&models.SubPostCommentVote{},
		&models.SubPostCommentView{},
		&models.UserContentBlock{},
		&models.Notification{},
	))

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}
