package dbtest

import (
	"os"
	"testing"

	"VideoTube.com/pkg/constants"
	"VideoTube.com/pkg/database"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const DSNEnv = "VIDTUBE_TEST_MYSQL_DSN"

var tables = []string{
	constants.LikesTableName,
	constants.CommentsTableName,
	constants.PlaylistVideosTable,
	constants.PlaylistsTableName,
	constants.WatchHistoryTableName,
	constants.SubscriptionsTableName,
	constants.TweetsTableName,
	constants.VideosTableName,
	constants.UsersTableName,
}

// Open 连接测试库并清空所有表, 未设置VIDTUBE_TEST_MYSQL_DSN时跳过
func Open(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv(DSNEnv)
	if dsn == "" {
		t.Skipf("%s not set, skipping mysql integration test", DSNEnv)
	}
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open mysql: %v", err)
	}
	if err = database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	for _, table := range tables {
		if err = db.Exec("DELETE FROM " + table).Error; err != nil {
			t.Fatalf("clean %s: %v", table, err)
		}
	}
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}
