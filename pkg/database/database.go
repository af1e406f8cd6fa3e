package database

import (
	"time"

	"VideoTube.com/cmd/model"
	"VideoTube.com/config"
	"VideoTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	gormopentracing "gorm.io/plugin/opentracing"
)

// Open 建立MySQL连接并注册opentracing插件, 返回的*gorm.DB由main注入到各个dal
func Open(c *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(utils.GetMysqlDsn(c)),
		&gorm.Config{
			PrepareStmt:            true,
			SkipDefaultTransaction: true,
			TranslateError:         true,
			Logger:                 logger.Default.LogMode(logger.Warn),
		},
	)
	if err != nil {
		return nil, errors.Wrap(err, "open mysql failed")
	}
	if err = db.Use(gormopentracing.New()); err != nil {
		return nil, errors.Wrap(err, "register opentracing plugin failed")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "get sql.DB failed")
	}
	if c.Mysql.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(c.Mysql.MaxOpenConns)
	}
	if c.Mysql.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(c.Mysql.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	if c.Mysql.AutoMigrate {
		if err = AutoMigrate(db); err != nil {
			return nil, err
		}
	}
	hlog.Infof("Connect MySQL %s/%s Success", c.Mysql.Addr, c.Mysql.Database)
	return db, nil
}

// AutoMigrate 建表以及唯一索引, 点赞与订阅的开关依赖这些唯一索引
func AutoMigrate(db *gorm.DB) error {
	hlog.Info("Starting tables migration...")
	if err := db.AutoMigrate(
		&model.User{},
		&model.Video{},
		&model.Comment{},
		&model.Like{},
		&model.Subscription{},
		&model.Tweet{},
		&model.Playlist{},
		&model.PlaylistVideo{},
		&model.WatchHistory{},
	); err != nil {
		return errors.Wrap(err, "auto migrate failed")
	}
	hlog.Info("Tables migration completed successfully")
	return nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
