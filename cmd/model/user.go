package model

import (
	"time"

	"VideoTube.com/pkg/constants"
)

// User 用户, Password与RefreshToken永远不会被序列化
type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement:false" json:"_id,string"`
	UserName     string    `gorm:"size:64;not null;uniqueIndex" json:"userName"`
	Email        string    `gorm:"size:128;not null;uniqueIndex" json:"email"`
	FullName     string    `gorm:"size:128;not null;index" json:"fullName"`
	Avatar       string    `gorm:"size:512;not null" json:"avatar"`
	CoverImage   string    `gorm:"size:512" json:"coverImage"`
	Password     string    `gorm:"size:128;not null" json:"-"`
	RefreshToken string    `gorm:"size:1024" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return constants.UsersTableName
}

// WatchHistory 观看历史, 同一个视频只保留最近一次观看时间
type WatchHistory struct {
	UserID    int64     `gorm:"primaryKey;autoIncrement:false"`
	VideoID   int64     `gorm:"primaryKey;autoIncrement:false;index"`
	WatchedAt time.Time `gorm:"index"`
}

func (WatchHistory) TableName() string {
	return constants.WatchHistoryTableName
}
