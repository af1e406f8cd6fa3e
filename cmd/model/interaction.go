package model

import (
	"time"

	"VideoTube.com/pkg/constants"
)

type Comment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement:false" json:"_id,string"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	VideoID   int64     `gorm:"not null;index" json:"video,string"`
	OwnerID   int64     `gorm:"not null;index" json:"owner,string"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Comment) TableName() string {
	return constants.CommentsTableName
}

// Like 点赞记录, (liked_by, target_type, target_id) 唯一
type Like struct {
	ID         int64          `gorm:"primaryKey;autoIncrement:false" json:"_id,string"`
	TargetType LikeTargetKind `gorm:"size:16;not null;uniqueIndex:idx_like_principal_target,priority:2;index:idx_like_target,priority:1" json:"targetType"`
	TargetID   int64          `gorm:"not null;uniqueIndex:idx_like_principal_target,priority:3;index:idx_like_target,priority:2" json:"targetId,string"`
	LikedBy    int64          `gorm:"not null;uniqueIndex:idx_like_principal_target,priority:1" json:"likedBy,string"`
	CreatedAt  time.Time      `gorm:"index" json:"createdAt"`
}

func (Like) TableName() string {
	return constants.LikesTableName
}

// Target 还原成点赞目标
func (l *Like) Target() LikeTarget {
	return LikeTarget{Kind: l.TargetType, ID: l.TargetID}
}

type Tweet struct {
	ID        int64     `gorm:"primaryKey;autoIncrement:false" json:"_id,string"`
	Content   string    `gorm:"size:1024;not null" json:"content"`
	OwnerID   int64     `gorm:"not null;index" json:"owner,string"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Tweet) TableName() string {
	return constants.TweetsTableName
}
