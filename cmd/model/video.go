package model

import (
	"time"

	"VideoTube.com/pkg/constants"
)

type Video struct {
	ID          int64     `gorm:"primaryKey;autoIncrement:false" json:"_id,string"`
	VideoFile   string    `gorm:"size:512;not null" json:"videoFile"`
	Thumbnail   string    `gorm:"size:512;not null" json:"thumbnail"`
	Title       string    `gorm:"size:256;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Duration    float64   `gorm:"not null;default:0" json:"duration"`
	Views       int64     `gorm:"not null;default:0;index" json:"views"`
	IsPublished bool      `gorm:"not null;default:true;index" json:"isPublished"`
	OwnerID     int64     `gorm:"not null;index" json:"owner,string"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Video) TableName() string {
	return constants.VideosTableName
}

// VisibleTo 未发布的视频只有作者本人可见
func (v *Video) VisibleTo(viewerID int64) bool {
	return v.IsPublished || (viewerID != 0 && v.OwnerID == viewerID)
}

type Playlist struct {
	ID          int64     `gorm:"primaryKey;autoIncrement:false" json:"_id,string"`
	Name        string    `gorm:"size:128;not null" json:"name"`
	Description string    `gorm:"size:1024;not null" json:"description"`
	OwnerID     int64     `gorm:"not null;index" json:"owner,string"`
	IsPublished bool      `gorm:"not null;default:true" json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Playlist) TableName() string {
	return constants.PlaylistsTableName
}

// VisibleTo 未发布的播放列表只有作者本人可见
func (p *Playlist) VisibleTo(viewerID int64) bool {
	return p.IsPublished || (viewerID != 0 && p.OwnerID == viewerID)
}

// PlaylistVideo 复合主键保证同一个视频在列表中最多出现一次, Seq决定插入顺序
type PlaylistVideo struct {
	PlaylistID int64     `gorm:"primaryKey;autoIncrement:false"`
	VideoID    int64     `gorm:"primaryKey;autoIncrement:false;index"`
	Seq        int64     `gorm:"not null"`
	AddedAt    time.Time `gorm:"not null"`
}

func (PlaylistVideo) TableName() string {
	return constants.PlaylistVideosTable
}
