package view

import (
	"fmt"
	"time"

	"VideoTube.com/cmd/model"
	"VideoTube.com/pkg/constants"
	"gorm.io/gorm"
)

const OwnerAlias = "owner"

// OwnerColumns 关联作者时追加到select中的列, 与OwnerRow的字段一一对应
var OwnerColumns = []string{
	OwnerAlias + ".id AS owner_ref_id",
	OwnerAlias + ".user_name AS owner_user_name",
	OwnerAlias + ".full_name AS owner_full_name",
	OwnerAlias + ".avatar AS owner_avatar",
}

// JoinOwner 以LEFT JOIN关联作者, 作者不存在时OwnerRow的字段均为NULL
func JoinOwner(table, fk string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Joins(fmt.Sprintf("LEFT JOIN %s AS %s ON %s.id = %s.%s",
			constants.UsersTableName, OwnerAlias, OwnerAlias, table, fk))
	}
}

// OwnerRow LEFT JOIN得到的作者列
type OwnerRow struct {
	OwnerRefID    *int64
	OwnerUserName *string
	OwnerFullName *string
	OwnerAvatar   *string
}

// Profile 一对一关系始终返回单个对象, 悬空引用返回nil
func (o OwnerRow) Profile() *OwnerProfile {
	if o.OwnerRefID == nil {
		return nil
	}
	p := &OwnerProfile{}
	if o.OwnerUserName != nil {
		p.UserName = *o.OwnerUserName
	}
	if o.OwnerFullName != nil {
		p.FullName = *o.OwnerFullName
	}
	if o.OwnerAvatar != nil {
		p.Avatar = *o.OwnerAvatar
	}
	return p
}

// OwnerOf 由已加载的用户构造OwnerRow, 供内存实现使用
func OwnerOf(u *model.User) OwnerRow {
	if u == nil {
		return OwnerRow{}
	}
	id, name, full, avatar := u.ID, u.UserName, u.FullName, u.Avatar
	return OwnerRow{OwnerRefID: &id, OwnerUserName: &name, OwnerFullName: &full, OwnerAvatar: &avatar}
}

type VideoRow struct {
	model.Video
	OwnerRow
	LikeAggregate
}

func (r *VideoRow) View() VideoView {
	return VideoView{
		ID:          r.ID,
		VideoFile:   r.VideoFile,
		Thumbnail:   r.Thumbnail,
		Title:       r.Title,
		Description: r.Description,
		Duration:    r.Duration,
		Views:       r.Views,
		IsPublished: r.IsPublished,
		Owner:       r.Profile(),
		LikesCount:  r.LikesCount,
		IsLiked:     r.IsLiked,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type CommentRow struct {
	model.Comment
	OwnerRow
	LikeAggregate
}

func (r *CommentRow) View() CommentView {
	return CommentView{
		ID:         r.ID,
		Content:    r.Content,
		Video:      r.VideoID,
		Owner:      r.Profile(),
		LikesCount: r.LikesCount,
		IsLiked:    r.IsLiked,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

type TweetRow struct {
	model.Tweet
	OwnerRow
	LikeAggregate
}

func (r *TweetRow) View() TweetView {
	return TweetView{
		ID:         r.ID,
		Content:    r.Content,
		Owner:      r.Profile(),
		LikesCount: r.LikesCount,
		IsLiked:    r.IsLiked,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

// ChannelRow 订阅列表中的一个频道(用户)
type ChannelRow struct {
	model.User
	SubscriptionAggregate
	SubscribedAt time.Time
}

func (r *ChannelRow) Card() ChannelCard {
	return ChannelCard{
		ID:               r.ID,
		UserName:         r.UserName,
		FullName:         r.FullName,
		Avatar:           r.Avatar,
		SubscribersCount: r.SubscribersCount,
		IsSubscribed:     r.IsSubscribed,
		SubscribedAt:     r.SubscribedAt,
	}
}

func (r *ChannelRow) Profile() ChannelProfile {
	return ChannelProfile{
		ID:                        r.ID,
		UserName:                  r.UserName,
		FullName:                  r.FullName,
		Email:                     r.Email,
		Avatar:                    r.Avatar,
		CoverImage:                r.CoverImage,
		SubscribersCount:          r.SubscribersCount,
		ChannelsSubscribedToCount: r.ChannelsSubscribedToCount,
		IsSubscribed:              r.IsSubscribed,
		CreatedAt:                 r.CreatedAt,
	}
}

type PlaylistRow struct {
	model.Playlist
	OwnerRow
	TotalVideos int64
}

func (r *PlaylistRow) View() PlaylistView {
	return PlaylistView{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		IsPublished: r.IsPublished,
		Owner:       r.Profile(),
		TotalVideos: r.TotalVideos,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
