package view

import (
	"time"

	"VideoTube.com/cmd/model"
)

// OwnerProfile 嵌入到视频, 评论, 推文等资源中的作者信息
type OwnerProfile struct {
	UserName string `json:"userName"`
	FullName string `json:"fullName"`
	Avatar   string `json:"avatar"`
}

// PublicUser 用户对外的视图, 不包含密码与refresh token
type PublicUser struct {
	ID         int64     `json:"_id,string"`
	UserName   string    `json:"userName"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullName"`
	Avatar     string    `json:"avatar"`
	CoverImage string    `json:"coverImage"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func Project(u *model.User) *PublicUser {
	if u == nil {
		return nil
	}
	return &PublicUser{
		ID:         u.ID,
		UserName:   u.UserName,
		Email:      u.Email,
		FullName:   u.FullName,
		Avatar:     u.Avatar,
		CoverImage: u.CoverImage,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

type ChannelProfile struct {
	ID                        int64     `json:"_id,string"`
	UserName                  string    `json:"userName"`
	FullName                  string    `json:"fullName"`
	Email                     string    `json:"email"`
	Avatar                    string    `json:"avatar"`
	CoverImage                string    `json:"coverImage"`
	SubscribersCount          int64     `json:"subscribersCount"`
	ChannelsSubscribedToCount int64     `json:"channelsSubscribedToCount"`
	IsSubscribed              bool      `json:"isSubscribed"`
	CreatedAt                 time.Time `json:"createdAt"`
}

// ChannelCard 订阅者/已订阅频道列表中的一项
type ChannelCard struct {
	ID               int64     `json:"_id,string"`
	UserName         string    `json:"userName"`
	FullName         string    `json:"fullName"`
	Avatar           string    `json:"avatar"`
	SubscribersCount int64     `json:"subscribersCount"`
	IsSubscribed     bool      `json:"isSubscribed"`
	SubscribedAt     time.Time `json:"subscribedAt"`
}

type VideoView struct {
	ID          int64         `json:"_id,string"`
	VideoFile   string        `json:"videoFile"`
	Thumbnail   string        `json:"thumbnail"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Duration    float64       `json:"duration"`
	Views       int64         `json:"views"`
	IsPublished bool          `json:"isPublished"`
	Owner       *OwnerProfile `json:"owner"`
	LikesCount  int64         `json:"likesCount"`
	IsLiked     bool          `json:"isLiked"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

type CommentView struct {
	ID         int64         `json:"_id,string"`
	Content    string        `json:"content"`
	Video      int64         `json:"video,string"`
	Owner      *OwnerProfile `json:"owner"`
	LikesCount int64         `json:"likesCount"`
	IsLiked    bool          `json:"isLiked"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

type TweetView struct {
	ID         int64         `json:"_id,string"`
	Content    string        `json:"content"`
	Owner      *OwnerProfile `json:"owner"`
	LikesCount int64         `json:"likesCount"`
	IsLiked    bool          `json:"isLiked"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

type PlaylistView struct {
	ID          int64         `json:"_id,string"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	IsPublished bool          `json:"isPublished"`
	Owner       *OwnerProfile `json:"owner"`
	TotalVideos int64         `json:"totalVideos"`
	Videos      []VideoView   `json:"videos,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// LikeResult 点赞开关的返回, Like为创建的记录或被删除前的记录
type LikeResult struct {
	Liked bool        `json:"liked"`
	Like  *model.Like `json:"like"`
}

type SubscriptionResult struct {
	Subscribed   bool                `json:"subscribed"`
	Subscription *model.Subscription `json:"subscription"`
}
