package view

import (
	"strings"

	"VideoTube.com/cmd/model"
	"VideoTube.com/pkg/constants"
	"gorm.io/gorm"
)

// LikeAggregate 点赞数与当前用户是否点赞
type LikeAggregate struct {
	LikesCount int64
	IsLiked    bool
}

// SubscriptionAggregate 频道的订阅统计与当前用户是否订阅
type SubscriptionAggregate struct {
	SubscribersCount          int64
	ChannelsSubscribedToCount int64
	IsSubscribed              bool
}

// Selector 累积select列表, 计数与布尔字段都以关联子查询的形式实时计算
type Selector struct {
	cols []string
	vars []interface{}
}

func Select(cols ...string) *Selector {
	return &Selector{cols: append([]string(nil), cols...)}
}

func (s *Selector) Add(expr string, vars ...interface{}) *Selector {
	s.cols = append(s.cols, expr)
	s.vars = append(s.vars, vars...)
	return s
}

// Owner 追加JoinOwner关联出的作者列
func (s *Selector) Owner() *Selector {
	s.cols = append(s.cols, OwnerColumns...)
	return s
}

// LikesCount ref为目标主键列, 例如 videos.id
func (s *Selector) LikesCount(kind model.LikeTargetKind, ref string) *Selector {
	return s.Add("(SELECT COUNT(*) FROM "+constants.LikesTableName+
		" lc WHERE lc.target_type = ? AND lc.target_id = "+ref+") AS likes_count", kind)
}

// IsLiked 匿名用户恒为false
func (s *Selector) IsLiked(kind model.LikeTargetKind, ref string, viewer int64) *Selector {
	if viewer == 0 {
		return s.Add("FALSE AS is_liked")
	}
	return s.Add("EXISTS (SELECT 1 FROM "+constants.LikesTableName+
		" li WHERE li.target_type = ? AND li.target_id = "+ref+" AND li.liked_by = ?) AS is_liked", kind, viewer)
}

// Likes LikesCount + IsLiked
func (s *Selector) Likes(kind model.LikeTargetKind, ref string, viewer int64) *Selector {
	return s.LikesCount(kind, ref).IsLiked(kind, ref, viewer)
}

// SubscribersCount ref为频道(用户)主键列
func (s *Selector) SubscribersCount(ref string) *Selector {
	return s.Add("(SELECT COUNT(*) FROM " + constants.SubscriptionsTableName +
		" sc WHERE sc.channel_id = " + ref + ") AS subscribers_count")
}

func (s *Selector) ChannelsSubscribedToCount(ref string) *Selector {
	return s.Add("(SELECT COUNT(*) FROM " + constants.SubscriptionsTableName +
		" st WHERE st.subscriber_id = " + ref + ") AS channels_subscribed_to_count")
}

// IsSubscribed 当前用户是否订阅了ref对应的频道, 匿名用户恒为false
func (s *Selector) IsSubscribed(ref string, viewer int64) *Selector {
	if viewer == 0 {
		return s.Add("FALSE AS is_subscribed")
	}
	return s.Add("EXISTS (SELECT 1 FROM "+constants.SubscriptionsTableName+
		" si WHERE si.channel_id = "+ref+" AND si.subscriber_id = ?) AS is_subscribed", viewer)
}

func (s *Selector) SQL() string {
	return strings.Join(s.cols, ", ")
}

func (s *Selector) Vars() []interface{} {
	return s.vars
}

func (s *Selector) Scope() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Select(s.SQL(), s.vars...)
	}
}
