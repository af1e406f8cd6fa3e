package db

import (
	"context"
	"time"

	"VideoTube.com/cmd/model"
	"VideoTube.com/pkg/constants"
	"VideoTube.com/pkg/database"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/view"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubscriptionDao struct {
	db *gorm.DB
}

func NewSubscriptionDao(db *gorm.DB) *SubscriptionDao {
	return &SubscriptionDao{db: db}
}

func (d *SubscriptionDao) UserExists(ctx context.Context, userId int64) (bool, error) {
	var count int64
	if err := d.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userId).Count(&count).Error; err != nil {
		return false, errors.Wrapf(err, "UserExists failed,err:%v", err)
	}
	return count > 0, nil
}

// ToggleSubscription subscriber 订阅或取消订阅 channel, 并发冲突重试一次后返回ConflictErr
func (d *SubscriptionDao) ToggleSubscription(ctx context.Context, subscriberId, channelId, subscriptionId int64) (*model.Subscription, bool, error) {
	var (
		sub        *model.Subscription
		subscribed bool
	)
	err := database.RetryOnContention(ctx, func() (err error) {
		sub, subscribed, err = d.toggleSubscription(ctx, subscriberId, channelId, subscriptionId)
		return err
	})
	if database.IsContention(err) {
		return nil, false, errno.ConflictErr.WithMessage("subscription is being toggled concurrently")
	}
	if err != nil {
		return nil, false, errors.WithMessage(err, "ToggleSubscription failed")
	}
	return sub, subscribed, nil
}

func (d *SubscriptionDao) toggleSubscription(ctx context.Context, subscriberId, channelId, subscriptionId int64) (*model.Subscription, bool, error) {
	var (
		sub        model.Subscription
		subscribed bool
	)
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []model.Subscription
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("subscriber_id = ? AND channel_id = ?", subscriberId, channelId).
			Limit(1).
			Find(&existing).Error; err != nil {
			return err
		}
		if len(existing) > 0 {
			sub = existing[0]
			return tx.Where("id = ?", sub.ID).Delete(&model.Subscription{}).Error
		}
		sub = model.Subscription{
			ID:           subscriptionId,
			SubscriberID: subscriberId,
			ChannelID:    channelId,
			CreatedAt:    time.Now(),
		}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&sub)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errno.ConflictErr.WithMessage("subscription is being toggled concurrently")
		}
		subscribed = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &sub, subscribed, nil
}

// following 表示发起订阅的用户 channel 表示被订阅的用户
func (d *SubscriptionDao) listChannels(ctx context.Context, joinOn, whereCol string, userId, viewer int64, q view.PageQuery) ([]view.ChannelRow, int64, error) {
	s := constants.SubscriptionsTableName
	u := constants.UsersTableName
	base := d.db.WithContext(ctx).Table(s).
		Joins("JOIN "+u+" ON "+u+".id = "+s+"."+joinOn).
		Where(s+"."+whereCol+" = ?", userId).
		Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrapf(err, "list channels count failed,err:%v", err)
	}
	if total == 0 {
		return nil, 0, nil
	}
	sel := view.Select(u+".*", s+".created_at AS subscribed_at").
		SubscribersCount(u+".id").
		IsSubscribed(u+".id", viewer)
	var rows []view.ChannelRow
	if err := base.Scopes(
		sel.Scope(),
		view.OrderBy(view.SortField{Table: s, Column: "created_at"}, q.Desc()),
		view.Paginate(q),
	).Scan(&rows).Error; err != nil {
		return nil, 0, errors.Wrapf(err, "list channels failed,err:%v", err)
	}
	return rows, total, nil
}

// Subscribers 订阅了channelId的用户, isSubscribed表示当前用户是否订阅了该订阅者
func (d *SubscriptionDao) Subscribers(ctx context.Context, channelId, viewer int64, q view.PageQuery) ([]view.ChannelRow, int64, error) {
	return d.listChannels(ctx, "subscriber_id", "channel_id", channelId, viewer, q)
}

// SubscribedChannels subscriberId订阅的频道
func (d *SubscriptionDao) SubscribedChannels(ctx context.Context, subscriberId, viewer int64, q view.PageQuery) ([]view.ChannelRow, int64, error) {
	return d.listChannels(ctx, "channel_id", "subscriber_id", subscriberId, viewer, q)
}
