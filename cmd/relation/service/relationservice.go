package service

import (
	"context"

	"VideoTube.com/cmd/model"
	"VideoTube.com/pkg/constants"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/metrics"
	"VideoTube.com/pkg/utils"
	"VideoTube.com/pkg/view"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

// SubscriptionStore 由 dal/db.SubscriptionDao 实现
type SubscriptionStore interface {
	UserExists(ctx context.Context, userId int64) (bool, error)
	ToggleSubscription(ctx context.Context, subscriberId, channelId, subscriptionId int64) (*model.Subscription, bool, error)
	Subscribers(ctx context.Context, channelId, viewer int64, q view.PageQuery) ([]view.ChannelRow, int64, error)
	SubscribedChannels(ctx context.Context, subscriberId, viewer int64, q view.PageQuery) ([]view.ChannelRow, int64, error)
}

type RelationService struct {
	store SubscriptionStore
}

func NewRelationService(store SubscriptionStore) *RelationService {
	return &RelationService{store: store}
}

// ToggleSubscription 未订阅则订阅, 已订阅则取消
func (s *RelationService) ToggleSubscription(ctx context.Context, subscriberId, channelId int64) (*view.SubscriptionResult, error) {
	if channelId <= 0 {
		return nil, errno.ParamErr.WithMessage("invalid channel id")
	}
	if subscriberId == channelId {
		return nil, errno.ParamErr.WithMessage("You cannot subscribe to yourself")
	}
	exists, err := s.store.UserExists(ctx, channelId)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.UserExists failed")
	}
	if !exists {
		return nil, errno.NotFoundErr.WithMessage("Channel not found")
	}
	sub, subscribed, err := s.store.ToggleSubscription(ctx, subscriberId, channelId, utils.NextID())
	if err != nil {
		return nil, errors.WithMessage(err, "dao.ToggleSubscription failed")
	}
	metrics.TogglesTotal.WithLabelValues("channel", metrics.ToggleState(subscribed)).Inc()
	hlog.CtxInfof(ctx, "user %d toggled subscription to %d, subscribed=%v", subscriberId, channelId, subscribed)
	return &view.SubscriptionResult{Subscribed: subscribed, Subscription: sub}, nil
}

func (s *RelationService) ChannelSubscribers(ctx context.Context, channelId, viewer int64, q view.PageQuery) (*view.Page[view.ChannelCard], error) {
	return s.list(ctx, s.store.Subscribers, channelId, viewer, q)
}

func (s *RelationService) SubscribedChannels(ctx context.Context, subscriberId, viewer int64, q view.PageQuery) (*view.Page[view.ChannelCard], error) {
	return s.list(ctx, s.store.SubscribedChannels, subscriberId, viewer, q)
}

func (s *RelationService) list(ctx context.Context,
	fetch func(context.Context, int64, int64, view.PageQuery) ([]view.ChannelRow, int64, error),
	userId, viewer int64, q view.PageQuery) (*view.Page[view.ChannelCard], error) {
	q, _, err := q.Resolve(view.CreatedSort(constants.SubscriptionsTableName))
	if err != nil {
		return nil, err
	}
	exists, err := s.store.UserExists(ctx, userId)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.UserExists failed")
	}
	if !exists {
		return nil, errno.UserNotExistErr
	}
	rows, total, err := fetch(ctx, userId, viewer, q)
	if err != nil {
		return nil, errors.WithMessage(err, "list subscriptions failed")
	}
	docs := make([]view.ChannelCard, 0, len(rows))
	for i := range rows {
		docs = append(docs, rows[i].Card())
	}
	return view.NewPage(docs, total, q), nil
}
