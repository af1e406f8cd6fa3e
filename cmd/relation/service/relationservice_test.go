package service

import (
	"context"
	"sync"
	"testing"

	"VideoTube.com/cmd/model"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/view"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pair struct{ subscriber, channel int64 }

type memSubscriptions struct {
	mu    sync.Mutex
	users map[int64]*model.User
	subs  map[pair]*model.Subscription
	order []pair
}

func newMemSubscriptions(ids ...int64) *memSubscriptions {
	m := &memSubscriptions{users: make(map[int64]*model.User), subs: make(map[pair]*model.Subscription)}
	for _, id := range ids {
		m.users[id] = &model.User{ID: id, UserName: "u", Password: "hash", RefreshToken: "rt"}
	}
	return m
}

func (m *memSubscriptions) UserExists(ctx context.Context, userId int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.users[userId]
	return ok, nil
}

func (m *memSubscriptions) ToggleSubscription(ctx context.Context, subscriberId, channelId, subscriptionId int64) (*model.Subscription, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := pair{subscriberId, channelId}
	if s, ok := m.subs[k]; ok {
		delete(m.subs, k)
		return s, false, nil
	}
	s := &model.Subscription{ID: subscriptionId, SubscriberID: subscriberId, ChannelID: channelId}
	m.subs[k] = s
	m.order = append(m.order, k)
	return s, true, nil
}

func (m *memSubscriptions) rows(match func(pair) (int64, bool), viewer int64, q view.PageQuery) ([]view.ChannelRow, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows := make([]view.ChannelRow, 0)
	for _, k := range m.order {
		if _, ok := m.subs[k]; !ok {
			continue
		}
		id, ok := match(k)
		if !ok {
			continue
		}
		r := view.ChannelRow{User: *m.users[id]}
		for p := range m.subs {
			if p.channel == id {
				r.SubscribersCount++
				if viewer != 0 && p.subscriber == viewer {
					r.IsSubscribed = true
				}
			}
		}
		rows = append(rows, r)
	}
	return view.Window(rows, q), int64(len(rows)), nil
}

func (m *memSubscriptions) Subscribers(ctx context.Context, channelId, viewer int64, q view.PageQuery) ([]view.ChannelRow, int64, error) {
	return m.rows(func(p pair) (int64, bool) { return p.subscriber, p.channel == channelId }, viewer, q)
}

func (m *memSubscriptions) SubscribedChannels(ctx context.Context, subscriberId, viewer int64, q view.PageQuery) ([]view.ChannelRow, int64, error) {
	return m.rows(func(p pair) (int64, bool) { return p.channel, p.subscriber == subscriberId }, viewer, q)
}

func TestToggleSubscriptionValidation(t *testing.T) {
	svc := NewRelationService(newMemSubscriptions(1, 2))
	ctx := context.Background()

	_, err := svc.ToggleSubscription(ctx, 1, 1)
	assert.True(t, errors.Is(err, errno.ParamErr))
	_, err = svc.ToggleSubscription(ctx, 1, 3)
	assert.True(t, errors.Is(err, errno.NotFoundErr))

	res, err := svc.ToggleSubscription(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, res.Subscribed)
	assert.Equal(t, int64(2), res.Subscription.ChannelID)
}

func TestSubscriptionParity(t *testing.T) {
	properties := gopter.NewProperties(nil)
	properties.Property("n toggles leave the subscription present iff n is odd", prop.ForAll(
		func(n int) bool {
			store := newMemSubscriptions(1, 2)
			svc := NewRelationService(store)
			for i := 0; i < n; i++ {
				if _, err := svc.ToggleSubscription(context.Background(), 1, 2); err != nil {
					return false
				}
			}
			return (len(store.subs) == 1) == (n%2 == 1)
		},
		gen.IntRange(0, 20),
	))
	properties.TestingRun(t)
}

func TestChannelSubscribers(t *testing.T) {
	store := newMemSubscriptions(1, 2, 3)
	svc := NewRelationService(store)
	ctx := context.Background()
	_, err := svc.ToggleSubscription(ctx, 2, 1)
	require.NoError(t, err)
	_, err = svc.ToggleSubscription(ctx, 3, 1)
	require.NoError(t, err)
	_, err = svc.ToggleSubscription(ctx, 1, 3)
	require.NoError(t, err)

	page, err := svc.ChannelSubscribers(ctx, 1, 1, view.ParsePageQuery("", "", "", ""))
	require.NoError(t, err)
	require.Equal(t, int64(2), page.TotalDocs)
	// 当前用户(1)订阅了3, 没有订阅2
	for _, c := range page.Docs {
		assert.Equal(t, c.ID == 3, c.IsSubscribed)
	}

	anon, err := svc.ChannelSubscribers(ctx, 1, 0, view.ParsePageQuery("", "", "", ""))
	require.NoError(t, err)
	for _, c := range anon.Docs {
		assert.False(t, c.IsSubscribed)
	}

	channels, err := svc.SubscribedChannels(ctx, 2, 0, view.ParsePageQuery("", "", "", ""))
	require.NoError(t, err)
	require.Len(t, channels.Docs, 1)
	assert.Equal(t, int64(1), channels.Docs[0].ID)
	assert.Equal(t, int64(2), channels.Docs[0].SubscribersCount)

	_, err = svc.SubscribedChannels(ctx, 404, 0, view.ParsePageQuery("", "", "", ""))
	assert.True(t, errors.Is(err, errno.NotFoundErr))
}
