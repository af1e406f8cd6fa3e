package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"VideoTube.com/cmd/model"
	"VideoTube.com/pkg/constants"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/utils"
	"VideoTube.com/pkg/view"
	"github.com/pkg/errors"
)

// TweetStore 由 dal/db.TweetDao 实现
type TweetStore interface {
	CreateTweet(ctx context.Context, tweet *model.Tweet) error
	GetTweet(ctx context.Context, tweetId int64) (*model.Tweet, error)
	UpdateTweet(ctx context.Context, tweetId int64, content string) error
	DeleteTweet(ctx context.Context, tweetId int64) error
	UserTweets(ctx context.Context, ownerId, viewer int64, q view.PageQuery, sort view.SortField) ([]view.TweetRow, int64, error)
}

// UserChecker 由 relation/dal/db.SubscriptionDao 实现
type UserChecker interface {
	UserExists(ctx context.Context, userId int64) (bool, error)
}

type TweetService struct {
	tweets TweetStore
	users  UserChecker
}

func NewTweetService(tweets TweetStore, users UserChecker) *TweetService {
	return &TweetService{tweets: tweets, users: users}
}

func validateTweetContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", errno.ParamErr.WithMessage("Tweet content cannot be empty")
	}
	if utf8.RuneCountInString(content) > constants.MaxTweetLength {
		return "", errno.ParamErr.WithMessage("Tweet content is too long")
	}
	return content, nil
}

func (s *TweetService) CreateTweet(ctx context.Context, userId int64, content string) (*model.Tweet, error) {
	content, err := validateTweetContent(content)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	tweet := &model.Tweet{
		ID:        utils.NextID(),
		Content:   content,
		OwnerID:   userId,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err = s.tweets.CreateTweet(ctx, tweet); err != nil {
		return nil, errors.WithMessage(err, "dao.CreateTweet failed")
	}
	return tweet, nil
}

func (s *TweetService) UserTweets(ctx context.Context, ownerId, viewer int64, q view.PageQuery) (*view.Page[view.TweetView], error) {
	q, sort, err := q.Resolve(view.CreatedSort(constants.TweetsTableName))
	if err != nil {
		return nil, err
	}
	exists, err := s.users.UserExists(ctx, ownerId)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.UserExists failed")
	}
	if !exists {
		return nil, errno.UserNotExistErr
	}
	rows, total, err := s.tweets.UserTweets(ctx, ownerId, viewer, q, sort)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.UserTweets failed")
	}
	docs := make([]view.TweetView, 0, len(rows))
	for i := range rows {
		docs = append(docs, rows[i].View())
	}
	return view.NewPage(docs, total, q), nil
}

func (s *TweetService) UpdateTweet(ctx context.Context, tweetId, userId int64, content string) (*model.Tweet, error) {
	content, err := validateTweetContent(content)
	if err != nil {
		return nil, err
	}
	tweet, err := s.ownedTweet(ctx, tweetId, userId)
	if err != nil {
		return nil, err
	}
	if err = s.tweets.UpdateTweet(ctx, tweetId, content); err != nil {
		return nil, errors.WithMessage(err, "dao.UpdateTweet failed")
	}
	tweet.Content = content
	tweet.UpdatedAt = time.Now()
	return tweet, nil
}

// DeleteTweet 推文的点赞一并删除
func (s *TweetService) DeleteTweet(ctx context.Context, tweetId, userId int64) error {
	if _, err := s.ownedTweet(ctx, tweetId, userId); err != nil {
		return err
	}
	if err := s.tweets.DeleteTweet(ctx, tweetId); err != nil {
		return errors.WithMessage(err, "dao.DeleteTweet failed")
	}
	return nil
}

func (s *TweetService) ownedTweet(ctx context.Context, tweetId, userId int64) (*model.Tweet, error) {
	tweet, err := s.tweets.GetTweet(ctx, tweetId)
	if err != nil {
		return nil, err
	}
	if tweet.OwnerID != userId {
		return nil, errno.AuthorizationErr
	}
	return tweet, nil
}
