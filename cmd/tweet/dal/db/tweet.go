package db

import (
	"context"
	"time"

	"VideoTube.com/cmd/model"
	"VideoTube.com/pkg/constants"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/view"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type TweetDao struct {
	db *gorm.DB
}

func NewTweetDao(db *gorm.DB) *TweetDao {
	return &TweetDao{db: db}
}

func (d *TweetDao) CreateTweet(ctx context.Context, tweet *model.Tweet) error {
	if err := d.db.WithContext(ctx).Create(tweet).Error; err != nil {
		return errors.Wrapf(err, "CreateTweet failed,err:%v", err)
	}
	return nil
}

func (d *TweetDao) GetTweet(ctx context.Context, tweetId int64) (*model.Tweet, error) {
	var tweet model.Tweet
	if err := d.db.WithContext(ctx).Where("id = ?", tweetId).First(&tweet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errno.TweetNotExistErr
		}
		return nil, errors.Wrapf(err, "GetTweet failed,err:%v", err)
	}
	return &tweet, nil
}

func (d *TweetDao) UpdateTweet(ctx context.Context, tweetId int64, content string) error {
	res := d.db.WithContext(ctx).Model(&model.Tweet{}).Where("id = ?", tweetId).
		Updates(map[string]interface{}{"content": content, "updated_at": time.Now()})
	if res.Error != nil {
		return errors.Wrapf(res.Error, "UpdateTweet failed,err:%v", res.Error)
	}
	if res.RowsAffected == 0 {
		return errno.TweetNotExistErr
	}
	return nil
}

// DeleteTweet 推文与其点赞在同一个事务中删除
func (d *TweetDao) DeleteTweet(ctx context.Context, tweetId int64) error {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_type = ? AND target_id = ?", model.TargetTweet, tweetId).
			Delete(&model.Like{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", tweetId).Delete(&model.Tweet{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errno.TweetNotExistErr
		}
		return nil
	})
	if err != nil {
		return errors.WithMessage(err, "DeleteTweet failed")
	}
	return nil
}

func (d *TweetDao) UserTweets(ctx context.Context, ownerId, viewer int64, q view.PageQuery, sort view.SortField) ([]view.TweetRow, int64, error) {
	t := constants.TweetsTableName
	base := d.db.WithContext(ctx).Table(t).Where(t+".owner_id = ?", ownerId).Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrapf(err, "UserTweets count failed,err:%v", err)
	}
	if total == 0 {
		return nil, 0, nil
	}
	sel := view.Select(t+".*").Owner().Likes(model.TargetTweet, t+".id", viewer)
	var rows []view.TweetRow
	if err := base.Scopes(
		view.JoinOwner(t, "owner_id"),
		sel.Scope(),
		view.OrderBy(sort, q.Desc()),
		view.Paginate(q),
	).Scan(&rows).Error; err != nil {
		return nil, 0, errors.Wrapf(err, "UserTweets failed,err:%v", err)
	}
	return rows, total, nil
}
