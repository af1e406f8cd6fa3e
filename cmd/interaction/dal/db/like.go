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

type LikeDao struct {
	db *gorm.DB
}

func NewLikeDao(db *gorm.DB) *LikeDao {
	return &LikeDao{db: db}
}

// ToggleLike 锁住(用户, 目标)对应的行: 已存在则删除并返回删除前的记录, 否则创建
// 并发的创建由唯一索引兜底, 死锁或唯一键冲突重试一次, 仍冲突时返回ConflictErr
func (d *LikeDao) ToggleLike(ctx context.Context, target model.LikeTarget, userId, likeId int64) (*model.Like, bool, error) {
	var (
		like  *model.Like
		liked bool
	)
	err := database.RetryOnContention(ctx, func() (err error) {
		like, liked, err = d.toggleLike(ctx, target, userId, likeId)
		return err
	})
	if database.IsContention(err) {
		return nil, false, errno.ConflictErr.WithMessage("like is being toggled concurrently")
	}
	if err != nil {
		return nil, false, errors.WithMessage(err, "ToggleLike failed")
	}
	return like, liked, nil
}

func (d *LikeDao) toggleLike(ctx context.Context, target model.LikeTarget, userId, likeId int64) (*model.Like, bool, error) {
	var (
		like  model.Like
		liked bool
	)
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []model.Like
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("liked_by = ? AND target_type = ? AND target_id = ?", userId, target.Kind, target.ID).
			Limit(1).
			Find(&existing).Error; err != nil {
			return err
		}
		if len(existing) > 0 {
			like = existing[0]
			return tx.Where("id = ?", like.ID).Delete(&model.Like{}).Error
		}
		like = model.Like{
			ID:         likeId,
			TargetType: target.Kind,
			TargetID:   target.ID,
			LikedBy:    userId,
			CreatedAt:  time.Now(),
		}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&like)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errno.ConflictErr.WithMessage("like is being toggled concurrently")
		}
		liked = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &like, liked, nil
}

func (d *LikeDao) CountLikes(ctx context.Context, target model.LikeTarget) (int64, error) {
	var count int64
	if err := d.db.WithContext(ctx).Model(&model.Like{}).
		Where("target_type = ? AND target_id = ?", target.Kind, target.ID).
		Count(&count).Error; err != nil {
		return 0, errors.Wrapf(err, "CountLikes failed,err:%v", err)
	}
	return count, nil
}

// TargetVisible 点赞目标必须存在, 视频还需要对当前用户可见
func (d *LikeDao) TargetVisible(ctx context.Context, target model.LikeTarget, viewer int64) error {
	var (
		count    int64
		notFound error
	)
	db := d.db.WithContext(ctx)
	switch target.Kind {
	case model.TargetVideo:
		db = db.Model(&model.Video{}).Where("id = ? AND (is_published = ? OR owner_id = ?)", target.ID, true, viewer)
		notFound = errno.VideoNotExistErr
	case model.TargetComment:
		db = db.Model(&model.Comment{}).Where("id = ?", target.ID)
		notFound = errno.CommentNotExistErr
	case model.TargetTweet:
		db = db.Model(&model.Tweet{}).Where("id = ?", target.ID)
		notFound = errno.TweetNotExistErr
	default:
		return target.Validate()
	}
	if err := db.Count(&count).Error; err != nil {
		return errors.Wrapf(err, "TargetVisible failed,err:%v", err)
	}
	if count == 0 {
		return notFound
	}
	return nil
}

// LikedVideos 最近点赞的在前, 视频已不存在的点赞被跳过
func (d *LikeDao) LikedVideos(ctx context.Context, userId int64, q view.PageQuery) ([]view.VideoRow, int64, error) {
	l := constants.LikesTableName
	v := constants.VideosTableName
	base := d.db.WithContext(ctx).Table(l).
		Joins("JOIN "+v+" ON "+v+".id = "+l+".target_id").
		Where(l+".target_type = ? AND "+l+".liked_by = ?", model.TargetVideo, userId).
		Where("("+v+".is_published = ? OR "+v+".owner_id = ?)", true, userId).
		Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrapf(err, "LikedVideos count failed,err:%v", err)
	}
	if total == 0 {
		return nil, 0, nil
	}
	sel := view.Select(v+".*").Owner().Likes(model.TargetVideo, v+".id", userId)
	var rows []view.VideoRow
	if err := base.Scopes(
		view.JoinOwner(v, "owner_id"),
		sel.Scope(),
		view.OrderBy(view.SortField{Table: l, Column: "created_at"}, true),
		view.Paginate(q),
	).Scan(&rows).Error; err != nil {
		return nil, 0, errors.Wrapf(err, "LikedVideos failed,err:%v", err)
	}
	return rows, total, nil
}
