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

type CommentDao struct {
	db *gorm.DB
}

func NewCommentDao(db *gorm.DB) *CommentDao {
	return &CommentDao{db: db}
}

func (d *CommentDao) CreateComment(ctx context.Context, comment *model.Comment) error {
	if err := d.db.WithContext(ctx).Create(comment).Error; err != nil {
		return errors.Wrapf(err, "CreateComment failed,err:%v", err)
	}
	return nil
}

// 获取某一条评论的全部信息
func (d *CommentDao) GetComment(ctx context.Context, commentId int64) (*model.Comment, error) {
	var comment model.Comment
	if err := d.db.WithContext(ctx).Where("id = ?", commentId).First(&comment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errno.CommentNotExistErr
		}
		return nil, errors.Wrapf(err, "GetComment failed,err:%v", err)
	}
	return &comment, nil
}

func (d *CommentDao) GetCommentView(ctx context.Context, commentId, viewer int64) (*view.CommentRow, error) {
	c := constants.CommentsTableName
	sel := view.Select(c+".*").Owner().Likes(model.TargetComment, c+".id", viewer)
	var rows []view.CommentRow
	if err := d.db.WithContext(ctx).Table(c).
		Scopes(view.JoinOwner(c, "owner_id"), sel.Scope()).
		Where(c+".id = ?", commentId).
		Limit(1).
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrapf(err, "GetCommentView failed,err:%v", err)
	}
	if len(rows) == 0 {
		return nil, errno.CommentNotExistErr
	}
	return &rows[0], nil
}

func (d *CommentDao) UpdateComment(ctx context.Context, commentId int64, content string) error {
	res := d.db.WithContext(ctx).Model(&model.Comment{}).Where("id = ?", commentId).
		Updates(map[string]interface{}{"content": content, "updated_at": time.Now()})
	if res.Error != nil {
		return errors.Wrapf(res.Error, "UpdateComment failed,err:%v", res.Error)
	}
	if res.RowsAffected == 0 {
		return errno.CommentNotExistErr
	}
	return nil
}

// DeleteComment 评论与其点赞在同一个事务中删除
func (d *CommentDao) DeleteComment(ctx context.Context, commentId int64) error {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_type = ? AND target_id = ?", model.TargetComment, commentId).
			Delete(&model.Like{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", commentId).Delete(&model.Comment{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errno.CommentNotExistErr
		}
		return nil
	})
	if err != nil {
		return errors.WithMessage(err, "DeleteComment failed")
	}
	return nil
}

// ListComments 视频下的评论, 带作者, 点赞数与当前用户是否点赞
func (d *CommentDao) ListComments(ctx context.Context, videoId, viewer int64, q view.PageQuery, sort view.SortField) ([]view.CommentRow, int64, error) {
	c := constants.CommentsTableName
	base := d.db.WithContext(ctx).Table(c).Where(c+".video_id = ?", videoId).Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrapf(err, "ListComments count failed,err:%v", err)
	}
	if total == 0 {
		return nil, 0, nil
	}
	sel := view.Select(c+".*").Owner().Likes(model.TargetComment, c+".id", viewer)
	var rows []view.CommentRow
	if err := base.Scopes(
		view.JoinOwner(c, "owner_id"),
		sel.Scope(),
		view.OrderBy(sort, q.Desc()),
		view.Paginate(q),
	).Scan(&rows).Error; err != nil {
		return nil, 0, errors.Wrapf(err, "ListComments failed,err:%v", err)
	}
	return rows, total, nil
}
