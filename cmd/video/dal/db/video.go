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

type VideoDao struct {
	db *gorm.DB
}

func NewVideoDao(db *gorm.DB) *VideoDao {
	return &VideoDao{db: db}
}

// VideoFilter 视频列表的过滤条件
type VideoFilter struct {
	Query   string // 在标题, 描述和作者名中搜索
	OwnerID int64
	Viewer  int64
}

func (d *VideoDao) InsertVideo(ctx context.Context, video *model.Video) error {
	if err := d.db.WithContext(ctx).Create(video).Error; err != nil {
		return errors.Wrapf(err, "InsertVideo failed,err:%v", err)
	}
	return nil
}

func (d *VideoDao) GetVideo(ctx context.Context, videoId int64) (*model.Video, error) {
	var video model.Video
	if err := d.db.WithContext(ctx).Where("id = ?", videoId).First(&video).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errno.VideoNotExistErr
		}
		return nil, errors.Wrapf(err, "GetVideo failed,err:%v", err)
	}
	return &video, nil
}

// GetVideoView 视频详情, 包含作者, 点赞数以及当前用户是否点赞
func (d *VideoDao) GetVideoView(ctx context.Context, videoId, viewer int64) (*view.VideoRow, error) {
	v := constants.VideosTableName
	sel := view.Select(v+".*").Owner().Likes(model.TargetVideo, v+".id", viewer)
	var rows []view.VideoRow
	if err := d.db.WithContext(ctx).Table(v).
		Scopes(view.JoinOwner(v, "owner_id"), sel.Scope()).
		Where(v+".id = ?", videoId).
		Limit(1).
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrapf(err, "GetVideoView failed,err:%v", err)
	}
	if len(rows) == 0 {
		return nil, errno.VideoNotExistErr
	}
	return &rows[0], nil
}

// ListVideos 过滤条件在分页之前生效, total使用同样的过滤条件
func (d *VideoDao) ListVideos(ctx context.Context, f VideoFilter, q view.PageQuery, sort view.SortField) ([]view.VideoRow, int64, error) {
	v := constants.VideosTableName
	base := d.db.WithContext(ctx).Table(v).
		Scopes(view.JoinOwner(v, "owner_id"))
	if f.OwnerID != 0 {
		base = base.Where(v+".owner_id = ?", f.OwnerID)
	}
	// 作者查看自己的频道时包含未发布的视频
	if f.OwnerID == 0 || f.OwnerID != f.Viewer {
		base = base.Where(v+".is_published = ?", true)
	}
	base = base.Scopes(view.Search(f.Query, v+".title", v+".description", view.OwnerAlias+".user_name", view.OwnerAlias+".full_name")).
		Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrapf(err, "ListVideos count failed,err:%v", err)
	}
	if total == 0 {
		return nil, 0, nil
	}

	sel := view.Select(v+".*").Owner().Likes(model.TargetVideo, v+".id", f.Viewer)
	var rows []view.VideoRow
	if err := base.Scopes(sel.Scope(), view.OrderBy(sort, q.Desc()), view.Paginate(q)).
		Scan(&rows).Error; err != nil {
		return nil, 0, errors.Wrapf(err, "ListVideos failed,err:%v", err)
	}
	return rows, total, nil
}

func (d *VideoDao) UpdateVideo(ctx context.Context, videoId int64, title, description, thumbnail string) error {
	values := map[string]interface{}{
		"title":       title,
		"description": description,
		"updated_at":  time.Now(),
	}
	if thumbnail != "" {
		values["thumbnail"] = thumbnail
	}
	res := d.db.WithContext(ctx).Model(&model.Video{}).Where("id = ?", videoId).Updates(values)
	if res.Error != nil {
		return errors.Wrapf(res.Error, "UpdateVideo failed,err:%v", res.Error)
	}
	if res.RowsAffected == 0 {
		return errno.VideoNotExistErr
	}
	return nil
}

func (d *VideoDao) DeleteVideo(ctx context.Context, videoId int64) error {
	res := d.db.WithContext(ctx).Where("id = ?", videoId).Delete(&model.Video{})
	if res.Error != nil {
		return errors.Wrapf(res.Error, "DeleteVideo failed,err:%v", res.Error)
	}
	if res.RowsAffected == 0 {
		return errno.VideoNotExistErr
	}
	return nil
}

// TogglePublish 单条UPDATE翻转发布状态
func (d *VideoDao) TogglePublish(ctx context.Context, videoId int64) (bool, error) {
	var published []bool
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Video{}).Where("id = ?", videoId).
			Updates(map[string]interface{}{
				"is_published": gorm.Expr("NOT is_published"),
				"updated_at":   time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errno.VideoNotExistErr
		}
		return tx.Model(&model.Video{}).Where("id = ?", videoId).Pluck("is_published", &published).Error
	})
	if err != nil {
		return false, errors.WithMessage(err, "TogglePublish failed")
	}
	return len(published) > 0 && published[0], nil
}

func (d *VideoDao) IncrementViews(ctx context.Context, videoId int64) error {
	if err := d.db.WithContext(ctx).Model(&model.Video{}).Where("id = ?", videoId).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error; err != nil {
		return errors.Wrapf(err, "IncrementViews failed,err:%v", err)
	}
	return nil
}
