package db

import (
	"context"

	"VideoTube.com/cmd/model"
	"VideoTube.com/pkg/constants"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// CascadeDao 视频消失之后清理依附于它的记录
type CascadeDao struct {
	db *gorm.DB
}

func NewCascadeDao(db *gorm.DB) *CascadeDao {
	return &CascadeDao{db: db}
}

func (d *CascadeDao) VideoExists(ctx context.Context, videoId int64) (bool, error) {
	var count int64
	if err := d.db.WithContext(ctx).Model(&model.Video{}).Where("id = ?", videoId).Count(&count).Error; err != nil {
		return false, errors.Wrapf(err, "VideoExists failed,err:%v", err)
	}
	return count > 0, nil
}

// PurgeStats 一次清理删除的行数
type PurgeStats struct {
	Comments       int64
	CommentLikes   int64
	VideoLikes     int64
	PlaylistVideos int64
	WatchHistories int64
}

// PurgeVideo 删除评论(及评论的点赞), 视频的点赞, 播放列表条目与观看历史
func (d *CascadeDao) PurgeVideo(ctx context.Context, videoId int64) (*PurgeStats, error) {
	stats := &PurgeStats{}
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		commentIds := tx.Model(&model.Comment{}).Select("id").Where("video_id = ?", videoId)
		res := tx.Where("target_type = ? AND target_id IN (?)", model.TargetComment, commentIds).Delete(&model.Like{})
		if res.Error != nil {
			return res.Error
		}
		stats.CommentLikes = res.RowsAffected

		if res = tx.Where("video_id = ?", videoId).Delete(&model.Comment{}); res.Error != nil {
			return res.Error
		}
		stats.Comments = res.RowsAffected

		if res = tx.Where("target_type = ? AND target_id = ?", model.TargetVideo, videoId).Delete(&model.Like{}); res.Error != nil {
			return res.Error
		}
		stats.VideoLikes = res.RowsAffected

		if res = tx.Where("video_id = ?", videoId).Delete(&model.PlaylistVideo{}); res.Error != nil {
			return res.Error
		}
		stats.PlaylistVideos = res.RowsAffected

		if res = tx.Where("video_id = ?", videoId).Delete(&model.WatchHistory{}); res.Error != nil {
			return res.Error
		}
		stats.WatchHistories = res.RowsAffected
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "PurgeVideo failed,err:%v", err)
	}
	return stats, nil
}

// orphanScanSQL 评论, 视频点赞, 播放列表条目与观看历史中引用了不存在视频的id
func orphanScanSQL() string {
	v := constants.VideosTableName
	missing := func(table, col, extra string) string {
		return "SELECT o." + col + " AS video_id FROM " + table + " o LEFT JOIN " + v +
			" ON " + v + ".id = o." + col + " WHERE " + v + ".id IS NULL" + extra
	}
	return "SELECT DISTINCT video_id FROM (" +
		missing(constants.CommentsTableName, "video_id", "") + " UNION " +
		missing(constants.LikesTableName, "target_id", " AND o.target_type = ?") + " UNION " +
		missing(constants.PlaylistVideosTable, "video_id", "") + " UNION " +
		missing(constants.WatchHistoryTableName, "video_id", "") +
		") orphans ORDER BY video_id LIMIT ?"
}

// OrphanedVideoIDs 视频已不存在但仍有依附记录的视频id
func (d *CascadeDao) OrphanedVideoIDs(ctx context.Context, limit int) ([]int64, error) {
	var ids []int64
	if err := d.db.WithContext(ctx).Raw(orphanScanSQL(), model.TargetVideo, limit).Scan(&ids).Error; err != nil {
		return nil, errors.Wrapf(err, "OrphanedVideoIDs failed,err:%v", err)
	}
	return ids, nil
}
