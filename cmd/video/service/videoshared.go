package service

import (
	"context"

	"VideoTube.com/pkg/mq"
	"VideoTube.com/pkg/oss"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

// DeleteVideo 删除记录与媒体文件, 评论等依附数据交给reconcile异步清理
func (s *VideoService) DeleteVideo(ctx context.Context, videoId, userId int64) error {
	video, err := s.ownedVideo(ctx, videoId, userId)
	if err != nil {
		return err
	}
	if err = s.videos.DeleteVideo(ctx, video.ID); err != nil {
		return errors.WithMessage(err, "dao.DeleteVideo failed")
	}
	oss.DeleteQuietly(ctx, s.media, video.VideoFile)
	oss.DeleteQuietly(ctx, s.media, video.Thumbnail)

	// 消息发送失败时由定时sweep兜底
	if err = s.publisher.PublishVideoEvent(ctx, mq.NewVideoEvent(mq.EventVideoDeleted, video.ID, video.OwnerID)); err != nil {
		hlog.CtxWarnf(ctx, "publish video.deleted for %d failed: %v", video.ID, err)
	}
	return nil
}

func (s *VideoService) TogglePublishStatus(ctx context.Context, videoId, userId int64) (bool, error) {
	if _, err := s.ownedVideo(ctx, videoId, userId); err != nil {
		return false, err
	}
	published, err := s.videos.TogglePublish(ctx, videoId)
	if err != nil {
		return false, errors.WithMessage(err, "dao.TogglePublish failed")
	}
	return published, nil
}
