package service

import (
	"context"
	"strings"
	"time"

	"VideoTube.com/cmd/model"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/oss"
	"VideoTube.com/pkg/utils"
	"VideoTube.com/pkg/view"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// PublishParam 视频与封面为已保存到本地的临时文件路径
type PublishParam struct {
	OwnerID       int64
	Title         string
	Description   string
	VideoPath     string
	ThumbnailPath string
}

func (s *VideoService) PublishVideo(ctx context.Context, req *PublishParam) (*view.VideoView, error) {
	defer oss.Cleanup(req.VideoPath, req.ThumbnailPath)

	// 1. 参数验证
	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	if title == "" || description == "" {
		return nil, errno.ParamErr.WithMessage("title and description are required")
	}
	if req.VideoPath == "" || req.ThumbnailPath == "" {
		return nil, errno.ParamErr.WithMessage("video file and thumbnail are required")
	}

	// 2. 视频与封面并发上传, 任一失败则删除另一个已上传的对象
	var videoRes, thumbRes *oss.UploadResult
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := s.media.Upload(gctx, req.VideoPath, oss.FolderVideo)
		videoRes = res
		return err
	})
	g.Go(func() error {
		res, err := s.media.Upload(gctx, req.ThumbnailPath, oss.FolderThumbnail)
		thumbRes = res
		return err
	})
	if err := g.Wait(); err != nil {
		if videoRes != nil {
			oss.DeleteQuietly(ctx, s.media, videoRes.URL)
		}
		if thumbRes != nil {
			oss.DeleteQuietly(ctx, s.media, thumbRes.URL)
		}
		return nil, err
	}

	// 3. 写库
	now := time.Now()
	video := &model.Video{
		ID:          utils.NextID(),
		VideoFile:   videoRes.URL,
		Thumbnail:   thumbRes.URL,
		Title:       title,
		Description: description,
		Duration:    videoRes.Duration,
		IsPublished: true,
		OwnerID:     req.OwnerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.videos.InsertVideo(ctx, video); err != nil {
		oss.DeleteQuietly(ctx, s.media, videoRes.URL)
		oss.DeleteQuietly(ctx, s.media, thumbRes.URL)
		return nil, errors.WithMessage(err, "dao.InsertVideo failed")
	}
	hlog.CtxInfof(ctx, "user %d published video %d", req.OwnerID, video.ID)
	return s.videoView(ctx, video.ID, req.OwnerID)
}

type UpdateVideoParam struct {
	VideoID       int64
	UserID        int64
	Title         string
	Description   string
	ThumbnailPath string
}

// UpdateVideo 新封面先上传, 记录更新成功之后才删除旧封面
func (s *VideoService) UpdateVideo(ctx context.Context, req *UpdateVideoParam) (*view.VideoView, error) {
	defer oss.Cleanup(req.ThumbnailPath)

	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	if title == "" || description == "" {
		return nil, errno.ParamErr.WithMessage("title and description are required")
	}
	video, err := s.ownedVideo(ctx, req.VideoID, req.UserID)
	if err != nil {
		return nil, err
	}

	var thumbnail string
	if req.ThumbnailPath != "" {
		res, err := s.media.Upload(ctx, req.ThumbnailPath, oss.FolderThumbnail)
		if err != nil {
			return nil, err
		}
		thumbnail = res.URL
	}
	if err = s.videos.UpdateVideo(ctx, video.ID, title, description, thumbnail); err != nil {
		oss.DeleteQuietly(ctx, s.media, thumbnail)
		return nil, errors.WithMessage(err, "dao.UpdateVideo failed")
	}
	if thumbnail != "" {
		oss.DeleteQuietly(ctx, s.media, video.Thumbnail)
	}
	return s.videoView(ctx, video.ID, req.UserID)
}

func (s *VideoService) videoView(ctx context.Context, videoId, viewer int64) (*view.VideoView, error) {
	row, err := s.videos.GetVideoView(ctx, videoId, viewer)
	if err != nil {
		return nil, err
	}
	v := row.View()
	return &v, nil
}

// ownedVideo 只有作者可以修改视频
func (s *VideoService) ownedVideo(ctx context.Context, videoId, userId int64) (*model.Video, error) {
	video, err := s.videos.GetVideo(ctx, videoId)
	if err != nil {
		return nil, err
	}
	if video.OwnerID != userId {
		return nil, errno.AuthorizationErr
	}
	return video, nil
}
