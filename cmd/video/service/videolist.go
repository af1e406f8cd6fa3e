package service

import (
	"context"
	"strings"
	"time"

	"VideoTube.com/cmd/video/dal/db"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/view"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

type ListVideosParam struct {
	Query   string
	OwnerID int64
	Viewer  int64
	Page    view.PageQuery
}

func (s *VideoService) ListVideos(ctx context.Context, req *ListVideosParam) (*view.Page[view.VideoView], error) {
	q, sort, err := req.Page.Resolve(view.VideoSortFields)
	if err != nil {
		return nil, err
	}
	rows, total, err := s.videos.ListVideos(ctx, db.VideoFilter{
		Query:   strings.TrimSpace(req.Query),
		OwnerID: req.OwnerID,
		Viewer:  req.Viewer,
	}, q, sort)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.ListVideos failed")
	}
	return videoPage(rows, total, q), nil
}

func videoPage(rows []view.VideoRow, total int64, q view.PageQuery) *view.Page[view.VideoView] {
	return view.MapPage(view.NewPage(rows, total, q), func(r view.VideoRow) view.VideoView { return r.View() })
}

// GetVideo 未发布的视频对非作者表现为不存在; 登录用户会留下观看记录
func (s *VideoService) GetVideo(ctx context.Context, videoId, viewer int64) (*view.VideoView, error) {
	row, err := s.videos.GetVideoView(ctx, videoId, viewer)
	if err != nil {
		return nil, err
	}
	if !row.Video.VisibleTo(viewer) {
		return nil, errno.VideoNotExistErr
	}
	if err = s.videos.IncrementViews(ctx, videoId); err != nil {
		hlog.CtxWarnf(ctx, "increment views of video %d failed: %v", videoId, err)
	} else {
		row.Views++
	}
	if viewer != 0 {
		if err = s.history.RecordWatch(ctx, viewer, videoId, time.Now()); err != nil {
			hlog.CtxWarnf(ctx, "record watch history of user %d failed: %v", viewer, err)
		}
	}
	v := row.View()
	return &v, nil
}
