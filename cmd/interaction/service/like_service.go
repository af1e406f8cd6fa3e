package service

import (
	"context"

	"VideoTube.com/cmd/model"
	"VideoTube.com/pkg/constants"
	"VideoTube.com/pkg/metrics"
	"VideoTube.com/pkg/utils"
	"VideoTube.com/pkg/view"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

func (s *LikeService) ToggleVideoLike(ctx context.Context, videoId, userId int64) (*view.LikeResult, error) {
	return s.toggle(ctx, model.VideoTarget(videoId), userId)
}

func (s *LikeService) ToggleCommentLike(ctx context.Context, commentId, userId int64) (*view.LikeResult, error) {
	return s.toggle(ctx, model.CommentTarget(commentId), userId)
}

func (s *LikeService) ToggleTweetLike(ctx context.Context, tweetId, userId int64) (*view.LikeResult, error) {
	return s.toggle(ctx, model.TweetTarget(tweetId), userId)
}

// toggle 未点赞则点赞, 已点赞则取消; 返回创建的记录或被删除前的记录
func (s *LikeService) toggle(ctx context.Context, target model.LikeTarget, userId int64) (*view.LikeResult, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}
	if err := s.likes.TargetVisible(ctx, target, userId); err != nil {
		return nil, err
	}
	like, liked, err := s.likes.ToggleLike(ctx, target, userId, utils.NextID())
	if err != nil {
		return nil, errors.WithMessage(err, "dao.ToggleLike failed")
	}
	metrics.TogglesTotal.WithLabelValues(string(target.Kind), metrics.ToggleState(liked)).Inc()
	hlog.CtxInfof(ctx, "user %d toggled like on %s %d, liked=%v", userId, target.Kind, target.ID, liked)
	return &view.LikeResult{Liked: liked, Like: like}, nil
}

// LikedVideos 最近点赞的视频在前
func (s *LikeService) LikedVideos(ctx context.Context, userId int64, q view.PageQuery) (*view.Page[view.VideoView], error) {
	q, _, err := q.Resolve(view.CreatedSort(constants.LikesTableName))
	if err != nil {
		return nil, err
	}
	rows, total, err := s.likes.LikedVideos(ctx, userId, q)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.LikedVideos failed")
	}
	docs := make([]view.VideoView, 0, len(rows))
	for i := range rows {
		docs = append(docs, rows[i].View())
	}
	return view.NewPage(docs, total, q), nil
}
