package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"VideoTube.com/cmd/model"
	"VideoTube.com/pkg/constants"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/mq"
	"VideoTube.com/pkg/utils"
	"VideoTube.com/pkg/view"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

const commentRateScope = "comment"

// validateCommentContent 去掉首尾空白后长度为1到MaxCommentLength个字符
func validateCommentContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", errno.ParamErr.WithMessage("Comment content cannot be empty")
	}
	if utf8.RuneCountInString(content) > constants.MaxCommentLength {
		return "", errno.ParamErr.WithMessage("Comment content is too long")
	}
	return content, nil
}

// visibleVideo 视频不存在时发出video.orphaned事件, 由reconcile清理遗留的评论
func (s *CommentService) visibleVideo(ctx context.Context, videoId, viewer int64) (*model.Video, error) {
	video, err := s.videos.GetVideo(ctx, videoId)
	if err != nil {
		if errors.Is(err, errno.NotFoundErr) {
			if perr := s.publisher.PublishVideoEvent(ctx, mq.NewVideoEvent(mq.EventVideoOrphaned, videoId, 0)); perr != nil {
				hlog.CtxWarnf(ctx, "publish video.orphaned for %d failed: %v", videoId, perr)
			}
		}
		return nil, err
	}
	if !video.VisibleTo(viewer) {
		return nil, errno.VideoNotExistErr
	}
	return video, nil
}

func (s *CommentService) ListComments(ctx context.Context, videoId, viewer int64, q view.PageQuery) (*view.Page[view.CommentView], error) {
	q, sort, err := q.Resolve(view.CreatedSort(constants.CommentsTableName))
	if err != nil {
		return nil, err
	}
	if _, err = s.visibleVideo(ctx, videoId, viewer); err != nil {
		return nil, err
	}
	rows, total, err := s.comments.ListComments(ctx, videoId, viewer, q, sort)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.ListComments failed")
	}
	docs := make([]view.CommentView, 0, len(rows))
	for i := range rows {
		docs = append(docs, rows[i].View())
	}
	return view.NewPage(docs, total, q), nil
}

func (s *CommentService) AddComment(ctx context.Context, videoId, userId int64, content string) (*view.CommentView, error) {
	content, err := validateCommentContent(content)
	if err != nil {
		return nil, err
	}
	// 先确认视频可见, 404的请求不占用限流额度
	if _, err = s.visibleVideo(ctx, videoId, userId); err != nil {
		return nil, err
	}
	allowed, err := s.limiter.Allow(ctx, commentRateScope, userId, constants.CommentRateLimit, constants.CommentRateWindow)
	if err != nil {
		return nil, errors.WithMessage(err, "rate limiter failed")
	}
	if !allowed {
		return nil, errno.TooManyRequestsErr.WithMessage("Too many comments, please slow down")
	}
	now := time.Now()
	comment := &model.Comment{
		ID:        utils.NextID(),
		Content:   content,
		VideoID:   videoId,
		OwnerID:   userId,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err = s.comments.CreateComment(ctx, comment); err != nil {
		return nil, errors.WithMessage(err, "dao.CreateComment failed")
	}
	return s.commentView(ctx, comment.ID, userId)
}

func (s *CommentService) UpdateComment(ctx context.Context, commentId, userId int64, content string) (*view.CommentView, error) {
	content, err := validateCommentContent(content)
	if err != nil {
		return nil, err
	}
	if _, err = s.ownedComment(ctx, commentId, userId); err != nil {
		return nil, err
	}
	if err = s.comments.UpdateComment(ctx, commentId, content); err != nil {
		return nil, errors.WithMessage(err, "dao.UpdateComment failed")
	}
	return s.commentView(ctx, commentId, userId)
}

// DeleteComment 评论的点赞一并删除
func (s *CommentService) DeleteComment(ctx context.Context, commentId, userId int64) error {
	if _, err := s.ownedComment(ctx, commentId, userId); err != nil {
		return err
	}
	if err := s.comments.DeleteComment(ctx, commentId); err != nil {
		return errors.WithMessage(err, "dao.DeleteComment failed")
	}
	return nil
}

func (s *CommentService) commentView(ctx context.Context, commentId, viewer int64) (*view.CommentView, error) {
	row, err := s.comments.GetCommentView(ctx, commentId, viewer)
	if err != nil {
		return nil, err
	}
	v := row.View()
	return &v, nil
}

func (s *CommentService) ownedComment(ctx context.Context, commentId, userId int64) (*model.Comment, error) {
	comment, err := s.comments.GetComment(ctx, commentId)
	if err != nil {
		return nil, err
	}
	if comment.OwnerID != userId {
		return nil, errno.AuthorizationErr
	}
	return comment, nil
}
