package service

import (
	"context"
	"time"

	"VideoTube.com/cmd/interaction/dal/db"
	"VideoTube.com/cmd/model"
	"VideoTube.com/pkg/mq"
	"VideoTube.com/pkg/view"
)

// CommentStore 由 dal/db.CommentDao 实现
type CommentStore interface {
	CreateComment(ctx context.Context, comment *model.Comment) error
	GetComment(ctx context.Context, commentId int64) (*model.Comment, error)
	GetCommentView(ctx context.Context, commentId, viewer int64) (*view.CommentRow, error)
	UpdateComment(ctx context.Context, commentId int64, content string) error
	DeleteComment(ctx context.Context, commentId int64) error
	ListComments(ctx context.Context, videoId, viewer int64, q view.PageQuery, sort view.SortField) ([]view.CommentRow, int64, error)
}

// LikeStore 由 dal/db.LikeDao 实现
type LikeStore interface {
	ToggleLike(ctx context.Context, target model.LikeTarget, userId, likeId int64) (*model.Like, bool, error)
	TargetVisible(ctx context.Context, target model.LikeTarget, viewer int64) error
	LikedVideos(ctx context.Context, userId int64, q view.PageQuery) ([]view.VideoRow, int64, error)
}

// CascadeStore 由 dal/db.CascadeDao 实现
type CascadeStore interface {
	VideoExists(ctx context.Context, videoId int64) (bool, error)
	PurgeVideo(ctx context.Context, videoId int64) (*db.PurgeStats, error)
	OrphanedVideoIDs(ctx context.Context, limit int) ([]int64, error)
}

// VideoLookup 评论所属视频, 由 video/dal/db.VideoDao 实现
type VideoLookup interface {
	GetVideo(ctx context.Context, videoId int64) (*model.Video, error)
}

type RateLimiter interface {
	Allow(ctx context.Context, scope string, userID, limit int64, window time.Duration) (bool, error)
}

type CommentService struct {
	comments  CommentStore
	videos    VideoLookup
	limiter   RateLimiter
	publisher mq.EventPublisher
}

func NewCommentService(comments CommentStore, videos VideoLookup, limiter RateLimiter, publisher mq.EventPublisher) *CommentService {
	return &CommentService{comments: comments, videos: videos, limiter: limiter, publisher: publisher}
}

type LikeService struct {
	likes LikeStore
}

func NewLikeService(likes LikeStore) *LikeService {
	return &LikeService{likes: likes}
}
