package service

import (
	"context"

	"VideoTube.com/pkg/metrics"
	"VideoTube.com/pkg/mq"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

// Reconciler 视频消失后清理评论, 点赞, 播放列表条目与观看历史
type Reconciler struct {
	store CascadeStore
}

func NewReconciler(store CascadeStore) *Reconciler {
	return &Reconciler{store: store}
}

var _ mq.VideoEventHandler = (*Reconciler)(nil)

// HandleVideoEvent 处理video.deleted与video.orphaned事件
func (r *Reconciler) HandleVideoEvent(ctx context.Context, event *mq.VideoEvent) error {
	hlog.CtxInfof(ctx, "Processing video event: %+v", event)
	switch event.Type {
	case mq.EventVideoDeleted, mq.EventVideoOrphaned:
		_, err := r.Reconcile(ctx, event.VideoID)
		return err
	default:
		hlog.CtxWarnf(ctx, "unknown video event type: %s", event.Type)
		return nil
	}
}

// Reconcile 清理之前再次确认视频确实不存在, 返回是否执行了清理
func (r *Reconciler) Reconcile(ctx context.Context, videoId int64) (bool, error) {
	exists, err := r.store.VideoExists(ctx, videoId)
	if err != nil {
		return false, errors.WithMessage(err, "dao.VideoExists failed")
	}
	if exists {
		hlog.CtxInfof(ctx, "video %d still exists, skip reconcile", videoId)
		return false, nil
	}
	stats, err := r.store.PurgeVideo(ctx, videoId)
	if err != nil {
		return false, errors.WithMessage(err, "dao.PurgeVideo failed")
	}
	metrics.ReconciledRowsTotal.WithLabelValues("comments").Add(float64(stats.Comments))
	metrics.ReconciledRowsTotal.WithLabelValues("comment_likes").Add(float64(stats.CommentLikes))
	metrics.ReconciledRowsTotal.WithLabelValues("video_likes").Add(float64(stats.VideoLikes))
	metrics.ReconciledRowsTotal.WithLabelValues("playlist_videos").Add(float64(stats.PlaylistVideos))
	metrics.ReconciledRowsTotal.WithLabelValues("watch_histories").Add(float64(stats.WatchHistories))
	hlog.CtxInfof(ctx, "reconciled video %d: %+v", videoId, *stats)
	return true, nil
}

// Sweep 扫描一批视频已不存在但仍有评论, 点赞, 播放列表条目或观看历史的记录
func (r *Reconciler) Sweep(ctx context.Context, batch int) (int, error) {
	ids, err := r.store.OrphanedVideoIDs(ctx, batch)
	if err != nil {
		return 0, errors.WithMessage(err, "dao.OrphanedVideoIDs failed")
	}
	purged := 0
	for _, id := range ids {
		if ctx.Err() != nil {
			return purged, ctx.Err()
		}
		ok, err := r.Reconcile(ctx, id)
		if err != nil {
			return purged, err
		}
		if ok {
			purged++
		}
	}
	return purged, nil
}
