package mq

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventVideoDeleted  = "video.deleted"
	EventVideoOrphaned = "video.orphaned"
)

// VideoEvent 视频被删除或被发现缺失, 由reconcile负责清理其评论, 点赞, 播放列表和观看历史
type VideoEvent struct {
	EventID   string `json:"event_id"`  // 事件ID
	Type      string `json:"type"`      // video.deleted / video.orphaned
	VideoID   int64  `json:"video_id"`  // 视频ID
	OwnerID   int64  `json:"owner_id"`  // 视频作者, orphaned事件中为0
	Timestamp int64  `json:"timestamp"` // 时间戳
}

func NewVideoEvent(typ string, videoID, ownerID int64) *VideoEvent {
	return &VideoEvent{
		EventID:   uuid.New().String(),
		Type:      typ,
		VideoID:   videoID,
		OwnerID:   ownerID,
		Timestamp: time.Now().Unix(),
	}
}

// 常量定义
const (
	// 交换机名称
	VideoEventExchange = "video_events"

	// 队列名称
	VideoEventQueue = "video_reconcile_queue"
)
