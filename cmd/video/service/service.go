package service

import (
	"context"
	"time"

	"VideoTube.com/cmd/model"
	"VideoTube.com/cmd/video/dal/db"
	"VideoTube.com/pkg/mq"
	"VideoTube.com/pkg/oss"
	"VideoTube.com/pkg/view"
)

// VideoStore 由 dal/db.VideoDao 实现
type VideoStore interface {
	InsertVideo(ctx context.Context, video *model.Video) error
	GetVideo(ctx context.Context, videoId int64) (*model.Video, error)
	GetVideoView(ctx context.Context, videoId, viewer int64) (*view.VideoRow, error)
	ListVideos(ctx context.Context, f db.VideoFilter, q view.PageQuery, sort view.SortField) ([]view.VideoRow, int64, error)
	UpdateVideo(ctx context.Context, videoId int64, title, description, thumbnail string) error
	DeleteVideo(ctx context.Context, videoId int64) error
	TogglePublish(ctx context.Context, videoId int64) (bool, error)
	IncrementViews(ctx context.Context, videoId int64) error
}

// WatchRecorder 观看历史, 由 user/dal/db.UserDao 实现
type WatchRecorder interface {
	RecordWatch(ctx context.Context, userId, videoId int64, at time.Time) error
}

// PlaylistStore 由 dal/db.PlaylistDao 实现
type PlaylistStore interface {
	CreatePlaylist(ctx context.Context, p *model.Playlist) error
	GetPlaylist(ctx context.Context, playlistId int64) (*model.Playlist, error)
	GetPlaylistView(ctx context.Context, playlistId, viewer int64) (*view.PlaylistRow, error)
	PlaylistVideos(ctx context.Context, playlistId, viewer int64) ([]view.VideoRow, error)
	UserPlaylists(ctx context.Context, ownerId, viewer int64, q view.PageQuery) ([]view.PlaylistRow, int64, error)
	AddVideo(ctx context.Context, playlistId, videoId, seq int64) (bool, error)
	RemoveVideo(ctx context.Context, playlistId, videoId int64) (bool, error)
	UpdatePlaylist(ctx context.Context, playlistId int64, name, description string) error
	DeletePlaylist(ctx context.Context, playlistId int64) error
	TogglePublish(ctx context.Context, playlistId int64) (bool, error)
}

type VideoService struct {
	videos    VideoStore
	history   WatchRecorder
	media     oss.MediaHost
	publisher mq.EventPublisher
}

func NewVideoService(videos VideoStore, history WatchRecorder, media oss.MediaHost, publisher mq.EventPublisher) *VideoService {
	return &VideoService{videos: videos, history: history, media: media, publisher: publisher}
}

type PlaylistService struct {
	playlists PlaylistStore
	videos    VideoStore
}

func NewPlaylistService(playlists PlaylistStore, videos VideoStore) *PlaylistService {
	return &PlaylistService{playlists: playlists, videos: videos}
}
