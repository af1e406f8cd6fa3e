package service

import (
	"context"
	"strings"
	"time"

	"VideoTube.com/cmd/model"
	"VideoTube.com/pkg/constants"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/utils"
	"VideoTube.com/pkg/view"
	"github.com/pkg/errors"
)

func (s *PlaylistService) CreatePlaylist(ctx context.Context, ownerId int64, name, description string) (*view.PlaylistView, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errno.ParamErr.WithMessage("playlist name is required")
	}
	description = strings.TrimSpace(description)
	if description == "" {
		description = constants.DefaultPlaylistDescription
	}
	now := time.Now()
	p := &model.Playlist{
		ID:          utils.NextID(),
		Name:        name,
		Description: description,
		OwnerID:     ownerId,
		IsPublished: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.playlists.CreatePlaylist(ctx, p); err != nil {
		return nil, errors.WithMessage(err, "dao.CreatePlaylist failed")
	}
	return s.playlistView(ctx, p.ID, ownerId)
}

// GetPlaylist 未发布的播放列表只对作者可见, 视频按加入顺序排列
func (s *PlaylistService) GetPlaylist(ctx context.Context, playlistId, viewer int64) (*view.PlaylistView, error) {
	row, err := s.playlists.GetPlaylistView(ctx, playlistId, viewer)
	if err != nil {
		return nil, err
	}
	if !row.Playlist.VisibleTo(viewer) {
		return nil, errno.PlaylistNotExist
	}
	videos, err := s.playlists.PlaylistVideos(ctx, playlistId, viewer)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.PlaylistVideos failed")
	}
	v := row.View()
	v.Videos = make([]view.VideoView, 0, len(videos))
	for i := range videos {
		v.Videos = append(v.Videos, videos[i].View())
	}
	return &v, nil
}

func (s *PlaylistService) UserPlaylists(ctx context.Context, ownerId, viewer int64, q view.PageQuery) (*view.Page[view.PlaylistView], error) {
	q, _, err := q.Resolve(view.CreatedSort(constants.PlaylistsTableName))
	if err != nil {
		return nil, err
	}
	rows, total, err := s.playlists.UserPlaylists(ctx, ownerId, viewer, q)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.UserPlaylists failed")
	}
	return view.MapPage(view.NewPage(rows, total, q), func(r view.PlaylistRow) view.PlaylistView { return r.View() }), nil
}

// AddVideo 视频已在列表中时返回false, 不视为错误
func (s *PlaylistService) AddVideo(ctx context.Context, playlistId, videoId, userId int64) (bool, error) {
	if _, err := s.ownedPlaylist(ctx, playlistId, userId); err != nil {
		return false, err
	}
	video, err := s.videos.GetVideo(ctx, videoId)
	if err != nil {
		return false, err
	}
	if !video.VisibleTo(userId) {
		return false, errno.VideoNotExistErr
	}
	added, err := s.playlists.AddVideo(ctx, playlistId, videoId, utils.NextID())
	if err != nil {
		return false, errors.WithMessage(err, "dao.AddVideo failed")
	}
	return added, nil
}

func (s *PlaylistService) RemoveVideo(ctx context.Context, playlistId, videoId, userId int64) error {
	if _, err := s.ownedPlaylist(ctx, playlistId, userId); err != nil {
		return err
	}
	removed, err := s.playlists.RemoveVideo(ctx, playlistId, videoId)
	if err != nil {
		return errors.WithMessage(err, "dao.RemoveVideo failed")
	}
	if !removed {
		return errno.NotFoundErr.WithMessage("Video is not in the playlist")
	}
	return nil
}

func (s *PlaylistService) UpdatePlaylist(ctx context.Context, playlistId, userId int64, name, description string) (*view.PlaylistView, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if name == "" && description == "" {
		return nil, errno.ParamErr.WithMessage("name or description is required")
	}
	if _, err := s.ownedPlaylist(ctx, playlistId, userId); err != nil {
		return nil, err
	}
	if err := s.playlists.UpdatePlaylist(ctx, playlistId, name, description); err != nil {
		return nil, errors.WithMessage(err, "dao.UpdatePlaylist failed")
	}
	return s.playlistView(ctx, playlistId, userId)
}

func (s *PlaylistService) DeletePlaylist(ctx context.Context, playlistId, userId int64) error {
	if _, err := s.ownedPlaylist(ctx, playlistId, userId); err != nil {
		return err
	}
	if err := s.playlists.DeletePlaylist(ctx, playlistId); err != nil {
		return errors.WithMessage(err, "dao.DeletePlaylist failed")
	}
	return nil
}

func (s *PlaylistService) TogglePublishStatus(ctx context.Context, playlistId, userId int64) (bool, error) {
	if _, err := s.ownedPlaylist(ctx, playlistId, userId); err != nil {
		return false, err
	}
	published, err := s.playlists.TogglePublish(ctx, playlistId)
	if err != nil {
		return false, errors.WithMessage(err, "dao.TogglePublish failed")
	}
	return published, nil
}

func (s *PlaylistService) playlistView(ctx context.Context, playlistId, viewer int64) (*view.PlaylistView, error) {
	row, err := s.playlists.GetPlaylistView(ctx, playlistId, viewer)
	if err != nil {
		return nil, err
	}
	v := row.View()
	return &v, nil
}

func (s *PlaylistService) ownedPlaylist(ctx context.Context, playlistId, userId int64) (*model.Playlist, error) {
	p, err := s.playlists.GetPlaylist(ctx, playlistId)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != userId {
		return nil, errno.AuthorizationErr
	}
	return p, nil
}
