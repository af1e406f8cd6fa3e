package handlers

import (
	"context"

	"VideoTube.com/cmd/api/handlers/form"
	"VideoTube.com/cmd/api/handlers/response"
	"VideoTube.com/cmd/api/router/authfunc"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// PlaylistEntry 添加视频的返回, Added为false表示视频已在列表中
type PlaylistEntry struct {
	PlaylistID int64 `json:"playlistId,string"`
	VideoID    int64 `json:"videoId,string"`
	Added      bool  `json:"added"`
}

func (h *Handler) CreatePlaylist(ctx context.Context, c *app.RequestContext) {
	var req PlaylistParam
	if err := c.Bind(&req); err != nil {
		response.SendResponse(c, bindErr(err), nil)
		return
	}
	playlist, err := h.playlists.CreatePlaylist(ctx, authfunc.ViewerID(c), req.Name, req.Description)
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	response.SendCreated(c, playlist, "Playlist created successfully")
}

func (h *Handler) GetPlaylist(ctx context.Context, c *app.RequestContext) {
	playlistId, err := form.PathID(c, "playlistId")
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	playlist, err := h.playlists.GetPlaylist(ctx, playlistId, authfunc.ViewerID(c))
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	response.SendSuccess(c, consts.StatusOK, playlist, "Playlist fetched successfully")
}

func (h *Handler) UserPlaylists(ctx context.Context, c *app.RequestContext) {
	userId, err := form.PathID(c, "userId")
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	page, err := h.playlists.UserPlaylists(ctx, userId, authfunc.ViewerID(c), form.PageQuery(c))
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	response.SendSuccess(c, consts.StatusOK, page, "User playlists fetched successfully")
}

func (h *Handler) AddVideo(ctx context.Context, c *app.RequestContext) {
	playlistId, videoId, err := entryIDs(c)
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	added, err := h.playlists.AddVideo(ctx, playlistId, videoId, authfunc.ViewerID(c))
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	message := "Video added to playlist"
	if !added {
		message = "Video is already in the playlist"
	}
	response.SendSuccess(c, consts.StatusOK, &PlaylistEntry{PlaylistID: playlistId, VideoID: videoId, Added: added}, message)
}

func (h *Handler) RemoveVideo(ctx context.Context, c *app.RequestContext) {
	playlistId, videoId, err := entryIDs(c)
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	if err = h.playlists.RemoveVideo(ctx, playlistId, videoId, authfunc.ViewerID(c)); err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	response.SendSuccess(c, consts.StatusOK, &PlaylistEntry{PlaylistID: playlistId, VideoID: videoId}, "Video removed from playlist")
}

func (h *Handler) UpdatePlaylist(ctx context.Context, c *app.RequestContext) {
	playlistId, err := form.PathID(c, "playlistId")
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	var req PlaylistParam
	if err = c.Bind(&req); err != nil {
		response.SendResponse(c, bindErr(err), nil)
		return
	}
	playlist, err := h.playlists.UpdatePlaylist(ctx, playlistId, authfunc.ViewerID(c), req.Name, req.Description)
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	response.SendSuccess(c, consts.StatusOK, playlist, "Playlist updated successfully")
}

func (h *Handler) DeletePlaylist(ctx context.Context, c *app.RequestContext) {
	playlistId, err := form.PathID(c, "playlistId")
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	if err = h.playlists.DeletePlaylist(ctx, playlistId, authfunc.ViewerID(c)); err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	response.SendSuccess(c, consts.StatusOK, struct{}{}, "Playlist deleted successfully")
}

func (h *Handler) TogglePlaylistPublish(ctx context.Context, c *app.RequestContext) {
	playlistId, err := form.PathID(c, "playlistId")
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	published, err := h.playlists.TogglePublishStatus(ctx, playlistId, authfunc.ViewerID(c))
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	response.SendSuccess(c, consts.StatusOK, &PublishStatus{IsPublished: published}, "Playlist publish status toggled")
}

// entryIDs 路由为 /playlist/add/:videoId/:playlistId
func entryIDs(c *app.RequestContext) (playlistId, videoId int64, err error) {
	if videoId, err = form.PathID(c, "videoId"); err != nil {
		return 0, 0, err
	}
	if playlistId, err = form.PathID(c, "playlistId"); err != nil {
		return 0, 0, err
	}
	return playlistId, videoId, nil
}
