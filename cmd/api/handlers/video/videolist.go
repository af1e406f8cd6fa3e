package handlers

import (
	"context"

	"VideoTube.com/cmd/api/handlers/form"
	"VideoTube.com/cmd/api/handlers/response"
	"VideoTube.com/cmd/api/router/authfunc"
	"VideoTube.com/cmd/video/service"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// ListVideos 支持query全文过滤与userId过滤
func (h *Handler) ListVideos(ctx context.Context, c *app.RequestContext) {
	ownerId, err := form.QueryID(c, "userId")
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	page, err := h.videos.ListVideos(ctx, &service.ListVideosParam{
		Query:   c.Query("query"),
		OwnerID: ownerId,
		Viewer:  authfunc.ViewerID(c),
		Page:    form.PageQuery(c),
	})
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	response.SendSuccess(c, consts.StatusOK, page, "Videos fetched successfully")
}

func (h *Handler) GetVideo(ctx context.Context, c *app.RequestContext) {
	videoId, err := form.PathID(c, "videoId")
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	video, err := h.videos.GetVideo(ctx, videoId, authfunc.ViewerID(c))
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	response.SendSuccess(c, consts.StatusOK, video, "Video fetched successfully")
}
