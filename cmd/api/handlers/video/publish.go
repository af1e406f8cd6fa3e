package handlers

import (
	"context"

	"VideoTube.com/cmd/api/handlers/form"
	"VideoTube.com/cmd/api/handlers/response"
	"VideoTube.com/cmd/api/router/authfunc"
	"VideoTube.com/cmd/video/service"
	"VideoTube.com/pkg/constants"
	"VideoTube.com/pkg/oss"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

func (h *Handler) PublishVideo(ctx context.Context, c *app.RequestContext) {
	var req PublishParam
	if err := c.Bind(&req); err != nil {
		response.SendResponse(c, bindErr(err), nil)
		return
	}
	videoPath, err := form.SaveUpload(c, constants.VideoFileField, h.tempDir)
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	thumbPath, err := form.SaveUpload(c, constants.ThumbnailField, h.tempDir)
	if err != nil {
		oss.Cleanup(videoPath)
		response.SendResponse(c, err, nil)
		return
	}
	video, err := h.videos.PublishVideo(ctx, &service.PublishParam{
		OwnerID:       authfunc.ViewerID(c),
		Title:         req.Title,
		Description:   req.Description,
		VideoPath:     videoPath,
		ThumbnailPath: thumbPath,
	})
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	response.SendCreated(c, video, "Video published successfully")
}

// UpdateVideo thumbnail可选, 提供时替换旧封面
func (h *Handler) UpdateVideo(ctx context.Context, c *app.RequestContext) {
	videoId, err := form.PathID(c, "videoId")
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	var req UpdateVideoParam
	if err = c.Bind(&req); err != nil {
		response.SendResponse(c, bindErr(err), nil)
		return
	}
	thumbPath, err := form.SaveUpload(c, constants.ThumbnailField, h.tempDir)
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	video, err := h.videos.UpdateVideo(ctx, &service.UpdateVideoParam{
		VideoID:       videoId,
		UserID:        authfunc.ViewerID(c),
		Title:         req.Title,
		Description:   req.Description,
		ThumbnailPath: thumbPath,
	})
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	response.SendSuccess(c, consts.StatusOK, video, "Video updated successfully")
}

func (h *Handler) DeleteVideo(ctx context.Context, c *app.RequestContext) {
	videoId, err := form.PathID(c, "videoId")
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	if err = h.videos.DeleteVideo(ctx, videoId, authfunc.ViewerID(c)); err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	response.SendSuccess(c, consts.StatusOK, struct{}{}, "Video deleted successfully")
}

func (h *Handler) TogglePublishStatus(ctx context.Context, c *app.RequestContext) {
	videoId, err := form.PathID(c, "videoId")
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	published, err := h.videos.TogglePublishStatus(ctx, videoId, authfunc.ViewerID(c))
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	response.SendSuccess(c, consts.StatusOK, &PublishStatus{IsPublished: published}, "Video publish status toggled")
}
