package handlers

import (
	"context"

	"VideoTube.com/cmd/api/handlers/form"
	"VideoTube.com/cmd/api/handlers/response"
	"VideoTube.com/cmd/api/router/authfunc"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

func (h *Handler) CurrentUser(ctx context.Context, c *app.RequestContext) {
	user, err := h.svc.CurrentUser(ctx, authfunc.ViewerID(c))
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	response.SendSuccess(c, consts.StatusOK, user, "Current user fetched successfully")
}

func (h *Handler) ChannelProfile(ctx context.Context, c *app.RequestContext) {
	profile, err := h.svc.ChannelProfile(ctx, c.Param("userName"), authfunc.ViewerID(c))
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	response.SendSuccess(c, consts.StatusOK, profile, "User channel fetched successfully")
}

func (h *Handler) WatchHistory(ctx context.Context, c *app.RequestContext) {
	page, err := h.svc.WatchHistory(ctx, authfunc.ViewerID(c), form.PageQuery(c))
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	response.SendSuccess(c, consts.StatusOK, page, "Watch history fetched successfully")
}
