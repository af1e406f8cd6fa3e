package handlers

import (
	"context"

	"VideoTube.com/cmd/api/handlers/form"
	"VideoTube.com/cmd/api/handlers/response"
	"VideoTube.com/cmd/api/router/authfunc"
	"VideoTube.com/cmd/relation/service"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// Handler 频道订阅的接口
type Handler struct {
	svc *service.RelationService
}

func New(svc *service.RelationService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) ToggleSubscription(ctx context.Context, c *app.RequestContext) {
	channelId, err := form.PathID(c, "channelId")
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	res, err := h.svc.ToggleSubscription(ctx, authfunc.ViewerID(c), channelId)
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	message := "Unsubscribed successfully"
	if res.Subscribed {
		message = "Subscribed successfully"
	}
	response.SendSuccess(c, consts.StatusOK, res, message)
}

// ChannelSubscribers 订阅了该频道的用户
func (h *Handler) ChannelSubscribers(ctx context.Context, c *app.RequestContext) {
	channelId, err := form.PathID(c, "channelId")
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	page, err := h.svc.ChannelSubscribers(ctx, channelId, authfunc.ViewerID(c), form.PageQuery(c))
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	response.SendSuccess(c, consts.StatusOK, page, "Subscribers fetched successfully")
}

// SubscribedChannels 该用户订阅的频道
func (h *Handler) SubscribedChannels(ctx context.Context, c *app.RequestContext) {
	subscriberId, err := form.PathID(c, "subscriberId")
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	page, err := h.svc.SubscribedChannels(ctx, subscriberId, authfunc.ViewerID(c), form.PageQuery(c))
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	response.SendSuccess(c, consts.StatusOK, page, "Subscribed channels fetched successfully")
}
