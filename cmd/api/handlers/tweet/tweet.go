package handlers

import (
	"context"

	"VideoTube.com/cmd/api/handlers/form"
	"VideoTube.com/cmd/api/handlers/response"
	"VideoTube.com/cmd/api/router/authfunc"
	"VideoTube.com/cmd/tweet/service"
	"VideoTube.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type Handler struct {
	svc *service.TweetService
}

func New(svc *service.TweetService) *Handler {
	return &Handler{svc: svc}
}

type TweetParam struct {
	Content string `form:"content" json:"content"`
}

func (h *Handler) CreateTweet(ctx context.Context, c *app.RequestContext) {
	var req TweetParam
	if err := c.Bind(&req); err != nil {
		response.SendResponse(c, errno.ParamErr.WithMessage(err.Error()), nil)
		return
	}
	tweet, err := h.svc.CreateTweet(ctx, authfunc.ViewerID(c), req.Content)
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	response.SendCreated(c, tweet, "Tweet created successfully")
}

func (h *Handler) UserTweets(ctx context.Context, c *app.RequestContext) {
	userId, err := form.PathID(c, "userId")
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	page, err := h.svc.UserTweets(ctx, userId, authfunc.ViewerID(c), form.PageQuery(c))
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	response.SendSuccess(c, consts.StatusOK, page, "Tweets fetched successfully")
}

func (h *Handler) UpdateTweet(ctx context.Context, c *app.RequestContext) {
	tweetId, err := form.PathID(c, "tweetId")
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	var req TweetParam
	if err = c.Bind(&req); err != nil {
		response.SendResponse(c, errno.ParamErr.WithMessage(err.Error()), nil)
		return
	}
	tweet, err := h.svc.UpdateTweet(ctx, tweetId, authfunc.ViewerID(c), req.Content)
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	response.SendSuccess(c, consts.StatusOK, tweet, "Tweet updated successfully")
}

func (h *Handler) DeleteTweet(ctx context.Context, c *app.RequestContext) {
	tweetId, err := form.PathID(c, "tweetId")
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	if err = h.svc.DeleteTweet(ctx, tweetId, authfunc.ViewerID(c)); err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	response.SendSuccess(c, consts.StatusOK, struct{}{}, "Tweet deleted successfully")
}
