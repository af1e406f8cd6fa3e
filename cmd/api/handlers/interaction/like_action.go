package handlers

import (
	"context"

	"VideoTube.com/cmd/api/handlers/form"
	"VideoTube.com/cmd/api/handlers/response"
	"VideoTube.com/cmd/api/router/authfunc"
	"VideoTube.com/pkg/view"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type toggleFunc func(ctx context.Context, targetId, userId int64) (*view.LikeResult, error)

func (h *Handler) ToggleVideoLike(ctx context.Context, c *app.RequestContext) {
	h.toggle(ctx, c, "videoId", h.likes.ToggleVideoLike)
}

func (h *Handler) ToggleCommentLike(ctx context.Context, c *app.RequestContext) {
	h.toggle(ctx, c, "commentId", h.likes.ToggleCommentLike)
}

func (h *Handler) ToggleTweetLike(ctx context.Context, c *app.RequestContext) {
	h.toggle(ctx, c, "tweetId", h.likes.ToggleTweetLike)
}

func (h *Handler) toggle(ctx context.Context, c *app.RequestContext, param string, fn toggleFunc) {
	targetId, err := form.PathID(c, param)
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	res, err := fn(ctx, targetId, authfunc.ViewerID(c))
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	message := "Like removed successfully"
	if res.Liked {
		message = "Like added successfully"
	}
	response.SendSuccess(c, consts.StatusOK, res, message)
}

func (h *Handler) LikedVideos(ctx context.Context, c *app.RequestContext) {
	page, err := h.likes.LikedVideos(ctx, authfunc.ViewerID(c), form.PageQuery(c))
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	response.SendSuccess(c, consts.StatusOK, page, "Liked videos fetched successfully")
}
