package handlers

import (
	"context"

	"VideoTube.com/cmd/api/handlers/form"
	"VideoTube.com/cmd/api/handlers/response"
	"VideoTube.com/cmd/api/router/authfunc"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

func (h *Handler) ListComments(ctx context.Context, c *app.RequestContext) {
	videoId, err := form.PathID(c, "videoId")
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	page, err := h.comments.ListComments(ctx, videoId, authfunc.ViewerID(c), form.PageQuery(c))
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	response.SendSuccess(c, consts.StatusOK, page, "Comments fetched successfully")
}

func (h *Handler) AddComment(ctx context.Context, c *app.RequestContext) {
	videoId, err := form.PathID(c, "videoId")
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	var req CommentParam
	if err = c.Bind(&req); err != nil {
		response.SendResponse(c, bindErr(err), nil)
		return
	}
	comment, err := h.comments.AddComment(ctx, videoId, authfunc.ViewerID(c), req.Content)
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	response.SendCreated(c, comment, "Comment added successfully")
}

func (h *Handler) UpdateComment(ctx context.Context, c *app.RequestContext) {
	commentId, err := form.PathID(c, "commentId")
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	var req CommentParam
	if err = c.Bind(&req); err != nil {
		response.SendResponse(c, bindErr(err), nil)
		return
	}
	comment, err := h.comments.UpdateComment(ctx, commentId, authfunc.ViewerID(c), req.Content)
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	response.SendSuccess(c, consts.StatusOK, comment, "Comment updated successfully")
}

func (h *Handler) DeleteComment(ctx context.Context, c *app.RequestContext) {
	commentId, err := form.PathID(c, "commentId")
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	if err = h.comments.DeleteComment(ctx, commentId, authfunc.ViewerID(c)); err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	response.SendSuccess(c, consts.StatusOK, struct{}{}, "Comment deleted successfully")
}
