package handlers

import (
	"context"

	"VideoTube.com/cmd/api/handlers/response"
	"VideoTube.com/cmd/api/router/authfunc"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

func (h *Handler) ChangePassword(ctx context.Context, c *app.RequestContext) {
	var req ChangePasswordParam
	if err := c.Bind(&req); err != nil {
		response.SendResponse(c, bindErr(err), nil)
		return
	}
	if err := h.svc.ChangePassword(ctx, authfunc.ViewerID(c), req.OldPassword, req.NewPassword); err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	response.SendSuccess(c, consts.StatusOK, struct{}{}, "Password changed successfully")
}
