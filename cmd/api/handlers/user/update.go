package handlers

import (
	"context"

	"VideoTube.com/cmd/api/handlers/form"
	"VideoTube.com/cmd/api/handlers/response"
	"VideoTube.com/cmd/api/router/authfunc"
	"VideoTube.com/pkg/constants"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/view"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

func (h *Handler) UpdateAccount(ctx context.Context, c *app.RequestContext) {
	var req UpdateAccountParam
	if err := c.Bind(&req); err != nil {
		response.SendResponse(c, bindErr(err), nil)
		return
	}
	user, err := h.svc.UpdateAccount(ctx, authfunc.ViewerID(c), req.FullName, req.Email)
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	response.SendSuccess(c, consts.StatusOK, user, "Account details updated successfully")
}

func (h *Handler) UpdateAvatar(ctx context.Context, c *app.RequestContext) {
	h.updateImage(ctx, c, constants.AvatarField, h.svc.UpdateAvatar, "Avatar image updated successfully")
}

func (h *Handler) UpdateCoverImage(ctx context.Context, c *app.RequestContext) {
	h.updateImage(ctx, c, constants.CoverImageField, h.svc.UpdateCoverImage, "Cover image updated successfully")
}

func (h *Handler) updateImage(ctx context.Context, c *app.RequestContext, field string,
	update func(ctx context.Context, userId int64, localPath string) (*view.PublicUser, error), message string,
) {
	path, err := form.SaveUpload(c, field, h.tempDir)
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	if path == "" {
		response.SendResponse(c, errno.ParamErr.WithMessage(field+" file is missing"), nil)
		return
	}
	user, err := update(ctx, authfunc.ViewerID(c), path)
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	response.SendSuccess(c, consts.StatusOK, user, message)
}
