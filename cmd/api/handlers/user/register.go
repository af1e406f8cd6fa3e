package handlers

import (
	"context"

	"VideoTube.com/cmd/api/handlers/form"
	"VideoTube.com/cmd/api/handlers/response"
	"VideoTube.com/cmd/user/service"
	"VideoTube.com/pkg/constants"
	"VideoTube.com/pkg/oss"
	"github.com/cloudwego/hertz/pkg/app"
)

// Register multipart表单, avatar必填, coverImage可选
func (h *Handler) Register(ctx context.Context, c *app.RequestContext) {
	var req RegisterParam
	if err := c.Bind(&req); err != nil {
		response.SendResponse(c, bindErr(err), nil)
		return
	}
	avatar, err := form.SaveUpload(c, constants.AvatarField, h.tempDir)
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	cover, err := form.SaveUpload(c, constants.CoverImageField, h.tempDir)
	if err != nil {
		oss.Cleanup(avatar)
		response.SendResponse(c, err, nil)
		return
	}

	user, err := h.svc.Register(ctx, &service.RegisterParam{
		UserName:       req.UserName,
		FullName:       req.FullName,
		Email:          req.Email,
		Password:       req.Password,
		AvatarPath:     avatar,
		CoverImagePath: cover,
	})
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	response.SendCreated(c, user, "User registered Successfully")
}
