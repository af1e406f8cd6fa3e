package handlers

import (
	"context"
	"time"

	"VideoTube.com/cmd/api/handlers/response"
	"VideoTube.com/cmd/api/router/authfunc"
	"VideoTube.com/pkg/constants"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

func (h *Handler) Login(ctx context.Context, c *app.RequestContext) {
	var req LoginParam
	if err := c.Bind(&req); err != nil {
		response.SendResponse(c, bindErr(err), nil)
		return
	}
	res, err := h.svc.Login(ctx, req.UserName, req.Email, req.Password)
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	h.setTokenCookies(c, res.Tokens)
	response.SendSuccess(c, consts.StatusOK, &LoginResponse{
		User:         res.User,
		AccessToken:  res.Tokens.AccessToken,
		RefreshToken: res.Tokens.RefreshToken,
	}, "User logged In Successfully")
}

func (h *Handler) Logout(ctx context.Context, c *app.RequestContext) {
	var token string
	var expire time.Time
	if t := authfunc.CurrentToken(c); t != nil {
		token, expire = t.Token, t.Expire
	}
	if err := h.svc.Logout(ctx, authfunc.ViewerID(c), token, expire); err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	h.clearTokenCookies(c)
	response.SendSuccess(c, consts.StatusOK, struct{}{}, "User logged Out")
}

// RefreshToken refresh token取自cookie, 其次取自请求体
func (h *Handler) RefreshToken(ctx context.Context, c *app.RequestContext) {
	token := string(c.Cookie(constants.RefreshTokenCookie))
	if token == "" {
		var req RefreshParam
		if err := c.Bind(&req); err != nil {
			response.SendResponse(c, bindErr(err), nil)
			return
		}
		token = req.RefreshToken
	}
	tokens, err := h.svc.RefreshAccessToken(ctx, token)
	if err != nil {
		response.SendResponse(c, err, nil)
		return
	}
	h.setTokenCookies(c, tokens)
	response.SendSuccess(c, consts.StatusOK, &LoginResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, "Access token refreshed")
}
