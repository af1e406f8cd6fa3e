package handlers

import (
	"VideoTube.com/cmd/user/service"
	"VideoTube.com/pkg/constants"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/jwt"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol"
)

type Handler struct {
	svc          *service.UserService
	tempDir      string
	secureCookie bool
}

func New(svc *service.UserService, tempDir string, secureCookie bool) *Handler {
	return &Handler{svc: svc, tempDir: tempDir, secureCookie: secureCookie}
}

type RegisterParam struct {
	UserName string `form:"userName" json:"userName"`
	FullName string `form:"fullName" json:"fullName"`
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

type LoginParam struct {
	UserName string `form:"userName" json:"userName"`
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

type RefreshParam struct {
	RefreshToken string `form:"refreshToken" json:"refreshToken"`
}

type ChangePasswordParam struct {
	OldPassword string `form:"oldPassword" json:"oldPassword"`
	NewPassword string `form:"newPassword" json:"newPassword"`
}

type UpdateAccountParam struct {
	FullName string `form:"fullName" json:"fullName"`
	Email    string `form:"email" json:"email"`
}

// LoginResponse 登录与刷新的返回, token同时写入cookie
type LoginResponse struct {
	User         interface{} `json:"user,omitempty"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
}

func bindErr(err error) error {
	return errno.ParamErr.WithMessage(err.Error())
}

func (h *Handler) setTokenCookies(c *app.RequestContext, tokens *jwt.TokenPair) {
	c.SetCookie(constants.AccessTokenCookie, tokens.AccessToken, maxAge(tokens.AccessExpire),
		"/", "", protocol.CookieSameSiteLaxMode, h.secureCookie, true)
	c.SetCookie(constants.RefreshTokenCookie, tokens.RefreshToken, maxAge(tokens.RefreshExpire),
		"/", "", protocol.CookieSameSiteLaxMode, h.secureCookie, true)
}

func (h *Handler) clearTokenCookies(c *app.RequestContext) {
	c.SetCookie(constants.AccessTokenCookie, "", -1, "/", "", protocol.CookieSameSiteLaxMode, h.secureCookie, true)
	c.SetCookie(constants.RefreshTokenCookie, "", -1, "/", "", protocol.CookieSameSiteLaxMode, h.secureCookie, true)
}
