package authfunc

import (
	"context"
	"strings"
	"time"

	"VideoTube.com/cmd/api/handlers/response"
	"VideoTube.com/pkg/constants"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/jwt"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// AccessParser 校验access token
type AccessParser interface {
	ParseAccess(token string) (*jwt.Claims, error)
}

// DenyChecker 已登出的access token
type DenyChecker interface {
	IsDenied(ctx context.Context, token string) (bool, error)
}

type Authenticator struct {
	parser   AccessParser
	denylist DenyChecker
}

func NewAuthenticator(parser AccessParser, denylist DenyChecker) *Authenticator {
	return &Authenticator{parser: parser, denylist: denylist}
}

// Auth 必须登录的路由
func (a *Authenticator) Auth() []app.HandlerFunc {
	return append(make([]app.HandlerFunc, 0),
		a.AccessTokenAuthFunc(true),
	)
}

// OptionalAuth 未登录时以匿名用户继续处理, token无效时同样按匿名处理
func (a *Authenticator) OptionalAuth() []app.HandlerFunc {
	return append(make([]app.HandlerFunc, 0),
		a.AccessTokenAuthFunc(false),
	)
}

func (a *Authenticator) AccessTokenAuthFunc(required bool) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		token := lookupToken(c)
		if token == "" {
			if required {
				response.SendResponse(c, errno.AuthenticationErr, nil)
				c.Abort()
				return
			}
			c.Next(ctx)
			return
		}
		claims, err := a.verify(ctx, token)
		if err != nil {
			if required {
				response.SendResponse(c, err, nil)
				c.Abort()
				return
			}
			c.Next(ctx)
			return
		}
		c.Set(constants.ViewerKey, claims.UserID)
		c.Set(constants.AccessTokenKey, &AccessToken{Token: token, Expire: claims.Expire})
		c.Next(ctx)
	}
}

func (a *Authenticator) verify(ctx context.Context, token string) (*jwt.Claims, error) {
	claims, err := a.parser.ParseAccess(token)
	if err != nil {
		return nil, err
	}
	if a.denylist != nil {
		denied, err := a.denylist.IsDenied(ctx, token)
		if err != nil {
			// redis不可用时不阻断请求
			hlog.CtxWarnf(ctx, "check token denylist failed: %v", err)
		} else if denied {
			return nil, errno.TokenInvalidErr
		}
	}
	return claims, nil
}

// lookupToken 优先读取Authorization头, 其次读取cookie
func lookupToken(c *app.RequestContext) string {
	header := strings.TrimSpace(string(c.GetHeader("Authorization")))
	if header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	return string(c.Cookie(constants.AccessTokenCookie))
}

// AccessToken 当前请求携带的access token, 登出时加入黑名单
type AccessToken struct {
	Token  string
	Expire time.Time
}

// ViewerID 当前用户, 匿名为0
func ViewerID(c *app.RequestContext) int64 {
	v, ok := c.Get(constants.ViewerKey)
	if !ok {
		return 0
	}
	id, _ := v.(int64)
	return id
}

func CurrentToken(c *app.RequestContext) *AccessToken {
	v, ok := c.Get(constants.AccessTokenKey)
	if !ok {
		return nil
	}
	t, _ := v.(*AccessToken)
	return t
}
