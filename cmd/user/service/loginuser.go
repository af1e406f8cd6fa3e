package service

import (
	"context"
	"strings"
	"time"

	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/jwt"
	"VideoTube.com/pkg/utils"
	"VideoTube.com/pkg/view"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

type LoginResult struct {
	User   *view.PublicUser
	Tokens *jwt.TokenPair
}

// Login userName与email任选其一
func (s *UserService) Login(ctx context.Context, userName, email, password string) (*LoginResult, error) {
	userName = strings.ToLower(strings.TrimSpace(userName))
	email = strings.ToLower(strings.TrimSpace(email))
	if userName == "" && email == "" {
		return nil, errno.ParamErr.WithMessage("username or email is required")
	}
	user, err := s.store.FindUser(ctx, userName, email)
	if err != nil {
		return nil, err
	}
	if !utils.VerifyPassword(password, user.Password) {
		return nil, errno.PasswordIsNotMatch
	}
	tokens, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, errors.WithMessage(err, "issue tokens failed")
	}
	if err = s.store.SetRefreshToken(ctx, user.ID, tokens.RefreshToken); err != nil {
		return nil, errors.WithMessage(err, "dao.SetRefreshToken failed")
	}
	hlog.CtxInfof(ctx, "user %d logged in", user.ID)
	return &LoginResult{User: view.Project(user), Tokens: tokens}, nil
}

// Logout 清除库中的refresh token, access token在剩余有效期内加入黑名单
func (s *UserService) Logout(ctx context.Context, userId int64, accessToken string, accessExpire time.Time) error {
	if err := s.store.SetRefreshToken(ctx, userId, ""); err != nil {
		return errors.WithMessage(err, "dao.SetRefreshToken failed")
	}
	if accessToken == "" {
		return nil
	}
	if ttl := time.Until(accessExpire); ttl > 0 {
		if err := s.denylist.Deny(ctx, accessToken, ttl); err != nil {
			return errors.WithMessage(err, "deny access token failed")
		}
	}
	return nil
}

// RefreshAccessToken refresh token必须与库中保存的一致, 使用后即轮换
func (s *UserService) RefreshAccessToken(ctx context.Context, refreshToken string) (*jwt.TokenPair, error) {
	if refreshToken == "" {
		return nil, errno.AuthenticationErr.WithMessage("Unauthorized request")
	}
	claims, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return nil, err
	}
	user, err := s.store.GetUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, errno.NotFoundErr) {
			return nil, errno.TokenInvalidErr
		}
		return nil, err
	}
	if user.RefreshToken != refreshToken {
		return nil, errno.TokenInvalidErr.WithMessage("Refresh token is expired or used")
	}
	tokens, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, errors.WithMessage(err, "issue tokens failed")
	}
	ok, err := s.store.RotateRefreshToken(ctx, user.ID, refreshToken, tokens.RefreshToken)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.RotateRefreshToken failed")
	}
	if !ok {
		return nil, errno.TokenInvalidErr.WithMessage("Refresh token is expired or used")
	}
	return tokens, nil
}
