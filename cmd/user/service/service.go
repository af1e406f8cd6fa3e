package service

import (
	"context"
	"time"

	"VideoTube.com/cmd/model"
	"VideoTube.com/pkg/jwt"
	"VideoTube.com/pkg/oss"
	"VideoTube.com/pkg/view"
)

// UserStore 用户相关的持久化操作, 由 dal/db.UserDao 实现
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, userId int64) (*model.User, error)
	FindUser(ctx context.Context, userName, email string) (*model.User, error)
	UserExists(ctx context.Context, userName, email string) (bool, error)
	UpdateAccount(ctx context.Context, userId int64, fullName, email string) error
	UpdatePassword(ctx context.Context, userId int64, hashed string) error
	UpdateAvatar(ctx context.Context, userId int64, url string) error
	UpdateCoverImage(ctx context.Context, userId int64, url string) error
	SetRefreshToken(ctx context.Context, userId int64, token string) error
	RotateRefreshToken(ctx context.Context, userId int64, old, next string) (bool, error)
	ChannelProfile(ctx context.Context, userName string, viewer int64) (*view.ChannelRow, error)
	WatchHistory(ctx context.Context, userId int64, q view.PageQuery) ([]view.VideoRow, int64, error)
}

type TokenIssuer interface {
	Issue(userID int64) (*jwt.TokenPair, error)
	ParseRefresh(token string) (*jwt.Claims, error)
}

// TokenDenier 注销后的access token在过期之前一直被拒绝
type TokenDenier interface {
	Deny(ctx context.Context, token string, ttl time.Duration) error
}

type UserService struct {
	store    UserStore
	media    oss.MediaHost
	tokens   TokenIssuer
	denylist TokenDenier
}

func NewUserService(store UserStore, media oss.MediaHost, tokens TokenIssuer, denylist TokenDenier) *UserService {
	return &UserService{store: store, media: media, tokens: tokens, denylist: denylist}
}
