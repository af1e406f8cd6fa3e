package service

import (
	"context"
	"strings"
	"time"

	"VideoTube.com/cmd/model"
	"VideoTube.com/pkg/constants"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/oss"
	"VideoTube.com/pkg/utils"
	"VideoTube.com/pkg/view"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

// RegisterParam 头像与封面为已保存到本地的临时文件路径
type RegisterParam struct {
	UserName       string
	FullName       string
	Email          string
	Password       string
	AvatarPath     string
	CoverImagePath string
}

func (s *UserService) Register(ctx context.Context, req *RegisterParam) (*view.PublicUser, error) {
	defer oss.Cleanup(req.AvatarPath, req.CoverImagePath)

	// 1. 参数验证
	userName := strings.ToLower(strings.TrimSpace(req.UserName))
	fullName := strings.TrimSpace(req.FullName)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if userName == "" || fullName == "" || email == "" || strings.TrimSpace(req.Password) == "" {
		return nil, errno.ParamErr.WithMessage("All fields are required")
	}
	if !strings.Contains(email, "@") {
		return nil, errno.ParamErr.WithMessage("Invalid email")
	}
	if len(req.Password) < constants.MinPasswordLength {
		return nil, errno.ParamErr.WithMessage("Password is too short")
	}
	if len(req.Password) > constants.MaxPasswordLength {
		return nil, errno.ParamErr.WithMessage("Password is too long")
	}
	if req.AvatarPath == "" {
		return nil, errno.ParamErr.WithMessage("Avatar file is required")
	}

	// 2. 用户名与邮箱唯一
	exists, err := s.store.UserExists(ctx, userName, email)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.UserExists failed")
	}
	if exists {
		return nil, errno.UserAlreadyExist
	}

	// 3. 上传头像与封面, 任一失败都不写库
	avatar, err := s.media.Upload(ctx, req.AvatarPath, oss.FolderAvatar)
	if err != nil {
		return nil, err
	}
	var coverURL string
	if req.CoverImagePath != "" {
		cover, err := s.media.Upload(ctx, req.CoverImagePath, oss.FolderCover)
		if err != nil {
			oss.DeleteQuietly(ctx, s.media, avatar.URL)
			return nil, err
		}
		coverURL = cover.URL
	}

	// 4. 加密密码并创建用户
	passWord, err := utils.Crypt(req.Password)
	if err != nil {
		oss.DeleteQuietly(ctx, s.media, avatar.URL)
		oss.DeleteQuietly(ctx, s.media, coverURL)
		return nil, errors.WithMessage(err, "Password fail to crypt")
	}
	now := time.Now()
	user := &model.User{
		ID:         utils.NextID(),
		UserName:   userName,
		Email:      email,
		FullName:   fullName,
		Avatar:     avatar.URL,
		CoverImage: coverURL,
		Password:   passWord,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err = s.store.CreateUser(ctx, user); err != nil {
		oss.DeleteQuietly(ctx, s.media, avatar.URL)
		oss.DeleteQuietly(ctx, s.media, coverURL)
		return nil, errors.WithMessage(err, "dao.CreateUser failed")
	}
	hlog.CtxInfof(ctx, "user %s registered, id=%d", user.UserName, user.ID)
	return view.Project(user), nil
}
