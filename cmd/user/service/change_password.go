package service

import (
	"context"

	"VideoTube.com/pkg/constants"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

func (s *UserService) ChangePassword(ctx context.Context, userId int64, oldPassword, newPassword string) error {
	// 1. 参数验证
	if oldPassword == "" || newPassword == "" {
		return errno.ParamErr.WithMessage("old and new password are required")
	}
	if len(newPassword) < constants.MinPasswordLength {
		return errno.ParamErr.WithMessage("Password is too short")
	}
	if len(newPassword) > constants.MaxPasswordLength {
		return errno.ParamErr.WithMessage("Password is too long")
	}

	// 2. 验证旧密码
	user, err := s.store.GetUser(ctx, userId)
	if err != nil {
		return err
	}
	if !utils.VerifyPassword(oldPassword, user.Password) {
		return errno.ParamErr.WithMessage("Invalid old password")
	}

	// 3. 加密并更新
	hashed, err := utils.Crypt(newPassword)
	if err != nil {
		return errors.WithMessage(err, "Password fail to crypt")
	}
	if err = s.store.UpdatePassword(ctx, userId, hashed); err != nil {
		return errors.WithMessage(err, "dao.UpdatePassword failed")
	}
	hlog.CtxInfof(ctx, "user %d changed password", userId)
	return nil
}
