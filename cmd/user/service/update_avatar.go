package service

import (
	"context"

	"VideoTube.com/cmd/model"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/oss"
	"VideoTube.com/pkg/view"
	"github.com/pkg/errors"
)

func (s *UserService) UpdateAvatar(ctx context.Context, userId int64, localPath string) (*view.PublicUser, error) {
	return s.replaceImage(ctx, userId, localPath, oss.FolderAvatar,
		func(u *model.User) string { return u.Avatar },
		s.store.UpdateAvatar)
}

func (s *UserService) UpdateCoverImage(ctx context.Context, userId int64, localPath string) (*view.PublicUser, error) {
	return s.replaceImage(ctx, userId, localPath, oss.FolderCover,
		func(u *model.User) string { return u.CoverImage },
		s.store.UpdateCoverImage)
}

// replaceImage 先上传新图片, 记录更新成功后再删除旧图片
func (s *UserService) replaceImage(ctx context.Context, userId int64, localPath, folder string,
	current func(*model.User) string, update func(context.Context, int64, string) error) (*view.PublicUser, error) {
	defer oss.Cleanup(localPath)
	if localPath == "" {
		return nil, errno.ParamErr.WithMessage(folder + " file is missing")
	}
	user, err := s.store.GetUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	old := current(user)

	res, err := s.media.Upload(ctx, localPath, folder)
	if err != nil {
		return nil, err
	}
	if err = update(ctx, userId, res.URL); err != nil {
		oss.DeleteQuietly(ctx, s.media, res.URL)
		return nil, errors.WithMessage(err, "update "+folder+" failed")
	}
	oss.DeleteQuietly(ctx, s.media, old)

	if folder == oss.FolderAvatar {
		user.Avatar = res.URL
	} else {
		user.CoverImage = res.URL
	}
	return view.Project(user), nil
}
