package service

import (
	"context"
	"strings"

	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/view"
	"github.com/pkg/errors"
)

func (s *UserService) UpdateAccount(ctx context.Context, userId int64, fullName, email string) (*view.PublicUser, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.ToLower(strings.TrimSpace(email))
	if fullName == "" || email == "" {
		return nil, errno.ParamErr.WithMessage("All fields are required")
	}
	if !strings.Contains(email, "@") {
		return nil, errno.ParamErr.WithMessage("Invalid email")
	}
	if err := s.store.UpdateAccount(ctx, userId, fullName, email); err != nil {
		return nil, errors.WithMessage(err, "dao.UpdateAccount failed")
	}
	return s.CurrentUser(ctx, userId)
}
