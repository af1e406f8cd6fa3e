package service

import (
	"context"
	"strings"

	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/view"
	"github.com/pkg/errors"
)

func (s *UserService) CurrentUser(ctx context.Context, userId int64) (*view.PublicUser, error) {
	user, err := s.store.GetUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	return view.Project(user), nil
}

func (s *UserService) ChannelProfile(ctx context.Context, userName string, viewer int64) (*view.ChannelProfile, error) {
	userName = strings.ToLower(strings.TrimSpace(userName))
	if userName == "" {
		return nil, errno.ParamErr.WithMessage("username is missing")
	}
	row, err := s.store.ChannelProfile(ctx, userName, viewer)
	if err != nil {
		return nil, err
	}
	p := row.Profile()
	return &p, nil
}

func (s *UserService) WatchHistory(ctx context.Context, userId int64, q view.PageQuery) (*view.Page[view.VideoView], error) {
	rows, total, err := s.store.WatchHistory(ctx, userId, q)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.WatchHistory failed")
	}
	docs := make([]view.VideoView, 0, len(rows))
	for i := range rows {
		docs = append(docs, rows[i].View())
	}
	return view.NewPage(docs, total, q), nil
}
