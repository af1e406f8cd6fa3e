package handlers

import (
	"VideoTube.com/cmd/interaction/service"
	"VideoTube.com/pkg/errno"
)

// Handler 评论与点赞的接口
type Handler struct {
	comments *service.CommentService
	likes    *service.LikeService
}

func New(comments *service.CommentService, likes *service.LikeService) *Handler {
	return &Handler{comments: comments, likes: likes}
}

type CommentParam struct {
	Content string `form:"content" json:"content"`
}

func bindErr(err error) error {
	return errno.ParamErr.WithMessage(err.Error())
}
