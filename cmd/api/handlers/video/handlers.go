package handlers

import (
	"VideoTube.com/cmd/video/service"
	"VideoTube.com/pkg/errno"
)

// Handler 视频与播放列表的接口
type Handler struct {
	videos    *service.VideoService
	playlists *service.PlaylistService
	tempDir   string
}

func New(videos *service.VideoService, playlists *service.PlaylistService, tempDir string) *Handler {
	return &Handler{videos: videos, playlists: playlists, tempDir: tempDir}
}

type PublishParam struct {
	Title       string `form:"title" json:"title"`
	Description string `form:"description" json:"description"`
}

type UpdateVideoParam struct {
	Title       string `form:"title" json:"title"`
	Description string `form:"description" json:"description"`
}

type PlaylistParam struct {
	Name        string `form:"name" json:"name"`
	Description string `form:"description" json:"description"`
}

// PublishStatus 发布状态切换的返回
type PublishStatus struct {
	IsPublished bool `json:"isPublished"`
}

func bindErr(err error) error {
	return errno.ParamErr.WithMessage(err.Error())
}
