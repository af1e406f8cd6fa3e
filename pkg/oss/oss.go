package oss

import (
	"context"
	"os"
	"path"
	"strings"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// 对象在bucket中的目录
const (
	FolderVideo     = "videos"
	FolderThumbnail = "thumbnails"
	FolderAvatar    = "avatars"
	FolderCover     = "covers"
)

type UploadResult struct {
	URL         string  `json:"url"`
	PublicID    string  `json:"publicId"`
	ContentType string  `json:"contentType"`
	Duration    float64 `json:"duration"`
}

// MediaHost 媒体存储, Upload无论成功与否都会删除本地临时文件
// 返回error时调用方不能继续写入依赖该媒体的记录
type MediaHost interface {
	Upload(ctx context.Context, localPath, folder string) (*UploadResult, error)
	Delete(ctx context.Context, assetURL string) error
}

// PublicID 资源URL的最后一段去掉扩展名
func PublicID(assetURL string) string {
	if assetURL == "" {
		return ""
	}
	if i := strings.IndexAny(assetURL, "?#"); i >= 0 {
		assetURL = assetURL[:i]
	}
	base := path.Base(assetURL)
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, path.Ext(base))
}

// Cleanup 删除本地临时文件, 文件不存在时忽略
func Cleanup(paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			hlog.Warnf("remove temp file %s failed: %v", p, err)
		}
	}
}

// DeleteQuietly 删除旧资源, 失败只记录日志
func DeleteQuietly(ctx context.Context, host MediaHost, assetURL string) {
	if assetURL == "" {
		return
	}
	if err := host.Delete(ctx, assetURL); err != nil {
		hlog.CtxWarnf(ctx, "delete media %s failed: %v", assetURL, err)
	}
}
