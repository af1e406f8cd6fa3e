// Package osstest 提供内存实现的MediaHost, 供各服务的单元测试使用
package osstest

import (
	"context"
	"fmt"
	"os"
	"sync"

	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/oss"
)

type Host struct {
	mu       sync.Mutex
	seq      int
	fail     map[string]bool
	Uploaded []string
	Deleted  []string
	Duration float64
}

var _ oss.MediaHost = (*Host)(nil)

func New() *Host {
	return &Host{fail: make(map[string]bool)}
}

// FailOn 之后上传到folder的请求都会失败
func (h *Host) FailOn(folder string) *Host {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.fail[folder] = true
	return h
}

func (h *Host) Upload(ctx context.Context, localPath, folder string) (*oss.UploadResult, error) {
	defer oss.Cleanup(localPath)
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.fail[folder] {
		return nil, errno.DependencyErr.WithMessage("media upload failed")
	}
	h.seq++
	url := fmt.Sprintf("https://media.test/%s/%d", folder, h.seq)
	h.Uploaded = append(h.Uploaded, url)
	return &oss.UploadResult{URL: url, PublicID: oss.PublicID(url), Duration: h.Duration}, nil
}

func (h *Host) Delete(ctx context.Context, assetURL string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Deleted = append(h.Deleted, assetURL)
	return nil
}

// Live 已上传且未删除的资源
func (h *Host) Live() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	deleted := make(map[string]bool, len(h.Deleted))
	for _, d := range h.Deleted {
		deleted[d] = true
	}
	live := make([]string, 0)
	for _, u := range h.Uploaded {
		if !deleted[u] {
			live = append(live, u)
		}
	}
	return live
}

// TempFile 在dir中创建一个内容为content的临时文件并返回路径
func TempFile(dir, content string) (string, error) {
	f, err := os.CreateTemp(dir, "upload-*")
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err = f.WriteString(content); err != nil {
		return "", err
	}
	return f.Name(), nil
}
