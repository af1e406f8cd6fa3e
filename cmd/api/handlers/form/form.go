package form

import (
	"os"
	"path/filepath"
	"strconv"

	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/view"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// PageQuery 从query参数中解析分页与排序
func PageQuery(c *app.RequestContext) view.PageQuery {
	return view.ParsePageQuery(
		c.Query("page"),
		c.Query("limit"),
		c.Query("sortBy"),
		c.Query("sortType"),
	)
}

// PathID 路径参数中的id, 必须为正整数
func PathID(c *app.RequestContext, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errno.ParamErr.WithMessage("invalid " + name)
	}
	return id, nil
}

// QueryID 可选的query参数id, 缺省为0
func QueryID(c *app.RequestContext, name string) (int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errno.ParamErr.WithMessage("invalid " + name)
	}
	return id, nil
}

// SaveUpload 将上传的文件保存到dir中, 字段不存在时返回空路径
func SaveUpload(c *app.RequestContext, field, dir string) (string, error) {
	fh, err := c.FormFile(field)
	if err != nil || fh == nil {
		return "", nil
	}
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "create temp dir failed,err:%v", err)
	}
	path := filepath.Join(dir, uuid.NewString()+filepath.Ext(filepath.Base(fh.Filename)))
	if err = c.SaveUploadedFile(fh, path); err != nil {
		return "", errors.Wrapf(err, "save upload failed,err:%v", err)
	}
	return path, nil
}
