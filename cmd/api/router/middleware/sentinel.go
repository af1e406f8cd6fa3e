package middleware

import (
	"context"

	"VideoTube.com/cmd/api/handlers/response"
	"VideoTube.com/pkg/errno"
	sentinel "github.com/alibaba/sentinel-golang/api"
	"github.com/alibaba/sentinel-golang/core/base"
	"github.com/alibaba/sentinel-golang/core/flow"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

// UploadResource 视频与图片上传共用的限流资源
const UploadResource = "media-upload"

// InitSentinel qps<=0时不加载规则, 即不限流
func InitSentinel(uploadQPS float64) error {
	if err := sentinel.InitDefault(); err != nil {
		return errors.Wrap(err, "init sentinel failed")
	}
	if uploadQPS <= 0 {
		hlog.Info("sentinel upload flow rule disabled")
		return nil
	}
	if _, err := flow.LoadRules([]*flow.Rule{
		{
			Resource:               UploadResource,
			TokenCalculateStrategy: flow.Direct,
			ControlBehavior:        flow.Reject,
			Threshold:              uploadQPS,
			StatIntervalInMs:       1000,
		},
	}); err != nil {
		return errors.Wrap(err, "load sentinel flow rules failed")
	}
	hlog.Infof("sentinel upload flow rule loaded, qps=%v", uploadQPS)
	return nil
}

// FlowControl 被限流时返回429
func FlowControl(resource string) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		entry, blocked := sentinel.Entry(resource, sentinel.WithTrafficType(base.Inbound))
		if blocked != nil {
			response.SendResponse(c, errno.TooManyRequestsErr.WithMessage("Too many uploads, please retry later"), nil)
			c.Abort()
			return
		}
		defer entry.Exit()
		c.Next(ctx)
	}
}
