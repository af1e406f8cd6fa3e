package middleware

import (
	"context"
	"strconv"
	"time"

	"VideoTube.com/pkg/metrics"
	"github.com/cloudwego/hertz/pkg/app"
)

// Metrics 以路由模板作为label, 避免路径参数造成label爆炸
func Metrics() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		start := time.Now()
		c.Next(ctx)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := string(c.Method())
		metrics.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Response.StatusCode())).Inc()
		metrics.RequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
