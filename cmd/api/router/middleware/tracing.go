package middleware

import (
	"context"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
)

// Tracing 每个请求开启一个server span, 上游的span context从请求头中提取
func Tracing() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		tracer := opentracing.GlobalTracer()
		header := http.Header{}
		c.Request.Header.VisitAll(func(k, v []byte) {
			header.Add(string(k), string(v))
		})
		parent, _ := tracer.Extract(opentracing.HTTPHeaders, opentracing.HTTPHeadersCarrier(header))

		span := tracer.StartSpan(operationName(c), ext.RPCServerOption(parent))
		ext.HTTPMethod.Set(span, string(c.Method()))
		ext.HTTPUrl.Set(span, string(c.Request.URI().Path()))
		defer span.Finish()

		c.Next(opentracing.ContextWithSpan(ctx, span))

		status := c.Response.StatusCode()
		ext.HTTPStatusCode.Set(span, uint16(status))
		if status >= http.StatusInternalServerError {
			ext.Error.Set(span, true)
		}
	}
}

func operationName(c *app.RequestContext) string {
	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	return string(c.Method()) + " " + route
}
