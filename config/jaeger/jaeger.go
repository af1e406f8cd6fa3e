package jaeger

import (
	"io"

	"VideoTube.com/config"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// InitJaeger 注册全局tracer, 未开启时保留opentracing的NoopTracer
func InitJaeger(c *config.Config) (io.Closer, error) {
	if !c.Jaeger.Enable {
		hlog.Info("jaeger disabled, using noop tracer")
		return nopCloser{}, nil
	}
	cfg := jaegercfg.Configuration{
		ServiceName: c.Jaeger.ServiceName,
		Sampler: &jaegercfg.SamplerConfig{
			Type:  jaeger.SamplerTypeProbabilistic,
			Param: c.Jaeger.SampleRate,
		},
		Reporter: &jaegercfg.ReporterConfig{
			LogSpans:           false,
			LocalAgentHostPort: c.Jaeger.AgentAddr,
		},
	}
	tracer, closer, err := cfg.NewTracer(jaegercfg.Logger(jaeger.StdLogger))
	if err != nil {
		return nil, errors.Wrap(err, "init jaeger tracer failed")
	}
	opentracing.SetGlobalTracer(tracer)
	hlog.Infof("jaeger tracer reporting to %s", c.Jaeger.AgentAddr)
	return closer, nil
}
