package app

import (
	"io"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	jaegercfg "github.com/uber/jaeger-client-go/config"
	"go.uber.org/zap"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// SetupTracer installs a jaeger tracer as the global opentracing tracer.
// When tracing is disabled the no-op global tracer stays in place.
// SetupTracer 安装 jaeger 全局追踪器，未启用时保持默认空实现
func SetupTracer(c TracerConfig, lg *zap.Logger) (io.Closer, error) {
	if !c.Enabled {
		return nopCloser{}, nil
	}

	cfg := jaegercfg.Configuration{
		ServiceName: c.ServiceName,
		Sampler: &jaegercfg.SamplerConfig{
			Type:  "const",
			Param: 1,
		},
		Reporter: &jaegercfg.ReporterConfig{
			LocalAgentHostPort: c.AgentHost,
		},
	}

	tracer, closer, err := cfg.NewTracer()
	if err != nil {
		return nil, errors.Wrap(err, "init jaeger tracer")
	}
	opentracing.SetGlobalTracer(tracer)

	if lg != nil {
		lg.Info("tracer enabled", zap.String("service", c.ServiceName), zap.String("agent", c.AgentHost))
	}
	return closer, nil
}
