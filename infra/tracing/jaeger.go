package tracing

import (
	"fmt"
	"io"
	"iwadcs/misc"

	"github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"
	"github.com/uber/jaeger-client-go/config"
)

// Setup installs a jaeger tracer configured from the standard JAEGER_* variables as the global
// tracer. The service name falls back to the logging service name.
func Setup() (io.Closer, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, fmt.Errorf("parse jaeger config: %w", err)
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = misc.GetServiceName()
	}
	tracer, closer, err := cfg.NewTracer(config.Logger(jaegerLogger{}))
	if err != nil {
		return nil, fmt.Errorf("create jaeger tracer: %w", err)
	}
	opentracing.SetGlobalTracer(tracer)
	logrus.WithFields(logrus.Fields{"service": cfg.ServiceName, "disabled": cfg.Disabled}).Info("tracer installed")
	return closer, nil
}

type jaegerLogger struct{}

func (jaegerLogger) Error(msg string) {
	logrus.WithField("component", "jaeger").Error(msg)
}

func (jaegerLogger) Infof(msg string, args ...interface{}) {
	logrus.WithField("component", "jaeger").Infof(msg, args...)
}
