package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/smallbiznis/backoffice/internal/observability/logger"
	"github.com/smallbiznis/backoffice/internal/observability/metrics"
	"github.com/smallbiznis/backoffice/internal/observability/tracing"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/fx"
)

var Module = fx.Module("observability",
	fx.Provide(
		LoadConfig,
		Config.loggerConfig,
		logger.New,
		Config.tracingConfig,
		tracing.NewProvider,
		Config.metricsConfig,
		metrics.NewProvider,
		metrics.New,
		func() (*metrics.HTTPMetrics, error) {
			return metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)
		},
	),
	// The tracer provider is only consumed for its global registration.
	fx.Invoke(func(*sdktrace.TracerProvider) {}),
)

func (c Config) loggerConfig() logger.Config {
	return logger.Config{
		ServiceName:         c.ServiceName,
		Environment:         c.Environment,
		Version:             c.Version,
		Level:               c.LogLevel,
		Format:              c.LogFormat,
		Debug:               c.Debug(),
		IncludeCaller:       true,
		IncludeStackOnError: c.Debug(),
	}
}

func (c Config) tracingConfig() tracing.Config {
	return tracing.Config{
		Enabled:          c.OtelEnabled,
		ServiceName:      c.ServiceName,
		ServiceVersion:   c.Version,
		Environment:      c.Environment,
		ExporterEndpoint: c.OtelExporterEndpoint,
		ExporterProtocol: c.OtelExporterProtocol,
		SamplingRatio:    c.OtelSamplingRatio,
	}
}

func (c Config) metricsConfig() metrics.Config {
	return metrics.Config{
		Enabled:          c.OtelEnabled,
		ExporterEndpoint: c.OtelExporterEndpoint,
		ExporterProtocol: c.OtelExporterProtocol,
		ServiceName:      c.ServiceName,
		Environment:      c.Environment,
	}
}
