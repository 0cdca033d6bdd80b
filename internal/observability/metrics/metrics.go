package metrics

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

// Metrics exposes catalog instruments.
type Metrics struct {
	productsCreated  metric.Int64Counter
	productCodeRetry metric.Int64Counter
	uploads          metric.Int64Counter
	uploadBytes      metric.Int64Histogram
	rateLimitAllowed metric.Int64Counter
	rateLimitDenied  metric.Int64Counter
}

// NewProvider installs the global meter provider. Disabled metrics get a
// noop provider so instruments stay callable.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(
		sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(exportInterval)),
	))
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.StopHook(provider.Shutdown))
	}
	if log != nil {
		log.Info("metrics exporter started",
			zap.String("endpoint", cfg.ExporterEndpoint),
			zap.String("protocol", cfg.ExporterProtocol),
		)
	}
	return provider, nil
}

const exportInterval = 10 * time.Second

// New registers the catalog instruments on the named meter.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	meter := provider.Meter(serviceName(cfg.ServiceName))

	var errs []error
	counter := func(name string) metric.Int64Counter {
		c, err := meter.Int64Counter("backoffice_" + name)
		errs = append(errs, err)
		return c
	}

	m := &Metrics{
		productsCreated:  counter("products_created_total"),
		productCodeRetry: counter("product_code_retries_total"),
		uploads:          counter("uploads_total"),
		rateLimitAllowed: counter("rate_limit_allowed_total"),
		rateLimitDenied:  counter("rate_limit_denied_total"),
	}
	uploadBytes, err := meter.Int64Histogram("backoffice_upload_bytes", metric.WithUnit("By"))
	m.uploadBytes = uploadBytes
	errs = append(errs, err)

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return m, nil
}

func serviceName(name string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	return "backoffice"
}

func (m *Metrics) RecordProductCreated(ctx context.Context) {
	if m == nil {
		return
	}
	m.productsCreated.Add(ctx, 1)
}

// RecordProductCodeRetry counts product code allocations that collided with
// an existing code and had to be retried.
func (m *Metrics) RecordProductCodeRetry(ctx context.Context) {
	if m == nil {
		return
	}
	m.productCodeRetry.Add(ctx, 1)
}

// RecordUpload counts upload attempts by outcome and sniffed content type.
func (m *Metrics) RecordUpload(ctx context.Context, contentType, outcome string, size int64) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(
		attribute.String("content_type", strings.TrimSpace(contentType)),
		attribute.String("outcome", strings.TrimSpace(outcome)),
	)
	m.uploads.Add(ctx, 1, metric.WithAttributes(attrs...))
	if size > 0 {
		m.uploadBytes.Record(ctx, size, metric.WithAttributes(attrs...))
	}
}

func (m *Metrics) RecordRateLimitAllowed(ctx context.Context, endpoint string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("endpoint", strings.TrimSpace(endpoint)))
	m.rateLimitAllowed.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func (m *Metrics) RecordRateLimitDenied(ctx context.Context, endpoint, reason string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(
		attribute.String("endpoint", strings.TrimSpace(endpoint)),
		attribute.String("reason", strings.TrimSpace(reason)),
	)
	m.rateLimitDenied.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	ctx := context.Background()
	switch p := strings.ToLower(strings.TrimSpace(protocol)); p {
	case "http", "http/protobuf":
		var opts []otlpmetrichttp.Option
		if endpoint != "" {
			opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
		}
		return otlpmetrichttp.New(ctx, opts...)
	case "", "grpc", "grpc/protobuf":
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetricgrpc.WithEndpoint(endpoint))
		}
		return otlpmetricgrpc.New(ctx, opts...)
	default:
		return nil, fmt.Errorf("unsupported OTLP protocol %q", p)
	}
}

var allowedLabelKeys = map[attribute.Key]struct{}{
	"endpoint":     {},
	"status_code":  {},
	"method":       {},
	"content_type": {},
	"outcome":      {},
	"reason":       {},
}

// FilterAttributes strips disallowed labels to keep metrics low-cardinality.
func FilterAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	kept := attrs[:0:0]
	for _, attr := range attrs {
		if _, ok := allowedLabelKeys[attr.Key]; ok {
			kept = append(kept, attr)
		}
	}
	return kept
}
