package observability

import (
	"strings"

	"github.com/smallbiznis/backoffice/internal/config"
)

const defaultServiceName = "backoffice"

// Config is the part of the application configuration the logger, tracer
// and meter providers consume.
type Config struct {
	ServiceName string
	Environment string
	Version     string

	LogLevel  string
	LogFormat string

	OtelEnabled          bool
	OtelExporterEndpoint string
	OtelExporterProtocol string
	OtelSamplingRatio    float64
}

func LoadConfig(cfg config.Config) Config {
	obs := cfg.Observability

	return Config{
		ServiceName:          orDefault(cfg.AppName, defaultServiceName),
		Environment:          strings.TrimSpace(cfg.Environment),
		Version:              strings.TrimSpace(cfg.AppVersion),
		LogLevel:             strings.ToLower(orDefault(obs.LogLevel, "info")),
		LogFormat:            strings.ToLower(orDefault(obs.LogFormat, "json")),
		OtelEnabled:          obs.OtelEnabled,
		OtelExporterEndpoint: strings.TrimSpace(cfg.OTLPEndpoint),
		OtelExporterProtocol: strings.ToLower(orDefault(obs.OtelProtocol, "grpc")),
		OtelSamplingRatio:    clampRatio(obs.OtelSamplingRatio),
	}
}

// Debug is true for debug logging and for local environments, where request
// logs carry full error detail.
func (c Config) Debug() bool {
	if strings.EqualFold(strings.TrimSpace(c.LogLevel), "debug") {
		return true
	}
	switch strings.ToLower(strings.TrimSpace(c.Environment)) {
	case "dev", "development", "local", "test":
		return true
	}
	return false
}

func orDefault(value, def string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return def
}

func clampRatio(ratio float64) float64 {
	switch {
	case ratio < 0:
		return 0
	case ratio > 1:
		return 1
	}
	return ratio
}
