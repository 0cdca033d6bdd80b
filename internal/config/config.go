package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/smallbiznis/backoffice/pkg/db"
)

// Config holds application configuration.
type Config struct {
	AppName          string
	AppVersion       string
	Environment      string
	HTTPAddr         string
	AuthCookieSecure bool
	SessionTTL       time.Duration
	SnowflakeNode    int64

	OTLPEndpoint  string
	Observability ObservabilityConfig

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBSQLitePath      string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBConnMaxIdleTime int

	Upload    UploadConfig
	RateLimit RateLimitConfig
	Bootstrap BootstrapConfig
}

type UploadConfig struct {
	Dir           string
	URLPrefix     string
	PublicBaseURL string
	MaxBytes      int64
}

type RateLimitConfig struct {
	Enabled         bool
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	UploadRate      float64
	UploadBurst     int
	ProductCodeLock time.Duration
}

// ObservabilityConfig covers logging and OpenTelemetry export.
type ObservabilityConfig struct {
	LogLevel          string
	LogFormat         string
	OtelEnabled       bool
	OtelProtocol      string
	OtelSamplingRatio float64
}

type BootstrapConfig struct {
	AdminEmail      string
	AdminPassword   string
	AdminName       string
	DefaultCategory string
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	environment := getenv("ENVIRONMENT", "development")
	authCookieSecure := environment == "production"
	if !authCookieSecure {
		authCookieSecure = getenvBool("AUTH_COOKIE_SECURE", false)
	}

	return Config{
		AppName:           getenv("APP_SERVICE", "backoffice"),
		AppVersion:        getenv("APP_VERSION", "0.1.0"),
		Environment:       environment,
		HTTPAddr:          getenv("HTTP_ADDR", ":8080"),
		AuthCookieSecure:  authCookieSecure,
		SessionTTL:        getenvDuration("SESSION_TTL", 7*24*time.Hour),
		SnowflakeNode:     getenvInt64("SNOWFLAKE_NODE", 1),
		OTLPEndpoint:      getenv("OTEL_EXPORTER_OTLP_ENDPOINT", getenv("OTLP_ENDPOINT", "localhost:4317")),
		Observability: ObservabilityConfig{
			LogLevel:          getenv("LOG_LEVEL", "info"),
			LogFormat:         getenv("LOG_FORMAT", "json"),
			OtelEnabled:       getenvBool("OTEL_ENABLED", false),
			OtelProtocol:      getenv("OTEL_EXPORTER_OTLP_TRACES_PROTOCOL", getenv("OTEL_EXPORTER_OTLP_PROTOCOL", "grpc")),
			OtelSamplingRatio: getenvFloat("OTEL_SAMPLING_RATIO", 0.1),
		},
		DBType:            getenv("DATABASE_TYPE", "postgres"),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "backoffice"),
		DBUser:            getenv("DATABASE_USER", "postgres"),
		DBPassword:        getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBSQLitePath:      getenv("DATABASE_SQLITE_PATH", "backoffice.db"),
		DBMaxIdleConn:     int(getenvInt64("DATABASE_MAX_IDLE_CONN", 10)),
		DBMaxOpenConn:     int(getenvInt64("DATABASE_MAX_OPEN_CONN", 50)),
		DBConnMaxLifetime: int(getenvInt64("DATABASE_CONN_MAX_LIFETIME", 1800)),
		DBConnMaxIdleTime: int(getenvInt64("DATABASE_CONN_MAX_IDLE_TIME", 300)),
		Upload: UploadConfig{
			Dir:           getenv("UPLOAD_DIR", "./uploads"),
			URLPrefix:     getenv("UPLOAD_URL_PREFIX", "/uploads"),
			PublicBaseURL: strings.TrimRight(strings.TrimSpace(getenv("UPLOAD_PUBLIC_BASE_URL", "")), "/"),
			MaxBytes:      getenvInt64("UPLOAD_MAX_BYTES", 5<<20),
		},
		RateLimit: RateLimitConfig{
			Enabled:         getenvBool("RATE_LIMIT_ENABLED", false),
			RedisAddr:       getenv("RATE_LIMIT_REDIS_ADDR", "localhost:6379"),
			RedisPassword:   getenv("RATE_LIMIT_REDIS_PASSWORD", ""),
			RedisDB:         int(getenvInt64("RATE_LIMIT_REDIS_DB", 0)),
			UploadRate:      getenvFloat("RATE_LIMIT_UPLOAD_RATE", 1),
			UploadBurst:     int(getenvInt64("RATE_LIMIT_UPLOAD_BURST", 10)),
			ProductCodeLock: getenvDuration("RATE_LIMIT_PRODUCT_CODE_LOCK", 5*time.Second),
		},
		Bootstrap: BootstrapConfig{
			AdminEmail:      strings.TrimSpace(getenv("BOOTSTRAP_ADMIN_EMAIL", "")),
			AdminPassword:   getenv("BOOTSTRAP_ADMIN_PASSWORD", ""),
			AdminName:       getenv("BOOTSTRAP_ADMIN_NAME", "Administrator"),
			DefaultCategory: strings.TrimSpace(getenv("BOOTSTRAP_DEFAULT_CATEGORY", "")),
		},
	}
}

// Database projects the connection settings consumed by pkg/db.
func (c Config) Database() db.Config {
	return db.Config{
		Type:            c.DBType,
		Host:            c.DBHost,
		Port:            c.DBPort,
		Name:            c.DBName,
		User:            c.DBUser,
		Password:        c.DBPassword,
		SSLMode:         c.DBSSLMode,
		SQLitePath:      c.DBSQLitePath,
		MaxIdleConn:     c.DBMaxIdleConn,
		MaxOpenConn:     c.DBMaxOpenConn,
		ConnMaxLifetime: c.DBConnMaxLifetime,
		ConnMaxIdleTime: c.DBConnMaxIdleTime,
	}
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), "production")
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getenvInt64(key string, def int64) int64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return def
	}
	return parsed
}

func getenvFloat(key string, def float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return def
	}
	return parsed
}

func getenvDuration(key string, def time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := time.ParseDuration(value)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}
