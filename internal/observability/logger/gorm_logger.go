package logger

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

// GormLoggerConfig configures the GORM zap logger.
type GormLoggerConfig struct {
	Level                gormlogger.LogLevel
	SlowThreshold        time.Duration
	IgnoreRecordNotFound bool
	// LogParams keeps bound values in logged SQL. Leave off outside development.
	LogParams bool
}

func DefaultGormLoggerConfig() GormLoggerConfig {
	return GormLoggerConfig{
		Level:                gormlogger.Warn,
		SlowThreshold:        200 * time.Millisecond,
		IgnoreRecordNotFound: true,
	}
}

// GormLogger routes gorm statements and messages through the request-scoped
// zap logger so SQL lines carry request and trace ids.
type GormLogger struct {
	cfg GormLoggerConfig
}

func NewGormLogger(cfg GormLoggerConfig) *GormLogger {
	return &GormLogger{cfg: cfg}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cfg := l.cfg
	cfg.Level = level
	return &GormLogger{cfg: cfg}
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.cfg.Level >= gormlogger.Info {
		emit(ctx, zapcore.InfoLevel, msg, messageFields(data)...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.cfg.Level >= gormlogger.Warn {
		emit(ctx, zapcore.WarnLevel, msg, messageFields(data)...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.cfg.Level >= gormlogger.Error {
		emit(ctx, zapcore.ErrorLevel, msg, messageFields(data)...)
	}
}

// Trace logs failed statements at error, slow ones at warn and the rest at
// debug when the level is Info.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.cfg.Level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	level, ok := l.statementLevel(elapsed, err)
	if !ok {
		return
	}

	sql, rows := fc()
	fields := []zap.Field{
		zap.String("component", "gorm"),
		zap.String("sql", strings.TrimSpace(sql)),
		zap.String("operation", operationFromSQL(sql)),
		zap.Int64("duration_ms", elapsed.Milliseconds()),
	}
	if rows >= 0 {
		fields = append(fields, zap.Int64("rows_affected", rows))
	}
	if level == zapcore.ErrorLevel {
		fields = append(fields, zap.Error(err))
	}
	emit(ctx, level, "gorm.query", fields...)
}

func (l *GormLogger) statementLevel(elapsed time.Duration, err error) (zapcore.Level, bool) {
	failed := err != nil && !(l.cfg.IgnoreRecordNotFound && errors.Is(err, gormlogger.ErrRecordNotFound))
	switch {
	case failed && l.cfg.Level >= gormlogger.Error:
		return zapcore.ErrorLevel, true
	case l.cfg.SlowThreshold > 0 && elapsed > l.cfg.SlowThreshold && l.cfg.Level >= gormlogger.Warn:
		return zapcore.WarnLevel, true
	case l.cfg.Level >= gormlogger.Info:
		return zapcore.DebugLevel, true
	default:
		return zapcore.DebugLevel, false
	}
}

// ParamsFilter strips bound values unless LogParams is set. Customer
// contact details and password hashes travel as parameters.
func (l *GormLogger) ParamsFilter(_ context.Context, sql string, params ...interface{}) (string, []interface{}) {
	if l.cfg.LogParams {
		return sql, params
	}
	return sql, nil
}

func emit(ctx context.Context, level zapcore.Level, msg string, fields ...zap.Field) {
	if ce := FromContext(ctx).Check(level, msg); ce != nil {
		ce.Write(fields...)
	}
}

func messageFields(data []interface{}) []zap.Field {
	fields := []zap.Field{zap.String("component", "gorm")}
	if len(data) > 0 {
		fields = append(fields, zap.Any("data", data))
	}
	return fields
}

// operationFromSQL returns the first DML keyword, skipping a leading CTE.
func operationFromSQL(sql string) string {
	for _, token := range strings.Fields(strings.ToUpper(sql)) {
		switch token = strings.Trim(token, "();"); token {
		case "SELECT", "INSERT", "UPDATE", "DELETE", "MERGE":
			return token
		}
	}
	return "UNKNOWN"
}

var _ gormlogger.Interface = (*GormLogger)(nil)
