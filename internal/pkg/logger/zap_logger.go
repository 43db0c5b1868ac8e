package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pratama/phoneverify/internal/pkg/models"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger wraps zap with optional file output and New Relic log forwarding
type ZapLogger struct {
	*zap.Logger
	sugar *zap.SugaredLogger
	nrApp *newrelic.Application
	file  *os.File
}

// newRelicCore forwards log entries to New Relic
type newRelicCore struct {
	level zapcore.Level
	nrApp *newrelic.Application
}

func (c *newRelicCore) Enabled(level zapcore.Level) bool {
	return c.level.Enabled(level)
}

func (c *newRelicCore) With(fields []zapcore.Field) zapcore.Core {
	clone := *c
	return &clone
}

func (c *newRelicCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}

func (c *newRelicCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	if c.nrApp == nil {
		return nil
	}

	encoder := zapcore.NewMapObjectEncoder()
	for _, field := range fields {
		field.AddTo(encoder)
	}

	attrs := encoder.Fields
	if attrs == nil {
		attrs = make(map[string]any)
	}
	attrs["service"] = "phoneverify"
	attrs["caller"] = entry.Caller.TrimmedPath()

	c.nrApp.RecordLog(newrelic.LogData{
		Timestamp:  entry.Time.UnixMilli(),
		Message:    entry.Message,
		Severity:   entry.Level.String(),
		Attributes: attrs,
	})
	return nil
}

func (c *newRelicCore) Sync() error {
	return nil
}

// InitZapLoggerFromConfig creates the application logger from config
func InitZapLoggerFromConfig(cfg *models.Config, nrApp *newrelic.Application) (*ZapLogger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Logger.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.RFC3339TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	encoder := zapcore.NewJSONEncoder(encoderConfig)

	var cores []zapcore.Core
	cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level))

	zapLogger := &ZapLogger{nrApp: nrApp}

	if cfg.Logger.FilePath != "" {
		if err := zapLogger.setupFileOutput(cfg.Logger.FilePath); err != nil {
			return nil, fmt.Errorf("failed to setup file output: %w", err)
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(zapLogger.file), level))
	}

	if nrApp != nil {
		cores = append(cores, &newRelicCore{level: level, nrApp: nrApp})
	}

	core := zapcore.NewTee(cores...)
	l := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))

	zapLogger.Logger = l
	zapLogger.sugar = l.Sugar()

	return zapLogger, nil
}

func (zl *ZapLogger) setupFileOutput(filePath string) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	zl.file = file
	return nil
}

// Close flushes buffered entries and closes the log file
func (zl *ZapLogger) Close() error {
	_ = zl.Logger.Sync()
	_ = zl.sugar.Sync()

	if zl.file != nil {
		return zl.file.Close()
	}
	return nil
}

// WithNewRelicContext adds trace correlation fields from the transaction
func (zl *ZapLogger) WithNewRelicContext(txn *newrelic.Transaction) *zap.Logger {
	fields := []zap.Field{}

	if txn != nil {
		if mdw := txn.GetLinkingMetadata(); mdw.TraceID != "" {
			fields = append(fields,
				zap.String("trace.id", mdw.TraceID),
				zap.String("span.id", mdw.SpanID),
			)
		}
	}

	return zl.Logger.With(fields...)
}

// LogHTTPRequest logs one handled HTTP request with its outcome
func (zl *ZapLogger) LogHTTPRequest(txn *newrelic.Transaction, method, path, clientIP, requestID string, statusCode int, latency time.Duration, err error) {
	l := zl.Logger
	if txn != nil {
		l = zl.WithNewRelicContext(txn)
	}

	l = l.With(
		zap.String("service", "phoneverify"),
		zap.Int("status", statusCode),
		zap.String("latency", latency.String()),
		zap.Int64("latency_ms", latency.Milliseconds()),
		zap.String("client_ip", clientIP),
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
	)
	if err != nil {
		l = l.With(zap.Error(err))
	}

	switch {
	case statusCode >= 500:
		l.Error("Server error")
	case statusCode >= 400:
		l.Warn("Client error")
	default:
		l.Info("Request processed")
	}
}
