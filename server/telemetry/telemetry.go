// Package telemetry はロガーと OpenTelemetry のエクスポータを構成します。
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.40.0"
)

// Config はテレメトリの設定です。
type Config struct {
	ServiceName string
	// OTLPEndpoint が空の場合はエクスポートせず、Output へテキストでログを出します。
	OTLPEndpoint string
	Level        slog.Leveler
	Output       io.Writer
}

// ShutdownFunc はバッファ済みのテレメトリを送信して終了します。
type ShutdownFunc func(context.Context) error

// Setup はロガーを返し、エンドポイントが設定されていればトレースとログを OTLP/gRPC で送信します。
// OTLPEndpoint は "http://host:port" 形式の URL か、平文接続する "host:port" を受け付けます。
func Setup(ctx context.Context, cfg Config) (*slog.Logger, ShutdownFunc, error) {
	if cfg.OTLPEndpoint == "" {
		logger := slog.New(slog.NewTextHandler(cfg.Output, &slog.HandlerOptions{Level: cfg.Level}))
		return logger, func(context.Context) error { return nil }, nil
	}

	res, err := resource.New(ctx,
		resource.WithFromEnv(),
		resource.WithTelemetrySDK(),
		resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("telemetry: resource: %w", err)
	}

	traceExporter, err := otlptracegrpc.New(ctx, traceEndpointOptions(cfg.OTLPEndpoint)...)
	if err != nil {
		return nil, nil, fmt.Errorf("telemetry: trace exporter: %w", err)
	}
	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tracerProvider)

	logExporter, err := otlploggrpc.New(ctx, logEndpointOptions(cfg.OTLPEndpoint)...)
	if err != nil {
		_ = tracerProvider.Shutdown(ctx)
		return nil, nil, fmt.Errorf("telemetry: log exporter: %w", err)
	}
	loggerProvider := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(logExporter)),
		sdklog.WithResource(res),
	)

	handler := otelslog.NewHandler(cfg.ServiceName, otelslog.WithLoggerProvider(loggerProvider))
	logger := slog.New(newLevelHandler(cfg.Level, handler))
	shutdown := func(ctx context.Context) error {
		return errors.Join(tracerProvider.Shutdown(ctx), loggerProvider.Shutdown(ctx))
	}
	return logger, shutdown, nil
}

// スキーム付きは URL として渡し、スキームがなければ平文の host:port とみなす
func hasScheme(endpoint string) bool {
	return strings.Contains(endpoint, "://")
}

func traceEndpointOptions(endpoint string) []otlptracegrpc.Option {
	if hasScheme(endpoint) {
		return []otlptracegrpc.Option{otlptracegrpc.WithEndpointURL(endpoint)}
	}
	return []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(endpoint), otlptracegrpc.WithInsecure()}
}

func logEndpointOptions(endpoint string) []otlploggrpc.Option {
	if hasScheme(endpoint) {
		return []otlploggrpc.Option{otlploggrpc.WithEndpointURL(endpoint)}
	}
	return []otlploggrpc.Option{otlploggrpc.WithEndpoint(endpoint), otlploggrpc.WithInsecure()}
}

// levelHandler は下位の Handler に最低レベルを課します。
type levelHandler struct {
	level   slog.Leveler
	handler slog.Handler
}

func newLevelHandler(level slog.Leveler, handler slog.Handler) *levelHandler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &levelHandler{level: level, handler: handler}
}

func (h *levelHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level.Level() && h.handler.Enabled(ctx, level)
}

func (h *levelHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.handler.Handle(ctx, r)
}

func (h *levelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return newLevelHandler(h.level, h.handler.WithAttrs(attrs))
}

func (h *levelHandler) WithGroup(name string) slog.Handler {
	return newLevelHandler(h.level, h.handler.WithGroup(name))
}

// ParseLevel は "debug", "info", "warn", "error" をログレベルに変換します。
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("telemetry: invalid log level %q: %w", s, err)
	}
	return level, nil
}
