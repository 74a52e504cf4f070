// Package otel owns the OpenTelemetry log provider behind the otelslog
// bridge. Metrics go through the global meter provider.
package otel

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutlog"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/rocksandvoids/console/internal/config"
)

// ErrNoExporter is returned when OTel is enabled without a writer or endpoint.
var ErrNoExporter = errors.New("OTel enabled but no log writer or endpoint configured")

// Provider holds the log provider. The zero value and a nil *Provider are
// both disabled providers.
type Provider struct {
	logProvider *sdklog.LoggerProvider
	enabled     bool
}

// New builds the provider from the otel config section. Records are exported
// as JSON to logs when it is non-nil and over OTLP/HTTP when an endpoint is
// configured. A disabled section yields a provider that does nothing.
func New(cfg config.OTelConfig, logs io.Writer) (*Provider, error) {
	if !cfg.Enabled {
		return &Provider{}, nil
	}

	ctx := context.Background()
	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)))
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	exporters, err := logExporters(ctx, cfg, logs)
	if err != nil {
		return nil, err
	}
	if len(exporters) == 0 {
		return nil, ErrNoExporter
	}

	opts := []sdklog.LoggerProviderOption{sdklog.WithResource(res)}
	for _, exp := range exporters {
		opts = append(opts, sdklog.WithProcessor(
			sdklog.NewBatchProcessor(exp, sdklog.WithExportTimeout(cfg.BatchTimeout)),
		))
	}

	return &Provider{
		logProvider: sdklog.NewLoggerProvider(opts...),
		enabled:     true,
	}, nil
}

func logExporters(ctx context.Context, cfg config.OTelConfig, logs io.Writer) ([]sdklog.Exporter, error) {
	var exporters []sdklog.Exporter

	if logs != nil {
		exp, err := stdoutlog.New(stdoutlog.WithWriter(logs), stdoutlog.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("failed to create file log exporter: %w", err)
		}
		exporters = append(exporters, exp)
	}

	if cfg.Endpoint != "" {
		opts := []otlploghttp.Option{otlploghttp.WithEndpoint(cfg.Endpoint)}
		if cfg.Insecure {
			opts = append(opts, otlploghttp.WithInsecure())
		}
		exp, err := otlploghttp.New(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP log exporter: %w", err)
		}
		exporters = append(exporters, exp)
	}

	return exporters, nil
}

// LoggerProvider returns the provider for the otelslog bridge, or nil when
// disabled.
func (p *Provider) LoggerProvider() *sdklog.LoggerProvider {
	if p == nil {
		return nil
	}
	return p.logProvider
}

func (p *Provider) Enabled() bool {
	return p != nil && p.enabled
}

// Flush exports pending records.
func (p *Provider) Flush(ctx context.Context) error {
	if p == nil || p.logProvider == nil {
		return nil
	}
	if err := p.logProvider.ForceFlush(ctx); err != nil {
		return fmt.Errorf("log flush failed: %w", err)
	}
	return nil
}

// Shutdown flushes and stops the log provider. Call it once on exit.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil || p.logProvider == nil {
		return nil
	}
	if err := p.logProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("log shutdown failed: %w", err)
	}
	return nil
}
