package main

import (
	"context"
	"errors"

	"github.com/mfgerp/backend/internal/infrastructure/config"
	"github.com/mfgerp/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// observability bundles the telemetry providers so they can be flushed together
type observability struct {
	tracer   *telemetry.TracerProvider
	meter    *telemetry.MeterProvider
	logs     *telemetry.LoggerProvider
	profiler *telemetry.Profiler
}

// setupTelemetry starts every signal the configuration enables. Disabled
// signals still get a provider so callers never branch on nil.
func setupTelemetry(ctx context.Context, cfg config.TelemetryConfig, env string, log *zap.Logger) (*observability, error) {
	o := &observability{}
	var err error

	o.tracer, err = telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Enabled,
		CollectorEndpoint: cfg.CollectorEndpoint,
		SamplingRatio:     cfg.SamplingRatio,
		ServiceName:       cfg.ServiceName,
		Environment:       env,
		Insecure:          cfg.Insecure,
	}, log)
	if err != nil {
		return nil, err
	}

	o.meter, err = telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.MetricsEnabled,
		CollectorEndpoint: cfg.CollectorEndpoint,
		ExportInterval:    cfg.MetricsInterval,
		ServiceName:       cfg.ServiceName,
		Environment:       env,
		Insecure:          cfg.Insecure,
	}, log)
	if err != nil {
		return nil, errors.Join(err, o.shutdown(ctx, log))
	}

	o.logs, err = telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.LogsEnabled,
		CollectorEndpoint: cfg.CollectorEndpoint,
		ServiceName:       cfg.ServiceName,
		Environment:       env,
		Insecure:          cfg.Insecure,
		ExportInterval:    cfg.LogsInterval,
	}, log)
	if err != nil {
		return nil, errors.Join(err, o.shutdown(ctx, log))
	}

	o.profiler, err = telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.ProfilingEnabled,
		ServerAddress:   cfg.ProfilingServerURL,
		ApplicationName: cfg.ServiceName,
		Environment:     env,
	}, log)
	if err != nil {
		return nil, errors.Join(err, o.shutdown(ctx, log))
	}

	if o.profiler.IsEnabled() && o.tracer.IsEnabled() {
		if err := o.tracer.EnableSpanProfiles(); err != nil {
			log.Warn("Span profiles unavailable", zap.Error(err))
		}
	}
	return o, nil
}

// shutdown flushes and stops every started provider, logs last so the
// shutdown of the others is still exported
func (o *observability) shutdown(ctx context.Context, log *zap.Logger) error {
	var errs []error
	if o.profiler != nil {
		errs = append(errs, o.profiler.Stop())
	}
	if o.tracer != nil {
		errs = append(errs, o.tracer.Shutdown(ctx))
	}
	if o.meter != nil {
		errs = append(errs, o.meter.Shutdown(ctx))
	}
	if o.logs != nil {
		errs = append(errs, o.logs.Shutdown(ctx))
	}
	err := errors.Join(errs...)
	if err != nil {
		log.Error("Telemetry shutdown incomplete", zap.Error(err))
	}
	return err
}
