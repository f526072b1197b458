package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

func TestNewTracerProvider_Disabled(t *testing.T) {
	ctx := context.Background()

	tp, err := NewTracerProvider(ctx, Config{Enabled: false, ServiceName: "balance-sheet"}, zap.NewNop())
	require.NoError(t, err)

	assert.False(t, tp.IsEnabled())
	assert.NotNil(t, tp.Tracer("test"))
	assert.NoError(t, tp.EnableSpanProfiles())
	assert.False(t, tp.IsSpanProfilesEnabled())
	assert.NoError(t, tp.ForceFlush(ctx))
	assert.NoError(t, tp.Shutdown(ctx))
}

func TestNewTracerProvider_Enabled(t *testing.T) {
	ctx := context.Background()
	cfg := Config{
		Enabled:           true,
		CollectorEndpoint: "localhost:14317",
		SamplingRatio:     1.0,
		ServiceName:       "balance-sheet",
		Insecure:          true,
	}

	previous := otel.GetTracerProvider()
	tp, err := NewTracerProvider(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		otel.SetTracerProvider(previous)
		_ = tp.Shutdown(context.Background())
	})

	assert.True(t, tp.IsEnabled())

	_, span := tp.Tracer("test").Start(ctx, "compose")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	require.NoError(t, tp.EnableSpanProfiles())
	require.NoError(t, tp.EnableSpanProfiles())
	assert.True(t, tp.IsSpanProfilesEnabled())
}

func TestNewSampler(t *testing.T) {
	tests := []struct {
		ratio    float64
		expected string
	}{
		{1.0, sdktrace.AlwaysSample().Description()},
		{1.5, sdktrace.AlwaysSample().Description()},
		{0, sdktrace.NeverSample().Description()},
		{0.25, sdktrace.TraceIDRatioBased(0.25).Description()},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, newSampler(tt.ratio).Description())
	}
}

func TestNewResource(t *testing.T) {
	res, err := newResource("balance-sheet", "staging")
	require.NoError(t, err)

	set := res.Set()
	name, ok := set.Value(attribute.Key("service.name"))
	require.True(t, ok)
	assert.Equal(t, "balance-sheet", name.AsString())
	env, ok := set.Value(attribute.Key("deployment.environment.name"))
	require.True(t, ok)
	assert.Equal(t, "staging", env.AsString())

	res, err = newResource("balance-sheet", "")
	require.NoError(t, err)
	_, ok = res.Set().Value(attribute.Key("deployment.environment.name"))
	assert.False(t, ok)
}
