package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLoggerProvider_Disabled(t *testing.T) {
	ctx := context.Background()

	lp, err := NewLoggerProvider(ctx, LogsConfig{Enabled: false, ServiceName: "balance-sheet"}, zap.NewNop())
	require.NoError(t, err)

	assert.False(t, lp.IsEnabled())
	assert.False(t, lp.ZapCore(zapcore.InfoLevel).Enabled(zapcore.ErrorLevel))
	assert.NoError(t, lp.Shutdown(ctx))
}

func TestNewLoggerProvider_Enabled(t *testing.T) {
	ctx := context.Background()

	lp, err := NewLoggerProvider(ctx, LogsConfig{
		Enabled:           true,
		CollectorEndpoint: "localhost:14317",
		ServiceName:       "balance-sheet",
		Insecure:          true,
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = lp.Shutdown(context.Background()) })

	assert.True(t, lp.IsEnabled())

	core := lp.ZapCore(zapcore.WarnLevel)
	assert.False(t, core.Enabled(zapcore.InfoLevel))
	assert.True(t, core.Enabled(zapcore.ErrorLevel))
}

func TestLogsConfig_WithDefaults(t *testing.T) {
	cfg := LogsConfig{}.withDefaults()
	assert.Equal(t, time.Second, cfg.ExportInterval)
	assert.Equal(t, 2048, cfg.MaxQueueSize)

	cfg = LogsConfig{ExportInterval: 5 * time.Second, MaxQueueSize: 64}.withDefaults()
	assert.Equal(t, 5*time.Second, cfg.ExportInterval)
	assert.Equal(t, 64, cfg.MaxQueueSize)
}

func TestLoggerProvider_NilIsDisabled(t *testing.T) {
	var lp *LoggerProvider
	assert.False(t, lp.IsEnabled())
}

func TestLevelFilterCore(t *testing.T) {
	inner, recorded := observer.New(zapcore.DebugLevel)
	log := zap.New(&levelFilterCore{Core: inner, minLevel: zapcore.WarnLevel})

	log.Info("dropped")
	log.With(zap.String("tenant_id", "t1")).Debug("dropped too")
	log.With(zap.String("tenant_id", "t1")).Warn("kept")

	require.Equal(t, 1, recorded.Len())
	entry := recorded.All()[0]
	assert.Equal(t, "kept", entry.Message)
	assert.Equal(t, "t1", entry.ContextMap()["tenant_id"])
}
