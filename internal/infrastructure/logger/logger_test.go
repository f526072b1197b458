package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("respects the configured level", func(t *testing.T) {
		log := New(Config{Level: "warn", Format: "json", Output: "stderr"})

		assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, log.Core().Enabled(zapcore.WarnLevel))
	})

	t.Run("tees extra cores", func(t *testing.T) {
		extra, recorded := observer.New(zapcore.InfoLevel)
		log := New(Config{Level: "error", Format: "console", Output: "stderr"}, extra)

		log.Info("balance sheet composed")

		require.Equal(t, 1, recorded.Len())
		assert.Equal(t, "balance sheet composed", recorded.All()[0].Message)
	})

	t.Run("stamps service and environment", func(t *testing.T) {
		extra, recorded := observer.New(zapcore.InfoLevel)
		log := New(Config{Level: "error", Output: "stderr", Service: "balance-sheet", Environment: "staging"}, extra)

		log.Info("ready")

		require.Equal(t, 1, recorded.Len())
		fields := recorded.All()[0].ContextMap()
		assert.Equal(t, "balance-sheet", fields["service"])
		assert.Equal(t, "staging", fields["env"])
	})

	t.Run("writes to a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.log")
		log := New(Config{Level: "info", Format: "json", Output: path})

		log.Info("written to file")
		require.NoError(t, log.Sync())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"msg":"written to file"`)
	})
}
