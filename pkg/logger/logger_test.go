package logger_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terroirai/terroir-web/pkg/logger"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger_Levels(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		env      string
		expected zapcore.Level
	}{
		{name: "debug development", level: "debug", env: "development", expected: zapcore.DebugLevel},
		{name: "warn production", level: "warn", env: "production", expected: zapcore.WarnLevel},
		{name: "invalid falls back to info", level: "chatty", env: "development", expected: zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := logger.NewLogger(tt.level, tt.env, "")
			require.NoError(t, err)
			assert.True(t, log.Core().Enabled(tt.expected))
			if tt.expected > zapcore.DebugLevel {
				assert.False(t, log.Core().Enabled(tt.expected-1))
			}
		})
	}
}

func TestNewLogger_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terroir.log")

	log, err := logger.NewLogger("info", "production", path)
	require.NoError(t, err)

	logger.WithComponent(log, "test").Info("hello")
	_ = log.Sync()

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"message":"hello"`)
	assert.Contains(t, string(content), `"component":"test"`)
}
