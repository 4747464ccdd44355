package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLoggerDefaultLevel(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_LEVEL", "")

	log, err := NewLogger()
	require.NoError(t, err)
	defer log.Sync()

	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
}

func TestNewLoggerLevelOverride(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")

	log, err := NewLogger()
	require.NoError(t, err)
	defer log.Sync()

	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))
}

func TestNewLoggerRejectsBadLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "loud")

	_, err := NewLogger()
	require.Error(t, err)
}
