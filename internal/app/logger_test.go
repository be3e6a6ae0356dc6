package app

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/charlesng35/favorites/pkg/logger"
)

func TestConfigureLogging(t *testing.T) {
	require.NoError(t, ConfigureLogging(ServerConfig{LogLevel: "debug"}))
	require.True(t, logger.Logger().Core().Enabled(zapcore.DebugLevel))

	require.NoError(t, ConfigureLogging(ServerConfig{}))
	require.False(t, logger.Logger().Core().Enabled(zapcore.DebugLevel))
	require.True(t, logger.Logger().Core().Enabled(zapcore.InfoLevel))

	require.NoError(t, ConfigureLogging(ServerConfig{LogLevel: "warn", LogFormat: "console"}))
	require.False(t, logger.Logger().Core().Enabled(zapcore.InfoLevel))
}
