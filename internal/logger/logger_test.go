package logger_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/parcauto/fleet-dashboard/internal/config"
	"github.com/parcauto/fleet-dashboard/internal/logger"
)

func TestNewLoggerBadLevelFallsBackToInfo(t *testing.T) {
	log, err := logger.NewLogger(
		&config.LoggingConfig{Level: "chatty", Format: "json"},
		&config.AppConfig{Name: "fleet-dashboard", Environment: "test"},
	)
	require.NoError(t, err)
	defer func() { _ = log.Sync() }()

	require.True(t, log.Core().Enabled(zapcore.InfoLevel))
	require.False(t, log.Core().Enabled(zapcore.DebugLevel))
}

func TestWithUserTagsRole(t *testing.T) {
	base, err := logger.NewLogger(
		&config.LoggingConfig{Level: "info", Format: "json"},
		&config.AppConfig{Name: "fleet-dashboard", Environment: "test"},
	)
	require.NoError(t, err)
	defer func() { _ = base.Sync() }()

	tagged := logger.WithUser(logger.WithRequest(base, "GET", "/vehicles", "req-1"), 4, "chef_garage")
	require.NotNil(t, tagged)
	require.NotSame(t, base, tagged)
}
