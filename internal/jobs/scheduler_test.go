package jobs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/parcauto/fleet-dashboard/internal/jobs"
)

func TestAddJobRegistersByName(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())

	require.NoError(t, s.AddJob("dashboard-refresh", "@every 10m", func() {}))
	require.NoError(t, s.AddJob("low-stock-poll", "@hourly", func() {}))

	assert.ElementsMatch(t, []string{"dashboard-refresh", "low-stock-poll"}, s.GetJobNames())
}

func TestAddJobRejectsDuplicateName(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())

	require.NoError(t, s.AddJob("dashboard-refresh", "@every 10m", func() {}))

	err := s.AddJob("dashboard-refresh", "@every 5m", func() {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestAddJobRejectsInvalidCronExpr(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())

	err := s.AddJob("dashboard-refresh", "not a cron expression", func() {})
	require.Error(t, err)
	assert.Empty(t, s.GetJobNames())
}

func TestRemoveJobForgetsEntry(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())

	require.NoError(t, s.AddJob("dashboard-refresh", "@every 10m", func() {}))
	require.NoError(t, s.RemoveJob("dashboard-refresh"))

	assert.Empty(t, s.GetJobNames())
	assert.Error(t, s.RemoveJob("dashboard-refresh"))
}
