package maintenance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/require"

	"github.com/charlesng35/favorites/internal/database/testutil"
	"github.com/charlesng35/favorites/internal/monitoring"
	"github.com/charlesng35/favorites/internal/services"
)

type failingCounter struct{}

func (failingCounter) Count(context.Context) (int64, error) {
	return 0, errors.New("database unavailable")
}

func attachModule(t *testing.T) *monitoring.Module {
	t.Helper()
	mod, err := monitoring.NewModule(monitoring.Options{DisableGoCollector: true, DisableProcessCollector: true})
	require.NoError(t, err)
	monitoring.SetModule(mod)
	t.Cleanup(func() { monitoring.SetModule(nil) })
	return mod
}

func TestStatsRefresherRunOnce(t *testing.T) {
	mod := attachModule(t)
	db := testutil.MustOpenTestDB(t, testutil.WithSeedData())
	svc, err := services.NewFavoriteService(db)
	require.NoError(t, err)

	refresher := NewStatsRefresher(svc)
	require.NoError(t, refresher.RunOnce(context.Background()))

	summary := mod.Snapshot()
	require.Equal(t, int64(2), summary.Favorites.Stored)
	require.Len(t, summary.Maintenance.Jobs, 1)
	job := summary.Maintenance.Jobs[0]
	require.Equal(t, StatsJob, job.Job)
	require.Equal(t, "success", job.LastStatus)
	require.Zero(t, job.ConsecutiveFailures)
}

func TestStatsRefresherRecordsFailures(t *testing.T) {
	mod := attachModule(t)

	refresher := NewStatsRefresher(failingCounter{})
	err := refresher.RunOnce(context.Background())
	require.Error(t, err)

	jobs := mod.Snapshot().Maintenance.Jobs
	require.Len(t, jobs, 1)
	require.Equal(t, "failure", jobs[0].LastStatus)
	require.Equal(t, uint64(1), jobs[0].ConsecutiveFailures)
	require.Contains(t, jobs[0].LastError, "database unavailable")
}

func TestStatsRefresherRequiresCounter(t *testing.T) {
	refresher := NewStatsRefresher(nil)
	require.NoError(t, refresher.Start())
	require.Error(t, refresher.RunOnce(context.Background()))
	<-refresher.Stop().Done()
}

func TestStatsRefresherStartRegistersJob(t *testing.T) {
	scheduler := cron.New(cron.WithLogger(cron.DiscardLogger))
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	svc, err := services.NewFavoriteService(db)
	require.NoError(t, err)

	refresher := NewStatsRefresher(svc, WithCron(scheduler), WithStatsSchedule("@every 1h"))
	require.NoError(t, refresher.Start())
	t.Cleanup(func() { <-refresher.Stop().Done() })

	entries := scheduler.Entries()
	require.Len(t, entries, 1)
	require.True(t, entries[0].Next.After(time.Now()))
}

func TestStatsRefresherRejectsInvalidSchedule(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	svc, err := services.NewFavoriteService(db)
	require.NoError(t, err)

	refresher := NewStatsRefresher(svc, WithStatsSchedule("not a schedule"))
	require.Error(t, refresher.Start())
}
