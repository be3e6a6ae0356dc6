package maintenance

import (
	"context"
	"errors"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/charlesng35/favorites/internal/monitoring"
	"github.com/charlesng35/favorites/pkg/logger"
)

const (
	// StatsJob is the job name reported to monitoring.
	StatsJob = "favorite_stats"

	defaultStatsSpec = "@every 1m"
)

// Counter reports how many favorites are stored.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// StatsRefresher periodically publishes the stored favorite count to monitoring.
type StatsRefresher struct {
	counter  Counter
	cron     *cron.Cron
	now      func() time.Time
	log      *zap.Logger
	schedule string
}

// Option customises the StatsRefresher.
type Option func(*StatsRefresher)

// WithCron injects a preconfigured cron instance, primarily for testing.
func WithCron(c *cron.Cron) Option {
	return func(r *StatsRefresher) {
		if c != nil {
			r.cron = c
		}
	}
}

// WithNow overrides the clock used to time runs.
func WithNow(now func() time.Time) Option {
	return func(r *StatsRefresher) {
		if now != nil {
			r.now = now
		}
	}
}

// WithStatsSchedule overrides the cron specification for the refresh job.
func WithStatsSchedule(spec string) Option {
	return func(r *StatsRefresher) {
		if spec != "" {
			r.schedule = spec
		}
	}
}

// NewStatsRefresher constructs a refresher. A nil counter disables the job.
func NewStatsRefresher(counter Counter, opts ...Option) *StatsRefresher {
	refresher := &StatsRefresher{
		counter:  counter,
		now:      time.Now,
		schedule: defaultStatsSpec,
		log:      logger.WithModule("maintenance"),
	}

	for _, opt := range opts {
		opt(refresher)
	}

	if refresher.cron == nil {
		refresher.cron = cron.New(cron.WithLogger(cron.DiscardLogger))
	}

	return refresher
}

// Start registers the refresh job and launches the scheduler.
func (r *StatsRefresher) Start() error {
	if r.counter == nil {
		return nil
	}

	if _, err := r.cron.AddFunc(r.schedule, func() {
		if err := r.RunOnce(context.Background()); err != nil {
			r.log.Warn("favorite stats refresh failed", zap.Error(err))
		}
	}); err != nil {
		return err
	}

	r.cron.Start()
	return nil
}

// Stop halts the underlying scheduler, waiting for any running job to complete.
func (r *StatsRefresher) Stop() context.Context {
	if r.cron == nil {
		return context.Background()
	}
	return r.cron.Stop()
}

// RunOnce counts stored favorites and publishes the result. Used at startup and in tests.
func (r *StatsRefresher) RunOnce(ctx context.Context) error {
	if r.counter == nil {
		return errors.New("favorite stats: counter is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var errs error
	start := r.now()

	count, err := r.counter.Count(ctx)
	if err != nil {
		errs = multierr.Append(errs, err)
	} else {
		monitoring.SetStoredFavorites(count)
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		errs = multierr.Append(errs, ctxErr)
	}

	duration := r.now().Sub(start)
	if errs != nil {
		monitoring.RecordMaintenanceRun(StatsJob, "failure", errs.Error(), duration)
		return errs
	}
	monitoring.RecordMaintenanceRun(StatsJob, "success", "", duration)
	return nil
}
