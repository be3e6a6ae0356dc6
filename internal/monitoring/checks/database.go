package checks

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/charlesng35/favorites/internal/models"
	"github.com/charlesng35/favorites/internal/monitoring"
)

const defaultDatabaseTimeout = 2 * time.Second

var errNoDatabase = errors.New("database not configured")

// Database pings the store and confirms the favorites table exists. A missing
// table is reported as degraded. A zero timeout uses two seconds.
func Database(db *gorm.DB, timeout time.Duration) monitoring.Check {
	if timeout <= 0 {
		timeout = defaultDatabaseTimeout
	}

	return monitoring.NewCheck("database", func(ctx context.Context) monitoring.ProbeResult {
		start := time.Now()
		if db == nil {
			return monitoring.ResultFromError("database", errNoDatabase, time.Since(start))
		}

		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			return monitoring.ResultFromError("database", err, time.Since(start))
		}

		result := monitoring.ProbeResult{Status: monitoring.StatusUp}
		if !db.WithContext(ctx).Migrator().HasTable(&models.Favorite{}) {
			result.Status = monitoring.StatusDegraded
			result.Details = "favorites table missing"
		}
		result.Duration = time.Since(start)
		return result
	})
}
