package monitoring

import (
	"strings"
	"time"
)

// ObserveAPILatency captures the HTTP request latency for the supplied route.
func ObserveAPILatency(method, path, status string, duration time.Duration) {
	module := CurrentModule()
	if module == nil {
		return
	}
	method = strings.ToUpper(strings.TrimSpace(method))
	if method == "" {
		method = "UNKNOWN"
	}
	path = sanitizePath(path)
	if path == "" {
		path = "unknown"
	}
	status = strings.TrimSpace(status)
	if status == "" {
		status = "unknown"
	}
	observeDuration(module.metrics.apiLatency.WithLabelValues(method, path, status), duration)
}

// RecordFavoriteOperation counts a store operation. Result is usually
// "success", "invalid", "not_found" or "error".
func RecordFavoriteOperation(operation, result string) {
	module := CurrentModule()
	if module == nil {
		return
	}
	op := normalizeLabel(operation)
	res := normalizeLabel(result)
	module.metrics.favoriteOperations.WithLabelValues(op, res).Inc()
	module.stats.recordOperation(op, res)
}

// RecordPageServed records how many rows a list request returned.
func RecordPageServed(rows int) {
	module := CurrentModule()
	if module == nil {
		return
	}
	if rows < 0 {
		rows = 0
	}
	module.metrics.pagesServed.Observe(float64(rows))
}

// SetStoredFavorites publishes the current row count.
func SetStoredFavorites(count int64) {
	module := CurrentModule()
	if module == nil {
		return
	}
	if count < 0 {
		count = 0
	}
	module.metrics.storedFavorites.Set(float64(count))
	module.stats.storedFavorites.Store(count)
}

// RecordMaintenanceRun records the completion of a maintenance job.
func RecordMaintenanceRun(job, result, message string, duration time.Duration) {
	module := CurrentModule()
	if module == nil {
		return
	}
	jobID := normalizeLabel(job)
	result = normalizeLabel(result)
	module.metrics.maintenanceRuns.WithLabelValues(jobID, result).Inc()
	observeDuration(module.metrics.maintenanceDuration.WithLabelValues(jobID), duration)
	if result == "success" {
		module.metrics.maintenanceLastRun.WithLabelValues(jobID).Set(float64(time.Now().Unix()))
	}
	module.stats.maintenanceEntry(jobID).record(result, strings.TrimSpace(message), duration)
}

func normalizeLabel(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return "unknown"
	}
	return value
}

// sanitizePath turns a route template such as /favorites/:id into a label.
func sanitizePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if path == "/" {
		return "root"
	}
	path = strings.Trim(path, "/")
	return strings.ReplaceAll(path, " ", "_")
}
