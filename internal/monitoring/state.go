package monitoring

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Summary is a point-in-time view of the in-process statistics.
type Summary struct {
	GeneratedAt time.Time          `json:"generatedAt"`
	Favorites   FavoriteSummary    `json:"favorites"`
	Maintenance MaintenanceSummary `json:"maintenance"`
}

// FavoriteSummary aggregates store operations by name and result.
type FavoriteSummary struct {
	Stored     int64              `json:"stored"`
	Operations []OperationSummary `json:"operations"`
}

// OperationSummary counts outcomes of one operation.
type OperationSummary struct {
	Operation string            `json:"operation"`
	Results   map[string]uint64 `json:"results"`
}

type MaintenanceSummary struct {
	Jobs []MaintenanceJobSummary `json:"jobs"`
}

type MaintenanceJobSummary struct {
	Job                 string        `json:"job"`
	LastStatus          string        `json:"lastStatus"`
	LastRunAt           time.Time     `json:"lastRunAt"`
	LastDuration        time.Duration `json:"lastDuration"`
	LastError           string        `json:"lastError,omitempty"`
	ConsecutiveFailures uint64        `json:"consecutiveFailures"`
	LastSuccessAt       time.Time     `json:"lastSuccessAt"`
	TotalRuns           uint64        `json:"totalRuns"`
}

// Snapshot returns a summary from the process-wide module when configured.
func Snapshot() Summary {
	return CurrentModule().Snapshot()
}

func emptySummary() Summary {
	return Summary{
		GeneratedAt: time.Now(),
		Favorites:   FavoriteSummary{Operations: []OperationSummary{}},
		Maintenance: MaintenanceSummary{Jobs: []MaintenanceJobSummary{}},
	}
}

type statStore struct {
	storedFavorites atomic.Int64

	opsMu      sync.Mutex
	operations map[string]map[string]uint64

	maintenance sync.Map // string -> *maintenanceStats
}

func newStatStore() *statStore {
	return &statStore{operations: make(map[string]map[string]uint64)}
}

func (s *statStore) recordOperation(operation, result string) {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()
	results, ok := s.operations[operation]
	if !ok {
		results = make(map[string]uint64)
		s.operations[operation] = results
	}
	results[result]++
}

func (s *statStore) cloneOperations() []OperationSummary {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	out := make([]OperationSummary, 0, len(s.operations))
	for op, results := range s.operations {
		cloned := make(map[string]uint64, len(results))
		for result, count := range results {
			cloned[result] = count
		}
		out = append(out, OperationSummary{Operation: op, Results: cloned})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Operation < out[j].Operation })
	return out
}

func (s *statStore) cloneMaintenance() []MaintenanceJobSummary {
	summaries := []MaintenanceJobSummary{}
	s.maintenance.Range(func(key, value any) bool {
		summaries = append(summaries, value.(*maintenanceStats).snapshot(key.(string)))
		return true
	})
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Job < summaries[j].Job })
	return summaries
}

func (s *statStore) summary() Summary {
	return Summary{
		GeneratedAt: time.Now(),
		Favorites: FavoriteSummary{
			Stored:     s.storedFavorites.Load(),
			Operations: s.cloneOperations(),
		},
		Maintenance: MaintenanceSummary{Jobs: s.cloneMaintenance()},
	}
}

func (s *statStore) maintenanceEntry(job string) *maintenanceStats {
	if value, ok := s.maintenance.Load(job); ok {
		return value.(*maintenanceStats)
	}
	actual, _ := s.maintenance.LoadOrStore(job, &maintenanceStats{})
	return actual.(*maintenanceStats)
}

type maintenanceStats struct {
	lastStatus          atomic.Value // string
	lastError           atomic.Value // string
	lastRun             atomic.Int64 // unix nano
	lastDuration        atomic.Int64 // nanoseconds
	consecutiveFailures atomic.Uint64
	totalRuns           atomic.Uint64
	lastSuccessfulRun   atomic.Int64
}

func (m *maintenanceStats) snapshot(job string) MaintenanceJobSummary {
	status, _ := m.lastStatus.Load().(string)
	errMsg, _ := m.lastError.Load().(string)

	summary := MaintenanceJobSummary{
		Job:                 job,
		LastStatus:          status,
		LastDuration:        time.Duration(m.lastDuration.Load()),
		LastError:           errMsg,
		ConsecutiveFailures: m.consecutiveFailures.Load(),
		TotalRuns:           m.totalRuns.Load(),
	}
	if ts := m.lastRun.Load(); ts > 0 {
		summary.LastRunAt = time.Unix(0, ts)
	}
	if ts := m.lastSuccessfulRun.Load(); ts > 0 {
		summary.LastSuccessAt = time.Unix(0, ts)
	}
	return summary
}

func (m *maintenanceStats) record(result, message string, duration time.Duration) {
	if duration < 0 {
		duration = 0
	}
	now := time.Now()
	m.lastStatus.Store(result)
	m.lastError.Store(message)
	m.lastRun.Store(now.UnixNano())
	m.lastDuration.Store(int64(duration))
	m.totalRuns.Add(1)

	if result == "success" {
		m.consecutiveFailures.Store(0)
		m.lastSuccessfulRun.Store(now.UnixNano())
		return
	}
	m.consecutiveFailures.Add(1)
}
