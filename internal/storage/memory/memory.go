// Package memory stores plans in process memory, for tests and for runs that
// should leave nothing on disk.
package memory

import (
	"fmt"
	"sync"
	"time"

	"github.com/raidtools/lootrun/internal/storage"
	"github.com/raidtools/lootrun/pkg/core"
)

type record struct {
	summary storage.PlanSummary
	path    core.LootRunPath
}

// Backend keeps plans in a map guarded by a mutex.
type Backend struct {
	mu        sync.RWMutex
	plans     map[uint]record
	order     []uint // insertion order, newest last
	idCounter uint
	now       func() time.Time
}

// New creates an empty memory backend.
func New() *Backend {
	return &Backend{
		plans: make(map[uint]record),
		now:   time.Now,
	}
}

// Init initializes the backend.
func (b *Backend) Init() error {
	return nil
}

// Close cleans up resources.
func (b *Backend) Close() error {
	return nil
}

// SavePlan stores a copy of the plan and returns its assigned ID.
func (b *Backend) SavePlan(path *core.LootRunPath, algorithm string) (uint, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.idCounter++
	id := b.idCounter

	stored := *path
	stored.Waypoints = append([]core.PathWaypoint(nil), path.Waypoints...)

	b.plans[id] = record{
		summary: storage.PlanSummary{
			ID:            id,
			CreatedAt:     b.now(),
			MapID:         path.MapID,
			MapName:       path.MapName,
			Algorithm:     algorithm,
			WaypointCount: len(path.Waypoints),
			TotalDistance: path.TotalDistance,
			EstimatedTime: path.EstimatedTime,
		},
		path: stored,
	}
	b.order = append(b.order, id)
	return id, nil
}

// GetPlan loads one stored run by ID.
func (b *Backend) GetPlan(id uint) (*core.LootRunPath, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	r, ok := b.plans[id]
	if !ok {
		return nil, fmt.Errorf("plan %d not found", id)
	}
	out := r.path
	out.Waypoints = append([]core.PathWaypoint(nil), r.path.Waypoints...)
	return &out, nil
}

// ListPlans returns summaries, newest first.
func (b *Backend) ListPlans(mapID string, limit int) ([]storage.PlanSummary, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var out []storage.PlanSummary
	for i := len(b.order) - 1; i >= 0; i-- {
		r := b.plans[b.order[i]]
		if mapID != "" && r.summary.MapID != mapID {
			continue
		}
		out = append(out, r.summary)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}
