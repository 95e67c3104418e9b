// Package worker runs planning jobs for multiple maps concurrently. Each job
// fetches a map snapshot, plans a run, and optionally persists it and ships
// metrics; jobs are independent so failures never stop the batch.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/raidtools/lootrun/internal/influx"
	"github.com/raidtools/lootrun/internal/planner"
	"github.com/raidtools/lootrun/internal/queue"
	"github.com/raidtools/lootrun/internal/storage"
	"github.com/raidtools/lootrun/pkg/core"
)

// ErrNoPath marks jobs where the planner found no viable run.
var ErrNoPath = fmt.Errorf("no viable path")

// Job is one map to plan.
type Job struct {
	MapID string
}

// Result is the outcome of one job.
type Result struct {
	MapID    string
	Path     *core.LootRunPath
	PlanID   uint
	Err      error
	Duration time.Duration
}

// FetchFunc loads a map snapshot, from cache, service, or file.
type FetchFunc func(ctx context.Context, mapID string) (*core.MapBundle, error)

// Dependencies holds everything the manager needs. Store and Metrics are
// optional.
type Dependencies struct {
	Logger    *slog.Logger
	Fetch     FetchFunc
	Planner   *planner.Planner
	Algorithm string
	Store     storage.Backend
	Metrics   *influx.Manager
}

// Manager fans planning jobs out over a bounded worker pool.
type Manager struct {
	deps        Dependencies
	concurrency int
}

// NewManager creates a manager with the given pool size; values below 1
// run jobs serially.
func NewManager(deps Dependencies, concurrency int) *Manager {
	if concurrency < 1 {
		concurrency = 1
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Manager{deps: deps, concurrency: concurrency}
}

// Run processes all jobs and returns their results in input order. A
// cancelled context stops dispatch; results of jobs already started are kept.
func (m *Manager) Run(ctx context.Context, jobs []Job) []Result {
	type task struct {
		idx int
		job Job
	}
	pending := queue.New[task]()
	for i, job := range jobs {
		pending.Push(task{idx: i, job: job})
	}

	type done struct {
		idx int
		res Result
	}
	var finished []done
	var mu sync.Mutex
	var wg sync.WaitGroup

	workers := m.concurrency
	if workers > len(jobs) {
		workers = len(jobs)
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				if ctx.Err() != nil {
					return
				}
				t, ok := pending.Pop()
				if !ok {
					return
				}
				res := m.runOne(ctx, t.job)
				mu.Lock()
				finished = append(finished, done{idx: t.idx, res: res})
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	sort.Slice(finished, func(i, j int) bool { return finished[i].idx < finished[j].idx })
	results := make([]Result, 0, len(finished))
	for _, d := range finished {
		results = append(results, d.res)
	}
	return results
}

func (m *Manager) runOne(ctx context.Context, job Job) Result {
	start := time.Now()
	res := Result{MapID: job.MapID}

	bundle, err := m.deps.Fetch(ctx, job.MapID)
	if err != nil {
		res.Err = fmt.Errorf("fetching map %s: %w", job.MapID, err)
		res.Duration = time.Since(start)
		return res
	}

	path := m.deps.Planner.GenerateLootRun(bundle)
	res.Duration = time.Since(start)
	if path == nil {
		res.Err = fmt.Errorf("map %s: %w", job.MapID, ErrNoPath)
		return res
	}
	res.Path = path

	if m.deps.Store != nil {
		id, err := m.deps.Store.SavePlan(path, m.deps.Algorithm)
		if err != nil {
			m.deps.Logger.Error("Failed to persist plan", "mapId", job.MapID, "error", err)
		} else {
			res.PlanID = id
		}
	}

	if m.deps.Metrics != nil {
		point := influx.PlanningPoint(path, m.deps.Algorithm, res.Duration)
		if err := m.deps.Metrics.WritePoint(ctx, "lootrun_planning", point); err != nil {
			m.deps.Logger.Error("Failed to write planning metrics", "mapId", job.MapID, "error", err)
		}
	}

	return res
}
