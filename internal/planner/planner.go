// Package planner produces an ordered loot-run route across a game map:
// start point, a bounded number of loot targets, and an extraction point,
// under a time budget, danger avoidance, and rival-interception modeling.
//
// A planning call is synchronous and pure with respect to its inputs: it
// performs no I/O and yields a deterministic result for a given map snapshot
// and option set. "No viable path" is a nil result, never an error.
package planner

import (
	"log/slog"
	"strings"

	"github.com/raidtools/lootrun/internal/arcmatch"
	"github.com/raidtools/lootrun/internal/candidate"
	"github.com/raidtools/lootrun/internal/cluster"
	"github.com/raidtools/lootrun/internal/config"
	"github.com/raidtools/lootrun/internal/geo"
	"github.com/raidtools/lootrun/internal/intercept"
	"github.com/raidtools/lootrun/pkg/core"
)

const (
	// bootstrapProximityScale triggers the bootstrap-to-safety hop when the
	// start is farther than this multiple of extractionProximity from the
	// chosen extraction.
	bootstrapProximityScale = 1.5

	// clusterJumpScale is the cluster-shortcut reach, in cluster radii.
	clusterJumpScale = 2.0

	// extractionTimeMargin is the safety margin on the return trip.
	extractionTimeMargin = 30.0

	// criticalLootTime is the projected remaining looting time below which
	// candidate eligibility collapses to the immediate surroundings.
	criticalLootTime = 60.0

	// criticalNearRange bounds eligible candidates when critically low on time.
	criticalNearRange = 50.0
)

// Planner generates loot runs for map snapshots.
type Planner struct {
	logger *slog.Logger
	opts   config.PlannerOptions
	match  arcmatch.MatcherFunc
}

// New creates a planner. A nil logger falls back to slog.Default.
func New(logger *slog.Logger, opts config.PlannerOptions) *Planner {
	if logger == nil {
		logger = slog.Default()
	}
	opts.Normalize()
	return &Planner{
		logger: logger,
		opts:   opts,
		match:  arcmatch.MatchARCsToMap,
	}
}

// SetMatcher swaps the ARC join strategy.
func (p *Planner) SetMatcher(m arcmatch.MatcherFunc) {
	if m != nil {
		p.match = m
	}
}

// GenerateLootRun plans a route through the bundle. Returns nil when no
// viable path exists (no caches, or no usable start point) — an expected
// degraded state, not an error.
func (p *Planner) GenerateLootRun(bundle *core.MapBundle) *core.LootRunPath {
	if bundle == nil {
		return nil
	}

	spawns := bundle.SpawnPoints()
	extractions := bundle.ExtractionPoints()
	caches := bundle.POIsOfType(core.POICache)
	objectives := bundle.POIsOfType(core.POIObjective)

	if len(caches) == 0 {
		p.logger.Warn("No cache POIs on map, no path possible", "mapId", bundle.MapID)
		return nil
	}

	start, startName, ok := p.startPoint(spawns)
	if !ok {
		p.logger.Warn("No start point available", "mapId", bundle.MapID)
		return nil
	}

	enemySpawns := intercept.EnemySpawns(start, spawns)

	matches := p.match(bundle.Arcs, objectives, bundle.Waypoints)

	// Extraction selection. Without extractions the run degrades to a pure
	// nearest-neighbor walk with no danger or interception reasoning.
	extraction, extractionOK := p.chooseExtraction(start, extractions)
	if !extractionOK {
		p.logger.Info("No extraction points, degrading to nearest-neighbor fallback", "mapId", bundle.MapID)
		return p.nearestNeighborRun(bundle, start, startName, caches, matches, nil)
	}

	candidates := candidate.Build(candidate.BuildInput{
		Caches:      caches,
		ArcMatches:  matches,
		Extraction:  extraction.Position,
		EnemySpawns: enemySpawns,
		Objectives:  objectives,
		AllPOIs:     bundle.POIs,
		Options:     p.opts,
	})
	candidate.SortDefault(candidates)

	if p.opts.Algorithm == config.AlgorithmNearestNeighbor {
		return p.nearestNeighborRun(bundle, start, startName, caches, matches, &extraction)
	}

	run := newRunState(p, bundle, start, startName, extraction, candidates, enemySpawns)

	run.bootstrapToSafety()
	run.selectMainLoop()
	run.backfill()

	path := run.finish()
	p.logger.Info("Planned loot run",
		"mapId", bundle.MapID,
		"waypoints", len(path.Waypoints),
		"totalDistance", path.TotalDistance,
		"estimatedTime", path.EstimatedTime)
	return path
}

// startPoint resolves the order-0 position: user-supplied coordinates win,
// otherwise the first spawn point.
func (p *Planner) startPoint(spawns []core.Waypoint) (core.Position3D, string, bool) {
	if p.opts.StartAtCoordinates != nil {
		return *p.opts.StartAtCoordinates, "Your Position", true
	}
	if len(spawns) == 0 {
		return core.Position3D{}, "", false
	}
	return spawns[0].Position, spawns[0].Name, true
}

// chooseExtraction picks the extraction nearest the start, preferring
// raider-key extractions when requested and any exist.
func (p *Planner) chooseExtraction(start core.Position3D, extractions []core.Waypoint) (core.Waypoint, bool) {
	if len(extractions) == 0 {
		return core.Waypoint{}, false
	}

	pool := extractions
	if p.opts.UseRaiderKey {
		var keyed []core.Waypoint
		for _, e := range extractions {
			if isRaiderKey(e) {
				keyed = append(keyed, e)
			}
		}
		if len(keyed) > 0 {
			pool = keyed
		}
	}

	best := pool[0]
	bestDist := geo.Distance(start, best.Position)
	for _, e := range pool[1:] {
		if d := geo.Distance(start, e.Position); d < bestDist {
			best = e
			bestDist = d
		}
	}
	return best, true
}

// isRaiderKey identifies locked raider-key extractions by name; the map data
// provider exposes no dedicated type for them.
func isRaiderKey(w core.Waypoint) bool {
	name := strings.ToLower(w.Name)
	return strings.Contains(name, "raider") || strings.Contains(name, "locked")
}

// terminalType maps the chosen extraction onto its waypoint discriminator.
func (p *Planner) terminalType(extraction core.Waypoint) core.PathWaypointType {
	if p.opts.UseRaiderKey && isRaiderKey(extraction) {
		return core.PathRaiderKey
	}
	return core.PathExtraction
}

// candidateType maps a candidate source onto its waypoint discriminator.
func candidateType(c *core.LootCandidate) core.PathWaypointType {
	if c.Source == core.SourceArc {
		return core.PathArc
	}
	return core.PathCache
}

// clusterShortcut returns the nearest member of the first non-dangerous
// cluster of 2+ eligible candidates within reach, or nil.
func (p *Planner) clusterShortcut(pos core.Position3D, eligible []*core.LootCandidate) *core.LootCandidate {
	clusters := cluster.FindLootClusters(eligible, p.opts.ClusterRadius)
	for i := range clusters {
		cl := &clusters[i]
		if cl.Size() < 2 || cl.Dangerous() {
			continue
		}
		member, dist := cl.NearestMember(pos)
		if member != nil && dist <= clusterJumpScale*p.opts.ClusterRadius {
			return member
		}
	}
	return nil
}
