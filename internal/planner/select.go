package planner

import (
	"fmt"
	"math"
	"strings"

	"github.com/raidtools/lootrun/internal/arcmatch"
	"github.com/raidtools/lootrun/internal/geo"
	"github.com/raidtools/lootrun/internal/intercept"
	"github.com/raidtools/lootrun/pkg/core"
)

// runState carries one in-flight plan through its selection phases.
type runState struct {
	planner    *Planner
	bundle     *core.MapBundle
	extraction core.Waypoint

	pos     core.Position3D
	elapsed float64

	candidates  []*core.LootCandidate // default order, fixed
	visited     map[string]bool
	enemySpawns []core.Waypoint
	predictor   *intercept.Predictor
	scorer      *scorer

	waypoints []core.PathWaypoint
	looted    int
}

func newRunState(
	p *Planner,
	bundle *core.MapBundle,
	start core.Position3D,
	startName string,
	extraction core.Waypoint,
	candidates []*core.LootCandidate,
	enemySpawns []core.Waypoint,
) *runState {
	r := &runState{
		planner:     p,
		bundle:      bundle,
		extraction:  extraction,
		pos:         start,
		candidates:  candidates,
		visited:     make(map[string]bool, len(candidates)),
		enemySpawns: enemySpawns,
		predictor:   intercept.New(p.opts.PlayerMovementSpeed),
		scorer:      newScorer(p.opts, extraction.Position, candidates),
	}
	r.scorer.setEnemySpawns(enemySpawns)

	r.waypoints = append(r.waypoints, core.PathWaypoint{
		ID:                   "start",
		Name:                 startName,
		Position:             start,
		Type:                 core.PathSpawn,
		Order:                0,
		Instruction:          "Start here",
		DistanceToExtraction: geo.Distance(start, extraction.Position),
		DangerLevel:          core.DangerLow,
	})
	return r
}

func (r *runState) interceptionActive() bool {
	return r.planner.opts.AvoidPlayerInterception && len(r.enemySpawns) > 0
}

// eligible returns unvisited candidates, in default order. When the projected
// looting time is critically low it restricts the pool to the immediate
// surroundings so the run bends toward extraction instead of detouring.
func (r *runState) eligible() []*core.LootCandidate {
	critical := r.remainingLootTime() < criticalLootTime
	var out []*core.LootCandidate
	for _, c := range r.candidates {
		if r.visited[c.ID] {
			continue
		}
		if critical && geo.Distance(r.pos, c.Position) > criticalNearRange {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (r *runState) timeToExtraction() float64 {
	return geo.TravelTime(r.pos, r.extraction.Position, r.planner.opts.PlayerMovementSpeed)
}

// remainingLootTime is the budget left after reserving the return trip.
func (r *runState) remainingLootTime() float64 {
	return r.planner.opts.MaxTimeBeforeExtraction - r.elapsed - r.timeToExtraction()
}

// shouldPrioritizeExtraction flags the pull-toward-extraction phase: most of
// the budget consumed, or the run has drifted far from the extraction, or
// little looting time remains.
func (r *runState) shouldPrioritizeExtraction() bool {
	opts := r.planner.opts
	if r.elapsed >= 0.7*opts.MaxTimeBeforeExtraction {
		return true
	}
	if geo.Distance(r.pos, r.extraction.Position) > 2*opts.ExtractionProximity {
		return true
	}
	return r.remainingLootTime() < criticalLootTime
}

// bootstrapToSafety routes the first hop toward the extraction neighborhood
// when the start is far from it: the nearest near-extraction candidate is
// committed before regular selection begins.
func (r *runState) bootstrapToSafety() {
	opts := r.planner.opts
	if geo.Distance(r.pos, r.extraction.Position) <= bootstrapProximityScale*opts.ExtractionProximity {
		return
	}

	var best *core.LootCandidate
	bestDist := math.Inf(1)
	for _, c := range r.candidates {
		if !c.NearExtraction || (opts.AvoidDangerousAreas && c.Dangerous()) {
			continue
		}
		if d := geo.Distance(r.pos, c.Position); d < bestDist {
			best = c
			bestDist = d
		}
	}
	if best != nil {
		r.commit(best)
	}
}

// selectMainLoop is the core selection phase: cluster shortcuts when a tight
// safe group is in reach, scored look-ahead otherwise, until the target count
// or the time budget runs out.
func (r *runState) selectMainLoop() {
	opts := r.planner.opts
	for r.looted < opts.MaxTargets {
		eligible := r.eligible()
		if len(eligible) == 0 {
			return
		}

		next := r.planner.clusterShortcut(r.pos, eligible)
		if next == nil {
			next = r.scorer.pick(r.pos, eligible, r.shouldPrioritizeExtraction())
		}
		if next == nil {
			return
		}
		r.commit(next)

		// stop when the return trip no longer fits the budget
		if r.elapsed+r.timeToExtraction()+extractionTimeMargin >= opts.MaxTimeBeforeExtraction {
			return
		}
	}
}

// backfill pads the run to the target count with the nearest remaining safe
// candidates, weighted toward extraction proximity. It runs after the main
// loop gives up, so it ignores the looting budget.
func (r *runState) backfill() {
	opts := r.planner.opts
	for r.looted < opts.MaxTargets {
		var best *core.LootCandidate
		bestCost := math.Inf(1)
		for _, c := range r.candidates {
			if r.visited[c.ID] || c.Dangerous() || c.NearEnemySpawn {
				continue
			}
			cost := geo.Distance(r.pos, c.Position) + 0.5*c.DistanceToExtraction
			if cost < bestCost {
				best = c
				bestCost = cost
			}
		}
		if best == nil {
			return
		}
		r.commit(best)
	}
}

// commit realizes a candidate as the next waypoint: travel, arrival, and the
// interception-derived wait and safe window when rival modeling is active.
func (r *runState) commit(c *core.LootCandidate) {
	opts := r.planner.opts
	travel := geo.TravelTime(r.pos, c.Position, opts.PlayerMovementSpeed)
	arrival := r.elapsed + travel

	wp := core.PathWaypoint{
		ID:                   c.ID,
		Name:                 c.Name,
		Position:             c.Position,
		Type:                 candidateType(c),
		Order:                len(r.waypoints),
		DistanceToExtraction: c.DistanceToExtraction,
		DangerLevel:          c.Danger.Level,
		DangerReasons:        c.Danger.Reasons,
		ArrivalTime:          arrival,
	}

	if r.interceptionActive() {
		if _, rivalArrival, ok := r.predictor.FastestArrival(c.Position, r.enemySpawns); ok {
			wp.FastestPlayerArrivalTime = &rivalArrival
			if wait := intercept.WaitTime(arrival, rivalArrival); wait > 0 {
				wp.WaitTime = &wait
				arrival += wait
			}
			safe := intercept.SafeWindow(arrival, rivalArrival)
			wp.SafeWindow = &safe
		}
	}

	wp.Instruction = lootInstruction(c, wp.WaitTime)

	r.waypoints = append(r.waypoints, wp)
	r.visited[c.ID] = true
	r.looted++
	r.pos = c.Position
	r.elapsed = arrival
}

// finish appends the extraction waypoint when the run ends there, runs the
// final timing pass, and attaches the interception report to the first
// waypoint.
func (r *runState) finish() *core.LootRunPath {
	opts := r.planner.opts

	if opts.EndAtExtraction {
		terminal := r.planner.terminalType(r.extraction)
		wp := core.PathWaypoint{
			ID:          r.extraction.ID,
			Name:        r.extraction.Name,
			Position:    r.extraction.Position,
			Type:        terminal,
			Order:       len(r.waypoints),
			Instruction: extractionInstruction(terminal, r.extraction.Name),
			DangerLevel: core.DangerLow,
		}
		if r.interceptionActive() {
			if _, rivalArrival, ok := r.predictor.FastestArrival(r.extraction.Position, r.enemySpawns); ok {
				wp.FastestPlayerArrivalTime = &rivalArrival
			}
		}
		r.waypoints = append(r.waypoints, wp)
	}

	path := &core.LootRunPath{
		MapID:     r.bundle.MapID,
		MapName:   r.bundle.MapName,
		Waypoints: r.waypoints,
	}
	path.TotalDistance, path.EstimatedTime = retime(path.Waypoints, opts.PlayerMovementSpeed)

	if r.interceptionActive() {
		risk := r.predictor.CalculateRisk(
			path.Waypoints, r.enemySpawns,
			opts.LateSpawnWindowStart, opts.LateSpawnWindowEnd)
		if risk != nil {
			path.Waypoints[0].InterceptionRisk = risk
		}
	}
	return path
}

// retime recomputes cumulative arrival times from scratch over the final
// waypoint sequence, preserving committed waits, and returns the total
// distance and the last arrival time.
func retime(waypoints []core.PathWaypoint, speed float64) (totalDistance, estimatedTime float64) {
	now := 0.0
	for i := range waypoints {
		if i > 0 {
			d := geo.Distance(waypoints[i-1].Position, waypoints[i].Position)
			totalDistance += d
			now += geo.TravelTime(waypoints[i-1].Position, waypoints[i].Position, speed)
		}
		waypoints[i].ArrivalTime = now
		waypoints[i].Order = i
		if waypoints[i].WaitTime != nil {
			now += *waypoints[i].WaitTime
		}
	}
	return totalDistance, now
}

// nearestNeighborRun is both the explicit nearest-neighbor algorithm and the
// no-extraction fallback: repeatedly hop to the closest unvisited candidate,
// with no danger or interception reasoning. extraction may be nil.
func (p *Planner) nearestNeighborRun(
	bundle *core.MapBundle,
	start core.Position3D,
	startName string,
	caches []core.PointOfInterest,
	matches []arcmatch.Match,
	extraction *core.Waypoint,
) *core.LootRunPath {
	extractionPos := core.Position3D{}
	if extraction != nil {
		extractionPos = extraction.Position
	}

	type stop struct {
		id, name string
		pos      core.Position3D
		typ      core.PathWaypointType
	}
	stops := make([]stop, 0, len(caches)+len(matches))
	for _, c := range caches {
		stops = append(stops, stop{c.ID, c.Name, c.Position, core.PathCache})
	}
	for _, m := range matches {
		stops = append(stops, stop{m.Arc.ID, m.Arc.Name, m.Position, core.PathArc})
	}

	waypoints := []core.PathWaypoint{{
		ID:          "start",
		Name:        startName,
		Position:    start,
		Type:        core.PathSpawn,
		Instruction: "Start here",
		DangerLevel: core.DangerLow,
	}}
	if extraction != nil {
		waypoints[0].DistanceToExtraction = geo.Distance(start, extractionPos)
	}

	pos := start
	visited := make(map[int]bool, len(stops))
	for len(waypoints)-1 < p.opts.MaxTargets {
		best := -1
		bestDist := math.Inf(1)
		for i, s := range stops {
			if visited[i] {
				continue
			}
			if d := geo.Distance(pos, s.pos); d < bestDist {
				best = i
				bestDist = d
			}
		}
		if best < 0 {
			break
		}
		visited[best] = true
		s := stops[best]
		wp := core.PathWaypoint{
			ID:          s.id,
			Name:        s.name,
			Position:    s.pos,
			Type:        s.typ,
			Instruction: fmt.Sprintf("Loot %s", s.name),
			DangerLevel: core.DangerLow,
		}
		if extraction != nil {
			wp.DistanceToExtraction = geo.Distance(s.pos, extractionPos)
		}
		waypoints = append(waypoints, wp)
		pos = s.pos
	}

	if extraction != nil && p.opts.EndAtExtraction {
		terminal := p.terminalType(*extraction)
		waypoints = append(waypoints, core.PathWaypoint{
			ID:          extraction.ID,
			Name:        extraction.Name,
			Position:    extractionPos,
			Type:        terminal,
			Instruction: extractionInstruction(terminal, extraction.Name),
			DangerLevel: core.DangerLow,
		})
	}

	path := &core.LootRunPath{
		MapID:     bundle.MapID,
		MapName:   bundle.MapName,
		Waypoints: waypoints,
	}
	path.TotalDistance, path.EstimatedTime = retime(path.Waypoints, p.opts.PlayerMovementSpeed)
	return path
}

func lootInstruction(c *core.LootCandidate, wait *float64) string {
	var b strings.Builder
	if c.Source == core.SourceArc {
		fmt.Fprintf(&b, "Complete ARC mission %s", c.Name)
	} else {
		fmt.Fprintf(&b, "Loot %s", c.Name)
	}
	if c.Dangerous() {
		fmt.Fprintf(&b, ", caution: %s danger (%s)", c.Danger.Level, strings.Join(c.Danger.Reasons, "; "))
	}
	if c.ClusterScore > 0 {
		fmt.Fprintf(&b, ", %d more nearby", c.ClusterScore)
	}
	if wait != nil && *wait > 0 {
		fmt.Fprintf(&b, ", hold %.0fs for rivals to clear", *wait)
	}
	return b.String()
}

func extractionInstruction(t core.PathWaypointType, name string) string {
	if t == core.PathRaiderKey {
		return fmt.Sprintf("Extract via raider key at %s", name)
	}
	return fmt.Sprintf("Extract at %s", name)
}
