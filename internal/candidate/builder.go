// Package candidate merges cache POIs and matched ARC missions into scored
// loot candidates and defines their default ordering.
package candidate

import (
	"fmt"
	"math"

	"github.com/raidtools/lootrun/internal/arcmatch"
	"github.com/raidtools/lootrun/internal/config"
	"github.com/raidtools/lootrun/internal/danger"
	"github.com/raidtools/lootrun/internal/geo"
	"github.com/raidtools/lootrun/pkg/core"
)

// arcProximityScale widens the near-extraction band for ARC candidates.
// An ARC objective slightly past the proximity threshold is still worth
// folding into an extraction-bound route.
const arcProximityScale = 1.5

// BuildInput carries everything one candidate derivation needs. Candidates
// are recomputed fresh per planning call; nothing here is retained.
type BuildInput struct {
	Caches      []core.PointOfInterest
	ArcMatches  []arcmatch.Match
	Extraction  core.Position3D
	EnemySpawns []core.Waypoint
	Objectives  []core.PointOfInterest
	AllPOIs     []core.PointOfInterest
	Options     config.PlannerOptions
}

// Build derives scored candidates from cache POIs and matched ARCs, in input
// order (caches first). Danger reports are computed once per exact coordinate
// and shared across candidates at identical coordinates.
func Build(in BuildInput) []*core.LootCandidate {
	candidates := make([]*core.LootCandidate, 0, len(in.Caches)+len(in.ArcMatches))

	for _, cache := range in.Caches {
		candidates = append(candidates, &core.LootCandidate{
			ID:       cache.ID,
			Name:     cache.Name,
			Position: cache.Position,
			Source:   core.SourceCache,
		})
	}
	for i := range in.ArcMatches {
		m := in.ArcMatches[i]
		candidates = append(candidates, &core.LootCandidate{
			ID:       m.Arc.ID,
			Name:     m.Arc.Name,
			Position: m.Position,
			Source:   core.SourceArc,
			Arc:      &in.ArcMatches[i].Arc,
		})
	}

	// co-located ARC counts, keyed by exact coordinate
	arcsAt := make(map[core.Position3D]int, len(in.ArcMatches))
	for _, m := range in.ArcMatches {
		arcsAt[m.Position]++
	}

	dangerAt := make(map[core.Position3D]core.DangerReport, len(candidates))

	for _, c := range candidates {
		c.DistanceToExtraction = geo.Distance(c.Position, in.Extraction)
		proximity := in.Options.ExtractionProximity
		if c.Source == core.SourceArc {
			proximity *= arcProximityScale
		}
		c.NearExtraction = c.DistanceToExtraction <= proximity

		report, ok := dangerAt[c.Position]
		if !ok {
			report = danger.Assess(c.Position, in.Objectives, in.AllPOIs, in.Options.DangerRadius)
			if n := arcsAt[c.Position]; n > 0 {
				report = danger.Escalate(
					report,
					float64(n)*in.Options.ArcDangerWeight,
					fmt.Sprintf("%d ARC missions on site", n),
				)
			}
			dangerAt[c.Position] = report
		}
		c.Danger = report

		c.ClusterScore = clusterScore(c, candidates, in.Options.ClusterRadius)

		c.NearestSpawnDistance, c.SpawnProximityScore = spawnProximity(
			c.Position, in.EnemySpawns, in.Options.SpawnAvoidanceRadius)
		c.NearEnemySpawn = c.SpawnProximityScore > 0
	}

	return candidates
}

// clusterScore counts other candidates within clusterRadius. The candidate
// itself is excluded; floor is 0.
func clusterScore(c *core.LootCandidate, all []*core.LootCandidate, radius float64) int {
	if radius <= 0 {
		return 0
	}
	count := 0
	for _, other := range all {
		if geo.Distance(c.Position, other.Position) <= radius {
			count++
		}
	}
	count-- // self
	if count < 0 {
		count = 0
	}
	return count
}

// spawnProximity returns the distance to the nearest enemy spawn and a score
// of 1 - distance/avoidRadius, clipped to 0 outside the radius. With no enemy
// spawns the distance is +Inf and the score 0.
func spawnProximity(pos core.Position3D, spawns []core.Waypoint, avoidRadius float64) (float64, float64) {
	nearest := math.Inf(1)
	for _, s := range spawns {
		if d := geo.Distance(pos, s.Position); d < nearest {
			nearest = d
		}
	}
	if math.IsInf(nearest, 1) || avoidRadius <= 0 || nearest >= avoidRadius {
		return nearest, 0
	}
	return nearest, 1 - nearest/avoidRadius
}
