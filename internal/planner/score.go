package planner

import (
	"math"

	"github.com/raidtools/lootrun/internal/candidate"
	"github.com/raidtools/lootrun/internal/config"
	"github.com/raidtools/lootrun/internal/geo"
	"github.com/raidtools/lootrun/pkg/core"
)

const (
	// lookaheadDepth is how many hops the scorer evaluates: the candidate
	// itself plus the best immediate follow-up.
	lookaheadDepth = 2

	// lookaheadDiscount weights the follow-up's score into the candidate's.
	lookaheadDiscount = 0.5

	distanceWeight     = 0.05
	flowAwayWeight     = 0.1
	flowTowardWeight   = 0.05
	nearExtractionGain = 50.0
	dangerWeight       = 2.0
	corridorPenalty    = 25.0
	spawnCorridorCost  = 20.0
	clusterGain        = 5.0

	// shortHopRange and shortHopGain reward tight two-stop sequences in the
	// look-ahead term.
	shortHopRange = 75.0
	shortHopGain  = 10.0

	// prioritizeScale amplifies the extraction-pull terms once the run
	// should be heading out.
	prioritizeScale = 2.0
)

// scorer evaluates candidates with a bounded look-ahead. It is rebuilt per
// planning call; dangerZones is derived once from the candidate set.
type scorer struct {
	opts        config.PlannerOptions
	extraction  core.Position3D
	depth       int
	dangerZones []core.Position3D
	enemySpawns []core.Position3D
}

func newScorer(opts config.PlannerOptions, extraction core.Position3D, candidates []*core.LootCandidate) *scorer {
	s := &scorer{opts: opts, extraction: extraction, depth: lookaheadDepth}
	// greedy rates each hop in isolation, no follow-up term
	if opts.Algorithm == config.AlgorithmGreedy {
		s.depth = 1
	}
	for _, c := range candidates {
		if c.Dangerous() {
			s.dangerZones = append(s.dangerZones, c.Position)
		}
	}
	return s
}

func (s *scorer) setEnemySpawns(spawns []core.Waypoint) {
	s.enemySpawns = s.enemySpawns[:0]
	for _, sp := range spawns {
		s.enemySpawns = append(s.enemySpawns, sp.Position)
	}
}

// pick returns the best-scoring eligible candidate. eligible must be in
// default order; score ties resolve to the default-ordering comparator, so
// the result is deterministic.
func (s *scorer) pick(from core.Position3D, eligible []*core.LootCandidate, prioritizeExtraction bool) *core.LootCandidate {
	var best *core.LootCandidate
	bestScore := math.Inf(-1)
	for _, c := range eligible {
		sc := s.score(from, c, eligible, prioritizeExtraction, s.depth)
		if best == nil || sc > bestScore || (sc == bestScore && candidate.Less(c, best)) {
			best = c
			bestScore = sc
		}
	}
	return best
}

// score rates one candidate as the next hop from pos. Depth > 1 adds a
// discounted best-follow-up term so a mediocre stop that sets up a strong
// next stop can beat a locally better dead end.
func (s *scorer) score(from core.Position3D, c *core.LootCandidate, eligible []*core.LootCandidate, prioritizeExtraction bool, depth int) float64 {
	d := geo.Distance(from, c.Position)
	score := -d * distanceWeight

	// natural flow: moving away from extraction costs more than moving
	// toward it earns, so routes drift outward early and fold back late
	away := flowAwayWeight
	toward := flowTowardWeight
	nearGain := nearExtractionGain
	if prioritizeExtraction {
		away *= prioritizeScale
		toward *= prioritizeScale
		nearGain *= prioritizeScale
	}
	delta := c.DistanceToExtraction - geo.Distance(from, s.extraction)
	if delta > 0 {
		score -= delta * away
	} else {
		score += -delta * toward
	}

	if c.NearExtraction {
		score += nearGain
	}

	if s.opts.AvoidDangerousAreas {
		score -= c.Danger.Score * dangerWeight
		if s.segmentNear(from, c.Position, s.dangerZones, s.opts.DangerCorridorRadius) {
			score -= corridorPenalty
		}
	}
	if s.segmentNear(from, c.Position, s.enemySpawns, s.opts.DangerCorridorRadius) {
		score -= spawnCorridorCost
	}

	score += float64(c.ClusterScore) * clusterGain

	if depth > 1 {
		bestNext := math.Inf(-1)
		for _, n := range eligible {
			if n == c {
				continue
			}
			next := s.score(c.Position, n, nil, prioritizeExtraction, depth-1)
			if geo.Distance(c.Position, n.Position) <= shortHopRange {
				next += shortHopGain
			}
			if next > bestNext {
				bestNext = next
			}
		}
		if !math.IsInf(bestNext, -1) {
			score += lookaheadDiscount * bestNext
		}
	}

	return score
}

// segmentNear reports whether the straight segment from a to b passes within
// radius of any zone center.
func (s *scorer) segmentNear(a, b core.Position3D, zones []core.Position3D, radius float64) bool {
	if radius <= 0 {
		return false
	}
	for _, z := range zones {
		// the candidate's own danger is already priced by its danger score
		if z == b {
			continue
		}
		if geo.PointSegmentDistance(z, a, b) <= radius {
			return true
		}
	}
	return false
}
