// Package intercept models the risk that rivals spawning elsewhere on the
// map reach planned locations before or near the plan's own arrival times.
// Everything here is a conservative static estimate made once at plan time,
// assuming constant movement speed and straight-line travel; it biases
// candidate scoring and derives wait times, it never asserts certainty about
// actual opponent behavior.
package intercept

import (
	"math"
	"sort"

	"github.com/raidtools/lootrun/internal/geo"
	"github.com/raidtools/lootrun/pkg/core"
)

const (
	// sameSpawnRadius treats rival spawns this close to the player's start
	// as the player's own spawn.
	sameSpawnRadius = 5.0

	// lootDwellTime is how long a simulated rival lingers at each loot stop.
	lootDwellTime = 30.0

	// rivalLootStops is the number of loot stops in a synthetic rival timeline.
	rivalLootStops = 3

	// DefaultProximityRadius is the occupancy test radius around a location.
	DefaultProximityRadius = 50.0
)

// Predictor builds rival timelines and interception reports for one map
// snapshot. It holds no mutable state across calls.
type Predictor struct {
	speed float64
}

// New creates a predictor for the given movement speed in units/s.
func New(speed float64) *Predictor {
	if speed <= 0 {
		speed = 5
	}
	return &Predictor{speed: speed}
}

// EnemySpawns filters out spawn points within sameSpawnRadius of the player's
// start; those are treated as the player's own spawn.
func EnemySpawns(playerStart core.Position3D, spawns []core.Waypoint) []core.Waypoint {
	var enemies []core.Waypoint
	for _, s := range spawns {
		if geo.Distance(playerStart, s.Position) > sameSpawnRadius {
			enemies = append(enemies, s)
		}
	}
	return enemies
}

// PredictOtherPlayerPaths builds a synthetic timeline per rival spawn:
// spawn, then up to three nearest unclaimed loot candidates with a dwell at
// each, then the primary extraction. Candidates claimed by earlier rivals
// (in spawn input order) are skipped so simulated rivals spread across the
// map rather than stacking on the same caches.
func (p *Predictor) PredictOtherPlayerPaths(
	playerStart core.Position3D,
	spawns []core.Waypoint,
	candidates []*core.LootCandidate,
	extraction core.Position3D,
) []core.PredictedPath {
	enemies := EnemySpawns(playerStart, spawns)
	if len(enemies) == 0 {
		return nil
	}

	claimed := make(map[string]bool, len(candidates))
	paths := make([]core.PredictedPath, 0, len(enemies))

	for _, spawn := range enemies {
		path := core.PredictedPath{
			SpawnID:   spawn.ID,
			SpawnName: spawn.Name,
			Origin:    spawn.Position,
			Waypoints: []core.PredictedWaypoint{{
				Position: spawn.Position,
				Time:     0,
				Segment:  core.SegmentSpawn,
			}},
		}

		pos := spawn.Position
		now := 0.0
		for range [rivalLootStops]struct{}{} {
			next := nearestUnclaimed(pos, candidates, claimed)
			if next == nil {
				break
			}
			claimed[next.ID] = true
			now += geo.TravelTime(pos, next.Position, p.speed)
			path.Waypoints = append(path.Waypoints, core.PredictedWaypoint{
				Position:  next.Position,
				Time:      now,
				Segment:   core.SegmentLoot,
				DwellTime: lootDwellTime,
			})
			now += lootDwellTime
			pos = next.Position
		}

		now += geo.TravelTime(pos, extraction, p.speed)
		path.Waypoints = append(path.Waypoints, core.PredictedWaypoint{
			Position: extraction,
			Time:     now,
			Segment:  core.SegmentExtraction,
		})

		paths = append(paths, path)
	}

	return paths
}

func nearestUnclaimed(pos core.Position3D, candidates []*core.LootCandidate, claimed map[string]bool) *core.LootCandidate {
	var best *core.LootCandidate
	bestDist := 0.0
	for _, c := range candidates {
		if claimed[c.ID] {
			continue
		}
		d := geo.Distance(pos, c.Position)
		if best == nil || d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best
}

// WillLocationBeOccupied tests whether any rival timeline puts a rival within
// proximityRadius of location at the given time, either mid-transit (point to
// segment distance) or dwelling at a loot stop. Returns every contributing
// occupation, sorted by arrival time.
func WillLocationBeOccupied(
	location core.Position3D,
	atTime float64,
	paths []core.PredictedPath,
	proximityRadius float64,
) []core.Occupation {
	if proximityRadius <= 0 {
		proximityRadius = DefaultProximityRadius
	}

	var occupations []core.Occupation

	for _, path := range paths {
		for i, wp := range path.Waypoints {
			// dwell interval at a loot stop
			if wp.DwellTime > 0 && atTime >= wp.Time && atTime <= wp.Time+wp.DwellTime {
				if d := geo.Distance(location, wp.Position); d <= proximityRadius {
					occupations = append(occupations, core.Occupation{
						SpawnID:     path.SpawnID,
						SpawnName:   path.SpawnName,
						Position:    wp.Position,
						ArrivalTime: wp.Time,
						Distance:    d,
					})
				}
			}

			// in-transit segment to the next timeline point
			if i+1 >= len(path.Waypoints) {
				continue
			}
			next := path.Waypoints[i+1]
			depart := wp.Time + wp.DwellTime
			if atTime < depart || atTime > next.Time {
				continue
			}
			if d := geo.PointSegmentDistance(location, wp.Position, next.Position); d <= proximityRadius {
				occupations = append(occupations, core.Occupation{
					SpawnID:     path.SpawnID,
					SpawnName:   path.SpawnName,
					Position:    next.Position,
					ArrivalTime: next.Time,
					Distance:    d,
				})
			}
		}
	}

	sort.SliceStable(occupations, func(i, j int) bool {
		return occupations[i].ArrivalTime < occupations[j].ArrivalTime
	})
	return occupations
}

// FastestArrival returns the enemy spawn with the shortest direct-line travel
// time to target and that time. ok is false when no enemy spawns exist.
func (p *Predictor) FastestArrival(target core.Position3D, enemySpawns []core.Waypoint) (core.Waypoint, float64, bool) {
	var fastest core.Waypoint
	best := math.Inf(1)
	found := false
	for _, s := range enemySpawns {
		t := geo.TravelTime(s.Position, target, p.speed)
		if t < best {
			fastest = s
			best = t
			found = true
		}
	}
	return fastest, best, found
}
