package intercept

import (
	"math"

	"github.com/raidtools/lootrun/internal/geo"
	"github.com/raidtools/lootrun/pkg/core"
)

const (
	// maxWaitTime caps every graded wait recommendation.
	maxWaitTime = 60.0

	// riskWindow is the arrival-time spread inside which a rival is treated
	// as a contact threat.
	riskWindow = 60.0

	// safetyWindow covers rivals arriving just behind the player.
	safetyWindow = 30.0

	// clearanceBuffer pads the wait after a rival ahead of you clears a stop.
	clearanceBuffer = 15.0

	// safetyBuffer is the small grab-and-go pad when a rival is right behind.
	safetyBuffer = 10.0

	// riskBuffer scales the proportional wait inside the risk window.
	riskBuffer = 30.0

	// lateSpawnProbeCount is fixed: window start, midpoint, end.
	lateSpawnProbeCount = 3
)

// WaitTime grades the recommended pause at a target against the fastest
// rival arrival time there. yourArrival is the pre-wait arrival. Cases:
// rival strictly first -> hold until they clear plus a buffer that grows the
// closer behind them you land; rival 0-30s behind you -> small grab-and-go
// pad; rival 30-60s behind -> wait proportional to closeness; otherwise 0.
func WaitTime(yourArrival, rivalArrival float64) float64 {
	diff := rivalArrival - yourArrival
	switch {
	case diff < 0:
		remainingDwell := math.Max(0, lootDwellTime+diff)
		buffer := clearanceBuffer * math.Max(0, 1+diff/riskWindow)
		return math.Min(maxWaitTime, remainingDwell+buffer)
	case diff <= safetyWindow:
		return math.Min(maxWaitTime, safetyBuffer*(1-diff/safetyWindow))
	case diff <= riskWindow:
		return math.Min(maxWaitTime, riskBuffer*(1-diff/riskWindow))
	default:
		return 0
	}
}

// SafeWindow returns the time available at a location before the fastest
// rival could arrive, measured from the player's post-wait arrival.
func SafeWindow(postWaitArrival, rivalArrival float64) float64 {
	return math.Max(0, rivalArrival-postWaitArrival)
}

// CalculateRisk builds the full static interception report for a realized
// path: per-waypoint closest-spawn threats, the single earliest possible
// contact point, and late-spawn probes at three times within the window.
// Returns nil when there are no enemy spawns or the path is empty.
func (p *Predictor) CalculateRisk(
	waypoints []core.PathWaypoint,
	enemySpawns []core.Waypoint,
	lateWindowStart, lateWindowEnd float64,
) *core.InterceptionRisk {
	if len(waypoints) == 0 || len(enemySpawns) == 0 {
		return nil
	}

	risk := &core.InterceptionRisk{}

	// (a) closest rival spawn per non-terminal waypoint
	for _, wp := range waypoints {
		if wp.Type.IsTerminal() {
			continue
		}
		spawn, travel, ok := p.FastestArrival(wp.Position, enemySpawns)
		if !ok {
			continue
		}
		risk.Threats = append(risk.Threats, core.SpawnThreat{
			WaypointOrder: wp.Order,
			SpawnID:       spawn.ID,
			SpawnName:     spawn.Name,
			TravelTime:    travel,
			CanBeatYou:    travel <= wp.ArrivalTime,
		})
	}

	// (b) earliest possible contact across the whole path
	for _, wp := range waypoints {
		spawn, travel, ok := p.FastestArrival(wp.Position, enemySpawns)
		if !ok || travel > wp.ArrivalTime {
			continue
		}
		if risk.EarliestContact == nil || wp.ArrivalTime < risk.EarliestContact.Time {
			risk.EarliestContact = &core.ContactPoint{
				Position:  wp.Position,
				Time:      wp.ArrivalTime,
				SpawnID:   spawn.ID,
				SpawnName: spawn.Name,
			}
		}
	}

	// (c) late-spawn probes: window start, midpoint, end
	if lateWindowEnd > lateWindowStart {
		step := (lateWindowEnd - lateWindowStart) / float64(lateSpawnProbeCount-1)
		for i := 0; i < lateSpawnProbeCount; i++ {
			probeTime := lateWindowStart + float64(i)*step
			probe := core.LateSpawnProbe{
				Time:           probeTime,
				PlayerPosition: PositionAtTime(waypoints, probeTime),
			}
			for _, s := range enemySpawns {
				probe.Threats = append(probe.Threats, core.LateSpawnThreat{
					SpawnID:    s.ID,
					SpawnName:  s.Name,
					TravelTime: geo.TravelTime(s.Position, probe.PlayerPosition, p.speed),
				})
			}
			risk.LateSpawnProbes = append(risk.LateSpawnProbes, probe)
		}
	}

	return risk
}

// PositionAtTime projects the player's location at time t along the realized
// path, interpolating between waypoint arrival times. Before the first
// arrival it is the first waypoint; past the last arrival, the last.
func PositionAtTime(waypoints []core.PathWaypoint, t float64) core.Position3D {
	if len(waypoints) == 0 {
		return core.Position3D{}
	}
	if t <= waypoints[0].ArrivalTime {
		return waypoints[0].Position
	}
	for i := 0; i+1 < len(waypoints); i++ {
		a, b := waypoints[i], waypoints[i+1]
		if t > b.ArrivalTime {
			continue
		}
		span := b.ArrivalTime - a.ArrivalTime
		if span <= 0 {
			return b.Position
		}
		return geo.Interpolate(a.Position, b.Position, (t-a.ArrivalTime)/span)
	}
	return waypoints[len(waypoints)-1].Position
}
