// Package danger scores a map coordinate's danger from nearby objective
// density and overall POI density. The scoring is a proximity heuristic,
// not geometry-aware terrain or line-of-sight modeling.
package danger

import (
	"fmt"

	"github.com/raidtools/lootrun/internal/geo"
	"github.com/raidtools/lootrun/pkg/core"
)

// Scoring weights. Level thresholds live in LevelForScore.
const (
	objectiveWeight      = 3.0
	structureBonus       = 2.0
	structureCount       = 5
	structureRadiusScale = 1.5
)

// Assess scores one location. Pure function, never errors; empty input yields
// a low report with score 0 and no reasons.
func Assess(location core.Position3D, objectives, pois []core.PointOfInterest, radius float64) core.DangerReport {
	if radius <= 0 {
		radius = 50
	}

	report := core.DangerReport{
		Level:   core.DangerLow,
		Reasons: []string{},
	}

	nearbyObjectives := 0
	for _, obj := range objectives {
		if geo.Distance(location, obj.Position) <= radius {
			nearbyObjectives++
		}
	}
	if nearbyObjectives > 0 {
		report.Score += float64(nearbyObjectives) * objectiveWeight
		report.Reasons = append(report.Reasons, fmt.Sprintf("%d objectives nearby", nearbyObjectives))
	}

	// POI density within 1.5x radius is a proxy for building density and
	// poor sightlines.
	densePOIs := 0
	for _, poi := range pois {
		if geo.Distance(location, poi.Position) <= radius*structureRadiusScale {
			densePOIs++
		}
	}
	if densePOIs >= structureCount {
		report.Score += structureBonus
		report.Reasons = append(report.Reasons, "High structure density")
	}

	report.Level = LevelForScore(report.Score)
	return report
}

// Escalate folds an externally resolved danger contribution (for example a
// co-located ARC mission) into an existing report and re-derives the level.
func Escalate(report core.DangerReport, add float64, reason string) core.DangerReport {
	if add <= 0 {
		return report
	}
	report.Score += add
	// reports are shared between candidates at identical coordinates, so
	// the reasons slice must not be appended to in place
	reasons := make([]string, 0, len(report.Reasons)+1)
	reasons = append(reasons, report.Reasons...)
	report.Reasons = append(reasons, reason)
	report.Level = LevelForScore(report.Score)
	return report
}

// LevelForScore maps a danger score onto its band. Monotonic in score.
func LevelForScore(score float64) core.DangerLevel {
	switch {
	case score < 3:
		return core.DangerLow
	case score < 8:
		return core.DangerMedium
	case score < 15:
		return core.DangerHigh
	default:
		return core.DangerExtreme
	}
}
