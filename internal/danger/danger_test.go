package danger

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raidtools/lootrun/pkg/core"
)

func poiAt(x, y float64, t core.POIType) core.PointOfInterest {
	return core.PointOfInterest{
		ID:       fmt.Sprintf("poi-%v-%v", x, y),
		Position: core.Position3D{X: x, Y: y},
		Type:     t,
	}
}

func TestAssess_EmptyInput(t *testing.T) {
	report := Assess(core.Position3D{X: 10, Y: 10}, nil, nil, 50)

	assert.Equal(t, core.DangerLow, report.Level)
	assert.Equal(t, 0.0, report.Score)
	assert.Empty(t, report.Reasons)
}

func TestAssess_ObjectivesNearby(t *testing.T) {
	loc := core.Position3D{X: 0, Y: 0}

	tests := []struct {
		name       string
		objectives []core.PointOfInterest
		wantScore  float64
		wantLevel  core.DangerLevel
	}{
		{
			name:       "one objective in radius",
			objectives: []core.PointOfInterest{poiAt(30, 0, core.POIObjective)},
			wantScore:  3,
			wantLevel:  core.DangerMedium,
		},
		{
			name: "two objectives in radius",
			objectives: []core.PointOfInterest{
				poiAt(30, 0, core.POIObjective),
				poiAt(0, 40, core.POIObjective),
			},
			wantScore: 6,
			wantLevel: core.DangerMedium,
		},
		{
			name: "three objectives crosses high band",
			objectives: []core.PointOfInterest{
				poiAt(30, 0, core.POIObjective),
				poiAt(0, 40, core.POIObjective),
				poiAt(10, 10, core.POIObjective),
			},
			wantScore: 9,
			wantLevel: core.DangerHigh,
		},
		{
			name:       "objective outside radius ignored",
			objectives: []core.PointOfInterest{poiAt(51, 0, core.POIObjective)},
			wantScore:  0,
			wantLevel:  core.DangerLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := Assess(loc, tt.objectives, nil, 50)
			assert.Equal(t, tt.wantScore, report.Score)
			assert.Equal(t, tt.wantLevel, report.Level)
			if tt.wantScore > 0 {
				require.Len(t, report.Reasons, 1)
				assert.Contains(t, report.Reasons[0], "objectives nearby")
			}
		})
	}
}

func TestAssess_StructureDensity(t *testing.T) {
	loc := core.Position3D{X: 0, Y: 0}

	// four POIs within 1.5x radius is below the density threshold
	fourPOIs := []core.PointOfInterest{
		poiAt(10, 0, core.POICache), poiAt(0, 10, core.POICache),
		poiAt(70, 0, core.POICache), poiAt(0, 70, core.POICache),
	}
	report := Assess(loc, nil, fourPOIs, 50)
	assert.Equal(t, 0.0, report.Score)

	// fifth POI inside 75 units tips it over
	fivePOIs := append(fourPOIs, poiAt(74, 0, core.POIVendor))
	report = Assess(loc, nil, fivePOIs, 50)
	assert.Equal(t, 2.0, report.Score)
	assert.Equal(t, core.DangerLow, report.Level, "density alone stays under medium")
	require.Len(t, report.Reasons, 1)
	assert.Equal(t, "High structure density", report.Reasons[0])
}

func TestAssess_CombinedScore(t *testing.T) {
	loc := core.Position3D{X: 0, Y: 0}
	objectives := []core.PointOfInterest{
		poiAt(10, 0, core.POIObjective),
		poiAt(0, 10, core.POIObjective),
	}
	pois := []core.PointOfInterest{
		poiAt(10, 0, core.POICache), poiAt(0, 10, core.POICache),
		poiAt(20, 0, core.POICache), poiAt(0, 20, core.POICache),
		poiAt(30, 0, core.POICache),
	}

	report := Assess(loc, objectives, pois, 50)
	assert.Equal(t, 8.0, report.Score)
	assert.Equal(t, core.DangerHigh, report.Level)
	assert.Len(t, report.Reasons, 2)
}

func TestAssess_DefaultRadius(t *testing.T) {
	loc := core.Position3D{}
	objectives := []core.PointOfInterest{poiAt(45, 0, core.POIObjective)}

	report := Assess(loc, objectives, nil, 0)
	assert.Equal(t, 3.0, report.Score, "non-positive radius falls back to 50")
}

func TestEscalate(t *testing.T) {
	base := Assess(core.Position3D{}, []core.PointOfInterest{poiAt(10, 0, core.POIObjective)}, nil, 50)
	require.Equal(t, 3.0, base.Score)

	escalated := Escalate(base, 4, "2 ARC missions on site")
	assert.Equal(t, 7.0, escalated.Score)
	assert.Equal(t, core.DangerMedium, escalated.Level)
	assert.Len(t, escalated.Reasons, 2)

	// the original report must not be mutated
	assert.Equal(t, 3.0, base.Score)
	assert.Len(t, base.Reasons, 1)
}

func TestEscalate_NonPositiveAdd(t *testing.T) {
	base := core.DangerReport{Level: core.DangerLow, Score: 1, Reasons: []string{"x"}}
	assert.Equal(t, base, Escalate(base, 0, "ignored"))
	assert.Equal(t, base, Escalate(base, -2, "ignored"))
}

func TestLevelForScore(t *testing.T) {
	tests := []struct {
		score float64
		want  core.DangerLevel
	}{
		{0, core.DangerLow},
		{2.9, core.DangerLow},
		{3, core.DangerMedium},
		{7.9, core.DangerMedium},
		{8, core.DangerHigh},
		{14.9, core.DangerHigh},
		{15, core.DangerExtreme},
		{100, core.DangerExtreme},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("score %.1f", tt.score), func(t *testing.T) {
			assert.Equal(t, tt.want, LevelForScore(tt.score))
		})
	}
}
