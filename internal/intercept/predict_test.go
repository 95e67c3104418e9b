package intercept

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raidtools/lootrun/pkg/core"
)

func spawnAt(id string, x, y float64) core.Waypoint {
	return core.Waypoint{
		ID:       id,
		Name:     id,
		Position: core.Position3D{X: x, Y: y},
		Type:     core.WaypointSpawn,
	}
}

func lootAt(id string, x, y float64) *core.LootCandidate {
	return &core.LootCandidate{
		ID:       id,
		Position: core.Position3D{X: x, Y: y},
		Source:   core.SourceCache,
	}
}

func TestEnemySpawns_FiltersOwnSpawn(t *testing.T) {
	start := core.Position3D{X: 0, Y: 0}
	spawns := []core.Waypoint{
		spawnAt("own", 0, 0),
		spawnAt("adjacent", 3, 4), // 5 units away, still own
		spawnAt("rival", 6, 0),
	}

	enemies := EnemySpawns(start, spawns)
	require.Len(t, enemies, 1)
	assert.Equal(t, "rival", enemies[0].ID)
}

func TestPredictOtherPlayerPaths_Timeline(t *testing.T) {
	p := New(5)
	start := core.Position3D{X: 0, Y: 0}
	spawns := []core.Waypoint{spawnAt("rival", 1000, 0)}
	candidates := []*core.LootCandidate{
		lootAt("c1", 900, 0),
		lootAt("c2", 800, 0),
		lootAt("c3", 700, 0),
		lootAt("c4", 600, 0),
	}
	extraction := core.Position3D{X: 0, Y: 500}

	paths := p.PredictOtherPlayerPaths(start, spawns, candidates, extraction)
	require.Len(t, paths, 1)

	wps := paths[0].Waypoints
	require.Len(t, wps, 5, "spawn + three loot stops + extraction")

	assert.Equal(t, core.SegmentSpawn, wps[0].Segment)
	assert.Equal(t, 0.0, wps[0].Time)

	// nearest-first from the rival spawn: c1, c2, c3
	assert.Equal(t, core.Position3D{X: 900, Y: 0}, wps[1].Position)
	assert.InDelta(t, 20, wps[1].Time, 1e-9, "100 units at 5 u/s")
	assert.Equal(t, 30.0, wps[1].DwellTime)

	assert.InDelta(t, 70, wps[2].Time, 1e-9, "20 travel + 30 dwell + 20 travel")
	assert.InDelta(t, 120, wps[3].Time, 1e-9)

	assert.Equal(t, core.SegmentExtraction, wps[4].Segment)
	assert.Equal(t, extraction, wps[4].Position)
}

func TestPredictOtherPlayerPaths_ClaimedCandidatesSpreadRivals(t *testing.T) {
	p := New(5)
	start := core.Position3D{X: 0, Y: 0}
	spawns := []core.Waypoint{
		spawnAt("rival-a", 1000, 0),
		spawnAt("rival-b", 1010, 0),
	}
	candidates := []*core.LootCandidate{
		lootAt("c1", 900, 0),
		lootAt("c2", 950, 0),
	}

	paths := p.PredictOtherPlayerPaths(start, spawns, candidates, core.Position3D{})
	require.Len(t, paths, 2)

	// rival-a claims both caches; rival-b goes straight to extraction
	assert.Len(t, paths[0].Waypoints, 4)
	assert.Len(t, paths[1].Waypoints, 2)
}

func TestPredictOtherPlayerPaths_NoEnemies(t *testing.T) {
	p := New(5)
	start := core.Position3D{X: 0, Y: 0}
	spawns := []core.Waypoint{spawnAt("own", 1, 0)}

	assert.Nil(t, p.PredictOtherPlayerPaths(start, spawns, nil, core.Position3D{}))
}

func TestWillLocationBeOccupied_Dwell(t *testing.T) {
	paths := []core.PredictedPath{{
		SpawnID: "rival",
		Waypoints: []core.PredictedWaypoint{
			{Position: core.Position3D{X: 0, Y: 0}, Time: 0, Segment: core.SegmentSpawn},
			{Position: core.Position3D{X: 100, Y: 0}, Time: 20, Segment: core.SegmentLoot, DwellTime: 30},
		},
	}}
	loc := core.Position3D{X: 110, Y: 0}

	assert.Len(t, WillLocationBeOccupied(loc, 35, paths, 50), 1, "inside dwell interval")
	assert.Empty(t, WillLocationBeOccupied(loc, 55, paths, 50), "after dwell ends")

	far := core.Position3D{X: 200, Y: 0}
	assert.Empty(t, WillLocationBeOccupied(far, 35, paths, 50), "outside proximity radius")
}

func TestWillLocationBeOccupied_Transit(t *testing.T) {
	paths := []core.PredictedPath{{
		SpawnID: "rival",
		Waypoints: []core.PredictedWaypoint{
			{Position: core.Position3D{X: 0, Y: 0}, Time: 0, Segment: core.SegmentSpawn},
			{Position: core.Position3D{X: 200, Y: 0}, Time: 40, Segment: core.SegmentLoot},
		},
	}}

	// 20 units off the segment midpoint, rival passing through at t=20
	loc := core.Position3D{X: 100, Y: 20}
	occ := WillLocationBeOccupied(loc, 20, paths, 50)
	require.Len(t, occ, 1)
	assert.Equal(t, "rival", occ[0].SpawnID)
	assert.InDelta(t, 20, occ[0].Distance, 1e-9)

	assert.Empty(t, WillLocationBeOccupied(loc, 50, paths, 50), "after the segment ends")
}

func TestWillLocationBeOccupied_SortedByArrival(t *testing.T) {
	paths := []core.PredictedPath{
		{
			SpawnID: "late",
			Waypoints: []core.PredictedWaypoint{
				{Position: core.Position3D{X: 0, Y: 0}, Time: 0},
				{Position: core.Position3D{X: 10, Y: 0}, Time: 90, DwellTime: 30},
			},
		},
		{
			SpawnID: "early",
			Waypoints: []core.PredictedWaypoint{
				{Position: core.Position3D{X: 0, Y: 0}, Time: 0},
				{Position: core.Position3D{X: 10, Y: 0}, Time: 95, DwellTime: 30},
			},
		},
	}
	// both rivals dwell at (10,0) at t=100; "late" path arrived first
	occ := WillLocationBeOccupied(core.Position3D{X: 10, Y: 0}, 100, paths, 50)
	require.Len(t, occ, 2)
	assert.Equal(t, "late", occ[0].SpawnID)
	assert.Equal(t, "early", occ[1].SpawnID)
}

func TestFastestArrival(t *testing.T) {
	p := New(5)
	target := core.Position3D{X: 0, Y: 0}
	spawns := []core.Waypoint{
		spawnAt("far", 500, 0),
		spawnAt("near", 100, 0),
	}

	spawn, travel, ok := p.FastestArrival(target, spawns)
	require.True(t, ok)
	assert.Equal(t, "near", spawn.ID)
	assert.InDelta(t, 20, travel, 1e-9)

	_, _, ok = p.FastestArrival(target, nil)
	assert.False(t, ok)
}
