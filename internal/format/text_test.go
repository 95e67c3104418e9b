package format

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raidtools/lootrun/pkg/core"
)

func samplePath() *core.LootRunPath {
	wait := 12.0
	safe := 45.0
	rival := 18.0
	return &core.LootRunPath{
		MapID:         "dam",
		MapName:       "Dam Battlegrounds",
		TotalDistance: 250,
		EstimatedTime: 62,
		Waypoints: []core.PathWaypoint{
			{
				ID: "start", Name: "North Spawn", Type: core.PathSpawn,
				Order: 0, Instruction: "Start here", DangerLevel: core.DangerLow,
			},
			{
				ID: "cache-1", Name: "Supply Cache", Type: core.PathCache,
				Order: 1, Instruction: "Loot Supply Cache", ArrivalTime: 20,
				DangerLevel:   core.DangerMedium,
				DangerReasons: []string{"1 objectives nearby"},
				WaitTime:      &wait, SafeWindow: &safe,
				FastestPlayerArrivalTime: &rival,
			},
			{
				ID: "extract", Name: "Extract Alpha", Type: core.PathExtraction,
				Order: 2, Instruction: "Extract at Extract Alpha", ArrivalTime: 62,
				DangerLevel: core.DangerLow,
			},
		},
	}
}

func TestWriteText(t *testing.T) {
	var b strings.Builder
	require.NoError(t, WriteText(&b, samplePath()))
	out := b.String()

	assert.Contains(t, out, "Loot run for Dam Battlegrounds (dam)")
	assert.Contains(t, out, "Total distance 250u, estimated time 1m02s")
	assert.Contains(t, out, " 1. [spawn     ] Start here")
	assert.Contains(t, out, " 2. [cache     ] Loot Supply Cache")
	assert.Contains(t, out, "wait 12s")
	assert.Contains(t, out, "safe for 45s")
	assert.Contains(t, out, "danger: medium (1 objectives nearby)")
	assert.Contains(t, out, " 3. [extraction] Extract at Extract Alpha")
	assert.NotContains(t, out, "Interception outlook", "no risk report attached")
}

func TestWriteText_InterceptionOutlook(t *testing.T) {
	path := samplePath()
	path.Waypoints[0].InterceptionRisk = &core.InterceptionRisk{
		Threats: []core.SpawnThreat{
			{WaypointOrder: 1, SpawnName: "East Spawn", TravelTime: 15, CanBeatYou: true},
			{WaypointOrder: 2, SpawnName: "East Spawn", TravelTime: 90, CanBeatYou: false},
		},
		EarliestContact: &core.ContactPoint{
			Position: core.Position3D{X: 100, Y: 50}, Time: 20, SpawnName: "East Spawn",
		},
		LateSpawnProbes: []core.LateSpawnProbe{
			{Time: 960, Threats: []core.LateSpawnThreat{
				{SpawnName: "East Spawn", TravelTime: 120},
				{SpawnName: "West Spawn", TravelTime: 40},
			}},
		},
	}

	var b strings.Builder
	require.NoError(t, WriteText(&b, path))
	out := b.String()

	assert.Contains(t, out, "Interception outlook:")
	assert.Contains(t, out, "stop 1: East Spawn reaches it in 15s, they can beat you there")
	assert.Contains(t, out, "stop 2: East Spawn reaches it in 1m30s, you arrive first")
	assert.Contains(t, out, "earliest contact: T+20s near (100, 50) from East Spawn")
	assert.Contains(t, out, "late spawn at T+16m00s: West Spawn is 40s away from you")
}

func TestWriteText_NoPath(t *testing.T) {
	var b strings.Builder
	require.NoError(t, WriteText(&b, nil))
	assert.Equal(t, "No viable loot run.\n", b.String())

	b.Reset()
	require.NoError(t, WriteText(&b, &core.LootRunPath{}))
	assert.Equal(t, "No viable loot run.\n", b.String())
}

func TestClosestThreat(t *testing.T) {
	threats := []core.LateSpawnThreat{
		{SpawnName: "a", TravelTime: 50},
		{SpawnName: "b", TravelTime: 10},
		{SpawnName: "c", TravelTime: 30},
	}
	got := closestThreat(threats)
	require.NotNil(t, got)
	assert.Equal(t, "b", got.SpawnName)

	assert.Nil(t, closestThreat(nil))
}
