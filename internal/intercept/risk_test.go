package intercept

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raidtools/lootrun/pkg/core"
)

func TestWaitTime(t *testing.T) {
	tests := []struct {
		name         string
		yourArrival  float64
		rivalArrival float64
		want         float64
	}{
		{"rival long gone", 100, 0, 0},
		{"rival 30s ahead still dwelling", 100, 70, 7.5},
		{"rival 10s ahead", 100, 90, 32.5},
		{"dead heat", 100, 100, 10},
		{"rival 15s behind", 100, 115, 5},
		{"rival exactly at safety edge", 100, 130, 0},
		{"rival 45s behind", 100, 145, 7.5},
		{"rival at risk edge", 100, 160, 0},
		{"rival far behind", 100, 300, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, WaitTime(tt.yourArrival, tt.rivalArrival), 1e-9)
		})
	}
}

func TestSafeWindow(t *testing.T) {
	assert.Equal(t, 50.0, SafeWindow(100, 150))
	assert.Equal(t, 0.0, SafeWindow(150, 100), "never negative")
}

func TestCalculateRisk_Threats(t *testing.T) {
	p := New(5)
	waypoints := []core.PathWaypoint{
		{Order: 0, Type: core.PathSpawn, Position: core.Position3D{X: 0, Y: 0}, ArrivalTime: 0},
		{Order: 1, Type: core.PathCache, Position: core.Position3D{X: 100, Y: 0}, ArrivalTime: 20},
		{Order: 2, Type: core.PathExtraction, Position: core.Position3D{X: 200, Y: 0}, ArrivalTime: 40},
	}
	spawns := []core.Waypoint{
		spawnAt("close", 150, 0),
		spawnAt("distant", 1000, 0),
	}

	risk := p.CalculateRisk(waypoints, spawns, 0, 0)
	require.NotNil(t, risk)

	// extraction is terminal, so only spawn and cache produce threats
	require.Len(t, risk.Threats, 2)
	assert.Equal(t, 0, risk.Threats[0].WaypointOrder)
	assert.Equal(t, "close", risk.Threats[0].SpawnID)
	assert.InDelta(t, 30, risk.Threats[0].TravelTime, 1e-9)
	assert.False(t, risk.Threats[0].CanBeatYou, "30s travel vs arrival at 0")

	assert.Equal(t, 1, risk.Threats[1].WaypointOrder)
	assert.InDelta(t, 10, risk.Threats[1].TravelTime, 1e-9)
	assert.True(t, risk.Threats[1].CanBeatYou, "10s travel vs arrival at 20")
}

func TestCalculateRisk_EarliestContact(t *testing.T) {
	p := New(5)
	waypoints := []core.PathWaypoint{
		{Order: 0, Type: core.PathSpawn, Position: core.Position3D{X: 0, Y: 0}, ArrivalTime: 0},
		{Order: 1, Type: core.PathCache, Position: core.Position3D{X: 100, Y: 0}, ArrivalTime: 20},
		{Order: 2, Type: core.PathCache, Position: core.Position3D{X: 200, Y: 0}, ArrivalTime: 60},
	}
	spawns := []core.Waypoint{spawnAt("rival", 120, 0)}

	risk := p.CalculateRisk(waypoints, spawns, 0, 0)
	require.NotNil(t, risk)
	require.NotNil(t, risk.EarliestContact)

	// rival reaches (100,0) in 4s, well before the player's 20s arrival
	assert.Equal(t, core.Position3D{X: 100, Y: 0}, risk.EarliestContact.Position)
	assert.Equal(t, 20.0, risk.EarliestContact.Time)
	assert.Equal(t, "rival", risk.EarliestContact.SpawnID)
}

func TestCalculateRisk_NoContactWhenPlayerAlwaysFirst(t *testing.T) {
	p := New(5)
	waypoints := []core.PathWaypoint{
		{Order: 0, Type: core.PathSpawn, Position: core.Position3D{X: 0, Y: 0}, ArrivalTime: 0},
		{Order: 1, Type: core.PathCache, Position: core.Position3D{X: 10, Y: 0}, ArrivalTime: 2},
	}
	spawns := []core.Waypoint{spawnAt("rival", 5000, 0)}

	risk := p.CalculateRisk(waypoints, spawns, 0, 0)
	require.NotNil(t, risk)
	assert.Nil(t, risk.EarliestContact)
}

func TestCalculateRisk_LateSpawnProbes(t *testing.T) {
	p := New(5)
	waypoints := []core.PathWaypoint{
		{Order: 0, Type: core.PathSpawn, Position: core.Position3D{X: 0, Y: 0}, ArrivalTime: 0},
		{Order: 1, Type: core.PathExtraction, Position: core.Position3D{X: 1000, Y: 0}, ArrivalTime: 200},
	}
	spawns := []core.Waypoint{spawnAt("rival", 0, 500)}

	risk := p.CalculateRisk(waypoints, spawns, 100, 300)
	require.NotNil(t, risk)
	require.Len(t, risk.LateSpawnProbes, 3)

	assert.Equal(t, 100.0, risk.LateSpawnProbes[0].Time)
	assert.Equal(t, 200.0, risk.LateSpawnProbes[1].Time)
	assert.Equal(t, 300.0, risk.LateSpawnProbes[2].Time)

	// player is mid-route at the first probe, at the terminus by the last
	assert.Equal(t, core.Position3D{X: 500, Y: 0}, risk.LateSpawnProbes[0].PlayerPosition)
	assert.Equal(t, core.Position3D{X: 1000, Y: 0}, risk.LateSpawnProbes[2].PlayerPosition)

	require.Len(t, risk.LateSpawnProbes[0].Threats, 1)
	assert.Equal(t, "rival", risk.LateSpawnProbes[0].Threats[0].SpawnID)
}

func TestCalculateRisk_DegenerateInputs(t *testing.T) {
	p := New(5)
	wps := []core.PathWaypoint{{Type: core.PathSpawn}}
	spawns := []core.Waypoint{spawnAt("rival", 100, 0)}

	assert.Nil(t, p.CalculateRisk(nil, spawns, 0, 0))
	assert.Nil(t, p.CalculateRisk(wps, nil, 0, 0))
}

func TestPositionAtTime(t *testing.T) {
	waypoints := []core.PathWaypoint{
		{Position: core.Position3D{X: 0, Y: 0}, ArrivalTime: 10},
		{Position: core.Position3D{X: 100, Y: 0}, ArrivalTime: 30},
		{Position: core.Position3D{X: 100, Y: 50}, ArrivalTime: 40},
	}

	tests := []struct {
		t    float64
		want core.Position3D
	}{
		{0, core.Position3D{X: 0, Y: 0}},
		{10, core.Position3D{X: 0, Y: 0}},
		{20, core.Position3D{X: 50, Y: 0}},
		{30, core.Position3D{X: 100, Y: 0}},
		{35, core.Position3D{X: 100, Y: 25}},
		{99, core.Position3D{X: 100, Y: 50}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("t=%.0f", tt.t), func(t *testing.T) {
			got := PositionAtTime(waypoints, tt.t)
			assert.InDelta(t, tt.want.X, got.X, 1e-9)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-9)
		})
	}

	assert.Equal(t, core.Position3D{}, PositionAtTime(nil, 5))
}
