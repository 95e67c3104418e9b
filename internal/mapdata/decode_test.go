package mapdata

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raidtools/lootrun/pkg/core"
)

func TestDecode_Planar(t *testing.T) {
	wire := &wireBundle{
		MapID:   "dam",
		MapName: "Dam Battlegrounds",
		Waypoints: []wireLocation{
			{ID: "wp-1", Name: "North Spawn", Type: "spawn", X: 10, Y: 20, Z: 5},
			{ID: "wp-2", Name: "Extract Alpha", Type: "extraction", X: 500, Y: 600},
		},
		POIs: []wireLocation{
			{ID: "poi-1", Name: "Supply Cache", Type: "cache", X: 100, Y: 100},
			{ID: "poi-2", Name: "Radio Objective", Type: "objective", X: 150, Y: 100},
		},
		Arcs: []wireArc{
			{ID: "arc-1", Name: "Clear the dam", Location: "Dam", Difficulty: "hard"},
		},
	}

	bundle := decode(wire, false)
	require.NotNil(t, bundle)

	assert.Equal(t, "dam", bundle.MapID)
	assert.Equal(t, "Dam Battlegrounds", bundle.MapName)

	require.Len(t, bundle.Waypoints, 2)
	assert.Equal(t, core.Position3D{X: 10, Y: 20, Z: 5}, bundle.Waypoints[0].Position)
	assert.Equal(t, core.WaypointSpawn, bundle.Waypoints[0].Type)
	assert.Equal(t, core.WaypointExtraction, bundle.Waypoints[1].Type)

	require.Len(t, bundle.POIs, 2)
	assert.Equal(t, core.POICache, bundle.POIs[0].Type)
	assert.Equal(t, core.POIObjective, bundle.POIs[1].Type)

	require.Len(t, bundle.Arcs, 1)
	assert.Equal(t, core.ArcHard, bundle.Arcs[0].Difficulty)
	assert.Equal(t, "Dam", bundle.Arcs[0].Location)
}

func TestDecode_DropsNonFiniteCoordinates(t *testing.T) {
	wire := &wireBundle{
		MapID: "dam",
		Waypoints: []wireLocation{
			{ID: "good", Type: "spawn", X: 1, Y: 2},
			{ID: "nan", Type: "spawn", X: math.NaN(), Y: 2},
		},
		POIs: []wireLocation{
			{ID: "inf", Type: "cache", X: math.Inf(1), Y: 0},
			{ID: "kept", Type: "cache", X: 3, Y: 4},
		},
	}

	bundle := decode(wire, false)
	require.Len(t, bundle.Waypoints, 1)
	assert.Equal(t, "good", bundle.Waypoints[0].ID)
	require.Len(t, bundle.POIs, 1)
	assert.Equal(t, "kept", bundle.POIs[0].ID)
}

func TestDecode_LatLng(t *testing.T) {
	wire := &wireBundle{
		MapID: "coastal",
		POIs: []wireLocation{
			{ID: "poi-1", Type: "cache", Lat: 0.001, Lng: 0.002, Z: 12},
		},
	}

	bundle := decode(wire, true)
	require.Len(t, bundle.POIs, 1)

	pos := bundle.POIs[0].Position
	assert.Greater(t, pos.X, 0.0, "projected east of the origin")
	assert.Greater(t, pos.Y, 0.0, "projected north of the origin")
	assert.Equal(t, 12.0, pos.Z, "elevation passes through the projection")
	assert.False(t, math.IsNaN(pos.X))
	assert.False(t, math.IsNaN(pos.Y))
}

func TestDecode_LatLngDropsMissingGeographic(t *testing.T) {
	wire := &wireBundle{
		MapID: "coastal",
		POIs: []wireLocation{
			{ID: "bad", Type: "cache", Lat: math.NaN(), Lng: 1},
		},
	}

	bundle := decode(wire, true)
	assert.Empty(t, bundle.POIs)
}

func TestPoiType_FoldsUnknown(t *testing.T) {
	tests := []struct {
		in   string
		want core.POIType
	}{
		{"cache", core.POICache},
		{"objective", core.POIObjective},
		{"vendor", core.POIVendor},
		{"landmark", core.POIOther},
		{"", core.POIOther},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, poiType(tt.in))
		})
	}
}
