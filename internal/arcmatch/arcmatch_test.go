package arcmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raidtools/lootrun/pkg/core"
)

func TestMatchARCsToMap_LocationHint(t *testing.T) {
	arcs := []core.ArcMission{
		{ID: "arc-1", Name: "Clear the camp", Location: "Old Sawmill"},
	}
	pois := []core.PointOfInterest{
		{ID: "poi-1", Name: "Sawmill", Position: core.Position3D{X: 100, Y: 200}},
	}

	matches := MatchARCsToMap(arcs, pois, nil)
	require.Len(t, matches, 1)
	assert.Equal(t, "arc-1", matches[0].Arc.ID)
	assert.Equal(t, "poi-1", matches[0].MatchedPOI)
	assert.Equal(t, core.Position3D{X: 100, Y: 200}, matches[0].Position)
}

func TestMatchARCsToMap_CaseInsensitive(t *testing.T) {
	arcs := []core.ArcMission{{ID: "arc-1", Name: "RAID THE DEPOT"}}
	pois := []core.PointOfInterest{
		{ID: "poi-1", Name: "the depot", Position: core.Position3D{X: 5, Y: 5}},
	}

	matches := MatchARCsToMap(arcs, pois, nil)
	require.Len(t, matches, 1)
	assert.Equal(t, "poi-1", matches[0].MatchedPOI)
}

func TestMatchARCsToMap_BidirectionalSubstring(t *testing.T) {
	// POI name contained in the hint, and hint contained in the POI name
	tests := []struct {
		name    string
		hint    string
		poiName string
	}{
		{"hint contains poi name", "North Lighthouse Approach", "Lighthouse"},
		{"poi name contains hint", "Docks", "Eastern Docks Storage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arcs := []core.ArcMission{{ID: "a", Location: tt.hint}}
			pois := []core.PointOfInterest{{ID: "p", Name: tt.poiName}}
			matches := MatchARCsToMap(arcs, pois, nil)
			assert.Len(t, matches, 1)
		})
	}
}

func TestMatchARCsToMap_POIsBeforeWaypoints(t *testing.T) {
	arcs := []core.ArcMission{{ID: "arc-1", Location: "Harbor"}}
	pois := []core.PointOfInterest{
		{ID: "poi-harbor", Name: "Harbor Crane", Position: core.Position3D{X: 1, Y: 1}},
	}
	waypoints := []core.Waypoint{
		{ID: "wp-harbor", Name: "Harbor Gate", Position: core.Position3D{X: 9, Y: 9}},
	}

	matches := MatchARCsToMap(arcs, pois, waypoints)
	require.Len(t, matches, 1)
	assert.Equal(t, "poi-harbor", matches[0].MatchedPOI)
}

func TestMatchARCsToMap_FallsBackToWaypoints(t *testing.T) {
	arcs := []core.ArcMission{{ID: "arc-1", Location: "Extraction Bravo"}}
	pois := []core.PointOfInterest{{ID: "poi-1", Name: "Warehouse"}}
	waypoints := []core.Waypoint{
		{ID: "wp-1", Name: "Bravo", Position: core.Position3D{X: 50, Y: 60}},
	}

	matches := MatchARCsToMap(arcs, pois, waypoints)
	require.Len(t, matches, 1)
	assert.Equal(t, "wp-1", matches[0].MatchedPOI)
	assert.Equal(t, core.Position3D{X: 50, Y: 60}, matches[0].Position)
}

func TestMatchARCsToMap_FirstHitWins(t *testing.T) {
	arcs := []core.ArcMission{{ID: "arc-1", Location: "Tower"}}
	pois := []core.PointOfInterest{
		{ID: "poi-a", Name: "Radio Tower", Position: core.Position3D{X: 1, Y: 0}},
		{ID: "poi-b", Name: "Water Tower", Position: core.Position3D{X: 2, Y: 0}},
	}

	matches := MatchARCsToMap(arcs, pois, nil)
	require.Len(t, matches, 1)
	assert.Equal(t, "poi-a", matches[0].MatchedPOI)
}

func TestMatchARCsToMap_UnmatchedDropped(t *testing.T) {
	arcs := []core.ArcMission{
		{ID: "arc-1", Name: "Nowhere Mission", Location: "Nonexistent Place"},
		{ID: "arc-2", Name: "", Location: ""},
	}
	pois := []core.PointOfInterest{{ID: "poi-1", Name: "Warehouse"}}

	matches := MatchARCsToMap(arcs, pois, nil)
	assert.Empty(t, matches)
}

func TestMatchARCsToMap_NameUsedWhenLocationMisses(t *testing.T) {
	arcs := []core.ArcMission{
		{ID: "arc-1", Name: "Warehouse sweep", Location: "Unknown sector"},
	}
	pois := []core.PointOfInterest{
		{ID: "poi-1", Name: "Warehouse", Position: core.Position3D{X: 3, Y: 3}},
	}

	matches := MatchARCsToMap(arcs, pois, nil)
	require.Len(t, matches, 1)
	assert.Equal(t, "poi-1", matches[0].MatchedPOI)
}

func TestNamesMatch_EmptyGuards(t *testing.T) {
	assert.False(t, namesMatch("", "anything"))
	assert.False(t, namesMatch("anything", ""))
	assert.False(t, namesMatch("  ", "anything"), "whitespace-only never matches")
}
