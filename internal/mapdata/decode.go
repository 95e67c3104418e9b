package mapdata

import (
	"log/slog"
	"math"

	"github.com/raidtools/lootrun/internal/geo"
	"github.com/raidtools/lootrun/pkg/core"
)

// wire types mirror the service's JSON. Coordinates come either planar
// (x/y/z) or geographic (lat/lng), controlled per client.
type wireBundle struct {
	MapID     string         `json:"mapId"`
	MapName   string         `json:"mapName"`
	Waypoints []wireLocation `json:"waypoints"`
	POIs      []wireLocation `json:"pois"`
	Arcs      []wireArc      `json:"arcs"`
}

type wireLocation struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Type string  `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Z    float64 `json:"z"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

type wireArc struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Location   string `json:"location"`
	Difficulty string `json:"difficulty"`
}

// decode converts a wire snapshot into the planner's bundle. Locations with
// non-finite coordinates are dropped with a warning rather than failing the
// whole snapshot.
func decode(wire *wireBundle, latLng bool) *core.MapBundle {
	bundle := &core.MapBundle{
		MapID:   wire.MapID,
		MapName: wire.MapName,
	}

	for _, w := range wire.Waypoints {
		pos, ok := position(w, latLng)
		if !ok {
			slog.Warn("Dropping waypoint with invalid coordinates", "id", w.ID, "name", w.Name)
			continue
		}
		bundle.Waypoints = append(bundle.Waypoints, core.Waypoint{
			ID:       w.ID,
			Name:     w.Name,
			Position: pos,
			Type:     core.WaypointType(w.Type),
		})
	}

	for _, p := range wire.POIs {
		pos, ok := position(p, latLng)
		if !ok {
			slog.Warn("Dropping POI with invalid coordinates", "id", p.ID, "name", p.Name)
			continue
		}
		bundle.POIs = append(bundle.POIs, core.PointOfInterest{
			ID:       p.ID,
			Name:     p.Name,
			Position: pos,
			Type:     poiType(p.Type),
		})
	}

	for _, a := range wire.Arcs {
		bundle.Arcs = append(bundle.Arcs, core.ArcMission{
			ID:         a.ID,
			Name:       a.Name,
			Location:   a.Location,
			Difficulty: core.ArcDifficulty(a.Difficulty),
		})
	}

	return bundle
}

func position(l wireLocation, latLng bool) (core.Position3D, bool) {
	var pos core.Position3D
	if latLng {
		if !finite(l.Lat) || !finite(l.Lng) {
			return pos, false
		}
		pos = geo.PlanarFromLatLng(l.Lat, l.Lng)
		pos.Z = l.Z
		return pos, true
	}
	if !finite(l.X) || !finite(l.Y) || !finite(l.Z) {
		return pos, false
	}
	return core.Position3D{X: l.X, Y: l.Y, Z: l.Z}, true
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// poiType folds unknown provider types into POIOther so new provider
// categories never break planning.
func poiType(t string) core.POIType {
	switch core.POIType(t) {
	case core.POICache, core.POIObjective, core.POIVendor:
		return core.POIType(t)
	default:
		return core.POIOther
	}
}
