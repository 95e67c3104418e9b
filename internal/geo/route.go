package geo

import (
	"fmt"

	geom "github.com/peterstace/simplefeatures/geom"

	"github.com/raidtools/lootrun/pkg/core"
)

// RouteLineString builds a geom.LineString through the planned waypoints, in
// order. Used by the render layer for polyline drawing and WKT export.
func RouteLineString(waypoints []core.PathWaypoint) (geom.LineString, error) {
	if len(waypoints) < 2 {
		return geom.LineString{}, fmt.Errorf("route must have at least 2 waypoints, got %d", len(waypoints))
	}

	flatCoords := make([]float64, 0, len(waypoints)*2)
	for _, wp := range waypoints {
		flatCoords = append(flatCoords, wp.Position.X, wp.Position.Y)
	}

	seq := geom.NewSequence(flatCoords, geom.DimXY)
	ls, err := geom.NewLineString(seq)
	if err != nil {
		return geom.LineString{}, fmt.Errorf("building route geometry: %w", err)
	}
	return ls, nil
}

// RouteWKT returns the planned route as a WKT LINESTRING for external GIS
// tooling. Empty string for degenerate routes.
func RouteWKT(waypoints []core.PathWaypoint) string {
	ls, err := RouteLineString(waypoints)
	if err != nil {
		return ""
	}
	return ls.AsText()
}
