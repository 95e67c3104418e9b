// Package geo provides the planar distance math the planner is built on.
// All travel reasoning uses straight-line Euclidean distance; z defaults to 0
// when absent from source data.
package geo

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/wroge/wgs84"

	"github.com/raidtools/lootrun/pkg/core"
)

// ErrInvalidCoordinates is returned when the coordinates are invalid
var ErrInvalidCoordinates = errors.New("invalid coordinates provided")

// Distance returns the 3D Euclidean distance between two positions.
func Distance(a, b core.Position3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// TravelTime returns the straight-line travel time between two positions at
// the given movement speed in units/s. Returns 0 for non-positive speeds.
func TravelTime(a, b core.Position3D, speed float64) float64 {
	if speed <= 0 {
		return 0
	}
	return Distance(a, b) / speed
}

// PointSegmentDistance returns the shortest distance from p to the segment ab.
func PointSegmentDistance(p, a, b core.Position3D) float64 {
	abx := b.X - a.X
	aby := b.Y - a.Y
	abz := b.Z - a.Z
	lenSq := abx*abx + aby*aby + abz*abz
	if lenSq == 0 {
		return Distance(p, a)
	}
	t := ((p.X-a.X)*abx + (p.Y-a.Y)*aby + (p.Z-a.Z)*abz) / lenSq
	t = math.Max(0, math.Min(1, t))
	return Distance(p, core.Position3D{
		X: a.X + t*abx,
		Y: a.Y + t*aby,
		Z: a.Z + t*abz,
	})
}

// Interpolate returns the position a fraction t of the way from a to b.
// t is clamped to [0,1].
func Interpolate(a, b core.Position3D, t float64) core.Position3D {
	t = math.Max(0, math.Min(1, t))
	return core.Position3D{
		X: a.X + t*(b.X-a.X),
		Y: a.Y + t*(b.Y-a.Y),
		Z: a.Z + t*(b.Z-a.Z),
	}
}

// Position3DFromString parses an "x,y" or "x,y,z" string into a core.Position3D.
func Position3DFromString(coords string) (core.Position3D, error) {
	coordsSplit := strings.Split(coords, ",")
	if len(coordsSplit) < 2 {
		return core.Position3D{}, ErrInvalidCoordinates
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(coordsSplit[0]), 64)
	if err != nil {
		return core.Position3D{}, ErrInvalidCoordinates
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(coordsSplit[1]), 64)
	if err != nil {
		return core.Position3D{}, ErrInvalidCoordinates
	}
	var z float64
	if len(coordsSplit) > 2 {
		z, err = strconv.ParseFloat(strings.TrimSpace(coordsSplit[2]), 64)
		if err != nil {
			return core.Position3D{}, ErrInvalidCoordinates
		}
	}
	return core.Position3D{X: x, Y: y, Z: z}, nil
}

// PlanarFromLatLng converts an EPSG:4326 lat/lng pair to planar EPSG:3857
// meters. Community map feeds publish leaflet-style lat/lng; the planner's
// Euclidean math needs planar coordinates.
func PlanarFromLatLng(lat, lng float64) core.Position3D {
	epsg := wgs84.EPSG()
	f := epsg.Transform(4326, 3857)
	x, y, _ := f(lng, lat, 0)
	return core.Position3D{X: x, Y: y}
}
