// pkg/core/map.go
package core

// WaypointType discriminates fixed map waypoints.
type WaypointType string

const (
	WaypointSpawn      WaypointType = "spawn"
	WaypointExtraction WaypointType = "extraction"
)

// POIType discriminates points of interest supplied by the map data provider.
type POIType string

const (
	POICache     POIType = "cache"
	POIObjective POIType = "objective"
	POIVendor    POIType = "vendor"
	POIOther     POIType = "other"
)

// ArcDifficulty grades an ARC mission entity.
type ArcDifficulty string

const (
	ArcEasy    ArcDifficulty = "easy"
	ArcMedium  ArcDifficulty = "medium"
	ArcHard    ArcDifficulty = "hard"
	ArcExtreme ArcDifficulty = "extreme"
)

// Waypoint is a fixed map location owned by the map data provider.
// Read-only to the planner.
type Waypoint struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Position Position3D   `json:"coordinates"`
	Type     WaypointType `json:"type"`
}

// PointOfInterest is a lootable or notable map location. Read-only input.
type PointOfInterest struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Position Position3D `json:"coordinates"`
	Type     POIType    `json:"type"`
}

// ArcMission is a quest/mission entity from the mission data provider.
// Location is a free-text hint, not a coordinate; ARCs are joined to map
// coordinates heuristically by name.
type ArcMission struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Location   string        `json:"location,omitempty"`
	Difficulty ArcDifficulty `json:"difficulty,omitempty"`
}

// MapBundle is the full input snapshot for one map, as served by the
// map data provider.
type MapBundle struct {
	MapID     string            `json:"mapId"`
	MapName   string            `json:"mapName"`
	Waypoints []Waypoint        `json:"waypoints"`
	POIs      []PointOfInterest `json:"pois"`
	Arcs      []ArcMission      `json:"arcs"`
}

// SpawnPoints returns the bundle's spawn waypoints in input order.
func (b *MapBundle) SpawnPoints() []Waypoint {
	return b.waypointsOfType(WaypointSpawn)
}

// ExtractionPoints returns the bundle's extraction waypoints in input order.
func (b *MapBundle) ExtractionPoints() []Waypoint {
	return b.waypointsOfType(WaypointExtraction)
}

func (b *MapBundle) waypointsOfType(t WaypointType) []Waypoint {
	var out []Waypoint
	for _, w := range b.Waypoints {
		if w.Type == t {
			out = append(out, w)
		}
	}
	return out
}

// POIsOfType returns the bundle's POIs of the given type in input order.
func (b *MapBundle) POIsOfType(t POIType) []PointOfInterest {
	var out []PointOfInterest
	for _, p := range b.POIs {
		if p.Type == t {
			out = append(out, p)
		}
	}
	return out
}
