// pkg/core/path.go
package core

// CandidateSource records which input dataset a loot candidate came from.
type CandidateSource string

const (
	SourceCache CandidateSource = "cache"
	SourceArc   CandidateSource = "arc"
)

// LootCandidate is a scored, ephemeral planning unit derived from a cache POI
// or a matched ARC mission. Candidates are recomputed fresh on every planning
// call and never persisted.
type LootCandidate struct {
	ID       string
	Name     string
	Position Position3D
	Source   CandidateSource
	Arc      *ArcMission // set when Source == SourceArc

	DistanceToExtraction float64
	NearExtraction       bool
	Danger               DangerReport
	ClusterScore         int
	NearestSpawnDistance float64
	SpawnProximityScore  float64
	NearEnemySpawn       bool
}

// Dangerous reports whether the candidate sits above the low danger band.
func (c *LootCandidate) Dangerous() bool {
	return c.Danger.Level != DangerLow && c.Danger.Level != ""
}

// PathWaypointType discriminates output waypoints. Downstream logic branches
// on this throughout; optional fields are meaningful per type.
type PathWaypointType string

const (
	PathSpawn      PathWaypointType = "spawn"
	PathCache      PathWaypointType = "cache"
	PathExtraction PathWaypointType = "extraction"
	PathRaiderKey  PathWaypointType = "raider-key"
	PathArc        PathWaypointType = "arc"
	PathOther      PathWaypointType = "other"
)

// IsLoot reports whether the waypoint type counts against the loot target budget.
func (t PathWaypointType) IsLoot() bool {
	return t == PathCache || t == PathArc
}

// IsTerminal reports whether the waypoint type ends a run.
func (t PathWaypointType) IsTerminal() bool {
	return t == PathExtraction || t == PathRaiderKey
}

// PathWaypoint is one ordered stop in a planned loot run.
type PathWaypoint struct {
	ID                   string           `json:"id"`
	Name                 string           `json:"name"`
	Position             Position3D       `json:"coordinates"`
	Type                 PathWaypointType `json:"type"`
	Order                int              `json:"order"`
	Instruction          string           `json:"instruction"`
	DistanceToExtraction float64          `json:"distanceToExtraction"`
	DangerLevel          DangerLevel      `json:"dangerLevel"`
	DangerReasons        []string         `json:"dangerReasons,omitempty"`
	ArrivalTime          float64          `json:"arrivalTime"`

	// Interception-derived fields, nil when interception modeling is off
	// or no rival spawns exist.
	WaitTime                 *float64 `json:"waitTime,omitempty"`
	SafeWindow               *float64 `json:"safeWindow,omitempty"`
	FastestPlayerArrivalTime *float64 `json:"fastestPlayerArrivalTime,omitempty"`

	// InterceptionRisk is attached to the first waypoint only.
	InterceptionRisk *InterceptionRisk `json:"playerInterceptionRisk,omitempty"`
}

// LootRunPath is the final planning artifact.
type LootRunPath struct {
	MapID         string         `json:"mapId"`
	MapName       string         `json:"mapName"`
	Waypoints     []PathWaypoint `json:"waypoints"`
	TotalDistance float64        `json:"totalDistance"`
	EstimatedTime float64        `json:"estimatedTime"`
}

// PredictedSegment labels a leg of a simulated rival timeline.
type PredictedSegment string

const (
	SegmentSpawn      PredictedSegment = "spawn"
	SegmentLoot       PredictedSegment = "loot"
	SegmentExtraction PredictedSegment = "extraction"
)

// PredictedWaypoint is one stop on a simulated rival path.
type PredictedWaypoint struct {
	Position  Position3D       `json:"coordinates"`
	Time      float64          `json:"time"`
	Segment   PredictedSegment `json:"segment"`
	DwellTime float64          `json:"dwellTime"`
}

// PredictedPath is a synthetic rival timeline from one enemy spawn.
type PredictedPath struct {
	SpawnID   string              `json:"spawnId"`
	SpawnName string              `json:"spawnName"`
	Origin    Position3D          `json:"origin"`
	Waypoints []PredictedWaypoint `json:"waypoints"`
}

// Occupation records a rival presence near a location at a point in time.
type Occupation struct {
	SpawnID     string     `json:"spawnId"`
	SpawnName   string     `json:"spawnName"`
	Position    Position3D `json:"coordinates"`
	ArrivalTime float64    `json:"arrivalTime"`
	Distance    float64    `json:"distance"`
}

// SpawnThreat is the closest-rival-spawn analysis for one planned waypoint.
type SpawnThreat struct {
	WaypointOrder int     `json:"waypointOrder"`
	SpawnID       string  `json:"spawnId"`
	SpawnName     string  `json:"spawnName"`
	TravelTime    float64 `json:"travelTime"`
	CanBeatYou    bool    `json:"canBeatYou"`
}

// ContactPoint is the earliest possible rival contact across a planned path.
type ContactPoint struct {
	Position  Position3D `json:"coordinates"`
	Time      float64    `json:"time"`
	SpawnID   string     `json:"spawnId"`
	SpawnName string     `json:"spawnName"`
}

// LateSpawnThreat is one rival spawn's direct travel time to the player's
// projected position at a late-spawn probe time.
type LateSpawnThreat struct {
	SpawnID    string  `json:"spawnId"`
	SpawnName  string  `json:"spawnName"`
	TravelTime float64 `json:"travelTime"`
}

// LateSpawnProbe projects the player's position at one probe time within the
// late-spawn window and the threats against it.
type LateSpawnProbe struct {
	Time           float64           `json:"time"`
	PlayerPosition Position3D        `json:"playerPosition"`
	Threats        []LateSpawnThreat `json:"threats"`
}

// InterceptionRisk is the full pre-computed worst-case interception report.
// It is a static estimate made once at plan time, never updated live.
type InterceptionRisk struct {
	Threats         []SpawnThreat    `json:"threats"`
	EarliestContact *ContactPoint    `json:"earliestContact,omitempty"`
	LateSpawnProbes []LateSpawnProbe `json:"lateSpawnProbes"`
}
