// Package model defines the persisted database schema. Planning itself never
// touches the database; records exist so past runs can be listed and replayed.
package model

import (
	"time"

	"gorm.io/datatypes"
)

// Plan is one persisted loot run.
type Plan struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	MapID     string `gorm:"index" json:"mapId"`
	MapName   string `json:"mapName"`
	Algorithm string `json:"algorithm"`

	WaypointCount int     `json:"waypointCount"`
	TotalDistance float64 `json:"totalDistance"`
	EstimatedTime float64 `json:"estimatedTime"`

	// Waypoints is the full ordered waypoint list, serialized as JSON. The
	// planner's output shape changes more often than this table; a document
	// column avoids a migration per field.
	Waypoints datatypes.JSON `json:"waypoints"`
}

// DatabaseModels is the full migration set.
var DatabaseModels = []any{
	&Plan{},
}
