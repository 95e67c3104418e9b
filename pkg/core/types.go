// pkg/core/types.go
package core

// Position3D represents a planar map coordinate in meters without GIS dependencies.
// Z is elevation and defaults to 0 when absent from source data.
type Position3D struct {
	X float64 `json:"x"` // easting
	Y float64 `json:"y"` // northing
	Z float64 `json:"z"` // elevation
}

// DangerLevel classifies a danger score into coarse bands.
type DangerLevel string

const (
	DangerLow     DangerLevel = "low"
	DangerMedium  DangerLevel = "medium"
	DangerHigh    DangerLevel = "high"
	DangerExtreme DangerLevel = "extreme"
)

// DangerReport is the result of assessing a single map location.
type DangerReport struct {
	Level   DangerLevel `json:"level"`
	Score   float64     `json:"score"`
	Reasons []string    `json:"reasons"`
}
