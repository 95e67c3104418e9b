// Package storage abstracts plan persistence behind a Backend interface so
// the CLI works identically against a real database or plain memory.
package storage

import (
	"time"

	"github.com/raidtools/lootrun/pkg/core"
)

// Backend is the interface all plan stores must satisfy.
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// SavePlan persists a planned run and returns its assigned ID.
	SavePlan(path *core.LootRunPath, algorithm string) (uint, error)

	// GetPlan loads one persisted run by ID.
	GetPlan(id uint) (*core.LootRunPath, error)

	// ListPlans returns summaries for a map, newest first. A limit of 0
	// means no limit; an empty mapID matches all maps.
	ListPlans(mapID string, limit int) ([]PlanSummary, error)
}

// PlanSummary is the list-view projection of a persisted run.
type PlanSummary struct {
	ID            uint      `json:"id"`
	CreatedAt     time.Time `json:"createdAt"`
	MapID         string    `json:"mapId"`
	MapName       string    `json:"mapName"`
	Algorithm     string    `json:"algorithm"`
	WaypointCount int       `json:"waypointCount"`
	TotalDistance float64   `json:"totalDistance"`
	EstimatedTime float64   `json:"estimatedTime"`
}
