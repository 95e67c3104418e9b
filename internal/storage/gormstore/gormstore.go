// Package gormstore persists plans through the shared database manager.
package gormstore

import (
	"encoding/json"
	"fmt"

	"github.com/raidtools/lootrun/internal/database"
	"github.com/raidtools/lootrun/internal/model"
	"github.com/raidtools/lootrun/internal/storage"
	"github.com/raidtools/lootrun/pkg/core"
)

// Backend stores plans via gorm, postgres or sqlite per the manager's config.
type Backend struct {
	manager *database.Manager
}

// New wraps an already-constructed database manager.
func New(manager *database.Manager) *Backend {
	return &Backend{manager: manager}
}

// Init connects and migrates.
func (b *Backend) Init() error {
	if err := b.manager.Connect(); err != nil {
		return err
	}
	return b.manager.Setup()
}

// Close releases the database connection.
func (b *Backend) Close() error {
	return b.manager.Close()
}

// SavePlan persists a planned run and returns its assigned ID.
func (b *Backend) SavePlan(path *core.LootRunPath, algorithm string) (uint, error) {
	waypoints, err := json.Marshal(path.Waypoints)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize waypoints: %w", err)
	}

	record := model.Plan{
		MapID:         path.MapID,
		MapName:       path.MapName,
		Algorithm:     algorithm,
		WaypointCount: len(path.Waypoints),
		TotalDistance: path.TotalDistance,
		EstimatedTime: path.EstimatedTime,
		Waypoints:     waypoints,
	}
	if err := b.manager.DB.Create(&record).Error; err != nil {
		return 0, fmt.Errorf("failed to save plan: %w", err)
	}
	return record.ID, nil
}

// GetPlan loads one persisted run by ID.
func (b *Backend) GetPlan(id uint) (*core.LootRunPath, error) {
	var record model.Plan
	if err := b.manager.DB.First(&record, id).Error; err != nil {
		return nil, fmt.Errorf("failed to load plan %d: %w", id, err)
	}

	path := &core.LootRunPath{
		MapID:         record.MapID,
		MapName:       record.MapName,
		TotalDistance: record.TotalDistance,
		EstimatedTime: record.EstimatedTime,
	}
	if err := json.Unmarshal(record.Waypoints, &path.Waypoints); err != nil {
		return nil, fmt.Errorf("failed to deserialize waypoints: %w", err)
	}
	return path, nil
}

// ListPlans returns summaries, newest first.
func (b *Backend) ListPlans(mapID string, limit int) ([]storage.PlanSummary, error) {
	q := b.manager.DB.Model(&model.Plan{}).Order("created_at DESC")
	if mapID != "" {
		q = q.Where("map_id = ?", mapID)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var records []model.Plan
	if err := q.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	summaries := make([]storage.PlanSummary, 0, len(records))
	for _, r := range records {
		summaries = append(summaries, storage.PlanSummary{
			ID:            r.ID,
			CreatedAt:     r.CreatedAt,
			MapID:         r.MapID,
			MapName:       r.MapName,
			Algorithm:     r.Algorithm,
			WaypointCount: r.WaypointCount,
			TotalDistance: r.TotalDistance,
			EstimatedTime: r.EstimatedTime,
		})
	}
	return summaries, nil
}
