package config

import (
	"github.com/spf13/viper"

	"github.com/raidtools/lootrun/pkg/core"
)

// Algorithm selects the planner's route-selection strategy.
type Algorithm string

const (
	AlgorithmNearestNeighbor Algorithm = "nearest-neighbor"
	AlgorithmGreedy          Algorithm = "greedy"
	AlgorithmExtractionAware Algorithm = "extraction-aware"
)

// PlannerOptions is the single configuration value object for one planning
// call. Zero values are filled by Normalize; distances are map units, times
// are seconds.
type PlannerOptions struct {
	StartAtSpawn       bool
	StartAtCoordinates *core.Position3D
	EndAtExtraction    bool
	UseRaiderKey       bool
	MaxTargets         int
	Algorithm          Algorithm

	ExtractionProximity     float64
	MaxTimeBeforeExtraction float64

	AvoidDangerousAreas bool
	DangerRadius        float64
	ArcDangerWeight     float64

	AvoidPlayerInterception bool
	PlayerMovementSpeed     float64
	RoundDuration           float64
	LateSpawnWindowStart    float64
	LateSpawnWindowEnd      float64
	SpawnAvoidanceRadius    float64

	// DangerCorridorRadius of 0 derives 1.5 x DangerRadius in Normalize.
	DangerCorridorRadius float64
	ClusterRadius        float64
}

// DefaultPlannerOptions returns the documented defaults.
func DefaultPlannerOptions() PlannerOptions {
	opts := PlannerOptions{
		StartAtSpawn:            true,
		EndAtExtraction:         true,
		MaxTargets:              8,
		Algorithm:               AlgorithmExtractionAware,
		ExtractionProximity:     100,
		MaxTimeBeforeExtraction: 300,
		DangerRadius:            50,
		ArcDangerWeight:         2.0,
		AvoidPlayerInterception: true,
		PlayerMovementSpeed:     5,
		RoundDuration:           1800,
		LateSpawnWindowStart:    960,
		LateSpawnWindowEnd:      1200,
		SpawnAvoidanceRadius:    250,
		ClusterRadius:           150,
	}
	opts.Normalize()
	return opts
}

// PlannerOptionsFromViper builds options from the loaded configuration.
func PlannerOptionsFromViper() PlannerOptions {
	opts := PlannerOptions{
		StartAtSpawn:            viper.GetBool("planner.startAtSpawn"),
		EndAtExtraction:         viper.GetBool("planner.endAtExtraction"),
		UseRaiderKey:            viper.GetBool("planner.useRaiderKey"),
		MaxTargets:              viper.GetInt("planner.maxTargets"),
		Algorithm:               Algorithm(viper.GetString("planner.algorithm")),
		ExtractionProximity:     viper.GetFloat64("planner.extractionProximity"),
		MaxTimeBeforeExtraction: viper.GetFloat64("planner.maxTimeBeforeExtraction"),
		AvoidDangerousAreas:     viper.GetBool("planner.avoidDangerousAreas"),
		DangerRadius:            viper.GetFloat64("planner.dangerRadius"),
		ArcDangerWeight:         viper.GetFloat64("planner.arcDangerWeight"),
		AvoidPlayerInterception: viper.GetBool("planner.avoidPlayerInterception"),
		PlayerMovementSpeed:     viper.GetFloat64("planner.playerMovementSpeed"),
		RoundDuration:           viper.GetFloat64("planner.roundDuration"),
		LateSpawnWindowStart:    viper.GetFloat64("planner.lateSpawnWindowStart"),
		LateSpawnWindowEnd:      viper.GetFloat64("planner.lateSpawnWindowEnd"),
		SpawnAvoidanceRadius:    viper.GetFloat64("planner.spawnAvoidanceRadius"),
		DangerCorridorRadius:    viper.GetFloat64("planner.dangerCorridorRadius"),
		ClusterRadius:           viper.GetFloat64("planner.clusterRadius"),
	}
	opts.Normalize()
	return opts
}

// Normalize fills derived and degenerate values so the selection logic never
// re-checks them.
func (o *PlannerOptions) Normalize() {
	if o.Algorithm == "" {
		o.Algorithm = AlgorithmExtractionAware
	}
	if o.MaxTargets <= 0 {
		o.MaxTargets = 8
	}
	if o.ExtractionProximity <= 0 {
		o.ExtractionProximity = 100
	}
	if o.MaxTimeBeforeExtraction <= 0 {
		o.MaxTimeBeforeExtraction = 300
	}
	if o.DangerRadius <= 0 {
		o.DangerRadius = 50
	}
	if o.ArcDangerWeight <= 0 {
		o.ArcDangerWeight = 2.0
	}
	if o.PlayerMovementSpeed <= 0 {
		o.PlayerMovementSpeed = 5
	}
	if o.RoundDuration <= 0 {
		o.RoundDuration = 1800
	}
	if o.LateSpawnWindowStart <= 0 {
		o.LateSpawnWindowStart = 960
	}
	if o.LateSpawnWindowEnd <= o.LateSpawnWindowStart {
		o.LateSpawnWindowEnd = o.LateSpawnWindowStart + 240
	}
	if o.SpawnAvoidanceRadius <= 0 {
		o.SpawnAvoidanceRadius = 250
	}
	if o.DangerCorridorRadius <= 0 {
		o.DangerCorridorRadius = 1.5 * o.DangerRadius
	}
	if o.ClusterRadius <= 0 {
		o.ClusterRadius = 150
	}
	if o.StartAtCoordinates != nil {
		o.StartAtSpawn = false
	}
}
