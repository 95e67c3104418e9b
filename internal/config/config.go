package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file. A missing file is
// not an error to callers that can run on defaults; they decide.
func Load(configDir string) error {
	SetDefaults()

	viper.SetConfigName("lootrun.cfg.json")
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// SetDefaults registers every configuration default. Planner defaults are
// centralized here rather than scattered through the selection logic.
func SetDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./lootrunlogs")

	// map/mission data provider
	viper.SetDefault("mapdata.baseUrl", "http://localhost:5100")
	viper.SetDefault("mapdata.apiKey", "")
	viper.SetDefault("mapdata.latLngInput", false)

	// planner defaults (see PlannerOptions)
	viper.SetDefault("planner.startAtSpawn", true)
	viper.SetDefault("planner.endAtExtraction", true)
	viper.SetDefault("planner.useRaiderKey", false)
	viper.SetDefault("planner.maxTargets", 8)
	viper.SetDefault("planner.algorithm", string(AlgorithmExtractionAware))
	viper.SetDefault("planner.extractionProximity", 100.0)
	viper.SetDefault("planner.maxTimeBeforeExtraction", 300.0)
	viper.SetDefault("planner.avoidDangerousAreas", false)
	viper.SetDefault("planner.dangerRadius", 50.0)
	viper.SetDefault("planner.arcDangerWeight", 2.0)
	viper.SetDefault("planner.avoidPlayerInterception", true)
	viper.SetDefault("planner.playerMovementSpeed", 5.0)
	viper.SetDefault("planner.roundDuration", 1800.0)
	viper.SetDefault("planner.lateSpawnWindowStart", 960.0)
	viper.SetDefault("planner.lateSpawnWindowEnd", 1200.0)
	viper.SetDefault("planner.spawnAvoidanceRadius", 250.0)
	viper.SetDefault("planner.dangerCorridorRadius", 0.0) // 0 = 1.5 x dangerRadius
	viper.SetDefault("planner.clusterRadius", 150.0)

	// result store
	viper.SetDefault("db.driver", "sqlite")
	viper.SetDefault("db.path", "./lootrun.db")
	viper.SetDefault("db.memory", false) // run SQLite in memory, dump to db.path on exit
	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "lootrun")

	// run metrics
	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "")
	viper.SetDefault("influx.org", "lootrun-metrics")

	// telemetry
	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.endpoint", "")
	viper.SetDefault("otel.insecure", true)
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}
