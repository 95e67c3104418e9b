// lootrun plans loot runs: fetch a map snapshot, pick targets, and print an
// ordered route with danger and rival-interception guidance.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/raidtools/lootrun/internal/cache"
	"github.com/raidtools/lootrun/internal/config"
	"github.com/raidtools/lootrun/internal/database"
	"github.com/raidtools/lootrun/internal/format"
	"github.com/raidtools/lootrun/internal/geo"
	"github.com/raidtools/lootrun/internal/influx"
	"github.com/raidtools/lootrun/internal/logging"
	"github.com/raidtools/lootrun/internal/mapdata"
	"github.com/raidtools/lootrun/internal/otel"
	"github.com/raidtools/lootrun/internal/planner"
	"github.com/raidtools/lootrun/internal/storage"
	"github.com/raidtools/lootrun/internal/storage/gormstore"
	"github.com/raidtools/lootrun/internal/storage/memory"
	"github.com/raidtools/lootrun/internal/util"
	"github.com/raidtools/lootrun/internal/worker"
	"github.com/raidtools/lootrun/pkg/core"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configDir   = pflag.String("config", ".", "directory containing lootrun.cfg.json")
		maps        = pflag.StringSlice("map", nil, "map ID(s) to plan, repeatable or comma separated")
		bundleFile  = pflag.String("bundle-file", "", "plan from a local bundle JSON file instead of the map data service")
		start       = pflag.String("start", "", `override start position as "x,y" or "x,y,z"`)
		output      = pflag.String("output", "text", "output format: text, json, svg, wkt")
		outFile     = pflag.String("out", "", "write output to file instead of stdout (per-map suffix added for multiple maps)")
		save        = pflag.Bool("save", false, "persist the planned run to the result store")
		list        = pflag.Bool("list", false, "list persisted plans and exit")
		show        = pflag.Uint("show", 0, "print one persisted plan by ID and exit")
		concurrency = pflag.Int("concurrency", 2, "parallel planning jobs")
	)
	pflag.Int("max-targets", 0, "maximum loot stops")
	pflag.String("algorithm", "", "selection algorithm: nearest-neighbor, greedy, extraction-aware")
	pflag.Bool("use-raider-key", false, "prefer raider-key extractions")
	pflag.Bool("avoid-danger", false, "penalize dangerous candidates and corridors")
	pflag.Bool("no-interception", false, "disable rival interception modeling")
	pflag.Parse()

	if err := config.Load(*configDir); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v (continuing on defaults)\n", err)
	}
	bindFlag("planner.maxTargets", "max-targets")
	bindFlag("planner.algorithm", "algorithm")
	bindFlag("planner.useRaiderKey", "use-raider-key")
	bindFlag("planner.avoidDangerousAreas", "avoid-danger")

	// logging: console + session file, optional otel bridge
	sessionStart := time.Now()
	logsDir := viper.GetString("logsDir")
	_ = os.MkdirAll(logsDir, 0755)

	logFile, err := os.OpenFile(
		logging.LogFilePath(logsDir, "lootrun", sessionStart),
		os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
	} else {
		defer logFile.Close()
	}

	otelProvider, err := newOtelProvider(logsDir, sessionStart)
	if err != nil {
		fmt.Fprintf(os.Stderr, "otel setup failed: %v\n", err)
		return 1
	}
	defer otelProvider.Shutdown(context.Background())

	slogMgr := logging.NewSlogManager()
	slogMgr.Setup(logFile, viper.GetString("logLevel"), otelProvider.LoggerProvider())
	defer slogMgr.Flush(context.Background())

	sessionID := sessionStart.Format("20060102_150405")
	logger := slog.New(logging.NewContextHandler(slogMgr.Logger().Handler(), func() []slog.Attr {
		return []slog.Attr{slog.String("session", sessionID)}
	}))

	zlog := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	opts := config.PlannerOptionsFromViper()
	if flagChanged("no-interception") {
		opts.AvoidPlayerInterception = false
	}
	if *start != "" {
		pos, err := geo.Position3DFromString(util.TrimQuotes(*start))
		if err != nil {
			logger.Error("Invalid --start coordinates", "value", *start, "error", err)
			return 1
		}
		opts.StartAtCoordinates = &pos
		opts.Normalize()
	}

	// result store, only opened when a subcommand needs it
	var store storage.Backend
	needStore := *save || *list || *show > 0
	if needStore {
		store, err = newBackend(zlog)
		if err != nil {
			logger.Error("Failed to open result store", "error", err)
			return 1
		}
		if err := store.Init(); err != nil {
			logger.Error("Failed to initialize result store", "error", err)
			return 1
		}
		defer store.Close()
	}

	if *list {
		return listPlans(store)
	}
	if *show > 0 {
		return showPlan(store, *show, *output, *outFile)
	}

	if len(*maps) == 0 && *bundleFile == "" {
		fmt.Fprintln(os.Stderr, "nothing to do: pass --map, --bundle-file, --list, or --show")
		return 2
	}

	// metrics, optional
	var metrics *influx.Manager
	if viper.GetBool("influx.enabled") {
		metrics = influx.NewManager(zlog, filepath.Join(logsDir, "influx_backup.gz"))
		if err := metrics.Connect(); err != nil {
			logger.Warn("Run metrics disabled", "error", err)
			metrics = nil
		} else {
			defer metrics.Close()
		}
	}

	ctx := context.Background()
	fetch := newFetcher(logger, metrics, *bundleFile)

	var saveTo storage.Backend
	if *save {
		saveTo = store
	}
	mgr := worker.NewManager(worker.Dependencies{
		Logger:    logger,
		Fetch:     fetch,
		Planner:   planner.New(logger, opts),
		Algorithm: string(opts.Algorithm),
		Store:     saveTo,
		Metrics:   metrics,
	}, *concurrency)

	jobs := make([]worker.Job, 0, len(*maps)+1)
	for _, id := range *maps {
		jobs = append(jobs, worker.Job{MapID: id})
	}
	if *bundleFile != "" && len(jobs) == 0 {
		jobs = append(jobs, worker.Job{MapID: "local"})
	}

	results := mgr.Run(ctx, jobs)

	var planned, failed cache.SafeCounter
	for _, res := range results {
		if res.Err != nil {
			logger.Error("Planning failed", "mapId", res.MapID, "error", res.Err)
			failed.Inc()
			continue
		}
		planned.Inc()
		if res.PlanID > 0 {
			logger.Info("Plan persisted", "mapId", res.MapID, "planId", res.PlanID)
		}
		if err := render(ctx, fetch, res, *output, outputPath(*outFile, res.MapID, len(results))); err != nil {
			logger.Error("Output failed", "mapId", res.MapID, "error", err)
			failed.Inc()
		}
	}

	logger.Info("Done", "planned", planned.Value(), "failed", failed.Value(),
		"elapsed", time.Since(sessionStart).Round(time.Millisecond))
	if failed.Value() > 0 {
		return 1
	}
	return 0
}

func bindFlag(key, flag string) {
	if flagChanged(flag) {
		_ = viper.BindPFlag(key, pflag.Lookup(flag))
	}
}

func flagChanged(name string) bool {
	f := pflag.Lookup(name)
	return f != nil && f.Changed
}

func newOtelProvider(logsDir string, sessionStart time.Time) (*otel.Provider, error) {
	cfg := otel.Config{
		Enabled:      viper.GetBool("otel.enabled"),
		ServiceName:  "lootrun-planner",
		BatchTimeout: 5 * time.Second,
		Endpoint:     viper.GetString("otel.endpoint"),
		Insecure:     viper.GetBool("otel.insecure"),
	}
	if cfg.Enabled {
		f, err := os.OpenFile(
			logging.LogFilePath(logsDir, "lootrun.otel", sessionStart),
			os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open otel log file: %w", err)
		}
		cfg.LogWriter = f
	}
	return otel.New(cfg)
}

// newBackend selects the result store by configured driver.
func newBackend(zlog zerolog.Logger) (storage.Backend, error) {
	switch driver := viper.GetString("db.driver"); driver {
	case "sqlite", "postgres":
		return gormstore.New(database.NewManager(zlog)), nil
	case "memory":
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", driver)
	}
}

// newFetcher builds the snapshot loader: local file when given, otherwise the
// map data service behind an in-memory cache.
func newFetcher(logger *slog.Logger, metrics *influx.Manager, bundleFile string) worker.FetchFunc {
	latLng := viper.GetBool("mapdata.latLngInput")
	if bundleFile != "" {
		return func(ctx context.Context, mapID string) (*core.MapBundle, error) {
			return mapdata.LoadBundleFile(bundleFile, latLng)
		}
	}

	client := mapdata.New(viper.GetString("mapdata.baseUrl"), viper.GetString("mapdata.apiKey"), latLng)
	bundles := cache.NewBundleCache(0)

	return func(ctx context.Context, mapID string) (*core.MapBundle, error) {
		if bundle, ok := bundles.Get(mapID); ok {
			return bundle, nil
		}
		fetchStart := time.Now()
		bundle, err := client.FetchBundle(ctx, mapID)
		if err != nil {
			return nil, err
		}
		bundles.Put(mapID, bundle)
		logger.Info("Fetched map bundle", "mapId", mapID,
			"waypoints", len(bundle.Waypoints), "pois", len(bundle.POIs), "arcs", len(bundle.Arcs))
		if metrics != nil {
			point := influx.MapDataPoint(mapID, len(bundle.Waypoints), len(bundle.POIs), len(bundle.Arcs),
				time.Since(fetchStart), false)
			_ = metrics.WritePoint(ctx, "lootrun_mapdata", point)
		}
		return bundle, nil
	}
}

func outputPath(base, mapID string, total int) string {
	if base == "" {
		return ""
	}
	if total <= 1 {
		return base
	}
	ext := filepath.Ext(base)
	return base[:len(base)-len(ext)] + "." + mapID + ext
}

// render writes one planned run in the requested format.
func render(ctx context.Context, fetch worker.FetchFunc, res worker.Result, output, path string) error {
	out := os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	switch output {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res.Path)
	case "svg":
		// the bundle comes back from cache, not a second fetch
		bundle, err := fetch(ctx, res.MapID)
		if err != nil {
			bundle = nil
		}
		_, err = fmt.Fprint(out, format.RenderSVG(bundle, res.Path))
		return err
	case "wkt":
		_, err := fmt.Fprintln(out, geo.RouteWKT(res.Path.Waypoints))
		return err
	default:
		return format.WriteText(out, res.Path)
	}
}

func listPlans(store storage.Backend) int {
	summaries, err := store.ListPlans("", 50)
	if err != nil {
		fmt.Fprintf(os.Stderr, "list failed: %v\n", err)
		return 1
	}
	if len(summaries) == 0 {
		fmt.Println("No persisted plans.")
		return 0
	}
	fmt.Printf("%-5s %-20s %-22s %-18s %9s %9s %5s\n",
		"ID", "CREATED", "MAP", "ALGORITHM", "DIST", "TIME", "WPTS")
	for _, s := range summaries {
		fmt.Printf("%-5d %-20s %-22s %-18s %9s %9s %5d\n",
			s.ID, s.CreatedAt.Format("2006-01-02 15:04:05"), s.MapName, s.Algorithm,
			util.FormatUnits(s.TotalDistance), util.FormatSeconds(s.EstimatedTime), s.WaypointCount)
	}
	return 0
}

func showPlan(store storage.Backend, id uint, output, outFile string) int {
	path, err := store.GetPlan(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "show failed: %v\n", err)
		return 1
	}
	res := worker.Result{MapID: path.MapID, Path: path}
	noFetch := func(context.Context, string) (*core.MapBundle, error) {
		return nil, fmt.Errorf("no bundle for persisted plan")
	}
	if err := render(context.Background(), noFetch, res, output, outFile); err != nil {
		fmt.Fprintf(os.Stderr, "output failed: %v\n", err)
		return 1
	}
	return 0
}
