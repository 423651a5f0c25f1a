// Package wire provides dependency injection for the dispatch board console.
// It creates singleton services with lazy initialization.
package wire

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/example/dispatchboard/internal/adapters/api"
	cliadapter "github.com/example/dispatchboard/internal/adapters/cli"
	"github.com/example/dispatchboard/internal/adapters/filesystem"
	"github.com/example/dispatchboard/internal/adapters/objectstore"
	"github.com/example/dispatchboard/internal/adapters/sqlite"
	"github.com/example/dispatchboard/internal/adapters/tmux"
	"github.com/example/dispatchboard/internal/app"
	"github.com/example/dispatchboard/internal/config"
	"github.com/example/dispatchboard/internal/core/reconcile"
	"github.com/example/dispatchboard/internal/ctxutil"
	"github.com/example/dispatchboard/internal/db"
	"github.com/example/dispatchboard/internal/logging"
	"github.com/example/dispatchboard/internal/operator"
	"github.com/example/dispatchboard/internal/ports/primary"
	"github.com/example/dispatchboard/internal/ports/secondary"
	"github.com/example/dispatchboard/internal/store"
)

var (
	cfg      *config.Config
	logger   *zap.Logger
	registry *prometheus.Registry
	identity operator.Identity

	dashboardService primary.DashboardService
	statusService    primary.StatusService
	missionService   primary.MissionService
	squadService     primary.SquadService
	shiftService     primary.ShiftService
	logService       primary.LogService

	once sync.Once
)

// HomeDir returns the directory holding .board/. BOARD_HOME overrides the
// user's home directory.
func HomeDir() string {
	if dir := os.Getenv("BOARD_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

// Config returns the effective configuration.
func Config() *config.Config {
	once.Do(initServices)
	return cfg
}

// Logger returns the shared logger.
func Logger() *zap.Logger {
	once.Do(initServices)
	return logger
}

// Registry returns the metrics registry.
func Registry() *prometheus.Registry {
	once.Do(initServices)
	return registry
}

// Context returns ctx tagged with the console operator.
func Context(ctx context.Context) context.Context {
	once.Do(initServices)
	return ctxutil.WithOperator(ctx, identity.String())
}

// DashboardService returns the singleton DashboardService instance.
func DashboardService() primary.DashboardService {
	once.Do(initServices)
	return dashboardService
}

// Poller returns a new poller over the dashboard. onPoll may be nil.
func Poller(onPoll func(app.PollEvent)) *app.Poller {
	once.Do(initServices)
	return app.NewPoller(dashboardService, cfg.PollInterval(), logger, onPoll)
}

// Close releases the cache database and flushes the logger.
func Close() {
	_ = db.Close()
	if logger != nil {
		_ = logger.Sync()
	}
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	home := HomeDir()

	var err error
	cfg, err = config.Load(home)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err = logging.NewLogger(cfg.LogLevel, cfg.LogFormat, "dispatchboard")
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	identity = operator.Resolve(cfg.Operator)

	// Local cache database
	db.SetPath(cfg.ResolveCachePath(home))
	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Secondary adapters
	backend := api.NewClient(api.Options{
		BaseURL:   cfg.ServerURL,
		SessionID: cfg.SessionID,
		Timeout:   cfg.Timeout(),
	}, logger.Named("api"))
	cache := sqlite.NewSnapshotCacheRepository(database)
	journal := sqlite.NewJournalRepository(database)
	alerter := tmux.NewAlerter(os.Stderr)
	sink, err := newExportSink(home)
	if err != nil {
		log.Fatalf("failed to initialize export sink: %v", err)
	}

	registry = prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := app.NewMetrics(registry)

	st := store.New(reconcile.Options{GraceWindow: cfg.GraceWindow()})
	focus := app.NewFocusTracker()

	cacheKey := cfg.SessionID
	if cacheKey == "" {
		cacheKey = cfg.ServerURL
	}
	dashboard := app.NewDashboardService(app.DashboardDeps{
		Backend:  backend,
		Store:    st,
		Cache:    cache,
		CacheKey: cacheKey,
		Focus:    focus,
		Metrics:  metrics,
		Logger:   logger.Named("dashboard"),
	})

	// Create effect executor; writes trigger a dashboard refresh
	executor := app.NewEffectExecutor(app.ExecutorDeps{
		Backend:   backend,
		Journal:   journal,
		Alerter:   alerter,
		Refresher: dashboard,
		Metrics:   metrics,
		Logger:    logger.Named("executor"),
	})

	// Create services (primary ports implementation)
	dashboardService = dashboard
	statusService = app.NewStatusService(st, executor, logger.Named("status"))
	missionService = app.NewMissionService(backend, st, executor, focus, logger.Named("mission"))
	squadService = app.NewSquadService(backend, st, executor, logger.Named("squad"))
	shiftService = app.NewShiftService(backend, st, sink, executor, logger.Named("shift"))
	logService = app.NewLogService(backend, journal, executor)
}

func newExportSink(home string) (secondary.ExportSink, error) {
	exp := cfg.Export
	if exp.Driver == config.ExportS3 {
		return objectstore.NewExportSink(context.Background(), objectstore.Config{
			Bucket:       exp.Bucket,
			Prefix:       exp.Prefix,
			Region:       exp.Region,
			Endpoint:     exp.Endpoint,
			UsePathStyle: exp.UsePathStyle,
		})
	}
	dir := exp.Dir
	if dir != "" && !filepath.IsAbs(dir) {
		dir = filepath.Join(config.Dir(home), dir)
	}
	return filesystem.NewExportSink(dir)
}

// BoardAdapter returns a new BoardAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func BoardAdapter() *cliadapter.BoardAdapter {
	return BoardAdapterWithOutput(os.Stdout)
}

// BoardAdapterWithOutput returns a new BoardAdapter writing to the given output.
func BoardAdapterWithOutput(out io.Writer) *cliadapter.BoardAdapter {
	once.Do(initServices)
	return cliadapter.NewBoardAdapter(dashboardService, out)
}

// StatusAdapter returns a new StatusAdapter prompting on stdin.
func StatusAdapter() *cliadapter.StatusAdapter {
	once.Do(initServices)
	return cliadapter.NewStatusAdapter(statusService, os.Stdin, os.Stdout)
}

// MissionAdapter returns a new MissionAdapter reading stdin and writing stdout.
func MissionAdapter() *cliadapter.MissionAdapter {
	once.Do(initServices)
	return cliadapter.NewMissionAdapter(missionService, os.Stdin, os.Stdout)
}

// SquadAdapter returns a new SquadAdapter writing to stdout.
func SquadAdapter() *cliadapter.SquadAdapter {
	once.Do(initServices)
	return cliadapter.NewSquadAdapter(squadService, os.Stdout)
}

// ShiftAdapter returns a new ShiftAdapter writing to stdout.
func ShiftAdapter() *cliadapter.ShiftAdapter {
	once.Do(initServices)
	return cliadapter.NewShiftAdapter(shiftService, os.Stdout)
}

// LogAdapter returns a new LogAdapter writing to stdout.
func LogAdapter() *cliadapter.LogAdapter {
	once.Do(initServices)
	return cliadapter.NewLogAdapter(logService, os.Stdout)
}
