package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"homework-planner/config"
	"homework-planner/internal/assignment"
	assignmentRepo "homework-planner/internal/assignment/repository"
	assignmentMemory "homework-planner/internal/assignment/repository/memory"
	assignmentSQLite "homework-planner/internal/assignment/repository/sqlite"
	assignmentUC "homework-planner/internal/assignment/usecase"
	"homework-planner/internal/ingestion"
	"homework-planner/internal/ingestion/fixture"
	"homework-planner/internal/ingestion/portal"
	"homework-planner/internal/orchestrator"
	orchestratorUC "homework-planner/internal/orchestrator/usecase"
	"homework-planner/internal/planner"
	plannerRepo "homework-planner/internal/planner/repository"
	plannerMemory "homework-planner/internal/planner/repository/memory"
	plannerSQLite "homework-planner/internal/planner/repository/sqlite"
	plannerUC "homework-planner/internal/planner/usecase"
	"homework-planner/internal/snapshot"
	syncpkg "homework-planner/internal/sync"
	syncRepo "homework-planner/internal/sync/repository"
	syncMemory "homework-planner/internal/sync/repository/memory"
	syncSQLite "homework-planner/internal/sync/repository/sqlite"
	gcalTracker "homework-planner/internal/sync/tracker/gcalendar"
	syncUC "homework-planner/internal/sync/usecase"
	"homework-planner/pkg/browser"
	"homework-planner/pkg/datemath"
	"homework-planner/pkg/gcalendar"
	"homework-planner/pkg/llmprovider"
	pkgLog "homework-planner/pkg/log"
	pkgSqlite "homework-planner/pkg/sqlite"
)

// App is the assembled pipeline.
type App struct {
	Extractor    ingestion.Extractor
	Credentials  ingestion.Credentials
	Assignments  assignment.UseCase
	Planner      planner.UseCase
	Sync         syncpkg.UseCase
	Store        *snapshot.Store
	Orchestrator orchestrator.UseCase

	db *sql.DB
}

// Build wires every component from cfg. Optional integrations that are not
// configured degrade to their offline counterparts instead of failing.
func Build(ctx context.Context, l pkgLog.Logger, cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, errors.New("app: nil config")
	}

	a := &App{Store: snapshot.NewStore()}

	dm, err := datemath.NewParser(cfg.Planner.Timezone)
	if err != nil {
		l.Warnf(ctx, "app.Build: invalid timezone %q, falling back to UTC: %v", cfg.Planner.Timezone, err)
		dm, _ = datemath.NewParser("UTC")
	}

	aRepo, pRepo, sRepo, err := a.repositories(ctx, l, cfg.Storage)
	if err != nil {
		return nil, err
	}

	a.Extractor, a.Credentials = extractor(ctx, l, cfg.Portal)
	a.Assignments = assignmentUC.New(l, aRepo, nil)
	a.Planner = plannerUC.New(l, pRepo, plannerUC.Options{
		LLM:      llmManager(ctx, l, &cfg.LLM),
		DateMath: dm,
		Timeout:  cfg.Planner.Timeout,
	})
	a.Sync = syncUC.New(l, tracker(ctx, l, cfg.Tracker), sRepo, nil)

	a.Orchestrator, err = orchestratorUC.New(l, orchestratorUC.Deps{
		Extractor:   a.Extractor,
		Credentials: a.Credentials,
		Assignments: a.Assignments,
		Planner:     a.Planner,
		Sync:        a.Sync,
		Store:       a.Store,
	}, orchestratorUC.Options{
		Interval:   cfg.Scheduler.Interval,
		RunOnStart: cfg.Scheduler.RunOnStart,
		Constraints: planner.Constraints{
			FocusMinutes: cfg.Planner.FocusMinutes,
			BreakMinutes: cfg.Planner.BreakMinutes,
		},
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("app: orchestrator: %w", err)
	}

	return a, nil
}

// Close releases the database handle, if any.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) repositories(ctx context.Context, l pkgLog.Logger, cfg config.StorageConfig) (
	aRepo assignmentRepo.Repository, pRepo plannerRepo.Repository, sRepo syncRepo.Repository, err error,
) {
	if cfg.SQLitePath == "" {
		l.Info(ctx, "app.Build: no sqlite_path configured, state is kept in memory")
		return assignmentMemory.New(), plannerMemory.New(), syncMemory.New(), nil
	}

	db, err := pkgSqlite.Open(cfg.SQLitePath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("app: open sqlite %s: %w", cfg.SQLitePath, err)
	}
	a.db = db
	l.Infof(ctx, "app.Build: sqlite store at %s", cfg.SQLitePath)
	return assignmentSQLite.New(db, l), plannerSQLite.New(db, l), syncSQLite.New(db, l), nil
}

func extractor(ctx context.Context, l pkgLog.Logger, cfg config.PortalConfig) (ingestion.Extractor, ingestion.Credentials) {
	creds := ingestion.Credentials{
		CustomerID: cfg.CustomerID,
		Username:   cfg.Username,
		Password:   cfg.Password,
	}
	if !cfg.HasCredentials() {
		l.Warn(ctx, "app.Build: portal credentials missing, serving fixture assignments")
		return fixture.New(l, cfg.FixturePath, nil), creds
	}

	pc := portal.DefaultConfig()
	if cfg.LoginURL != "" {
		pc.LoginURL = cfg.LoginURL
	}
	if cfg.DashboardURL != "" {
		pc.DashboardURL = cfg.DashboardURL
	}
	if cfg.LoginAttempts > 0 {
		pc.LoginAttempts = cfg.LoginAttempts
	}
	if cfg.TileAttempts > 0 {
		pc.TileAttempts = cfg.TileAttempts
	}
	if cfg.TableAttempts > 0 {
		pc.TableAttempts = cfg.TableAttempts
	}
	if cfg.PollInterval > 0 {
		pc.PollInterval = cfg.PollInterval
	}

	b := browser.New(browser.Config{Headless: cfg.Headless, ExecPath: cfg.ChromePath})
	return portal.New(l, pc, portal.ChromeLauncher(b), nil), creds
}

func llmManager(ctx context.Context, l pkgLog.Logger, cfg *config.LLMConfig) *llmprovider.Manager {
	if len(cfg.Providers) == 0 {
		l.Warn(ctx, "app.Build: no LLM providers configured, plans use the offline fallback")
		return nil
	}
	providers, err := llmprovider.InitializeProviders(cfg)
	if err != nil {
		l.Warnf(ctx, "app.Build: LLM providers unavailable, plans use the offline fallback: %v", err)
		return nil
	}
	mc, err := llmprovider.ManagerConfig(cfg)
	if err != nil {
		l.Warnf(ctx, "app.Build: invalid LLM manager config, using defaults: %v", err)
		mc = &llmprovider.Config{FallbackEnabled: true, RetryAttempts: 1}
	}
	for _, p := range providers {
		l.Infof(ctx, "app.Build: LLM provider %s ready", p.Name())
	}
	return llmprovider.NewManager(providers, mc, l)
}

func tracker(ctx context.Context, l pkgLog.Logger, cfg config.TrackerConfig) syncpkg.Tracker {
	if cfg.CredentialsPath == "" {
		l.Warn(ctx, "app.Build: tracker credentials missing, sync is skipped")
		return nil
	}
	client, err := gcalendar.NewClientFromCredentialsFile(ctx, cfg.CredentialsPath)
	if err != nil {
		l.Warnf(ctx, "app.Build: Google Calendar not available, sync is skipped: %v", err)
		l.Warn(ctx, "app.Build: run `homeworkctl auth` to generate token.json")
		return nil
	}
	l.Info(ctx, "app.Build: Google Calendar tracker initialized")
	return gcalTracker.New(l, client, gcalTracker.Config{
		CalendarID:        cfg.CalendarID,
		Timezone:          cfg.Timezone,
		RequestsPerMinute: cfg.RequestsPerMinute,
		RetryAttempts:     cfg.RetryAttempts,
		IndexSize:         cfg.IndexSize,
		IndexTTL:          cfg.IndexTTL,
	})
}
