package app

import (
	"context"
	"path/filepath"
	"testing"

	"homework-planner/config"
	"homework-planner/internal/ingestion/fixture"
	"homework-planner/internal/ingestion/portal"
	"homework-planner/internal/orchestrator"
	pkgLog "homework-planner/pkg/log"
)

func TestBuildOffline(t *testing.T) {
	ctx := context.Background()
	a, err := Build(ctx, pkgLog.NewNop(), &config.Config{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer a.Close()

	if _, ok := a.Extractor.(*fixture.Extractor); !ok {
		t.Errorf("expected fixture extractor without credentials, got %T", a.Extractor)
	}
	if a.db != nil {
		t.Error("no sqlite path should keep state in memory")
	}

	outcome := a.Orchestrator.RunCycle(ctx, orchestrator.TriggerManual)
	if !outcome.Success {
		t.Fatalf("offline cycle failed: %+v", outcome)
	}
	if outcome.Sync == nil || !outcome.Sync.Skipped {
		t.Errorf("sync should be skipped without a tracker: %+v", outcome.Sync)
	}
	if st := a.Orchestrator.Status(ctx); st.Plan == nil || len(st.Assignments) != 3 {
		t.Errorf("unexpected status after cycle: %+v", st)
	}
}

func TestBuildSQLiteAndPortal(t *testing.T) {
	cfg := &config.Config{
		Portal: config.PortalConfig{CustomerID: "9999", Username: "student", Password: "secret"},
		Storage: config.StorageConfig{
			SQLitePath: filepath.Join(t.TempDir(), "homework.db"),
		},
	}

	a, err := Build(context.Background(), pkgLog.NewNop(), cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, ok := a.Extractor.(*portal.Extractor); !ok {
		t.Errorf("expected portal extractor with credentials, got %T", a.Extractor)
	}
	if !a.Credentials.Complete() {
		t.Errorf("credentials not passed through: %+v", a.Credentials)
	}
	if a.db == nil {
		t.Fatal("sqlite path should open a database")
	}
	if err := a.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestBuildNilConfig(t *testing.T) {
	if _, err := Build(context.Background(), pkgLog.NewNop(), nil); err == nil {
		t.Error("expected error for nil config")
	}
}
