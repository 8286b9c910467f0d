package log_test

import (
	"context"
	"testing"

	"homework-planner/pkg/log"
)

func TestTraceID(t *testing.T) {
	ctx := log.WithTraceID(context.Background(), "cycle-1")
	if got := log.TraceID(ctx); got != "cycle-1" {
		t.Errorf("expected trace id cycle-1, got %q", got)
	}
	if got := log.TraceID(context.Background()); got != "" {
		t.Errorf("expected empty trace id, got %q", got)
	}
}

func TestInit(t *testing.T) {
	tests := []struct {
		name string
		cfg  log.ZapConfig
	}{
		{"console debug", log.ZapConfig{Level: "debug", Mode: "debug", Encoding: "console", ColorEnabled: true}},
		{"json production", log.ZapConfig{Level: "info", Mode: "production", Encoding: "json"}},
		{"bad level", log.ZapConfig{Level: "loud", Mode: "debug", Encoding: "console"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := log.Init(tt.cfg)
			if l == nil {
				t.Fatal("expected logger")
			}
			l.Infof(log.WithTraceID(context.Background(), "x"), "hello %s", "world")
		})
	}

	log.NewNop().Error(context.Background(), "discarded")
}
