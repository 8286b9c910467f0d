package llmprovider_test

import (
	"errors"
	"testing"
	"time"

	"homework-planner/config"
	"homework-planner/pkg/llmprovider"
	"homework-planner/pkg/log"
)

func TestIntegration_ConfigToManagerFlow(t *testing.T) {
	cfg := &config.LLMConfig{
		Providers: []config.ProviderConfig{
			{Name: "gemini", Enabled: true, Priority: 2, APIKey: "test-gemini-key", Model: "gemini-2.5-flash"},
			{Name: "perplexity", Enabled: true, Priority: 1, APIKey: "test-perplexity-key", Model: "sonar"},
			{Name: "deepseek", Enabled: true, Priority: 3, APIKey: "test-deepseek-key", Model: "deepseek-chat"},
			{Name: "perplexity", Enabled: false, Priority: 4, APIKey: "unused", Model: "sonar-pro"},
		},
		FallbackEnabled: true,
		RetryAttempts:   3,
		RetryDelay:      "1s",
		MaxTotalTimeout: "45s",
	}

	providers, err := llmprovider.InitializeProviders(cfg)
	if err != nil {
		t.Fatalf("InitializeProviders() error = %v", err)
	}
	if len(providers) != 3 {
		t.Fatalf("got %d providers, want 3", len(providers))
	}
	if providers[0].Name() != "perplexity" || providers[1].Name() != "gemini" || providers[2].Name() != "deepseek" {
		t.Errorf("priority order = [%s %s %s], want [perplexity gemini deepseek]",
			providers[0].Name(), providers[1].Name(), providers[2].Name())
	}
	if providers[2].Model() != "deepseek-chat" {
		t.Errorf("deepseek model = %s", providers[2].Model())
	}

	managerCfg, err := llmprovider.ManagerConfig(cfg)
	if err != nil {
		t.Fatalf("ManagerConfig() error = %v", err)
	}
	if managerCfg.RetryDelay != time.Second || managerCfg.MaxTotalTimeout != 45*time.Second {
		t.Errorf("durations = %s / %s", managerCfg.RetryDelay, managerCfg.MaxTotalTimeout)
	}

	manager := llmprovider.NewManager(providers, managerCfg, log.NewNop())
	if !manager.HasProviders() {
		t.Error("HasProviders() = false")
	}
}

func TestIntegration_InitializeProvidersErrors(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.LLMConfig
		wantErr error
	}{
		{
			name:    "nothing enabled",
			cfg:     &config.LLMConfig{Providers: []config.ProviderConfig{{Name: "perplexity", Model: "sonar", APIKey: "k"}}},
			wantErr: llmprovider.ErrNoProvidersConfigured,
		},
		{
			name: "unknown provider only",
			cfg: &config.LLMConfig{Providers: []config.ProviderConfig{
				{Name: "mystery", Enabled: true, Priority: 1, APIKey: "k", Model: "m"},
			}},
		},
		{
			name: "missing key",
			cfg: &config.LLMConfig{Providers: []config.ProviderConfig{
				{Name: "perplexity", Enabled: true, Priority: 1, Model: "sonar"},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := llmprovider.InitializeProviders(tt.cfg)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
