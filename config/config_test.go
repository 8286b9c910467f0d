package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestValidateLLMConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     LLMConfig
		wantErr bool
	}{
		{
			name: "single perplexity provider",
			cfg: LLMConfig{Providers: []ProviderConfig{
				{Name: "perplexity", Enabled: true, Priority: 1, APIKey: "k", Model: "sonar"},
			}},
		},
		{
			name: "duplicate priority",
			cfg: LLMConfig{Providers: []ProviderConfig{
				{Name: "perplexity", Enabled: true, Priority: 1, Model: "sonar"},
				{Name: "gemini", Enabled: true, Priority: 1, Model: "gemini-2.5-flash"},
			}},
			wantErr: true,
		},
		{
			name: "missing model",
			cfg: LLMConfig{Providers: []ProviderConfig{
				{Name: "perplexity", Enabled: true, Priority: 1},
			}},
			wantErr: true,
		},
		{
			name: "all disabled",
			cfg: LLMConfig{Providers: []ProviderConfig{
				{Name: "gemini", Enabled: false, Priority: 1, Model: "gemini-2.5-flash"},
			}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLLMConfig(&tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLLMConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPortalHasCredentials(t *testing.T) {
	if (PortalConfig{CustomerID: "c", Username: "u"}).HasCredentials() {
		t.Error("HasCredentials() = true without password")
	}
	if !(PortalConfig{CustomerID: "c", Username: "u", Password: "p"}).HasCredentials() {
		t.Error("HasCredentials() = false with every field set")
	}
}

func TestLoadFromConfigPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "homework.yaml")
	body := `
portal:
  customer_id: "9999"
  username: student
  password: secret
scheduler:
  interval: 5m
storage:
  sqlite_path: /tmp/homework.db
llm:
  providers:
    - name: perplexity
      enabled: true
      priority: 1
      api_key: k
      model: sonar
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.Portal.HasCredentials() {
		t.Errorf("portal credentials not loaded: %+v", cfg.Portal)
	}
	if cfg.Scheduler.Interval != 5*time.Minute {
		t.Errorf("scheduler interval = %v", cfg.Scheduler.Interval)
	}
	if cfg.Storage.SQLitePath != "/tmp/homework.db" {
		t.Errorf("sqlite path = %q", cfg.Storage.SQLitePath)
	}
	if cfg.Planner.FocusMinutes != 60 {
		t.Errorf("default focus minutes = %d", cfg.Planner.FocusMinutes)
	}
	if len(cfg.LLM.Providers) != 1 || cfg.LLM.Providers[0].Model != "sonar" {
		t.Errorf("providers = %+v", cfg.LLM.Providers)
	}
}
