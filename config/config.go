package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Pipeline
	Portal    PortalConfig
	Planner   PlannerConfig
	Tracker   TrackerConfig
	Scheduler SchedulerConfig
	Storage   StorageConfig

	// LLM Provider Abstraction
	LLM LLMConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// PortalConfig configures the homework portal extractor.
// Without a complete set of credentials the fixture backend is used.
type PortalConfig struct {
	LoginURL      string
	DashboardURL  string
	CustomerID    string
	Username      string
	Password      string
	Headless      bool
	ChromePath    string
	LoginAttempts int
	TileAttempts  int
	TableAttempts int
	PollInterval  time.Duration
	FixturePath   string
}

// HasCredentials reports whether every login field is set.
func (p PortalConfig) HasCredentials() bool {
	return p.CustomerID != "" && p.Username != "" && p.Password != ""
}

type PlannerConfig struct {
	Timezone     string
	Timeout      time.Duration
	FocusMinutes int
	BreakMinutes int
}

// TrackerConfig configures the Google Calendar tracker. An empty CredentialsPath disables syncing.
type TrackerConfig struct {
	CredentialsPath   string
	CalendarID        string
	Timezone          string
	RequestsPerMinute int
	RetryAttempts     int
	IndexSize         int
	IndexTTL          time.Duration
}

type SchedulerConfig struct {
	Interval   time.Duration
	RunOnStart bool
}

// StorageConfig selects persistence. An empty SQLitePath keeps everything in memory.
type StorageConfig struct {
	SQLitePath string
}

// LLMConfig holds configuration for the LLM provider abstraction layer
type LLMConfig struct {
	Providers       []ProviderConfig `yaml:"providers"`
	FallbackEnabled bool             `yaml:"fallback_enabled"`
	RetryAttempts   int              `yaml:"retry_attempts"`
	RetryDelay      string           `yaml:"retry_delay"`
	MaxTotalTimeout string           `yaml:"max_total_timeout"`
}

// ProviderConfig holds configuration for a single LLM provider
type ProviderConfig struct {
	Name     string `yaml:"name"`
	Enabled  bool   `yaml:"enabled"`
	Priority int    `yaml:"priority"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Model    string `yaml:"model"`
	Timeout  string `yaml:"timeout"`
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/homework-planner/.
// CONFIG_PATH names an explicit file instead.
func Load() (*Config, error) {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("./config")
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/homework-planner/")
	}

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Portal
	cfg.Portal.LoginURL = viper.GetString("portal.login_url")
	cfg.Portal.DashboardURL = viper.GetString("portal.dashboard_url")
	cfg.Portal.CustomerID = viper.GetString("portal.customer_id")
	cfg.Portal.Username = viper.GetString("portal.username")
	cfg.Portal.Password = viper.GetString("portal.password")
	cfg.Portal.Headless = viper.GetBool("portal.headless")
	cfg.Portal.ChromePath = viper.GetString("portal.chrome_path")
	cfg.Portal.LoginAttempts = viper.GetInt("portal.login_attempts")
	cfg.Portal.TileAttempts = viper.GetInt("portal.tile_attempts")
	cfg.Portal.TableAttempts = viper.GetInt("portal.table_attempts")
	cfg.Portal.PollInterval = viper.GetDuration("portal.poll_interval")
	cfg.Portal.FixturePath = viper.GetString("portal.fixture_path")
	if v := viper.GetString("axios_customer_id"); v != "" {
		cfg.Portal.CustomerID = v
	}
	if v := viper.GetString("axios_username"); v != "" {
		cfg.Portal.Username = v
	}
	if v := viper.GetString("axios_password"); v != "" {
		cfg.Portal.Password = v
	}

	// Planner
	cfg.Planner.Timezone = viper.GetString("planner.timezone")
	cfg.Planner.Timeout = viper.GetDuration("planner.timeout")
	cfg.Planner.FocusMinutes = viper.GetInt("planner.focus_minutes")
	cfg.Planner.BreakMinutes = viper.GetInt("planner.break_minutes")

	// Tracker
	cfg.Tracker.CredentialsPath = viper.GetString("tracker.credentials_path")
	cfg.Tracker.CalendarID = viper.GetString("tracker.calendar_id")
	cfg.Tracker.Timezone = viper.GetString("tracker.timezone")
	cfg.Tracker.RequestsPerMinute = viper.GetInt("tracker.requests_per_minute")
	cfg.Tracker.RetryAttempts = viper.GetInt("tracker.retry_attempts")
	cfg.Tracker.IndexSize = viper.GetInt("tracker.index_size")
	cfg.Tracker.IndexTTL = viper.GetDuration("tracker.index_ttl")
	if googleCreds := viper.GetString("google_calendar_credentials"); googleCreds != "" {
		cfg.Tracker.CredentialsPath = googleCreds
	}

	// Scheduler & storage
	cfg.Scheduler.Interval = viper.GetDuration("scheduler.interval")
	cfg.Scheduler.RunOnStart = viper.GetBool("scheduler.run_on_start")
	cfg.Storage.SQLitePath = viper.GetString("storage.sqlite_path")

	// LLM Provider Abstraction
	cfg.LLM.FallbackEnabled = viper.GetBool("llm.fallback_enabled")
	cfg.LLM.RetryAttempts = viper.GetInt("llm.retry_attempts")
	cfg.LLM.RetryDelay = viper.GetString("llm.retry_delay")
	cfg.LLM.MaxTotalTimeout = viper.GetString("llm.max_total_timeout")

	// Load provider configurations
	if viper.IsSet("llm.providers") {
		providersRaw := viper.Get("llm.providers")
		if providersList, ok := providersRaw.([]interface{}); ok {
			for _, p := range providersList {
				if providerMap, ok := p.(map[string]interface{}); ok {
					cfg.LLM.Providers = append(cfg.LLM.Providers, ProviderConfig{
						Name:     getStringFromMap(providerMap, "name"),
						Enabled:  getBoolFromMap(providerMap, "enabled"),
						Priority: getIntFromMap(providerMap, "priority"),
						APIKey:   expandEnvVar(getStringFromMap(providerMap, "api_key")),
						BaseURL:  getStringFromMap(providerMap, "base_url"),
						Model:    getStringFromMap(providerMap, "model"),
						Timeout:  getStringFromMap(providerMap, "timeout"),
					})
				}
			}
		}
	}

	// A bare PERPLEXITY_API_KEY is enough to enable the default provider.
	if key := viper.GetString("perplexity_api_key"); key != "" && len(cfg.LLM.Providers) == 0 {
		cfg.LLM.Providers = append(cfg.LLM.Providers, ProviderConfig{
			Name:     "perplexity",
			Enabled:  true,
			Priority: 1,
			APIKey:   key,
			Model:    "sonar",
		})
	}

	// No providers is valid: the planner falls back to its deterministic plan.
	if len(cfg.LLM.Providers) > 0 {
		if err := ValidateLLMConfig(&cfg.LLM); err != nil {
			return nil, fmt.Errorf("invalid llm config: %w", err)
		}
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("portal.headless", true)
	viper.SetDefault("portal.login_attempts", 20)
	viper.SetDefault("portal.tile_attempts", 15)
	viper.SetDefault("portal.table_attempts", 30)
	viper.SetDefault("portal.poll_interval", "1s")

	viper.SetDefault("planner.timezone", "UTC")
	viper.SetDefault("planner.timeout", "90s")
	viper.SetDefault("planner.focus_minutes", 60)
	viper.SetDefault("planner.break_minutes", 10)

	viper.SetDefault("tracker.calendar_id", "primary")
	viper.SetDefault("tracker.timezone", "UTC")
	viper.SetDefault("tracker.requests_per_minute", 60)
	viper.SetDefault("tracker.retry_attempts", 3)
	viper.SetDefault("tracker.index_size", 512)
	viper.SetDefault("tracker.index_ttl", "24h")

	viper.SetDefault("scheduler.interval", "15m")
	viper.SetDefault("scheduler.run_on_start", true)

	// LLM defaults
	viper.SetDefault("llm.fallback_enabled", true)
	viper.SetDefault("llm.retry_attempts", 3)
	viper.SetDefault("llm.retry_delay", "1s")
	viper.SetDefault("llm.max_total_timeout", "60s")
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if value == "" {
		return value
	}

	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		if envValue := viper.GetString(envVar); envValue != "" {
			return envValue
		}
		if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
	}

	return value
}

// ValidateLLMConfig validates the LLM configuration
func ValidateLLMConfig(cfg *LLMConfig) error {
	if len(cfg.Providers) == 0 {
		return fmt.Errorf("no LLM providers configured")
	}

	enabledCount := 0
	priorityMap := make(map[int]bool)

	for i, provider := range cfg.Providers {
		if provider.Name == "" {
			return fmt.Errorf("provider %d: name is required", i)
		}
		if provider.Model == "" {
			return fmt.Errorf("provider %s: model is required", provider.Name)
		}

		if provider.Enabled {
			enabledCount++

			if provider.Priority <= 0 {
				return fmt.Errorf("provider %s: priority must be positive", provider.Name)
			}
			if priorityMap[provider.Priority] {
				return fmt.Errorf("provider %s: duplicate priority %d", provider.Name, provider.Priority)
			}
			priorityMap[provider.Priority] = true
		}
	}

	if enabledCount == 0 {
		return fmt.Errorf("no enabled LLM providers")
	}

	return nil
}

// Helper functions to safely extract values from map[string]interface{}
func getStringFromMap(m map[string]interface{}, key string) string {
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func getBoolFromMap(m map[string]interface{}, key string) bool {
	if val, ok := m[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return false
}

func getIntFromMap(m map[string]interface{}, key string) int {
	if val, ok := m[key]; ok {
		if i, ok := val.(int); ok {
			return i
		}
		if f, ok := val.(float64); ok {
			return int(f)
		}
	}
	return 0
}
