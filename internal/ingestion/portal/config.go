package portal

import (
	"time"

	"homework-planner/internal/ingestion/parser"
	"homework-planner/pkg/browser"
)

const (
	DefaultLoginURL     = "https://registrofamiglie.axioscloud.it/Pages/SD/SD_Login.aspx"
	DefaultDashboardURL = "https://registrofamiglie.axioscloud.it/Pages/SD/SD_Dashboard.aspx"
)

// Selectors are the login form fields.
type Selectors struct {
	CustomerID  string
	Username    string
	Password    string
	Submit      string
	ErrorBanner string
}

// Config drives one portal extraction.
type Config struct {
	LoginURL        string
	DashboardURL    string
	LoginMarker     string
	DashboardMarker string
	Selectors       Selectors

	// TileMarker is any element proving the dashboard tiles rendered.
	TileMarker browser.Locator
	// TileLocators are tried in order; the first visible match is activated.
	TileLocators  []browser.Locator
	TableSelector string

	LoginAttempts int
	TileAttempts  int
	TableAttempts int
	PollInterval  time.Duration

	// DisableDashboardFallback stops the direct dashboard navigation tried when the login poll runs out without a verdict.
	DisableDashboardFallback bool
}

// DefaultConfig targets the Axios family register.
func DefaultConfig() Config {
	return Config{
		LoginURL:        DefaultLoginURL,
		DashboardURL:    DefaultDashboardURL,
		LoginMarker:     "SD_Login.aspx",
		DashboardMarker: "SD_Dashboard.aspx",
		Selectors: Selectors{
			CustomerID:  "#customerid",
			Username:    `input[name="username"]`,
			Password:    `input[name="password"]`,
			Submit:      `button[type="submit"]`,
			ErrorBanner: ".alert-danger:not(.display-hide)",
		},
		TileMarker: browser.Locator{CSS: `.family-tile, [data-action="FAMILY_REGISTRO_CLASSE"]`},
		TileLocators: []browser.Locator{
			{CSS: `li.family-tile[data-action="FAMILY_REGISTRO_CLASSE"]`},
			{CSS: `[data-action="FAMILY_REGISTRO_CLASSE"]`},
			{Text: "Registro di Classe"},
			{CSS: ".btn-box-axios", Text: "Registro di Classe"},
		},
		TableSelector: parser.DefaultTableSelector,
		LoginAttempts: 20,
		TileAttempts:  15,
		TableAttempts: 30,
		PollInterval:  time.Second,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.LoginURL == "" {
		c.LoginURL = d.LoginURL
	}
	if c.DashboardURL == "" {
		c.DashboardURL = d.DashboardURL
	}
	if c.LoginMarker == "" {
		c.LoginMarker = d.LoginMarker
	}
	if c.DashboardMarker == "" {
		c.DashboardMarker = d.DashboardMarker
	}
	if c.Selectors == (Selectors{}) {
		c.Selectors = d.Selectors
	}
	if c.TileMarker == (browser.Locator{}) {
		c.TileMarker = d.TileMarker
	}
	if len(c.TileLocators) == 0 {
		c.TileLocators = d.TileLocators
	}
	if c.TableSelector == "" {
		c.TableSelector = d.TableSelector
	}
	if c.LoginAttempts <= 0 {
		c.LoginAttempts = d.LoginAttempts
	}
	if c.TileAttempts <= 0 {
		c.TileAttempts = d.TileAttempts
	}
	if c.TableAttempts <= 0 {
		c.TableAttempts = d.TableAttempts
	}
	if c.PollInterval <= 0 {
		c.PollInterval = d.PollInterval
	}
	return c
}
