package gcalendar

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
)

// Authorizer runs the one-time OAuth desktop flow that produces token.json.
type Authorizer struct {
	config    *oauth2.Config
	tokenPath string
}

// NewAuthorizer reads OAuth desktop credentials. The token is written next to them.
func NewAuthorizer(credentialsPath string) (*Authorizer, error) {
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file %q: %w", credentialsPath, err)
	}
	cfg, err := google.ConfigFromJSON(data, calendar.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("%q is not an OAuth desktop credentials file: %w", credentialsPath, err)
	}
	return &Authorizer{config: cfg, tokenPath: tokenPathFor(credentialsPath)}, nil
}

// AuthCodeURL is the consent page the user opens in a browser.
func (a *Authorizer) AuthCodeURL() string {
	return a.config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
}

// TokenPath is where Exchange saves the token.
func (a *Authorizer) TokenPath() string {
	return a.tokenPath
}

// Exchange trades the pasted authorization code for a token and saves it.
func (a *Authorizer) Exchange(ctx context.Context, code string) error {
	tok, err := a.config.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	return saveToken(a.tokenPath, tok)
}

func saveToken(path string, tok *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(tok); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
