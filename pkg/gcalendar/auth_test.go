package gcalendar_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"homework-planner/pkg/gcalendar"
)

func TestNewAuthorizer(t *testing.T) {
	dir := t.TempDir()
	credsPath := filepath.Join(dir, "google-credentials.json")
	if err := os.WriteFile(credsPath, []byte(installedCreds), 0o600); err != nil {
		t.Fatal(err)
	}

	a, err := gcalendar.NewAuthorizer(credsPath)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if a.TokenPath() != filepath.Join(dir, "token.json") {
		t.Errorf("token path = %s", a.TokenPath())
	}

	url := a.AuthCodeURL()
	if !strings.Contains(url, "client_id=test-client-id.apps.googleusercontent.com") {
		t.Errorf("auth url misses client id: %s", url)
	}
	if !strings.Contains(url, "access_type=offline") {
		t.Errorf("auth url misses offline access: %s", url)
	}
}

func TestNewAuthorizerErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := gcalendar.NewAuthorizer(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"broken":true}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := gcalendar.NewAuthorizer(bad); err == nil {
		t.Error("expected error for non-OAuth credentials")
	}
}
