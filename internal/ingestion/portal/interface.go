package portal

import (
	"context"

	"homework-planner/pkg/browser"
)

// Session is a disposable browsing session.
type Session interface {
	Navigate(ctx context.Context, url string) error
	Fill(ctx context.Context, selector, value string) error
	Click(ctx context.Context, selector string) error
	Location(ctx context.Context) (string, error)
	VisibleText(ctx context.Context, selector string) (string, error)
	Visible(ctx context.Context, loc browser.Locator) (bool, error)
	Activate(ctx context.Context, loc browser.Locator) (bool, error)
	Frames(ctx context.Context) ([]browser.Frame, error)
	VisibleHTML(ctx context.Context, frame browser.Frame, selector string) (string, bool, error)
	Close() error
}

// Launcher opens a new Session per extraction.
type Launcher interface {
	NewSession(ctx context.Context) (Session, error)
}

// LauncherFunc adapts a function to Launcher.
type LauncherFunc func(ctx context.Context) (Session, error)

func (f LauncherFunc) NewSession(ctx context.Context) (Session, error) { return f(ctx) }

// ChromeLauncher launches chromedp sessions.
func ChromeLauncher(b *browser.Browser) Launcher {
	return LauncherFunc(func(ctx context.Context) (Session, error) {
		s, err := b.NewSession(ctx)
		if err != nil {
			return nil, err
		}
		return s, nil
	})
}
