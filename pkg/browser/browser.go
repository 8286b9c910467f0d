package browser

import (
	"context"
	"fmt"

	"github.com/chromedp/chromedp"
)

// Browser launches disposable chromedp sessions.
type Browser struct {
	cfg Config
}

// New creates a Browser.
func New(cfg Config) *Browser {
	if cfg.ActionTimeout <= 0 {
		cfg.ActionTimeout = defaultActionTimeout
	}
	return &Browser{cfg: cfg}
}

// NewSession starts a fresh browser process with a single tab.
// The session owns the process and must be closed by the caller.
func (b *Browser) NewSession(ctx context.Context) (*Session, error) {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts, chromedp.Flag("headless", b.cfg.Headless))
	if b.cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(b.cfg.ExecPath))
	}
	if b.cfg.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(b.cfg.UserAgent))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.WithoutCancel(ctx), opts...)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)

	// First Run starts the browser.
	if err := chromedp.Run(tabCtx); err != nil {
		cancelTab()
		cancelAlloc()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	return &Session{
		ctx:         tabCtx,
		cancelTab:   cancelTab,
		cancelAlloc: cancelAlloc,
		timeout:     b.cfg.ActionTimeout,
	}, nil
}
