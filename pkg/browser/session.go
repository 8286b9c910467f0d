package browser

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
)

// Session is one browser tab. All methods are bounded by the action timeout and by the caller's ctx.
type Session struct {
	ctx         context.Context
	cancelTab   context.CancelFunc
	cancelAlloc context.CancelFunc
	timeout     time.Duration
	closeOnce   sync.Once
}

func (s *Session) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	return chromedp.Run(runCtx, actions...)
}

// Navigate loads url in the tab.
func (s *Session) Navigate(ctx context.Context, url string) error {
	if err := s.run(ctx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	return nil
}

// Fill types value into the first element matching selector.
func (s *Session) Fill(ctx context.Context, selector, value string) error {
	err := s.run(ctx,
		chromedp.WaitVisible(selector, chromedp.ByQuery),
		chromedp.Clear(selector, chromedp.ByQuery),
		chromedp.SendKeys(selector, value, chromedp.ByQuery),
	)
	if err != nil {
		return fmt.Errorf("fill %s: %w", selector, err)
	}
	return nil
}

// Click clicks the first element matching selector.
func (s *Session) Click(ctx context.Context, selector string) error {
	if err := s.run(ctx, chromedp.Click(selector, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("click %s: %w", selector, err)
	}
	return nil
}

// Location returns the current URL.
func (s *Session) Location(ctx context.Context) (string, error) {
	var url string
	if err := s.run(ctx, chromedp.Location(&url)); err != nil {
		return "", fmt.Errorf("location: %w", err)
	}
	return url, nil
}

// VisibleText returns the trimmed text of selector, or "" when it is absent or hidden.
func (s *Session) VisibleText(ctx context.Context, selector string) (string, error) {
	var text string
	if err := s.run(ctx, chromedp.Evaluate(visibleTextScript(selector), &text)); err != nil {
		return "", fmt.Errorf("visible text %s: %w", selector, err)
	}
	return text, nil
}

// Visible reports whether loc matches a visible element in the top document.
func (s *Session) Visible(ctx context.Context, loc Locator) (bool, error) {
	var found bool
	if err := s.run(ctx, chromedp.Evaluate(locatorScript(loc, false), &found)); err != nil {
		return false, fmt.Errorf("visible %s: %w", loc, err)
	}
	return found, nil
}

// Activate clicks the first visible element matching loc and reports whether one was found.
func (s *Session) Activate(ctx context.Context, loc Locator) (bool, error) {
	var clicked bool
	if err := s.run(ctx, chromedp.Evaluate(locatorScript(loc, true), &clicked)); err != nil {
		return false, fmt.Errorf("activate %s: %w", loc, err)
	}
	return clicked, nil
}

// Frames enumerates the top document and every reachable nested frame.
// Cross-origin frames are not reachable from page script and are omitted. Reaching them
// would mean attaching to their out-of-process targets; the class register is served same-origin.
func (s *Session) Frames(ctx context.Context) ([]Frame, error) {
	var frames []Frame
	if err := s.run(ctx, chromedp.Evaluate(framesScript, &frames)); err != nil {
		return nil, fmt.Errorf("frames: %w", err)
	}
	return frames, nil
}

// VisibleHTML returns the outer HTML of selector inside frame when it is visible there.
func (s *Session) VisibleHTML(ctx context.Context, frame Frame, selector string) (string, bool, error) {
	var res frameHTML
	if err := s.run(ctx, chromedp.Evaluate(frameHTMLScript(frame.Path, selector), &res)); err != nil {
		return "", false, fmt.Errorf("frame %v html %s: %w", frame.Path, selector, err)
	}
	return res.HTML, res.Visible, nil
}

// Close shuts the tab and the browser process. It is safe to call more than once.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.cancelTab()
		s.cancelAlloc()
	})
	return nil
}
