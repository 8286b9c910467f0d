package portal

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"homework-planner/internal/ingestion"
	"homework-planner/internal/ingestion/parser"
	"homework-planner/internal/model"
	"homework-planner/pkg/browser"
)

// Extract logs in, opens the class register and parses its assignments table.
// The browsing session is closed on every return path, panics included.
func (e *Extractor) Extract(ctx context.Context, creds ingestion.Credentials) (rows []model.RawAssignmentRow, err error) {
	if !creds.Complete() {
		return nil, &ingestion.AuthenticationError{Message: "missing credentials", Err: ingestion.ErrMissingCredentials}
	}

	fl, err := newFlow()
	if err != nil {
		return nil, err
	}

	session, err := e.launcher.NewSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open browsing session: %w", err)
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			e.l.Warnf(ctx, "Extract: close session: %v", cerr)
		}
	}()
	defer func() {
		if err != nil {
			_ = fl.fire(EventFail)
			e.l.Warnf(ctx, "Extract: failed in state %s: %v", fl.current(), err)
		}
	}()

	if err = e.login(ctx, session, fl, creds); err != nil {
		return nil, err
	}
	if err = e.openRegister(ctx, session, fl); err != nil {
		return nil, err
	}

	table, err := e.discoverTable(ctx, session, fl)
	if err != nil {
		return nil, err
	}

	rows, err = parser.ParseTable(table, e.cfg.TableSelector)
	if err != nil {
		return nil, &ingestion.ParseError{Stage: "parse", Err: err}
	}
	if err = fl.fire(EventParsed); err != nil {
		return nil, err
	}

	e.l.Infof(ctx, "Extract: parsed %d rows", len(rows))
	return rows, nil
}

func (e *Extractor) login(ctx context.Context, s Session, fl *flow, creds ingestion.Credentials) error {
	sel := e.cfg.Selectors
	if err := s.Navigate(ctx, e.cfg.LoginURL); err != nil {
		return &ingestion.NavigationTimeoutError{Stage: "login", Attempts: 1, Interval: e.cfg.PollInterval, Err: err}
	}
	for _, field := range []struct{ selector, value string }{
		{sel.CustomerID, creds.CustomerID},
		{sel.Username, creds.Username},
		{sel.Password, creds.Password},
	} {
		if err := s.Fill(ctx, field.selector, field.value); err != nil {
			return &ingestion.ParseError{Stage: "login", Message: "login form not usable", Err: err}
		}
	}
	if err := s.Click(ctx, sel.Submit); err != nil {
		return &ingestion.ParseError{Stage: "login", Message: "login form not submittable", Err: err}
	}
	if err := fl.fire(EventSubmitLogin); err != nil {
		return err
	}

	var location string
	for attempt := 1; attempt <= e.cfg.LoginAttempts; attempt++ {
		loc, err := s.Location(ctx)
		if err != nil {
			e.l.Debugf(ctx, "Extract: location attempt %d: %v", attempt, err)
		} else {
			location = loc
		}

		if strings.Contains(location, e.cfg.DashboardMarker) {
			e.l.Infof(ctx, "Extract: dashboard reached after %d attempts", attempt)
			return fl.fire(EventDashboard)
		}
		if strings.Contains(location, e.cfg.LoginMarker) {
			banner, berr := s.VisibleText(ctx, sel.ErrorBanner)
			if berr == nil && strings.TrimSpace(banner) != "" {
				_ = fl.fire(EventRejected)
				return &ingestion.AuthenticationError{Message: strings.TrimSpace(banner)}
			}
		}

		if attempt < e.cfg.LoginAttempts {
			if err := e.waiter.Wait(ctx, e.cfg.PollInterval); err != nil {
				return &ingestion.NavigationTimeoutError{Stage: "login", Attempts: attempt, Interval: e.cfg.PollInterval, LastLocation: location, Err: err}
			}
		}
	}

	timeoutErr := &ingestion.NavigationTimeoutError{
		Stage:        "login",
		Attempts:     e.cfg.LoginAttempts,
		Interval:     e.cfg.PollInterval,
		LastLocation: location,
	}
	if e.cfg.DisableDashboardFallback {
		return timeoutErr
	}

	e.l.Warnf(ctx, "Extract: login poll exhausted at %q, trying dashboard directly", location)
	if err := s.Navigate(ctx, e.cfg.DashboardURL); err != nil {
		timeoutErr.Err = err
		return timeoutErr
	}
	loc, err := s.Location(ctx)
	if err != nil {
		timeoutErr.Err = err
		return timeoutErr
	}
	if !strings.Contains(loc, e.cfg.DashboardMarker) {
		timeoutErr.LastLocation = loc
		return timeoutErr
	}
	return fl.fire(EventDashboard)
}

func (e *Extractor) openRegister(ctx context.Context, s Session, fl *flow) error {
	ready := false
	for attempt := 1; attempt <= e.cfg.TileAttempts; attempt++ {
		visible, err := s.Visible(ctx, e.cfg.TileMarker)
		if err != nil {
			e.l.Debugf(ctx, "Extract: tile marker attempt %d: %v", attempt, err)
		}
		if visible {
			ready = true
			break
		}
		if attempt < e.cfg.TileAttempts {
			if err := e.waiter.Wait(ctx, e.cfg.PollInterval); err != nil {
				return &ingestion.NavigationTimeoutError{Stage: "tile", Attempts: attempt, Interval: e.cfg.PollInterval, Err: err}
			}
		}
	}
	if !ready {
		return &ingestion.NavigationTimeoutError{Stage: "tile", Attempts: e.cfg.TileAttempts, Interval: e.cfg.PollInterval}
	}

	var errs []error
	for _, loc := range e.cfg.TileLocators {
		ok, err := s.Activate(ctx, loc)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if ok {
			e.l.Infof(ctx, "Extract: opened register via %s", loc)
			return fl.fire(EventTile)
		}
	}
	return &ingestion.ParseError{
		Stage:   "tile",
		Message: fmt.Sprintf("none of %d locators matched a visible element", len(e.cfg.TileLocators)),
		Err:     errors.Join(errs...),
	}
}

func (e *Extractor) discoverTable(ctx context.Context, s Session, fl *flow) (string, error) {
	var searched int
	for attempt := 1; attempt <= e.cfg.TableAttempts; attempt++ {
		frames, err := s.Frames(ctx)
		if err != nil {
			e.l.Debugf(ctx, "Extract: frame enumeration attempt %d: %v", attempt, err)
		}
		searched = len(frames)

		var found []browser.Frame
		var markup string
		for _, frame := range frames {
			html, visible, err := s.VisibleHTML(ctx, frame, e.cfg.TableSelector)
			if err != nil || !visible {
				continue
			}
			if len(found) == 0 {
				markup = html
			}
			found = append(found, frame)
		}
		if len(found) > 0 {
			if len(found) > 1 {
				e.l.Warnf(ctx, "Extract: %s visible in %d frames, using %v (%s)", e.cfg.TableSelector, len(found), found[0].Path, found[0].URL)
			}
			e.l.Infof(ctx, "Extract: table found in frame %v (%s) after %d attempts", found[0].Path, found[0].URL, attempt)
			if err := fl.fire(EventTable); err != nil {
				return "", err
			}
			return markup, nil
		}

		if attempt < e.cfg.TableAttempts {
			if err := e.waiter.Wait(ctx, e.cfg.PollInterval); err != nil {
				return "", &ingestion.NavigationTimeoutError{Stage: "table", Attempts: attempt, Interval: e.cfg.PollInterval, Err: err}
			}
		}
	}

	return "", &ingestion.ParseError{
		Stage:   "table",
		Message: fmt.Sprintf("%s not visible in any of %d frames after %d attempts", e.cfg.TableSelector, searched, e.cfg.TableAttempts),
	}
}
