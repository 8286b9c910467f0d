package gcalendar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const defaultCalendarID = "primary"

// Client wraps the Google Calendar API service.
type Client struct {
	service *calendar.Service
}

// NewClientFromCredentialsFile creates a Calendar client from a credentials JSON file path.
// OAuth desktop credentials look for token.json next to the credentials file.
func NewClientFromCredentialsFile(ctx context.Context, credentialsPath string) (*Client, error) {
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	return NewClientFromCredentialsJSON(ctx, data, tokenPathFor(credentialsPath))
}

// NewClientFromCredentialsJSON creates a Calendar client from raw credentials JSON.
// Service Account JSON is tried first, then OAuth installed-app credentials with the token at tokenPath.
func NewClientFromCredentialsJSON(ctx context.Context, credentialsJSON []byte, tokenPath string) (*Client, error) {
	config, err := google.JWTConfigFromJSON(credentialsJSON, calendar.CalendarScope)
	if err == nil {
		svc, svcErr := calendar.NewService(ctx, option.WithTokenSource(config.TokenSource(ctx)))
		if svcErr != nil {
			return nil, fmt.Errorf("failed to create calendar service: %w", svcErr)
		}
		return &Client{service: svc}, nil
	}

	var oauthCreds struct {
		Installed struct {
			ClientID     string   `json:"client_id"`
			ClientSecret string   `json:"client_secret"`
			RedirectURIs []string `json:"redirect_uris"`
		} `json:"installed"`
	}
	if jsonErr := json.Unmarshal(credentialsJSON, &oauthCreds); jsonErr != nil || oauthCreds.Installed.ClientID == "" {
		return nil, fmt.Errorf("unsupported credentials format: %w", err)
	}

	oauthConfig := &oauth2.Config{
		ClientID:     oauthCreds.Installed.ClientID,
		ClientSecret: oauthCreds.Installed.ClientSecret,
		Scopes:       []string{calendar.CalendarScope},
		Endpoint:     google.Endpoint,
	}

	tokenData, tokenErr := os.ReadFile(tokenPath)
	if tokenErr != nil {
		return nil, fmt.Errorf("google credentials are OAuth desktop type but %s is missing: use a Service Account instead", tokenPath)
	}

	var tok oauth2.Token
	if jsonErr := json.Unmarshal(tokenData, &tok); jsonErr != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", tokenPath, jsonErr)
	}

	svc, svcErr := calendar.NewService(ctx, option.WithTokenSource(oauthConfig.TokenSource(ctx, &tok)))
	if svcErr != nil {
		return nil, fmt.Errorf("failed to create calendar service from OAuth token: %w", svcErr)
	}
	return &Client{service: svc}, nil
}

// NewClientFromHTTP creates a Calendar client from a pre-configured HTTP client.
func NewClientFromHTTP(ctx context.Context, httpClient *http.Client) (*Client, error) {
	svc, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	return &Client{service: svc}, nil
}

// CreateEvent creates a new Google Calendar event.
func (c *Client) CreateEvent(ctx context.Context, req CreateEventRequest) (*Event, error) {
	event := &calendar.Event{
		Summary:     req.Summary,
		Description: req.Description,
		Start:       eventTime(req.StartTime, req.Timezone),
		End:         eventTime(req.EndTime, req.Timezone),
	}
	if len(req.PrivateProperties) > 0 {
		event.ExtendedProperties = &calendar.EventExtendedProperties{Private: req.PrivateProperties}
	}

	created, err := c.service.Events.Insert(calendarOrDefault(req.CalendarID), event).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar event: %w", err)
	}
	return toEvent(created), nil
}

// GetEvent fetches one event. A missing event returns an error matched by IsNotFound.
func (c *Client) GetEvent(ctx context.Context, calendarID, eventID string) (*Event, error) {
	ev, err := c.service.Events.Get(calendarOrDefault(calendarID), eventID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get calendar event %s: %w", eventID, err)
	}
	return toEvent(ev), nil
}

// PatchEvent updates the text and window of an event in place.
func (c *Client) PatchEvent(ctx context.Context, req PatchEventRequest) (*Event, error) {
	patch := &calendar.Event{
		Summary:     req.Summary,
		Description: req.Description,
		Start:       eventTime(req.StartTime, req.Timezone),
		End:         eventTime(req.EndTime, req.Timezone),
	}
	updated, err := c.service.Events.Patch(calendarOrDefault(req.CalendarID), req.EventID, patch).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to patch calendar event %s: %w", req.EventID, err)
	}
	return toEvent(updated), nil
}

// FindEventsByPrivateProperty returns live events whose private extended property name equals value.
func (c *Client) FindEventsByPrivateProperty(ctx context.Context, calendarID, name, value string) ([]Event, error) {
	resp, err := c.service.Events.List(calendarOrDefault(calendarID)).
		PrivateExtendedProperty(fmt.Sprintf("%s=%s", name, value)).
		ShowDeleted(false).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to search calendar events: %w", err)
	}
	return toEvents(resp.Items), nil
}

// ListEvents lists events in a time window ordered by start time.
func (c *Client) ListEvents(ctx context.Context, req ListEventsRequest) ([]Event, error) {
	call := c.service.Events.List(calendarOrDefault(req.CalendarID)).
		SingleEvents(true).
		OrderBy("startTime").
		TimeMin(req.TimeMin.Format(time.RFC3339)).
		TimeMax(req.TimeMax.Format(time.RFC3339))
	if req.MaxResults > 0 {
		call = call.MaxResults(req.MaxResults)
	}

	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar events: %w", err)
	}
	return toEvents(resp.Items), nil
}

// IsNotFound reports whether err is a 404/410 from the Calendar API.
func IsNotFound(err error) bool {
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		return gErr.Code == http.StatusNotFound || gErr.Code == http.StatusGone
	}
	return false
}

// IsRetryable reports whether err is a rate limit or server error from the Calendar API.
// Transport errors without a status are treated as retryable.
func IsRetryable(err error) bool {
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		return gErr.Code == http.StatusTooManyRequests || gErr.Code >= 500
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

func calendarOrDefault(id string) string {
	if id == "" {
		return defaultCalendarID
	}
	return id
}

func eventTime(t time.Time, tz string) *calendar.EventDateTime {
	return &calendar.EventDateTime{
		DateTime: t.Format(time.RFC3339),
		TimeZone: tz,
	}
}

func toEvents(items []*calendar.Event) []Event {
	out := make([]Event, 0, len(items))
	for _, it := range items {
		out = append(out, *toEvent(it))
	}
	return out
}

func toEvent(ev *calendar.Event) *Event {
	out := &Event{
		ID:          ev.Id,
		Summary:     ev.Summary,
		Description: ev.Description,
		HtmlLink:    ev.HtmlLink,
		Status:      ev.Status,
		StartTime:   parseEventTime(ev.Start),
		EndTime:     parseEventTime(ev.End),
	}
	if ev.ExtendedProperties != nil {
		out.PrivateProperties = ev.ExtendedProperties.Private
	}
	return out
}

// parseEventTime reads DateTime, falling back to all-day Date values.
func parseEventTime(dt *calendar.EventDateTime) time.Time {
	if dt == nil {
		return time.Time{}
	}
	if dt.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, dt.DateTime); err == nil {
			return t
		}
	}
	if dt.Date != "" {
		if t, err := time.Parse("2006-01-02", dt.Date); err == nil {
			return t
		}
	}
	return time.Time{}
}

func tokenPathFor(credentialsPath string) string {
	return filepath.Join(filepath.Dir(credentialsPath), "token.json")
}
