package gcalendar

import "time"

// CreateEventRequest is the input for creating a Google Calendar event.
type CreateEventRequest struct {
	CalendarID  string
	Summary     string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	Timezone    string // e.g. "Europe/Rome"

	// PrivateProperties are stored as private extended properties and can be searched on.
	PrivateProperties map[string]string
}

// PatchEventRequest changes the text and window of an existing event.
type PatchEventRequest struct {
	CalendarID  string
	EventID     string
	Summary     string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	Timezone    string
}

// Event is a simplified representation of a Google Calendar event.
type Event struct {
	ID                string
	Summary           string
	Description       string
	HtmlLink          string
	Status            string
	StartTime         time.Time
	EndTime           time.Time
	PrivateProperties map[string]string
}

// Cancelled reports whether the event was deleted on the calendar side.
func (e Event) Cancelled() bool {
	return e.Status == "cancelled"
}

// ListEventsRequest is the input for listing Google Calendar events.
type ListEventsRequest struct {
	CalendarID string
	TimeMin    time.Time
	TimeMax    time.Time
	MaxResults int64
}
