package datemath

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var portalDateRe = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)

// Parser converts portal date strings to absolute instants and derives plan days.
type Parser struct {
	location *time.Location
}

// NewParser creates a parser whose calendar-day helpers use the given IANA timezone.
// e.g. "Europe/Rome"
func NewParser(timezone string) (*Parser, error) {
	if timezone == "" {
		timezone = "UTC"
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Parser{location: loc}, nil
}

// ParseDueDate converts "DD/MM/YYYY" into that day at DueHourUTC:00 UTC.
// "12/01/2026" -> 2026-01-12T08:00:00Z
func ParseDueDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	m := portalDateRe.FindStringSubmatch(raw)
	if m == nil {
		return time.Time{}, fmt.Errorf("%w: %q (want DD/MM/YYYY)", ErrInvalidDate, raw)
	}

	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])

	t := time.Date(year, time.Month(month), day, DueHourUTC, 0, 0, 0, time.UTC)
	// time.Date normalises 31/02 into March; reject instead of silently shifting.
	if t.Day() != day || int(t.Month()) != month || t.Year() != year {
		return time.Time{}, fmt.Errorf("%w: %q does not exist", ErrInvalidDate, raw)
	}
	return t, nil
}

// FormatDueDate renders t as an ISO instant, e.g. "2026-01-12T08:00:00Z".
func FormatDueDate(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// PlanDate returns the calendar day of t in the parser's timezone as YYYY-MM-DD.
func (p *Parser) PlanDate(t time.Time) string {
	return t.In(p.location).Format("2006-01-02")
}

// StartOfDay returns midnight of t's day in the parser's timezone.
func (p *Parser) StartOfDay(t time.Time) time.Time {
	t = t.In(p.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.location)
}

// EndOfDay returns 23:59:59 of t's day in the parser's timezone.
func (p *Parser) EndOfDay(t time.Time) time.Time {
	t = t.In(p.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, p.location)
}

// Location returns the parser's timezone.
func (p *Parser) Location() *time.Location {
	return p.location
}
