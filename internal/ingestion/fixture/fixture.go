package fixture

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"homework-planner/internal/ingestion"
	"homework-planner/internal/ingestion/parser"
	"homework-planner/internal/model"
	"homework-planner/pkg/datemath"
	pkgLog "homework-planner/pkg/log"
)

// File is the on-disk fixture format. Rows and TableHTML may be combined; table rows come first.
type File struct {
	Rows          []model.RawAssignmentRow `yaml:"rows"`
	TableHTML     string                   `yaml:"table_html"`
	TableSelector string                   `yaml:"table_selector"`
}

// Extractor serves assignments from a fixture instead of the live portal.
type Extractor struct {
	l    pkgLog.Logger
	path string
	file *File
	now  func() time.Time
}

// New reads the fixture at path on every Extract. An empty path serves the built-in sample.
func New(l pkgLog.Logger, path string, now func() time.Time) *Extractor {
	if now == nil {
		now = time.Now
	}
	return &Extractor{l: l, path: path, now: now}
}

// NewFromFile serves a fixed fixture.
func NewFromFile(l pkgLog.Logger, f File) *Extractor {
	return &Extractor{l: l, file: &f, now: time.Now}
}

// Extract ignores the credentials.
func (e *Extractor) Extract(ctx context.Context, _ ingestion.Credentials) ([]model.RawAssignmentRow, error) {
	f, err := e.load()
	if err != nil {
		return nil, err
	}

	var rows []model.RawAssignmentRow
	if f.TableHTML != "" {
		parsed, err := parser.ParseTable(f.TableHTML, f.TableSelector)
		if err != nil {
			return nil, &ingestion.ParseError{Stage: "fixture", Err: err}
		}
		rows = append(rows, parsed...)
	}
	rows = append(rows, f.Rows...)

	e.l.Infof(ctx, "Extract: fixture served %d rows", len(rows))
	return rows, nil
}

func (e *Extractor) load() (File, error) {
	if e.file != nil {
		return *e.file, nil
	}
	if e.path == "" {
		return Sample(e.now()), nil
	}

	data, err := os.ReadFile(e.path)
	if err != nil {
		return File{}, fmt.Errorf("failed to read fixture %s: %w", e.path, err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, &ingestion.ParseError{Stage: "fixture", Message: e.path, Err: err}
	}
	return f, nil
}

// Sample is a small fixture due over the next few days.
func Sample(now time.Time) File {
	due := func(days int) string {
		return now.UTC().AddDate(0, 0, days).Format(datemath.PortalDateLayout)
	}
	return File{Rows: []model.RawAssignmentRow{
		{Subject: "Matematica", Title: "Esercizi pag. 45 n. 1-10", DueDate: due(1)},
		{Subject: "Storia", Title: "Studiare capitolo 4: la rivoluzione francese", DueDate: due(2)},
		{Subject: "Inglese", Title: "Reading comprehension unit 6", DueDate: due(3)},
	}}
}
