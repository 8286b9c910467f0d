package ingestion

import (
	"context"

	"homework-planner/internal/model"
)

// Extractor pulls raw assignment rows from a homework source.
type Extractor interface {
	// Extract authenticates against the source and returns every raw assignment row it shows.
	Extract(ctx context.Context, creds Credentials) ([]model.RawAssignmentRow, error)
}
