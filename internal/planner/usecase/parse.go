package usecase

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"homework-planner/internal/model"
	"homework-planner/internal/planner"
)

type wireBlock struct {
	StartTime           string `json:"startTime"`
	EndTime             string `json:"endTime"`
	Activity            string `json:"activity"`
	Type                string `json:"type"`
	RelatedAssignmentID string `json:"relatedAssignmentId"`
}

type wirePlan struct {
	Date      string      `json:"date"`
	Reasoning string      `json:"reasoning"`
	Blocks    []wireBlock `json:"blocks"`
}

// extractJSONObject returns the span from the first '{' to the last '}' of text.
// Models often wrap the object in prose or fences; the greedy span keeps nested objects intact.
func extractJSONObject(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

// parsePlan validates the reply against the schema and the block invariants.
// known maps assignment IDs the plan may reference.
func parsePlan(text string, known map[string]struct{}) (model.DailyPlan, []string, error) {
	raw, ok := extractJSONObject(text)
	if !ok {
		return model.DailyPlan{}, nil, fmt.Errorf("%w (reply was %d bytes)", planner.ErrEmptyResponse, len(text))
	}

	result, err := gojsonschema.Validate(planSchemaLoader, gojsonschema.NewStringLoader(raw))
	if err != nil {
		return model.DailyPlan{}, nil, &planner.PlanValidationError{
			Details: []string{"reply is not valid JSON: " + err.Error()},
			Err:     err,
		}
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return model.DailyPlan{}, nil, &planner.PlanValidationError{
			Details: details,
			Err:     fmt.Errorf("schema: %s", strings.Join(details, "; ")),
		}
	}

	var wire wirePlan
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return model.DailyPlan{}, nil, &planner.PlanValidationError{Details: []string{err.Error()}, Err: err}
	}

	return toPlan(wire, known)
}

func toPlan(wire wirePlan, known map[string]struct{}) (model.DailyPlan, []string, error) {
	var (
		details  []string
		warnings []string
	)

	if _, err := time.Parse(model.PlanDateLayout, wire.Date); err != nil {
		details = append(details, fmt.Sprintf("date: %q is not a calendar day", wire.Date))
	}

	blocks := make([]model.ScheduleBlock, 0, len(wire.Blocks))
	for i, wb := range wire.Blocks {
		start, err := time.Parse(time.RFC3339, wb.StartTime)
		if err != nil {
			details = append(details, fmt.Sprintf("blocks.%d.startTime: %v", i, err))
			continue
		}
		end, err := time.Parse(time.RFC3339, wb.EndTime)
		if err != nil {
			details = append(details, fmt.Sprintf("blocks.%d.endTime: %v", i, err))
			continue
		}
		if !end.After(start) {
			details = append(details, fmt.Sprintf("blocks.%d: endTime %s is not after startTime %s", i, wb.EndTime, wb.StartTime))
			continue
		}

		b := model.ScheduleBlock{
			StartTime: start,
			EndTime:   end,
			Activity:  strings.TrimSpace(wb.Activity),
			Kind:      model.BlockKind(wb.Type),
		}
		if wb.RelatedAssignmentID != "" {
			if _, ok := known[wb.RelatedAssignmentID]; ok && b.Kind == model.BlockKindFocus {
				b.RelatedAssignmentID = wb.RelatedAssignmentID
			} else {
				warnings = append(warnings, fmt.Sprintf("blocks.%d: dropped relatedAssignmentId %q", i, wb.RelatedAssignmentID))
			}
		}
		blocks = append(blocks, b)
	}

	sort.SliceStable(blocks, func(i, j int) bool {
		return blocks[i].StartTime.Before(blocks[j].StartTime)
	})
	for i := 1; i < len(blocks); i++ {
		if blocks[i].StartTime.Before(blocks[i-1].EndTime) {
			details = append(details, fmt.Sprintf("blocks overlap: %q (%s) starts before %q (%s) ends",
				blocks[i].Activity, blocks[i].StartTime.Format(time.RFC3339),
				blocks[i-1].Activity, blocks[i-1].EndTime.Format(time.RFC3339)))
		}
	}

	if len(details) > 0 {
		return model.DailyPlan{}, warnings, &planner.PlanValidationError{
			Details: details,
			Err:     fmt.Errorf("semantic: %s", strings.Join(details, "; ")),
		}
	}

	return model.DailyPlan{
		Date:      wire.Date,
		Reasoning: wire.Reasoning,
		Blocks:    blocks,
	}, warnings, nil
}
