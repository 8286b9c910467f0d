package usecase

import (
	"encoding/json"
	"fmt"
	"time"

	"homework-planner/internal/model"
	"homework-planner/internal/planner"
)

const systemInstruction = `You are an Academic Secretary. Build a realistic, time-blocked study plan for today from the homework list you are given.
DO NOT search the web or use any external knowledge about the assignments; use ONLY the data provided.
Respond with ONLY raw JSON: no markdown fences, no commentary, no text before or after the object.
The JSON must match the schema in the request exactly.`

type promptAssignment struct {
	ID      string `json:"id"`
	Subject string `json:"subject"`
	Title   string `json:"title"`
	DueDate string `json:"dueDate"`
}

type promptPayload struct {
	CurrentTime string              `json:"currentTime"`
	Timezone    string              `json:"timezone"`
	Assignments []promptAssignment  `json:"assignments"`
	Constraints planner.Constraints `json:"constraints"`
}

// buildUserMessage serialises the pending assignments and constraints with the output contract.
func (uc *implUseCase) buildUserMessage(pending []model.Assignment, c planner.Constraints, now time.Time) (string, error) {
	payload := promptPayload{
		CurrentTime: now.In(uc.dateMath.Location()).Format(time.RFC3339),
		Timezone:    uc.dateMath.Location().String(),
		Assignments: make([]promptAssignment, len(pending)),
		Constraints: c,
	}
	for i, a := range pending {
		payload.Assignments[i] = promptAssignment{
			ID:      a.ID,
			Subject: a.Subject,
			Title:   a.Title,
			DueDate: a.DueDate.UTC().Format(time.RFC3339),
		}
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal planning payload: %w", err)
	}

	return fmt.Sprintf(`Plan the study day for %s.

Input:
%s

Output format: a single JSON object matching this JSON Schema:
%s

Rules:
- "date" is the plan day as YYYY-MM-DD.
- Every block has RFC3339 "startTime" and "endTime" with endTime after startTime; blocks must not overlap.
- "type" is one of "focus", "break", "free".
- Focus blocks working on an assignment set "relatedAssignmentId" to that assignment's id.
- "reasoning" briefly explains the prioritisation.`,
		uc.dateMath.PlanDate(now), string(data), planSchemaJSON), nil
}
