package usecase

import (
	"fmt"
	"time"

	"homework-planner/internal/model"
)

const (
	fallbackBlockLength = time.Hour
	fallbackReasoning   = "Fallback plan: no language model is configured, so each pending assignment gets one hour in input order."
)

// fallbackPlan schedules one sequential one-hour focus block per pending assignment from start.
func (uc *implUseCase) fallbackPlan(pending []model.Assignment, start time.Time) model.DailyPlan {
	blocks := make([]model.ScheduleBlock, 0, len(pending))
	cursor := start
	for _, a := range pending {
		end := cursor.Add(fallbackBlockLength)
		blocks = append(blocks, model.ScheduleBlock{
			StartTime:           cursor,
			EndTime:             end,
			Activity:            fmt.Sprintf("%s: %s", a.Subject, a.Title),
			Kind:                model.BlockKindFocus,
			RelatedAssignmentID: a.ID,
		})
		cursor = end
	}

	return model.DailyPlan{
		Date:      uc.dateMath.PlanDate(start),
		Reasoning: fallbackReasoning,
		Blocks:    blocks,
	}
}
