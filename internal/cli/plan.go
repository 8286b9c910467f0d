package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"homework-planner/internal/model"
	"homework-planner/internal/planner"
)

var (
	planStart   string
	planEnd     string
	planNotes   string
	planFocus   int
	planBreak   int
	planRefresh bool
	planCurrent bool
	planDate    string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate a daily plan from the stored assignments",
	Long: `Plan builds a daily study plan from the stored assignments and prints it as JSON.
Assignments are extracted first when none are stored or --refresh is set.

Use --current to print a stored plan instead of generating one.

Examples:
  homeworkctl plan
  homeworkctl plan --start 2026-10-15T15:00:00+02:00 --end 2026-10-15T19:00:00+02:00
  homeworkctl plan --focus 45 --break 15 --notes "piano lesson at 17:00"
  homeworkctl plan --current --date 2026-10-15`,
	Args: cobra.NoArgs,
	RunE: runPlanCmd,
}

func init() {
	planCmd.Flags().StringVar(&planStart, "start", "", "earliest block start (RFC3339)")
	planCmd.Flags().StringVar(&planEnd, "end", "", "latest block end (RFC3339)")
	planCmd.Flags().StringVar(&planNotes, "notes", "", "free-form notes for the planner")
	planCmd.Flags().IntVar(&planFocus, "focus", 0, "preferred focus block length in minutes")
	planCmd.Flags().IntVar(&planBreak, "break", 0, "preferred break length in minutes")
	planCmd.Flags().BoolVar(&planRefresh, "refresh", false, "extract assignments before planning")
	planCmd.Flags().BoolVar(&planCurrent, "current", false, "print the stored plan instead of generating one")
	planCmd.Flags().StringVar(&planDate, "date", "", "plan date for --current (YYYY-MM-DD, default latest)")
	RootCmd.AddCommand(planCmd)
}

func runPlanCmd(cmd *cobra.Command, _ []string) error {
	c, err := planConstraints()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	a, err := loadApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if planCurrent {
		plan, err := a.Planner.CurrentPlan(ctx, planDate)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), plan)
	}

	var list []model.Assignment
	if !planRefresh {
		if list, err = a.Assignments.List(ctx); err != nil {
			return err
		}
	}
	if len(list) == 0 {
		if list, err = a.Orchestrator.FetchAssignments(ctx, true); err != nil {
			return err
		}
	}

	plan, err := a.Orchestrator.GeneratePlan(ctx, list, c)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), plan)
}

func planConstraints() (planner.Constraints, error) {
	c := planner.Constraints{
		FocusMinutes: planFocus,
		BreakMinutes: planBreak,
		Notes:        planNotes,
	}
	if planFocus < 0 || planBreak < 0 {
		return c, fmt.Errorf("--focus and --break must not be negative")
	}

	var err error
	if planStart != "" {
		if c.StartAt, err = time.Parse(time.RFC3339, planStart); err != nil {
			return c, fmt.Errorf("invalid --start: %w", err)
		}
	}
	if planEnd != "" {
		if c.EndBy, err = time.Parse(time.RFC3339, planEnd); err != nil {
			return c, fmt.Errorf("invalid --end: %w", err)
		}
	}
	if !c.StartAt.IsZero() && !c.EndBy.IsZero() && !c.EndBy.After(c.StartAt) {
		return c, fmt.Errorf("--end must be after --start")
	}
	return c, nil
}
