package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"homework-planner/internal/orchestrator"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one extract, plan and sync cycle and print its outcome",
	Args:  cobra.NoArgs,
	RunE:  runCycleCmd,
}

func init() {
	RootCmd.AddCommand(runCmd)
}

func runCycleCmd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := loadApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	outcome := a.Orchestrator.RunCycle(ctx, orchestrator.TriggerManual)
	if err := printJSON(cmd.OutOrStdout(), outcome); err != nil {
		return err
	}
	if !outcome.Success {
		return fmt.Errorf("cycle failed at %s: %s", outcome.Stage, outcome.Message)
	}
	return nil
}
