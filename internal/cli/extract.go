package cli

import (
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract and normalize assignments, then print them",
	Long: `Extract logs into the portal (or reads the fixture when no credentials are
configured), normalizes every row, records changes and prints the resulting
assignment list as JSON.`,
	Args: cobra.NoArgs,
	RunE: runExtractCmd,
}

func init() {
	RootCmd.AddCommand(extractCmd)
}

func runExtractCmd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := loadApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	list, err := a.Orchestrator.FetchAssignments(ctx, true)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), list)
}
