package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"homework-planner/pkg/gcalendar"
)

var authCmd = &cobra.Command{
	Use:   "auth [credentials.json]",
	Short: "Authorize Google Calendar access and save token.json",
	Long: `Auth runs the one-time OAuth desktop flow for the calendar tracker.
Open the printed URL, sign in, then paste the authorization code back here.
token.json is written next to the credentials file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAuthCmd,
}

func init() {
	RootCmd.AddCommand(authCmd)
}

func runAuthCmd(cmd *cobra.Command, args []string) error {
	credsPath := "google-credentials.json"
	if len(args) == 1 {
		credsPath = args[0]
	}

	a, err := gcalendar.NewAuthorizer(credsPath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "1. Open this URL and sign in with the calendar's Google account:")
	fmt.Fprintln(out)
	fmt.Fprintln(out, a.AuthCodeURL())
	fmt.Fprintln(out)
	fmt.Fprint(out, "2. Paste the authorization code and press Enter: ")

	code, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && strings.TrimSpace(code) == "" {
		return fmt.Errorf("failed to read authorization code: %w", err)
	}
	if err := a.Exchange(cmd.Context(), strings.TrimSpace(code)); err != nil {
		return err
	}

	fmt.Fprintf(out, "\ntoken.json saved at %s\n", a.TokenPath())
	return nil
}
