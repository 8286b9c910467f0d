package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"homework-planner/config"
	"homework-planner/internal/app"
	"homework-planner/pkg/log"
)

var (
	Version = "dev"

	configPath string
	verbose    bool
)

// RootCmd is the homeworkctl base command.
var RootCmd = &cobra.Command{
	Use:     "homeworkctl",
	Version: Version,
	Short:   "Run the homework planner pipeline from the command line",
	Long: `homeworkctl runs single steps of the homework planner without the HTTP server.

Configuration is read the same way as the API server. Use --config to point
at an explicit file.

Examples:
  homeworkctl run
  homeworkctl extract --config config/config.yaml
  homeworkctl plan --start 2026-10-15T15:00:00+02:00 --notes "football at 18"
  homeworkctl auth google-credentials.json`,
	SilenceUsage: true,
}

// Execute runs RootCmd until it returns or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return RootCmd.ExecuteContext(ctx)
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: config.yaml in ./config, . or /etc/homework-planner)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log pipeline progress to stderr")
}

// loadApp builds the pipeline. Logs go to stderr so stdout stays parseable.
func loadApp(ctx context.Context) (*app.App, error) {
	if configPath != "" {
		if err := os.Setenv("CONFIG_PATH", configPath); err != nil {
			return nil, err
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	level := "warn"
	if verbose {
		level = "debug"
	}
	logger := log.Init(log.ZapConfig{
		Level:    level,
		Mode:     cfg.Logger.Mode,
		Encoding: cfg.Logger.Encoding,
		Output:   log.OutputStderr,
	})
	return app.Build(ctx, logger, cfg)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
