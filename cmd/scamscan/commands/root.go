package commands

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rgdevment/scam-scanner/internal/app"
	"github.com/rgdevment/scam-scanner/internal/platform/config"
	"github.com/rgdevment/scam-scanner/internal/platform/logger"
)

var (
	configPath string
	verbose    bool
	appCtx     *app.App
)

func Execute() error {
	return execute(newRootCmd())
}

// execute runs root and closes the app the command built, whether or not the
// command succeeded.
func execute(root *cobra.Command) error {
	defer func() {
		if appCtx != nil {
			appCtx.Close()
			appCtx = nil
		}
	}()
	return root.Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "scamscan",
		Short:        "Screen phone numbers against the scam registry",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// A missing .env is normal outside development.
			_ = godotenv.Load()

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			level := "error"
			if verbose {
				level = "debug"
			}
			zl, err := logger.New(level, cfg.Environment)
			if err != nil {
				return err
			}

			appCtx, err = app.Build(cmd.Context(), cfg, zl)
			return err
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", os.Getenv("SCAMSCAN_CONFIG"), "path to a YAML config file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(listCmd(), checkCmd(), reportCmd())
	return root
}

func printf(cmd *cobra.Command, format string, a ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, a...)
}

