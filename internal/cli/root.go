package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"agoricup/internal/app"
)

var (
	flagDebug    bool
	flagSettings string

	// appCtx is built before every command runs.
	appCtx *app.Context
	// newContext is swapped in tests.
	newContext = app.New
)

var rootCmd = &cobra.Command{
	Use:   "agoricup",
	Short: "agoricup – install and update the Agoric SDK CLI",
	Long: "agoricup clones, builds and links the Agoric SDK command line (agoric), " +
		"and on later runs checks whether a newer version is available.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := newContext(app.Options{
			Debug:        flagDebug,
			SettingsPath: flagSettings,
			Stdout:       cmd.OutOrStdout(),
			Stderr:       cmd.ErrOrStderr(),
		})
		if err != nil {
			return err
		}
		appCtx = c
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return appCtx.Close()
	},
	// Default action: install or update
	RunE:          runInstall,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "log at debug level")
	rootCmd.PersistentFlags().StringVar(&flagSettings, "settings", "", "path to settings.yaml")
	addInstallFlags(rootCmd)
}

// Execute runs the CLI.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
