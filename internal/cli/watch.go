package cli

import (
	"github.com/spf13/cobra"
)

var watchSchedule string

func init() {
	watchCmd.Flags().StringVar(&watchSchedule, "schedule", "@every 6h", "cron expression or descriptor (@daily, @every 6h)")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Periodically check for a new Agoric SDK version",
	Long: "Runs the install/update check on a schedule and logs when a new version is available. " +
		"It never runs the setup script; use install for that.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return appCtx.Updater(false).Watch(cmd.Context(), watchSchedule)
	},
}
