package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"agoricup/internal/system"
)

var logsLines int

func init() {
	logsCmd.Flags().IntVarP(&logsLines, "lines", "n", 50, "number of lines to show (0 for all)")
	rootCmd.AddCommand(logsCmd)
}

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show the agoricup log",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lines, err := system.Tail(appCtx.LogPath, logsLines)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(lines) == 0 {
			fmt.Fprintf(out, "no log entries yet (%s)\n", appCtx.LogPath)
			return nil
		}
		for _, l := range lines {
			fmt.Fprintln(out, l)
		}
		return nil
	},
}
