package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"agoricup/internal/update"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the installed Agoric CLI and what install would do",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := appCtx.Updater(false).Plan(cmd.Context())
		if err != nil {
			return err
		}
		printStatus(cmd.OutOrStdout(), plan)
		return nil
	},
}

func printStatus(w io.Writer, p update.Plan) {
	installed := "not installed"
	if p.Installation.Installed {
		installed = "@" + p.Installation.Version
		if p.Installation.Source != "" {
			installed += " (" + p.Installation.Source + ")"
		}
	}
	next := p.Decision.Action.String()
	if p.Decision.Prompt {
		next += " (asks first)"
	}
	if p.Decision.Reason != "" {
		next += " – " + p.Decision.Reason
	}
	channel := p.Settings.Channel
	if channel == "git" {
		channel += " (" + p.Settings.Branch + ")"
	}

	checkout := "-"
	if c := p.Checkout; c.InRepo {
		checkout = c.Branch + " @" + c.ShortSHA
		if c.Dirty {
			checkout += " (local changes)"
		}
	}

	rows := [][2]string{
		{"Agoric CLI", installed},
		{"Install dir", p.InstallDir},
		{"Channel", channel},
		{"Checkout", checkout},
		{"Local ref", orDash(p.LocalRef)},
		{"Remote ref", orDash(p.RemoteRef)},
		{"Auto update", strconv.FormatBool(p.Settings.AutoUpdateEnabled())},
		{"Next action", next},
	}
	width := 0
	for _, r := range rows {
		if n := runewidth.StringWidth(r[0]); n > width {
			width = n
		}
	}
	for _, r := range rows {
		fmt.Fprintf(w, "%s  %s\n", runewidth.FillRight(r[0], width), r[1])
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
