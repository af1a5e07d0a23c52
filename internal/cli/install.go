package cli

import (
	"errors"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"

	"agoricup/internal/installer"
	"agoricup/internal/notify"
	"agoricup/internal/update"
)

var (
	installYes      bool
	installKeepOpen bool
)

var errSetupFailed = errors.New("agoric CLI not found after setup")

func init() {
	addInstallFlags(installCmd)
	rootCmd.AddCommand(installCmd)
}

func addInstallFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&installYes, "yes", "y", false, "apply an available update without asking")
	cmd.Flags().BoolVar(&installKeepOpen, "keep-open", false, "keep the setup shell open after the script finished")
}

var installCmd = &cobra.Command{
	Use:     "install",
	Aliases: []string{"update"},
	Short:   "Install the Agoric CLI, or update it when a new version is available",
	Long: "Probes the installed agoric CLI, compares it with the configured channel " +
		"and runs the setup script in an interactive shell when an install or update is needed.",
	Args: cobra.NoArgs,
	RunE: runInstall,
}

func runInstall(cmd *cobra.Command, args []string) error {
	a := appCtx
	ctx := cmd.Context()
	if installYes {
		a.Notify.Presenter = notify.AutoAccept{Presenter: a.Notify.Presenter}
	}
	mgr := a.Updater(installKeepOpen)

	var (
		plan    update.Plan
		planErr error
	)
	probe := func() { plan, planErr = mgr.Plan(ctx) }
	if a.Interactive() {
		if err := spinner.New().Title("Checking Agoric SDK…").Context(ctx).Action(probe).Run(); err != nil {
			return err
		}
	} else {
		probe()
	}
	if planErr != nil {
		return planErr
	}

	run, err := mgr.Apply(ctx, plan)
	if err != nil {
		return err
	}
	if run == nil {
		return nil
	}
	defer run.Dispose()

	var rep installer.Report
	select {
	case rep = <-run.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	// the shell owns the terminal until it exits
	<-run.Closed()

	installer.Announce(a.Notify, rep)
	if !rep.OK() {
		return errSetupFailed
	}
	return nil
}
