package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"agoricup/internal/config"
	"agoricup/internal/settings"
)

func init() {
	configCmd.AddCommand(configSetCmd, configEditCmd, configValidateCmd, configSchemaCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the settings file location and effective settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := config.Load(appCtx.SettingsPath)
		if err != nil {
			return err
		}
		return printSettings(cmd.OutOrStdout(), appCtx.SettingsPath, s, appCtx.Platform.Home)
	},
}

func printSettings(w io.Writer, path string, s config.Settings, home string) error {
	// show effective values, not just what the file contains
	eff := s
	eff.InstallDir, _ = s.ResolveInstallDir(home)
	auto := s.AutoUpdateEnabled()
	eff.AutoUpdate = &auto

	b, err := yaml.Marshal(eff)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "# %s\n%s", path, b)
	return nil
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Write a setting to settings.yaml",
	Long:  "Keys: installDir, autoUpdate, channel (git|npm), branch, repository, logLevel.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := config.Load(appCtx.SettingsPath)
		if err != nil {
			return err
		}
		if err := s.Set(args[0], args[1]); err != nil {
			if errors.Is(err, config.ErrUnknownKey) {
				if hint := suggestKey(args[0]); hint != "" {
					return fmt.Errorf("%w (did you mean %q?)", err, hint)
				}
			}
			return err
		}
		if err := config.Save(appCtx.SettingsPath, s); err != nil {
			return err
		}
		appCtx.Log.Debug("setting saved", "key", args[0], "value", args[1], "path", appCtx.SettingsPath)
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s = %s\n", args[0], args[1])
		return nil
	},
}

// suggestKey returns the closest known setting name, or "".
func suggestKey(key string) string {
	matches := fuzzy.Find(key, config.Keys())
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit settings.yaml in an interactive form",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !appCtx.Interactive() {
			return errors.New("config edit needs a terminal; use config set instead")
		}
		s, err := config.Load(appCtx.SettingsPath)
		if err != nil {
			return err
		}
		s, err = settings.Edit(s)
		if err != nil {
			return err
		}
		if err := config.Save(appCtx.SettingsPath, s); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ saved %s\n", appCtx.SettingsPath)
		return nil
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check settings.yaml against its JSON Schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		msgs, err := config.Validate(appCtx.SettingsPath)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(msgs) == 0 {
			fmt.Fprintf(out, "✓ %s is valid\n", appCtx.SettingsPath)
			return nil
		}
		for _, m := range msgs {
			fmt.Fprintf(out, "  × %s\n", m)
		}
		return fmt.Errorf("%s: %d problem(s)", appCtx.SettingsPath, len(msgs))
	},
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of settings.yaml",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := config.MarshalSchema(config.SettingsSchema())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(b))
		return nil
	},
}
