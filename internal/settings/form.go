// Package settings provides the interactive editor for settings.yaml.
package settings

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"agoricup/internal/config"
)

// values holds the form fields; huh binds to plain values, not pointers.
type values struct {
	InstallDir string
	AutoUpdate bool
	Channel    string
	Branch     string
	Repository string
	LogLevel   string
}

func toValues(s config.Settings) values {
	return values{
		InstallDir: s.InstallDir,
		AutoUpdate: s.AutoUpdateEnabled(),
		Channel:    s.Channel,
		Branch:     s.Branch,
		Repository: s.Repository,
		LogLevel:   s.LogLevel,
	}
}

// apply writes v back onto s. AutoUpdate is only made explicit when it
// differs from the stored preference.
func (v values) apply(s config.Settings) (config.Settings, error) {
	out := s
	for key, val := range map[string]string{
		"installDir": v.InstallDir,
		"channel":    v.Channel,
		"branch":     v.Branch,
		"repository": v.Repository,
		"logLevel":   v.LogLevel,
	} {
		if err := out.Set(key, val); err != nil {
			return s, err
		}
	}
	if v.AutoUpdate != s.AutoUpdateEnabled() || s.AutoUpdate != nil {
		b := v.AutoUpdate
		out.AutoUpdate = &b
	}
	return out, nil
}

// Edit shows a form prefilled with s and returns the edited settings.
func Edit(s config.Settings) (config.Settings, error) {
	v := toValues(s)

	// Light theme tweaks inspired by freeze/interactive.go
	green := lipgloss.Color("#03BF87")
	theme := huh.ThemeCharm()
	theme.FieldSeparator = lipgloss.NewStyle()
	theme.Blurred.Title = theme.Blurred.Title.Width(18).Foreground(lipgloss.Color("7"))
	theme.Focused.Title = theme.Focused.Title.Width(18).Foreground(green).Bold(true)
	theme.Blurred.SelectedOption = theme.Blurred.SelectedOption.Foreground(lipgloss.Color("243"))
	theme.Focused.SelectedOption = lipgloss.NewStyle().Foreground(green)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title("Settings").Description("agoricup settings.yaml"),
			huh.NewInput().
				Title("Install dir").
				Placeholder("home directory").
				Value(&v.InstallDir),
			huh.NewConfirm().
				Title("Auto update").
				Affirmative("Yes").
				Negative("Ask first").
				Value(&v.AutoUpdate),
			huh.NewSelect[string]().
				Title("Channel").
				Options(
					huh.NewOption("git (commit of branch)", config.ChannelGit),
					huh.NewOption("npm (published version)", config.ChannelNpm),
				).
				Value(&v.Channel),
			huh.NewInput().
				Title("Branch").
				Validate(notBlank("branch")).
				Value(&v.Branch),
			huh.NewInput().
				Title("Repository").
				Validate(notBlank("repository")).
				Value(&v.Repository),
			huh.NewSelect[string]().
				Title("Log level").
				Options(huh.NewOptions("debug", "info", "warn", "error")...).
				Value(&v.LogLevel),
		),
	).WithTheme(theme).WithWidth(72)

	if err := form.Run(); err != nil {
		return s, err // form canceled or failed
	}
	return v.apply(s)
}

func notBlank(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}
