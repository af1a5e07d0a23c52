package notify

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

const dismissPrompt = "Dismiss"

// Terminal presents notifications in the user's terminal. Messages are
// printed as styled banners; prompts become an interactive select when both
// stdin and stdout are terminals. Otherwise prompts are listed and nothing
// is chosen.
type Terminal struct {
	Out         io.Writer
	Interactive bool
}

var _ Presenter = (*Terminal)(nil)

// NewTerminal returns a presenter writing to stderr.
func NewTerminal() *Terminal {
	return &Terminal{
		Out:         os.Stderr,
		Interactive: term.IsTerminal(os.Stdin.Fd()) && term.IsTerminal(os.Stdout.Fd()),
	}
}

func (t *Terminal) Show(level Level, message string, prompts ...string) (string, error) {
	fmt.Fprintln(t.Out, Banner(t.Out, level, message))
	if len(prompts) == 0 {
		return "", nil
	}
	if !t.Interactive {
		fmt.Fprintf(t.Out, "  actions: %v (not a terminal, skipped)\n", prompts)
		return "", nil
	}

	// Light theme tweaks matching the banner colors
	theme := huh.ThemeCharm()
	theme.FieldSeparator = lipgloss.NewStyle()
	theme.Focused.Title = theme.Focused.Title.Foreground(green).Bold(true)
	theme.Focused.SelectedOption = lipgloss.NewStyle().Foreground(green)
	theme.Focused.Base = theme.Focused.Base.BorderForeground(green)

	opts := make([]huh.Option[string], 0, len(prompts)+1)
	for _, p := range prompts {
		opts = append(opts, huh.NewOption(p, p))
	}
	opts = append(opts, huh.NewOption(dismissPrompt, ""))

	var choice string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(message).
				Options(opts...).
				Value(&choice),
		),
	).WithTheme(theme).WithWidth(60)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", nil // ctrl+c on the prompt is a dismissal
		}
		return "", err
	}
	return choice, nil
}

func (t *Terminal) Markdown(md string) {
	fmt.Fprintln(t.Out, RenderMarkdown(md, 80))
}

// AutoAccept picks the first prompt of every notification without asking.
// Used for --yes.
type AutoAccept struct {
	Presenter
}

func (a AutoAccept) Show(level Level, message string, prompts ...string) (string, error) {
	if _, err := a.Presenter.Show(level, message); err != nil {
		return "", err
	}
	if len(prompts) == 0 || prompts[0] == ShowLogsPrompt {
		return "", nil
	}
	return prompts[0], nil
}
