// Package notify shows user-facing notifications with optional actions.
//
// A Presenter only displays; it never logs. Notifier composes a logger and a
// Presenter the way callers need them: every notification is logged first,
// then shown with the caller's actions plus "Show Logs".
package notify

import (
	clog "github.com/charmbracelet/log"
)

// Level is the severity a notification is shown with.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarn:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// ShowLogsPrompt is appended to the actions of every logged notification.
const ShowLogsPrompt = "Show Logs"

// Presenter displays a message and, when prompts are given, lets the user
// pick one. It returns the chosen prompt, or "" when the user dismissed the
// notification or no choice is possible.
type Presenter interface {
	Show(level Level, message string, prompts ...string) (string, error)
	// Markdown renders a longer informational notice.
	Markdown(md string)
}

// Action is a button on a notification.
type Action struct {
	Prompt string
	Run    func()
}

// Notifier logs a message and then presents it.
type Notifier struct {
	Log       *clog.Logger
	Presenter Presenter
	ShowLogs  func()
}

// Info logs at info level and shows the message with actions.
func (n Notifier) Info(message string, actions ...Action) string {
	n.Log.Info(message)
	return n.present(LevelInfo, message, actions)
}

// Present shows the message without logging it.
func (n Notifier) Present(level Level, message string, actions ...Action) string {
	return n.present(level, message, actions)
}

// Notice renders a markdown notice.
func (n Notifier) Notice(md string) {
	if n.Presenter != nil {
		n.Presenter.Markdown(md)
	}
}

// present shows the message and runs the chosen action. It returns the
// chosen prompt ("" when dismissed).
func (n Notifier) present(level Level, message string, actions []Action) string {
	if n.Presenter == nil {
		return ""
	}
	all := append([]Action(nil), actions...)
	if n.ShowLogs != nil {
		all = append(all, Action{Prompt: ShowLogsPrompt, Run: n.ShowLogs})
	}
	prompts := make([]string, 0, len(all))
	for _, a := range all {
		prompts = append(prompts, a.Prompt)
	}
	choice, err := n.Presenter.Show(level, message, prompts...)
	if err != nil {
		n.Log.Debug("notification failed", "err", err)
		return ""
	}
	for _, a := range all {
		if a.Prompt == choice {
			if a.Run != nil {
				a.Run()
			}
			return choice
		}
	}
	return ""
}
