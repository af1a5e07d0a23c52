package system

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	clog "github.com/charmbracelet/log"
)

// LoggerOptions configures the application logger.
type LoggerOptions struct {
	Level   string    // debug, info, warn or error
	Console io.Writer // nil means stderr
	File    string    // log panel file; empty disables the file sink
}

// NewLogger builds the shared application logger. Every line carries a
// timestamp and a DEBUG/INFO/WARN/ERROR level, and is written to the console
// and appended to the log panel file. The returned closer releases the file.
func NewLogger(opts LoggerOptions) (*clog.Logger, io.Closer, error) {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	w := console
	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("ensure log directory: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = io.MultiWriter(console, f)
		closer = f
	}

	logger := clog.NewWithOptions(w, clog.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           ParseLevel(opts.Level),
	})
	logger.SetStyles(levelStyles())
	return logger, closer, nil
}

// ParseLevel maps a settings value to a log level; unknown values mean info.
func ParseLevel(s string) clog.Level {
	lvl, err := clog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return clog.InfoLevel
	}
	return lvl
}

// levelStyles spells levels out in full (DEBUG, ERROR) instead of the
// four-letter defaults.
func levelStyles() *clog.Styles {
	st := clog.DefaultStyles()
	names := map[clog.Level]string{
		clog.DebugLevel: "DEBUG",
		clog.InfoLevel:  "INFO",
		clog.WarnLevel:  "WARN",
		clog.ErrorLevel: "ERROR",
	}
	for lvl, name := range names {
		base, ok := st.Levels[lvl]
		if !ok {
			base = lipgloss.NewStyle()
		}
		st.Levels[lvl] = base.SetString(name).UnsetMaxWidth()
	}
	return st
}

// Tail returns the last n lines of the log panel file. A missing file yields
// no lines and no error.
func Tail(path string, n int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
		if n > 0 && len(lines) > n {
			lines = lines[1:]
		}
	}
	return lines, sc.Err()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
