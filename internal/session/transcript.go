package session

import (
	"bytes"
	"strings"

	clog "github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"
)

// transcript turns raw terminal output into plain log lines.
type transcript struct {
	log     *clog.Logger
	pending bytes.Buffer
}

func (t *transcript) Write(p []byte) (int, error) {
	if t.log == nil {
		return len(p), nil
	}
	t.pending.Write(p)
	for {
		line, err := t.pending.ReadString('\n')
		if err != nil {
			// incomplete line, wait for more
			t.pending.Reset()
			t.pending.WriteString(line)
			break
		}
		t.emit(line)
	}
	return len(p), nil
}

// Flush logs whatever is left without a trailing newline.
func (t *transcript) Flush() {
	if t.pending.Len() > 0 {
		t.emit(t.pending.String())
		t.pending.Reset()
	}
}

func (t *transcript) emit(line string) {
	clean := strings.TrimSpace(strings.ReplaceAll(ansi.Strip(line), "\r", ""))
	if clean == "" {
		return
	}
	t.log.Debug(clean, "src", "session")
}
