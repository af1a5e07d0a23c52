package session

import (
	"io"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/muesli/cancelreader"
)

const (
	defaultCols = 80
	defaultRows = 24
)

func termSize(w io.Writer) (int, int) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(f.Fd()) {
		return defaultCols, defaultRows
	}
	cols, rows, err := term.GetSize(f.Fd())
	if err != nil || cols <= 0 || rows <= 0 {
		return defaultCols, defaultRows
	}
	return cols, rows
}

// input forwards the user's keystrokes to the session. The local terminal is
// switched to raw mode for the lifetime of the forwarder.
type input struct {
	f      *os.File
	state  *term.State
	reader cancelreader.CancelReader
	done   chan struct{}
}

func forwardInput(f *os.File, dst io.Writer) (*input, error) {
	if !term.IsTerminal(f.Fd()) {
		return nil, nil
	}
	r, err := cancelreader.NewReader(f)
	if err != nil {
		return nil, err
	}
	state, err := term.MakeRaw(f.Fd())
	if err != nil {
		_ = r.Close()
		return nil, err
	}
	in := &input{f: f, state: state, reader: r, done: make(chan struct{})}
	go func() {
		defer close(in.done)
		_, _ = io.Copy(dst, r)
	}()
	return in, nil
}

// stop cancels the pending read and restores the terminal.
func (in *input) stop() {
	if in == nil {
		return
	}
	in.reader.Cancel()
	<-in.done
	_ = in.reader.Close()
	_ = term.Restore(in.f.Fd(), in.state)
}
