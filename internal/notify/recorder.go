package notify

import "sync"

// Shown is one notification captured by a Recorder.
type Shown struct {
	Level   Level
	Message string
	Prompts []string
}

// Recorder is a Presenter that remembers what it was asked to show and
// answers with Choice when Choice is among the prompts.
type Recorder struct {
	Choice string

	mu       sync.Mutex
	shown    []Shown
	markdown []string
}

var _ Presenter = (*Recorder)(nil)

func (r *Recorder) Show(level Level, message string, prompts ...string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shown = append(r.shown, Shown{Level: level, Message: message, Prompts: append([]string(nil), prompts...)})
	for _, p := range prompts {
		if p == r.Choice {
			return p, nil
		}
	}
	return "", nil
}

func (r *Recorder) Markdown(md string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.markdown = append(r.markdown, md)
}

// Shown returns the notifications presented so far.
func (r *Recorder) Shown() []Shown {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Shown(nil), r.shown...)
}

// Notices returns the markdown notices presented so far.
func (r *Recorder) Notices() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.markdown...)
}
